package tmux

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atomicstack/tmux-overview/internal/logging"
	"github.com/atomicstack/tmux-overview/internal/logging/events"
	"github.com/atomicstack/tmux-overview/internal/settings"
)

// Popup describes the display-popup the global shortcut opens.
type Popup struct {
	Width   string
	Height  string
	Command []string
}

func (p Popup) withDefaults() Popup {
	if strings.TrimSpace(p.Width) == "" {
		p.Width = "80%"
	}
	if strings.TrimSpace(p.Height) == "" {
		p.Height = "70%"
	}
	if len(p.Command) == 0 {
		exe, err := os.Executable()
		if err != nil || exe == "" {
			exe = "tmux-overview"
		}
		p.Command = []string{exe}
	}
	return p
}

// BindShortcut binds the shortcut in tmux's root table so it opens the
// overview popup from any pane. A previously bound key is released.
func (s *System) BindShortcut(shortcut settings.Shortcut) error {
	key, err := shortcut.TmuxKey()
	if err != nil {
		return err
	}
	popup := s.popup.withDefaults()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	args := append(baseArgs(s.socket),
		"bind-key", "-n", key,
		"display-popup", "-E",
		"-w", popup.Width,
		"-h", popup.Height,
		"-e", "TMUX_OVERVIEW_POPUP=1",
		shellJoin(popup.Command),
	)
	events.Backend.Command("tmux", args)
	if err := runExecCommand(ctx, "tmux", args...).Run(); err != nil {
		return fmt.Errorf("bind-key %s: %w", key, err)
	}

	s.mu.Lock()
	previous := s.boundKey
	s.boundKey = key
	s.mu.Unlock()

	if previous != "" && previous != key {
		unbind := append(baseArgs(s.socket), "unbind-key", "-n", previous)
		if err := runExecCommand(ctx, "tmux", unbind...).Run(); err != nil {
			logging.Warn(fmt.Sprintf("unbind previous shortcut %s", previous), err)
		}
	}
	return nil
}

// BoundKey returns the tmux key last bound by BindShortcut.
func (s *System) BoundKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boundKey
}

func shellJoin(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = shellQuote(arg)
	}
	return strings.Join(quoted, " ")
}

func shellQuote(arg string) string {
	if arg == "" {
		return "''"
	}
	if strings.IndexFunc(arg, func(r rune) bool {
		return !(r == '/' || r == '-' || r == '_' || r == '.' || r == '=' || r == ':' || r == ',' || r == '%' || r == '+' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	}) < 0 {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'"'"'`) + "'"
}
