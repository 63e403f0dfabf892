package tmux

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
	"github.com/atomicstack/tmux-overview/internal/logging"
	"github.com/atomicstack/tmux-overview/internal/window"
	"golang.org/x/sync/singleflight"
)

const windowFormat = "#{window_id}\t#{session_name}\t#{window_index}\t#{window_name}\t#{pane_current_command}"

// DefaultPreviewLines is how many trailing pane lines a thumbnail keeps.
const DefaultPreviewLines = 12

// System exposes the windows of one tmux server as switchable records.
type System struct {
	socket       string
	previewLines int
	popup        Popup
	skipWindow   string

	group singleflight.Group

	mu       sync.Mutex
	snapshot map[string]windowEntry
	boundKey string
}

// SystemOption adjusts a System.
type SystemOption func(*System)

// WithPreviewLines sets how many pane lines each thumbnail keeps.
func WithPreviewLines(n int) SystemOption {
	return func(s *System) {
		if n > 0 {
			s.previewLines = n
		}
	}
}

// WithPopup sets the popup the global shortcut opens.
func WithPopup(p Popup) SystemOption {
	return func(s *System) {
		s.popup = p
	}
}

// WithSkipWindow hides one window id from listings, usually the one hosting
// the popup.
func WithSkipWindow(id string) SystemOption {
	return func(s *System) {
		s.skipWindow = strings.TrimSpace(id)
	}
}

// WithBoundKey records the tmux key currently bound to the popup so a new
// shortcut can replace it.
func WithBoundKey(key string) SystemOption {
	return func(s *System) {
		s.boundKey = key
	}
}

// NewSystem returns a System talking to the server at socketPath.
func NewSystem(socketPath string, opts ...SystemOption) *System {
	s := &System{
		socket:       socketPath,
		previewLines: DefaultPreviewLines,
		snapshot:     map[string]windowEntry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SocketPath returns the server socket this System talks to.
func (s *System) SocketPath() string {
	return s.socket
}

// List enumerates windows across every session. Concurrent callers share
// one tmux round trip.
func (s *System) List(ctx context.Context) ([]window.Record, error) {
	v, err, _ := s.group.Do("list", func() (any, error) {
		return s.fetchWindows(ctx)
	})
	if err != nil {
		return nil, err
	}
	return window.Clone(v.([]window.Record)), nil
}

func (s *System) fetchWindows(ctx context.Context) ([]window.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	client, err := newTmux(s.socket)
	if err != nil {
		return nil, fmt.Errorf("connect to tmux: %w", err)
	}
	defer client.Close()
	lines, err := client.ListWindowsFormat("", "", windowFormat)
	if err != nil {
		return nil, fmt.Errorf("list windows: %w", err)
	}
	records := make([]window.Record, 0, len(lines))
	entries := make(map[string]windowEntry, len(lines))
	for _, line := range lines {
		entry, rec, ok := parseWindowLine(line)
		if !ok {
			continue
		}
		if entry.ID == s.skipWindow {
			continue
		}
		if _, seen := entries[entry.ID]; seen {
			continue
		}
		entries[entry.ID] = entry
		records = append(records, rec)
	}
	s.mu.Lock()
	s.snapshot = entries
	s.mu.Unlock()
	return records, nil
}

func parseWindowLine(line string) (windowEntry, window.Record, bool) {
	parts := strings.SplitN(strings.TrimRight(line, "\r\n"), "\t", 5)
	if len(parts) < 5 || strings.TrimSpace(parts[0]) == "" {
		return windowEntry{}, window.Record{}, false
	}
	idx, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return windowEntry{}, window.Record{}, false
	}
	entry := windowEntry{ID: parts[0], Session: parts[1], Index: idx}
	app := strings.TrimSpace(parts[4])
	if app == "" {
		app = "tmux"
	}
	name := strings.TrimSpace(parts[3])
	rec := window.Record{ID: entry.ID, AppName: app}
	if name != "" {
		rec.Title = fmt.Sprintf("%s:%d %s", entry.Session, entry.Index, name)
	}
	return entry, rec.WithFallbackTitle(), true
}

func (s *System) lookup(ctx context.Context, id string) (windowEntry, error) {
	s.mu.Lock()
	entry, ok := s.snapshot[id]
	s.mu.Unlock()
	if ok {
		return entry, nil
	}
	if _, err := s.List(ctx); err != nil {
		return windowEntry{}, err
	}
	s.mu.Lock()
	entry, ok = s.snapshot[id]
	s.mu.Unlock()
	if !ok {
		return windowEntry{}, fmt.Errorf("window %s not found", id)
	}
	return entry, nil
}

// Activate switches the current client to the window's session and selects
// the window.
func (s *System) Activate(ctx context.Context, id string) error {
	entry, err := s.lookup(ctx, id)
	if err != nil {
		return err
	}
	clientID := CurrentClientID(s.socket)
	client, err := newTmux(s.socket)
	if err != nil {
		return fmt.Errorf("connect to tmux: %w", err)
	}
	defer client.Close()
	if err := client.SwitchClient(&gotmux.SwitchClientOptions{
		TargetSession: entry.Session,
		TargetClient:  clientID,
	}); err != nil {
		return fmt.Errorf("switch to session %s: %w", entry.Session, err)
	}
	if err := client.SelectWindow(entry.ID); err != nil {
		return fmt.Errorf("select window %s: %w", entry.ID, err)
	}
	return nil
}

// CanCapture reports whether the tmux binary used for capture-pane is
// reachable.
func (s *System) CanCapture() bool {
	if _, err := lookPath("tmux"); err != nil {
		logging.Warn("tmux binary not found; previews disabled", err)
		return false
	}
	return true
}

var lookPath = exec.LookPath
