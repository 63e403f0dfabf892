package backend

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/atomicstack/tmux-overview/internal/logging/events"
	"github.com/atomicstack/tmux-overview/internal/settings"
)

var (
	// ErrStopped is returned once the service has been closed.
	ErrStopped = errors.New("window service stopped")
	// ErrUnsupported marks an optional capability the platform lacks.
	ErrUnsupported = errors.New("not supported")
)

// WindowSystem is the platform side of the service: enumeration, capture,
// activation and global shortcut registration.
type WindowSystem interface {
	Provider
	Activate(ctx context.Context, id string) error
	CanCapture() bool
	BindShortcut(shortcut settings.Shortcut) error
}

// ShortcutStore persists the configured shortcut.
type ShortcutStore interface {
	Shortcut() string
	SetShortcut(value string) error
}

var runCommand = func(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Service adapts a WindowSystem to the request/event surface the overlay
// consumes.
type Service struct {
	system    WindowSystem
	store     ShortcutStore
	refresher *Refresher

	imeCommand []string
	hide       func() error
	timeout    time.Duration
	refreshOps []Option
}

// ServiceOption adjusts a Service.
type ServiceOption func(*Service)

// WithIMECommand sets the command that selects an English input source.
func WithIMECommand(argv []string) ServiceOption {
	return func(s *Service) {
		s.imeCommand = append([]string(nil), argv...)
	}
}

// WithHide sets the action used to dismiss the overlay surface.
func WithHide(fn func() error) ServiceOption {
	return func(s *Service) {
		s.hide = fn
	}
}

// WithRefreshOptions forwards options to the underlying Refresher.
func WithRefreshOptions(opts ...Option) ServiceOption {
	return func(s *Service) {
		s.refreshOps = append(s.refreshOps, opts...)
	}
}

// NewService wires system and store into a Service.
func NewService(system WindowSystem, store ShortcutStore, opts ...ServiceOption) *Service {
	s := &Service{system: system, store: store, timeout: 5 * time.Second}
	for _, opt := range opts {
		opt(s)
	}
	s.refresher = NewRefresher(system, s.refreshOps...)
	return s
}

// Shortcut returns the saved global shortcut.
func (s *Service) Shortcut() string {
	return s.store.Shortcut()
}

// SetShortcut validates, registers and saves a new shortcut. On failure the
// previous shortcut stays saved.
func (s *Service) SetShortcut(value string) error {
	shortcut, err := settings.ParseShortcut(value)
	if err != nil {
		return err
	}
	if err := s.system.BindShortcut(shortcut); err != nil {
		return fmt.Errorf("register shortcut %s: %w", shortcut, err)
	}
	if err := s.store.SetShortcut(shortcut.String()); err != nil {
		return fmt.Errorf("save shortcut: %w", err)
	}
	return nil
}

// CheckScreenRecordingPermission reports whether previews can be captured.
func (s *Service) CheckScreenRecordingPermission() bool {
	return s.system.CanCapture()
}

// RefreshWindowsAsync starts a refresh and returns immediately.
func (s *Service) RefreshWindowsAsync() error {
	_, err := s.refresher.Refresh()
	return err
}

// ActivateWindow brings the window with id to the foreground.
func (s *Service) ActivateWindow(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.system.Activate(ctx, id)
}

// HideOverlay dismisses the overlay surface.
func (s *Service) HideOverlay() error {
	if s.hide == nil {
		return nil
	}
	return s.hide()
}

// SwitchToEnglishInput runs the configured input-source command.
func (s *Service) SwitchToEnglishInput() error {
	if len(s.imeCommand) == 0 || strings.TrimSpace(s.imeCommand[0]) == "" {
		return fmt.Errorf("switch input source: %w", ErrUnsupported)
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	events.Backend.Command(s.imeCommand[0], s.imeCommand[1:])
	if err := runCommand(ctx, s.imeCommand[0], s.imeCommand[1:]...); err != nil {
		return fmt.Errorf("switch input source: %w", err)
	}
	return nil
}

// Events returns the stream of show, list and thumbnail notifications.
func (s *Service) Events() <-chan Event {
	return s.refresher.Events()
}

// Show emits a request for the overlay to appear.
func (s *Service) Show() bool {
	return s.refresher.Emit(Event{Kind: KindShow})
}

// Close stops background work and closes the event stream.
func (s *Service) Close() {
	s.refresher.Stop()
}
