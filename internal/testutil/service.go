// Package testutil holds fakes and helpers shared by package tests.
package testutil

import (
	"sync"

	"github.com/atomicstack/tmux-overview/internal/backend"
	"github.com/atomicstack/tmux-overview/internal/settings"
)

// FakeService is an in-memory window service that records every request.
type FakeService struct {
	mu sync.Mutex

	ShortcutValue string
	Permission    bool

	RefreshErr  error
	ActivateErr error
	HideErr     error
	IMEErr      error

	RefreshCalls int
	Activated    []string
	HideCalls    int
	IMECalls     int

	events chan backend.Event
}

// NewFakeService returns a FakeService with capture permission granted.
func NewFakeService() *FakeService {
	return &FakeService{
		ShortcutValue: settings.DefaultShortcut,
		Permission:    true,
		events:        make(chan backend.Event, 32),
	}
}

func (f *FakeService) Shortcut() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ShortcutValue
}

func (f *FakeService) SetShortcut(value string) error {
	sc, err := settings.ParseShortcut(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.ShortcutValue = sc.String()
	f.mu.Unlock()
	return nil
}

func (f *FakeService) CheckScreenRecordingPermission() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Permission
}

func (f *FakeService) RefreshWindowsAsync() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RefreshCalls++
	return f.RefreshErr
}

func (f *FakeService) ActivateWindow(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Activated = append(f.Activated, id)
	return f.ActivateErr
}

func (f *FakeService) HideOverlay() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.HideCalls++
	return f.HideErr
}

func (f *FakeService) SwitchToEnglishInput() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.IMECalls++
	return f.IMEErr
}

func (f *FakeService) Events() <-chan backend.Event {
	return f.events
}

// Push queues evt on the event stream.
func (f *FakeService) Push(evt backend.Event) {
	f.events <- evt
}

// Close ends the event stream.
func (f *FakeService) Close() {
	close(f.events)
}

// Prefs is a static Preferences implementation.
type Prefs struct {
	IME bool
}

func (p Prefs) DisableIME() bool { return p.IME }
