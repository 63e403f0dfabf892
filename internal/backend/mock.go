package backend

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/atomicstack/tmux-overview/internal/settings"
	"github.com/atomicstack/tmux-overview/internal/thumbnail"
	"github.com/atomicstack/tmux-overview/internal/window"
)

// MockSystem serves the sample windows with synthetic previews. It records
// activations and shortcut registrations for inspection.
type MockSystem struct {
	Delay time.Duration

	mu        sync.Mutex
	records   []window.Record
	activated []string
	bound     []string
}

// NewMockSystem returns a MockSystem over the sample windows.
func NewMockSystem() *MockSystem {
	return &MockSystem{records: window.Samples(), Delay: 40 * time.Millisecond}
}

// SetRecords replaces the windows the mock reports.
func (m *MockSystem) SetRecords(records []window.Record) {
	m.mu.Lock()
	m.records = window.Clone(records)
	m.mu.Unlock()
}

func (m *MockSystem) List(ctx context.Context) ([]window.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]window.Record, len(m.records))
	for i, rec := range m.records {
		rec.Thumbnail = ""
		out[i] = rec.WithFallbackTitle()
	}
	return out, ctx.Err()
}

func (m *MockSystem) Thumbnail(ctx context.Context, id string) (string, error) {
	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.records {
		if rec.ID == id {
			return thumbnail.EncodeText(syntheticPreview(rec)), nil
		}
	}
	return "", fmt.Errorf("window %s not found", id)
}

func (m *MockSystem) Activate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.records {
		if rec.ID == id {
			m.activated = append(m.activated, id)
			return nil
		}
	}
	return fmt.Errorf("window %s not found", id)
}

func (m *MockSystem) CanCapture() bool {
	return true
}

func (m *MockSystem) BindShortcut(shortcut settings.Shortcut) error {
	m.mu.Lock()
	m.bound = append(m.bound, shortcut.String())
	m.mu.Unlock()
	return nil
}

// Activated lists the ids passed to Activate.
func (m *MockSystem) Activated() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.activated...)
}

// Bound lists the shortcuts passed to BindShortcut.
func (m *MockSystem) Bound() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.bound...)
}

func syntheticPreview(rec window.Record) []string {
	title := rec.DisplayTitle()
	rule := strings.Repeat("─", min(len([]rune(title)), 24))
	return []string{
		rec.AppName,
		rule,
		title,
		"",
		fmt.Sprintf("window %s", rec.ID),
	}
}
