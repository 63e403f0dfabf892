package ui

import (
	"time"

	"github.com/atomicstack/tmux-overview/internal/backend"
	tea "github.com/charmbracelet/bubbletea"
)

// focusDelay gives the first frame time to paint before the search field
// takes focus.
const focusDelay = 16 * time.Millisecond

func waitForBackendEvent(ch <-chan backend.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

type focusSearchMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.events != nil {
		waitCmd := waitForBackendEvent(m.events)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.events = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	res := m.ctrl.HandleEvent(evt)
	if res.ShowRequested {
		m.quitting = false
		m.lastClickIndex = -1
		m.syncColumns()
		return scheduleFocus()
	}
	return nil
}

func scheduleFocus() tea.Cmd {
	return tea.Tick(focusDelay, func(time.Time) tea.Msg {
		return focusSearchMsg{}
	})
}

func (m *Model) handleFocusSearchMsg(tea.Msg) tea.Cmd {
	if !m.ctrl.FocusSearch() {
		return nil
	}
	m.filterCursorDirty = true
	return m.filterCursor.Focus()
}
