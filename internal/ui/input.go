package ui

import (
	"strings"
	"unicode"

	"github.com/atomicstack/tmux-overview/internal/logging/events"
	"github.com/atomicstack/tmux-overview/internal/overlay"
	tea "github.com/charmbracelet/bubbletea"
)

const searchPlaceholder = "(type to search windows)"

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(before int) {
	if before != m.ctrl.Overview().QueryCursorPos() {
		m.filterCursorDirty = true
	}
}

// overlayKey translates a terminal key press into the controller's key
// representation.
func overlayKey(msg tea.KeyMsg) overlay.Key {
	name := msg.String()
	var k overlay.Key
	for {
		switch {
		case strings.HasPrefix(name, "ctrl+") && len(name) > len("ctrl+"):
			k.Ctrl = true
			name = strings.TrimPrefix(name, "ctrl+")
			continue
		case strings.HasPrefix(name, "alt+") && len(name) > len("alt+"):
			k.Alt = true
			name = strings.TrimPrefix(name, "alt+")
			continue
		case strings.HasPrefix(name, "shift+") && len(name) > len("shift+"):
			k.Shift = true
			name = strings.TrimPrefix(name, "shift+")
			continue
		}
		break
	}
	if msg.Alt {
		k.Alt = true
	}
	k.Name = name
	return k
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.Type == tea.KeyCtrlC {
		m.ctrl.Dismiss()
		return m.quit()
	}
	out := m.ctrl.HandleKey(overlayKey(keyMsg))
	if out.Hidden {
		return m.quit()
	}
	if out.Handled {
		return nil
	}
	m.handleTextInput(keyMsg)
	return nil
}

// handleTextInput edits the search field. It reports whether the key was
// consumed.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	if !m.ctrl.Focused() {
		return false
	}
	ov := m.ctrl.Overview()
	before := ov.QueryCursorPos()
	changed := false
	switch msg.String() {
	case "ctrl+u":
		changed = ov.ClearQuery()
	case "ctrl+w", "alt+backspace":
		changed = ov.DeleteQueryWordBackward()
	case "ctrl+a", "home":
		changed = ov.MoveQueryCursorStart()
	case "ctrl+e", "end":
		changed = ov.MoveQueryCursorEnd()
	case "alt+b":
		changed = ov.MoveQueryCursorWordBackward()
	case "alt+f":
		changed = ov.MoveQueryCursorWordForward()
	default:
		changed = m.handleTextKey(msg)
	}
	if !changed {
		return false
	}
	m.noteFilterCursorChange(before)
	if before != ov.QueryCursorPos() {
		events.Filter.Cursor(ov.QueryCursorPos())
	}
	return true
}

func (m *Model) handleTextKey(msg tea.KeyMsg) bool {
	ov := m.ctrl.Overview()
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return ov.DeleteQueryRuneBackward()
	case tea.KeyLeft:
		return ov.MoveQueryCursorRuneBackward()
	case tea.KeyRight:
		return ov.MoveQueryCursorRuneForward()
	case tea.KeySpace:
		return ov.InsertQueryText(" ")
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
		}
		return ov.InsertQueryText(string(msg.Runes))
	}
	return false
}

func (m *Model) filterPrompt() string {
	render := func(value string) string {
		if styles.Filter == nil || value == "" {
			return value
		}
		return styles.Filter.Render(value)
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	ov := m.ctrl.Overview()
	text := ov.Query
	if text == "" {
		runes := []rune(searchPlaceholder)
		rest := string(runes[1:])
		if styles.FilterPlaceholder != nil {
			rest = styles.FilterPlaceholder.Render(rest)
		}
		return prompt + m.renderFilterCursor(string(runes[0])) + rest
	}
	runes := []rune(text)
	pos := ov.QueryCursorPos()
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(string(runes[pos+1:]))
	}
	return prompt + render(string(runes[:pos])) + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	base := m.filterCursor.TextStyle.Inline(true)
	if !m.ctrl.Focused() || m.filterCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		return base.Inherit(styles.Cursor.Inline(true)).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
