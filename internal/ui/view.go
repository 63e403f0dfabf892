package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/tmux-overview/internal/overlay"
	"github.com/atomicstack/tmux-overview/internal/thumbnail"
	"github.com/atomicstack/tmux-overview/internal/window"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	minCardWidth        = 28
	defaultPreviewLines = 4
	cardChromeRows      = 4 // border top and bottom, app line, title line
	gridTop             = 2 // search prompt, status line
	doubleClickWindow   = 400 * time.Millisecond
	footerText          = "←/→ tab move  ↑/↓ row  alt+hjkl grid  enter switch  esc close"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	ov := m.ctrl.Overview()
	cols := m.ctrl.Columns()
	rows := m.visibleRows()
	ov.EnsureSelectionVisible(cols, rows)

	var b strings.Builder
	b.WriteString(m.fitWidth(m.filterPrompt()))
	b.WriteString("\n")
	b.WriteString(m.fitWidth(m.statusLine()))
	b.WriteString("\n")
	b.WriteString(m.renderGrid())
	if m.showFooter {
		b.WriteString("\n")
		b.WriteString(m.fitWidth(styles.Footer.Render(footerText)))
	}
	return b.String()
}

func (m *Model) statusLine() string {
	switch {
	case !m.ctrl.CaptureAllowed():
		return styles.Banner.Render("previews unavailable: tmux capture-pane is not reachable")
	case m.ctrl.Status() != "":
		return styles.Error.Render("Error: " + m.ctrl.Status())
	case m.ctrl.Loading():
		return styles.Loading.Render("loading thumbnails…")
	}
	n := len(m.ctrl.Overview().View())
	noun := "windows"
	if n == 1 {
		noun = "window"
	}
	return styles.Info.Render(fmt.Sprintf("%d %s", n, noun))
}

func (m *Model) renderGrid() string {
	ov := m.ctrl.Overview()
	view := ov.View()
	if len(view) == 0 {
		msg := "(no windows)"
		if strings.TrimSpace(ov.Query) != "" {
			msg = fmt.Sprintf("No windows match %q", ov.Query)
		}
		return m.fitWidth(styles.Info.Render(msg))
	}
	cols := m.ctrl.Columns()
	start, end := ov.VisibleRange(cols, m.visibleRows())
	selected := ov.Selection.Index()

	rows := make([]string, 0, (end-start)/cols+1)
	for rowStart := start; rowStart < end; rowStart += cols {
		rowEnd := min(rowStart+cols, end)
		cards := make([]string, 0, rowEnd-rowStart)
		for i := rowStart; i < rowEnd; i++ {
			cards = append(cards, m.renderCard(view[i], i == selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderCard(rec window.Record, selected bool) string {
	width := m.cardWidth()
	inner := max(width-4, 1)
	fit := func(s string) string {
		if lipgloss.Width(s) <= inner {
			return s
		}
		return truncate.StringWithTail(s, uint(inner), "…")
	}

	titleStyle := styles.CardTitle
	if rec.IsTitleFallback {
		titleStyle = styles.CardFallback
	}
	lines := make([]string, 0, 2+m.previewLines)
	lines = append(lines, styles.CardApp.Render(fit(rec.AppName)))
	lines = append(lines, titleStyle.Render(fit(rec.DisplayTitle())))

	preview := thumbnail.PreviewLines(rec.Thumbnail, m.previewLines)
	switch {
	case len(preview) > 0:
		for _, line := range preview {
			lines = append(lines, styles.CardPreview.Render(fit(line)))
		}
	case m.ctrl.Loading():
		lines = append(lines, styles.CardEmpty.Render(fit("loading…")))
	default:
		lines = append(lines, styles.CardEmpty.Render(fit("no preview")))
	}
	for len(lines) < 2+m.previewLines {
		lines = append(lines, "")
	}

	style := styles.Card
	if selected {
		style = styles.SelectedCard
	}
	return style.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func (m *Model) fitWidth(s string) string {
	if m.width <= 0 || lipgloss.Width(s) <= m.width {
		return s
	}
	return truncate.StringWithTail(s, uint(max(m.width-1, 0)), "…")
}

func columnsFor(width int) int {
	if width <= 0 {
		return overlay.DefaultColumns
	}
	return max(width/minCardWidth, 1)
}

func (m *Model) syncColumns() {
	if m.fixedColumns > 0 {
		m.ctrl.SetColumns(m.fixedColumns)
		return
	}
	m.ctrl.SetColumns(columnsFor(m.width))
}

func (m *Model) cardWidth() int {
	if m.width <= 0 {
		return minCardWidth
	}
	return max(m.width/m.ctrl.Columns(), 6)
}

func (m *Model) cardHeight() int {
	return cardChromeRows + m.previewLines
}

// visibleRows returns how many card rows fit on screen, or 0 when the
// height is unknown.
func (m *Model) visibleRows() int {
	if m.height <= 0 {
		return 0
	}
	avail := m.height - gridTop
	if m.showFooter {
		avail--
	}
	return max(avail/m.cardHeight(), 1)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncColumns()
	m.ctrl.Overview().EnsureSelectionVisible(m.ctrl.Columns(), m.visibleRows())
	return nil
}

// cardAt maps a screen position to a view index.
func (m *Model) cardAt(x, y int) (int, bool) {
	if x < 0 || y < gridTop {
		return 0, false
	}
	cols := m.ctrl.Columns()
	col := x / m.cardWidth()
	if col >= cols {
		return 0, false
	}
	row := (y - gridTop) / m.cardHeight()
	if rows := m.visibleRows(); rows > 0 && row >= rows {
		return 0, false
	}
	ov := m.ctrl.Overview()
	idx := (ov.ViewportRow+row)*cols + col
	if idx >= len(ov.View()) {
		return 0, false
	}
	return idx, true
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	ov := m.ctrl.Overview()
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		ov.MoveGrid(-1, m.ctrl.Columns())
		return nil
	case tea.MouseButtonWheelDown:
		ov.MoveGrid(1, m.ctrl.Columns())
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}
	if ev.Action != tea.MouseActionPress {
		return nil
	}
	idx, ok := m.cardAt(ev.X, ev.Y)
	if !ok {
		return nil
	}
	now := time.Now()
	if idx == m.lastClickIndex && now.Sub(m.lastClickAt) <= doubleClickWindow {
		m.lastClickIndex = -1
		m.ctrl.ActivateAt(idx)
		return m.quit()
	}
	m.lastClickIndex = idx
	m.lastClickAt = now
	ov.Select(idx)
	return nil
}
