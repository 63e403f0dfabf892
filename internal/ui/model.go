package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/tmux-overview/internal/backend"
	"github.com/atomicstack/tmux-overview/internal/overlay"
	"github.com/atomicstack/tmux-overview/internal/theme"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures the presentation.
type Options struct {
	Width        int
	Height       int
	Columns      int
	ShowFooter   bool
	PreviewLines int
	StaticCursor bool
}

// Model implements the Bubble Tea model for the overview popup.
type Model struct {
	ctrl   *overlay.Controller
	events <-chan backend.Event

	width        int
	height       int
	fixedWidth   bool
	fixedHeight  bool
	fixedColumns int
	showFooter   bool
	previewLines int

	filterCursor      cursor.Model
	filterCursorDirty bool

	lastClickIndex int
	lastClickAt    time.Time
	quitting       bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the popup model around ctrl. events may be nil when the
// caller feeds service events by hand.
func NewModel(ctrl *overlay.Controller, events <-chan backend.Event, opts Options) *Model {
	m := &Model{
		ctrl:           ctrl,
		events:         events,
		showFooter:     opts.ShowFooter,
		previewLines:   defaultPreviewLines,
		lastClickIndex: -1,
	}
	if opts.PreviewLines > 0 {
		m.previewLines = opts.PreviewLines
	}
	if opts.Columns > 0 {
		m.fixedColumns = opts.Columns
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		c.TextStyle = *styles.Filter
	}
	c.SetChar(" ")
	if opts.StaticCursor {
		c.SetMode(cursor.CursorStatic)
	}
	m.filterCursor = c
	m.syncColumns()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.events == nil {
		return nil
	}
	return waitForBackendEvent(m.events)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(focusSearchMsg{}):    m.handleFocusSearchMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// quit ends the program once the controller has hidden the overlay.
func (m *Model) quit() tea.Cmd {
	if m.quitting {
		return nil
	}
	m.quitting = true
	return tea.Quit
}

// Quitting reports whether the model has asked the program to exit.
func (m *Model) Quitting() bool {
	return m.quitting
}

// Controller exposes the overlay controller driving the model.
func (m *Model) Controller() *overlay.Controller {
	return m.ctrl
}
