package state

import (
	"github.com/atomicstack/tmux-overview/internal/logging/events"
	"github.com/atomicstack/tmux-overview/internal/window"
)

// Source is the record list the overview derives its view from.
type Source interface {
	Records() []window.Record
	Version() uint64
}

// Overview combines the search query, the filtered view and the selection.
// The view is derived from Source and recomputed only when the query or the
// source version changes.
type Overview struct {
	Query       string
	QueryCursor int
	Mode        MatchMode
	Selection   Selection
	ViewportRow int

	source      Source
	view        []window.Record
	viewQuery   string
	viewVersion uint64
	viewValid   bool
}

// NewOverview builds an overview over src and derives the initial view.
func NewOverview(src Source, mode MatchMode) *Overview {
	o := &Overview{source: src, Mode: mode, Selection: Selection{index: None}}
	o.Sync()
	o.Selection.Reset(len(o.view))
	return o
}

// Sync recomputes the view when stale and re-clamps the selection.
func (o *Overview) Sync() {
	if o.source == nil {
		o.view = nil
		o.resize()
		return
	}
	version := o.source.Version()
	if !o.viewValid || o.viewQuery != o.Query || o.viewVersion != version {
		o.view = FilterRecords(o.source.Records(), o.Query, o.Mode)
		o.viewQuery = o.Query
		o.viewVersion = version
		o.viewValid = true
	}
	o.resize()
}

// View returns the filtered records. Callers must not modify the result.
func (o *Overview) View() []window.Record {
	return o.view
}

// Reset clears the query and selects the first record.
func (o *Overview) Reset() {
	o.Query = ""
	o.QueryCursor = 0
	o.ViewportRow = 0
	o.Sync()
	o.Selection.Reset(len(o.view))
}

// Current returns the record that activation should target: the selected
// record, or the first record when nothing is selected.
func (o *Overview) Current() (window.Record, bool) {
	if len(o.view) == 0 {
		return window.Record{}, false
	}
	idx := o.Selection.Index()
	if idx < 0 || idx >= len(o.view) {
		idx = 0
	}
	return o.view[idx], true
}

// MoveLinear moves the selection by delta items.
func (o *Overview) MoveLinear(delta int) bool {
	moved := o.Selection.MoveLinear(delta)
	events.Selection.Move("linear", delta, o.Selection.Index())
	return moved
}

// MoveGrid moves the selection by rows, using columns as the row stride.
func (o *Overview) MoveGrid(rows, columns int) bool {
	moved := o.Selection.MoveGrid(rows, columns)
	events.Selection.Move("grid", rows*max(columns, 1), o.Selection.Index())
	return moved
}

// Select places the selection at i.
func (o *Overview) Select(i int) bool {
	moved := o.Selection.SetExplicit(i)
	events.Selection.Move("explicit", i, o.Selection.Index())
	return moved
}

func (o *Overview) resize() {
	before := o.Selection.Index()
	o.Selection.Resize(len(o.view))
	if before != o.Selection.Index() {
		events.Selection.Clamp(len(o.view), o.Selection.Index())
	}
}
