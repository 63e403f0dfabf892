package state

import (
	"testing"

	"github.com/atomicstack/tmux-overview/internal/window"
)

func numbered(n int) []window.Record {
	records := make([]window.Record, n)
	for i := range records {
		records[i] = window.Record{ID: string(rune('a' + i)), Title: "w"}
	}
	return records
}

func TestRowsRoundsUp(t *testing.T) {
	o, _ := newTestOverview(numbered(9)...)
	if got := o.Rows(4); got != 3 {
		t.Fatalf("expected 3 rows, got %d", got)
	}
	empty, _ := newTestOverview()
	if got := empty.Rows(4); got != 0 {
		t.Fatalf("expected 0 rows, got %d", got)
	}
}

func TestEnsureSelectionVisibleScrolls(t *testing.T) {
	o, _ := newTestOverview(numbered(20)...)
	o.Select(17)
	o.EnsureSelectionVisible(4, 2)
	if o.ViewportRow != 3 {
		t.Fatalf("expected viewport row 3, got %d", o.ViewportRow)
	}
	start, end := o.VisibleRange(4, 2)
	if start != 12 || end != 20 {
		t.Fatalf("expected range [12,20), got [%d,%d)", start, end)
	}

	o.Select(1)
	o.EnsureSelectionVisible(4, 2)
	if o.ViewportRow != 0 {
		t.Fatalf("expected viewport back at 0, got %d", o.ViewportRow)
	}
}

func TestEnsureSelectionVisibleClampsAfterShrink(t *testing.T) {
	o, src := newTestOverview(numbered(20)...)
	o.Select(4)
	o.ViewportRow = 4
	src.set(numbered(5)...)
	o.Sync()
	o.EnsureSelectionVisible(4, 1)
	if o.ViewportRow != 1 {
		t.Fatalf("expected viewport clamped to the row holding the selection, got %d", o.ViewportRow)
	}
}
