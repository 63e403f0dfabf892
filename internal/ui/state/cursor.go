package state

// Rows returns how many grid rows the view occupies for the given column count.
func (o *Overview) Rows(columns int) int {
	if columns < 1 {
		columns = 1
	}
	n := len(o.view)
	if n == 0 {
		return 0
	}
	return (n + columns - 1) / columns
}

// EnsureSelectionVisible adjusts the first visible row so the selected card
// stays within a window of visibleRows rows.
func (o *Overview) EnsureSelectionVisible(columns, visibleRows int) {
	total := o.Rows(columns)
	if total == 0 || visibleRows <= 0 {
		o.ViewportRow = 0
		return
	}
	if columns < 1 {
		columns = 1
	}
	maxOffset := total - visibleRows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if o.ViewportRow > maxOffset {
		o.ViewportRow = maxOffset
	}
	if o.ViewportRow < 0 {
		o.ViewportRow = 0
	}
	idx := o.Selection.Index()
	if idx < 0 {
		return
	}
	row := idx / columns
	if row < o.ViewportRow {
		o.ViewportRow = row
	}
	if upper := o.ViewportRow + visibleRows - 1; row > upper {
		o.ViewportRow = row - visibleRows + 1
	}
}

// VisibleRange returns the half-open index range of cards drawn on screen.
func (o *Overview) VisibleRange(columns, visibleRows int) (int, int) {
	if columns < 1 {
		columns = 1
	}
	n := len(o.view)
	start := o.ViewportRow * columns
	if start > n {
		start = n
	}
	if visibleRows <= 0 {
		return start, n
	}
	end := start + visibleRows*columns
	if end > n {
		end = n
	}
	return start, end
}
