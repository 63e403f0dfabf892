package state

// None marks the absence of a selection.
const None = -1

// Selection tracks the highlighted position inside a view of length n.
// The index is None exactly when n is zero.
type Selection struct {
	index int
	n     int
}

// NewSelection returns a selection over n items positioned at the first one.
func NewSelection(n int) Selection {
	s := Selection{index: None}
	s.Reset(n)
	return s
}

// Index returns the selected position or None.
func (s Selection) Index() int {
	return s.index
}

// Len returns the size of the view the selection refers to.
func (s Selection) Len() int {
	return s.n
}

// Valid reports whether a position is selected.
func (s Selection) Valid() bool {
	return s.index != None
}

// Reset selects the first item, or None when n is zero.
func (s *Selection) Reset(n int) {
	s.n = max(n, 0)
	if s.n == 0 {
		s.index = None
		return
	}
	s.index = 0
}

// Resize adapts the selection to a view that now holds n items.
func (s *Selection) Resize(n int) {
	s.n = max(n, 0)
	switch {
	case s.n == 0:
		s.index = None
	case s.index == None || s.index < 0:
		s.index = 0
	case s.index >= s.n:
		s.index = s.n - 1
	}
}

// MoveLinear moves by delta positions, wrapping at both ends.
func (s *Selection) MoveLinear(delta int) bool {
	return s.move(delta)
}

// MoveGrid moves by whole rows of the given column count, wrapping at both ends.
func (s *Selection) MoveGrid(rows, columns int) bool {
	if columns < 1 {
		columns = 1
	}
	return s.move(rows * columns)
}

// SetExplicit selects position i, clamped into range.
func (s *Selection) SetExplicit(i int) bool {
	old := s.index
	switch {
	case s.n == 0:
		s.index = None
	case i < 0:
		s.index = 0
	case i >= s.n:
		s.index = s.n - 1
	default:
		s.index = i
	}
	return old != s.index
}

func (s *Selection) move(delta int) bool {
	if s.n == 0 {
		s.index = None
		return false
	}
	old := s.index
	if s.index == None {
		s.index = 0
		return true
	}
	s.index = ((s.index+delta)%s.n + s.n) % s.n
	return old != s.index
}
