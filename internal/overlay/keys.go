package overlay

import "github.com/atomicstack/tmux-overview/internal/logging/events"

// CompositionKeyCode is reported by some terminals and input methods for
// key events that belong to an in-progress composition.
const CompositionKeyCode = 229

// Key is a keyboard event as seen by the overlay.
type Key struct {
	Name      string
	Ctrl      bool
	Alt       bool
	Shift     bool
	Meta      bool
	Code      int
	Composing bool
}

// Outcome describes how HandleKey treated a key.
type Outcome struct {
	Handled        bool
	PreventDefault bool
	Activated      bool
	Hidden         bool
}

func (k Key) composing() bool {
	return k.Composing || k.Code == CompositionKeyCode
}

func (k Key) bare() bool {
	return !k.Ctrl && !k.Alt && !k.Meta
}

// unmodified is stricter than bare: shift also disqualifies Enter and Escape.
func (k Key) unmodified() bool {
	return k.bare() && !k.Shift
}

// HandleKey runs the navigation, activation and dismissal bindings. Keys it
// does not consume are left for the search field.
func (c *Controller) HandleKey(k Key) Outcome {
	out := c.handleKey(k)
	events.Overlay.Key(k.Name, out.Handled)
	return out
}

func (c *Controller) handleKey(k Key) Outcome {
	switch k.Name {
	case "enter":
		if !k.unmodified() || k.composing() || c.composing {
			return Outcome{}
		}
		c.Activate()
		return Outcome{Handled: true, PreventDefault: true, Activated: true, Hidden: true}
	case "esc":
		if !k.unmodified() {
			return Outcome{}
		}
		c.Dismiss()
		return Outcome{Handled: true, PreventDefault: true, Hidden: true}
	case "tab":
		if k.Shift {
			c.overview.MoveLinear(-1)
		} else {
			c.overview.MoveLinear(1)
		}
		return navigated()
	}

	if k.Alt && !k.Ctrl {
		switch k.Name {
		case "left", "h":
			c.overview.MoveLinear(-1)
			return navigated()
		case "right", "l":
			c.overview.MoveLinear(1)
			return navigated()
		case "up", "k":
			c.overview.MoveGrid(-1, c.columns)
			return navigated()
		case "down", "j":
			c.overview.MoveGrid(1, c.columns)
			return navigated()
		}
	}

	if k.bare() {
		switch k.Name {
		case "up":
			c.overview.MoveGrid(-1, c.columns)
			return navigated()
		case "down":
			c.overview.MoveGrid(1, c.columns)
			return navigated()
		}
	}
	return Outcome{}
}

func navigated() Outcome {
	return Outcome{Handled: true, PreventDefault: true}
}
