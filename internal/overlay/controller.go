// Package overlay drives the overview surface: showing, hiding, activation
// and keyboard handling. All methods must be called from a single goroutine.
package overlay

import (
	"context"
	"errors"
	"fmt"

	"github.com/atomicstack/tmux-overview/internal/backend"
	"github.com/atomicstack/tmux-overview/internal/data/dispatcher"
	"github.com/atomicstack/tmux-overview/internal/logging"
	"github.com/atomicstack/tmux-overview/internal/logging/events"
	"github.com/atomicstack/tmux-overview/internal/registry"
	"github.com/atomicstack/tmux-overview/internal/ui/state"
	"github.com/atomicstack/tmux-overview/internal/window"
)

// DefaultColumns is the grid row stride used before the layout is known.
const DefaultColumns = 4

// Service is the window service the controller issues requests to.
type Service interface {
	Shortcut() string
	SetShortcut(value string) error
	CheckScreenRecordingPermission() bool
	RefreshWindowsAsync() error
	ActivateWindow(id string) error
	HideOverlay() error
	SwitchToEnglishInput() error
	Events() <-chan backend.Event
}

// Preferences exposes the settings consulted on show.
type Preferences interface {
	DisableIME() bool
}

// Visibility is the lifecycle state of the overlay.
type Visibility int

const (
	Hidden Visibility = iota
	Shown
)

// Options configures a Controller.
type Options struct {
	Columns int
	Mode    state.MatchMode
}

type Controller struct {
	service    Service
	prefs      Preferences
	dispatcher *dispatcher.Dispatcher
	overview   *state.Overview

	visibility     Visibility
	columns        int
	composing      bool
	focusPending   bool
	focused        bool
	loading        bool
	captureAllowed bool
	status         string
}

// New builds a controller over reg. The registry should already hold its
// bootstrap records.
func New(svc Service, reg *registry.Registry, prefs Preferences, opts Options) *Controller {
	c := &Controller{
		service:        svc,
		prefs:          prefs,
		dispatcher:     dispatcher.New(reg),
		overview:       state.NewOverview(reg, opts.Mode),
		columns:        DefaultColumns,
		captureAllowed: true,
	}
	if opts.Columns > 0 {
		c.columns = opts.Columns
	}
	reg.Subscribe(c.overview.Sync)
	return c
}

// Overview exposes the query, view and selection.
func (c *Controller) Overview() *state.Overview { return c.overview }

// Visibility reports whether the overlay is shown.
func (c *Controller) Visibility() Visibility { return c.visibility }

// Columns returns the row stride used for vertical movement.
func (c *Controller) Columns() int { return c.columns }

// Loading reports whether thumbnails are still arriving.
func (c *Controller) Loading() bool { return c.loading }

// CaptureAllowed reports the last screen-capture permission check.
func (c *Controller) CaptureAllowed() bool { return c.captureAllowed }

// Status returns the last non-fatal service error, if any.
func (c *Controller) Status() string { return c.status }

// Composing reports whether an input-method composition is active.
func (c *Controller) Composing() bool { return c.composing }

// FocusPending reports whether the search field still needs focus.
func (c *Controller) FocusPending() bool { return c.focusPending }

// Focused reports whether the search field holds focus.
func (c *Controller) Focused() bool { return c.focused }

// SetColumns updates the row stride to match the rendered grid.
func (c *Controller) SetColumns(n int) {
	if n < 1 {
		n = 1
	}
	c.columns = n
}

// Show makes the overlay visible, resets query and selection, and starts a
// background refresh.
func (c *Controller) Show() {
	c.visibility = Shown
	c.reset()
	disable := c.prefs != nil && c.prefs.DisableIME()
	events.Overlay.Show(disable)
	if disable {
		if err := c.service.SwitchToEnglishInput(); err != nil {
			c.fail("ime", err)
		}
	}
	c.captureAllowed = c.service.CheckScreenRecordingPermission()
	c.loading = true
	if err := c.service.RefreshWindowsAsync(); err != nil {
		c.loading = false
		c.fail("refresh", err)
	}
}

// FocusSearch completes a pending focus request. It reports whether focus
// was granted.
func (c *Controller) FocusSearch() bool {
	if !c.focusPending {
		return false
	}
	c.focusPending = false
	c.focused = true
	events.Overlay.Focus()
	return true
}

// Activate brings the selected record (or the first one) to the front, then
// resets and hides the overlay. The hide happens even when activation fails
// or there is nothing to activate.
func (c *Controller) Activate() (window.Record, bool) {
	target, ok := c.overview.Current()
	if ok {
		if err := c.service.ActivateWindow(target.ID); err != nil {
			c.fail("activate", err)
		}
	}
	events.Overlay.Activate(target.ID, ok)
	c.reset()
	c.hide("activate")
	return target, ok
}

// ActivateAt selects position i of the view and activates it.
func (c *Controller) ActivateAt(i int) (window.Record, bool) {
	c.overview.Select(i)
	return c.Activate()
}

// Dismiss resets the overlay and hides it without activating anything.
func (c *Controller) Dismiss() {
	c.reset()
	c.hide("dismiss")
}

// Hide asks the service to hide the surface.
func (c *Controller) Hide() {
	c.hide("request")
}

// SetQuery replaces the search text.
func (c *Controller) SetQuery(query string) {
	c.overview.SetQuery(query, len([]rune(query)))
}

// CompositionStart marks the beginning of input-method composition. Terminal
// frontends never call it: the IME commits text before it reaches the pty.
func (c *Controller) CompositionStart() {
	c.composing = true
	events.Overlay.Composition(true)
}

// CompositionEnd marks the end of input-method composition.
func (c *Controller) CompositionEnd() {
	c.composing = false
	events.Overlay.Composition(false)
}

// HandleEvent applies a service event.
func (c *Controller) HandleEvent(evt backend.Event) dispatcher.Result {
	res := c.dispatcher.Handle(evt)
	if res.Err != nil {
		c.status = res.Err.Error()
		c.fail(evt.Kind.String(), res.Err)
	}
	if res.ListUpdated {
		c.status = ""
	}
	if res.ShowRequested {
		c.Show()
	}
	if res.ThumbnailsComplete {
		c.loading = false
	}
	return res
}

// Drain applies events until a refresh completes, the channel closes or ctx
// ends. It is the headless counterpart of the interactive event loop.
func (c *Controller) Drain(ctx context.Context, ch <-chan backend.Event) error {
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for window refresh: %w", ctx.Err())
		case evt, ok := <-ch:
			if !ok {
				return nil
			}
			if res := c.HandleEvent(evt); res.ThumbnailsComplete {
				return nil
			}
		}
	}
}

func (c *Controller) reset() {
	c.overview.Reset()
	c.focusPending = true
	c.focused = false
	c.composing = false
}

func (c *Controller) hide(reason string) {
	events.Overlay.Hide(reason)
	if err := c.service.HideOverlay(); err != nil {
		c.fail("hide", err)
	}
	c.visibility = Hidden
}

func (c *Controller) fail(stage string, err error) {
	events.Overlay.Error(stage, err)
	if errors.Is(err, backend.ErrUnsupported) {
		return
	}
	logging.Error(fmt.Errorf("%s: %w", stage, err))
}
