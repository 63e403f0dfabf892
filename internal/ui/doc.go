// Package ui contains the Bubble Tea program that renders the window
// overview inside a tmux popup.
//
// The Model owns no overview state of its own. Query, filtered view and
// selection live in internal/ui/state and are mutated only through the
// overlay.Controller, always from Update, so Bubble Tea's event loop is the
// single writer.
//
// Message flow:
//   - Service events arrive through waitForBackendEvent and are applied with
//     Controller.HandleEvent. A show event resets the overlay and schedules
//     the deferred search focus.
//   - Key presses are offered to Controller.HandleKey first (navigation,
//     activation, dismissal). Keys it leaves alone edit the search field.
//   - Mouse presses select a card; a second press on the same card within
//     doubleClickWindow activates it.
//   - Once the controller hides the overlay the program quits, which closes
//     the popup.
package ui
