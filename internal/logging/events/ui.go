package events

import "github.com/atomicstack/tmux-overview/internal/logging"

type OverlayTracer struct{}

type FilterTracer struct{}

type SelectionTracer struct{}

type SettingsTracer struct{}

var (
	Overlay   = OverlayTracer{}
	Filter    = FilterTracer{}
	Selection = SelectionTracer{}
	Settings  = SettingsTracer{}
)

func (OverlayTracer) Show(disableIME bool) {
	logging.Trace("overlay.show", map[string]interface{}{"disableIME": disableIME})
}

func (OverlayTracer) Hide(reason string) {
	logging.Trace("overlay.hide", map[string]interface{}{"reason": reason})
}

func (OverlayTracer) Activate(id string, found bool) {
	logging.Trace("overlay.activate", map[string]interface{}{"id": id, "found": found})
}

func (OverlayTracer) Focus() {
	logging.Trace("overlay.focus", nil)
}

func (OverlayTracer) Key(key string, handled bool) {
	logging.Trace("overlay.key", map[string]interface{}{"key": key, "handled": handled})
}

func (OverlayTracer) Composition(active bool) {
	logging.Trace("overlay.composition", map[string]interface{}{"active": active})
}

func (OverlayTracer) Error(stage string, err error) {
	if err == nil {
		return
	}
	logging.Trace("overlay.error", map[string]interface{}{"stage": stage, "error": err.Error()})
}

func (FilterTracer) Query(query string, matches int) {
	logging.Trace("filter.query", map[string]interface{}{"query": query, "matches": matches})
}

func (FilterTracer) WordBackspace(query string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"query": query})
}

func (FilterTracer) Cursor(pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"cursor": pos})
}

func (SelectionTracer) Move(kind string, delta, index int) {
	logging.Trace("selection.move", map[string]interface{}{"kind": kind, "delta": delta, "index": index})
}

func (SelectionTracer) Clamp(length, index int) {
	logging.Trace("selection.clamp", map[string]interface{}{"length": length, "index": index})
}

func (SettingsTracer) Load(path string, fromDisk bool) {
	logging.Trace("settings.load", map[string]interface{}{"path": path, "fromDisk": fromDisk})
}

func (SettingsTracer) Shortcut(value string) {
	logging.Trace("settings.shortcut", map[string]interface{}{"value": value})
}

func (SettingsTracer) Reload(path string) {
	logging.Trace("settings.reload", map[string]interface{}{"path": path})
}
