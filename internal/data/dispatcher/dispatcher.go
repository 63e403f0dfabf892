package dispatcher

import (
	"github.com/atomicstack/tmux-overview/internal/backend"
	"github.com/atomicstack/tmux-overview/internal/window"
)

// Result summarises what an event changed.
type Result struct {
	ListUpdated        bool
	ThumbnailUpdated   bool
	ThumbnailsComplete bool
	ShowRequested      bool
	Err                error
}

// Store is the registry surface the dispatcher writes to.
type Store interface {
	ApplyList([]window.Record)
	ApplyThumbnail(id, thumb string) bool
}

type Dispatcher struct {
	store Store
}

func New(store Store) *Dispatcher {
	return &Dispatcher{store: store}
}

// Handle applies evt to the store. Failed events change nothing and are
// reported through Result.Err.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		res.Err = evt.Err
		return res
	}
	switch evt.Kind {
	case backend.KindShow:
		res.ShowRequested = true
	case backend.KindList:
		d.store.ApplyList(evt.Windows)
		res.ListUpdated = true
	case backend.KindThumbnail:
		res.ThumbnailUpdated = d.store.ApplyThumbnail(evt.ID, evt.Thumbnail)
	case backend.KindThumbnailsComplete:
		res.ThumbnailsComplete = true
	}
	return res
}
