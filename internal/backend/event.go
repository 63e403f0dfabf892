package backend

import "github.com/atomicstack/tmux-overview/internal/window"

// Kind identifies what an Event carries.
type Kind int

const (
	// KindShow asks the overlay to appear.
	KindShow Kind = iota
	// KindList carries a complete window list.
	KindList
	// KindThumbnail carries one preview payload.
	KindThumbnail
	// KindThumbnailsComplete marks the end of a refresh.
	KindThumbnailsComplete
)

func (k Kind) String() string {
	switch k {
	case KindShow:
		return "overlay:show"
	case KindList:
		return "windows:list"
	case KindThumbnail:
		return "window:thumbnail"
	case KindThumbnailsComplete:
		return "windows:thumbnails-complete"
	default:
		return "unknown"
	}
}

// Event is a notification emitted by a window service.
type Event struct {
	Kind       Kind
	Windows    []window.Record
	ID         string
	Thumbnail  string
	Generation uint64
	Err        error
}
