package events

import "github.com/atomicstack/tmux-overview/internal/logging"

type RegistryTracer struct{}

type BackendTracer struct{}

type CacheTracer struct{}

var (
	Registry = RegistryTracer{}
	Backend  = BackendTracer{}
	Cache    = CacheTracer{}
)

func (RegistryTracer) Bootstrap(count int) {
	logging.Trace("registry.bootstrap", map[string]interface{}{"count": count})
}

func (RegistryTracer) List(count, carried int) {
	logging.Trace("windows:list", map[string]interface{}{"count": count, "carried": carried})
}

func (RegistryTracer) Thumbnail(id string, applied bool) {
	logging.Trace("window:thumbnail", map[string]interface{}{"id": id, "applied": applied})
}

func (RegistryTracer) Duplicate(id string) {
	logging.Trace("registry.duplicate", map[string]interface{}{"id": id})
}

func (BackendTracer) Refresh(generation uint64) {
	logging.Trace("backend.refresh", map[string]interface{}{"generation": generation})
}

func (BackendTracer) Stale(generation uint64, stage string) {
	logging.Trace("backend.stale", map[string]interface{}{"generation": generation, "stage": stage})
}

func (BackendTracer) ThumbnailError(id string, err error) {
	payload := map[string]interface{}{"id": id}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("backend.thumbnail.error", payload)
}

func (BackendTracer) Complete(generation uint64, count int) {
	logging.Trace("windows:thumbnails-complete", map[string]interface{}{"generation": generation, "count": count})
}

func (BackendTracer) Command(name string, args []string) {
	logging.Trace("backend.command", map[string]interface{}{"name": name, "args": args})
}

func (CacheTracer) Load(source string, count int) {
	logging.Trace("cache.load", map[string]interface{}{"source": source, "count": count})
}

func (CacheTracer) Save(count int) {
	logging.Trace("cache.save", map[string]interface{}{"count": count})
}

func (CacheTracer) Dropped(count int) {
	logging.Trace("cache.coalesce", map[string]interface{}{"dropped": count})
}
