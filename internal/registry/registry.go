// Package registry holds the authoritative window list for the overlay.
package registry

import (
	"sync"

	"github.com/atomicstack/tmux-overview/internal/logging/events"
	"github.com/atomicstack/tmux-overview/internal/window"
)

// Persister receives a snapshot after every mutation other than Bootstrap.
// Implementations must not block.
type Persister interface {
	Persist([]window.Record)
}

// Registry owns the ordered record list. Mutations are mutually exclusive;
// observers run after the lock is released, in subscription order.
type Registry struct {
	mu        sync.RWMutex
	records   []window.Record
	index     map[string]int
	version   uint64
	persister Persister
	observers []func()
}

// New returns an empty registry. p may be nil.
func New(p Persister) *Registry {
	return &Registry{persister: p, index: map[string]int{}}
}

// Subscribe registers fn to run after every mutation.
func (r *Registry) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	r.observers = append(r.observers, fn)
	r.mu.Unlock()
}

// Bootstrap installs the initial record set without persisting it.
func (r *Registry) Bootstrap(initial []window.Record) {
	r.mu.Lock()
	r.replaceLocked(initial)
	count := len(r.records)
	r.mu.Unlock()
	events.Registry.Bootstrap(count)
	r.notify()
}

// ApplyList replaces the record set with list. A record arriving without a
// thumbnail keeps the one previously stored under the same id.
func (r *Registry) ApplyList(list []window.Record) {
	r.mu.Lock()
	prior := make(map[string]string, len(r.records))
	for _, rec := range r.records {
		if rec.HasThumbnail() {
			prior[rec.ID] = rec.Thumbnail
		}
	}
	merged := make([]window.Record, 0, len(list))
	carried := 0
	for _, rec := range list {
		if !rec.HasThumbnail() {
			if thumb, ok := prior[rec.ID]; ok {
				rec.Thumbnail = thumb
				carried++
			}
		}
		merged = append(merged, rec)
	}
	r.replaceLocked(merged)
	snapshot := window.Clone(r.records)
	r.mu.Unlock()

	events.Registry.List(len(snapshot), carried)
	r.persist(snapshot)
	r.notify()
}

// ApplyThumbnail attaches thumb to the record with the given id. It reports
// whether a record was updated; unknown ids and empty payloads are ignored.
func (r *Registry) ApplyThumbnail(id, thumb string) bool {
	if thumb == "" {
		events.Registry.Thumbnail(id, false)
		return false
	}
	r.mu.Lock()
	idx, ok := r.index[id]
	if !ok {
		r.mu.Unlock()
		events.Registry.Thumbnail(id, false)
		return false
	}
	r.records[idx].Thumbnail = thumb
	r.version++
	snapshot := window.Clone(r.records)
	r.mu.Unlock()

	events.Registry.Thumbnail(id, true)
	r.persist(snapshot)
	r.notify()
	return true
}

// Records returns a copy of the current list in registry order.
func (r *Registry) Records() []window.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return window.Clone(r.records)
}

// Len reports the number of records.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Lookup returns the record stored under id.
func (r *Registry) Lookup(id string) (window.Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.index[id]
	if !ok {
		return window.Record{}, false
	}
	return r.records[idx], true
}

// Version increases with every mutation.
func (r *Registry) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

func (r *Registry) replaceLocked(list []window.Record) {
	records := make([]window.Record, 0, len(list))
	index := make(map[string]int, len(list))
	for _, rec := range list {
		if _, dup := index[rec.ID]; dup {
			events.Registry.Duplicate(rec.ID)
			continue
		}
		index[rec.ID] = len(records)
		records = append(records, rec)
	}
	r.records = records
	r.index = index
	r.version++
}

func (r *Registry) persist(snapshot []window.Record) {
	if r.persister == nil {
		return
	}
	r.persister.Persist(snapshot)
}

func (r *Registry) notify() {
	r.mu.RLock()
	observers := append([]func(){}, r.observers...)
	r.mu.RUnlock()
	for _, fn := range observers {
		fn()
	}
}
