package backend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atomicstack/tmux-overview/internal/logging/events"
	"github.com/atomicstack/tmux-overview/internal/window"
	"golang.org/x/sync/errgroup"
)

// Provider enumerates windows and captures their previews.
type Provider interface {
	List(ctx context.Context) ([]window.Record, error)
	Thumbnail(ctx context.Context, id string) (string, error)
}

// Refresher runs list refreshes in the background and publishes their
// results as events. Each refresh emits a list, then any number of
// thumbnails, then a completion marker. A newer refresh supersedes older
// ones: superseded workers stop emitting.
type Refresher struct {
	provider Provider
	workers  int
	throttle *throttle

	generation atomic.Uint64

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.RWMutex
	stopped bool
	events  chan Event
	wg      sync.WaitGroup
	once    sync.Once
}

// Option adjusts a Refresher.
type Option func(*Refresher)

// WithWorkers bounds the number of concurrent thumbnail captures.
func WithWorkers(n int) Option {
	return func(r *Refresher) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithMinInterval spaces successive list fetches.
func WithMinInterval(d time.Duration) Option {
	return func(r *Refresher) {
		r.throttle = newThrottle(d)
	}
}

// NewRefresher creates a refresher for p. No work starts until Refresh.
func NewRefresher(p Provider, opts ...Option) *Refresher {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Refresher{
		provider: p,
		workers:  4,
		throttle: newThrottle(250 * time.Millisecond),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 64),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Events returns the channel refresh results are delivered on. It is closed
// by Stop.
func (r *Refresher) Events() <-chan Event {
	return r.events
}

// Generation returns the identifier of the most recent refresh.
func (r *Refresher) Generation() uint64 {
	return r.generation.Load()
}

// Refresh starts a new refresh and returns its generation without waiting
// for any result.
func (r *Refresher) Refresh() (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.stopped {
		return 0, ErrStopped
	}
	gen := r.generation.Add(1)
	r.wg.Add(1)
	go r.run(gen)
	return gen, nil
}

// Emit publishes evt. It reports false once the refresher is stopped.
func (r *Refresher) Emit(evt Event) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.stopped {
		return false
	}
	select {
	case <-r.ctx.Done():
		return false
	case r.events <- evt:
		return true
	}
}

// Stop cancels outstanding work, waits for workers to exit and closes the
// event channel.
func (r *Refresher) Stop() {
	r.once.Do(func() {
		r.cancel()
		r.mu.Lock()
		r.stopped = true
		r.mu.Unlock()
		r.wg.Wait()
		close(r.events)
	})
}

func (r *Refresher) current(gen uint64) bool {
	return r.generation.Load() == gen
}

func (r *Refresher) run(gen uint64) {
	defer r.wg.Done()
	events.Backend.Refresh(gen)

	if err := r.throttle.wait(r.ctx); err != nil {
		return
	}
	if !r.current(gen) {
		events.Backend.Stale(gen, "list")
		return
	}
	records, err := r.provider.List(r.ctx)
	if err != nil {
		if r.ctx.Err() != nil {
			return
		}
		r.Emit(Event{Kind: KindList, Generation: gen, Err: fmt.Errorf("list windows: %w", err)})
		if r.current(gen) {
			r.Emit(Event{Kind: KindThumbnailsComplete, Generation: gen})
		}
		return
	}
	if !r.current(gen) {
		events.Backend.Stale(gen, "list")
		return
	}
	r.Emit(Event{Kind: KindList, Windows: records, Generation: gen})

	g, ctx := errgroup.WithContext(r.ctx)
	g.SetLimit(r.workers)
	for _, rec := range records {
		id := rec.ID
		if id == "" {
			continue
		}
		g.Go(func() error {
			if !r.current(gen) {
				return nil
			}
			thumb, err := r.provider.Thumbnail(ctx, id)
			if err != nil {
				events.Backend.ThumbnailError(id, err)
				return nil
			}
			if thumb == "" || !r.current(gen) {
				return nil
			}
			r.Emit(Event{Kind: KindThumbnail, ID: id, Thumbnail: thumb, Generation: gen})
			return nil
		})
	}
	_ = g.Wait()

	if !r.current(gen) {
		events.Backend.Stale(gen, "complete")
		return
	}
	events.Backend.Complete(gen, len(records))
	r.Emit(Event{Kind: KindThumbnailsComplete, Generation: gen})
}
