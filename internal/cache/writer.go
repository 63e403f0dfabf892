package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/atomicstack/tmux-overview/internal/logging"
	"github.com/atomicstack/tmux-overview/internal/logging/events"
	"github.com/atomicstack/tmux-overview/internal/window"
)

// Saver is the write side of the cache.
type Saver interface {
	SaveSnapshot(ctx context.Context, records []window.Record) error
}

// Writer persists snapshots in the background. Only the most recent pending
// snapshot is written; older ones are dropped.
type Writer struct {
	saver   Saver
	timeout time.Duration

	mu      sync.Mutex
	idle    *sync.Cond
	latest  []window.Record
	pending bool
	writing bool
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// NewWriter starts a background writer for saver.
func NewWriter(saver Saver) *Writer {
	w := &Writer{
		saver:   saver,
		timeout: 5 * time.Second,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	w.idle = sync.NewCond(&w.mu)
	go w.loop()
	return w
}

// Persist queues records for writing and returns immediately.
func (w *Writer) Persist(records []window.Record) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	if w.pending {
		events.Cache.Dropped(len(w.latest))
	}
	w.latest = window.Clone(records)
	w.pending = true
	// wake is closed by Close under mu, so the send must stay under it too.
	select {
	case w.wake <- struct{}{}:
	default:
	}
	w.mu.Unlock()
}

// Flush blocks until every queued snapshot has been written.
func (w *Writer) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for (w.pending || w.writing) && !w.closed {
		w.idle.Wait()
	}
}

// Close writes any pending snapshot and stops the writer.
func (w *Writer) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return
	}
	w.closed = true
	close(w.wake)
	w.idle.Broadcast()
	w.mu.Unlock()
	<-w.done
}

func (w *Writer) loop() {
	defer close(w.done)
	for range w.wake {
		w.writeOne()
	}
	w.writeOne()
}

func (w *Writer) writeOne() {
	w.mu.Lock()
	if !w.pending {
		w.mu.Unlock()
		return
	}
	records := w.latest
	w.pending = false
	w.writing = true
	w.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	if err := w.saver.SaveSnapshot(ctx, records); err != nil {
		logging.Error(fmt.Errorf("persist window cache: %w", err))
	}
	cancel()

	w.mu.Lock()
	w.writing = false
	w.idle.Broadcast()
	w.mu.Unlock()
}
