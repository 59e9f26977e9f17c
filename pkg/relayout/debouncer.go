// Package relayout coalesces bursts of canvas resizes into a single
// re-layout once the size has been stable for a quiet window.
package relayout

import (
	"context"
	"sync"
	"time"

	"github.com/dd0wney/cluso-simgraph/pkg/logging"
	"github.com/dd0wney/cluso-simgraph/pkg/metrics"
)

// DefaultWindow is the quiet period after the last resize
const DefaultWindow = 100 * time.Millisecond

// Func lays the graph out again for a new canvas width.
type Func func(ctx context.Context, width float64) error

// Debouncer runs Func for the latest requested width once no request has
// arrived for the window. A width equal to the last one laid out is dropped.
// Calls to Func never overlap.
type Debouncer struct {
	fn      Func
	window  time.Duration
	logger  logging.Logger
	metrics *metrics.Registry

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	timer    *time.Timer
	gen      uint64
	pending  float64
	last     float64
	hasLast  bool
	closed   bool
	inflight sync.WaitGroup
	runMu    sync.Mutex
}

// Option configures a Debouncer
type Option func(*Debouncer)

// WithWindow sets the quiet window
func WithWindow(d time.Duration) Option {
	return func(db *Debouncer) {
		if d > 0 {
			db.window = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(db *Debouncer) {
		if l != nil {
			db.logger = l
		}
	}
}

// WithMetrics sets the metrics registry
func WithMetrics(r *metrics.Registry) Option {
	return func(db *Debouncer) {
		if r != nil {
			db.metrics = r
		}
	}
}

// WithInitialWidth records the width of the layout that already exists so
// a resize back to it is skipped.
func WithInitialWidth(width float64) Option {
	return func(db *Debouncer) {
		db.last = width
		db.hasLast = true
	}
}

// New creates a debouncer around fn
func New(fn Func, opts ...Option) *Debouncer {
	ctx, cancel := context.WithCancel(context.Background())
	db := &Debouncer{
		fn:      fn,
		window:  DefaultWindow,
		logger:  logging.NewNopLogger(),
		metrics: metrics.DefaultRegistry(),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(db)
	}
	db.logger = db.logger.With(logging.Component("relayout"))
	return db
}

// Request schedules a re-layout for width, replacing any request still
// waiting out the window. Requests after Close are ignored.
func (db *Debouncer) Request(width float64) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return
	}
	db.metrics.RelayoutRequestsTotal.Inc()

	if db.timer != nil && db.timer.Stop() {
		db.metrics.RelayoutCoalescedTotal.Inc()
	}
	db.pending = width
	db.gen++
	gen := db.gen
	db.timer = time.AfterFunc(db.window, func() { db.fire(gen) })
}

// LastWidth returns the width of the most recent successful layout.
func (db *Debouncer) LastWidth() (float64, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.last, db.hasLast
}

// fire runs the request scheduled as generation gen. A timer that fired
// while a newer Request was replacing it finds a later generation and
// leaves the newer timer to carry the pending width.
func (db *Debouncer) fire(gen uint64) {
	db.mu.Lock()
	if db.closed {
		db.mu.Unlock()
		return
	}
	if gen != db.gen {
		db.mu.Unlock()
		db.metrics.RelayoutCoalescedTotal.Inc()
		return
	}
	width := db.pending
	db.timer = nil
	db.inflight.Add(1)
	db.mu.Unlock()
	defer db.inflight.Done()

	db.runMu.Lock()
	defer db.runMu.Unlock()

	db.mu.Lock()
	unchanged := db.hasLast && db.last == width
	db.mu.Unlock()
	if unchanged {
		db.metrics.RelayoutSkippedTotal.Inc()
		db.logger.Debug("width unchanged, skipping relayout", logging.Float64("width", width))
		return
	}

	timer := logging.StartTimer(db.logger, "relayout", logging.Float64("width", width))
	if err := db.fn(db.ctx, width); err != nil {
		timer.EndError(err)
		return
	}
	timer.End()

	db.mu.Lock()
	db.last = width
	db.hasLast = true
	db.mu.Unlock()
}

// Close drops any waiting request and waits for a running re-layout to
// finish or ctx to expire, whichever comes first.
func (db *Debouncer) Close(ctx context.Context) error {
	db.mu.Lock()
	db.closed = true
	if db.timer != nil {
		db.timer.Stop()
		db.timer = nil
	}
	db.mu.Unlock()

	done := make(chan struct{})
	go func() {
		db.inflight.Wait()
		close(done)
	}()

	defer db.cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
