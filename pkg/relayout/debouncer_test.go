package relayout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dd0wney/cluso-simgraph/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const testWindow = 20 * time.Millisecond

type recorder struct {
	mu     sync.Mutex
	widths []float64
	calls  chan float64
	err    error
}

func newRecorder() *recorder {
	return &recorder{calls: make(chan float64, 16)}
}

func (r *recorder) layout(ctx context.Context, width float64) error {
	r.mu.Lock()
	r.widths = append(r.widths, width)
	err := r.err
	r.mu.Unlock()
	r.calls <- width
	return err
}

func (r *recorder) wait(t *testing.T) float64 {
	t.Helper()
	select {
	case w := <-r.calls:
		return w
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for relayout")
		return 0
	}
}

func (r *recorder) expectNone(t *testing.T) {
	t.Helper()
	select {
	case w := <-r.calls:
		t.Fatalf("Unexpected relayout for width %f", w)
	case <-time.After(5 * testWindow):
	}
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return m.Counter.GetValue()
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	rec := newRecorder()
	reg := metrics.NewRegistry()
	db := New(rec.layout, WithWindow(testWindow), WithMetrics(reg))
	defer db.Close(context.Background())

	for _, w := range []float64{800, 850, 900, 950} {
		db.Request(w)
	}

	if got := rec.wait(t); got != 950 {
		t.Errorf("Relayout width = %f, want 950", got)
	}
	rec.expectNone(t)

	if last, ok := db.LastWidth(); !ok || last != 950 {
		t.Errorf("LastWidth() = %f, %v", last, ok)
	}
	if got := counterValue(t, reg.RelayoutRequestsTotal); got != 4 {
		t.Errorf("requests = %v, want 4", got)
	}
	if got := counterValue(t, reg.RelayoutCoalescedTotal); got != 3 {
		t.Errorf("coalesced = %v, want 3", got)
	}
}

func TestDebouncer_SkipsUnchangedWidth(t *testing.T) {
	rec := newRecorder()
	reg := metrics.NewRegistry()
	db := New(rec.layout, WithWindow(testWindow), WithMetrics(reg), WithInitialWidth(1024))
	defer db.Close(context.Background())

	db.Request(1024)
	rec.expectNone(t)

	if got := counterValue(t, reg.RelayoutSkippedTotal); got != 1 {
		t.Errorf("skipped = %v, want 1", got)
	}

	db.Request(1100)
	if got := rec.wait(t); got != 1100 {
		t.Errorf("Relayout width = %f, want 1100", got)
	}
}

func TestDebouncer_RetriesAfterError(t *testing.T) {
	rec := newRecorder()
	rec.err = errors.New("layout failed")
	db := New(rec.layout, WithWindow(testWindow), WithMetrics(metrics.NewRegistry()))
	defer db.Close(context.Background())

	db.Request(640)
	rec.wait(t)
	if _, ok := db.LastWidth(); ok {
		t.Error("Failed relayout should not record a width")
	}

	rec.mu.Lock()
	rec.err = nil
	rec.mu.Unlock()

	db.Request(640)
	if got := rec.wait(t); got != 640 {
		t.Errorf("Relayout width = %f, want 640", got)
	}
}

func TestDebouncer_CloseDropsPending(t *testing.T) {
	rec := newRecorder()
	db := New(rec.layout, WithWindow(testWindow), WithMetrics(metrics.NewRegistry()))

	db.Request(500)
	if err := db.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	rec.expectNone(t)

	db.Request(600)
	rec.expectNone(t)
}

func TestDebouncer_CloseCancelsSlowRelayout(t *testing.T) {
	started := make(chan struct{})
	canceled := make(chan struct{})

	db := New(func(ctx context.Context, width float64) error {
		close(started)
		<-ctx.Done()
		close(canceled)
		return ctx.Err()
	}, WithWindow(testWindow), WithMetrics(metrics.NewRegistry()))

	db.Request(700)
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), testWindow)
	defer cancel()
	if err := db.Close(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Close() error = %v, want deadline exceeded", err)
	}

	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("Running relayout should observe cancellation")
	}
}

func TestDebouncer_StaleTimerKeepsNewerRequest(t *testing.T) {
	rec := newRecorder()
	reg := metrics.NewRegistry()
	db := New(rec.layout, WithWindow(time.Hour), WithMetrics(reg))
	defer db.Close(context.Background())

	db.Request(800)
	db.mu.Lock()
	stale := db.gen
	db.mu.Unlock()
	db.Request(900)

	// The first timer fires late, after the second Request replaced it.
	db.fire(stale)
	rec.expectNone(t)

	db.mu.Lock()
	current, timer := db.gen, db.timer
	db.mu.Unlock()
	if timer == nil {
		t.Fatal("Stale fire dropped the newer timer")
	}
	if got := counterValue(t, reg.RelayoutCoalescedTotal); got != 2 {
		t.Errorf("coalesced = %v, want 2", got)
	}

	db.fire(current)
	if got := rec.wait(t); got != 900 {
		t.Errorf("Relayout width = %f, want 900", got)
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.timer != nil {
		t.Error("Timer still set after its own fire")
	}
}
