// Package parallel runs independent per-item work, such as one outline per
// tag, on a fixed set of goroutines.
package parallel

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dd0wney/cluso-simgraph/pkg/logging"
)

// ErrTooManyWorkers is returned when the worker count exceeds MaxWorkers.
var ErrTooManyWorkers = errors.New("worker count exceeds maximum")

// ErrTaskPanicked is returned by ForEach when at least one call panicked.
var ErrTaskPanicked = errors.New("task panicked")

// MaxWorkers bounds the pool size
const MaxWorkers = 1024

// WorkerPool manages a pool of worker goroutines
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	logger    logging.Logger
	panics    atomic.Int64
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // guards taskQueue against close during send
	closed    bool
}

// NewWorkerPool starts workers goroutines. Counts below one mean one.
func NewWorkerPool(workers int, logger logging.Logger) (*WorkerPool, error) {
	if workers <= 0 {
		workers = 1
	}
	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxWorkers)
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2),
		logger:    logger.With(logging.Component("parallel")),
	}
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool, nil
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		wp.run(task)
	}
}

// run keeps a panicking task from taking its worker down
func (wp *WorkerPool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			wp.panics.Add(1)
			wp.logger.Error("task panic recovered", logging.Any("panic", r))
		}
	}()
	task()
}

// Submit queues a task. It returns false once the pool is closed.
func (wp *WorkerPool) Submit(task func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return false
	}
	wp.taskQueue <- task
	return true
}

// Close stops accepting tasks and waits for queued ones to finish. It is
// safe to call more than once.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// Panics returns how many tasks panicked so far
func (wp *WorkerPool) Panics() int64 {
	return wp.panics.Load()
}

// ForEach calls fn for every index in [0, n) on up to workers goroutines
// and returns once all calls are done. Callers write results by index, so
// output order never depends on scheduling.
func ForEach(n, workers int, logger logging.Logger, fn func(i int)) error {
	if n <= 0 {
		return nil
	}
	pool, err := NewWorkerPool(min(workers, n), logger)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		pool.Submit(func() { fn(i) })
	}
	pool.Close()

	if p := pool.Panics(); p > 0 {
		return fmt.Errorf("%w: %d of %d", ErrTaskPanicked, p, n)
	}
	return nil
}
