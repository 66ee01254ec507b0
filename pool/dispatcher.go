// Package pool runs bcrypt work on a fixed set of worker goroutines so that
// callers on latency-sensitive paths never compute a hash inline.
//
// Work is only accepted between Start and Stop. A caller blocks until its job
// finishes, its context is done or the Dispatcher stops. A cancelled caller only stops waiting: the job it
// submitted still runs to completion on its worker and the result is
// dropped.
package pool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/hasbyte1/go-bcrypt/metrics"
)

var (
	// ErrStopped is returned for work submitted to, or still queued on, a
	// stopped Dispatcher.
	ErrStopped = errors.New("pool: dispatcher stopped")

	// ErrNotStarted is returned for work submitted before Start.
	ErrNotStarted = errors.New("pool: dispatcher not started")

	// ErrQueueFull is returned by TryCompare when the buffer is at capacity.
	ErrQueueFull = errors.New("pool: job queue is full")

	// ErrInvalidConfig is returned by New for negative sizes.
	ErrInvalidConfig = errors.New("pool: invalid config")
)

// Config sizes a Dispatcher. Zero values select runtime.NumCPU() workers and
// a queue twice that long.
type Config struct {
	Workers   int `yaml:"workers"`
	QueueSize int `yaml:"queue_size"`
}

// Option configures optional Dispatcher collaborators.
type Option func(*Dispatcher)

// WithMetrics records every job on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithLogger sets the logger used for lifecycle events. Passwords and hashes
// are never logged.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// job is a closed interface; only types in this package implement it.
type job interface {
	execute(m *metrics.Metrics)
}

// Dispatcher manages a fixed pool of worker goroutines that process bcrypt
// jobs.
type Dispatcher struct {
	workers int
	jobs    chan job
	quit    chan struct{}
	wg      sync.WaitGroup

	startOnce sync.Once
	stopOnce  sync.Once
	started   atomic.Bool

	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates a Dispatcher. Workers are not running until Start is called.
func New(cfg Config, opts ...Option) (*Dispatcher, error) {
	if cfg.Workers < 0 || cfg.QueueSize < 0 {
		return nil, fmt.Errorf("%w: workers=%d queue_size=%d", ErrInvalidConfig, cfg.Workers, cfg.QueueSize)
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 2 * cfg.Workers
	}

	d := &Dispatcher{
		workers: cfg.Workers,
		jobs:    make(chan job, cfg.QueueSize),
		quit:    make(chan struct{}),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("component", "pool")
	return d, nil
}

// Workers returns the number of worker goroutines.
func (d *Dispatcher) Workers() int { return d.workers }

// QueueCap returns the job buffer capacity.
func (d *Dispatcher) QueueCap() int { return cap(d.jobs) }

// Start launches the workers. Calling it again has no effect.
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		d.wg.Add(d.workers)
		for range d.workers {
			go d.worker()
		}
		d.started.Store(true)
		d.logger.Debug("dispatcher started", "workers", d.workers, "queue_size", cap(d.jobs))
	})
}

// Stop signals the workers to exit and waits for in-flight jobs to finish.
// Jobs still queued are abandoned and their callers receive ErrStopped.
// Stop is idempotent.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.quit)
		d.wg.Wait()
		d.logger.Debug("dispatcher stopped", "abandoned", len(d.jobs))
		d.metrics.SetQueueDepth(0)
	})
}

func (d *Dispatcher) stopped() bool {
	select {
	case <-d.quit:
		return true
	default:
		return false
	}
}

// accepting reports why j cannot be queued, if it cannot.
func (d *Dispatcher) accepting() error {
	if d.stopped() {
		return ErrStopped
	}
	if !d.started.Load() {
		return ErrNotStarted
	}
	return nil
}

// trySubmit enqueues j without blocking.
func (d *Dispatcher) trySubmit(j job) error {
	if err := d.accepting(); err != nil {
		return err
	}
	select {
	case d.jobs <- j:
		d.metrics.SetQueueDepth(len(d.jobs))
		return nil
	default:
		return ErrQueueFull
	}
}

// submit enqueues j, blocking while the queue is full.
func (d *Dispatcher) submit(ctx context.Context, j job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.accepting(); err != nil {
		return err
	}
	select {
	case d.jobs <- j:
		d.metrics.SetQueueDepth(len(d.jobs))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-d.quit:
		return ErrStopped
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case <-d.quit:
			return
		case j := <-d.jobs:
			if d.stopped() {
				return
			}
			d.metrics.SetQueueDepth(len(d.jobs))
			d.metrics.WorkerStarted()
			j.execute(d.metrics)
			d.metrics.WorkerDone()
		}
	}
}

// await blocks for the result of a submitted job.
func await[T any](ctx context.Context, d *Dispatcher, result chan T) (T, error) {
	var zero T
	select {
	case r := <-result:
		return r, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-d.quit:
		// A worker may have delivered just before quitting.
		select {
		case r := <-result:
			return r, nil
		default:
			return zero, ErrStopped
		}
	}
}
