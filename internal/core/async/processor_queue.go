package async

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"log/slog"

	"github.com/joseph-ayodele/blueparser/constants"
	"github.com/joseph-ayodele/blueparser/internal/metrics"
)

type ProcessorQueue struct {
	proc    FileProcessor
	sink    Sink
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool

	done, invalid, failed atomic.Int64
}

// Stats counts jobs by terminal status.
type Stats struct {
	Done    int64
	Invalid int64
	Failed  int64
}

func (s Stats) Total() int64 { return s.Done + s.Invalid + s.Failed }

type Option func(*ProcessorQueue)

func WithWorkers(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}
func WithProcessTimeout(d time.Duration) Option {
	return func(q *ProcessorQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

// WithSink sets where outcomes go; by default they are only logged.
func WithSink(s Sink) Option {
	return func(q *ProcessorQueue) {
		if s != nil {
			q.sink = s
		}
	}
}

func NewProcessorQueue(proc FileProcessor, logger *slog.Logger, opts ...Option) *ProcessorQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &ProcessorQueue{
		proc:    proc,
		logger:  logger,
		workers: 4,
		timeout: 2 * time.Minute,
		ch:      make(chan Job, 256),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *ProcessorQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Debug("worker started", "worker_id", workerID)
				for job := range q.ch {
					metrics.BatchQueueDepth.Set(float64(len(q.ch)))
					q.run(workerID, job)
				}
				q.logger.Debug("worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *ProcessorQueue) run(workerID int, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	start := time.Now()
	res, err := q.proc.ProcessFile(ctx, job.Path)
	out := Outcome{Job: job, Result: res, Err: err, Elapsed: time.Since(start)}
	switch {
	case err != nil:
		out.Status = constants.JobStatusFailed
		q.failed.Add(1)
		q.logger.Error("processing failed", "worker_id", workerID, "job_id", job.ID, "path", job.Path, "error", err)
	case res.Validation != nil && !res.Validation.IsValid:
		out.Status = constants.JobStatusInvalid
		q.invalid.Add(1)
		q.logger.Warn("processed document with validation errors", "worker_id", workerID, "job_id", job.ID,
			"path", job.Path, "errors", res.Validation.Errors)
	default:
		out.Status = constants.JobStatusDone
		q.done.Add(1)
		q.logger.Info("processed document successfully", "worker_id", workerID, "job_id", job.ID,
			"path", job.Path, "drawing_type", res.Classification.DrawingType, "elapsed_ms", out.Elapsed.Milliseconds())
	}
	metrics.BatchJobsTotal.WithLabelValues(string(out.Status)).Inc()

	if q.sink == nil {
		return
	}
	if err := q.sink.Handle(ctx, out); err != nil {
		q.logger.Error("sink failed", "worker_id", workerID, "job_id", job.ID, "path", job.Path, "error", err)
	}
}

// Enqueue blocks while the queue is full, until ctx is done.
func (q *ProcessorQueue) Enqueue(ctx context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "job_id", job.ID)
		return ErrQueueClosed
	}
	select {
	case q.ch <- job:
		q.logger.Debug("queued document for processing", "job_id", job.ID, "path", job.Path)
	default:
		q.logger.Warn("queue full, applying backpressure", "job_id", job.ID)
		select {
		case q.ch <- job:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	metrics.BatchQueueDepth.Set(float64(len(q.ch)))
	return nil
}

// Shutdown stops intake and waits for queued jobs to drain or ctx to end.
func (q *ProcessorQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete", "done", q.done.Load(), "invalid", q.invalid.Load(), "failed", q.failed.Load())
	}
}

// Stats returns the terminal counts so far.
func (q *ProcessorQueue) Stats() Stats {
	return Stats{Done: q.done.Load(), Invalid: q.invalid.Load(), Failed: q.failed.Load()}
}
