package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a unit of deferred work, such as an audit trail entry waiting
// to be persisted.
type Job struct {
	ID       string
	Type     string
	Payload  interface{}
	Enqueued time.Time
}

// Handler processes a single job. A non-nil error triggers a retry.
type Handler func(context.Context, Job) error

// QueueConfig configures the worker pool.
type QueueConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

func (c QueueConfig) withDefaults() QueueConfig {
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.BufferSize <= 0 {
		c.BufferSize = c.Workers * 4
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = time.Second
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// Queue is an in-process work queue. Stop closes intake and drains
// whatever is already buffered before returning, so callers that
// enqueue before shutdown do not lose entries.
type Queue struct {
	name    string
	handler Handler
	cfg     QueueConfig

	jobs chan Job
	ctx  context.Context
	wg   sync.WaitGroup

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewQueue builds a queue that dispatches jobs to handler.
func NewQueue(name string, handler Handler, cfg QueueConfig) *Queue {
	cfg = cfg.withDefaults()
	return &Queue{
		name:    name,
		handler: handler,
		cfg:     cfg,
		jobs:    make(chan Job, cfg.BufferSize),
	}
}

// Start launches the workers. Subsequent calls are no-ops.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.started = true
	q.ctx = ctx
	for i := 0; i < q.cfg.Workers; i++ {
		q.wg.Add(1)
		go q.run()
	}
	q.cfg.Logger.Info("queue started",
		zap.String("queue", q.name),
		zap.Int("workers", q.cfg.Workers))
}

// Stop closes intake, drains buffered jobs and waits for the workers.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.started || q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
	q.cfg.Logger.Info("queue stopped", zap.String("queue", q.name))
}

// Enqueue submits a job. It fails once the queue is stopped or was
// never started; the send itself blocks when the buffer is full.
func (q *Queue) Enqueue(job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.started {
		return fmt.Errorf("queue %s not started", q.name)
	}
	if q.stopped {
		return fmt.Errorf("queue %s stopped", q.name)
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}
	q.jobs <- job
	return nil
}

// Depth reports how many jobs are currently buffered.
func (q *Queue) Depth() int {
	return len(q.jobs)
}

func (q *Queue) run() {
	defer q.wg.Done()
	for job := range q.jobs {
		q.process(job)
	}
}

// process runs the handler, retrying in place with a fixed delay until
// the attempt budget is spent. Retries stop early when the start
// context is cancelled so drain cannot hang on a dead dependency.
func (q *Queue) process(job Job) {
	log := q.cfg.Logger.With(
		zap.String("queue", q.name),
		zap.String("job_id", job.ID),
		zap.String("type", job.Type))

	var err error
	for attempt := 1; attempt <= q.cfg.MaxRetries; attempt++ {
		if err = q.handler(q.ctx, job); err == nil {
			return
		}
		if attempt == q.cfg.MaxRetries {
			break
		}
		log.Warn("job failed, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err))

		timer := time.NewTimer(q.cfg.RetryDelay)
		select {
		case <-q.ctx.Done():
			timer.Stop()
			log.Error("job abandoned on shutdown", zap.Error(err))
			return
		case <-timer.C:
		}
	}
	log.Error("job exceeded retries", zap.Error(err))
}
