package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Job represents a queued background task.
type Job struct {
	ID       string
	Type     string
	Payload  interface{}
	Enqueued time.Time
}

// Handler processes a job.
type Handler func(context.Context, Job) error

// QueueConfig configures worker behaviour.
type QueueConfig struct {
	Workers    int
	BufferSize int
	// Delay is waited before each job runs; it models the fixed latency of
	// external steps such as the simulated payment gateway.
	Delay  time.Duration
	Logger *zap.Logger
}

// Queue is a lightweight in-memory job dispatcher backed by goroutines.
// Handler errors are logged, never retried: once a job has been accepted by
// Enqueue its outcome is reported unconditionally — Stop refuses new work
// but runs everything already queued to completion.
type Queue struct {
	name    string
	handler Handler

	workers int
	delay   time.Duration
	logger  *zap.Logger

	jobs    chan Job
	ctx     context.Context
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	stopped bool
}

// NewQueue builds a new queue with the provided handler.
func NewQueue(name string, handler Handler, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Queue{
		name:    name,
		handler: handler,
		workers: cfg.Workers,
		delay:   cfg.Delay,
		logger:  cfg.Logger,
		jobs:    make(chan Job, cfg.BufferSize),
	}
}

// Start begins worker consumption. The context is handed to handlers; it is
// not used to interrupt them. Safe to call once.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx = ctx
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	q.started = true
	q.logger.Sugar().Infow("queue started", "queue", q.name, "workers", q.workers)
}

// Stop closes the intake and waits for the workers to drain every job
// already accepted. Enqueue fails afterwards.
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
	q.logger.Sugar().Infow("queue stopped", "queue", q.name)
}

// Enqueue pushes a job onto the queue, assigning an id when absent. A
// returned id is a commitment: the job will run even if Stop is called
// right after.
func (q *Queue) Enqueue(job Job) (string, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}

	// The send happens under the lock so it cannot race Stop's close.
	// Workers drain without taking the lock, so a full buffer clears.
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.started {
		return "", fmt.Errorf("queue %s not started", q.name)
	}
	if q.stopped {
		return "", fmt.Errorf("queue %s stopped", q.name)
	}
	q.jobs <- job
	return job.ID, nil
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for job := range q.jobs {
		if q.delay > 0 {
			time.Sleep(q.delay)
		}
		if err := q.handler(q.ctx, job); err != nil {
			q.logger.Sugar().Errorw("job failed", "queue", q.name, "job_id", job.ID, "type", job.Type, "error", err)
		}
	}
}
