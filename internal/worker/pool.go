// Package worker runs background maintenance off the request path.
package worker

import (
	"context"
	"sync"

	"github.com/osmunda/cardbot/internal/logger"
)

// Job is one unit of background maintenance work.
type Job interface {
	// Name labels the job in logs.
	Name() string
	Run(ctx context.Context) error
}

// Pool drains a bounded job queue with a fixed number of workers. Producers
// never block: maintenance jobs are periodic and idempotent, so a full queue
// drops the submission and the producer's next tick retries.
type Pool struct {
	workers int
	queue   chan Job
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewPool creates a pool; Start launches the workers.
func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = DefaultPoolWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultPoolQueueSize
	}
	return &Pool{
		workers: workers,
		queue:   make(chan Job, queueSize),
		stop:    make(chan struct{}),
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.drain(i)
	}
}

func (p *Pool) drain(id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.stop:
			return
		case job := <-p.queue:
			ctx := context.Background()
			log := logger.FromContext(ctx)
			if err := job.Run(ctx); err != nil {
				// A failing job must not take the worker down.
				log.Error(LogMsgJobFailed, "job", job.Name(), "worker", id, "error", err)
				continue
			}
			log.Debug(LogMsgJobCompleted, "job", job.Name(), "worker", id)
		}
	}
}

// Submit queues a job without blocking and reports whether it was taken.
// A full queue drops the job.
func (p *Pool) Submit(job Job) bool {
	select {
	case p.queue <- job:
		return true
	default:
		return false
	}
}

// Stop halts the workers. Jobs still queued are dropped; every job here is
// re-derivable from persisted state on the next tick.
func (p *Pool) Stop() {
	close(p.stop)
	p.wg.Wait()
}
