package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osmunda/cardbot/internal/drop"
	"github.com/osmunda/cardbot/internal/logger"
)

// DefaultDropSweepInterval is how often expired drops are removed.
const DefaultDropSweepInterval = time.Minute

// sweepJob removes claim sets past their expiry instant.
type sweepJob struct {
	drops drop.Service
}

func (j sweepJob) Name() string { return "drop-expiry-sweep" }

func (j sweepJob) Run(ctx context.Context) error {
	removed, err := j.drops.CloseExpired(ctx)
	if err != nil {
		return err
	}
	if removed > 0 {
		logger.FromContext(ctx).Info(LogMsgDropSweepCompleted, "removed", removed)
	}
	return nil
}

// DropExpiryWorker submits a sweep into the pool on every tick so abandoned
// claim sets do not accumulate. Claims against expired drops are already
// rejected on read; the sweep is cleanup, not enforcement.
type DropExpiryWorker struct {
	pool     *Pool
	drops    drop.Service
	interval time.Duration
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewDropExpiryWorker creates a new DropExpiryWorker
func NewDropExpiryWorker(pool *Pool, drops drop.Service, interval time.Duration) *DropExpiryWorker {
	if interval <= 0 {
		interval = DefaultDropSweepInterval
	}
	return &DropExpiryWorker{
		pool:     pool,
		drops:    drops,
		interval: interval,
		shutdown: make(chan struct{}),
	}
}

// Start launches the tick loop
func (w *DropExpiryWorker) Start() {
	w.wg.Add(1)
	go w.run()
}

func (w *DropExpiryWorker) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !w.pool.Submit(sweepJob{drops: w.drops}) {
				// Sweeps are idempotent; a full queue waits for the next tick.
				logger.FromContext(context.Background()).Debug(LogMsgDropSweepSkipped)
			}
		case <-w.shutdown:
			return
		}
	}
}

// Stop stops the tick loop. Draining any in-flight sweep is the pool's job.
func (w *DropExpiryWorker) Stop(ctx context.Context) error {
	close(w.shutdown)

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.FromContext(ctx).Info(LogMsgDropSweeperStopped)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
