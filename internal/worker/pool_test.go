package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/osmunda/cardbot/internal/domain"
)

type countingJob struct {
	count *atomic.Int32
	err   error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run(_ context.Context) error {
	j.count.Add(1)
	return j.err
}

func TestPoolProcessesSubmittedJobs(t *testing.T) {
	pool := NewPool(2, 10)
	pool.Start()

	var count atomic.Int32
	for i := 0; i < 5; i++ {
		assert.True(t, pool.Submit(&countingJob{count: &count}))
	}

	assert.Eventually(t, func() bool {
		return count.Load() == 5
	}, time.Second, 10*time.Millisecond)

	pool.Stop()
}

func TestPoolSurvivesFailingJob(t *testing.T) {
	pool := NewPool(1, 10)
	pool.Start()

	var count atomic.Int32
	pool.Submit(&countingJob{count: &count, err: errors.New("boom")})
	pool.Submit(&countingJob{count: &count})

	assert.Eventually(t, func() bool {
		return count.Load() == 2
	}, time.Second, 10*time.Millisecond)

	pool.Stop()
}

func TestPoolSubmitNeverBlocks(t *testing.T) {
	// Workers not started, so the queue fills and stays full.
	pool := NewPool(1, 1)

	var count atomic.Int32
	assert.True(t, pool.Submit(&countingJob{count: &count}))
	assert.False(t, pool.Submit(&countingJob{count: &count}),
		"a full queue drops the submission instead of blocking")
}

// sweepRecorder implements drop.Service for the expiry worker.
type sweepRecorder struct {
	mu     sync.Mutex
	sweeps int
	err    error
}

func (s *sweepRecorder) Spawn(_ context.Context, _ []string, _ bool, _ time.Duration) (*domain.ClaimSet, error) {
	return nil, nil
}

func (s *sweepRecorder) Get(_ context.Context, _ uuid.UUID) (*domain.ClaimSet, error) {
	return nil, nil
}

func (s *sweepRecorder) Claim(_ context.Context, _ uuid.UUID, _ int, _ string) (*domain.ClaimSlot, error) {
	return nil, nil
}

func (s *sweepRecorder) CloseExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweeps++
	return 1, s.err
}

func (s *sweepRecorder) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweeps
}

func TestDropExpiryWorkerSweepsThroughPool(t *testing.T) {
	pool := NewPool(1, 4)
	pool.Start()
	defer pool.Stop()

	recorder := &sweepRecorder{}
	w := NewDropExpiryWorker(pool, recorder, 10*time.Millisecond)
	w.Start()

	assert.Eventually(t, func() bool {
		return recorder.count() >= 2
	}, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, w.Stop(ctx))
}

func TestDropExpiryWorkerKeepsRunningAfterError(t *testing.T) {
	pool := NewPool(1, 4)
	pool.Start()
	defer pool.Stop()

	recorder := &sweepRecorder{err: errors.New("db down")}
	w := NewDropExpiryWorker(pool, recorder, 10*time.Millisecond)
	w.Start()

	assert.Eventually(t, func() bool {
		return recorder.count() >= 2
	}, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, w.Stop(ctx))
}
