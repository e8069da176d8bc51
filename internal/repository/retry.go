package repository

import (
	"context"
	"errors"
	"time"

	"github.com/osmunda/cardbot/internal/domain"
)

// Retry policy applied at operation boundaries for transient storage
// failures. The postgres layer tags those with domain.ErrStorageUnavailable;
// everything else fails fast.
const (
	RetryAttempts    = 3
	RetryBaseBackoff = 50 * time.Millisecond
)

// WithRetry runs fn, retrying up to RetryAttempts times with doubling
// backoff while the error is domain.ErrStorageUnavailable. The last error is
// returned when attempts are exhausted.
func WithRetry(ctx context.Context, fn func() error) error {
	backoff := RetryBaseBackoff

	var err error
	for attempt := 0; attempt < RetryAttempts; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, domain.ErrStorageUnavailable) {
			return err
		}

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
		backoff *= 2
	}
	return err
}
