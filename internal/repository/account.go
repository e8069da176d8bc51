package repository

import (
	"context"
	"time"

	"github.com/osmunda/cardbot/internal/domain"
)

// Account defines the interface for currency ledger persistence.
//
// Credit and Debit are atomic at single-account granularity: Debit applies
// every currency in one conditional update and returns
// domain.ErrInsufficientFunds, with no mutation, when any resulting balance
// would go negative. Safety under concurrent callers comes from the store's
// single-row conditional update, not from locking in this process.
type Account interface {
	GetAccount(ctx context.Context, userID string) (*domain.Account, error)
	Credit(ctx context.Context, userID string, deltas domain.Balances) error
	Debit(ctx context.Context, userID string, deltas domain.Balances) error

	// ApplyDailyReward credits the reward and advances the daily streak:
	// incremented when the previous claim is within streakWindow, reset to 1
	// otherwise. Returns the new streak count.
	ApplyDailyReward(ctx context.Context, userID string, reward domain.Balances, streakWindow time.Duration) (int, error)
}
