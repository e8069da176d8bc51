package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osmunda/cardbot/internal/domain"
)

// AccountRepository implements the account ledger for PostgreSQL. Every
// mutation is one conditional statement against a single accounts row; that
// is the only atomicity primitive the correctness model relies on.
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetAccount returns the account or domain.ErrAccountNotFound.
func (r *AccountRepository) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	query := `
		SELECT user_id, patterns, sopop, daily_streak, last_daily_at, created_at, updated_at
		FROM accounts
		WHERE user_id = $1
	`
	var a domain.Account
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&a.UserID, &a.Patterns, &a.Sopop, &a.DailyStreak, &a.LastDailyAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, classifyError(fmt.Errorf("failed to get account: %w", err))
	}
	return &a, nil
}

// Credit increments balances, creating the account row if absent.
func (r *AccountRepository) Credit(ctx context.Context, userID string, deltas domain.Balances) error {
	query := `
		INSERT INTO accounts (user_id, patterns, sopop, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET patterns = accounts.patterns + EXCLUDED.patterns,
		    sopop = accounts.sopop + EXCLUDED.sopop,
		    updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query,
		userID, deltas.Get(domain.CurrencyPatterns), deltas.Get(domain.CurrencySopop))
	if err != nil {
		return classifyError(fmt.Errorf("failed to credit account: %w", err))
	}
	return nil
}

// Debit decrements balances in one conditional update across all currencies.
// The WHERE guard makes "any resulting balance negative" reject the whole
// delta with zero mutation, even under concurrent debits.
func (r *AccountRepository) Debit(ctx context.Context, userID string, deltas domain.Balances) error {
	query := `
		UPDATE accounts
		SET patterns = patterns - $2,
		    sopop = sopop - $3,
		    updated_at = NOW()
		WHERE user_id = $1 AND patterns >= $2 AND sopop >= $3
	`
	tag, err := r.db.Exec(ctx, query,
		userID, deltas.Get(domain.CurrencyPatterns), deltas.Get(domain.CurrencySopop))
	if err != nil {
		return classifyError(fmt.Errorf("failed to debit account: %w", err))
	}
	if tag.RowsAffected() == 0 {
		// Missing account and short balance are the same outcome: the funds
		// are not there.
		return domain.ErrInsufficientFunds
	}
	return nil
}

// ApplyDailyReward credits the daily reward and advances the streak counter
// in one statement: continue the streak when the previous claim is inside
// the window, reset to 1 otherwise.
func (r *AccountRepository) ApplyDailyReward(ctx context.Context, userID string, reward domain.Balances, streakWindow time.Duration) (int, error) {
	ensure := `INSERT INTO accounts (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`
	if _, err := r.db.Exec(ctx, ensure, userID); err != nil {
		return 0, classifyError(fmt.Errorf("failed to ensure account: %w", err))
	}

	query := `
		UPDATE accounts
		SET patterns = patterns + $2,
		    sopop = sopop + $3,
		    daily_streak = CASE
		        WHEN last_daily_at IS NOT NULL
		             AND last_daily_at > NOW() - make_interval(secs => $4)
		        THEN daily_streak + 1
		        ELSE 1
		    END,
		    last_daily_at = NOW(),
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING daily_streak
	`
	var streak int
	err := r.db.QueryRow(ctx, query,
		userID,
		reward.Get(domain.CurrencyPatterns),
		reward.Get(domain.CurrencySopop),
		streakWindow.Seconds(),
	).Scan(&streak)
	if err != nil {
		return 0, classifyError(fmt.Errorf("failed to apply daily reward: %w", err))
	}
	return streak, nil
}
