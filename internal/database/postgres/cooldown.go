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

// CooldownRepository implements cooldown record persistence for PostgreSQL.
// Single-record reads and writes only; the gate's benign race is accepted.
type CooldownRepository struct {
	db *pgxpool.Pool
}

// NewCooldownRepository creates a new CooldownRepository
func NewCooldownRepository(db *pgxpool.Pool) *CooldownRepository {
	return &CooldownRepository{db: db}
}

// GetCooldown returns the record for the pair, or nil when none exists.
func (r *CooldownRepository) GetCooldown(ctx context.Context, userID, action string) (*domain.CooldownRecord, error) {
	query := `
		SELECT user_id, action, expires_at
		FROM cooldowns
		WHERE user_id = $1 AND action = $2
	`
	var rec domain.CooldownRecord
	err := r.db.QueryRow(ctx, query, userID, action).Scan(&rec.UserID, &rec.Action, &rec.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classifyError(fmt.Errorf("failed to get cooldown: %w", err))
	}
	return &rec, nil
}

// SetCooldown unconditionally (re)writes the expiry instant.
func (r *CooldownRepository) SetCooldown(ctx context.Context, userID, action string, expiresAt time.Time) error {
	query := `
		INSERT INTO cooldowns (user_id, action, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, action) DO UPDATE
		SET expires_at = EXCLUDED.expires_at
	`
	if _, err := r.db.Exec(ctx, query, userID, action, expiresAt); err != nil {
		return classifyError(fmt.Errorf("failed to set cooldown: %w", err))
	}
	return nil
}

// DeleteCooldown removes the record; deleting an absent record is not an error.
func (r *CooldownRepository) DeleteCooldown(ctx context.Context, userID, action string) error {
	query := `DELETE FROM cooldowns WHERE user_id = $1 AND action = $2`
	if _, err := r.db.Exec(ctx, query, userID, action); err != nil {
		return classifyError(fmt.Errorf("failed to delete cooldown: %w", err))
	}
	return nil
}
