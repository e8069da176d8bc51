package repository

import (
	"context"
	"time"

	"github.com/osmunda/cardbot/internal/domain"
)

// Cooldown defines the interface for cooldown record persistence. The gate
// only ever performs single-record reads and writes; no locking.
type Cooldown interface {
	// GetCooldown returns nil when no record exists for the pair.
	GetCooldown(ctx context.Context, userID, action string) (*domain.CooldownRecord, error)
	SetCooldown(ctx context.Context, userID, action string, expiresAt time.Time) error
	DeleteCooldown(ctx context.Context, userID, action string) error
}
