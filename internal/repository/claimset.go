package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osmunda/cardbot/internal/domain"
)

// ClaimSet defines the interface for shared drop persistence.
//
// ClaimSlot is the race-resolution primitive: one conditional write that
// succeeds only if the set is unexpired, the slot unclaimed, and (for
// one-per-user sets) the user has not already claimed. On any failing
// condition it mutates nothing and returns domain.ErrExpired,
// domain.ErrAlreadyClaimed, or domain.ErrAlreadyParticipated.
type ClaimSet interface {
	CreateClaimSet(ctx context.Context, set *domain.ClaimSet) error
	GetClaimSet(ctx context.Context, setID uuid.UUID) (*domain.ClaimSet, error)
	ClaimSlot(ctx context.Context, setID uuid.UUID, slotIndex int, userID string) (*domain.ClaimSlot, error)

	// DeleteExpired removes sets whose expiry is before now and returns the
	// count. A convenience for the sweeper; lazy expiry in ClaimSlot is what
	// correctness rests on.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
