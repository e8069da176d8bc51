// Package drop spawns shared, time-boxed reward drops and resolves claim
// races on a first-come basis. The race is settled entirely by the store's
// conditional claim write; this service never holds locks.
package drop

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osmunda/cardbot/internal/catalog"
	"github.com/osmunda/cardbot/internal/domain"
	"github.com/osmunda/cardbot/internal/ledger"
	"github.com/osmunda/cardbot/internal/logger"
	"github.com/osmunda/cardbot/internal/repository"
)

// Service defines the interface for shared drop operations.
type Service interface {
	// Spawn creates a drop with one slot per item code.
	Spawn(ctx context.Context, itemCodes []string, onePerUser bool, ttl time.Duration) (*domain.ClaimSet, error)

	Get(ctx context.Context, setID uuid.UUID) (*domain.ClaimSet, error)

	// Claim awards the slot to the first caller and grants the slot's item.
	// Losers receive domain.ErrAlreadyClaimed, domain.ErrExpired or
	// domain.ErrAlreadyParticipated with nothing mutated.
	Claim(ctx context.Context, setID uuid.UUID, slotIndex int, userID string) (*domain.ClaimSlot, error)

	// CloseExpired sweeps drops past their expiry and returns the count.
	// Purely housekeeping; Claim re-checks expiry on every write.
	CloseExpired(ctx context.Context) (int, error)
}

type service struct {
	repo    repository.ClaimSet
	catalog catalog.Service
	ledger  ledger.Service
}

// NewService creates a new drop service.
func NewService(repo repository.ClaimSet, cat catalog.Service, led ledger.Service) Service {
	return &service{repo: repo, catalog: cat, ledger: led}
}

func (s *service) Spawn(ctx context.Context, itemCodes []string, onePerUser bool, ttl time.Duration) (*domain.ClaimSet, error) {
	if len(itemCodes) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, ErrMsgNoSlots)
	}
	if len(itemCodes) > MaxSlots {
		return nil, fmt.Errorf("%w: %s (%d)", domain.ErrValidation, ErrMsgTooManySlots, MaxSlots)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	set := &domain.ClaimSet{
		ID:         uuid.New(),
		OnePerUser: onePerUser,
		ExpiresAt:  time.Now().Add(ttl),
	}
	for _, code := range itemCodes {
		if _, err := s.catalog.GetItem(ctx, code); err != nil {
			return nil, err
		}
		set.Slots = append(set.Slots, domain.ClaimSlot{ItemCode: code})
	}

	err := repository.WithRetry(ctx, func() error {
		return s.repo.CreateClaimSet(ctx, set)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSpawnFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgDropSpawned,
		"set_id", set.ID, "slots", len(set.Slots), "one_per_user", onePerUser, "expires_at", set.ExpiresAt)
	return set, nil
}

func (s *service) Get(ctx context.Context, setID uuid.UUID) (*domain.ClaimSet, error) {
	var set *domain.ClaimSet
	err := repository.WithRetry(ctx, func() error {
		var err error
		set, err = s.repo.GetClaimSet(ctx, setID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

func (s *service) Claim(ctx context.Context, setID uuid.UUID, slotIndex int, userID string) (*domain.ClaimSlot, error) {
	var slot *domain.ClaimSlot
	err := repository.WithRetry(ctx, func() error {
		var err error
		slot, err = s.repo.ClaimSlot(ctx, setID, slotIndex, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	// The slot is already won; the grant must land. A failure here leaves a
	// claimed slot without its item and is surfaced for reconciliation
	// instead of being rolled back, since un-claiming would hand the slot to
	// a user who lost the race.
	if err := s.ledger.GrantItem(ctx, userID, slot.ItemCode, 1); err != nil {
		logger.FromContext(ctx).Error(LogMsgGrantAfterClaim,
			"set_id", setID, "slot_index", slotIndex, "user_id", userID, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrMsgGrantAfterClaim, err)
	}

	logger.FromContext(ctx).Info(LogMsgSlotClaimed,
		"set_id", setID, "slot_index", slotIndex, "user_id", userID, "item_code", slot.ItemCode)
	return slot, nil
}

func (s *service) CloseExpired(ctx context.Context) (int, error) {
	removed, err := s.repo.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		logger.FromContext(ctx).Info(LogMsgExpiredSwept, "removed", removed)
	}
	return removed, nil
}
