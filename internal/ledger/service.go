// Package ledger owns all currency and inventory mutations. Every balance
// change flows through Credit/Debit and every stack change through
// GrantItem/ConsumeItem, so the non-negativity invariants live in exactly one
// place.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osmunda/cardbot/internal/catalog"
	"github.com/osmunda/cardbot/internal/cooldown"
	"github.com/osmunda/cardbot/internal/domain"
	"github.com/osmunda/cardbot/internal/logger"
	"github.com/osmunda/cardbot/internal/repository"
)

// DailyResult reports the outcome of a daily reward claim.
type DailyResult struct {
	Streak  int             `json:"streak"`
	Awarded domain.Balances `json:"awarded"`
}

// Service defines the interface for ledger operations.
type Service interface {
	GetAccount(ctx context.Context, userID string) (*domain.Account, error)
	Credit(ctx context.Context, userID string, deltas domain.Balances) error
	Debit(ctx context.Context, userID string, deltas domain.Balances) error

	GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error)
	GrantItem(ctx context.Context, userID, itemCode string, qty int) error
	ConsumeItem(ctx context.Context, userID, itemCode string, qty int) error

	// ClaimDaily grants the daily reward behind the daily cooldown gate. The
	// streak continues when the previous claim was within the streak window
	// and resets otherwise; each streak day adds a bonus up to a cap.
	ClaimDaily(ctx context.Context, userID string) (*DailyResult, error)
}

type service struct {
	accounts  repository.Account
	inventory repository.Inventory
	catalog   catalog.Service
	cooldowns cooldown.Service
}

// NewService creates a new ledger service.
func NewService(accounts repository.Account, inventory repository.Inventory, cat catalog.Service, cds cooldown.Service) Service {
	return &service{
		accounts:  accounts,
		inventory: inventory,
		catalog:   cat,
		cooldowns: cds,
	}
}

func (s *service) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	var acct *domain.Account
	err := repository.WithRetry(ctx, func() error {
		var err error
		acct, err = s.accounts.GetAccount(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return acct, nil
}

func (s *service) Credit(ctx context.Context, userID string, deltas domain.Balances) error {
	if err := validateDeltas(deltas); err != nil {
		return err
	}

	err := repository.WithRetry(ctx, func() error {
		return s.accounts.Credit(ctx, userID, deltas)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCreditFailed, err)
	}
	logger.FromContext(ctx).Info(LogMsgAccountCredited, "user_id", userID, "deltas", deltas)
	return nil
}

func (s *service) Debit(ctx context.Context, userID string, deltas domain.Balances) error {
	if err := validateDeltas(deltas); err != nil {
		return err
	}

	err := repository.WithRetry(ctx, func() error {
		return s.accounts.Debit(ctx, userID, deltas)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return err
		}
		return fmt.Errorf("%s: %w", ErrMsgDebitFailed, err)
	}
	logger.FromContext(ctx).Info(LogMsgAccountDebited, "user_id", userID, "deltas", deltas)
	return nil
}

func (s *service) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	var entries []domain.InventoryEntry
	err := repository.WithRetry(ctx, func() error {
		var err error
		entries, err = s.inventory.GetInventory(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *service) GrantItem(ctx context.Context, userID, itemCode string, qty int) error {
	if err := validateQuantity(qty); err != nil {
		return err
	}
	// A grant for an unknown code is a caller bug; reject before mutating.
	if _, err := s.catalog.GetItem(ctx, itemCode); err != nil {
		return err
	}

	err := repository.WithRetry(ctx, func() error {
		return s.inventory.GrantItem(ctx, userID, itemCode, qty)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgGrantFailed, err)
	}
	logger.FromContext(ctx).Info(LogMsgItemGranted,
		"user_id", userID, "item_code", itemCode, "quantity", qty)
	return nil
}

func (s *service) ConsumeItem(ctx context.Context, userID, itemCode string, qty int) error {
	if err := validateQuantity(qty); err != nil {
		return err
	}

	err := repository.WithRetry(ctx, func() error {
		return s.inventory.ConsumeItem(ctx, userID, itemCode, qty)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return err
		}
		return fmt.Errorf("%s: %w", ErrMsgConsumeFailed, err)
	}
	logger.FromContext(ctx).Info(LogMsgItemConsumed,
		"user_id", userID, "item_code", itemCode, "quantity", qty)
	return nil
}

func (s *service) ClaimDaily(ctx context.Context, userID string) (*DailyResult, error) {
	var result *DailyResult

	err := s.cooldowns.EnforceCooldown(ctx, userID, domain.ActionDaily, nil, func() error {
		base := domain.Balances{domain.CurrencyPatterns: domain.DailyRewardPatterns}

		var streak int
		err := repository.WithRetry(ctx, func() error {
			var err error
			streak, err = s.accounts.ApplyDailyReward(ctx, userID, base,
				domain.DailyStreakWindowHours*time.Hour)
			return err
		})
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgDailyClaimFailed, err)
		}

		awarded := domain.Balances{domain.CurrencyPatterns: domain.DailyRewardPatterns}
		if bonus := streakBonus(streak); bonus > 0 {
			bonusDelta := domain.Balances{domain.CurrencyPatterns: bonus}
			if err := repository.WithRetry(ctx, func() error {
				return s.accounts.Credit(ctx, userID, bonusDelta)
			}); err != nil {
				return fmt.Errorf("%s: %w", ErrMsgDailyClaimFailed, err)
			}
			awarded[domain.CurrencyPatterns] += bonus
		}

		result = &DailyResult{Streak: streak, Awarded: awarded}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgDailyClaimed,
		"user_id", userID, "streak", result.Streak, "awarded", result.Awarded)
	return result, nil
}

// streakBonus returns the extra patterns for the given streak. The first day
// carries no bonus; later days add a fixed amount per day up to the cap.
func streakBonus(streak int) int64 {
	bonusDays := streak - 1
	if bonusDays <= 0 {
		return 0
	}
	if bonusDays > domain.DailyStreakBonusCap {
		bonusDays = domain.DailyStreakBonusCap
	}
	return int64(bonusDays) * domain.DailyStreakBonusPatterns
}

func validateDeltas(deltas domain.Balances) error {
	if deltas.HasNegative() {
		return fmt.Errorf("%w: %s", domain.ErrValidation, ErrMsgNegativeDelta)
	}
	if deltas.IsZero() {
		return fmt.Errorf("%w: %s", domain.ErrValidation, ErrMsgEmptyDelta)
	}
	return nil
}

func validateQuantity(qty int) error {
	if qty < 1 || qty > domain.MaxTransactionQuantity {
		return fmt.Errorf("%w: %s %d", domain.ErrValidation, ErrMsgInvalidQuantity, domain.MaxTransactionQuantity)
	}
	return nil
}
