// Package gacha implements weighted reward selection and the paid pull flows
// built on it.
package gacha

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/osmunda/cardbot/internal/catalog"
	"github.com/osmunda/cardbot/internal/cooldown"
	"github.com/osmunda/cardbot/internal/domain"
	"github.com/osmunda/cardbot/internal/ledger"
	"github.com/osmunda/cardbot/internal/logger"
)

// PullResult is one awarded card.
type PullResult struct {
	Item domain.ItemDefinition `json:"item"`
	Cost domain.Balances       `json:"cost"`
}

// MultiPullResult is a batch of awarded cards; the last slot is drawn from
// the highest rarity tier present in the pool.
type MultiPullResult struct {
	Items []domain.ItemDefinition `json:"items"`
	Cost  domain.Balances         `json:"cost"`
}

// Config holds the pull pricing and batch size.
type Config struct {
	PullCostPatterns int64
	MultiPullSize    int
}

// Service defines the interface for pull operations.
type Service interface {
	Pull(ctx context.Context, userID string) (*PullResult, error)
	MultiPull(ctx context.Context, userID string) (*MultiPullResult, error)
}

type service struct {
	catalog   catalog.Service
	ledger    ledger.Service
	cooldowns cooldown.Service
	table     Table
	cfg       Config
	rnd       func() float64
}

// NewService creates a new gacha service.
func NewService(cat catalog.Service, led ledger.Service, cds cooldown.Service, table Table, cfg Config) Service {
	return &service{
		catalog:   cat,
		ledger:    led,
		cooldowns: cds,
		table:     table,
		cfg:       cfg,
		rnd:       rand.Float64,
	}
}

// Pull charges the pull price, draws one card from the pullable pool and
// grants it. The cooldown arms only after the whole flow succeeds, so a
// failed debit leaves the gate open.
func (s *service) Pull(ctx context.Context, userID string) (*PullResult, error) {
	var result *PullResult

	err := s.cooldowns.EnforceCooldown(ctx, userID, domain.ActionPull, nil, func() error {
		item, cost, err := s.paidDraw(ctx, userID, 1, Select)
		if err != nil {
			return err
		}
		result = &PullResult{Item: *item, Cost: cost}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgPullCompleted,
		"user_id", userID, "item_code", result.Item.Code, "rarity", result.Item.Rarity)
	return result, nil
}

// MultiPull draws a full batch for the batch price. One slot is guaranteed to
// come from the top rarity tier of the pool.
func (s *service) MultiPull(ctx context.Context, userID string) (*MultiPullResult, error) {
	var result *MultiPullResult

	err := s.cooldowns.EnforceCooldown(ctx, userID, domain.ActionMultiPull, nil, func() error {
		pool, err := s.catalog.GetPullableItems(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgLoadPoolFailed, err)
		}
		if len(pool) == 0 {
			return domain.ErrNoCandidates
		}

		cost := domain.Balances{
			domain.CurrencyPatterns: s.cfg.PullCostPatterns * int64(s.cfg.MultiPullSize),
		}
		if err := s.ledger.Debit(ctx, userID, cost); err != nil {
			return err
		}

		items := make([]domain.ItemDefinition, 0, s.cfg.MultiPullSize)
		for i := 0; i < s.cfg.MultiPullSize-1; i++ {
			item, err := Select(pool, s.table, s.rnd)
			if err != nil {
				return s.refund(ctx, userID, cost, fmt.Errorf("%s: %w", ErrMsgMultiPullFailed, err))
			}
			items = append(items, *item)
		}
		guaranteed, err := SelectGuaranteedTier(pool, s.table, s.rnd)
		if err != nil {
			return s.refund(ctx, userID, cost, fmt.Errorf("%s: %w", ErrMsgMultiPullFailed, err))
		}
		items = append(items, *guaranteed)

		for i, item := range items {
			if err := s.ledger.GrantItem(ctx, userID, item.Code, 1); err != nil {
				cause := fmt.Errorf("%s: %w", ErrMsgMultiPullFailed, err)
				if uerr := s.ungrant(ctx, userID, items[:i]); uerr != nil {
					logger.FromContext(ctx).Error(LogMsgRefundFailed,
						"user_id", userID, "cause", cause, "error", uerr)
					return fmt.Errorf("%w: unwinding partial batch: %v (original: %w)",
						domain.ErrCompensationFailed, uerr, cause)
				}
				return s.refund(ctx, userID, cost, cause)
			}
		}

		result = &MultiPullResult{Items: items, Cost: cost}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgMultiPullCompleted,
		"user_id", userID, "count", len(result.Items))
	return result, nil
}

type selectFunc func([]domain.ItemDefinition, Table, func() float64) (*domain.ItemDefinition, error)

// paidDraw is the shared charge-then-draw-then-grant step for single pulls.
func (s *service) paidDraw(ctx context.Context, userID string, count int, sel selectFunc) (*domain.ItemDefinition, domain.Balances, error) {
	pool, err := s.catalog.GetPullableItems(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgLoadPoolFailed, err)
	}
	if len(pool) == 0 {
		return nil, nil, domain.ErrNoCandidates
	}

	cost := domain.Balances{domain.CurrencyPatterns: s.cfg.PullCostPatterns * int64(count)}
	if err := s.ledger.Debit(ctx, userID, cost); err != nil {
		return nil, nil, err
	}

	item, err := sel(pool, s.table, s.rnd)
	if err != nil {
		return nil, nil, s.refund(ctx, userID, cost, fmt.Errorf("%s: %w", ErrMsgPullFailed, err))
	}
	if err := s.ledger.GrantItem(ctx, userID, item.Code, 1); err != nil {
		return nil, nil, s.refund(ctx, userID, cost, fmt.Errorf("%s: %w", ErrMsgPullFailed, err))
	}
	return item, cost, nil
}

// refund credits the pull cost back after a post-debit failure and returns
// the original cause. A failed refund leaves the account short and escalates
// to ErrCompensationFailed for manual reconciliation.
func (s *service) refund(ctx context.Context, userID string, cost domain.Balances, cause error) error {
	if err := s.ledger.Credit(ctx, userID, cost); err != nil {
		logger.FromContext(ctx).Error(LogMsgRefundFailed,
			"user_id", userID, "cause", cause, "error", err)
		return fmt.Errorf("%w: refunding pull cost: %v (original: %w)",
			domain.ErrCompensationFailed, err, cause)
	}
	logger.FromContext(ctx).Warn(LogMsgRefundApplied, "user_id", userID, "cause", cause)
	return cause
}

// ungrant takes back items granted before a mid-batch failure.
func (s *service) ungrant(ctx context.Context, userID string, items []domain.ItemDefinition) error {
	for _, item := range items {
		if err := s.ledger.ConsumeItem(ctx, userID, item.Code, 1); err != nil {
			return fmt.Errorf("taking back %s: %w", item.Code, err)
		}
	}
	return nil
}
