// Package catalog serves item definitions and derives the marketplace price
// cap for each item.
package catalog

import (
	"context"
	"fmt"

	"github.com/osmunda/cardbot/internal/domain"
	"github.com/osmunda/cardbot/internal/logger"
	"github.com/osmunda/cardbot/internal/repository"
)

// Service defines the interface for catalog lookups.
type Service interface {
	GetItem(ctx context.Context, itemCode string) (*domain.ItemDefinition, error)
	GetPullableItems(ctx context.Context) ([]domain.ItemDefinition, error)

	// PriceCap returns the highest price a listing for the item may carry.
	PriceCap(def *domain.ItemDefinition) int64
}

type service struct {
	repo  repository.Item
	cache *itemCache
}

// NewService creates a new catalog service.
func NewService(repo repository.Item) Service {
	return &service{
		repo:  repo,
		cache: newItemCache(DefaultCacheSize, DefaultCacheTTL),
	}
}

func (s *service) GetItem(ctx context.Context, itemCode string) (*domain.ItemDefinition, error) {
	if def, ok := s.cache.Get(itemCode); ok {
		return def, nil
	}
	logger.FromContext(ctx).Debug(LogMsgCatalogCacheMiss, "item_code", itemCode)

	var def *domain.ItemDefinition
	err := repository.WithRetry(ctx, func() error {
		var err error
		def, err = s.repo.GetItemByCode(ctx, itemCode)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgItemLookupFailed, itemCode, err)
	}
	s.cache.Set(itemCode, def)
	return def, nil
}

func (s *service) GetPullableItems(ctx context.Context) ([]domain.ItemDefinition, error) {
	var items []domain.ItemDefinition
	err := repository.WithRetry(ctx, func() error {
		var err error
		items, err = s.repo.GetPullableItems(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load pullable items: %w", err)
	}
	return items, nil
}

func (s *service) PriceCap(def *domain.ItemDefinition) int64 {
	if cap, ok := categoryPriceCaps[def.Category]; ok {
		return cap
	}
	if cap, ok := rarityPriceCaps[def.Rarity]; ok {
		return cap
	}
	// Unknown rarity falls back to the most permissive cap.
	return rarityPriceCaps[domain.RarityLegendary]
}
