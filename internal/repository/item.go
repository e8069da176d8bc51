package repository

import (
	"context"

	"github.com/osmunda/cardbot/internal/domain"
)

// Item defines the read-only interface to the item catalog.
type Item interface {
	GetItemByCode(ctx context.Context, itemCode string) (*domain.ItemDefinition, error)
	GetPullableItems(ctx context.Context) ([]domain.ItemDefinition, error)
}
