package repository

import (
	"context"

	"github.com/osmunda/cardbot/internal/domain"
)

// Inventory defines the interface for item stack persistence.
//
// ConsumeItem checks and decrements in one conditional statement and deletes
// the row in the same logical step when it reaches zero; it returns
// domain.ErrInsufficientStock, with no mutation, when the owned quantity is
// short.
type Inventory interface {
	GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error)
	GetInventoryEntry(ctx context.Context, userID, itemCode string) (*domain.InventoryEntry, error)
	GrantItem(ctx context.Context, userID, itemCode string, qty int) error
	ConsumeItem(ctx context.Context, userID, itemCode string, qty int) error

	// MergeInventories folds every entry of src into dst, then removes all of
	// src's entries. Used only by the administrative transfer flow.
	MergeInventories(ctx context.Context, srcUserID, dstUserID string) error
}
