package repository

import (
	"context"

	"github.com/osmunda/cardbot/internal/domain"
)

// Listing defines the interface for marketplace listing persistence.
type Listing interface {
	// CreateListing returns domain.ErrConflictOnCreate when the buy code is
	// already taken.
	CreateListing(ctx context.Context, listing *domain.Listing) error
	GetListing(ctx context.Context, buyCode string) (*domain.Listing, error)
	ListListings(ctx context.Context, limit int) ([]domain.Listing, error)
	ListListingsBySeller(ctx context.Context, sellerID string) ([]domain.Listing, error)
	// DeleteListing returns domain.ErrListingNotFound when no live listing
	// carries the code.
	DeleteListing(ctx context.Context, buyCode string) error
}
