// Package market coordinates the player marketplace: listing, buying,
// removing and administrative transfers. Flows spanning more than one
// account use compensating steps rather than cross-account transactions.
package market

import (
	"context"

	"github.com/osmunda/cardbot/internal/catalog"
	"github.com/osmunda/cardbot/internal/domain"
	"github.com/osmunda/cardbot/internal/ledger"
	"github.com/osmunda/cardbot/internal/repository"
)

// BuyFailure is one rejected code inside a batch buy.
type BuyFailure struct {
	BuyCode string `json:"buy_code"`
	Reason  string `json:"reason"`
}

// BuyResult reports a batch buy per code: every code succeeds or fails on
// its own.
type BuyResult struct {
	Purchased []domain.Listing `json:"purchased"`
	Failed    []BuyFailure     `json:"failed,omitempty"`
}

// Service defines the interface for marketplace operations.
type Service interface {
	// Sell escrows one copy of the item and publishes a listing under a
	// fresh buy code.
	Sell(ctx context.Context, sellerID, itemCode string, price int64) (*domain.Listing, error)

	// Buy resolves each buy code independently; one bad code never blocks
	// the rest of the batch.
	Buy(ctx context.Context, buyerID string, buyCodes []string) (*BuyResult, error)

	// Remove takes the seller's own listing down and returns the escrowed
	// item.
	Remove(ctx context.Context, sellerID, buyCode string) error

	// AdminDelete takes any listing down regardless of owner and returns
	// the escrowed item to its seller. Administrative flow.
	AdminDelete(ctx context.Context, buyCode string) error

	// Transfer moves every holding of src to dst. Administrative flow for
	// account migration.
	Transfer(ctx context.Context, srcUserID, dstUserID string) error

	ListListings(ctx context.Context, limit int) ([]domain.Listing, error)
	ListListingsBySeller(ctx context.Context, sellerID string) ([]domain.Listing, error)
}

type service struct {
	listings  repository.Listing
	accounts  repository.Account
	inventory repository.Inventory
	catalog   catalog.Service
	ledger    ledger.Service
	codeRand  func(int) int
}

// NewService creates a new market service.
func NewService(listings repository.Listing, accounts repository.Account, inventory repository.Inventory, cat catalog.Service, led ledger.Service) Service {
	return &service{
		listings:  listings,
		accounts:  accounts,
		inventory: inventory,
		catalog:   cat,
		ledger:    led,
		codeRand:  defaultCodeRand,
	}
}

func (s *service) ListListings(ctx context.Context, limit int) ([]domain.Listing, error) {
	if limit <= 0 || limit > DefaultListingLimit {
		limit = DefaultListingLimit
	}
	var listings []domain.Listing
	err := repository.WithRetry(ctx, func() error {
		var err error
		listings, err = s.listings.ListListings(ctx, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *service) ListListingsBySeller(ctx context.Context, sellerID string) ([]domain.Listing, error) {
	var listings []domain.Listing
	err := repository.WithRetry(ctx, func() error {
		var err error
		listings, err = s.listings.ListListingsBySeller(ctx, sellerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return listings, nil
}
