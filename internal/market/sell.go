package market

import (
	"context"
	"errors"
	"fmt"

	"github.com/osmunda/cardbot/internal/domain"
	"github.com/osmunda/cardbot/internal/logger"
)

// Sell validates the price against the item's cap, escrows one copy from the
// seller's inventory and publishes the listing. A buy code collision retries
// with a fresh code; if the listing ultimately cannot be created the escrowed
// item is returned to the seller.
func (s *service) Sell(ctx context.Context, sellerID, itemCode string, price int64) (*domain.Listing, error) {
	if price <= 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, ErrMsgInvalidPrice)
	}

	def, err := s.catalog.GetItem(ctx, itemCode)
	if err != nil {
		return nil, err
	}
	if cap := s.catalog.PriceCap(def); price > cap {
		return nil, fmt.Errorf("%w: cap for %s is %d", domain.ErrPriceOverCap, itemCode, cap)
	}

	// Escrow before publishing so a listing never points at a copy the
	// seller no longer holds.
	if err := s.ledger.ConsumeItem(ctx, sellerID, itemCode, 1); err != nil {
		return nil, err
	}

	listing, err := s.createWithFreshCode(ctx, sellerID, itemCode, price)
	if err != nil {
		// Give the escrowed copy back; losing it would be worse than the
		// failed listing.
		if grantErr := s.ledger.GrantItem(ctx, sellerID, itemCode, 1); grantErr != nil {
			logger.FromContext(ctx).Error(LogMsgCompensationFailed,
				"seller_id", sellerID, "item_code", itemCode, "error", grantErr)
			return nil, fmt.Errorf("%w: %s: %v (original: %w)",
				domain.ErrCompensationFailed, ErrMsgSellFailed, grantErr, err)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgSellFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgItemListed,
		"seller_id", sellerID, "item_code", itemCode, "price", price, "buy_code", listing.BuyCode)
	return listing, nil
}

func (s *service) createWithFreshCode(ctx context.Context, sellerID, itemCode string, price int64) (*domain.Listing, error) {
	var lastErr error
	for attempt := 0; attempt < BuyCodeAttempts; attempt++ {
		listing := &domain.Listing{
			BuyCode:  newBuyCode(s.codeRand),
			SellerID: sellerID,
			ItemCode: itemCode,
			Price:    price,
		}
		lastErr = s.listings.CreateListing(ctx, listing)
		if lastErr == nil {
			return listing, nil
		}
		if !errors.Is(lastErr, domain.ErrConflictOnCreate) {
			return nil, lastErr
		}
	}

	// Every random code collided; one clock-derived attempt before giving up.
	listing := &domain.Listing{
		BuyCode:  fallbackBuyCode(),
		SellerID: sellerID,
		ItemCode: itemCode,
		Price:    price,
	}
	if err := s.listings.CreateListing(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}
