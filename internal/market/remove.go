package market

import (
	"context"
	"fmt"

	"github.com/osmunda/cardbot/internal/domain"
	"github.com/osmunda/cardbot/internal/logger"
	"github.com/osmunda/cardbot/internal/repository"
)

// Remove takes down the seller's own listing and returns the escrowed copy.
// The conditional delete doubles as the race check against a concurrent
// buyer: if the buyer won, the delete reports the listing gone and nothing is
// returned.
func (s *service) Remove(ctx context.Context, sellerID, buyCode string) error {
	var listing *domain.Listing
	err := repository.WithRetry(ctx, func() error {
		var err error
		listing, err = s.listings.GetListing(ctx, buyCode)
		return err
	})
	if err != nil {
		return err
	}
	if listing.SellerID != sellerID {
		return fmt.Errorf("%w: %s", domain.ErrValidation, ErrMsgNotListingOwner)
	}

	if err := s.listings.DeleteListing(ctx, buyCode); err != nil {
		return err
	}

	if err := s.ledger.GrantItem(ctx, sellerID, listing.ItemCode, 1); err != nil {
		logger.FromContext(ctx).Error(LogMsgCompensationFailed,
			"buy_code", buyCode, "seller_id", sellerID, "error", err)
		return fmt.Errorf("%w: returning escrowed item: %v", domain.ErrCompensationFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgListingRemoved,
		"buy_code", buyCode, "seller_id", sellerID, "item_code", listing.ItemCode)
	return nil
}

// AdminDelete takes a listing down without an ownership check. The escrowed
// copy goes back to whoever listed it, never to the caller.
func (s *service) AdminDelete(ctx context.Context, buyCode string) error {
	var listing *domain.Listing
	err := repository.WithRetry(ctx, func() error {
		var err error
		listing, err = s.listings.GetListing(ctx, buyCode)
		return err
	})
	if err != nil {
		return err
	}

	if err := s.listings.DeleteListing(ctx, buyCode); err != nil {
		return err
	}

	if err := s.ledger.GrantItem(ctx, listing.SellerID, listing.ItemCode, 1); err != nil {
		logger.FromContext(ctx).Error(LogMsgCompensationFailed,
			"buy_code", buyCode, "seller_id", listing.SellerID, "error", err)
		return fmt.Errorf("%w: returning escrowed item: %v", domain.ErrCompensationFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgListingAdminDeleted,
		"buy_code", buyCode, "seller_id", listing.SellerID, "item_code", listing.ItemCode)
	return nil
}
