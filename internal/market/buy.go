package market

import (
	"context"
	"errors"
	"fmt"

	"github.com/osmunda/cardbot/internal/domain"
	"github.com/osmunda/cardbot/internal/logger"
	"github.com/osmunda/cardbot/internal/repository"
)

// Buy resolves each code in the batch independently. A missing code, a
// self-purchase or a short balance fails that code alone; the rest of the
// batch proceeds.
func (s *service) Buy(ctx context.Context, buyerID string, buyCodes []string) (*BuyResult, error) {
	if len(buyCodes) == 0 || len(buyCodes) > domain.MaxBatchBuyCodes {
		return nil, fmt.Errorf("%w: batch must carry 1 to %d buy codes",
			domain.ErrValidation, domain.MaxBatchBuyCodes)
	}

	result := &BuyResult{}
	for _, code := range buyCodes {
		listing, err := s.buyOne(ctx, buyerID, code)
		if err != nil {
			if errors.Is(err, domain.ErrCompensationFailed) {
				// Books may be inconsistent; stop the batch and surface it.
				return nil, err
			}
			result.Failed = append(result.Failed, BuyFailure{BuyCode: code, Reason: err.Error()})
			continue
		}
		result.Purchased = append(result.Purchased, *listing)
	}
	return result, nil
}

// buyOne settles a single listing. The listing delete is the serialization
// point: of two concurrent buyers, exactly one delete succeeds and the loser
// sees the listing as gone. Money and the item then move via compensated
// steps, so a failure at any stage restores the listing and both balances.
func (s *service) buyOne(ctx context.Context, buyerID, buyCode string) (*domain.Listing, error) {
	var listing *domain.Listing
	err := repository.WithRetry(ctx, func() error {
		var err error
		listing, err = s.listings.GetListing(ctx, buyCode)
		return err
	})
	if err != nil {
		return nil, err
	}
	if listing.SellerID == buyerID {
		return nil, fmt.Errorf("%w: %s", domain.ErrSelfPurchase, buyCode)
	}

	price := domain.Balances{domain.CurrencyPatterns: listing.Price}

	err = runCompensated(ctx, []step{
		{
			name: "claim listing",
			run: func() error {
				return s.listings.DeleteListing(ctx, buyCode)
			},
			rollback: func() error {
				restored := *listing
				if err := s.listings.CreateListing(ctx, &restored); err != nil {
					return fmt.Errorf("%s %s: %w", ErrMsgRestoreListing, buyCode, err)
				}
				return nil
			},
		},
		{
			name: "debit buyer",
			run: func() error {
				return s.ledger.Debit(ctx, buyerID, price)
			},
			rollback: func() error {
				return s.ledger.Credit(ctx, buyerID, price)
			},
		},
		{
			name: "credit seller",
			run: func() error {
				return s.ledger.Credit(ctx, listing.SellerID, price)
			},
			rollback: func() error {
				return s.ledger.Debit(ctx, listing.SellerID, price)
			},
		},
		{
			name: "grant item",
			run: func() error {
				return s.ledger.GrantItem(ctx, buyerID, listing.ItemCode, 1)
			},
		},
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgListingBought,
		"buy_code", buyCode, "buyer_id", buyerID, "seller_id", listing.SellerID,
		"item_code", listing.ItemCode, "price", listing.Price)
	return listing, nil
}
