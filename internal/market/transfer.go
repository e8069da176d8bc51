package market

import (
	"context"
	"errors"
	"fmt"

	"github.com/osmunda/cardbot/internal/domain"
	"github.com/osmunda/cardbot/internal/logger"
	"github.com/osmunda/cardbot/internal/repository"
)

// Transfer moves every holding of src to dst: inventory first, then
// currency. Currency moves credit-first so a failure path can always give
// money back to dst rather than leave it destroyed; the debit of src is the
// step that can legitimately fail when src spent concurrently.
func (s *service) Transfer(ctx context.Context, srcUserID, dstUserID string) error {
	if srcUserID == dstUserID {
		return fmt.Errorf("%w: source and destination are the same account", domain.ErrValidation)
	}

	var acct *domain.Account
	err := repository.WithRetry(ctx, func() error {
		var err error
		acct, err = s.accounts.GetAccount(ctx, srcUserID)
		return err
	})
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return fmt.Errorf("%s: %w", ErrMsgTransferFailed, err)
	}

	if err := repository.WithRetry(ctx, func() error {
		return s.inventory.MergeInventories(ctx, srcUserID, dstUserID)
	}); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgTransferFailed, err)
	}

	if acct == nil || acct.Balances().IsZero() {
		logger.FromContext(ctx).Info(LogMsgTransferCompleted,
			"src_user_id", srcUserID, "dst_user_id", dstUserID, "currency_moved", false)
		return nil
	}
	amounts := acct.Balances()

	err = runCompensated(ctx, []step{
		{
			name: "credit destination",
			run: func() error {
				return s.ledger.Credit(ctx, dstUserID, amounts)
			},
			rollback: func() error {
				return s.ledger.Debit(ctx, dstUserID, amounts)
			},
		},
		{
			name: "debit source",
			run: func() error {
				return s.ledger.Debit(ctx, srcUserID, amounts)
			},
		},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgTransferFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgTransferCompleted,
		"src_user_id", srcUserID, "dst_user_id", dstUserID, "currency_moved", true)
	return nil
}
