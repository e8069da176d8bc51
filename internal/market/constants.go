package market

const (
	// BuyCodeLength is the length of issued buy codes.
	BuyCodeLength = 6

	// BuyCodeAttempts bounds collision retries before falling back to a
	// time-derived code.
	BuyCodeAttempts = 5

	// DefaultListingLimit caps a public listing page.
	DefaultListingLimit = 50
)

// Error message constants
const (
	ErrMsgSellFailed        = "failed to list item"
	ErrMsgBuyFailed         = "failed to buy listing"
	ErrMsgRemoveFailed      = "failed to remove listing"
	ErrMsgTransferFailed    = "failed to transfer holdings"
	ErrMsgInvalidPrice      = "price must be positive"
	ErrMsgNotListingOwner   = "listing belongs to another seller"
	ErrMsgRestoreListing    = "failed to restore listing"
	ErrMsgNothingToTransfer = "source holds no currency"
)

// Log message constants
const (
	LogMsgItemListed          = "Item listed"
	LogMsgListingBought       = "Listing bought"
	LogMsgListingRemoved      = "Listing removed"
	LogMsgListingAdminDeleted = "Listing deleted by admin"
	LogMsgTransferCompleted   = "Holdings transferred"
	LogMsgCompensationApplied = "Compensation applied"
	LogMsgCompensationFailed  = "Compensation failed; manual reconciliation required"
)
