package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"

	// Ledger operation error messages
	ErrMsgGetAccountFailed   = "Failed to get account"
	ErrMsgCreditFailed       = "Failed to credit account"
	ErrMsgDebitFailed        = "Failed to debit account"
	ErrMsgGetInventoryFailed = "Failed to get inventory"
	ErrMsgGrantItemFailed    = "Failed to grant item"
	ErrMsgConsumeItemFailed  = "Failed to consume item"
	ErrMsgClaimDailyFailed   = "Failed to claim daily reward"

	// Pull operation error messages
	ErrMsgPullFailed      = "Failed to pull"
	ErrMsgMultiPullFailed = "Failed to multi-pull"

	// Drop operation error messages
	ErrMsgSpawnDropFailed = "Failed to spawn drop"
	ErrMsgGetDropFailed   = "Failed to get drop"
	ErrMsgClaimDropFailed = "Failed to claim drop slot"
	ErrMsgInvalidDropID   = "Invalid drop id"

	// Market operation error messages
	ErrMsgSellFailed        = "Failed to list item"
	ErrMsgBuyFailed         = "Failed to buy"
	ErrMsgRemoveFailed      = "Failed to remove listing"
	ErrMsgAdminDeleteFailed = "Failed to delete listing"
	ErrMsgListFailed        = "Failed to list marketplace"
	ErrMsgTransferFailed    = "Failed to transfer holdings"

	// Cooldown error messages
	ErrMsgCheckCooldownFailed = "Failed to check cooldown"
	ErrMsgStartCooldownFailed = "Failed to start cooldown"
)
