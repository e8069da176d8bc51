package ledger

// Error message constants
const (
	ErrMsgCreditFailed      = "failed to credit account"
	ErrMsgDebitFailed       = "failed to debit account"
	ErrMsgGrantFailed       = "failed to grant item"
	ErrMsgConsumeFailed     = "failed to consume item"
	ErrMsgDailyClaimFailed  = "failed to claim daily reward"
	ErrMsgInvalidQuantity   = "quantity must be between 1 and"
	ErrMsgNegativeDelta     = "currency deltas must be non-negative"
	ErrMsgEmptyDelta        = "at least one currency delta required"
)

// Log message constants
const (
	LogMsgAccountCredited = "Account credited"
	LogMsgAccountDebited  = "Account debited"
	LogMsgItemGranted     = "Item granted"
	LogMsgItemConsumed    = "Item consumed"
	LogMsgDailyClaimed    = "Daily reward claimed"
)
