package cooldown

import "time"

const (
	// DefaultCooldownDuration is the fallback when no duration is configured
	// for an action.
	DefaultCooldownDuration = 5 * time.Minute

	// DefaultMaxReductionPercent caps the summed stacking reductions so a
	// cooldown can never reach zero through perks alone.
	DefaultMaxReductionPercent = 70.0
)

// Error message constants
const (
	ErrMsgCheckCooldownFailed = "failed to check cooldown: %w"
	ErrMsgStartCooldownFailed = "failed to start cooldown: %w"
	ErrMsgResetCooldownFailed = "failed to reset cooldown: %w"
)

// Log message constants
const (
	LogMsgExpiredCooldownPruned = "Expired cooldown pruned on read"
	LogMsgCooldownStarted       = "Cooldown started"
	LogMsgDevModeBypass         = "DEV_MODE: Bypassing cooldown enforcement"
)
