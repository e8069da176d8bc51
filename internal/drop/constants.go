package drop

import "time"

const (
	// DefaultTTL is how long a spawned drop stays claimable when the caller
	// does not specify a window.
	DefaultTTL = 5 * time.Minute

	// MaxSlots bounds the size of one spawned drop.
	MaxSlots = 20
)

// Error message constants
const (
	ErrMsgSpawnFailed     = "failed to spawn drop"
	ErrMsgClaimFailed     = "failed to claim drop slot"
	ErrMsgGrantAfterClaim = "claim succeeded but grant failed"
	ErrMsgNoSlots         = "drop needs at least one slot"
	ErrMsgTooManySlots    = "drop exceeds slot limit"
)

// Log message constants
const (
	LogMsgDropSpawned     = "Drop spawned"
	LogMsgSlotClaimed     = "Drop slot claimed"
	LogMsgExpiredSwept    = "Expired drops swept"
	LogMsgGrantAfterClaim = "Grant after winning claim failed; needs reconciliation"
)
