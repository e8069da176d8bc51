package gacha

// Default per-rarity base weights. Chosen so a single pull lands on the top
// tier 2% of the time.
var defaultBaseWeights = map[int]float64{
	1: 36.0,
	2: 29.55,
	3: 20.45,
	4: 12.0,
	5: 2.0,
}

// Clamp bounds applied after multipliers so no single item dominates the pool
// or vanishes from it.
const (
	DefaultMinWeight = 0.01
	DefaultMaxWeight = 100.0
)

// Error message constants
const (
	ErrMsgPullFailed      = "pull failed"
	ErrMsgMultiPullFailed = "multi-pull failed"
	ErrMsgLoadPoolFailed  = "failed to load pull pool"
)

// Log message constants
const (
	LogMsgPullCompleted      = "Pull completed"
	LogMsgMultiPullCompleted = "Multi-pull completed"
	LogMsgRefundApplied      = "Pull cost refunded after failure"
	LogMsgRefundFailed       = "Pull refund failed, account left short"
)
