package domain

// Transaction limits shared across services.
const (
	// MaxTransactionQuantity bounds a single grant/consume/buy request.
	MaxTransactionQuantity = 1000

	// MaxBatchBuyCodes bounds how many buy codes one batch-buy may carry.
	MaxBatchBuyCodes = 20
)

// Daily reward parameters.
const (
	// DailyStreakWindowHours is how long after the previous daily claim the
	// streak continues instead of resetting.
	DailyStreakWindowHours = 48

	// DailyRewardPatterns is the base daily grant.
	DailyRewardPatterns = 100

	// DailyStreakBonusPatterns is granted per streak day on top of the base.
	DailyStreakBonusPatterns = 10

	// DailyStreakBonusCap bounds the streak bonus multiplier.
	DailyStreakBonusCap = 30
)
