package config

import "time"

// Defaults applied when the environment does not override them.
const (
	DefaultServiceName = "cardbot"
	DefaultDBName      = "cardbot"
	DefaultPort        = 8080

	DefaultPullCooldown      = 10 * time.Minute
	DefaultMultiPullCooldown = 2 * time.Hour
	DefaultDailyCooldown     = 24 * time.Hour

	DefaultMaxCooldownReduction = 70.0
	DefaultPullCostPatterns     = 50
	DefaultMultiPullSize        = 10
)
