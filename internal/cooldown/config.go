package cooldown

import "time"

// Config holds cooldown service configuration
type Config struct {
	// DevMode bypasses all cooldowns when true
	DevMode bool

	// Durations maps action names to their base cooldown durations
	Durations map[string]time.Duration

	// MaxReductionPercent clamps the summed stacking reductions
	MaxReductionPercent float64
}

// GetDuration returns the base cooldown duration for an action
func (c *Config) GetDuration(action string) time.Duration {
	if c.Durations != nil {
		if d, ok := c.Durations[action]; ok {
			return d
		}
	}
	return DefaultCooldownDuration
}

func (c *Config) maxReduction() float64 {
	if c.MaxReductionPercent <= 0 {
		return DefaultMaxReductionPercent
	}
	return c.MaxReductionPercent
}
