package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultServiceName, cfg.ServiceName)
	assert.Equal(t, DefaultPullCooldown, cfg.PullCooldown)
	assert.Equal(t, DefaultMaxCooldownReduction, cfg.MaxCooldownReduction)
	assert.Equal(t, int64(DefaultPullCostPatterns), cfg.PullCostPatterns)
	assert.Equal(t, DefaultMultiPullSize, cfg.MultiPullSize)
	assert.False(t, cfg.DevMode)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("PORT", "9090")
	t.Setenv("PULL_COOLDOWN", "30s")
	t.Setenv("MAX_COOLDOWN_REDUCTION_PCT", "50")
	t.Setenv("DEV_MODE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.PullCooldown)
	assert.Equal(t, 50.0, cfg.MaxCooldownReduction)
	assert.True(t, cfg.DevMode)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "PORT", "not-a-port"},
		{"bad duration", "PULL_COOLDOWN", "tomorrow"},
		{"reduction over 100", "MAX_COOLDOWN_REDUCTION_PCT", "120"},
		{"negative pull cost", "PULL_COST_PATTERNS", "-5"},
		{"multi pull too small", "MULTI_PULL_SIZE", "1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("API_KEY", "test-key")
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "u",
		DBPassword: "p",
		DBHost:     "db",
		DBPort:     "5433",
		DBName:     "cards",
	}
	assert.Equal(t, "postgres://u:p@db:5433/cards?sslmode=disable", cfg.GetDBConnString())
}
