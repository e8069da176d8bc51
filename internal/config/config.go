package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	APIKey         string   // API key for authentication
	TrustedProxies []string // peers whose X-Forwarded-For is honored
	DevMode        bool     // bypasses cooldowns, for local testing only

	// Economy knobs
	PullCooldown         time.Duration
	MultiPullCooldown    time.Duration
	DailyCooldown        time.Duration
	MaxCooldownReduction float64 // percent, cap on stacked reductions
	PullCostPatterns     int64   // price of a single pull
	MultiPullSize        int     // cards per multi pull
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", DefaultDBName),
		APIKey:      getEnv("API_KEY", ""),
		DevMode:     getEnv("DEV_MODE", "false") == "true",
	}

	if raw := getEnv("TRUSTED_PROXIES", ""); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	port, err := getEnvInt("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	if cfg.PullCooldown, err = getEnvDuration("PULL_COOLDOWN", DefaultPullCooldown); err != nil {
		return nil, err
	}
	if cfg.MultiPullCooldown, err = getEnvDuration("MULTI_PULL_COOLDOWN", DefaultMultiPullCooldown); err != nil {
		return nil, err
	}
	if cfg.DailyCooldown, err = getEnvDuration("DAILY_COOLDOWN", DefaultDailyCooldown); err != nil {
		return nil, err
	}

	if cfg.MaxCooldownReduction, err = getEnvFloat("MAX_COOLDOWN_REDUCTION_PCT", DefaultMaxCooldownReduction); err != nil {
		return nil, err
	}

	cost, err := getEnvInt("PULL_COST_PATTERNS", DefaultPullCostPatterns)
	if err != nil {
		return nil, err
	}
	cfg.PullCostPatterns = int64(cost)

	if cfg.MultiPullSize, err = getEnvInt("MULTI_PULL_SIZE", DefaultMultiPullSize); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects configurations the services cannot run with.
func (c *Config) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if c.MaxCooldownReduction < 0 || c.MaxCooldownReduction > 100 {
		return fmt.Errorf("MAX_COOLDOWN_REDUCTION_PCT must be within [0, 100], got %v", c.MaxCooldownReduction)
	}
	if c.PullCostPatterns < 0 {
		return fmt.Errorf("PULL_COST_PATTERNS must not be negative, got %d", c.PullCostPatterns)
	}
	if c.MultiPullSize < 2 {
		return fmt.Errorf("MULTI_PULL_SIZE must be at least 2, got %d", c.MultiPullSize)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
