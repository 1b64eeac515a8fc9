package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/Fantasim/solvault/internal/models"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	MnemonicFile string `envconfig:"SOLVAULT_MNEMONIC_FILE"`
	DBPath       string `envconfig:"SOLVAULT_DB_PATH" default:"./data/solvault.sqlite"`
	Port         int    `envconfig:"SOLVAULT_PORT" default:"8080"`
	LogLevel     string `envconfig:"SOLVAULT_LOG_LEVEL" default:"info"`
	LogDir       string `envconfig:"SOLVAULT_LOG_DIR" default:"./logs"`
	Network      string `envconfig:"SOLVAULT_NETWORK" default:"mainnet"`

	AccountCount int `envconfig:"SOLVAULT_ACCOUNT_COUNT" default:"100"`
	APIRateLimit int `envconfig:"SOLVAULT_API_RATE_LIMIT" default:"50"`
}

// Load reads configuration from .env file (if present) then from environment variables.
// Environment variables override .env values.
func Load() (*Config, error) {
	// Load .env file if it exists. godotenv does NOT override already-set env vars,
	// so real environment variables take precedence over .env values.
	envFiles := []string{".env"}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				slog.Warn("failed to load .env file", "file", f, "error", err)
			} else {
				slog.Info("loaded .env file", "file", f)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration values for correctness.
func (c *Config) Validate() error {
	if c.Network != string(models.NetworkMainnet) && c.Network != string(models.NetworkDevnet) {
		return fmt.Errorf("%w: network must be \"mainnet\" or \"devnet\", got %q", ErrInvalidConfig, c.Network)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port must be 1-65535, got %d", ErrInvalidConfig, c.Port)
	}
	if c.AccountCount < 1 || c.AccountCount > MaxAccounts {
		return fmt.Errorf("%w: account count must be 1-%d, got %d", ErrInvalidConfig, MaxAccounts, c.AccountCount)
	}
	if c.APIRateLimit < 1 {
		return fmt.Errorf("%w: API rate limit must be positive, got %d", ErrInvalidConfig, c.APIRateLimit)
	}
	return nil
}
