package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port     int    `envconfig:"FININT_PORT" default:"8080"`
	LogLevel string `envconfig:"FININT_LOG_LEVEL" default:"info"`
	LogDir   string `envconfig:"FININT_LOG_DIR" default:"./logs"`

	TronscanAPIKey string `envconfig:"FININT_TRONSCAN_API_KEY"`

	EverclearURL string `envconfig:"FININT_EVERCLEAR_URL" default:"https://scan.everclear.org/api/v2/addresses"`
	TronscanURL  string `envconfig:"FININT_TRONSCAN_URL" default:"https://apilist.tronscanapi.com/api/account/resourcev2"`
	MayanURL     string `envconfig:"FININT_MAYAN_URL" default:"https://price-api.mayan.finance/v3/quote"`

	MaxPages  int    `envconfig:"FININT_MAX_PAGES" default:"10"`
	ExportDir string `envconfig:"FININT_EXPORT_DIR" default:"./data/export"`
}

// Load reads configuration from .env file (if present) then from environment variables.
// Environment variables override .env values.
func Load() (*Config, error) {
	// godotenv does NOT override already-set env vars, so real environment
	// variables take precedence over .env values.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			slog.Warn("failed to load .env file", "error", err)
		} else {
			slog.Info("loaded .env file")
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
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port must be 1-65535, got %d", ErrInvalidConfig, c.Port)
	}
	if c.MaxPages < 1 {
		return fmt.Errorf("%w: max pages must be >= 1, got %d", ErrInvalidConfig, c.MaxPages)
	}
	if c.EverclearURL == "" || c.TronscanURL == "" || c.MayanURL == "" {
		return fmt.Errorf("%w: integration base URLs must not be empty", ErrInvalidConfig)
	}
	return nil
}
