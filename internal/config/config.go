package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration values for the service
type Config struct {
	// HTTP
	Port int `env:"PORT" envDefault:"8080"`

	// Riot API
	RiotAPIKey string `env:"RIOT_API_KEY"`

	// Blizzard API
	BlizzardClientID     string `env:"BLIZZARD_CLIENT_ID"`
	BlizzardClientSecret string `env:"BLIZZARD_CLIENT_SECRET"`

	// Database
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./data/index.db"`

	// Blob storage base URLs. The server-only variable wins over the
	// public one when both are set.
	BlobBaseURL       string `env:"BLOB_BASE_URL"`
	PublicBlobBaseURL string `env:"NEXT_PUBLIC_BLOB_BASE_URL"`

	// Identity refresh. 0 disables the background refresher.
	RefreshIntervalSeconds int `env:"REFRESH_INTERVAL_SECONDS" envDefault:"0"`

	// Static data output directory for the fetch tool
	DataDir string `env:"DATA_DIR" envDefault:"./data/static"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Validate required fields
	if cfg.RiotAPIKey == "" {
		return nil, fmt.Errorf("RIOT_API_KEY is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT: %d", cfg.Port)
	}

	return cfg, nil
}
