package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, read from SLOTLINE_* environment
// variables with an optional .env file in the working directory.
type Config struct {
	APIBaseURL string `env:"SLOTLINE_API_URL" envDefault:"https://api.slotline.app"`
	TimeoutMs  int    `env:"SLOTLINE_TIMEOUT_MS" envDefault:"10000"`
	MaxRetries int    `env:"SLOTLINE_MAX_RETRIES" envDefault:"1"`
	DBPath     string `env:"SLOTLINE_DB"`
	LogCalls   bool   `env:"SLOTLINE_LOG_CALLS" envDefault:"false"`
}

// Load reads configuration from the environment. A .env file is loaded first
// when present; real environment variables win over it. The database path
// defaults to ~/.slotline/slotline.db.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".slotline", "slotline.db")
	}
	return cfg, nil
}
