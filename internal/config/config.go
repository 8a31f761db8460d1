// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/caarlos0/env/v11"
)

// Config holds every environment-driven setting of the mealfund binary.
type Config struct {
	// DBPath defaults to ~/.mealfund/mealfund.db when unset.
	DBPath            string `env:"MEALFUND_DB"`
	LogUseCases       bool   `env:"MEALFUND_LOG_USE_CASES" envDefault:"false"`
	ExportOffsetHours int    `env:"MEALFUND_EXPORT_OFFSET_HOURS" envDefault:"7"`
}

// Load parses the environment and fills derived defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".mealfund", "mealfund.db")
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is set, minus the
// home-relative database path.
func Default() Config {
	return Config{ExportOffsetHours: domain.ExportOffsetHours}
}
