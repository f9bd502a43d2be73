// Package config loads drillz settings from DRILLZ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/drillz/internal/rewards"
	"github.com/abhisek/drillz/internal/store"
)

// Config holds everything the CLI needs to build a trainer.
type Config struct {
	// DB is a file path for SQLite and a connection URL for postgres and
	// mysql. Empty means the XDG default path (SQLite only).
	DB       string `env:"DRILLZ_DB"`
	DBDriver string `env:"DRILLZ_DB_DRIVER"`

	UserID string `env:"DRILLZ_USER"`

	// Content is an optional path to a JSON content pack. Its scenarios are
	// merged ahead of the built-in library and the cache, so a pack scenario
	// replaces any other with the same key.
	Content string `env:"DRILLZ_CONTENT"`

	DailyCap      int           `env:"DRILLZ_DAILY_CAP"`
	RewardTimeout time.Duration `env:"DRILLZ_REWARD_TIMEOUT"`
	SessionLength int           `env:"DRILLZ_SESSION_LENGTH"`

	LogLevel slog.Level `env:"DRILLZ_LOG_LEVEL"`

	// LogFile receives logs while the terminal UI owns the screen.
	// Empty discards them.
	LogFile string `env:"DRILLZ_LOG_FILE"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		DBDriver:      "sqlite",
		UserID:        "local",
		DailyCap:      rewards.DefaultDailyCap,
		RewardTimeout: 5 * time.Second,
		SessionLength: 20,
		LogLevel:      slog.LevelWarn,
	}
}

// FromEnv overlays DRILLZ_* environment variables on DefaultConfig.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the trainer cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.UserID == "" {
		errs = append(errs, errors.New("user id must not be empty"))
	}
	if c.DailyCap <= 0 {
		errs = append(errs, fmt.Errorf("daily cap must be positive, got %d", c.DailyCap))
	}
	if c.SessionLength <= 0 {
		errs = append(errs, fmt.Errorf("session length must be positive, got %d", c.SessionLength))
	}
	if c.RewardTimeout <= 0 {
		errs = append(errs, fmt.Errorf("reward timeout must be positive, got %s", c.RewardTimeout))
	}
	if _, err := store.DialectFor(c.DBDriver); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// DSN resolves the data source name for the configured driver. SQLite
// falls back to the XDG data directory; other drivers need DB set.
func (c Config) DSN() (string, error) {
	d, err := store.DialectFor(c.DBDriver)
	if err != nil {
		return "", err
	}
	if d.DriverName() == "sqlite" {
		return store.DefaultDBPath(c.DB)
	}
	if c.DB == "" {
		return "", fmt.Errorf("DRILLZ_DB must be set for driver %s", c.DBDriver)
	}
	return c.DB, nil
}

// NewLogger returns a text logger at the configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}
