// Package config loads storage configuration for the onboarding engine from
// the environment.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/plateful/onboarding/storage"
	"github.com/plateful/onboarding/storage/bbolt"
	"github.com/plateful/onboarding/storage/memory"
	"github.com/plateful/onboarding/storage/sqlite"
)

// Store drivers accepted by PLATEFUL_STORE_DRIVER.
const (
	DriverSQLite = "sqlite"
	DriverBbolt  = "bbolt"
	DriverMemory = "memory"
)

// Config selects where onboarding snapshots are kept.
type Config struct {
	Driver string `env:"PLATEFUL_STORE_DRIVER" envDefault:"sqlite"`
	Path   string `env:"PLATEFUL_STORE_PATH"   envDefault:"plateful/onboarding.db"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Store is a key-value store with a lifecycle.
type Store interface {
	storage.KV
	io.Closer
}

// Open builds the configured store, creating parent directories for
// file-backed drivers.
func Open(cfg Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case DriverMemory:
		return memory.New(), nil
	case DriverSQLite:
		if err := ensureDir(cfg.Path); err != nil {
			return nil, err
		}
		store, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	case DriverBbolt:
		if err := ensureDir(cfg.Path); err != nil {
			return nil, err
		}
		store, err := bbolt.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open bbolt store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q (valid: %s, %s, %s)",
			cfg.Driver, DriverSQLite, DriverBbolt, DriverMemory)
	}
}

func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create storage dir: %w", err)
		}
	}
	return nil
}
