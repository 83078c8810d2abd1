package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseEnvDefaults(t *testing.T) {
	cfg, err := ParseEnv()
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Driver != DriverSQLite {
		t.Fatalf("driver = %q, want %q", cfg.Driver, DriverSQLite)
	}
	if cfg.Path != "plateful/onboarding.db" {
		t.Fatalf("path = %q, want %q", cfg.Path, "plateful/onboarding.db")
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("PLATEFUL_STORE_DRIVER", "bbolt")
	t.Setenv("PLATEFUL_STORE_PATH", "/tmp/custom.db")

	cfg, err := ParseEnv()
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Driver != DriverBbolt {
		t.Fatalf("driver = %q, want %q", cfg.Driver, DriverBbolt)
	}
	if cfg.Path != "/tmp/custom.db" {
		t.Fatalf("path = %q, want %q", cfg.Path, "/tmp/custom.db")
	}
}

func TestOpenMemory(t *testing.T) {
	t.Parallel()

	store, err := Open(Config{Driver: DriverMemory})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})

	if err := store.Set(context.Background(), "onboarding/state", "value"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.Get(context.Background(), "onboarding/state")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "value" {
		t.Fatalf("value = %q, want %q", got, "value")
	}
}

func TestOpenSQLiteCreatesParentDirs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "stores", "onboarding.db")
	store, err := Open(Config{Driver: DriverSQLite, Path: path})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat db file: %v", err)
	}
}

func TestOpenBboltCreatesParentDirs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "stores", "onboarding.db")
	store, err := Open(Config{Driver: DriverBbolt, Path: path})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat db file: %v", err)
	}
}

func TestOpenNormalizesDriverName(t *testing.T) {
	t.Parallel()

	store, err := Open(Config{Driver: " Memory "})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := Open(Config{Driver: "redis"})
	if err == nil {
		t.Fatal("expected unknown driver error")
	}
	if !strings.Contains(err.Error(), "unknown store driver") {
		t.Fatalf("error = %v, want unknown driver message", err)
	}
}
