// Package storage defines the key-value contract the onboarding engine
// persists through. Backends live in subpackages; the engine does not care
// which one it gets.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound indicates a requested key is missing.
var ErrNotFound = errors.New("key not found")

// KV persists string values under string keys. Implementations must
// serialize individual calls; callers never issue concurrent writes for
// the same key but may read while a write is in flight.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, overwriting any prior value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
