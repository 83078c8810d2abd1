// Package memory provides an in-memory key-value store, used by tests and
// as the default backend when no durable store is configured.
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/plateful/onboarding/storage"
)

// ErrKeyRequired indicates a blank storage key.
var ErrKeyRequired = errors.New("storage key is required")

// Store keeps values in a mutex-guarded map.
type Store struct {
	mu     sync.Mutex
	values map[string]string
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s == nil {
		return "", errors.New("store is required")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrKeyRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return value, nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil {
		return errors.New("store is required")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrKeyRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

// Delete removes key. Absent keys are ignored.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil {
		return errors.New("store is required")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrKeyRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

// Close is a no-op; nothing is held outside process memory.
func (s *Store) Close() error {
	return nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}
