// Package static provides an in-memory registry holding a configured
// endpoint. It is intended for local development and tests.
package static

import (
	"context"
	"strings"
	"sync"

	"github.com/kbukum/voxrelay/logger"
	"github.com/kbukum/voxrelay/registry"
)

func init() {
	registry.RegisterFactory(registry.ProviderStatic, func(_ context.Context, cfg registry.Config, _ *logger.Logger) (registry.Store, error) {
		return New(cfg.Static.URL), nil
	})
}

// Store keeps the endpoint in memory.
type Store struct {
	mu    sync.RWMutex
	value string
}

var _ registry.Store = (*Store)(nil)

// New creates a Store seeded with url, which may be empty.
func New(url string) *Store {
	return &Store{value: strings.TrimSpace(url)}
}

// Get returns the stored URL or registry.ErrNotFound.
func (s *Store) Get(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.value == "" {
		return "", registry.ErrNotFound
	}
	return s.value, nil
}

// Set replaces the stored URL.
func (s *Store) Set(_ context.Context, value string) error {
	s.mu.Lock()
	s.value = value
	s.mu.Unlock()
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close(context.Context) error { return nil }
