package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/kbukum/voxrelay/logger"
)

// ErrNotFound is returned by Get when no endpoint has been stored.
var ErrNotFound = errors.New("registry: endpoint not set")

// Store is a single-value endpoint registry.
type Store interface {
	// Get returns the stored URL, ErrNotFound when absent, or a wrapped
	// transport error when the backend is unreachable.
	Get(ctx context.Context) (string, error)
	// Set overwrites the stored URL.
	Set(ctx context.Context, value string) error
	// Ping checks backend connectivity.
	Ping(ctx context.Context) error
	// Close releases backend resources.
	Close(ctx context.Context) error
}

// Factory creates a Store for a provider.
type Factory func(ctx context.Context, cfg Config, log *logger.Logger) (Store, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// RegisterFactory makes a backend available under name. Backend packages
// call it from init.
func RegisterFactory(name string, f Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[name] = f
}

// Providers lists the registered backend names.
func Providers() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	names := make([]string, 0, len(factories))
	for n := range factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Open creates the Store selected by cfg.Provider.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (Store, error) {
	factoriesMu.RLock()
	f, ok := factories[cfg.Provider]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown provider %q (registered: %v)", cfg.Provider, Providers())
	}
	return f(ctx, cfg, log)
}
