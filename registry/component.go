package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/voxrelay/component"
	"github.com/kbukum/voxrelay/logger"
	"github.com/kbukum/voxrelay/resilience"
)

// errNotStarted is returned by Store methods before Start.
var errNotStarted = errors.New("registry: component not started")

// Component opens the configured Store on Start and closes it on Stop.
// It implements Store itself so consumers can be wired before Start.
type Component struct {
	cfg Config
	log *logger.Logger

	mu    sync.RWMutex
	store Store
}

var (
	_ component.Component = (*Component)(nil)
	_ Store               = (*Component)(nil)
)

// NewComponent creates a registry component.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	return &Component{cfg: cfg, log: log.WithComponent("registry")}
}

// Name returns the component name.
func (c *Component) Name() string { return "registry" }

// Start opens the backend and verifies connectivity, retrying per
// Config.Connect. A backend that opens but never answers a ping is kept:
// reads fail until it comes back and Health reports it.
func (c *Component) Start(ctx context.Context) error {
	retry := c.cfg.Connect
	retry.OnRetry = func(attempt int, err error, backoff time.Duration) {
		c.log.Warn("Registry connect failed, retrying", logger.Fields(
			"provider", c.cfg.Provider, "attempt", attempt, "backoff", backoff.String(), "error", err.Error()))
	}

	store, err := resilience.Retry(ctx, retry, func(ctx context.Context) (Store, error) {
		return Open(ctx, c.cfg, c.log)
	})
	if err != nil {
		return fmt.Errorf("registry start: %w", err)
	}
	if err := resilience.RetryFunc(ctx, retry, store.Ping); err != nil {
		c.log.Warn("Registry unreachable at startup", logger.Fields("provider", c.cfg.Provider, "error", err.Error()))
	} else {
		c.log.Info("Registry connected", logger.Fields("provider", c.cfg.Provider))
	}

	c.mu.Lock()
	c.store = store
	c.mu.Unlock()
	return nil
}

// Stop closes the backend.
func (c *Component) Stop(ctx context.Context) error {
	c.mu.Lock()
	store := c.store
	c.store = nil
	c.mu.Unlock()
	if store == nil {
		return nil
	}
	return store.Close(ctx)
}

// Health pings the backend.
func (c *Component) Health(ctx context.Context) component.Health {
	store := c.current()
	if store == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "registry not initialized"}
	}
	if err := store.Ping(ctx); err != nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: fmt.Sprintf("ping failed: %v", err)}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

func (c *Component) current() Store {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store
}

// Get reads the endpoint from the backend.
func (c *Component) Get(ctx context.Context) (string, error) {
	store := c.current()
	if store == nil {
		return "", errNotStarted
	}
	return store.Get(ctx)
}

// Set writes the endpoint to the backend.
func (c *Component) Set(ctx context.Context, value string) error {
	store := c.current()
	if store == nil {
		return errNotStarted
	}
	return store.Set(ctx, value)
}

// Ping checks the backend.
func (c *Component) Ping(ctx context.Context) error {
	store := c.current()
	if store == nil {
		return errNotStarted
	}
	return store.Ping(ctx)
}

// Close is a no-op; the backend is closed by Stop.
func (c *Component) Close(context.Context) error { return nil }
