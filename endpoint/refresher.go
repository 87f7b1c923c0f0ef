package endpoint

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/voxrelay/component"
	"github.com/kbukum/voxrelay/logger"
	"github.com/kbukum/voxrelay/observability"
)

// Source is where the refresher reads the raw endpoint value.
type Source interface {
	Get(ctx context.Context) (string, error)
}

// RefresherConfig controls refresh timing.
type RefresherConfig struct {
	Interval     time.Duration
	FetchTimeout time.Duration
}

func (c *RefresherConfig) applyDefaults() {
	if c.Interval <= 0 {
		c.Interval = 60 * time.Second
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 5 * time.Second
	}
}

// Refresher periodically copies the registry value into a Cache. It
// fetches once on Start and then every Interval until Stop. Fetches
// never overlap.
type Refresher struct {
	cache   *Cache
	source  Source
	cfg     RefresherConfig
	log     *logger.Logger
	metrics *observability.Metrics

	mu      sync.Mutex
	lastErr error
	cancel  context.CancelFunc
	done    chan struct{}
}

var _ component.Component = (*Refresher)(nil)

// NewRefresher creates a refresher writing into cache. metrics may be nil.
func NewRefresher(cache *Cache, source Source, cfg RefresherConfig, log *logger.Logger, metrics *observability.Metrics) *Refresher {
	cfg.applyDefaults()
	return &Refresher{
		cache:   cache,
		source:  source,
		cfg:     cfg,
		log:     log.WithComponent("endpoint"),
		metrics: metrics,
	}
}

// Name returns the component name.
func (r *Refresher) Name() string { return "endpoint-refresher" }

// Start performs the first fetch synchronously and starts the loop. A
// failed first fetch is not fatal; requests answer 503 until a later
// refresh succeeds.
func (r *Refresher) Start(ctx context.Context) error {
	r.Refresh(ctx)

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	r.mu.Lock()
	r.cancel = cancel
	r.done = make(chan struct{})
	done := r.done
	r.mu.Unlock()

	go r.loop(loopCtx, done)
	return nil
}

// Stop ends the loop and waits for an in-flight fetch to finish.
func (r *Refresher) Stop(ctx context.Context) error {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel = nil
	r.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Health is degraded until the first address arrives.
func (r *Refresher) Health(context.Context) component.Health {
	h := component.Health{Name: r.Name(), Status: component.StatusHealthy}
	r.mu.Lock()
	lastErr := r.lastErr
	r.mu.Unlock()

	if _, ok := r.cache.Current(); !ok {
		h.Status = component.StatusDegraded
		h.Message = "upstream endpoint not yet known"
	}
	if lastErr != nil {
		if h.Message != "" {
			h.Message += "; "
		}
		h.Message += fmt.Sprintf("last refresh failed: %v", lastErr)
	}
	return h
}

func (r *Refresher) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Refresh(ctx)
		}
	}
}

// Refresh runs one fetch. On success the cache is updated; on failure
// the cached value is kept and the error logged.
func (r *Refresher) Refresh(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, r.cfg.FetchTimeout)
	defer cancel()

	err := r.fetch(fetchCtx)
	r.mu.Lock()
	r.lastErr = err
	r.mu.Unlock()
	r.metrics.RecordRefresh(ctx, err == nil)

	if err != nil {
		fields := logger.ErrorFields("refresh", err)
		if addr, ok := r.cache.Current(); ok {
			fields["stale_endpoint"] = addr.String()
		}
		r.log.Warn("Endpoint refresh failed, keeping previous value", fields)
	}
}

func (r *Refresher) fetch(ctx context.Context) error {
	raw, err := r.source.Get(ctx)
	if err != nil {
		return err
	}
	addr, err := Normalize(raw)
	if err != nil {
		return err
	}
	if r.cache.Store(addr) {
		r.log.Info("Upstream endpoint updated", logger.Fields(logger.FieldEndpoint, addr.String()))
	}
	return nil
}
