package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/voxrelay/component"
	"github.com/kbukum/voxrelay/logger"
)

// Hook is a lifecycle callback.
type Hook func(ctx context.Context) error

// App owns the typed config, the logger and the component registry of a binary.
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger

	gracefulTimeout time.Duration
	onConfigure     []func(ctx context.Context, app *App[C]) error
	onStop          []Hook
}

// NewApp applies defaults, validates cfg and initializes the logger.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	o := &appOptions{gracefulTimeout: 15 * time.Second}
	for _, opt := range opts {
		opt(o)
	}

	base := cfg.GetServiceConfig()
	log := o.logger
	if log == nil {
		log = logger.Init(&base.Logging, base.Name)
	}

	return &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		Components:      component.NewRegistry(log),
		Logger:          log,
		gracefulTimeout: o.gracefulTimeout,
	}, nil
}

// RegisterComponent adds a component to the application's registry.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// OnConfigure registers a callback that wires business dependencies before
// components are started. Callbacks usually register components themselves.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// OnStop registers a hook that runs before components are stopped.
func (a *App[C]) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// Run configures, starts components and blocks until ctx is done or the
// process receives SIGINT/SIGTERM, then shuts down gracefully.
func (a *App[C]) Run(ctx context.Context) error {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Start(sigCtx); err != nil {
		return err
	}

	a.Logger.Info("Application ready", logger.Fields("name", a.Name, "version", a.Version))
	<-sigCtx.Done()
	a.Logger.Info("Shutdown requested")

	return a.Shutdown()
}

// Start runs configure callbacks and starts all components.
func (a *App[C]) Start(ctx context.Context) error {
	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return fmt.Errorf("configuration failed: %w", err)
		}
	}
	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	return nil
}

// Shutdown runs stop hooks and stops components within the graceful timeout.
func (a *App[C]) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var errs []error
	for i, h := range a.onStop {
		if err := h(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop hook %d: %w", i, err))
		}
	}
	if err := a.Components.StopAll(ctx); err != nil {
		errs = append(errs, err)
	}

	err := errors.Join(errs...)
	if err != nil {
		a.Logger.Error("Shutdown completed with errors", logger.Fields(logger.FieldError, err.Error()))
		return err
	}
	a.Logger.Info("Application shutdown complete")
	return nil
}
