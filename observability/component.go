package observability

import (
	"context"
	"errors"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/voxrelay/component"
	"github.com/kbukum/voxrelay/logger"
)

// Component installs the configured OTLP providers on Start and flushes
// them on Stop. With everything disabled it does nothing.
type Component struct {
	svc ServiceInfo
	cfg Config
	log *logger.Logger

	mp *sdkmetric.MeterProvider
	tp *sdktrace.TracerProvider
}

var _ component.Component = (*Component)(nil)

// NewComponent creates the telemetry component.
func NewComponent(svc ServiceInfo, cfg Config, log *logger.Logger) *Component {
	return &Component{svc: svc, cfg: cfg, log: log.WithComponent("observability")}
}

// Name returns the component name.
func (c *Component) Name() string { return "observability" }

// Start initializes the enabled exporters.
func (c *Component) Start(ctx context.Context) error {
	if c.cfg.Metrics.Enabled {
		mp, err := InitMeter(ctx, c.svc, c.cfg.Metrics)
		if err != nil {
			return err
		}
		c.mp = mp
		c.log.Info("OTLP metrics enabled", logger.Fields("endpoint", c.cfg.Metrics.Endpoint))
	}
	if c.cfg.Tracing.Enabled {
		tp, err := InitTracer(ctx, c.svc, c.cfg.Tracing)
		if err != nil {
			return err
		}
		c.tp = tp
		c.log.Info("OTLP tracing enabled", logger.Fields("endpoint", c.cfg.Tracing.Endpoint))
	}
	return nil
}

// Stop flushes and shuts down the providers.
func (c *Component) Stop(ctx context.Context) error {
	var errs []error
	if c.tp != nil {
		errs = append(errs, c.tp.Shutdown(ctx))
	}
	if c.mp != nil {
		errs = append(errs, c.mp.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// Health always reports healthy; export failures are retried by the SDK.
func (c *Component) Health(context.Context) component.Health {
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}
