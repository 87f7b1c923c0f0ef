package server

import (
	"context"

	"github.com/kbukum/voxrelay/component"
)

const componentName = "http-server"

var _ component.Component = (*Component)(nil)

// Component adapts a Server to the component lifecycle.
type Component struct {
	server  *Server
	started bool
}

// NewComponent returns a component backed by s.
func NewComponent(s *Server) *Component {
	return &Component{server: s}
}

// Name returns the component name.
func (c *Component) Name() string { return componentName }

// Start starts the HTTP server.
func (c *Component) Start(ctx context.Context) error {
	if err := c.server.Start(ctx); err != nil {
		return err
	}
	c.started = true
	return nil
}

// Stop shuts the HTTP server down.
func (c *Component) Stop(ctx context.Context) error {
	if !c.started {
		return nil
	}
	c.started = false
	return c.server.Stop(ctx)
}

// Health reports whether the server is serving.
func (c *Component) Health(context.Context) component.Health {
	if !c.started {
		return component.Health{Name: componentName, Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy}
}
