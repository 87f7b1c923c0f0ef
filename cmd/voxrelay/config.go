package main

import (
	"fmt"

	"github.com/kbukum/voxrelay/config"
	"github.com/kbukum/voxrelay/observability"
	"github.com/kbukum/voxrelay/registry"
	"github.com/kbukum/voxrelay/server"
	"github.com/kbukum/voxrelay/transcription"
)

// Config is the relay configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Registry      registry.Config      `yaml:"registry" mapstructure:"registry"`
	Upstream      transcription.Config `yaml:"upstream" mapstructure:"upstream"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills unset fields in every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "voxrelay"
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Registry.ApplyDefaults()
	c.Upstream.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Registry.Validate(); err != nil {
		return err
	}
	if err := c.Upstream.Validate(); err != nil {
		return err
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	return nil
}
