package transcription

import (
	"fmt"
	"time"
)

// Config controls calls to the upstream transcription service.
type Config struct {
	// Timeout bounds each upstream attempt.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// MaxResponseBytes caps how much of an upstream reply is read.
	MaxResponseBytes int64 `yaml:"max_response_bytes" mapstructure:"max_response_bytes"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 120 * time.Second
	}
	if c.MaxResponseBytes == 0 {
		c.MaxResponseBytes = 16 << 20
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("upstream.timeout must be positive (got: %s)", c.Timeout)
	}
	if c.MaxResponseBytes < 0 {
		return fmt.Errorf("upstream.max_response_bytes must be non-negative")
	}
	return nil
}
