package registry

import (
	"fmt"
	"time"

	"github.com/kbukum/voxrelay/resilience"
)

// Provider names.
const (
	ProviderMongo  = "mongo"
	ProviderRedis  = "redis"
	ProviderRemote = "remote"
	ProviderStatic = "static"
)

// Config selects and configures the registry backend.
type Config struct {
	Provider string `yaml:"provider" mapstructure:"provider"`

	// RefreshInterval is how often the relay re-reads the registry.
	RefreshInterval time.Duration `yaml:"refresh_interval" mapstructure:"refresh_interval"`
	// FetchTimeout bounds a single registry read.
	FetchTimeout time.Duration `yaml:"fetch_timeout" mapstructure:"fetch_timeout"`
	// Connect governs the initial connection attempts on Start.
	Connect resilience.RetryConfig `yaml:"connect" mapstructure:"connect"`

	Mongo  MongoConfig  `yaml:"mongo" mapstructure:"mongo"`
	Redis  RedisConfig  `yaml:"redis" mapstructure:"redis"`
	Remote RemoteConfig `yaml:"remote" mapstructure:"remote"`
	Static StaticConfig `yaml:"static" mapstructure:"static"`
}

// MongoConfig locates the document holding the endpoint.
type MongoConfig struct {
	URI                    string        `yaml:"uri" mapstructure:"uri"`
	Database               string        `yaml:"database" mapstructure:"database"`
	Collection             string        `yaml:"collection" mapstructure:"collection"`
	Field                  string        `yaml:"field" mapstructure:"field"`
	ServerSelectionTimeout time.Duration `yaml:"server_selection_timeout" mapstructure:"server_selection_timeout"`
}

// RedisConfig locates the key holding the endpoint.
type RedisConfig struct {
	Addr         string        `yaml:"addr" mapstructure:"addr"`
	Password     string        `yaml:"password" mapstructure:"password"`
	DB           int           `yaml:"db" mapstructure:"db"`
	Key          string        `yaml:"key" mapstructure:"key"`
	PoolSize     int           `yaml:"pool_size" mapstructure:"pool_size"`
	DialTimeout  time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
}

// RemoteConfig points at a registry HTTP API.
type RemoteConfig struct {
	URL     string        `yaml:"url" mapstructure:"url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// StaticConfig holds a fixed endpoint, mostly for development.
type StaticConfig struct {
	URL string `yaml:"url" mapstructure:"url"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderMongo
	}
	if c.RefreshInterval == 0 {
		c.RefreshInterval = 60 * time.Second
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = 5 * time.Second
	}

	c.Connect.ApplyDefaults()

	if c.Mongo.Database == "" {
		c.Mongo.Database = "my_database"
	}
	if c.Mongo.Collection == "" {
		c.Mongo.Collection = "ngrok_tunnels"
	}
	if c.Mongo.Field == "" {
		c.Mongo.Field = "ngrok_url"
	}
	if c.Mongo.ServerSelectionTimeout == 0 {
		c.Mongo.ServerSelectionTimeout = 5 * time.Second
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.Key == "" {
		c.Redis.Key = "voxrelay:upstream_url"
	}
	if c.Redis.PoolSize <= 0 {
		c.Redis.PoolSize = 4
	}
	if c.Redis.DialTimeout == 0 {
		c.Redis.DialTimeout = 5 * time.Second
	}
	if c.Redis.ReadTimeout == 0 {
		c.Redis.ReadTimeout = 3 * time.Second
	}
	if c.Redis.WriteTimeout == 0 {
		c.Redis.WriteTimeout = 3 * time.Second
	}

	if c.Remote.Timeout == 0 {
		c.Remote.Timeout = 10 * time.Second
	}
}

// Validate checks the section for the selected provider.
func (c *Config) Validate() error {
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("registry.refresh_interval must be positive (got: %s)", c.RefreshInterval)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("registry.fetch_timeout must be positive (got: %s)", c.FetchTimeout)
	}
	switch c.Provider {
	case ProviderMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("registry.mongo.uri is required (or set MONGODB_URI)")
		}
	case ProviderRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("registry.redis.addr is required")
		}
	case ProviderRemote:
		if c.Remote.URL == "" {
			return fmt.Errorf("registry.remote.url is required")
		}
	case ProviderStatic:
	default:
		return fmt.Errorf("registry.provider must be one of mongo, redis, remote, static (got: %q)", c.Provider)
	}
	return nil
}
