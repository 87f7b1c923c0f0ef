// Command registryd serves the endpoint registry: a single upstream address
// that tunnel hosts publish and relays read.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kbukum/voxrelay/api"
	"github.com/kbukum/voxrelay/bootstrap"
	"github.com/kbukum/voxrelay/config"
	"github.com/kbukum/voxrelay/registry"
	_ "github.com/kbukum/voxrelay/registry/mongo"
	_ "github.com/kbukum/voxrelay/registry/redis"
	_ "github.com/kbukum/voxrelay/registry/static"
	"github.com/kbukum/voxrelay/server"
	"github.com/kbukum/voxrelay/version"
)

// Config is the registry service configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server   server.Config   `yaml:"server" mapstructure:"server"`
	Registry registry.Config `yaml:"registry" mapstructure:"registry"`
}

func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "registryd"
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Registry.ApplyDefaults()
}

func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if c.Registry.Provider == registry.ProviderRemote {
		return fmt.Errorf("registry.provider: %q cannot back the registry service itself", registry.ProviderRemote)
	}
	return c.Registry.Validate()
}

func main() {
	configFile := flag.String("config", "", "path to config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().Short())
		return
	}

	var cfg Config
	opts := []config.LoaderOption{config.WithEnvAlias("MONGODB_URI", "registry.mongo.uri")}
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if err := config.LoadConfig("registryd", &cfg, opts...); err != nil {
		fmt.Fprintf(os.Stderr, "registryd: %v\n", err)
		os.Exit(1)
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().Short()
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "registryd: %v\n", err)
		os.Exit(1)
	}
	app.OnConfigure(func(_ context.Context, app *bootstrap.App[*Config]) error {
		store := registry.NewComponent(app.Cfg.Registry, app.Logger)
		if err := app.RegisterComponent(store); err != nil {
			return err
		}
		srv := server.New(app.Cfg.Server, app.Logger)
		srv.ApplyDefaults(app.Name, app.Components.HealthAll)
		api.NewRegistryHandler(store, app.Logger).Register(srv.Engine())
		return app.RegisterComponent(server.NewComponent(srv))
	})
	if err := app.Run(context.Background()); err != nil {
		app.Logger.Error("registryd exited", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}
