// Command voxrelay accepts transcription requests and forwards them to the
// upstream speech service whose address is kept in the endpoint registry.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kbukum/voxrelay/api"
	"github.com/kbukum/voxrelay/bootstrap"
	"github.com/kbukum/voxrelay/config"
	"github.com/kbukum/voxrelay/endpoint"
	"github.com/kbukum/voxrelay/observability"
	"github.com/kbukum/voxrelay/registry"
	_ "github.com/kbukum/voxrelay/registry/mongo"
	_ "github.com/kbukum/voxrelay/registry/redis"
	_ "github.com/kbukum/voxrelay/registry/remote"
	_ "github.com/kbukum/voxrelay/registry/static"
	"github.com/kbukum/voxrelay/server"
	"github.com/kbukum/voxrelay/version"
	"github.com/kbukum/voxrelay/transcription"
)

func main() {
	configFile := flag.String("config", "", "path to config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().Short())
		return
	}

	if err := run(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, "voxrelay: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	var cfg Config
	opts := []config.LoaderOption{config.WithEnvAlias("MONGODB_URI", "registry.mongo.uri")}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if err := config.LoadConfig("voxrelay", &cfg, opts...); err != nil {
		return err
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().Short()
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return err
	}
	app.OnConfigure(wire)
	return app.Run(context.Background())
}

// wire builds the relay and registers its components in start order.
func wire(_ context.Context, app *bootstrap.App[*Config]) error {
	cfg := app.Cfg
	log := app.Logger

	svcInfo := observability.ServiceInfo{Name: app.Name, Version: app.Version, Environment: cfg.Environment}
	if err := app.RegisterComponent(observability.NewComponent(svcInfo, cfg.Observability, log)); err != nil {
		return err
	}
	metrics, err := observability.NewMetrics(observability.Meter(app.Name))
	if err != nil {
		return err
	}

	reg := registry.NewComponent(cfg.Registry, log)
	if err := app.RegisterComponent(reg); err != nil {
		return err
	}

	cache := endpoint.NewCache()
	refresher := endpoint.NewRefresher(cache, reg, endpoint.RefresherConfig{
		Interval:     cfg.Registry.RefreshInterval,
		FetchTimeout: cfg.Registry.FetchTimeout,
	}, log, metrics)
	if err := app.RegisterComponent(refresher); err != nil {
		return err
	}

	fwd, err := transcription.NewForwarder(cfg.Upstream, log, metrics)
	if err != nil {
		return err
	}
	svc := transcription.NewService(cache, fwd, log, metrics)

	srv := server.New(cfg.Server, log)
	srv.ApplyDefaults(app.Name, app.Components.HealthAll)
	api.NewRelayHandler(svc, app.Name).Register(srv.Engine())
	return app.RegisterComponent(server.NewComponent(srv))
}
