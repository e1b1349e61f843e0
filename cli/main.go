package main

import (
	"context"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/mwantia/depot"
	"github.com/mwantia/depot/cmd"
	"github.com/mwantia/depot/cmd/builtin"
	"github.com/mwantia/depot/loader"
	"github.com/mwantia/depot/log"
	"github.com/mwantia/depot/stores"
)

// Config is read from the environment so depotctl can run unmodified in
// shells, cron jobs and containers.
type Config struct {
	Backend  string `env:"DEPOT_BACKEND" envDefault:"memory"`
	LogLevel string `env:"DEPOT_LOG_LEVEL" envDefault:"warn"`
	LogFile  string `env:"DEPOT_LOG_FILE"`

	SQLitePath string `env:"DEPOT_SQLITE_PATH" envDefault:"depot.db"`

	ConsulAddress string `env:"DEPOT_CONSUL_ADDRESS"`
	ConsulToken   string `env:"DEPOT_CONSUL_TOKEN"`
	ConsulPrefix  string `env:"DEPOT_CONSUL_PREFIX"`

	PostgresURI string `env:"DEPOT_POSTGRES_URI"`

	S3Endpoint  string `env:"DEPOT_S3_ENDPOINT"`
	S3AccessKey string `env:"DEPOT_S3_ACCESS_KEY"`
	S3SecretKey string `env:"DEPOT_S3_SECRET_KEY"`
	S3UseSSL    bool   `env:"DEPOT_S3_USE_SSL" envDefault:"true"`
}

// api adapts a depot and a loader queue to the command surface.
type api struct {
	depot *depot.Depot
	queue *loader.Queue
}

func (a *api) Store(namespace string) depot.Store {
	return a.depot.Store(namespace)
}

func (a *api) Loader() *loader.Queue {
	return a.queue
}

func newBackend(cfg Config) (depot.Backend, error) {
	switch cfg.Backend {
	case "memory":
		return stores.NewMemory(), nil
	case "sqlite":
		return stores.NewSQLite(cfg.SQLitePath)
	case "consul":
		return stores.NewConsul(&stores.ConsulStoreConfig{
			Address: cfg.ConsulAddress,
			Token:   cfg.ConsulToken,
			Prefix:  cfg.ConsulPrefix,
		})
	case "postgres":
		return stores.NewPostgres(cfg.PostgresURI)
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}

func run() (int, error) {
	ctx := context.Background()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return 1, fmt.Errorf("parse env: %w", err)
	}

	backend, err := newBackend(cfg)
	if err != nil {
		return 1, err
	}

	opts := []depot.DepotOption{
		depot.WithLogLevel(log.Parse(cfg.LogLevel)),
	}
	if cfg.LogFile != "" {
		opts = append(opts, depot.WithLogFile(cfg.LogFile))
	}

	d, err := depot.New(backend, opts...)
	if err != nil {
		return 1, err
	}

	if err := d.Open(ctx); err != nil {
		return 1, err
	}
	defer d.Close(ctx)

	queueOpts := []loader.QueueOption{
		loader.WithLogger(d.Logger().Named("loader")),
	}
	if cfg.S3Endpoint != "" {
		s3, err := loader.NewS3Fetcher(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3UseSSL)
		if err != nil {
			return 1, err
		}
		queueOpts = append(queueOpts, loader.WithFetcher("s3", s3))
	}

	manager := cmd.NewManager(&api{
		depot: d,
		queue: loader.NewQueue(queueOpts...),
	})
	if err := builtin.InitBuiltin(manager); err != nil {
		return 1, err
	}

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: depotctl <command> [args]")
		fmt.Fprintln(os.Stderr, "commands:")
		for _, c := range manager.List() {
			fmt.Fprintf(os.Stderr, "  %-8s %s\n", c.Name(), c.Description())
		}
		return 1, nil
	}

	return manager.Execute(ctx, os.Stdout, os.Args[1:]...)
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "depotctl: %v\n", err)
	}

	os.Exit(code)
}
