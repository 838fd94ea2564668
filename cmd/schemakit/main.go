package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/schemakit"
	"github.com/dmitrymomot/schemakit/pkg/config"
	"github.com/dmitrymomot/schemakit/pkg/httpapi"
	"github.com/dmitrymomot/schemakit/pkg/httpserver"
	"github.com/dmitrymomot/schemakit/pkg/logger"
	"github.com/dmitrymomot/schemakit/pkg/messages"
	"github.com/dmitrymomot/schemakit/pkg/metrics"
	"github.com/dmitrymomot/schemakit/pkg/redis"
	"github.com/dmitrymomot/schemakit/pkg/registry"
)

var (
	buildVersion = "dev"
	buildCommit  = "none"
)

// ServiceConfig is the environment of the schemakit service.
type ServiceConfig struct {
	Env         string `env:"APP_ENV" envDefault:"development" validate:"oneof=development staging production"`
	LogLevel    string `env:"LOG_LEVEL"`
	SchemaDir   string `env:"SCHEMAKIT_SCHEMA_DIR" envDefault:"./schemas"`
	MessagesDir string `env:"SCHEMAKIT_MESSAGES_DIR"`
	Watch       bool   `env:"SCHEMAKIT_WATCH" envDefault:"true"`
	MaxBodySize int64  `env:"SCHEMAKIT_MAX_BODY_SIZE" envDefault:"1048576" validate:"gt=0"`

	Engine schemakit.Config
	HTTP   httpserver.Config
	Redis  redis.Config
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg ServiceConfig
	if err := config.Load(&cfg); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(cfg.Env, "schemakit"),
		logger.WithAttr(slog.String("version", buildVersion), slog.String("commit", buildCommit)),
		logger.WithContextExtractors(httpapi.RequestIDExtractor()),
	}
	if cfg.LogLevel != "" {
		logOpts = append(logOpts, logger.WithLevelName(cfg.LogLevel))
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := messages.Default()
	if cfg.MessagesDir != "" {
		catalog = catalog.Clone()
		if err := catalog.LoadFS(os.DirFS(cfg.MessagesDir), "."); err != nil {
			return fmt.Errorf("load messages: %w", err)
		}
	}

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewWithRegistry(promReg)

	v := schemakit.New(
		schemakit.WithConfig(cfg.Engine),
		schemakit.WithLogger(log),
		schemakit.WithCatalog(catalog),
		schemakit.WithObserver(collector),
	)

	regOpts := []registry.Option{
		registry.WithValidator(v),
		registry.WithLogger(log),
		registry.WithReloadHook(collector.ObserveReload),
	}
	var (
		store  registry.Store
		checks []func(context.Context) error
	)
	if cfg.Redis.ConnectionURL != "" {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()

		store = registry.NewRedisStore(redis.NewStorageWithConfig(client, cfg.Redis))
		regOpts = append(regOpts, registry.WithStore(store))
		checks = append(checks, redis.Healthcheck(client))
	}
	reg := registry.New(regOpts...)

	watch := cfg.Watch
	if _, err := reg.LoadFS(ctx, os.DirFS(cfg.SchemaDir), "."); err != nil {
		// Broken files are skipped; a missing directory disables watching.
		log.WarnContext(ctx, "schema directory loaded with errors", logger.Error(err))
		if errors.Is(err, os.ErrNotExist) {
			watch = false
		}
	}
	if store != nil {
		if _, err := reg.Sync(ctx, store); err != nil {
			log.WarnContext(ctx, "schema store synced with errors", logger.Error(err))
		}
	}

	api := httpapi.New(reg,
		httpapi.WithLogger(log),
		httpapi.WithMetrics(promReg),
		httpapi.WithMaxBodySize(cfg.MaxBodySize),
		httpapi.WithReadinessChecks(checks...),
	)
	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx, api.Handler())
	})
	if watch {
		g.Go(func() error {
			return reg.Watch(ctx, cfg.SchemaDir)
		})
	}

	log.InfoContext(ctx, "schemakit started",
		slog.Int("schemas", reg.Len()),
		slog.Bool("watch", watch),
		slog.Bool("redis", store != nil))
	return g.Wait()
}
