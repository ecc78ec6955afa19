package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/storefrontlabs/widget/api/routes"
	"github.com/storefrontlabs/widget/internal/catalog"
	"github.com/storefrontlabs/widget/internal/storefront"
	"github.com/storefrontlabs/widget/pkg/config"
	"github.com/storefrontlabs/widget/pkg/db"
	"github.com/storefrontlabs/widget/pkg/logger"
	"github.com/storefrontlabs/widget/pkg/metrics"
	"github.com/storefrontlabs/widget/pkg/redis"
	"github.com/storefrontlabs/widget/pkg/storage"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	source, err := newCatalogSource(cfg)
	if err != nil {
		logg.Error(context.Background(), "failed to build catalog source", err)
		os.Exit(1)
	}

	store, cleanup, err := newCartStorage(context.Background(), cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap cart storage", err)
		os.Exit(1)
	}
	defer cleanup()

	registry := prometheus.NewRegistry()
	cartMetrics := metrics.NewCartMetrics(registry)

	widget, err := storefront.NewWidget(storefront.Params{
		Source:     source,
		Storage:    store,
		StorageKey: cfg.Cart.StorageKey,
		Logger:     logg,
		Metrics:    cartMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create widget", err)
		os.Exit(1)
	}

	if err := widget.Init(context.Background(), cfg.Catalog.InitialProductID); err != nil {
		logg.Error(context.Background(), "failed to initialize widget", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Cart.Backend(),
		"session": widget.SessionID(),
	})
	logg.Info(ctx, "starting storefront server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.New(routes.Params{
			Config:   cfg,
			Logger:   logg,
			Widget:   widget,
			Registry: registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func newCatalogSource(cfg *config.Config) (catalog.Source, error) {
	if cfg.Catalog.URL != "" {
		return catalog.NewHTTPSource(cfg.Catalog.URL, cfg.Catalog.HTTPTimeout)
	}
	return catalog.NewFileSource(cfg.Catalog.FilePath)
}

// newCartStorage builds the configured cart store. The cleanup closes any
// client the store was built on top of.
func newCartStorage(ctx context.Context, cfg *config.Config, logg *logger.Logger) (storage.Store, func(), error) {
	noop := func() {}

	switch cfg.Cart.Backend() {
	case config.StorageBackendMemory:
		return storage.NewMemoryStore(), noop, nil

	case config.StorageBackendFile:
		store, err := storage.NewFileStore(cfg.Cart.FileDir)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil

	case config.StorageBackendSQLite:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, noop, err
		}
		store, err := storage.NewSQLiteStore(client)
		if err != nil {
			client.Close()
			return nil, noop, err
		}
		return store, func() {
			if err := client.Close(); err != nil {
				logg.Error(ctx, "error closing database", err)
			}
		}, nil

	case config.StorageBackendRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, noop, err
		}
		store, err := storage.NewRedisStore(client)
		if err != nil {
			client.Close()
			return nil, noop, err
		}
		return store, func() {
			if err := client.Close(); err != nil {
				logg.Error(ctx, "error closing redis", err)
			}
		}, nil
	}

	return nil, noop, fmt.Errorf("unknown cart storage backend %q", cfg.Cart.StorageBackend)
}
