package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/showbase/showbase/pkg/api"
	"github.com/showbase/showbase/pkg/auth"
	"github.com/showbase/showbase/pkg/config"
	"github.com/showbase/showbase/pkg/observability"
	"github.com/showbase/showbase/pkg/storage"
	"github.com/showbase/showbase/pkg/storage/postgres"
)

func main() {
	migrate := flag.Bool("migrate", false, "Run database migrations and exit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	// Optional Redis read cache
	var cache *postgres.Cache
	if cfg.Storage.RedisURL != "" {
		cache, err = postgres.NewCache(postgres.CacheConfig{
			URL: cfg.Storage.RedisURL,
			TTL: cfg.Storage.CacheTTL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to cache: %v", err)
		}
		logger.Info("Read cache enabled")
	}

	// Storage
	storeCfg := postgres.DefaultConfig()
	storeCfg.URL = cfg.Storage.PostgresURL
	storeCfg.MaxConns = cfg.Storage.PostgresMaxConns
	storeCfg.MinConns = cfg.Storage.PostgresMinConns
	storeCfg.Timeout = cfg.Storage.PostgresTimeout
	store, err := postgres.NewStore(storeCfg, cache)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *migrate {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := postgres.Migrate(ctx, store.DB()); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		logger.Info("Migrations applied")
		return
	}

	// Auth provider
	var provider auth.Provider
	switch cfg.Auth.Mode {
	case config.AuthModeOIDC:
		provider, err = auth.NewOIDCProvider(context.Background(), cfg.Auth.IssuerURL, cfg.Auth.ClientID)
		if err != nil {
			log.Fatalf("Failed to initialize OIDC provider: %v", err)
		}
	default:
		provider = auth.NewHTTPProvider(cfg.Auth.ProviderURL, cfg.Auth.APIKey, nil)
	}
	if cfg.Auth.CacheSize > 0 {
		provider = auth.NewCachingProvider(provider, cfg.Auth.CacheSize, cfg.Auth.CacheTTL)
	}
	resolver := auth.NewResolver(provider, logger)

	// Observability
	metrics := observability.NewMetrics(nil)
	statsCtx, stopStats := context.WithCancel(context.Background())
	metrics.StartDBStatsCollector(statsCtx, store.DB(), 15*time.Second)

	health := observability.NewHealthChecker(store.DB())
	if cache != nil {
		health = health.WithCache(cache)
	}

	server := api.NewServer(storage.NewInstrumentedStore(store, metrics.ObserveStorage), resolver, logger,
		api.WithMetrics(metrics),
		api.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
		api.WithCORSOrigins(cfg.Server.CORSOrigins),
	)

	apiSrv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/livez", health.Liveness)
	healthMux.HandleFunc("/readyz", health.Readiness)
	healthMux.Handle("/metrics", metrics.Handler())
	healthSrv := &http.Server{
		Addr:    cfg.Server.HealthAddr,
		Handler: healthMux,
	}

	shutdown := observability.NewShutdownManager(logger, cfg.Server.ShutdownTimeout)
	shutdown.Register("api server", apiSrv.Shutdown)
	shutdown.Register("health server", healthSrv.Shutdown)
	shutdown.Register("db stats collector", func(context.Context) error {
		stopStats()
		return nil
	})
	shutdown.Register("storage", func(context.Context) error {
		return store.Close()
	})
	if cache != nil {
		shutdown.Register("cache", func(context.Context) error {
			return cache.Close()
		})
	}

	// A failed listener cancels the group context, which unblocks the
	// shutdown waiter and tears the rest of the process down
	group, gctx := errgroup.WithContext(context.Background())
	group.Go(func() error {
		logger.WithField("addr", cfg.Server.Addr).Info("API server listening")
		if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		logger.WithField("addr", cfg.Server.HealthAddr).Info("Health server listening")
		if err := healthSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		shutdown.Wait(gctx)
		return nil
	})

	if err := group.Wait(); err != nil {
		logger.WithError(err).Fatal("Server exited with error")
	}
	logger.Info("Shutdown complete")
}
