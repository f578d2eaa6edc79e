package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"taskboard/internal/adapter/cache"
	"taskboard/internal/adapter/database"
	"taskboard/internal/adapter/http/routes"
	"taskboard/internal/adapter/telemetry"
	"taskboard/internal/core/port"
	"taskboard/pkg/auth"
	"taskboard/pkg/config"
	"taskboard/pkg/middlewares"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Run starts the named service and blocks until ctx is cancelled or the
// server fails.
func Run(ctx context.Context, serviceName string) error {
	cfg, err := config.Load(serviceName)

	if err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg.ServiceName, cfg.LokiURL)

	if err != nil {
		return err
	}

	defer logger.Sync()

	tel, err := telemetry.NewContainer(ctx, telemetry.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.Telemetry.ServiceVersion,
		Environment:    cfg.Environment,
		MetricsPort:    cfg.Telemetry.MetricsPort,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		TracingEnabled: cfg.Telemetry.Enabled,
	}, logger.Zap())

	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Zap().Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	tel.AppMetrics.StartSystemMetrics(ctx)
	probe := tel.NewTelemetryProbe()

	repos, err := database.Open(ctx, cfg.Storage, database.Options{
		Probe:   probe,
		Logger:  logger.Zap(),
		Tracing: cfg.Telemetry.Enabled,
	})

	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	var responseCache port.CacheRepository

	if cfg.Cache.Enabled {
		if responseCache, err = cache.New(ctx, cfg.Cache); err != nil {
			repos.Close()
			return fmt.Errorf("open cache: %w", err)
		}
	}

	jwt := auth.NewJWT(cfg.JWTSecret)

	container := NewContainer(cfg.ServiceName, ContainerDeps{
		Repositories: repos,
		Cache:        responseCache,
		JWT:          jwt,
		Probe:        probe,
		Metrics:      tel.AppMetrics,
		Logger:       logger.Zap(),
	})
	defer container.Close()

	router := routes.SetupRouter(container.Handlers(), middlewares.Options{
		Config:  cfg,
		Metrics: tel.AppMetrics,
		Logger:  logger,
		Cache:   responseCache,
	}, jwt)

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	logger.Info(ctx, "Server starting",
		zap.String("address", srv.Addr),
		zap.String("environment", cfg.Environment),
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("rate_limit_enabled", cfg.RateLimitEnabled),
		zap.Bool("https_enforced", cfg.EnforceHTTPS))

	serverErr := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}

		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
