package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/quake-data-api/internal/adapter/http"
	"github.com/couchcryptid/quake-data-api/internal/adapter/kandilli"
	"github.com/couchcryptid/quake-data-api/internal/config"
	"github.com/couchcryptid/quake-data-api/internal/observability"
	"github.com/couchcryptid/quake-data-api/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Page cache (disabled via KANDILLI_CACHE_TTL=0).
	client := kandilli.NewClient(cfg.KandilliURL, cfg.KandilliTimeout, metrics, logger)
	var fetcher pipeline.PageFetcher = client
	if cfg.KandilliCacheTTL > 0 {
		fetcher = kandilli.NewCachedClient(client, cfg.KandilliCacheTTL, nil, metrics)
		metrics.CacheEnabled.Set(1)
		logger.Info("page cache enabled", "ttl", cfg.KandilliCacheTTL)
	} else {
		logger.Info("page cache disabled")
	}

	p := pipeline.New(fetcher, logger, metrics)
	api := httpadapter.NewAPI(p, cfg.Alerts, cfg.SourceLocation, logger)
	srv := httpadapter.NewServer(cfg.HTTPAddr, api, p, metrics, logger)

	logger.Info("configuration loaded",
		"kandilli_url", cfg.KandilliURL,
		"kandilli_timeout", cfg.KandilliTimeout,
		"source_timezone", cfg.SourceLocation.String(),
		"critical_regions", len(cfg.Alerts.CriticalRegions),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Warm-up fetch, then keep the cache fresh so readiness tracks upstream.
	go func() {
		_ = p.Warm(ctx)
		if cfg.KandilliCacheTTL <= 0 {
			return
		}
		if err := p.Run(ctx, cfg.KandilliCacheTTL); err != nil {
			logger.Error("refresh loop error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
