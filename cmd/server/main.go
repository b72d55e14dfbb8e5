// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/reelfeed/internal/aggregator"
	"github.com/tomtom215/reelfeed/internal/api"
	"github.com/tomtom215/reelfeed/internal/cache"
	"github.com/tomtom215/reelfeed/internal/config"
	"github.com/tomtom215/reelfeed/internal/fixtures"
	"github.com/tomtom215/reelfeed/internal/letterboxd"
	"github.com/tomtom215/reelfeed/internal/logging"
	"github.com/tomtom215/reelfeed/internal/merger"
	"github.com/tomtom215/reelfeed/internal/metrics"
	"github.com/tomtom215/reelfeed/internal/supervisor"
	"github.com/tomtom215/reelfeed/internal/supervisor/services"
	"github.com/tomtom215/reelfeed/internal/tmdb"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	metrics.SetAppInfo(version)

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("username", cfg.Letterboxd.Username).
		Str("data_dir", cfg.Fixtures.DataDir).
		Bool("tmdb_configured", cfg.TMDB.HasCredentials()).
		Msg("Starting Reelfeed with supervisor tree")

	var store *cache.Cache
	if cfg.Cache.Enabled {
		store = cache.Open(cfg.Cache)
		defer func() {
			if err := store.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing cache")
			}
		}()
		logging.Info().Str("store", store.StoreName()).Msg("Cache initialized")
	} else {
		logging.Info().Msg("Cache disabled (CACHE_ENABLED=false)")
	}

	lbx, err := letterboxd.NewClient(cfg.Letterboxd)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create Letterboxd client")
	}

	tmdbOpts := []tmdb.Option{}
	mergerOpts := []merger.Option{}
	aggOpts := []aggregator.Option{}
	if store != nil {
		tmdbOpts = append(tmdbOpts, tmdb.WithCache(store))
		mergerOpts = append(mergerOpts, merger.WithCache(store))
		aggOpts = append(aggOpts, aggregator.WithCache(store))
	}

	// An unconfigured TMDB client is still wired: lookups fail with
	// NotConfigured and enhancement degrades to the primary records.
	tmdbClient := tmdb.NewClient(cfg.TMDB, tmdbOpts...)
	if !tmdbClient.Configured() {
		logging.Warn().Msg("TMDB credentials not set, enhancement and /api/tmdb routes are disabled")
	}
	enhancer := merger.New(tmdbClient, mergerOpts...)
	aggOpts = append(aggOpts,
		aggregator.WithEnhancer(enhancer),
		aggregator.WithPosterSource(tmdbClient),
	)

	svc := aggregator.New(
		cfg.Letterboxd.Username,
		lbx,
		fixtures.NewLoader(cfg.Fixtures.DataDir),
		aggOpts...,
	)

	handlerOpts := []api.HandlerOption{
		api.WithTMDB(tmdbClient),
		api.WithFallback(enhancer),
		api.WithVersion(version),
	}
	if store != nil {
		handlerOpts = append(handlerOpts, api.WithCache(store))
	}
	handler := api.NewHandler(svc, handlerOpts...)

	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security))
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bridges zerolog to slog for sutureslog
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Maintenance layer services
	if store != nil && cfg.Cache.SweepSchedule != "" {
		sweeper, err := services.NewCacheSweeperService(store, cfg.Cache.SweepSchedule)
		if err != nil {
			logging.Fatal().Err(err).Str("schedule", cfg.Cache.SweepSchedule).Msg("Invalid cache sweep schedule")
		}
		tree.AddMaintenanceService(sweeper)
		logging.Info().Str("schedule", cfg.Cache.SweepSchedule).Msg("Cache sweeper added to supervisor tree")
	}

	// API layer services
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
		err = <-errCh
	case err = <-errCh:
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
