// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/reelfeed/internal/middleware"
)

// Browser cache lifetimes per route group.
const (
	feedMaxAge = 5 * time.Minute
	tmdbMaxAge = time.Hour
)

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil mw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)        // X-Request-ID and logging context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(AccessLog())                 // One log line per request
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)
	r.Use(APISecurityHeaders())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed", nil)
	})

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Letterboxd Endpoints
	// ========================
	r.Route("/api/letterboxd", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(CacheControl(feedMaxAge))
		r.Get("/diary", router.handler.Diary)
		r.Get("/five-star-movies", router.handler.FiveStarMovies)
		r.With(router.chiMiddleware.RateLimitUpstream()).Get("/watchlist", router.handler.Watchlist)
		r.Get("/watchlist-random", router.handler.WatchlistRandom)
		r.Get("/lists", router.handler.Lists)
	})

	// ========================
	// TMDB Proxy Endpoints
	// ========================
	r.Route("/api/tmdb", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitUpstream())
		r.Use(CacheControl(tmdbMaxAge))
		r.Get("/search", router.handler.TMDBSearch)
		r.Get("/movie-details", router.handler.TMDBMovieDetails)
	})

	// ========================
	// Aggregated Endpoints
	// ========================
	r.Route("/api/movies", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Get("/", router.handler.Movies)
		r.Get("/dedupe", router.handler.MoviesDedupe)
		r.Get("/rotation", router.handler.MoviesRotation)
		r.With(router.chiMiddleware.RateLimitUpstream()).Get("/fallback", router.handler.MoviesFallback)
	})

	r.Route("/api/cache", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Get("/stats", router.handler.CacheStats)
		r.With(router.chiMiddleware.RateLimitAdmin()).Post("/reset", router.handler.CacheReset)
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
