// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package api

import (
	"context"
	"time"

	"github.com/tomtom215/reelfeed/internal/aggregator"
	"github.com/tomtom215/reelfeed/internal/cache"
	"github.com/tomtom215/reelfeed/internal/merger"
	"github.com/tomtom215/reelfeed/internal/tmdb"
)

// MovieSearcher is the TMDB surface exposed by the API. *tmdb.Client
// implements it.
type MovieSearcher interface {
	Search(ctx context.Context, p tmdb.SearchParams) (*tmdb.SearchPage, error)
	Details(ctx context.Context, id int, appendToResponse string) (*tmdb.MovieDetails, error)
}

// Fallback resolves a movie the primary sources do not know. *merger.Merger
// implements it.
type Fallback interface {
	FallbackToSecondary(ctx context.Context, title string, year *int) (merger.Result, error)
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_letterboxd.go: diary, five-star, watchlist and lists routes
//   - handlers_tmdb.go: TMDB search and details proxies
//   - handlers_movies.go: combined data, dedupe, rotation, fallback, cache
//   - handlers_health.go: health and probes
type Handler struct {
	svc       *aggregator.Service
	tmdb      MovieSearcher
	fallback  Fallback
	cache     *cache.Cache
	version   string
	startTime time.Time
}

// HandlerOption configures optional Handler dependencies.
type HandlerOption func(*Handler)

// WithTMDB enables the /api/tmdb routes.
func WithTMDB(s MovieSearcher) HandlerOption {
	return func(h *Handler) { h.tmdb = s }
}

// WithFallback enables /api/movies/fallback.
func WithFallback(f Fallback) HandlerOption {
	return func(h *Handler) { h.fallback = f }
}

// WithCache exposes cache statistics on /api/cache/stats.
func WithCache(c *cache.Cache) HandlerOption {
	return func(h *Handler) { h.cache = c }
}

// WithVersion sets the version reported by /health.
func WithVersion(v string) HandlerOption {
	return func(h *Handler) { h.version = v }
}

// NewHandler creates the API handler around the aggregation service.
func NewHandler(svc *aggregator.Service, opts ...HandlerOption) *Handler {
	h := &Handler{
		svc:       svc,
		version:   "dev",
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
