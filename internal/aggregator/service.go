// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package aggregator

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelfeed/internal/cache"
	"github.com/tomtom215/reelfeed/internal/letterboxd"
	"github.com/tomtom215/reelfeed/internal/logging"
	"github.com/tomtom215/reelfeed/internal/merger"
	"github.com/tomtom215/reelfeed/internal/models"
	"github.com/tomtom215/reelfeed/internal/tmdb"
)

// DiarySource fetches a user's diary feed. *letterboxd.Client implements it.
type DiarySource interface {
	Diary(ctx context.Context, user string) (*letterboxd.Diary, error)
}

// FixtureSource reads the curated local files. *fixtures.Loader implements it.
type FixtureSource interface {
	FiveStar() ([]models.MovieRecord, error)
	Watchlist() ([]models.MovieRecord, error)
	Lists(featured bool) ([]models.ListSummary, error)
}

// Enhancer merges secondary metadata into records. *merger.Merger
// implements it.
type Enhancer interface {
	Enhance(ctx context.Context, rec models.MovieRecord, force bool) merger.Result
	Reset()
	Stats() merger.Stats
}

// PosterSource finds TMDB matches for watchlist posters. *tmdb.Client
// implements it.
type PosterSource interface {
	Configured() bool
	FindMovie(ctx context.Context, title string, year *int) (*tmdb.SearchResult, error)
}

// breakerReporter is implemented by clients guarded by a circuit breaker.
type breakerReporter interface {
	BreakerState() string
}

// Service is the aggregation facade. It owns the cache handle, the
// enhancer and the shuffled rotation order; Reset clears all three.
type Service struct {
	username string
	diary    DiarySource
	fixtures FixtureSource
	enhancer Enhancer
	posters  PosterSource
	cache    *cache.Cache
	intN     func(n int) int
	now      func() time.Time
	logger   zerolog.Logger

	shuffleMu sync.Mutex
	shuffle   []int
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables read-through and write-through caching.
func WithCache(c *cache.Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithEnhancer enables TMDB enhancement of diary entries.
func WithEnhancer(e Enhancer) Option {
	return func(s *Service) { s.enhancer = e }
}

// WithPosterSource enables TMDB poster lookups for the watchlist.
func WithPosterSource(p PosterSource) Option {
	return func(s *Service) { s.posters = p }
}

// WithRandom replaces the random index source. intN must return a value in
// [0, n).
func WithRandom(intN func(n int) int) Option {
	return func(s *Service) { s.intN = intN }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns a facade over the given sources. username is the default
// diary owner.
func New(username string, diary DiarySource, fixtures FixtureSource, opts ...Option) *Service {
	s := &Service{
		username: username,
		diary:    diary,
		fixtures: fixtures,
		intN:     rand.IntN,
		now:      time.Now,
		logger:   logging.WithComponent("aggregator"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Username returns the default diary owner.
func (s *Service) Username() string {
	return s.username
}

// Reset clears the cache, restores the fallback budget and forgets the
// rotation order.
func (s *Service) Reset() error {
	var err error
	if s.cache != nil {
		err = s.cache.ClearAll()
	}
	if s.enhancer != nil {
		s.enhancer.Reset()
	}
	s.shuffleMu.Lock()
	s.shuffle = nil
	s.shuffleMu.Unlock()

	s.logger.Info().Msg("Aggregator state reset")
	return err
}

// Health is a snapshot of the facade's dependencies.
type Health struct {
	Status          string            `json:"status"`
	RandomPick      bool              `json:"randomPick"`
	RandomPickError string            `json:"randomPickError,omitempty"`
	Cache           *cache.Stats      `json:"cache,omitempty"`
	Merger          *merger.Stats     `json:"merger,omitempty"`
	Upstreams       map[string]string `json:"upstreams"`
	CheckedAt       time.Time         `json:"checkedAt"`
}

// Health probes the random-pick branch and reports cache, merger and
// circuit breaker state. Status is "healthy" when the probe succeeds and
// "degraded" otherwise.
func (s *Service) Health(ctx context.Context) Health {
	h := Health{Status: "healthy", RandomPick: true, Upstreams: map[string]string{}, CheckedAt: s.now().UTC()}

	if _, err := s.RandomWatchlist(ctx, true); err != nil {
		h.Status = "degraded"
		h.RandomPick = false
		h.RandomPickError = err.Error()
	}
	if s.cache != nil {
		st := s.cache.Stats()
		h.Cache = &st
	}
	if s.enhancer != nil {
		st := s.enhancer.Stats()
		h.Merger = &st
	}
	if b, ok := s.diary.(breakerReporter); ok {
		h.Upstreams["letterboxd"] = b.BreakerState()
	}
	if b, ok := s.posters.(breakerReporter); ok {
		h.Upstreams["tmdb"] = b.BreakerState()
	}
	return h
}

// cached serves key from the cache when useCache is set, otherwise loads
// and writes the result through. Load errors are never cached.
func cached[T any](s *Service, useCache bool, key string, load func() (T, error)) (T, bool, error) {
	var out T
	if useCache && s.cache != nil && s.cache.Get(key, &out) {
		return out, true, nil
	}
	out, err := load()
	if err != nil {
		return out, false, err
	}
	if s.cache != nil {
		if err := s.cache.Set(key, out, cache.TTLFor(key)); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("Failed to cache result")
		}
	}
	return out, false, nil
}
