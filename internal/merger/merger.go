// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

// Package merger enriches primary records with TMDB metadata and builds
// fallback records when the primary feed is unreachable.
package merger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelfeed/internal/apperrors"
	"github.com/tomtom215/reelfeed/internal/cache"
	"github.com/tomtom215/reelfeed/internal/logging"
	"github.com/tomtom215/reelfeed/internal/metrics"
	"github.com/tomtom215/reelfeed/internal/models"
	"github.com/tomtom215/reelfeed/internal/tmdb"
)

// MaxFallbackAttempts bounds FallbackToSecondary calls between resets.
const MaxFallbackAttempts = 3

// primaryCDN marks posters served by Letterboxd, which are already good
// enough to skip enhancement.
const primaryCDN = "ltrbxd.com"

// enhanceAppend is the append_to_response used for enrichment.
const enhanceAppend = "credits"

// EnhancementLevel describes how much secondary data was merged.
type EnhancementLevel string

const (
	LevelNone  EnhancementLevel = "none"
	LevelBasic EnhancementLevel = "basic"
	LevelFull  EnhancementLevel = "full"
)

// Source is the secondary metadata lookup. *tmdb.Client implements it.
type Source interface {
	FindMovie(ctx context.Context, title string, year *int) (*tmdb.SearchResult, error)
	Details(ctx context.Context, id int, appendToResponse string) (*tmdb.MovieDetails, error)
}

// Result is the outcome of an enhancement or fallback.
type Result struct {
	Record   models.MovieRecord `json:"record"`
	Enhanced bool               `json:"enhanced"`
	Level    EnhancementLevel   `json:"enhancementLevel"`
	Note     string             `json:"note,omitempty"`
}

// Stats reports the fallback budget.
type Stats struct {
	FallbackAttempts    int `json:"fallbackAttempts"`
	MaxFallbackAttempts int `json:"maxFallbackAttempts"`
}

// Merger combines primary and secondary records. The fallback counter is
// per instance and survives until Reset.
type Merger struct {
	source Source
	cache  *cache.Cache
	logger zerolog.Logger

	mu       sync.Mutex
	attempts int
}

// Option configures a Merger.
type Option func(*Merger)

// WithCache stores the TMDB side of enhancements under the enhanced_movie_ keys.
func WithCache(c *cache.Cache) Option {
	return func(m *Merger) { m.cache = c }
}

// New returns a merger backed by source.
func New(source Source, opts ...Option) *Merger {
	m := &Merger{
		source: source,
		logger: logging.WithComponent("merger"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Enhance merges TMDB data into rec. It never fails: when enhancement is
// skipped or impossible the original record comes back with a Note.
func (m *Merger) Enhance(ctx context.Context, rec models.MovieRecord, force bool) Result {
	original := Result{Record: rec.Clone(), Level: LevelNone}

	if !force && rec.PosterURL != nil && strings.Contains(*rec.PosterURL, primaryCDN) {
		metrics.EnhancementsTotal.WithLabelValues("skipped").Inc()
		original.Note = "primary poster is already high quality"
		return original
	}
	if strings.TrimSpace(rec.Title) == "" || rec.Year == nil {
		m.logger.Warn().Str("title", rec.Title).Msg("Cannot enhance record without title and year")
		metrics.EnhancementsTotal.WithLabelValues("skipped").Inc()
		original.Note = "missing title or year"
		return original
	}

	sec, ok := m.cachedSecondary(rec, force)
	if !ok {
		match, err := m.source.FindMovie(ctx, rec.Title, rec.Year)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				metrics.EnhancementsTotal.WithLabelValues("no_match").Inc()
				original.Note = "no TMDB match"
				return original
			}
			metrics.EnhancementsTotal.WithLabelValues("error").Inc()
			logging.Ctx(ctx).Warn().Err(err).Str("title", rec.Title).Msg("TMDB search failed during enhancement")
			original.Note = "TMDB lookup failed: " + apperrors.Kind(err)
			return original
		}

		sec = secondaryEntry{Record: match.Record(), Level: LevelBasic}
		if details, err := m.source.Details(ctx, match.ID, enhanceAppend); err == nil {
			sec = secondaryEntry{Record: details.Record(), Level: LevelFull}
		} else {
			logging.Ctx(ctx).Debug().Err(err).Int("tmdb_id", match.ID).Msg("TMDB details unavailable, using search result")
		}
		m.storeSecondary(rec, sec)
	}

	merged := Merge(rec, sec.Record)
	merged.OriginSource = models.OriginSecondaryEnriched
	metrics.EnhancementsTotal.WithLabelValues(string(sec.Level)).Inc()
	return Result{Record: merged, Enhanced: true, Level: sec.Level}
}

// secondaryEntry is what the enhanced_movie_ keys hold: TMDB data only.
// The caller's record is merged on top at read time.
type secondaryEntry struct {
	Record models.MovieRecord `json:"record"`
	Level  EnhancementLevel   `json:"level"`
}

func (m *Merger) cachedSecondary(rec models.MovieRecord, force bool) (secondaryEntry, bool) {
	var sec secondaryEntry
	if m.cache == nil || force {
		return sec, false
	}
	return sec, m.cache.Get(cache.EnhancedKey(rec.Title, rec.Year), &sec)
}

func (m *Merger) storeSecondary(rec models.MovieRecord, sec secondaryEntry) {
	if m.cache == nil {
		return
	}
	key := cache.EnhancedKey(rec.Title, rec.Year)
	if err := m.cache.Set(key, sec, cache.TTLTMDB); err != nil {
		m.logger.Warn().Err(err).Str("key", key).Msg("Failed to cache TMDB data for enhancement")
	}
}

// FallbackToSecondary builds a record for title from TMDB alone. After
// MaxFallbackAttempts calls it fails with ErrExhaustedFallback without
// touching the network.
func (m *Merger) FallbackToSecondary(ctx context.Context, title string, year *int) (Result, error) {
	m.mu.Lock()
	if m.attempts >= MaxFallbackAttempts {
		m.mu.Unlock()
		metrics.FallbackAttempts.WithLabelValues("exhausted").Inc()
		return Result{}, fmt.Errorf("fallback for %q after %d attempts: %w", title, MaxFallbackAttempts, apperrors.ErrExhaustedFallback)
	}
	m.attempts++
	attempt := m.attempts
	m.mu.Unlock()

	m.logger.Info().Str("title", title).Int("attempt", attempt).Msg("Falling back to TMDB")

	match, err := m.source.FindMovie(ctx, title, year)
	if err != nil {
		metrics.FallbackAttempts.WithLabelValues("failure").Inc()
		return Result{}, fmt.Errorf("fallback search for %q: %w", title, err)
	}

	rec := match.Record()
	level := LevelBasic
	if details, err := m.source.Details(ctx, match.ID, enhanceAppend); err == nil {
		rec = details.Record()
		level = LevelFull
	}

	rec.ID = "tmdb-fallback-" + strconv.Itoa(match.ID)
	rec.OriginSource = models.OriginSecondaryFallback
	rec.Source = models.SourceTMDBFallback
	rec.SourceURL = nil

	metrics.FallbackAttempts.WithLabelValues("success").Inc()
	return Result{Record: rec, Enhanced: true, Level: level}, nil
}

// Reset restores the full fallback budget.
func (m *Merger) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = 0
}

// Stats reports fallback usage.
func (m *Merger) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{FallbackAttempts: m.attempts, MaxFallbackAttempts: MaxFallbackAttempts}
}
