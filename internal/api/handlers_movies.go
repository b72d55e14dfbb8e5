// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package api

import (
	"net/http"

	"github.com/tomtom215/reelfeed/internal/aggregator"
	"github.com/tomtom215/reelfeed/internal/logging"
)

// Movies handles GET /api/movies: all four branches in one response.
// cache=false bypasses cached reads; enhance=true merges TMDB data into the
// newest diary entries.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	defaults := aggregator.DefaultOptions()

	p := newQueryParser(r)
	req := MoviesRequest{
		Cache:   p.boolParam("cache", defaults.UseCache),
		Enhance: p.boolParam("enhance", defaults.EnhanceWithTMDB),
	}
	if apiErr := validateRequest(p, &req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	opts := defaults
	opts.UseCache = req.Cache
	opts.EnhanceWithTMDB = req.Enhance

	res := h.svc.GetAllMovieData(r.Context(), opts)

	succeeded := 0
	for _, ok := range []bool{res.Diary.Success, res.FiveStarMovies.Success, res.RandomMovie.Success, res.Lists.Success} {
		if ok {
			succeeded++
		}
	}
	respondSuccess(w, r, res, Metadata{
		"fetchedAt":         res.FetchedAt,
		"fromCache":         res.FromCache,
		"enhanced":          req.Enhance,
		"cacheUsed":         req.Cache,
		"branchesSucceeded": succeeded,
		"branchesTotal":     4,
	})
}

// MoviesDedupe handles GET /api/movies/dedupe: the full diary with
// rewatches collapsed onto their latest viewing.
func (h *Handler) MoviesDedupe(w http.ResponseWriter, r *http.Request) {
	p := newQueryParser(r)
	req := UsernameRequest{Username: p.str("username")}
	if apiErr := validateRequest(p, &req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	res, err := h.svc.DedupedDiary(r.Context(), req.Username, true)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, r, res.Entries, Metadata{
		"totalEntries":     res.Stats.TotalEntries,
		"uniqueMovies":     res.Stats.UniqueMovies,
		"duplicateEntries": res.Stats.DuplicateEntries,
		"duplicateMovies":  res.Stats.DuplicateMovies,
	})
}

// MoviesRotation handles GET /api/movies/rotation: the five-star movie at
// a position of the shuffled rotation.
func (h *Handler) MoviesRotation(w http.ResponseWriter, r *http.Request) {
	p := newQueryParser(r)
	req := RotationRequest{Index: p.intParam("index", 0)}
	if apiErr := validateRequest(p, &req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	res, err := h.svc.Rotation(r.Context(), req.Index)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, r, res.Movie, Metadata{
		"index":    res.Index,
		"position": res.Position,
		"total":    res.Total,
	})
}

// MoviesFallback handles GET /api/movies/fallback: a TMDB-only record for
// a title the primary sources lack. Calls draw on a bounded budget that
// only a reset restores.
func (h *Handler) MoviesFallback(w http.ResponseWriter, r *http.Request) {
	if h.fallback == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeNotConfigured, "TMDB integration is not enabled", nil)
		return
	}

	p := newQueryParser(r)
	req := FallbackRequest{
		Title: p.str("title"),
		Year:  p.intParam("year", 0),
	}
	if apiErr := validateRequest(p, &req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	res, err := h.fallback.FallbackToSecondary(r.Context(), req.Title, optionalYear(req.Year))
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, r, res.Record, Metadata{
		"enhancementLevel": res.Level,
		"source":           res.Record.Source,
	})
}

// CacheStats handles GET /api/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeNotConfigured, "Cache is disabled", nil)
		return
	}
	respondSuccess(w, r, h.cache.Stats(), nil)
}

// CacheReset handles POST /api/cache/reset: clears the cache, the fallback
// budget and the rotation order.
func (h *Handler) CacheReset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(); err != nil {
		respondAppError(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Info().Msg("Service state reset")
	respondSuccess(w, r, map[string]bool{"reset": true}, nil)
}
