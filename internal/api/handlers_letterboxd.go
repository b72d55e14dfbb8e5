// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package api

import (
	"net/http"
	"time"
)

// Diary handles GET /api/letterboxd/diary.
func (h *Handler) Diary(w http.ResponseWriter, r *http.Request) {
	p := newQueryParser(r)
	req := DiaryRequest{
		Username: p.str("username"),
		Limit:    p.intParam("limit", DefaultDiaryLimit),
	}
	if apiErr := validateRequest(p, &req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	res, err := h.svc.Diary(r.Context(), req.Username, req.Limit, true)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, r, res.Entries, Metadata{
		"username":        res.Username,
		"totalEntries":    res.Total,
		"returnedEntries": len(res.Entries),
		"limit":           req.Limit,
		"fetchedAt":       time.Now().UTC(),
		"source":          "letterboxd-rss",
		"feed":            res.Feed,
		"fromCache":       res.FromCache,
	})
}

// FiveStarMovies handles GET /api/letterboxd/five-star-movies.
func (h *Handler) FiveStarMovies(w http.ResponseWriter, r *http.Request) {
	p := newQueryParser(r)
	req := LimitRequest{Limit: p.intParam("limit", DefaultFiveStarLimit)}
	if apiErr := validateRequest(p, &req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	res, err := h.svc.FiveStar(r.Context(), req.Limit, true)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, r, res.Movies, Metadata{
		"totalMovies":    res.Total,
		"returnedMovies": len(res.Movies),
		"limit":          req.Limit,
		"ordered":        true,
		"order":          "custom-preference",
		"fromCache":      res.FromCache,
	})
}

// Watchlist handles GET /api/letterboxd/watchlist.
func (h *Handler) Watchlist(w http.ResponseWriter, r *http.Request) {
	p := newQueryParser(r)
	req := WatchlistRequest{
		Limit:  p.intParam("limit", DefaultWatchlistLimit),
		Random: p.boolParam("random", false),
	}
	if apiErr := validateRequest(p, &req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	res, err := h.svc.Watchlist(r.Context(), req.Limit, req.Random)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, r, res.Movies, Metadata{
		"totalMovies":    res.Total,
		"returnedMovies": len(res.Movies),
		"limit":          req.Limit,
		"random":         req.Random,
		"fromCache":      res.FromCache,
	})
}

// WatchlistRandom handles GET /api/letterboxd/watchlist-random.
func (h *Handler) WatchlistRandom(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.RandomWatchlist(r.Context(), true)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, r, res.Movie, Metadata{
		"totalMoviesInWatchlist": res.Total,
		"selectedIndex":          res.Index,
		"fromCache":              res.FromCache,
	})
}

// Lists handles GET /api/letterboxd/lists.
func (h *Handler) Lists(w http.ResponseWriter, r *http.Request) {
	p := newQueryParser(r)
	req := ListsRequest{
		Limit:    p.intParam("limit", DefaultListsLimit),
		Featured: p.boolParam("featured", false),
	}
	if apiErr := validateRequest(p, &req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	res, err := h.svc.Lists(r.Context(), req.Featured, req.Limit, true)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondSuccess(w, r, res.Lists, Metadata{
		"totalLists":    res.Total,
		"returnedLists": len(res.Lists),
		"limit":         req.Limit,
		"featured":      req.Featured,
		"fromCache":     res.FromCache,
	})
}
