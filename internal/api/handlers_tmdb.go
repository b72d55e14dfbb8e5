// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package api

import (
	"net/http"

	"github.com/tomtom215/reelfeed/internal/tmdb"
)

// TMDBSearch handles GET /api/tmdb/search.
func (h *Handler) TMDBSearch(w http.ResponseWriter, r *http.Request) {
	if h.tmdb == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeNotConfigured, "TMDB integration is not enabled", nil)
		return
	}

	p := newQueryParser(r)
	req := SearchRequest{
		Query: p.str("query"),
		Year:  p.intParam("year", 0),
		Page:  p.intParam("page", 1),
	}
	if apiErr := validateRequest(p, &req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	page, err := h.tmdb.Search(r.Context(), tmdb.SearchParams{
		Query: req.Query,
		Year:  optionalYear(req.Year),
		Page:  req.Page,
	})
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	meta := Metadata{
		"query":        req.Query,
		"page":         page.Page,
		"totalPages":   page.TotalPages,
		"totalResults": page.TotalResults,
		"source":       "tmdb",
	}
	if req.Year != 0 {
		meta["year"] = req.Year
	}
	respondSuccess(w, r, page.Results, meta)
}

// TMDBMovieDetails handles GET /api/tmdb/movie-details.
func (h *Handler) TMDBMovieDetails(w http.ResponseWriter, r *http.Request) {
	if h.tmdb == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeNotConfigured, "TMDB integration is not enabled", nil)
		return
	}

	p := newQueryParser(r)
	req := DetailsRequest{
		ID:               p.intParam("id", 0),
		AppendToResponse: p.str("append_to_response"),
	}
	if apiErr := validateRequest(p, &req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	details, err := h.tmdb.Details(r.Context(), req.ID, req.AppendToResponse)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	appended := req.AppendToResponse
	if appended == "" {
		appended = tmdb.DefaultAppend
	}
	respondSuccess(w, r, details, Metadata{
		"tmdbId":           req.ID,
		"appendToResponse": appended,
		"source":           "tmdb",
	})
}
