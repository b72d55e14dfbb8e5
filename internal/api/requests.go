// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/reelfeed/internal/validation"
)

// Route defaults for omitted limit parameters.
const (
	DefaultDiaryLimit     = 5
	DefaultFiveStarLimit  = 12
	DefaultWatchlistLimit = 8
	DefaultListsLimit     = 6
	MaxLimit              = 100
)

// DiaryRequest holds the query parameters of /api/letterboxd/diary.
type DiaryRequest struct {
	Username string `query:"username" validate:"omitempty,max=64,excludesall=/?#&%"`
	Limit    int    `query:"limit" validate:"min=1,max=100"`
}

// UsernameRequest holds the optional username of /api/movies/dedupe.
type UsernameRequest struct {
	Username string `query:"username" validate:"omitempty,max=64,excludesall=/?#&%"`
}

// LimitRequest holds the limit of the curated list routes.
type LimitRequest struct {
	Limit int `query:"limit" validate:"min=1,max=100"`
}

// WatchlistRequest holds the query parameters of /api/letterboxd/watchlist.
type WatchlistRequest struct {
	Limit  int  `query:"limit" validate:"min=1,max=100"`
	Random bool `query:"random"`
}

// ListsRequest holds the query parameters of /api/letterboxd/lists.
type ListsRequest struct {
	Limit    int  `query:"limit" validate:"min=1,max=100"`
	Featured bool `query:"featured"`
}

// SearchRequest holds the query parameters of /api/tmdb/search.
type SearchRequest struct {
	Query string `query:"query" validate:"required,max=200"`
	Year  int    `query:"year" validate:"omitempty,filmyear"`
	Page  int    `query:"page" validate:"min=1,max=500"`
}

// DetailsRequest holds the query parameters of /api/tmdb/movie-details.
type DetailsRequest struct {
	ID               int    `query:"id" validate:"required,min=1"`
	AppendToResponse string `query:"append_to_response" validate:"omitempty,max=100"`
}

// MoviesRequest holds the query parameters of /api/movies.
type MoviesRequest struct {
	Cache   bool `query:"cache"`
	Enhance bool `query:"enhance"`
}

// RotationRequest holds the query parameters of /api/movies/rotation.
type RotationRequest struct {
	Index int `query:"index" validate:"min=0"`
}

// FallbackRequest holds the query parameters of /api/movies/fallback.
type FallbackRequest struct {
	Title string `query:"title" validate:"required,max=200"`
	Year  int    `query:"year" validate:"omitempty,filmyear"`
}

// queryParser reads typed query parameters and remembers the first
// malformed one.
type queryParser struct {
	r   *http.Request
	bad *validation.APIError
}

func newQueryParser(r *http.Request) *queryParser {
	return &queryParser{r: r}
}

func (p *queryParser) str(key string) string {
	return strings.TrimSpace(p.r.URL.Query().Get(key))
}

// intParam returns the integer value of key, or def when key is absent.
func (p *queryParser) intParam(key string, def int) int {
	raw := p.str(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, "number", raw, key+" must be a number")
		return def
	}
	return v
}

// boolParam returns the boolean value of key, or def when key is absent.
func (p *queryParser) boolParam(key string, def bool) bool {
	raw := p.str(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, "boolean", raw, key+" must be true or false")
		return def
	}
	return v
}

func (p *queryParser) fail(field, tag, value, message string) {
	if p.bad != nil {
		return
	}
	p.bad = &validation.APIError{
		Code:    ErrCodeValidation,
		Message: message,
		Details: map[string]any{"field": field, "tag": tag, "value": value},
	}
}

// validateRequest runs the parser's type checks, then the struct's validate
// tags. It returns nil when v is valid.
func validateRequest(p *queryParser, v any) *validation.APIError {
	if p != nil && p.bad != nil {
		return p.bad
	}
	if err := validation.ValidateStruct(v); err != nil {
		return err.ToAPIError()
	}
	return nil
}

// respondValidation writes a 400 for a failed validateRequest.
func respondValidation(w http.ResponseWriter, r *http.Request, apiErr *validation.APIError) {
	respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
}

// optionalYear turns a zero year into nil.
func optionalYear(year int) *int {
	if year == 0 {
		return nil
	}
	return &year
}
