// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package merger

import (
	"github.com/tomtom215/reelfeed/internal/models"
	"github.com/tomtom215/reelfeed/internal/validation"
)

// MaxTextLength bounds overview and review text.
const MaxTextLength = 1000

// ValidationResult is a sanitized record plus the reasons it is invalid.
type ValidationResult struct {
	Valid  bool               `json:"valid"`
	Errors []string           `json:"errors,omitempty"`
	Record models.MovieRecord `json:"record"`
}

type requiredFields struct {
	Title string `validate:"required"`
	Year  *int   `validate:"required"`
}

// Validate checks required fields and returns a sanitized copy of rec:
// rating clamped to [0,5], long text truncated, non-http(s) URLs dropped.
func Validate(rec models.MovieRecord) ValidationResult {
	res := ValidationResult{Valid: true, Record: rec.Clone()}

	if verr := validation.ValidateStruct(&requiredFields{Title: rec.Title, Year: rec.Year}); verr != nil {
		res.Valid = false
		for _, f := range verr.Fields {
			res.Errors = append(res.Errors, f.Message)
		}
	}

	out := &res.Record
	if out.Rating != nil {
		r := min(max(*out.Rating, 0), 5)
		out.Rating = &r
	}
	out.Overview = truncate(out.Overview)
	out.ReviewText = truncate(out.ReviewText)
	out.PosterURL = httpOnly(out.PosterURL)
	out.SourceURL = httpOnly(out.SourceURL)
	out.PosterOriginalURL = httpOnly(out.PosterOriginalURL)
	out.BackdropURL = httpOnly(out.BackdropURL)
	return res
}

func truncate(s *string) *string {
	if s == nil {
		return nil
	}
	r := []rune(*s)
	if len(r) <= MaxTextLength {
		return s
	}
	t := string(r[:MaxTextLength]) + "..."
	return &t
}

func httpOnly(u *string) *string {
	if u == nil || !validation.IsHTTPURL(*u) {
		return nil
	}
	return u
}
