// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package merger

import (
	"strings"

	"github.com/tomtom215/reelfeed/internal/models"
)

// ChoosePoster picks between the primary and secondary poster. A resized
// Letterboxd thumbnail loses to a TMDB w500 poster; otherwise the primary
// wins whenever it exists.
func ChoosePoster(primary, secondary *string) *string {
	switch {
	case primary == nil || *primary == "":
		return secondary
	case secondary == nil || *secondary == "":
		return primary
	case strings.Contains(*primary, "resized") && strings.Contains(*secondary, "w500"):
		return secondary
	default:
		return primary
	}
}

// Merge combines primary with secondary. Identity and diary fields always
// come from primary; missing primary fields are filled from secondary; the
// enrichment block is taken from secondary.
func Merge(primary, secondary models.MovieRecord) models.MovieRecord {
	out := primary.Clone()
	sec := secondary.Clone()

	if strings.TrimSpace(out.Title) == "" {
		out.Title = sec.Title
	}
	if out.Year == nil {
		out.Year = sec.Year
	}
	out.PosterURL = ChoosePoster(out.PosterURL, sec.PosterURL)

	out.TMDBID = sec.TMDBID
	out.Overview = firstNonNil(sec.Overview, out.Overview)
	out.PosterOriginalURL = firstNonNil(sec.PosterOriginalURL, out.PosterOriginalURL)
	out.BackdropURL = firstNonNil(sec.BackdropURL, out.BackdropURL)
	out.VoteAverage = firstNonNil(sec.VoteAverage, out.VoteAverage)
	out.Runtime = firstNonNil(sec.Runtime, out.Runtime)
	if len(sec.Genres) > 0 {
		out.Genres = sec.Genres
	}
	if len(sec.Cast) > 0 {
		out.Cast = sec.Cast
	}
	if len(sec.Crew) > 0 {
		out.Crew = sec.Crew
	}
	return out
}

func firstNonNil[T any](ps ...*T) *T {
	for _, p := range ps {
		if p != nil {
			return p
		}
	}
	return nil
}
