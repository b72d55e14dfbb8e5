// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package fixtures

import (
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/reelfeed/internal/models"
)

// Record ID prefixes.
const (
	FiveStarPrefix  = "five-star"
	WatchlistPrefix = "watchlist"
)

// five-star entries are by definition rated 5.
const fiveStarRating = 5.0

// FiveStarRecord converts a five-star CSV row.
func FiveStarRecord(row Row) (models.MovieRecord, bool) {
	rec, ok := fromRow(row, FiveStarPrefix, models.SourceFiveStarCSV)
	if !ok {
		return rec, false
	}
	rec.Rating = models.Ptr(fiveStarRating)
	rec.WatchedAt = parseDate(row.Get(ColDate))
	return rec, true
}

// WatchlistRecord converts a watchlist CSV row.
func WatchlistRecord(row Row) (models.MovieRecord, bool) {
	rec, ok := fromRow(row, WatchlistPrefix, models.SourceWatchlistCSV)
	if !ok {
		return rec, false
	}
	rec.AddedAt = parseDate(row.Get(ColDate))
	return rec, true
}

// fromRow is the single CSV ingress adapter. Rows without a name are
// rejected.
func fromRow(row Row, prefix, source string) (models.MovieRecord, bool) {
	title := models.CleanTitle(row.Get(ColName))
	if strings.TrimSpace(title) == "" {
		return models.MovieRecord{}, false
	}
	year := optionalInt(row.Get(ColYear))
	return models.MovieRecord{
		ID:           models.RecordID(prefix, title, year),
		Title:        title,
		Year:         year,
		PosterURL:    optionalString(row.Get(ColPosterURL)),
		SourceURL:    optionalString(row.Get(ColURI)),
		TMDBID:       optionalInt(row.Get(ColTMDBID)),
		Order:        models.Ptr(row.Index),
		OriginSource: models.OriginPrimary,
		Source:       source,
	}, true
}

func isNull(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "null")
}

func optionalString(s string) *string {
	if isNull(s) {
		return nil
	}
	return models.Ptr(strings.TrimSpace(s))
}

func optionalInt(s string) *int {
	if isNull(s) {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"}

func parseDate(s string) *time.Time {
	if isNull(s) {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return &t
		}
	}
	return nil
}
