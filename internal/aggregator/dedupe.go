// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package aggregator

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tomtom215/reelfeed/internal/models"
)

// DedupeKey identifies a film independent of title case and surrounding
// whitespace.
func DedupeKey(title string, year *int) string {
	return dedupeKey(cases.Fold(), title, year)
}

func dedupeKey(fold cases.Caser, title string, year *int) string {
	y := "unknown"
	if year != nil {
		y = strconv.Itoa(*year)
	}
	return fold.String(strings.TrimSpace(title)) + "_" + y
}

// Dedupe keeps one entry per film: the one with the latest WatchedAt, or
// the first seen on a tie. Entries without a title or watch date are
// dropped. The result is ordered most recent first; equal dates keep input
// order.
func Dedupe(recs []models.MovieRecord) []models.MovieRecord {
	fold := cases.Fold()
	index := make(map[string]int, len(recs))
	out := make([]models.MovieRecord, 0, len(recs))

	for i := range recs {
		r := &recs[i]
		if strings.TrimSpace(r.Title) == "" || r.WatchedAt == nil {
			continue
		}
		k := dedupeKey(fold, r.Title, r.Year)
		if j, ok := index[k]; ok {
			if r.WatchedAt.After(*out[j].WatchedAt) {
				out[j] = r.Clone()
			}
			continue
		}
		index[k] = len(out)
		out = append(out, r.Clone())
	}

	slices.SortStableFunc(out, func(a, b models.MovieRecord) int {
		return b.WatchedAt.Compare(*a.WatchedAt)
	})
	return out
}

// DuplicateMovie is a film that appears more than once.
type DuplicateMovie struct {
	Title       string `json:"title"`
	Year        *int   `json:"year"`
	Occurrences int    `json:"occurrences"`
}

// DuplicateStats summarizes repeated films in a diary.
type DuplicateStats struct {
	TotalEntries     int              `json:"totalEntries"`
	UniqueMovies     int              `json:"uniqueMovies"`
	DuplicateEntries int              `json:"duplicateEntries"`
	DuplicateMovies  []DuplicateMovie `json:"duplicateMovies"`
}

// ComputeDuplicateStats counts entries per film. Entries without a title
// count toward TotalEntries only.
func ComputeDuplicateStats(recs []models.MovieRecord) DuplicateStats {
	fold := cases.Fold()
	counts := make(map[string]int, len(recs))
	dupIndex := make(map[string]int)
	stats := DuplicateStats{TotalEntries: len(recs), DuplicateMovies: []DuplicateMovie{}}

	for i := range recs {
		r := &recs[i]
		if strings.TrimSpace(r.Title) == "" {
			continue
		}
		k := dedupeKey(fold, r.Title, r.Year)
		counts[k]++
		switch n := counts[k]; {
		case n == 2:
			dupIndex[k] = len(stats.DuplicateMovies)
			stats.DuplicateMovies = append(stats.DuplicateMovies, DuplicateMovie{
				Title:       r.Title,
				Year:        r.Year,
				Occurrences: n,
			})
		case n > 2:
			stats.DuplicateMovies[dupIndex[k]].Occurrences = n
		}
	}

	stats.UniqueMovies = len(counts)
	stats.DuplicateEntries = stats.TotalEntries - stats.UniqueMovies
	slices.SortStableFunc(stats.DuplicateMovies, func(a, b DuplicateMovie) int {
		return cmp.Compare(b.Occurrences, a.Occurrences)
	})
	return stats
}
