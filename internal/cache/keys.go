// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package cache

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Category TTLs.
const (
	TTLDiary     = 15 * time.Minute
	TTLTMDB      = 60 * time.Minute
	TTLWatchlist = 24 * time.Hour
	TTLLists     = 6 * time.Hour
	TTLRandom    = 5 * time.Minute
	TTLDefault   = 30 * time.Minute
)

// Key prefixes, one per category.
const (
	PrefixDiary     = "letterboxd_diary_"
	PrefixFiveStar  = "letterboxd_fivestar_"
	PrefixWatchlist = "letterboxd_watchlist_"
	PrefixLists     = "letterboxd_lists_"
	PrefixSearch    = "tmdb_search_"
	PrefixDetails   = "tmdb_details_"
	PrefixEnhanced  = "enhanced_movie_"
)

// DiaryKey keys a diary fetch for user with the given limit.
func DiaryKey(user string, limit int) string {
	return PrefixDiary + strings.ToLower(user) + "_" + strconv.Itoa(limit)
}

// FiveStarKey keys the five-star fixture with the given limit.
func FiveStarKey(limit int) string {
	return PrefixFiveStar + strconv.Itoa(limit)
}

// WatchlistKey keys the full watchlist fixture.
func WatchlistKey() string {
	return PrefixWatchlist + "all"
}

// WatchlistRandomKey keys the random pick.
func WatchlistRandomKey() string {
	return PrefixWatchlist + "random"
}

// ListsKey keys the curated lists with the given filter and limit.
func ListsKey(featured bool, limit int) string {
	return PrefixLists + strconv.FormatBool(featured) + "_" + strconv.Itoa(limit)
}

// TMDBSearchKey keys a search by title and optional year.
func TMDBSearchKey(title string, year *int) string {
	return PrefixSearch + titleYear(title, year)
}

// TMDBDetailsKey keys a details lookup.
func TMDBDetailsKey(id int) string {
	return PrefixDetails + strconv.Itoa(id)
}

// EnhancedKey keys the merged result for a title and year.
func EnhancedKey(title string, year *int) string {
	return PrefixEnhanced + titleYear(title, year)
}

func titleYear(title string, year *int) string {
	y := "any"
	if year != nil {
		y = strconv.Itoa(*year)
	}
	return titleKey(title) + "_" + y
}

// titleKey case-folds title, collapses whitespace and escapes the rest, so
// distinct titles in any script keep distinct keys.
func titleKey(title string) string {
	folded := cases.Fold().String(strings.Join(strings.Fields(title), " "))
	return url.PathEscape(folded)
}

// TTLFor returns the category TTL of key, or TTLDefault.
func TTLFor(key string) time.Duration {
	switch {
	case strings.HasPrefix(key, PrefixWatchlist+"random"):
		return TTLRandom
	case strings.HasPrefix(key, PrefixDiary):
		return TTLDiary
	case strings.HasPrefix(key, PrefixSearch),
		strings.HasPrefix(key, PrefixDetails),
		strings.HasPrefix(key, PrefixEnhanced):
		return TTLTMDB
	case strings.HasPrefix(key, PrefixWatchlist), strings.HasPrefix(key, PrefixFiveStar):
		return TTLWatchlist
	case strings.HasPrefix(key, PrefixLists):
		return TTLLists
	default:
		return TTLDefault
	}
}
