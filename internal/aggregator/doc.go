// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package aggregator is the facade over the diary feed, the curated fixtures,
the TMDB merger and the cache.

GetAllMovieData fans out four branches with errgroup:

	diary      latest 5 diary entries, first 3 optionally enhanced
	five-star  first 15 five-star movies in file order
	random     one movie drawn from the watchlist
	lists      latest 3 list summaries

Each branch reads through and writes through the cache with its category
TTL and reports success or failure independently, so one broken source
never hides the others.

The per-route accessors (Diary, FiveStar, Watchlist, RandomWatchlist,
Lists, Rotation, DedupedDiary) back the HTTP handlers. Every record title
and list name passes through models.CleanTitle before it leaves the
package.
*/
package aggregator
