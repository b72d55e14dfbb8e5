// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package fixtures reads the hand-curated data files that sit next to the
service:

  - five-star-movies.csv: favourite films in display order
  - watchlist.csv: the enriched watchlist export
  - lists-metadata.json: curated list descriptions

Both CSV files share the header

	Date,Name,Year,Letterboxd URI,Poster URL,TMDB ID

The watchlist is read in quoted mode, where double quotes protect embedded
commas. The five-star file is read in simple mode, a plain comma split. The
literal "null" and the empty string normalize to absent values.

A missing file is apperrors.ErrNotFound. An empty file is a valid result with
zero records; callers decide whether that is an error.
*/
package fixtures
