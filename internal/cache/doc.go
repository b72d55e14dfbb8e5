// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package cache provides the category-TTL response cache used by the fetchers
and the aggregation facade.

# Tiers

A Cache writes to one primary Store chosen at construction:

  - BadgerStore: durable, backed by github.com/dgraph-io/badger/v4. Every key
    lives under the reserved "reelfeed:" prefix so Clear never touches foreign
    data in a shared database.
  - MemoryStore: a bounded map that evicts the oldest inserted entry once it
    holds N entries (FIFO, N=100 by default).

When the primary is a BadgerStore a MemoryStore is kept as fallback. A failed
primary write goes to the fallback; reads consult primary then fallback.

# Entries

Payloads are serialized to JSON inside an envelope carrying cachedAt and
expiresAt. Reads deserialize into the caller's value, so callers always get a
deep copy. An expired entry is a miss; an envelope or payload that fails to
decode is a miss and is deleted.

# Category TTLs

	diary feed          15m
	TMDB lookups        60m
	watchlist           24h
	curated lists        6h
	random pick          5m
	anything else       30m

Usage:

	c := cache.New(cache.NewMemoryStore(100))
	c.Set(cache.DiaryKey("jdoe", 5), records, cache.TTLDiary)

	var cached []models.MovieRecord
	if c.Get(cache.DiaryKey("jdoe", 5), &cached) {
	    return cached
	}
*/
package cache
