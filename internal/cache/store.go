// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package cache

// Store is a raw key/value tier. Implementations must be safe for concurrent
// use and must copy values on the way in and out.
type Store interface {
	// Name labels the store in metrics and stats.
	Name() string

	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)

	// Set stores value under key, overwriting any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Keys lists every key the store holds.
	Keys() ([]string, error)

	// Clear removes every key owned by the store.
	Clear() error

	// Len returns the number of keys.
	Len() int

	// Close releases resources.
	Close() error
}

// Store names.
const (
	StoreBadger = "badger"
	StoreMemory = "memory"
)

// Verify interface implementations at compile time
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*BadgerStore)(nil)
)
