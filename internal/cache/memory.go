// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package cache

import (
	"slices"
	"sync"

	"github.com/tomtom215/reelfeed/internal/metrics"
)

// DefaultMemoryEntries is the MemoryStore capacity when none is configured.
const DefaultMemoryEntries = 100

// MemoryStore is a bounded in-process Store. When full, inserting a new key
// evicts the oldest inserted key. Overwriting an existing key keeps its
// position.
type MemoryStore struct {
	mu      sync.RWMutex
	max     int
	entries map[string][]byte
	order   []string
}

// NewMemoryStore returns a store holding at most maxEntries keys.
func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryEntries
	}
	return &MemoryStore{
		max:     maxEntries,
		entries: make(map[string][]byte, maxEntries),
		order:   make([]string, 0, maxEntries),
	}
}

// Name implements Store.
func (s *MemoryStore) Name() string { return StoreMemory }

// Get implements Store.
func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

// Set implements Store.
func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists {
		for len(s.order) >= s.max {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.entries, oldest)
			metrics.CacheEvictions.WithLabelValues(StoreMemory, "capacity").Inc()
		}
		s.order = append(s.order, key)
	}
	s.entries[key] = slices.Clone(value)
	metrics.CacheSize.WithLabelValues(StoreMemory).Set(float64(len(s.entries)))
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return nil
	}
	delete(s.entries, key)
	if i := slices.Index(s.order, key); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	metrics.CacheSize.WithLabelValues(StoreMemory).Set(float64(len(s.entries)))
	return nil
}

// Keys implements Store. Keys are returned oldest first.
func (s *MemoryStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order), nil
}

// Clear implements Store.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string][]byte, s.max)
	s.order = s.order[:0]
	metrics.CacheSize.WithLabelValues(StoreMemory).Set(0)
	return nil
}

// Len implements Store.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }
