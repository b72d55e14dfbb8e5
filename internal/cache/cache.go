// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package cache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelfeed/internal/config"
	"github.com/tomtom215/reelfeed/internal/logging"
	"github.com/tomtom215/reelfeed/internal/metrics"
)

// envelope is the serialized form of one entry.
type envelope struct {
	Key       string          `json:"key"`
	Payload   json.RawMessage `json:"payload"`
	CachedAt  time.Time       `json:"cachedAt"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

// Cache is a TTL cache over a primary Store with an optional memory
// fallback. Concurrent writers to one key race; the last write wins.
type Cache struct {
	primary  Store
	fallback Store
	now      func() time.Time
	logger   zerolog.Logger

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64

	mu        sync.Mutex
	lastSweep time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithFallback sets the store used when a primary write fails.
func WithFallback(s Store) Option {
	return func(c *Cache) { c.fallback = s }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New returns a cache writing to primary.
func New(primary Store, opts ...Option) *Cache {
	c := &Cache{
		primary: primary,
		now:     time.Now,
		logger:  logging.WithComponent("cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open builds a cache from configuration. A configured path selects a
// BadgerStore with a MemoryStore fallback; if the database cannot be opened
// the cache runs on memory alone.
func Open(cfg config.CacheConfig) *Cache {
	mem := NewMemoryStore(cfg.MemoryMaxEntries)
	if cfg.Path == "" {
		return New(mem)
	}
	db, err := OpenBadgerStore(cfg.Path)
	if err != nil {
		logging.Warn().Err(err).Str("path", cfg.Path).Msg("Durable cache unavailable, using memory store")
		return New(mem)
	}
	return New(db, WithFallback(mem))
}

// StoreName returns the name of the primary store.
func (c *Cache) StoreName() string {
	return c.primary.Name()
}

func (c *Cache) stores() []Store {
	if c.fallback == nil {
		return []Store{c.primary}
	}
	return []Store{c.primary, c.fallback}
}

// Get decodes the live entry for key into dst and reports whether it did.
// When both tiers hold a live entry the most recently cached one wins.
// Expired and undecodable entries are misses; undecodable ones are deleted.
func (c *Cache) Get(key string, dst any) bool {
	now := c.now()
	var (
		best      envelope
		bestStore Store
	)
	for _, s := range c.stores() {
		raw, ok, err := s.Get(key)
		if err != nil {
			c.logger.Debug().Err(err).Str("store", s.Name()).Str("key", key).Msg("Cache read failed")
			continue
		}
		if !ok {
			continue
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.evict(s, key, "malformed")
			continue
		}
		if !now.Before(env.ExpiresAt) {
			c.evict(s, key, "expired")
			continue
		}
		if bestStore == nil || env.CachedAt.After(best.CachedAt) {
			best, bestStore = env, s
		}
	}

	if bestStore != nil {
		if err := json.Unmarshal(best.Payload, dst); err == nil {
			c.hits.Add(1)
			metrics.CacheHits.WithLabelValues(bestStore.Name()).Inc()
			return true
		}
		c.evict(bestStore, key, "malformed")
	}

	c.misses.Add(1)
	metrics.CacheMisses.WithLabelValues(c.primary.Name()).Inc()
	return false
}

// Set stores payload under key for ttl. A non-positive ttl selects the
// category TTL of key. A failed primary write is redirected to the fallback.
func (c *Cache) Set(key string, payload any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = TTLFor(key)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode cache payload for %s: %w", key, err)
	}
	now := c.now()
	raw, err := json.Marshal(envelope{
		Key:       key,
		Payload:   body,
		CachedAt:  now,
		ExpiresAt: now.Add(ttl),
	})
	if err != nil {
		return fmt.Errorf("encode cache entry for %s: %w", key, err)
	}

	if err := c.primary.Set(key, raw); err != nil {
		if c.fallback == nil {
			return err
		}
		c.logger.Warn().Err(err).Str("key", key).Msg("Primary cache write failed, using memory fallback")
		metrics.CacheWriteFallbacks.Inc()
		// The older primary copy must not shadow the new value.
		_ = c.primary.Delete(key)
		return c.fallback.Set(key, raw)
	}
	if c.fallback != nil {
		_ = c.fallback.Delete(key)
	}
	return nil
}

// Delete removes key from every tier.
func (c *Cache) Delete(key string) {
	for _, s := range c.stores() {
		if err := s.Delete(key); err != nil {
			c.logger.Debug().Err(err).Str("key", key).Msg("Cache delete failed")
		}
	}
}

// ClearExpired removes expired and undecodable entries from every tier and
// returns how many were removed. Running it twice in a row removes nothing
// the second time.
func (c *Cache) ClearExpired() int {
	now := c.now()
	removed := 0
	for _, s := range c.stores() {
		keys, err := s.Keys()
		if err != nil {
			c.logger.Warn().Err(err).Str("store", s.Name()).Msg("Cache sweep could not list keys")
			continue
		}
		for _, key := range keys {
			raw, ok, err := s.Get(key)
			if err != nil || !ok {
				continue
			}
			var env envelope
			switch {
			case json.Unmarshal(raw, &env) != nil:
				c.evict(s, key, "malformed")
				removed++
			case !now.Before(env.ExpiresAt):
				c.evict(s, key, "expired")
				removed++
			}
		}
		metrics.CacheSize.WithLabelValues(s.Name()).Set(float64(s.Len()))
	}

	c.mu.Lock()
	c.lastSweep = now
	c.mu.Unlock()

	if removed > 0 {
		c.logger.Debug().Int("removed", removed).Msg("Cleared expired cache entries")
	}
	return removed
}

// ClearAll empties every tier.
func (c *Cache) ClearAll() error {
	for _, s := range c.stores() {
		if err := s.Clear(); err != nil {
			return fmt.Errorf("clear %s store: %w", s.Name(), err)
		}
	}
	return nil
}

// Close closes every tier.
func (c *Cache) Close() error {
	var firstErr error
	for _, s := range c.stores() {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *Cache) evict(s Store, key, reason string) {
	if err := s.Delete(key); err != nil {
		c.logger.Debug().Err(err).Str("key", key).Msg("Cache eviction failed")
		return
	}
	c.evictions.Add(1)
	metrics.CacheEvictions.WithLabelValues(s.Name(), reason).Inc()
}

// Stats is a point-in-time view of the cache.
type Stats struct {
	Store           string    `json:"store"`
	TotalEntries    int       `json:"totalEntries"`
	ValidEntries    int       `json:"validEntries"`
	ExpiredEntries  int       `json:"expiredEntries"`
	FallbackEntries int       `json:"fallbackEntries"`
	TotalBytes      int       `json:"totalBytes"`
	Hits            int64     `json:"hits"`
	Misses          int64     `json:"misses"`
	Evictions       int64     `json:"evictions"`
	HitRate         float64   `json:"hitRate"`
	LastSweep       time.Time `json:"lastSweep"`
}

// Stats scans every tier and reports entry counts and counters.
func (c *Cache) Stats() Stats {
	st := Stats{
		Store:     c.primary.Name(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
	if total := st.Hits + st.Misses; total > 0 {
		st.HitRate = float64(st.Hits) / float64(total) * 100.0
	}

	now := c.now()
	for i, s := range c.stores() {
		keys, err := s.Keys()
		if err != nil {
			continue
		}
		if i > 0 {
			st.FallbackEntries = len(keys)
		}
		for _, key := range keys {
			raw, ok, err := s.Get(key)
			if err != nil || !ok {
				continue
			}
			st.TotalEntries++
			st.TotalBytes += len(raw)
			var env envelope
			if json.Unmarshal(raw, &env) == nil && now.Before(env.ExpiresAt) {
				st.ValidEntries++
			} else {
				st.ExpiredEntries++
			}
		}
	}

	c.mu.Lock()
	st.LastSweep = c.lastSweep
	c.mu.Unlock()
	return st
}
