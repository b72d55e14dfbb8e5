// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"bad environment", func(c *Config) { c.Server.Environment = "qa" }, "ENVIRONMENT"},
		{"feed url scheme", func(c *Config) { c.Letterboxd.FeedBaseURL = "ftp://letterboxd.com" }, "LETTERBOXD_FEED_BASE_URL"},
		{"feed timeout", func(c *Config) { c.Letterboxd.Timeout = 0 }, "LETTERBOXD_TIMEOUT"},
		{"unknown parser", func(c *Config) { c.Letterboxd.Parser = "dom" }, "FEED_PARSER"},
		{"tmdb url no host", func(c *Config) { c.TMDB.BaseURL = "https://" }, "TMDB_BASE_URL"},
		{"tmdb url query", func(c *Config) { c.TMDB.ImageBaseURL = "https://image.tmdb.org/t/p?x=1" }, "TMDB_IMAGE_BASE_URL"},
		{"tmdb rate", func(c *Config) { c.TMDB.RequestsPerSecond = 0 }, "TMDB_REQUESTS_PER_SECOND"},
		{"empty fixtures dir", func(c *Config) { c.Fixtures.DataDir = " " }, "FIXTURES_DIR"},
		{"memory cap", func(c *Config) { c.Cache.MemoryMaxEntries = 0 }, "CACHE_MEMORY_MAX_ENTRIES"},
		{"bad cron", func(c *Config) { c.Cache.SweepSchedule = "every so often" }, "CACHE_SWEEP_SCHEDULE"},
		{"empty cron allowed", func(c *Config) { c.Cache.SweepSchedule = "" }, ""},
		{"rate limit window", func(c *Config) { c.Security.RateLimitWindow = 0 }, "RATE_LIMIT_WINDOW"},
		{"rate limit disabled skips checks", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestHelpers(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if got := cfg.Server.Addr(); got != "0.0.0.0:3000" {
		t.Errorf("Addr() = %q, want 0.0.0.0:3000", got)
	}
	if cfg.IsProduction() {
		t.Error("default environment should not be production")
	}
	if cfg.TMDB.HasCredentials() {
		t.Error("defaults carry no TMDB credentials")
	}
	cfg.TMDB.ReadAccessToken = "token"
	if !cfg.TMDB.HasCredentials() {
		t.Error("read access token should count as credentials")
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Server.Timeout = %v, want 30s", cfg.Server.Timeout)
	}
}
