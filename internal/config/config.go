// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Letterboxd LetterboxdConfig `koanf:"letterboxd"`
	TMDB       TMDBConfig       `koanf:"tmdb"`
	Fixtures   FixturesConfig   `koanf:"fixtures"`
	Cache      CacheConfig      `koanf:"cache"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production"
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LetterboxdConfig holds settings for the primary diary feed
type LetterboxdConfig struct {
	// Username is the default handle whose RSS diary is read. Requests may
	// override it with ?username=.
	Username    string        `koanf:"username"`
	FeedBaseURL string        `koanf:"feed_base_url"`
	Timeout     time.Duration `koanf:"timeout"`

	// Parser selects the feed parser implementation: "regex" or "gofeed".
	Parser string `koanf:"parser"`
}

// TMDBConfig holds settings for the secondary metadata source
type TMDBConfig struct {
	APIKey            string        `koanf:"api_key"`
	ReadAccessToken   string        `koanf:"read_access_token"`
	BaseURL           string        `koanf:"base_url"`
	ImageBaseURL      string        `koanf:"image_base_url"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
}

// HasCredentials reports whether either credential form is configured.
func (t TMDBConfig) HasCredentials() bool {
	return t.APIKey != "" || t.ReadAccessToken != ""
}

// FixturesConfig locates the local CSV and JSON fixture files
type FixturesConfig struct {
	DataDir string `koanf:"data_dir"`
}

// CacheConfig holds cache tier settings
type CacheConfig struct {
	Enabled bool `koanf:"enabled"`

	// Path is the Badger directory for the durable tier. Empty selects the
	// in-memory tier only.
	Path string `koanf:"path"`

	MemoryMaxEntries int    `koanf:"memory_max_entries"`
	SweepSchedule    string `koanf:"sweep_schedule"`
}

// SecurityConfig holds rate limiting and CORS settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json (production) or console (development).
	Format string `koanf:"format"`

	// Caller includes file:line in every entry.
	Caller bool `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration from defaults, optional config file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
