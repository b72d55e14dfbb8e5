// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// Validate checks that configuration values are present and sane
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLetterboxd,
		c.validateTMDB,
		c.validateFixtures,
		c.validateCache,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
}

func (c *Config) validateLetterboxd() error {
	if err := validateHTTPURL(c.Letterboxd.FeedBaseURL, "LETTERBOXD_FEED_BASE_URL"); err != nil {
		return err
	}
	if c.Letterboxd.Timeout <= 0 {
		return fmt.Errorf("LETTERBOXD_TIMEOUT must be positive, got %v", c.Letterboxd.Timeout)
	}
	switch c.Letterboxd.Parser {
	case "regex", "gofeed":
		return nil
	default:
		return fmt.Errorf("FEED_PARSER must be regex or gofeed, got %q", c.Letterboxd.Parser)
	}
}

// validateTMDB does not require credentials: without them the TMDB endpoints
// answer 500 and enrichment is skipped, matching an unconfigured deployment.
func (c *Config) validateTMDB() error {
	if err := validateHTTPURL(c.TMDB.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.TMDB.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if c.TMDB.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive, got %v", c.TMDB.Timeout)
	}
	if c.TMDB.RequestsPerSecond <= 0 {
		return fmt.Errorf("TMDB_REQUESTS_PER_SECOND must be positive, got %v", c.TMDB.RequestsPerSecond)
	}
	return nil
}

func (c *Config) validateFixtures() error {
	if strings.TrimSpace(c.Fixtures.DataDir) == "" {
		return fmt.Errorf("FIXTURES_DIR must not be empty")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.MemoryMaxEntries < 1 {
		return fmt.Errorf("CACHE_MEMORY_MAX_ENTRIES must be at least 1, got %d", c.Cache.MemoryMaxEntries)
	}
	if c.Cache.SweepSchedule == "" {
		return nil
	}
	if _, err := cron.ParseStandard(c.Cache.SweepSchedule); err != nil {
		return fmt.Errorf("CACHE_SWEEP_SCHEDULE is invalid: %w", err)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}
