// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

// Package letterboxd fetches a user's public diary feed and converts it
// into records through a feed.Parser.
package letterboxd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/reelfeed/internal/apperrors"
	"github.com/tomtom215/reelfeed/internal/breaker"
	"github.com/tomtom215/reelfeed/internal/config"
	"github.com/tomtom215/reelfeed/internal/feed"
	"github.com/tomtom215/reelfeed/internal/logging"
	"github.com/tomtom215/reelfeed/internal/metrics"
	"github.com/tomtom215/reelfeed/internal/models"
)

// UserAgent is sent with every feed request.
const UserAgent = "Mozilla/5.0 (compatible; Reelfeed-Bot/1.0)"

const (
	upstreamName   = "letterboxd"
	defaultTimeout = 10 * time.Second
	maxFeedBytes   = 5 << 20
)

// Client reads Letterboxd RSS feeds.
type Client struct {
	baseURL    string
	httpClient *http.Client
	parser     feed.Parser
	parserKind string
	breaker    *breaker.Breaker[string]
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBreakerSettings tunes the circuit breaker.
func WithBreakerSettings(s breaker.Settings) Option {
	return func(c *Client) { c.breaker = breaker.New[string](upstreamName, s) }
}

// NewClient returns a client for cfg. cfg.Parser selects the feed parser.
func NewClient(cfg config.LetterboxdConfig, opts ...Option) (*Client, error) {
	parser, err := feed.New(cfg.Parser)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	kind := cfg.Parser
	if kind == "" {
		kind = feed.KindRegex
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(cfg.FeedBaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		parser:     parser,
		parserKind: kind,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		c.breaker = breaker.New[string](upstreamName, breaker.DefaultSettings())
	}
	return c, nil
}

// Diary is a parsed diary feed.
type Diary struct {
	Entries []models.MovieRecord
	Feed    feed.Metadata
}

// Diary fetches and parses the diary feed of user. Entries keep feed order,
// which is newest first.
func (c *Client) Diary(ctx context.Context, user string) (*Diary, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, fmt.Errorf("username is required: %w", apperrors.ErrValidation)
	}

	raw, err := c.fetch(ctx, "/"+url.PathEscape(user)+"/rss/")
	if err != nil {
		return nil, err
	}

	entries, err := c.parser.ParseDiary(raw)
	if err != nil {
		return nil, fmt.Errorf("parse diary feed for %s: %w", user, err)
	}
	metrics.FeedItemsParsed.WithLabelValues(c.parserKind, "diary").Add(float64(len(entries)))

	md, err := feed.ExtractMetadata(raw)
	if err != nil {
		logging.Debug().Err(err).Str("user", user).Msg("Feed has no channel metadata")
	}
	return &Diary{Entries: entries, Feed: md}, nil
}

// BreakerState reports the circuit breaker state.
func (c *Client) BreakerState() string {
	return c.breaker.State()
}

func (c *Client) fetch(ctx context.Context, path string) (string, error) {
	start := time.Now()
	body, err := c.breaker.Execute(func() (string, error) {
		return c.get(ctx, c.baseURL+path)
	})
	metrics.RecordUpstreamRequest(upstreamName, "feed", time.Since(start), apperrors.Kind(err))
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("Letterboxd feed request failed")
	}
	return body, err
}

func (c *Client) get(ctx context.Context, reqURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9, text/xml;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch feed: %w", apperrors.FromTransport(err))
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("letterboxd user not found or diary is private: %w", apperrors.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", fmt.Errorf("feed returned status %d: %w", resp.StatusCode, apperrors.ErrUpstreamUnavailable)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return "", fmt.Errorf("read feed: %w", apperrors.FromTransport(err))
	}
	return string(body), nil
}
