// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelfeed/internal/apperrors"
	"github.com/tomtom215/reelfeed/internal/breaker"
	"github.com/tomtom215/reelfeed/internal/cache"
	"github.com/tomtom215/reelfeed/internal/config"
	"github.com/tomtom215/reelfeed/internal/logging"
	"github.com/tomtom215/reelfeed/internal/metrics"
	"github.com/tomtom215/reelfeed/internal/models"
)

// DefaultAppend is the append_to_response used when the caller gives none.
const DefaultAppend = "credits,images,videos"

const (
	upstreamName       = "tmdb"
	defaultBaseURL     = "https://api.themoviedb.org/3"
	defaultImageURL    = "https://image.tmdb.org/t/p"
	defaultTimeout     = 10 * time.Second
	maxResponseBytes   = 2 << 20
	defaultRequestRate = 4
)

// Client talks to the TMDB API.
type Client struct {
	baseURL    string
	imageURL   string
	apiKey     string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *breaker.Breaker[[]byte]
	group      singleflight.Group
	cache      *cache.Cache
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache stores formatted responses in ch.
func WithCache(ch *cache.Cache) Option {
	return func(c *Client) { c.cache = ch }
}

// WithLimiter replaces the request limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithBreakerSettings tunes the circuit breaker.
func WithBreakerSettings(s breaker.Settings) Option {
	return func(c *Client) { c.breaker = breaker.New[[]byte](upstreamName, s) }
}

// NewClient returns a client for cfg. A client without credentials is
// valid; its lookups fail with ErrNotConfigured.
func NewClient(cfg config.TMDBConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestRate
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(orDefault(cfg.BaseURL, defaultBaseURL), "/"),
		imageURL:   strings.TrimSuffix(orDefault(cfg.ImageBaseURL, defaultImageURL), "/"),
		apiKey:     cfg.APIKey,
		token:      cfg.ReadAccessToken,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		c.breaker = breaker.New[[]byte](upstreamName, breaker.DefaultSettings())
	}
	return c
}

func (c *Client) flightTimeout() time.Duration {
	if c.httpClient.Timeout > 0 {
		return c.httpClient.Timeout
	}
	return defaultTimeout
}

// Configured reports whether credentials are present.
func (c *Client) Configured() bool {
	return c.apiKey != "" || c.token != ""
}

// BreakerState reports the circuit breaker state.
func (c *Client) BreakerState() string {
	return c.breaker.State()
}

// SearchParams are the inputs of a movie search.
type SearchParams struct {
	Query string
	Year  *int
	Page  int
}

// Search runs a movie search. Page defaults to 1.
func (c *Client) Search(ctx context.Context, p SearchParams) (*SearchPage, error) {
	query := strings.TrimSpace(p.Query)
	if query == "" {
		return nil, fmt.Errorf("query parameter is required: %w", apperrors.ErrValidation)
	}
	if p.Page < 1 {
		p.Page = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("page", strconv.Itoa(p.Page))
	if p.Year != nil {
		params.Set("year", strconv.Itoa(*p.Year))
	}

	key := cache.TMDBSearchKey(query, p.Year)
	if p.Page > 1 {
		key += "_p" + strconv.Itoa(p.Page)
	}
	return lookup(ctx, c, "search", key, "/search/movie", params, func(body []byte) (*SearchPage, error) {
		var raw apiSearch
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, fmt.Errorf("decode search response: %w", apperrors.ErrUpstreamUnavailable)
		}
		return c.formatSearch(&raw), nil
	})
}

// FindMovie returns the best match for title and year, the first search
// result. No results is ErrNotFound.
func (c *Client) FindMovie(ctx context.Context, title string, year *int) (*SearchResult, error) {
	page, err := c.Search(ctx, SearchParams{Query: title, Year: year, Page: 1})
	if err != nil {
		return nil, err
	}
	if len(page.Results) == 0 {
		return nil, fmt.Errorf("no TMDB match for %q: %w", title, apperrors.ErrNotFound)
	}
	best := page.Results[0]
	return &best, nil
}

// Details fetches one movie. An empty appendToResponse requests
// DefaultAppend.
func (c *Client) Details(ctx context.Context, id int, appendToResponse string) (*MovieDetails, error) {
	if id <= 0 {
		return nil, fmt.Errorf("movie id must be a positive integer: %w", apperrors.ErrValidation)
	}
	appendToResponse = strings.TrimSpace(appendToResponse)
	if appendToResponse == "" {
		appendToResponse = DefaultAppend
	}

	params := url.Values{}
	params.Set("append_to_response", appendToResponse)

	key := cache.TMDBDetailsKey(id)
	if appendToResponse != DefaultAppend {
		key += "_" + models.Slug(appendToResponse)
	}
	return lookup(ctx, c, "details", key, "/movie/"+strconv.Itoa(id), params, func(body []byte) (*MovieDetails, error) {
		var raw apiDetails
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, fmt.Errorf("decode movie details: %w", apperrors.ErrUpstreamUnavailable)
		}
		return c.formatDetails(&raw), nil
	})
}

// lookup serves key from the cache, or fetches path once for all
// concurrent callers, formats the body and caches the result. Each caller
// decodes its own copy. The shared fetch is detached from any one caller's
// cancellation and bounded by the client timeout instead.
func lookup[T any](ctx context.Context, c *Client, op, key, path string, params url.Values, format func([]byte) (T, error)) (T, error) {
	var out T
	if !c.Configured() {
		return out, fmt.Errorf("TMDB API credentials not configured: %w", apperrors.ErrNotConfigured)
	}
	if c.cache != nil && c.cache.Get(key, &out) {
		return out, nil
	}

	flight := c.group.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.flightTimeout())
		defer cancel()

		body, err := c.fetch(fctx, op, path, params)
		if err != nil {
			return nil, err
		}
		formatted, err := format(body)
		if err != nil {
			return nil, err
		}
		if c.cache != nil {
			if err := c.cache.Set(key, formatted, cache.TTLTMDB); err != nil {
				logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Failed to cache TMDB response")
			}
		}
		return json.Marshal(formatted)
	})

	var res singleflight.Result
	select {
	case res = <-flight:
	case <-ctx.Done():
		return out, fmt.Errorf("TMDB %s: %w", op, apperrors.FromTransport(ctx.Err()))
	}
	v, err, shared := res.Val, res.Err, res.Shared
	if err != nil {
		return out, err
	}
	if shared {
		logging.Ctx(ctx).Debug().Str("key", key).Msg("Shared in-flight TMDB request")
	}
	if err := json.Unmarshal(v.([]byte), &out); err != nil {
		return out, fmt.Errorf("decode %s result: %w", op, err)
	}
	return out, nil
}

func (c *Client) fetch(ctx context.Context, op, path string, params url.Values) ([]byte, error) {
	start := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for TMDB rate limiter: %w", apperrors.FromTransport(err))
		}
		return c.get(ctx, path, params)
	})
	metrics.RecordUpstreamRequest(upstreamName, op, time.Since(start), apperrors.Kind(err))
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("TMDB request failed")
	}
	return body, err
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	if c.token == "" {
		q.Set("api_key", c.apiKey)
	}
	reqURL := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("TMDB request: %w", apperrors.FromTransport(err))
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("invalid TMDB API credentials: %w", apperrors.ErrUpstreamUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("movie not found: %w", apperrors.ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("TMDB rate limit exceeded: %w", apperrors.ErrUpstreamRateLimited)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("TMDB API returned status %d: %w", resp.StatusCode, apperrors.ErrUpstreamUnavailable)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read TMDB response: %w", apperrors.FromTransport(err))
	}
	return body, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
