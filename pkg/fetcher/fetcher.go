// Package fetcher downloads recipe pages. It sits outside the extraction
// pipeline: callers turn its errors into an "unreachable" result.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/dtnitsch/recipe-web-parser/models"
	"github.com/dtnitsch/recipe-web-parser/pkg/caching"
)

// ErrStatus is returned for any final response other than 200.
var ErrStatus = errors.New("unexpected HTTP status")

type Fetcher struct {
	client    *retryablehttp.Client
	userAgent string
	perHost   rate.Limit
	cache     *caching.Cache
	logger    zerolog.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// Option customises a Fetcher.
type Option func(*Fetcher)

// WithCache serves and stores page bodies through c.
func WithCache(c *caching.Cache) Option {
	return func(f *Fetcher) { f.cache = c }
}

func WithLogger(l zerolog.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// WithHTTPClient replaces the transport-level client, e.g. in tests.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client.HTTPClient = c }
}

func NewFetcher(cfg models.FetchConfig, opts ...Option) *Fetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.Retries
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.Logger = nil
	if cfg.Timeout > 0 {
		client.HTTPClient.Timeout = cfg.Timeout
	}

	perHost := rate.Inf
	if cfg.RatePerHost > 0 {
		perHost = rate.Limit(cfg.RatePerHost)
	}

	f := &Fetcher{
		client:    client,
		userAgent: cfg.UserAgent,
		perHost:   perHost,
		logger:    zerolog.Nop(),
		limiters:  make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GetHtml returns the page body as a string.
func (f *Fetcher) GetHtml(ctx context.Context, rawURL string) (string, error) {
	body, err := f.GetHtmlBytes(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetHtmlBytes returns the page body, from the cache when a fresh copy exists.
func (f *Fetcher) GetHtmlBytes(ctx context.Context, rawURL string) ([]byte, error) {
	if f.cache != nil {
		if data, ok := f.cache.Get(rawURL); ok {
			f.logger.Debug().Str("url", rawURL).Msg("cache hit")
			return data, nil
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if err := f.limiter(u.Host).Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if f.cache != nil {
		if err := f.cache.Set(rawURL, body); err != nil {
			f.logger.Warn().Err(err).Str("url", rawURL).Msg("cache write failed")
		}
	}
	return body, nil
}

// limiter returns the courtesy limiter for host, creating it on first use.
func (f *Fetcher) limiter(host string) *rate.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.limiters[host]
	if !ok {
		l = rate.NewLimiter(f.perHost, 1)
		f.limiters[host] = l
	}
	return l
}
