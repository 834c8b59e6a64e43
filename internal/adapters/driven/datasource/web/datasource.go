package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/sanumbers/internal/core/domain"
	"github.com/custodia-labs/sanumbers/internal/core/ports/driven"
	"github.com/custodia-labs/sanumbers/internal/logger"
)

// Ensure DataSource implements the interface.
var _ driven.DataSource = (*DataSource)(nil)

// Default configuration values.
const (
	DefaultTimeout = 15 * time.Second

	// MaxResourceSize bounds the body read for one province.
	MaxResourceSize = 8 << 20

	// defaultBackoff applies to a 429 without a usable Retry-After header.
	defaultBackoff = 30 * time.Second
)

// Config holds configuration for the HTTP data source.
type Config struct {
	// BaseURL is the data root, e.g. https://example.org/data (required).
	BaseURL string

	// RequestsPerSecond throttles fetches. Zero means unlimited.
	RequestsPerSecond int

	// Timeout is the per-request timeout (default: 15s).
	Timeout time.Duration

	// Client overrides the HTTP client. Timeout is ignored when set.
	Client *http.Client
}

// DataSource fetches <base_url>/<key>.json over HTTP.
type DataSource struct {
	client  *http.Client
	base    *url.URL
	limiter *rate.Limiter

	mu      sync.Mutex
	retryAt time.Time
}

// NewDataSource creates an HTTP data source.
func NewDataSource(cfg Config) (*DataSource, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("%w: base_url is required", domain.ErrInvalidInput)
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("%w: base_url: %w", domain.ErrInvalidInput, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: base_url must be http or https, got %q", domain.ErrInvalidInput, cfg.BaseURL)
	}
	if cfg.RequestsPerSecond < 0 {
		return nil, fmt.Errorf("%w: requests_per_second cannot be negative", domain.ErrInvalidInput)
	}

	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &DataSource{
		client:  client,
		base:    base,
		limiter: rate.NewLimiter(limit, 1),
	}, nil
}

// Fetch downloads the resource for key.
func (d *DataSource) Fetch(ctx context.Context, key string) ([]byte, error) {
	if key == "" || strings.ContainsAny(key, `/\?#`) || key == "." || key == ".." {
		return nil, fmt.Errorf("%w: invalid resource key %q", domain.ErrInvalidInput, key)
	}
	if err := d.wait(ctx); err != nil {
		return nil, err
	}

	target := d.URLFor(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	logger.Debug("GET %s", target)
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", target, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, target)
	case resp.StatusCode == http.StatusTooManyRequests:
		d.backoff(resp.Header.Get("Retry-After"))
		return nil, fmt.Errorf("get %s: rate limited (%s)", target, resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("get %s: unexpected status %s", target, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResourceSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}
	if len(data) > MaxResourceSize {
		return nil, fmt.Errorf("read %s: resource exceeds %d bytes", target, MaxResourceSize)
	}
	return data, nil
}

// URLFor returns the resource URL for key.
func (d *DataSource) URLFor(key string) string {
	return d.base.ResolveReference(&url.URL{Path: key + ".json"}).String()
}

// Describe returns the base URL.
func (d *DataSource) Describe() string {
	return strings.TrimSuffix(d.base.String(), "/")
}

// wait blocks for any 429 backoff and then for a limiter token.
func (d *DataSource) wait(ctx context.Context) error {
	d.mu.Lock()
	retryAt := d.retryAt
	d.mu.Unlock()

	if delay := time.Until(retryAt); delay > 0 {
		logger.Debug("Backing off %s after rate limit", delay.Round(time.Millisecond))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return d.limiter.Wait(ctx)
}

// backoff records a Retry-After value in seconds.
func (d *DataSource) backoff(retryAfter string) {
	delay := defaultBackoff
	if secs, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && secs >= 0 {
		delay = time.Duration(secs) * time.Second
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.retryAt = time.Now().Add(delay)
}
