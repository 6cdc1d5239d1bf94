package espn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/omarshaarawi/liveleaders/internal/cache"
	"github.com/omarshaarawi/liveleaders/internal/metrics"
)

const (
	DefaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports"
	userAgent      = "liveleaders/1.0"
	defaultTimeout = 10 * time.Second
)

var ErrUnexpectedStatus = errors.New("unexpected status code")

type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      cache.Cache
	metrics    metrics.Metrics
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithMetrics(m metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient builds a client for baseURL. A nil cache disables caching.
func NewClient(baseURL string, respCache cache.Cache, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		cache:      respCache,
		metrics:    metrics.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get decodes the JSON at endpoint into result. When cacheKey is set the raw
// body is served from and stored into the cache for ttl. Cache failures are
// logged and never fail the request.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string, cacheKey string, ttl time.Duration, result interface{}) error {
	if body, ok := c.cached(ctx, cacheKey); ok {
		if err := json.Unmarshal(body, result); err == nil {
			return nil
		}
		slog.Warn("Discarding undecodable cache entry", "key", cacheKey)
	}

	body, err := c.fetch(ctx, endpoint, params)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	if cacheKey != "" && c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, body, ttl); err != nil {
			slog.Warn("Error storing response in cache", "key", cacheKey, "error", err)
		}
	}
	return nil
}

func (c *Client) cached(ctx context.Context, key string) ([]byte, bool) {
	if key == "" || c.cache == nil {
		return nil, false
	}
	body, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("Error reading cache", "key", key, "error", err)
		ok = false
	}
	if ok {
		c.metrics.IncCacheHit()
	} else {
		c.metrics.IncCacheMiss()
	}
	return body, ok
}

func (c *Client) fetch(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	url := fmt.Sprintf("%s%s", c.baseURL, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	q := req.URL.Query()
	for key, value := range params {
		q.Add(key, strings.TrimSpace(value))
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}
	return body, nil
}
