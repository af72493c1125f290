// Package nse is a typed client for the public NSE India web data surface.
// Endpoints sit behind browser checks, so the client keeps a cookie session
// warmed from the home page and replays requests when the session expires.
package nse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"
)

const (
	defaultBaseURL     = "https://www.nseindia.com/api"
	defaultHomeURL     = "https://www.nseindia.com"
	defaultArchivesURL = "https://archives.nseindia.com"
	defaultIndicesURL  = "https://niftyindices.com"

	defaultHTTPTimeout      = 30 * time.Second
	defaultMaxRetries       = 3
	defaultRetryBackoffBase = 150 * time.Millisecond
)

// browserHeaders are sent on every request; without them the upstream returns
// 401 or an HTML challenge page.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "*/*",
	"Accept-Language": "en-US,en;q=0.9",
	"Connection":      "keep-alive",
}

// FetchStrategy lets callers replace the built-in transport, for example to
// route requests through a headless browser or a recorded session.
type FetchStrategy interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Client wraps access to the NSE public data endpoints.
type Client struct {
	baseURL     string
	homeURL     string
	archivesURL string
	indicesURL  string
	httpClient  *http.Client
	maxRetries  int
	logger      *log.Logger
	strategy    FetchStrategy
	now         func() time.Time

	warmMu sync.Mutex
	warmed bool

	symbolsMu  sync.RWMutex
	fnoSymbols []string
	eqSymbols  map[string]struct{}
	indexNames []string
}

// Option configures a new Client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client. A cookie jar is attached if
// the client has none, since the session cookies are what keep the endpoints
// reachable.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the default API root.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithHomeURL overrides the page fetched to warm the cookie session.
func WithHomeURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.homeURL = url
		}
	}
}

// WithArchivesURL overrides the static archives host.
func WithArchivesURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.archivesURL = url
		}
	}
}

// WithIndicesURL overrides the niftyindices host used for index history.
func WithIndicesURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.indicesURL = url
		}
	}
}

// WithMaxRetries adjusts the retry budget.
func WithMaxRetries(max int) Option {
	return func(c *Client) {
		if max >= 0 {
			c.maxRetries = max
		}
	}
}

// WithLogger injects a custom logger (defaults to log.Default()).
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithFetchStrategy replaces the built-in HTTP transport entirely.
func WithFetchStrategy(s FetchStrategy) Option {
	return func(c *Client) {
		if s != nil {
			c.strategy = s
		}
	}
}

// WithClock overrides the time source. Expiry filtering and trading day
// arithmetic read the clock, so tests pin it.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient constructs an NSE API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:     defaultBaseURL,
		homeURL:     defaultHomeURL,
		archivesURL: defaultArchivesURL,
		indicesURL:  defaultIndicesURL,
		maxRetries:  defaultMaxRetries,
		logger:      log.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if client.httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err == nil {
			client.httpClient.Jar = jar
		}
	}
	if client.logger == nil {
		client.logger = log.Default()
	}
	return client
}

// Now returns the client clock's current time.
func (c *Client) Now() time.Time {
	return c.now()
}

// warmSession fetches the home page to pick up session cookies. Callers hold
// no assumptions about cookie lifetime; fetchBytes re-warms on 401/403.
func (c *Client) warmSession(ctx context.Context, force bool) error {
	c.warmMu.Lock()
	defer c.warmMu.Unlock()
	if c.warmed && !force {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.homeURL, nil)
	if err != nil {
		return fmt.Errorf("nse: build warmup request: %w", err)
	}
	applyHeaders(req)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("nse: warmup: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("nse: warmup http status %d", resp.StatusCode)
	}
	c.warmed = true
	return nil
}

// fetchBytes performs a GET against url with the session warmed, retrying
// transport failures with exponential backoff. A 401 or 403 forces a session
// re-warm before the next attempt.
func (c *Client) fetchBytes(ctx context.Context, url string) ([]byte, error) {
	if c.strategy != nil {
		return c.strategy.Fetch(ctx, url)
	}
	if err := c.warmSession(ctx, false); err != nil {
		return nil, err
	}
	var lastErr error
	backoff := defaultRetryBackoffBase
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("nse: build request: %w", err)
		}
		applyHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("nse: read response: %w", readErr)
			case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
				c.logf("nse: http %d for %s, re-warming session", resp.StatusCode, url)
				if err := c.warmSession(ctx, true); err != nil {
					lastErr = err
				} else {
					lastErr = fmt.Errorf("nse: http status %d", resp.StatusCode)
				}
			case resp.StatusCode < 200 || resp.StatusCode >= 300:
				lastErr = fmt.Errorf("nse: http status %d: %s", resp.StatusCode, string(body))
			default:
				return body, nil
			}
		}

		if attempt < c.maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("nse: request failed without error detail")
}

// fetchJSON fetches url and decodes the body into result. A decode failure
// usually means the session served an HTML challenge page instead of JSON, so
// the session is re-warmed and the request replayed once before giving up.
func (c *Client) fetchJSON(ctx context.Context, url string, result interface{}) error {
	body, err := c.fetchBytes(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err == nil {
		return nil
	}
	if c.strategy != nil {
		return fmt.Errorf("%w: decode %s", ErrUpstreamData, url)
	}
	c.logf("nse: decode failure for %s, re-warming session", url)
	if err := c.warmSession(ctx, true); err != nil {
		return err
	}
	body, err = c.fetchBytes(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrUpstreamData, url, err)
	}
	return nil
}

// postJSON posts a JSON payload and decodes the response. Used only for the
// niftyindices host, which takes POST bodies instead of query parameters.
func (c *Client) postJSON(ctx context.Context, url string, payload, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("nse: encode request: %w", err)
	}
	var lastErr error
	backoff := defaultRetryBackoffBase
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("nse: build request: %w", err)
		}
		applyHeaders(req)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
		} else {
			respBody, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("nse: read response: %w", readErr)
			case resp.StatusCode < 200 || resp.StatusCode >= 300:
				lastErr = fmt.Errorf("nse: http status %d: %s", resp.StatusCode, string(respBody))
			default:
				if err := json.Unmarshal(respBody, result); err != nil {
					return fmt.Errorf("%w: decode %s: %v", ErrUpstreamData, url, err)
				}
				return nil
			}
		}

		if attempt < c.maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("nse: request failed without error detail")
}

// logf prints debug output when a logger is configured.
func (c *Client) logf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

func applyHeaders(req *http.Request) {
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
}
