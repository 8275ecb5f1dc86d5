package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/newsagg/internal/core/domain"
)

const (
	// DefaultTimeout bounds a whole fetch, including rate limiter waits.
	DefaultTimeout = 10 * time.Second

	// DefaultRate is the default request rate per provider (requests/sec).
	DefaultRate = 1.0

	// maxBodyBytes caps the response body read from a provider.
	maxBodyBytes = 32 << 20
)

// Config holds the settings shared by every provider adapter.
type Config struct {
	// APIKey is sent as a query parameter. Never logged.
	APIKey string

	// BaseURL is the API root, e.g. https://newsapi.org.
	BaseURL string

	// Timeout bounds one fetch. Zero means DefaultTimeout.
	Timeout time.Duration

	// RequestsPerSecond throttles requests. Zero means DefaultRate.
	RequestsPerSecond float64
}

// WithDefaults returns a copy with zero fields replaced by defaults.
func (c Config) WithDefaults(baseURL string) Config {
	if c.BaseURL == "" {
		c.BaseURL = baseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = DefaultRate
	}
	return c
}

// APIError is a non-2xx response from a provider.
type APIError struct {
	StatusCode int
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d from %s", e.StatusCode, e.Endpoint)
}

// Client performs rate-limited JSON GET requests against one provider.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	timeout time.Duration
}

// NewClient creates a client for the given configuration.
// Call cfg.WithDefaults first; zero values are not re-defaulted here.
func NewClient(cfg Config) *Client {
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		timeout: cfg.Timeout,
	}
}

// GetJSON fetches rawURL and decodes the JSON body into out.
//
// Errors wrap one of domain.ErrProviderTimeout, domain.ErrProviderTransport
// or domain.ErrMalformedPayload.
func (c *Client) GetJSON(ctx context.Context, rawURL string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := redact(rawURL)

	if err := c.limiter.Wait(ctx); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return fmt.Errorf("%w: %s: %w", domain.ErrProviderTransport, endpoint, ctx.Err())
		}
		return fmt.Errorf("%w: %s: waiting for rate limiter: %v", domain.ErrProviderTimeout, endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: building request for %s: %v", domain.ErrProviderTransport, endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "newsagg")

	resp, err := c.http.Do(req)
	if err != nil {
		return classify(ctx, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %w", domain.ErrProviderTransport, &APIError{StatusCode: resp.StatusCode, Endpoint: endpoint})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return classify(ctx, endpoint, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", domain.ErrMalformedPayload, endpoint, err)
	}
	return nil
}

// classify maps a transport-level error to a provider error sentinel.
func classify(ctx context.Context, endpoint string, err error) error {
	// url.Error embeds the full URL, API key included
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", domain.ErrProviderTimeout, endpoint, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %s: %v", domain.ErrProviderTimeout, endpoint, err)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrProviderTransport, endpoint, err)
}

// redact strips the query string so API keys never reach logs or errors.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid url>"
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}
