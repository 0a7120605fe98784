package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strings"

	"resty.dev/v3"

	"financetools/internal/cache"
	"financetools/internal/ratelimit"
)

// Client performs JSON GET requests against one provider. Every call passes
// through the provider's outbound limiter and, when configured, a response cache.
type Client struct {
	api     ratelimit.API
	http    *resty.Client
	limiter *ratelimit.Limiter
	cache   cache.Cache
}

// Option configures a Client.
type Option func(*Client)

// WithLimiter throttles outbound calls with l.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithCache serves repeated requests from c.
func WithCache(c cache.Cache) Option {
	return func(cl *Client) {
		cl.cache = c
	}
}

// NewClient creates a provider client rooted at baseURL.
func NewClient(api ratelimit.API, baseURL string, opts HTTPOptions, options ...Option) *Client {
	c := &Client{
		api:  api,
		http: NewHTTPClient(baseURL, opts),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Provider returns the provider name used in errors and cache keys.
func (c *Client) Provider() string {
	return string(c.api)
}

// GetJSON issues GET path?query and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, path string, query map[string]string, out any) error {
	key := c.cacheKey(path, query)

	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			slog.Warn("response cache read failed", "provider", c.api, "error", err)
		} else if ok {
			return c.decode(body, out)
		}
	}

	body, err := c.get(ctx, path, query)
	if err != nil {
		return err
	}

	if err := c.decode(body, out); err != nil {
		return err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body); err != nil {
			slog.Warn("response cache write failed", "provider", c.api, "error", err)
		}
	}
	return nil
}

// Touch issues a GET and discards the body. The exchanges hand out session
// cookies on their landing pages that later API calls depend on.
func (c *Client) Touch(ctx context.Context, path string) error {
	_, err := c.get(ctx, path, nil)
	return err
}

func (c *Client) get(ctx context.Context, path string, query map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx, c.api); err != nil {
		return nil, ClassifyTransportError(c.Provider(), err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(path)

	if err != nil {
		return nil, ClassifyTransportError(c.Provider(), err)
	}

	if !resp.IsSuccess() {
		return nil, ClassifyHTTPError(c.Provider(), resp.StatusCode())
	}

	return resp.Bytes(), nil
}

func (c *Client) decode(body []byte, out any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return NewValidationError(c.Provider(), "empty response body")
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &FetchError{
			Type:     ErrorTypeValidation,
			Provider: c.Provider(),
			Message:  "response is not valid JSON",
			Cause:    err,
		}
	}
	return nil
}

func (c *Client) cacheKey(path string, query map[string]string) string {
	values := url.Values{}
	for k, v := range query {
		values.Set(k, v)
	}
	// Encode sorts by key, so equal queries share a key.
	return strings.Join([]string{string(c.api), path, values.Encode()}, "|")
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.http.Close()
}
