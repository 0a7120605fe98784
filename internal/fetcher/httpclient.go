package fetcher

import (
	"log/slog"
	"time"

	"resty.dev/v3"
)

const (
	defaultRetryWaitTime    = 1 * time.Second
	defaultRetryMaxWaitTime = 10 * time.Second

	// DefaultUserAgent is sent when no user agent is configured. The exchange
	// endpoints reject requests without a browser-like agent.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"
)

// HTTPOptions controls how provider HTTP clients are built.
// Zero values mean: no client-side timeout and no retries.
type HTTPOptions struct {
	UserAgent  string
	Headers    map[string]string
	Timeout    time.Duration
	RetryCount int
}

// NewHTTPClient creates a resty client for a provider base URL.
// Retries with exponential backoff are only installed when RetryCount > 0.
func NewHTTPClient(baseURL string, opts HTTPOptions) *resty.Client {
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", ua)

	for k, v := range opts.Headers {
		client.SetHeader(k, v)
	}

	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	if opts.RetryCount > 0 {
		client.
			SetRetryCount(opts.RetryCount).
			SetRetryWaitTime(defaultRetryWaitTime).
			SetRetryMaxWaitTime(defaultRetryMaxWaitTime).
			AddRetryConditions(retryCondition).
			AddRetryHooks(retryHook)
	}

	return client
}

// retryCondition determines whether a request should be retried based on the response and error
func retryCondition(r *resty.Response, err error) bool {
	// Retry on network errors
	if err != nil {
		return true
	}

	switch code := r.StatusCode(); {
	case code >= 500:
		return true
	case code == 429, code == 408:
		return true
	default:
		return false
	}
}

// retryHook logs retry attempts for observability
func retryHook(r *resty.Response, err error) {
	if err != nil {
		slog.Debug("retrying request due to error",
			"url", r.Request.URL,
			"attempt", r.Request.Attempt,
			"error", err.Error())
		return
	}

	slog.Debug("retrying request due to status code",
		"url", r.Request.URL,
		"attempt", r.Request.Attempt,
		"status_code", r.StatusCode())
}
