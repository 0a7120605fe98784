// Package nse is a client for the National Stock Exchange of India JSON API.
package nse

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"financetools/internal/fetcher"
	"financetools/internal/ratelimit"
	"financetools/internal/resolve"
)

// DefaultBaseURL is the production NSE site; its API lives under /api.
const DefaultBaseURL = "https://www.nseindia.com"

// dateLayout is the dd-mm-yyyy format the historical endpoint expects.
const dateLayout = "02-01-2006"

// Config holds the NSE client settings.
type Config struct {
	BaseURL string
	HTTP    fetcher.HTTPOptions
	// PrimeSession fetches the landing page once before the first API call so
	// the API sees the session cookies it expects.
	PrimeSession bool
}

// Client fetches raw NSE responses.
type Client struct {
	api   *fetcher.Client
	prime bool
	once  sync.Once
}

// New creates an NSE client.
func New(cfg Config, options ...fetcher.Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	headers := map[string]string{"Referer": cfg.BaseURL + "/"}
	for k, v := range cfg.HTTP.Headers {
		headers[k] = v
	}
	cfg.HTTP.Headers = headers

	return &Client{
		api:   fetcher.NewClient(ratelimit.APINSE, cfg.BaseURL, cfg.HTTP, options...),
		prime: cfg.PrimeSession,
	}
}

func (c *Client) getJSON(ctx context.Context, path string, query map[string]string, out any) error {
	if c.prime {
		c.once.Do(func() {
			if err := c.api.Touch(ctx, "/"); err != nil {
				slog.Debug("nse session priming failed", "error", err)
			}
		})
	}
	return c.api.GetJSON(ctx, path, query, out)
}

// Quote returns the equity quote document for symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/api/quote-equity", map[string]string{"symbol": symbol}, &out); err != nil {
		return nil, fmt.Errorf("quote %s: %w", symbol, err)
	}
	return out, nil
}

// TradeInfo returns the trade_info section of the equity quote, which carries
// traded quantities.
func (c *Client) TradeInfo(ctx context.Context, symbol string) (map[string]any, error) {
	var out map[string]any
	query := map[string]string{"symbol": symbol, "section": "trade_info"}
	if err := c.getJSON(ctx, "/api/quote-equity", query, &out); err != nil {
		return nil, fmt.Errorf("trade info %s: %w", symbol, err)
	}
	return out, nil
}

// Index returns the live index document, whose data rows start with the index itself.
func (c *Client) Index(ctx context.Context, index string) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/api/equity-stockIndices", map[string]string{"index": index}, &out); err != nil {
		return nil, fmt.Errorf("index %s: %w", index, err)
	}
	return out, nil
}

// OptionChain returns the equity option chain document for symbol.
func (c *Client) OptionChain(ctx context.Context, symbol string) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/api/option-chain-equities", map[string]string{"symbol": symbol}, &out); err != nil {
		return nil, fmt.Errorf("option chain %s: %w", symbol, err)
	}
	return out, nil
}

// MarketStatus returns the market state document.
func (c *Client) MarketStatus(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/api/marketStatus", nil, &out); err != nil {
		return nil, fmt.Errorf("market status: %w", err)
	}
	return out, nil
}

// Historical returns daily EQ-series rows for symbol between from and to.
func (c *Client) Historical(ctx context.Context, symbol string, from, to time.Time) ([]map[string]any, error) {
	var out map[string]any
	query := map[string]string{
		"symbol": symbol,
		"series": `["EQ"]`,
		"from":   from.Format(dateLayout),
		"to":     to.Format(dateLayout),
	}
	if err := c.getJSON(ctx, "/api/historical/cm/equity", query, &out); err != nil {
		return nil, fmt.Errorf("historical %s: %w", symbol, err)
	}
	rows, ok := resolve.List(out, "data", "Data")
	if !ok {
		return nil, fetcher.NewValidationError(c.api.Provider(), "historical response has no data rows")
	}
	return resolve.Maps(rows), nil
}
