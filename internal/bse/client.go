// Package bse is a client for the Bombay Stock Exchange JSON API.
package bse

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"financetools/internal/fetcher"
	"financetools/internal/ratelimit"
	"financetools/internal/resolve"
)

// DefaultBaseURL is the production BSE API host.
const DefaultBaseURL = "https://api.bseindia.com"

const (
	quotePath      = "/BseIndiaAPI/api/getScripHeaderData/w"
	actionsPath    = "/BseIndiaAPI/api/CorporateAction/w"
	statusPath     = "/BseIndiaAPI/api/MarketStatus/w"
	historicalPath = "/BseIndiaAPI/api/StockReachGraph/w"

	dateLayout = "20060102"
)

// Config holds the BSE client settings.
type Config struct {
	BaseURL string
	// SiteURL is sent as Referer/Origin; the API refuses requests without them.
	SiteURL string
	HTTP    fetcher.HTTPOptions
}

// Client fetches raw BSE responses.
type Client struct {
	api *fetcher.Client
}

// New creates a BSE client.
func New(cfg Config, options ...fetcher.Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.SiteURL == "" {
		cfg.SiteURL = "https://www.bseindia.com"
	}
	headers := map[string]string{
		"Referer": cfg.SiteURL + "/",
		"Origin":  cfg.SiteURL,
	}
	for k, v := range cfg.HTTP.Headers {
		headers[k] = v
	}
	cfg.HTTP.Headers = headers

	return &Client{api: fetcher.NewClient(ratelimit.APIBSE, cfg.BaseURL, cfg.HTTP, options...)}
}

// Quote returns the scrip header document for a scrip code.
func (c *Client) Quote(ctx context.Context, scripCode int) (map[string]any, error) {
	var out map[string]any
	query := map[string]string{
		"Debtflag":  "",
		"scripcode": strconv.Itoa(scripCode),
		"seriesid":  "",
	}
	if err := c.api.GetJSON(ctx, quotePath, query, &out); err != nil {
		return nil, fmt.Errorf("quote %d: %w", scripCode, err)
	}
	return out, nil
}

// Actions returns the corporate actions document. Depending on the API version
// it is either a bare list or an object holding the list.
func (c *Client) Actions(ctx context.Context, scripCode int) (any, error) {
	var out any
	if err := c.api.GetJSON(ctx, actionsPath, map[string]string{"scripcode": strconv.Itoa(scripCode)}, &out); err != nil {
		return nil, fmt.Errorf("corporate actions %d: %w", scripCode, err)
	}
	return out, nil
}

// MarketStatus returns the exchange session document.
func (c *Client) MarketStatus(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.api.GetJSON(ctx, statusPath, nil, &out); err != nil {
		return nil, fmt.Errorf("market status: %w", err)
	}
	return out, nil
}

// Historical returns daily price rows for a scrip code between from and to.
// The endpoint nests its rows as a JSON string under "Data".
func (c *Client) Historical(ctx context.Context, scripCode int, from, to time.Time) ([]map[string]any, error) {
	var out map[string]any
	query := map[string]string{
		"scripcode": strconv.Itoa(scripCode),
		"flag":      "",
		"fromdate":  from.Format(dateLayout),
		"todate":    to.Format(dateLayout),
		"seriesid":  "",
	}
	if err := c.api.GetJSON(ctx, historicalPath, query, &out); err != nil {
		return nil, fmt.Errorf("historical %d: %w", scripCode, err)
	}

	raw, ok := resolve.Value(out, "Data", "data", "Table")
	if !ok {
		return nil, fetcher.NewValidationError(c.api.Provider(), "historical response has no data rows")
	}
	if s, isString := raw.(string); isString {
		var rows []any
		if err := json.Unmarshal([]byte(s), &rows); err != nil {
			return nil, &fetcher.FetchError{
				Type:     fetcher.ErrorTypeValidation,
				Provider: c.api.Provider(),
				Message:  "historical data field is not a JSON array",
				Cause:    err,
			}
		}
		raw = rows
	}
	rows, ok := raw.([]any)
	if !ok {
		return nil, fetcher.NewValidationError(c.api.Provider(), fmt.Sprintf("historical data has unexpected type %T", raw))
	}
	return resolve.Maps(rows), nil
}
