// Package yahoo is a client for the Yahoo Finance JSON endpoints.
package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"financetools/internal/fetcher"
	"financetools/internal/ratelimit"
	"financetools/internal/resolve"
)

// DefaultBaseURL is the Yahoo Finance query host.
const DefaultBaseURL = "https://query2.finance.yahoo.com"

// quoteSummary modules used by the market data tools.
const (
	ModuleFinancialData        = "financialData"
	ModulePrice                = "price"
	ModuleSummaryDetail        = "summaryDetail"
	ModuleSummaryProfile       = "summaryProfile"
	ModuleAssetProfile         = "assetProfile"
	ModuleKeyStatistics        = "defaultKeyStatistics"
	ModuleCalendarEvents       = "calendarEvents"
	ModuleInstitutionOwnership = "institutionOwnership"
	ModuleEarningsHistory      = "earningsHistory"
	ModuleUpgradeDowngrade     = "upgradeDowngradeHistory"
	ModuleSECFilings           = "secFilings"
	ModuleIncomeStatement      = "incomeStatementHistory"
	ModuleBalanceSheet         = "balanceSheetHistory"
	ModuleCashflow             = "cashflowStatementHistory"
)

// Config holds the Yahoo client settings.
type Config struct {
	BaseURL string
	// Crumb is appended to every request when set; some regions require it.
	Crumb string
	HTTP  fetcher.HTTPOptions
}

// Client fetches raw Yahoo Finance responses.
type Client struct {
	api   *fetcher.Client
	crumb string
}

// New creates a Yahoo Finance client.
func New(cfg Config, options ...fetcher.Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{
		api:   fetcher.NewClient(ratelimit.APIYahoo, cfg.BaseURL, cfg.HTTP, options...),
		crumb: cfg.Crumb,
	}
}

func (c *Client) getJSON(ctx context.Context, path string, query map[string]string, out any) error {
	if c.crumb != "" {
		if query == nil {
			query = map[string]string{}
		}
		query["crumb"] = c.crumb
	}
	return c.api.GetJSON(ctx, path, query, out)
}

// QuoteSummary returns the requested quoteSummary modules for symbol, keyed by module name.
func (c *Client) QuoteSummary(ctx context.Context, symbol string, modules ...string) (map[string]any, error) {
	var out map[string]any
	path := "/v10/finance/quoteSummary/" + url.PathEscape(symbol)
	query := map[string]string{"modules": strings.Join(modules, ",")}
	if err := c.getJSON(ctx, path, query, &out); err != nil {
		return nil, fmt.Errorf("quote summary %s: %w", symbol, err)
	}
	return c.firstResult(out, "quoteSummary", symbol)
}

// Options returns the option chain for symbol. A zero expiration selects the
// nearest listed expiration.
func (c *Client) Options(ctx context.Context, symbol string, expiration time.Time) (map[string]any, error) {
	var out map[string]any
	path := "/v7/finance/options/" + url.PathEscape(symbol)
	var query map[string]string
	if !expiration.IsZero() {
		query = map[string]string{"date": strconv.FormatInt(expiration.Unix(), 10)}
	}
	if err := c.getJSON(ctx, path, query, &out); err != nil {
		return nil, fmt.Errorf("options %s: %w", symbol, err)
	}
	return c.firstResult(out, "optionChain", symbol)
}

// News returns the news items the search endpoint associates with query.
func (c *Client) News(ctx context.Context, query string, count int) ([]map[string]any, error) {
	var out map[string]any
	params := map[string]string{
		"q":           query,
		"quotesCount": "0",
		"newsCount":   strconv.Itoa(count),
	}
	if err := c.getJSON(ctx, "/v1/finance/search", params, &out); err != nil {
		return nil, fmt.Errorf("news %s: %w", query, err)
	}
	items, _ := resolve.List(out, "news")
	return resolve.Maps(items), nil
}

// firstResult unwraps the {"<envelope>": {"result": [...], "error": ...}} shape
// shared by quoteSummary and options.
func (c *Client) firstResult(out map[string]any, envelope, symbol string) (map[string]any, error) {
	body := resolve.Path(out, envelope)
	if body == nil {
		return nil, fetcher.NewValidationError(c.api.Provider(), fmt.Sprintf("response for %s has no %s", symbol, envelope))
	}
	if e := resolve.Path(body, "error"); e != nil {
		msg := resolve.StringOr(e, "unknown error", "description", "code")
		return nil, fetcher.NewClientError(c.api.Provider(), 0, msg)
	}
	results, ok := resolve.List(body, "result")
	if !ok || len(results) == 0 {
		return nil, fetcher.NewValidationError(c.api.Provider(), fmt.Sprintf("no data found for %s", symbol))
	}
	first, ok := results[0].(map[string]any)
	if !ok {
		return nil, fetcher.NewValidationError(c.api.Provider(), fmt.Sprintf("unexpected result type %T", results[0]))
	}
	return first, nil
}
