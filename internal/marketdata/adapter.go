// Package marketdata exposes Yahoo Finance data as tools.
package marketdata

import (
	"context"
	"time"

	"financetools/internal/resolve"
	"financetools/internal/tool"
	"financetools/internal/yahoo"
)

// Yahoo is the subset of the Yahoo client the tools depend on.
type Yahoo interface {
	QuoteSummary(ctx context.Context, symbol string, modules ...string) (map[string]any, error)
	Chart(ctx context.Context, symbol, rng, interval string) (*yahoo.ChartResult, error)
	Options(ctx context.Context, symbol string, expiration time.Time) (map[string]any, error)
	News(ctx context.Context, query string, count int) ([]map[string]any, error)
}

// Adapter maps Yahoo responses onto the market-data tools' output keys.
type Adapter struct {
	yahoo     Yahoo
	now       func() time.Time
	newsCount int
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) {
		a.now = now
	}
}

// WithNewsCount sets how many search results are pulled before relevance filtering.
func WithNewsCount(n int) Option {
	return func(a *Adapter) {
		if n > 0 {
			a.newsCount = n
		}
	}
}

// New creates an Adapter over a Yahoo client.
func New(y Yahoo, opts ...Option) *Adapter {
	a := &Adapter{yahoo: y, now: time.Now, newsCount: 50}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var (
	newsHints = tool.Hints{
		Resolution:    "Check API status or try again later",
		Documentation: "https://github.com/ranaroussi/yfinance/issues/1956",
	}
	sectorHints = tool.Hints{
		Resolution:    "Verify ticker symbol or check API status",
		Documentation: "https://github.com/ranaroussi/yfinance/wiki/Ticker#recommendations",
	}
)

func tickerSchema() map[string]any {
	return tool.Object(map[string]any{
		"ticker": tool.StringProp("Ticker symbol, e.g. AAPL"),
	}, "ticker")
}

// Tools returns the market-data tool set.
func (a *Adapter) Tools() []tool.Tool {
	return []tool.Tool{
		{
			Definition: tool.Definition{
				Name:        "get_current_stock_price",
				Description: "Get current stock price for a given ticker symbol",
				InputSchema: tickerSchema(),
			},
			Handler: tool.Wrap("Price lookup", tool.Hints{}, a.getCurrentStockPrice),
		},
		{
			Definition: tool.Definition{
				Name:        "get_historical_stock_splits",
				Description: "Get list of historical stock splits for a given ticker symbol",
				InputSchema: tickerSchema(),
			},
			Handler: tool.Wrap("Stock splits lookup", tool.Hints{}, a.getHistoricalStockSplits),
		},
		{
			Definition: tool.Definition{
				Name:        "get_stock_info",
				Description: "Get basic company information for a given ticker symbol",
				InputSchema: tickerSchema(),
			},
			Handler: tool.Wrap("Stock info lookup", tool.Hints{}, a.getStockInfo),
		},
		{
			Definition: tool.Definition{
				Name:        "get_financials",
				Description: "Get financial statements (income, balance sheet, cash flow)",
				InputSchema: tool.Object(map[string]any{
					"ticker":         tool.StringProp("Ticker symbol"),
					"statement_type": tool.StringPropDefault("One of income, balance, cashflow", "income"),
				}, "ticker"),
			},
			Handler: a.financialsHandler(),
		},
		{
			Definition: tool.Definition{
				Name:        "get_dividend_analysis",
				Description: "Get dividend history and yield analysis",
				InputSchema: tickerSchema(),
			},
			Handler: tool.Wrap("Dividend analysis", tool.Hints{}, a.getDividendAnalysis),
		},
		{
			Definition: tool.Definition{
				Name:        "get_institutional_holders",
				Description: "Get institutional holders and their ownership details",
				InputSchema: tickerSchema(),
			},
			Handler: tool.Wrap("Institutional holders lookup", tool.Hints{}, a.getInstitutionalHolders),
		},
		{
			Definition: tool.Definition{
				Name:        "get_options_chain",
				Description: "Retrieve the options chain for one expiration",
				InputSchema: tool.Object(map[string]any{
					"ticker":     tool.StringProp("Ticker symbol"),
					"expiration": tool.StringProp("Expiration date YYYY-MM-DD; defaults to the nearest"),
				}, "ticker"),
			},
			Handler: tool.Wrap("Options chain retrieval", tool.Hints{}, a.getOptionsChain),
		},
		{
			Definition: tool.Definition{
				Name:        "get_news_sentiment",
				Description: "Keyword sentiment over recent news that lists the ticker",
				InputSchema: tool.Object(map[string]any{
					"ticker": tool.StringProp("Ticker symbol"),
					"days":   tool.IntegerProp("Lookback window in days", 7),
				}, "ticker"),
			},
			Handler: tool.Wrap("News analysis", newsHints, a.getNewsSentiment),
		},
		{
			Definition: tool.Definition{
				Name:        "get_valuation_metrics",
				Description: "Get valuation metrics",
				InputSchema: tickerSchema(),
			},
			Handler: tool.Wrap("Valuation metrics", tool.Hints{}, a.getValuationMetrics),
		},
		{
			Definition: tool.Definition{
				Name:        "get_sector_comparison",
				Description: "Compare company metrics against sector figures",
				InputSchema: tickerSchema(),
			},
			Handler: tool.Wrap("Sector analysis", sectorHints, a.getSectorComparison),
		},
		{
			Definition: tool.Definition{
				Name:        "get_risk_metrics",
				Description: "Calculate volatility and risk metrics from one year of daily closes",
				InputSchema: tickerSchema(),
			},
			Handler: tool.Wrap("Risk assessment", tool.Hints{}, a.getRiskMetrics),
		},
		{
			Definition: tool.Definition{
				Name:        "get_earnings_analysis",
				Description: "Analyze historical earnings and estimates",
				InputSchema: tickerSchema(),
			},
			Handler: tool.Wrap("Earnings analysis", tool.Hints{}, a.getEarningsAnalysis),
		},
		{
			Definition: tool.Definition{
				Name:        "get_sec_filings",
				Description: "Retrieve SEC filings metadata",
				InputSchema: tool.Object(map[string]any{
					"ticker":      tool.StringProp("Ticker symbol"),
					"filing_type": tool.StringPropDefault("Form type such as 10-K or 10-Q", "10-K"),
				}, "ticker"),
			},
			Handler: tool.Wrap("SEC filings retrieval", tool.Hints{}, a.getSECFilings),
		},
	}
}

// summary fetches quoteSummary modules and flattens them into one map.
// Modules listed first win on key collisions.
func (a *Adapter) summary(ctx context.Context, symbol string, modules ...string) (map[string]any, map[string]any, error) {
	raw, err := a.yahoo.QuoteSummary(ctx, symbol, modules...)
	if err != nil {
		return nil, nil, err
	}
	parts := make([]map[string]any, 0, len(modules))
	for _, m := range modules {
		parts = append(parts, resolve.Path(raw, m))
	}
	return resolve.Merge(parts...), raw, nil
}
