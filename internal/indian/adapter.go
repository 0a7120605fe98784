package indian

import (
	"time"

	"financetools/internal/tool"
)

// DefaultIndex is used when get_nse_indices is called without an index.
const DefaultIndex = "NIFTY 50"

// IST is India Standard Time. It has no daylight saving, so a fixed zone is exact.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// Adapter maps NSE and BSE responses onto the exchange tools' output keys.
type Adapter struct {
	nse NSE
	bse BSE
	now func() time.Time
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) {
		a.now = now
	}
}

// New creates an Adapter over the two exchange clients.
func New(nse NSE, bse BSE, opts ...Option) *Adapter {
	a := &Adapter{nse: nse, bse: bse, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var bseQuoteHints = tool.Hints{
	Resolution:    "Verify scrip code or check API status",
	Documentation: "https://bseindia.com/api/equityapi/documentation",
}

// Tools returns the exchange tool set.
func (a *Adapter) Tools() []tool.Tool {
	return []tool.Tool{
		{
			Definition: tool.Definition{
				Name:        "get_nse_quote",
				Description: "Get real-time NSE quote for a stock symbol",
				InputSchema: tool.Object(map[string]any{
					"ticker": tool.StringProp("NSE symbol, e.g. RELIANCE"),
				}, "ticker"),
			},
			Handler: tool.Wrap("NSE quote", tool.Hints{}, a.getNSEQuote),
		},
		{
			Definition: tool.Definition{
				Name:        "get_nse_indices",
				Description: "Get real-time index values for NSE indices",
				InputSchema: tool.Object(map[string]any{
					"index": tool.StringPropDefault("Index name", DefaultIndex),
				}),
			},
			Handler: tool.Wrap("NSE index", tool.Hints{}, a.getNSEIndices),
		},
		{
			Definition: tool.Definition{
				Name:        "get_bse_quote",
				Description: "Get real-time BSE quote for a scrip code",
				InputSchema: tool.Object(map[string]any{
					"scrip_code": tool.CodeProp("BSE scrip code, e.g. 500325"),
				}, "scrip_code"),
			},
			Handler: tool.Wrap("BSE quote", bseQuoteHints, a.getBSEQuote),
		},
		{
			Definition: tool.Definition{
				Name:        "get_bse_corporate_actions",
				Description: "Get corporate actions (dividends, splits) for BSE-listed stocks",
				InputSchema: tool.Object(map[string]any{
					"scrip_code": tool.CodeProp("BSE scrip code"),
				}, "scrip_code"),
			},
			Handler: tool.Wrap("BSE corporate actions", tool.Hints{}, a.getBSECorporateActions),
		},
		{
			Definition: tool.Definition{
				Name:        "get_indian_stock_info",
				Description: "Unified stock info: SYMBOL.NS goes to NSE, digits to BSE, anything else tries NSE then BSE",
				InputSchema: tool.Object(map[string]any{
					"ticker": tool.StringProp("NSE symbol or BSE scrip code"),
				}, "ticker"),
			},
			Handler: tool.Wrap("Stock info", tool.Hints{}, a.getIndianStockInfo),
		},
		{
			Definition: tool.Definition{
				Name:        "get_historical_data",
				Description: "Get historical daily prices for an NSE symbol or BSE scrip code",
				InputSchema: tool.Object(map[string]any{
					"ticker": tool.StringProp("NSE symbol or BSE scrip code"),
					"period": tool.StringPropDefault("Lookback such as 5d, 3mo, 1y, ytd or max", "1y"),
				}, "ticker"),
			},
			Handler: tool.Wrap("Historical data", tool.Hints{}, a.getHistoricalData),
		},
		{
			Definition: tool.Definition{
				Name:        "get_indian_option_chain",
				Description: "Get options chain summary for NSE F&O stocks",
				InputSchema: tool.Object(map[string]any{
					"ticker": tool.StringProp("NSE F&O symbol"),
				}, "ticker"),
			},
			Handler: tool.Wrap("Option chain", tool.Hints{}, a.getOptionChain),
		},
		{
			Definition: tool.Definition{
				Name:        "get_market_status",
				Description: "Get live market status for Indian exchanges",
				InputSchema: tool.Object(map[string]any{}),
			},
			Handler: tool.Wrap("Market status check", tool.Hints{}, a.getMarketStatus),
		},
	}
}
