package indian

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"financetools/internal/fetcher"
	"financetools/internal/resolve"
	"financetools/internal/tool"
)

func (a *Adapter) getNSEQuote(ctx context.Context, args tool.Args) (tool.Fields, error) {
	symbol, err := args.Ticker("ticker")
	if err != nil {
		return nil, err
	}
	return a.nseQuote(ctx, symbol)
}

func (a *Adapter) nseQuote(ctx context.Context, symbol string) (tool.Fields, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	quote, err := a.nse.Quote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	priceInfo := resolve.Path(quote, "priceInfo")
	if priceInfo == nil {
		return nil, fetcher.NewValidationError("nse", fmt.Sprintf("no price information for %s", symbol))
	}
	dayRange := resolve.Path(priceInfo, "intraDayHighLow")
	weekRange := resolve.Path(priceInfo, "weekHighLow")

	high52 := resolve.Float(weekRange, "max")
	if high52 == nil {
		high52 = resolve.Float(priceInfo, "high52")
	}
	low52 := resolve.Float(weekRange, "min")
	if low52 == nil {
		low52 = resolve.Float(priceInfo, "low52")
	}

	return tool.Fields{
		"ticker":       symbol,
		"last_price":   resolve.Optional(resolve.Float(priceInfo, "lastPrice")),
		"open":         resolve.Optional(resolve.Float(priceInfo, "open")),
		"high":         resolve.Optional(resolve.Float(dayRange, "max")),
		"low":          resolve.Optional(resolve.Float(dayRange, "min")),
		"volume":       resolve.Optional(a.nseVolume(ctx, symbol, quote)),
		"52_week_high": resolve.Optional(high52),
		"52_week_low":  resolve.Optional(low52),
		"timestamp":    a.now().Format(time.RFC3339),
	}, nil
}

// nseVolume reads the traded quantity from the quote, fetching the trade_info
// section when the quote does not carry it. Failure leaves volume unresolved.
func (a *Adapter) nseVolume(ctx context.Context, symbol string, quote map[string]any) *int64 {
	section := resolve.Path(quote, "securityWiseDP")
	if section == nil {
		info, err := a.nse.TradeInfo(ctx, symbol)
		if err != nil {
			slog.WarnContext(ctx, "nse trade info unavailable", "symbol", symbol, "error", err)
			return nil
		}
		section = resolve.Path(info, "securityWiseDP")
		if section == nil {
			section = resolve.Path(info, "marketDeptOrderBook", "tradeInfo")
		}
	}
	return resolve.Int(section, "quantityTraded", "totalTradedVolume")
}

func (a *Adapter) getNSEIndices(ctx context.Context, args tool.Args) (tool.Fields, error) {
	index := args.String("index", DefaultIndex)

	doc, err := a.nse.Index(ctx, index)
	if err != nil {
		return nil, err
	}

	rows := resolve.Maps(listOrEmpty(doc, "data"))
	if len(rows) == 0 {
		return nil, fetcher.NewValidationError("nse", fmt.Sprintf("no data for index %s", index))
	}

	head := rows[0]
	constituents := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if s := resolve.String(row, "symbol"); s != nil {
			constituents = append(constituents, *s)
		}
	}

	return tool.Fields{
		"index":        strings.ToUpper(index),
		"current":      resolve.Optional(resolve.Float(head, "last", "lastPrice")),
		"change":       resolve.Optional(resolve.Float(head, "change", "variation")),
		"52_week_high": resolve.Optional(resolve.Float(head, "yearHigh", "high52")),
		"constituents": constituents,
	}, nil
}

func (a *Adapter) getBSEQuote(ctx context.Context, args tool.Args) (tool.Fields, error) {
	code, err := scripCode(args["scrip_code"])
	if err != nil {
		return nil, err
	}
	return a.bseQuote(ctx, code)
}

func (a *Adapter) bseQuote(ctx context.Context, code int) (tool.Fields, error) {
	quote, err := a.bse.Quote(ctx, code)
	if err != nil {
		return nil, err
	}

	m := resolve.Merge(resolve.Path(quote, "Header"), resolve.Path(quote, "CurrRate"), quote)

	return tool.Fields{
		"scrip_code":    code,
		"exchange":      "BSE",
		"current_price": resolve.Optional(resolve.Float(m, "currentValue", "lastPrice", "ltp", "LTP")),
		"day_high":      resolve.Optional(resolve.Float(m, "high", "dayHigh", "High")),
		"day_low":       resolve.Optional(resolve.Float(m, "low", "dayLow", "Low")),
		"volume":        resolve.Optional(resolve.Int(m, "totalTradedVolume", "totalTradeQuantity", "TTQ")),
		"last_update":   resolve.Optional(resolve.String(m, "lastUpdateTime", "Ason")),
		"security_name": resolve.Optional(resolve.String(m, "securityID", "SecurityId", "ScripName")),
	}, nil
}

func (a *Adapter) getBSECorporateActions(ctx context.Context, args tool.Args) (tool.Fields, error) {
	code, err := scripCode(args["scrip_code"])
	if err != nil {
		return nil, err
	}

	doc, err := a.bse.Actions(ctx, code)
	if err != nil {
		return nil, err
	}

	var actions []any
	switch v := doc.(type) {
	case []any:
		actions = v
	case map[string]any:
		actions = listOrEmpty(v, "Table", "Table2", "data")
	default:
		return nil, fetcher.NewValidationError("bse", fmt.Sprintf("unexpected corporate actions type %T", doc))
	}

	dividends := []map[string]any{}
	splits := []map[string]any{}
	for _, action := range resolve.Maps(actions) {
		purpose := resolve.StringOr(action, "", "purpose", "Purpose", "PURPOSE")
		if strings.HasPrefix(purpose, "Dividend") {
			dividends = append(dividends, action)
		}
		if strings.Contains(purpose, "Split") {
			splits = append(splits, action)
		}
	}

	return tool.Fields{
		"scrip_code": code,
		"dividends":  dividends,
		"splits":     splits,
	}, nil
}

// getIndianStockInfo routes on the ticker's shape: SYMBOL.SUFFIX goes to NSE,
// all digits to BSE, anything else to NSE with BSE as the fallback.
func (a *Adapter) getIndianStockInfo(ctx context.Context, args tool.Args) (tool.Fields, error) {
	ticker := args.String("ticker", "")
	if ticker == "" {
		return nil, fetcher.NewValidationError("", "ticker is required")
	}

	switch {
	case strings.Contains(ticker, "."):
		symbol, _, _ := strings.Cut(ticker, ".")
		return a.nseQuote(ctx, symbol)
	case tool.IsDigits(ticker):
		code, err := strconv.Atoi(ticker)
		if err != nil {
			return nil, fetcher.NewValidationError("", fmt.Sprintf("scrip_code %q out of range", ticker))
		}
		return a.bseQuote(ctx, code)
	}

	fields, nseErr := a.nseQuote(ctx, ticker)
	if nseErr == nil {
		return fields, nil
	}
	slog.InfoContext(ctx, "nse lookup failed, trying bse", "ticker", ticker, "error", nseErr)

	code, err := scripCode(ticker)
	if err != nil {
		return nil, fmt.Errorf("nse: %v; bse: %w", nseErr, err)
	}
	return a.bseQuote(ctx, code)
}

func scripCode(v any) (int, error) {
	code, err := tool.IntegerLike(v)
	if err != nil {
		return 0, fetcher.NewValidationError("", "scrip_code "+err.Error())
	}
	return code, nil
}

func listOrEmpty(m map[string]any, keys ...string) []any {
	l, _ := resolve.List(m, keys...)
	return l
}
