package marketdata

import (
	"context"

	"financetools/internal/resolve"
	"financetools/internal/tool"
	"financetools/internal/yahoo"
)

const descriptionLimit = 200

func (a *Adapter) getCurrentStockPrice(ctx context.Context, args tool.Args) (tool.Fields, error) {
	ticker, err := args.Ticker("ticker")
	if err != nil {
		return nil, err
	}

	info, _, err := a.summary(ctx, ticker, yahoo.ModuleFinancialData, yahoo.ModulePrice, yahoo.ModuleSummaryDetail)
	if err != nil {
		return nil, err
	}

	price := resolve.Float(info,
		"currentPrice", "regularMarketPrice",
		"open", "regularMarketOpen",
		"previousClose", "regularMarketPreviousClose")

	return tool.Fields{
		"ticker":       ticker,
		"currency":     resolve.StringOr(info, "USD", "currency", "financialCurrency"),
		"price":        resolve.Optional(price),
		"company_name": resolve.StringOr(info, "N/A", "longName", "shortName"),
	}, nil
}

func (a *Adapter) getStockInfo(ctx context.Context, args tool.Args) (tool.Fields, error) {
	ticker, err := args.Ticker("ticker")
	if err != nil {
		return nil, err
	}

	info, _, err := a.summary(ctx, ticker, yahoo.ModulePrice, yahoo.ModuleAssetProfile, yahoo.ModuleSummaryProfile, yahoo.ModuleSummaryDetail)
	if err != nil {
		return nil, err
	}

	var marketCap any = "N/A"
	if mc := resolve.Float(info, "marketCap"); mc != nil {
		marketCap = *mc
	}

	description := "N/A"
	if s := resolve.String(info, "longBusinessSummary"); s != nil {
		description = truncate(*s, descriptionLimit) + "..."
	}

	return tool.Fields{
		"ticker":       ticker,
		"company_name": resolve.StringOr(info, "N/A", "longName", "shortName"),
		"sector":       resolve.StringOr(info, "N/A", "sector"),
		"industry":     resolve.StringOr(info, "N/A", "industry"),
		"market_cap":   marketCap,
		"description":  description,
	}, nil
}

func (a *Adapter) getValuationMetrics(ctx context.Context, args tool.Args) (tool.Fields, error) {
	ticker, err := args.Ticker("ticker")
	if err != nil {
		return nil, err
	}

	info, _, err := a.summary(ctx, ticker, yahoo.ModuleSummaryDetail, yahoo.ModuleKeyStatistics, yahoo.ModuleFinancialData)
	if err != nil {
		return nil, err
	}

	return tool.Fields{
		"ticker":           ticker,
		"pe_ratio":         resolve.Optional(resolve.Float(info, "trailingPE")),
		"forward_pe":       resolve.Optional(resolve.Float(info, "forwardPE")),
		"peg_ratio":        resolve.Optional(resolve.Float(info, "pegRatio", "trailingPegRatio")),
		"ev_to_ebitda":     resolve.Optional(resolve.Float(info, "enterpriseToEbitda")),
		"price_to_book":    resolve.Optional(resolve.Float(info, "priceToBook")),
		"enterprise_value": resolve.Optional(resolve.Float(info, "enterpriseValue")),
	}, nil
}

const maxPeers = 5

func (a *Adapter) getSectorComparison(ctx context.Context, args tool.Args) (tool.Fields, error) {
	ticker, err := args.Ticker("ticker")
	if err != nil {
		return nil, err
	}

	info, raw, err := a.summary(ctx, ticker, yahoo.ModuleAssetProfile, yahoo.ModuleSummaryProfile, yahoo.ModuleSummaryDetail, yahoo.ModuleUpgradeDowngrade)
	if err != nil {
		return nil, err
	}

	history := resolve.Maps(listOf(resolve.Path(raw, yahoo.ModuleUpgradeDowngrade), "history"))

	return tool.Fields{
		"ticker":      ticker,
		"sector":      resolve.StringOr(info, "N/A", "sector"),
		"sector_pe":   valueOr(info, "N/A", "sectorPE"),
		"sector_peg":  valueOr(info, "N/A", "sectorPEG"),
		"sector_pb":   valueOr(info, "N/A", "sectorPriceToBook"),
		"peers":       peers(history),
		"data_source": "Yahoo Finance quoteSummary",
	}, nil
}

// peers lists up to five distinct firms from the rating history. Rows without
// a firm column mean the history exists but cannot name peers.
func peers(history []map[string]any) []string {
	out := []string{}
	if len(history) == 0 {
		return out
	}
	seen := make(map[string]bool)
	hasFirmColumn := false
	for _, row := range history {
		firm := resolve.String(row, "firm", "Firm")
		if firm == nil {
			continue
		}
		hasFirmColumn = true
		if seen[*firm] {
			continue
		}
		seen[*firm] = true
		out = append(out, *firm)
		if len(out) == maxPeers {
			break
		}
	}
	if !hasFirmColumn {
		return []string{"Peer data unavailable"}
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func valueOr(m map[string]any, def any, keys ...string) any {
	if f := resolve.Float(m, keys...); f != nil {
		return *f
	}
	return def
}

func listOf(m map[string]any, keys ...string) []any {
	l, _ := resolve.List(m, keys...)
	return l
}
