package marketdata

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"financetools/internal/analytics"
	"financetools/internal/fetcher"
	"financetools/internal/resolve"
	"financetools/internal/tool"
	"financetools/internal/yahoo"
)

const splitDateLayout = "Monday, January 02, 2006"

func (a *Adapter) getHistoricalStockSplits(ctx context.Context, args tool.Args) (tool.Fields, error) {
	ticker, err := args.Ticker("ticker")
	if err != nil {
		return nil, err
	}

	chart, err := a.yahoo.Chart(ctx, ticker, "max", "1mo")
	if err != nil {
		return nil, err
	}

	splits := chart.SortedSplits()
	if len(splits) == 0 {
		return tool.Fields{
			"ticker":  ticker,
			"total":   0,
			"history": []map[string]any{},
			"message": "No stock splits found",
		}, nil
	}

	history := make([]map[string]any, 0, len(splits))
	for _, s := range splits {
		history = append(history, map[string]any{
			"date":  time.Unix(s.Date, 0).UTC().Format(splitDateLayout),
			"ratio": s.Ratio(),
		})
	}

	return tool.Fields{
		"ticker":  ticker,
		"total":   len(history),
		"history": history,
	}, nil
}

func (a *Adapter) getDividendAnalysis(ctx context.Context, args tool.Args) (tool.Fields, error) {
	ticker, err := args.Ticker("ticker")
	if err != nil {
		return nil, err
	}

	var (
		info  map[string]any
		raw   map[string]any
		chart *yahoo.ChartResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, raw, err = a.summary(gctx, ticker, yahoo.ModuleSummaryDetail, yahoo.ModuleCalendarEvents)
		return err
	})
	g.Go(func() error {
		var err error
		chart, err = a.yahoo.Chart(gctx, ticker, "max", "1mo")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	events := chart.SortedDividends()
	divs := make([]analytics.Dividend, 0, len(events))
	for _, e := range events {
		divs = append(divs, analytics.Dividend{Date: time.Unix(e.Date, 0).UTC(), Amount: e.Amount})
	}

	next := resolve.StringOr(resolve.Path(raw, yahoo.ModuleCalendarEvents), "N/A", "exDividendDate", "dividendDate")

	return tool.Fields{
		"ticker":             ticker,
		"dividend_yield":     valueOr(info, 0.0, "dividendYield", "trailingAnnualDividendYield"),
		"payout_ratio":       valueOr(info, 0.0, "payoutRatio"),
		"annual_dividends":   analytics.AnnualDividends(divs),
		"next_dividend_date": next,
	}, nil
}

func (a *Adapter) getRiskMetrics(ctx context.Context, args tool.Args) (tool.Fields, error) {
	ticker, err := args.Ticker("ticker")
	if err != nil {
		return nil, err
	}

	var (
		info  map[string]any
		chart *yahoo.ChartResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, _, err = a.summary(gctx, ticker, yahoo.ModuleKeyStatistics, yahoo.ModuleSummaryDetail)
		return err
	})
	g.Go(func() error {
		var err error
		chart, err = a.yahoo.Chart(gctx, ticker, "1y", "1d")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bars := chart.Closes()
	if len(bars) == 0 {
		return nil, fetcher.NewValidationError("yahoo", fmt.Sprintf("no price history for %s", ticker))
	}
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	returns := analytics.DailyReturns(closes)

	return tool.Fields{
		"ticker":            ticker,
		"beta":              valueOr(info, 0.0, "beta", "beta3Year"),
		"annual_volatility": resolve.Optional(analytics.Finite(analytics.AnnualVolatility(returns))),
		"sharpe_ratio":      resolve.Optional(analytics.Finite(analytics.SharpeRatio(returns))),
		"max_drawdown":      resolve.Optional(analytics.Finite(analytics.MaxDrawdown(closes))),
	}, nil
}
