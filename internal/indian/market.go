package indian

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"financetools/internal/analytics"
	"financetools/internal/fetcher"
	"financetools/internal/resolve"
	"financetools/internal/tool"
)

func (a *Adapter) getHistoricalData(ctx context.Context, args tool.Args) (tool.Fields, error) {
	ticker, err := args.Ticker("ticker")
	if err != nil {
		return nil, err
	}
	period := args.String("period", "1y")

	now := a.now()
	from, err := analytics.PeriodStart(period, now)
	if err != nil {
		return nil, fetcher.NewValidationError("", err.Error())
	}

	var rows []map[string]any
	if tool.IsDigits(ticker) {
		code, convErr := strconv.Atoi(ticker)
		if convErr != nil {
			return nil, fetcher.NewValidationError("", fmt.Sprintf("scrip_code %q out of range", ticker))
		}
		rows, err = a.bse.Historical(ctx, code, from, now)
	} else {
		rows, err = a.nse.Historical(ctx, ticker, from, now)
	}
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []map[string]any{}
	}

	return tool.Fields{
		"ticker": ticker,
		"data":   rows,
	}, nil
}

func (a *Adapter) getOptionChain(ctx context.Context, args tool.Args) (tool.Fields, error) {
	ticker, err := args.Ticker("ticker")
	if err != nil {
		return nil, err
	}

	chain, err := a.nse.OptionChain(ctx, ticker)
	if err != nil {
		return nil, err
	}

	records := resolve.Path(chain, "records")
	filtered := resolve.Path(chain, "filtered")
	if records == nil && filtered == nil {
		return nil, fetcher.NewValidationError("nse", fmt.Sprintf("no option chain for %s", ticker))
	}

	expiries := []string{}
	for _, v := range listOrEmpty(records, "expiryDates") {
		if s, ok := resolve.ToString(v); ok {
			expiries = append(expiries, s)
		}
	}

	return tool.Fields{
		"ticker":       ticker,
		"expiry_dates": expiries,
		"call_oi":      resolve.Optional(resolve.Float(resolve.Path(filtered, "CE"), "totOI")),
		"put_oi":       resolve.Optional(resolve.Float(resolve.Path(filtered, "PE"), "totOI")),
	}, nil
}

func (a *Adapter) getMarketStatus(ctx context.Context, _ tool.Args) (tool.Fields, error) {
	var nseDoc, bseDoc map[string]any

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		nseDoc, err = a.nse.MarketStatus(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bseDoc, err = a.bse.MarketStatus(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return tool.Fields{
		"NSE":          openClosed(nseOpen(nseDoc)),
		"BSE":          openClosed(bseOpen(bseDoc)),
		"current_time": a.now().In(IST).Format("2006-01-02 15:04:05") + " IST",
	}, nil
}

func nseOpen(doc map[string]any) bool {
	states := resolve.Maps(listOrEmpty(doc, "marketState"))
	if len(states) == 0 {
		return false
	}
	return resolve.StringOr(states[0], "", "marketStatus") == "Open"
}

func bseOpen(doc map[string]any) bool {
	v, ok := resolve.Value(doc, "isOpen", "IsOpen", "MarketStatus")
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t == 1
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "open", "1", "true":
			return true
		}
	}
	return false
}

func openClosed(open bool) string {
	if open {
		return "Open"
	}
	return "Closed"
}
