package marketdata

import (
	"context"
	"fmt"
	"time"

	"financetools/internal/analytics"
	"financetools/internal/fetcher"
	"financetools/internal/resolve"
	"financetools/internal/tool"
)

const expirationLayout = "2006-01-02"

func (a *Adapter) getOptionsChain(ctx context.Context, args tool.Args) (tool.Fields, error) {
	ticker, err := args.Ticker("ticker")
	if err != nil {
		return nil, err
	}

	var expiration time.Time
	if s := args.String("expiration", ""); s != "" {
		expiration, err = time.ParseInLocation(expirationLayout, s, time.UTC)
		if err != nil {
			return nil, fetcher.NewValidationError("", fmt.Sprintf("expiration %q is not a YYYY-MM-DD date", s))
		}
	}

	result, err := a.yahoo.Options(ctx, ticker, expiration)
	if err != nil {
		return nil, err
	}

	chains := resolve.Maps(listOf(result, "options"))
	if len(chains) == 0 {
		return nil, fetcher.NewValidationError("yahoo", fmt.Sprintf("no options listed for %s", ticker))
	}
	chain := chains[0]
	calls := resolve.Maps(listOf(chain, "calls"))
	puts := resolve.Maps(listOf(chain, "puts"))

	expirationDate := ""
	if ts := resolve.Int(chain, "expirationDate"); ts != nil {
		expirationDate = time.Unix(*ts, 0).UTC().Format(expirationLayout)
	} else if !expiration.IsZero() {
		expirationDate = expiration.Format(expirationLayout)
	}

	var ivs []float64
	for _, c := range calls {
		if iv := resolve.Float(c, "impliedVolatility"); iv != nil {
			ivs = append(ivs, *iv)
		}
	}

	return tool.Fields{
		"ticker":             ticker,
		"expiration_date":    expirationDate,
		"calls":              calls,
		"puts":               puts,
		"implied_volatility": resolve.Optional(analytics.Finite(analytics.Mean(ivs))),
	}, nil
}
