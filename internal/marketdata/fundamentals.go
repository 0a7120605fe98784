package marketdata

import (
	"context"
	"sort"
	"strings"

	"financetools/internal/fetcher"
	"financetools/internal/resolve"
	"financetools/internal/tool"
	"financetools/internal/yahoo"
)

// statement maps a statement_type argument onto its quoteSummary module and
// the list key inside it.
type statement struct {
	module string
	rows   string
}

var statements = map[string]statement{
	"income":   {yahoo.ModuleIncomeStatement, "incomeStatementHistory"},
	"balance":  {yahoo.ModuleBalanceSheet, "balanceSheetStatements"},
	"cashflow": {yahoo.ModuleCashflow, "cashflowStatements"},
}

const invalidStatementType = "Invalid statement type. Use 'income', 'balance', or 'cashflow'"

// financialsHandler rejects unknown statement types before anything reaches
// the provider. The message is returned as-is, without the tool label.
func (a *Adapter) financialsHandler() tool.Handler {
	wrapped := tool.Wrap("Financial statement retrieval", tool.Hints{}, a.getFinancials)
	return func(ctx context.Context, args tool.Args) tool.Result {
		if _, ok := statements[args.String("statement_type", "income")]; !ok {
			return tool.Err(tool.Failure{Error: invalidStatementType})
		}
		return wrapped(ctx, args)
	}
}

func (a *Adapter) getFinancials(ctx context.Context, args tool.Args) (tool.Fields, error) {
	ticker, err := args.Ticker("ticker")
	if err != nil {
		return nil, err
	}
	kind := args.String("statement_type", "income")
	st, ok := statements[kind]
	if !ok {
		return nil, fetcher.NewValidationError("", invalidStatementType)
	}

	raw, err := a.yahoo.QuoteSummary(ctx, ticker, st.module)
	if err != nil {
		return nil, err
	}
	rows := resolve.Maps(listOf(resolve.Path(raw, st.module), st.rows))

	periods := make([]string, 0, len(rows))
	metricSet := make(map[string]bool)
	for _, row := range rows {
		periods = append(periods, resolve.StringOr(row, "N/A", "endDate"))
		for k := range row {
			if k == "endDate" || k == "maxAge" {
				continue
			}
			metricSet[k] = true
		}
	}
	metrics := make([]string, 0, len(metricSet))
	for k := range metricSet {
		metrics = append(metrics, k)
	}
	sort.Strings(metrics)

	values := make([][]any, len(metrics))
	for i, metric := range metrics {
		values[i] = make([]any, len(rows))
		for j, row := range rows {
			values[i][j] = resolve.Optional(resolve.Float(row, metric))
		}
	}

	return tool.Fields{
		"ticker":         ticker,
		"statement_type": kind,
		"periods":        periods,
		"metrics":        metrics,
		"values":         values,
	}, nil
}

func (a *Adapter) getInstitutionalHolders(ctx context.Context, args tool.Args) (tool.Fields, error) {
	ticker, err := args.Ticker("ticker")
	if err != nil {
		return nil, err
	}

	raw, err := a.yahoo.QuoteSummary(ctx, ticker, yahoo.ModuleInstitutionOwnership)
	if err != nil {
		return nil, err
	}
	owners := resolve.Maps(listOf(resolve.Path(raw, yahoo.ModuleInstitutionOwnership), "ownershipList"))

	holders := make([]map[string]any, 0, len(owners))
	var total float64
	for _, o := range owners {
		shares := resolve.Float(o, "position", "shares")
		if shares != nil {
			total += *shares
		}
		holders = append(holders, map[string]any{
			"holder":        resolve.Optional(resolve.String(o, "organization", "holder")),
			"shares":        resolve.Optional(shares),
			"date_reported": resolve.Optional(resolve.String(o, "reportDate")),
			"pct_held":      resolve.Optional(resolve.Float(o, "pctHeld")),
			"value":         resolve.Optional(resolve.Float(o, "value")),
		})
	}

	return tool.Fields{
		"ticker":       ticker,
		"holders":      holders,
		"total_shares": total,
	}, nil
}

const earningsQuarters = 4

func (a *Adapter) getEarningsAnalysis(ctx context.Context, args tool.Args) (tool.Fields, error) {
	ticker, err := args.Ticker("ticker")
	if err != nil {
		return nil, err
	}

	info, raw, err := a.summary(ctx, ticker, yahoo.ModuleKeyStatistics, yahoo.ModuleEarningsHistory)
	if err != nil {
		return nil, err
	}
	history := resolve.Maps(listOf(resolve.Path(raw, yahoo.ModuleEarningsHistory), "history"))
	sort.SliceStable(history, func(i, j int) bool {
		return quarter(history[i]) < quarter(history[j])
	})

	var actual, surprise []float64
	for _, h := range history {
		if v := resolve.Float(h, "epsActual"); v != nil {
			actual = append(actual, *v)
		}
		// surprisePercent is a fraction; report percent.
		if v := resolve.Float(h, "surprisePercent"); v != nil {
			surprise = append(surprise, *v*100)
		}
	}

	return tool.Fields{
		"ticker":       ticker,
		"eps_estimate": resolve.Optional(resolve.Float(info, "forwardEps")),
		"eps_actual":   lastN(actual, earningsQuarters),
		"surprise_pct": lastN(surprise, earningsQuarters),
	}, nil
}

func quarter(row map[string]any) float64 {
	if q := resolve.Float(row, "quarter"); q != nil {
		return *q
	}
	return 0
}

func lastN(xs []float64, n int) []float64 {
	if len(xs) > n {
		xs = xs[len(xs)-n:]
	}
	if xs == nil {
		return []float64{}
	}
	return xs
}

const maxFilings = 5

func (a *Adapter) getSECFilings(ctx context.Context, args tool.Args) (tool.Fields, error) {
	ticker, err := args.Ticker("ticker")
	if err != nil {
		return nil, err
	}
	filingType := args.String("filing_type", "10-K")

	raw, err := a.yahoo.QuoteSummary(ctx, ticker, yahoo.ModuleSECFilings)
	if err != nil {
		return nil, err
	}
	list, ok := resolve.Path(raw, yahoo.ModuleSECFilings)["filings"].([]any)
	if !ok {
		return nil, fetcher.NewValidationError("yahoo", "Unexpected SEC filings format")
	}

	filtered := []map[string]any{}
	latest := ""
	for _, f := range resolve.Maps(list) {
		form := resolve.StringOr(f, "", "type", "formType")
		if !strings.EqualFold(form, filingType) {
			continue
		}
		filtered = append(filtered, f)
		if d := resolve.StringOr(f, "", "date"); d > latest {
			latest = d
		}
	}
	if latest == "" {
		latest = "N/A"
	}

	shown := filtered
	if len(shown) > maxFilings {
		shown = shown[:maxFilings]
	}

	return tool.Fields{
		"ticker":             ticker,
		"filing_type":        filingType,
		"count":              len(filtered),
		"latest_filing_date": latest,
		"filings":            shown,
	}, nil
}
