package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"financetools/internal/fetcher"
)

// ChartResponse is the top-level container of the chart endpoint.
type ChartResponse struct {
	Chart ChartData `json:"chart"`
}

// ChartData is the chart envelope: either results or an error.
type ChartData struct {
	Result []ChartResult `json:"result"`
	Error  *ChartError   `json:"error"`
}

// ChartError is the error object Yahoo returns for unknown symbols or bad ranges.
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ChartResult is one symbol's bars, column-oriented, plus corporate events.
type ChartResult struct {
	Meta       map[string]any `json:"meta"`
	Timestamp  []int64        `json:"timestamp"`
	Indicators Indicators     `json:"indicators"`
	Events     Events         `json:"events"`
}

// Indicators holds the price columns aligned with Timestamp.
type Indicators struct {
	Quote []Quote `json:"quote"`
}

// Quote holds the OHLCV columns. Missing bars are null.
type Quote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// Events holds dividends and splits keyed by unix timestamp string.
type Events struct {
	Dividends map[string]DividendEvent `json:"dividends"`
	Splits    map[string]SplitEvent    `json:"splits"`
}

// DividendEvent is a cash dividend paid per share.
type DividendEvent struct {
	Amount float64 `json:"amount"`
	Date   int64   `json:"date"`
}

// SplitEvent is a stock split of Numerator new shares for Denominator old ones.
type SplitEvent struct {
	Date        int64   `json:"date"`
	Numerator   float64 `json:"numerator"`
	Denominator float64 `json:"denominator"`
	SplitRatio  string  `json:"splitRatio"`
}

// Bar is one row of the chart with a non-null close.
type Bar struct {
	Time  time.Time
	Close float64
}

// Chart fetches the chart table for symbol. Range and interval use Yahoo's
// notation ("1y", "1d", "max", "1mo").
func (c *Client) Chart(ctx context.Context, symbol, rng, interval string) (*ChartResult, error) {
	var out ChartResponse
	path := "/v8/finance/chart/" + url.PathEscape(symbol)
	query := map[string]string{
		"range":    rng,
		"interval": interval,
		"events":   "div,split",
	}
	if err := c.getJSON(ctx, path, query, &out); err != nil {
		return nil, fmt.Errorf("chart %s: %w", symbol, err)
	}
	if out.Chart.Error != nil {
		return nil, fetcher.NewClientError(c.api.Provider(), 0, out.Chart.Error.Description)
	}
	if len(out.Chart.Result) == 0 {
		return nil, fetcher.NewValidationError(c.api.Provider(), fmt.Sprintf("no chart data found for %s", symbol))
	}
	return &out.Chart.Result[0], nil
}

// Closes returns the bars with a close price, in time order.
func (r *ChartResult) Closes() []Bar {
	if len(r.Indicators.Quote) == 0 {
		return nil
	}
	closes := r.Indicators.Quote[0].Close
	bars := make([]Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		bars = append(bars, Bar{Time: time.Unix(ts, 0).UTC(), Close: *closes[i]})
	}
	return bars
}

// SortedSplits returns the split events in chronological order.
func (r *ChartResult) SortedSplits() []SplitEvent {
	splits := make([]SplitEvent, 0, len(r.Events.Splits))
	for _, s := range r.Events.Splits {
		splits = append(splits, s)
	}
	sort.Slice(splits, func(i, j int) bool { return splits[i].Date < splits[j].Date })
	return splits
}

// SortedDividends returns the dividend events in chronological order.
func (r *ChartResult) SortedDividends() []DividendEvent {
	divs := make([]DividendEvent, 0, len(r.Events.Dividends))
	for _, d := range r.Events.Dividends {
		divs = append(divs, d)
	}
	sort.Slice(divs, func(i, j int) bool { return divs[i].Date < divs[j].Date })
	return divs
}

// Ratio is the split factor, numerator over denominator.
func (s SplitEvent) Ratio() float64 {
	if s.Denominator == 0 {
		return 0
	}
	return s.Numerator / s.Denominator
}
