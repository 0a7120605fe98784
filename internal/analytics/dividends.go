package analytics

import (
	"strconv"
	"time"
)

// Dividend is one cash distribution.
type Dividend struct {
	Date   time.Time
	Amount float64
}

// AnnualDividends sums distributions per calendar year and keeps only years
// whose total is positive. Keys are four-digit years.
func AnnualDividends(divs []Dividend) map[string]float64 {
	sums := make(map[int]float64)
	for _, d := range divs {
		sums[d.Date.Year()] += d.Amount
	}
	out := make(map[string]float64, len(sums))
	for year, total := range sums {
		if total > 0 {
			out[strconv.Itoa(year)] = total
		}
	}
	return out
}
