// Package analytics holds the pure computations behind the market-data tools.
package analytics

import "math"

// TradingDaysPerYear annualises daily statistics.
const TradingDaysPerYear = 252

// DailyReturns returns close-to-close percentage changes. Pairs where the
// earlier close is zero or either close is not finite are skipped.
func DailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev, cur := closes[i-1], closes[i]
		if prev == 0 || !finite(prev) || !finite(cur) {
			continue
		}
		out = append(out, cur/prev-1)
	}
	return out
}

// Mean returns the arithmetic mean, NaN for an empty series.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev returns the sample standard deviation (n-1), NaN below two points.
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	m := Mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

// AnnualVolatility is stddev(daily returns) * sqrt(252).
func AnnualVolatility(returns []float64) float64 {
	return StdDev(returns) * math.Sqrt(TradingDaysPerYear)
}

// SharpeRatio is mean/stddev of daily returns * sqrt(252), with a zero risk-free rate.
func SharpeRatio(returns []float64) float64 {
	return Mean(returns) / StdDev(returns) * math.Sqrt(TradingDaysPerYear)
}

// MaxDrawdown is min(close[i]/max(close[0..i]) - 1). It is 0 for a series
// that never falls below its running peak and NaN for an empty series.
func MaxDrawdown(closes []float64) float64 {
	if len(closes) == 0 {
		return math.NaN()
	}
	peak := math.Inf(-1)
	worst := 0.0
	seen := false
	for _, c := range closes {
		if !finite(c) {
			continue
		}
		if c > peak {
			peak = c
		}
		seen = true
		if peak == 0 {
			continue
		}
		if dd := c/peak - 1; dd < worst {
			worst = dd
		}
	}
	if !seen {
		return math.NaN()
	}
	return worst
}

// Finite returns a pointer to x, or nil when x is NaN or infinite, so results
// encode as JSON null instead of failing.
func Finite(x float64) *float64 {
	if !finite(x) {
		return nil
	}
	return &x
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
