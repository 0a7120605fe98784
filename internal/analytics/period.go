package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// maxLookback bounds the "max" period for providers that need explicit dates.
const maxLookback = 20

// PeriodStart converts a lookback period such as "1y", "6mo", "3m", "2wk",
// "10d", "ytd" or "max" into the first date of the window ending at now.
func PeriodStart(period string, now time.Time) (time.Time, error) {
	p := strings.ToLower(strings.TrimSpace(period))
	switch p {
	case "ytd":
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), nil
	case "max":
		return now.AddDate(-maxLookback, 0, 0), nil
	}

	units := []struct {
		suffix string
		apply  func(n int) time.Time
	}{
		{"mo", func(n int) time.Time { return now.AddDate(0, -n, 0) }},
		{"wk", func(n int) time.Time { return now.AddDate(0, 0, -7*n) }},
		{"d", func(n int) time.Time { return now.AddDate(0, 0, -n) }},
		{"w", func(n int) time.Time { return now.AddDate(0, 0, -7*n) }},
		{"m", func(n int) time.Time { return now.AddDate(0, -n, 0) }},
		{"y", func(n int) time.Time { return now.AddDate(-n, 0, 0) }},
	}
	for _, u := range units {
		if !strings.HasSuffix(p, u.suffix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(p, u.suffix))
		if err != nil || n <= 0 {
			break
		}
		return u.apply(n), nil
	}
	return time.Time{}, fmt.Errorf("unsupported period %q (use e.g. 5d, 2wk, 6mo, 1y, ytd, max)", period)
}
