package analytics

import (
	"log/slog"
	"strings"
	"time"
)

// NewsItem is one headline with the fields relevance filtering needs.
type NewsItem struct {
	Title          string
	RelatedTickers []string
	// PublishedAt is zero when the provider omitted the publish time.
	PublishedAt time.Time
}

var (
	positiveWords = []string{"positive", "bullish", "buy"}
	negativeWords = []string{"negative", "bearish", "sell"}
)

// FilterNews keeps items that list ticker among their related tickers and were
// published no more than days before now. Items without a publish time are dropped.
func FilterNews(items []NewsItem, ticker string, days int, now time.Time) []NewsItem {
	want := strings.ToUpper(strings.TrimSpace(ticker))
	cutoff := now.AddDate(0, 0, -days)

	out := make([]NewsItem, 0, len(items))
	for _, it := range items {
		if !relatesTo(it.RelatedTickers, want) {
			continue
		}
		if it.PublishedAt.IsZero() {
			slog.Warn("news item missing publish time", "title", it.Title)
			continue
		}
		if it.PublishedAt.Before(cutoff) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func relatesTo(related []string, ticker string) bool {
	for _, rt := range related {
		if strings.ToUpper(strings.TrimSpace(rt)) == ticker {
			return true
		}
	}
	return false
}

// Sentiment tallies headlines by keyword. A headline counts at most once and
// positive keywords are checked first.
func Sentiment(items []NewsItem) (positive, negative int) {
	for _, it := range items {
		title := strings.ToLower(it.Title)
		switch {
		case containsAny(title, positiveWords):
			positive++
		case containsAny(title, negativeWords):
			negative++
		}
	}
	return positive, negative
}

// Headlines returns the titles of the first n items, omitting empty ones.
func Headlines(items []NewsItem, n int) []string {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Title != "" {
			out = append(out, it.Title)
		}
	}
	return out
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
