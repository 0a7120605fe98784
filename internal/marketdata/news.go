package marketdata

import (
	"context"
	"time"

	"financetools/internal/analytics"
	"financetools/internal/resolve"
	"financetools/internal/tool"
)

const maxHeadlines = 3

func (a *Adapter) getNewsSentiment(ctx context.Context, args tool.Args) (tool.Fields, error) {
	ticker, err := args.Ticker("ticker")
	if err != nil {
		return nil, err
	}
	days, err := args.Int("days", 7)
	if err != nil {
		return nil, err
	}

	raw, err := a.yahoo.News(ctx, ticker, a.newsCount)
	if err != nil {
		return nil, err
	}

	items := make([]analytics.NewsItem, 0, len(raw))
	for _, r := range raw {
		item := analytics.NewsItem{Title: resolve.StringOr(r, "", "title")}
		for _, t := range listOf(r, "relatedTickers") {
			if s, ok := t.(string); ok {
				item.RelatedTickers = append(item.RelatedTickers, s)
			}
		}
		if ts := resolve.Int(r, "providerPublishTime"); ts != nil && *ts > 0 {
			item.PublishedAt = time.Unix(*ts, 0)
		}
		items = append(items, item)
	}

	relevant := analytics.FilterNews(items, ticker, days, a.now())
	positive, negative := analytics.Sentiment(relevant)

	return tool.Fields{
		"ticker":             ticker,
		"total_news_items":   len(relevant),
		"positive_sentiment": positive,
		"negative_sentiment": negative,
		"latest_headlines":   analytics.Headlines(relevant, maxHeadlines),
		"data_source":        "Yahoo Finance (filtered)",
		"warning":            "News API reliability varies - verify critical items",
	}, nil
}
