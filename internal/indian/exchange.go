// Package indian exposes NSE and BSE market data as tools.
package indian

import (
	"context"
	"time"
)

//go:generate mockgen -package=indian -destination=mock_exchange_test.go -source=exchange.go

// NSE is the subset of the NSE client the tools depend on.
type NSE interface {
	Quote(ctx context.Context, symbol string) (map[string]any, error)
	TradeInfo(ctx context.Context, symbol string) (map[string]any, error)
	Index(ctx context.Context, index string) (map[string]any, error)
	OptionChain(ctx context.Context, symbol string) (map[string]any, error)
	MarketStatus(ctx context.Context) (map[string]any, error)
	Historical(ctx context.Context, symbol string, from, to time.Time) ([]map[string]any, error)
}

// BSE is the subset of the BSE client the tools depend on.
type BSE interface {
	Quote(ctx context.Context, scripCode int) (map[string]any, error)
	Actions(ctx context.Context, scripCode int) (any, error)
	MarketStatus(ctx context.Context) (map[string]any, error)
	Historical(ctx context.Context, scripCode int, from, to time.Time) ([]map[string]any, error)
}
