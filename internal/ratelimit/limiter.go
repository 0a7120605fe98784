package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// API represents the different external providers we interact with
type API string

const (
	// APINSE represents the National Stock Exchange JSON API
	APINSE API = "nse"
	// APIBSE represents the Bombay Stock Exchange JSON API
	APIBSE API = "bse"
	// APIYahoo represents the Yahoo Finance JSON endpoints
	APIYahoo API = "yahoo"
)

// Limiter manages outbound rate limits per provider.
// Providers without a configured limit are never throttled.
type Limiter struct {
	limiters map[API]*rate.Limiter
	mu       sync.RWMutex
}

// New builds a limiter from requests-per-second values. A value <= 0 leaves
// that provider unlimited.
func New(limits map[API]float64) *Limiter {
	l := &Limiter{limiters: make(map[API]*rate.Limiter)}
	for api, rps := range limits {
		l.Set(api, rps)
	}
	return l
}

// Set replaces the limit for one provider.
func (l *Limiter) Set(api API, rps float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rps <= 0 {
		delete(l.limiters, api)
		return
	}
	l.limiters[api] = rate.NewLimiter(rate.Limit(rps), 1)
}

// Wait blocks until the rate limiter permits an event for the given API
// It returns an error if the context is canceled before the event can proceed
func (l *Limiter) Wait(ctx context.Context, api API) error {
	if l == nil {
		return nil
	}

	l.mu.RLock()
	limiter, exists := l.limiters[api]
	l.mu.RUnlock()

	if !exists {
		return nil
	}

	return limiter.Wait(ctx)
}
