package ratelimit

import (
	"context"
	"testing"
	"time"
)

// waitBriefly reports whether Wait admits an event within a few milliseconds.
func waitBriefly(l *Limiter, api API) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	return l.Wait(ctx, api) == nil
}

func TestLimiter_UnconfiguredAPIIsUnlimited(t *testing.T) {
	l := New(nil)

	for i := 0; i < 100; i++ {
		if !waitBriefly(l, APINSE) {
			t.Fatalf("Wait() blocked on call %d, want immediate", i)
		}
	}
	if err := l.Wait(context.Background(), APIYahoo); err != nil {
		t.Errorf("Wait() returned unexpected error: %v", err)
	}
}

func TestLimiter_ZeroRateMeansUnlimited(t *testing.T) {
	l := New(map[API]float64{APIBSE: 0})

	for i := 0; i < 10; i++ {
		if !waitBriefly(l, APIBSE) {
			t.Fatalf("Wait() blocked on call %d, want immediate", i)
		}
	}
}

func TestLimiter_EnforcesBurstOfOne(t *testing.T) {
	l := New(map[API]float64{APINSE: 0.001})

	if !waitBriefly(l, APINSE) {
		t.Fatal("first Wait() blocked, want immediate")
	}
	if waitBriefly(l, APINSE) {
		t.Error("second Wait() admitted, want throttled")
	}
	// Other providers are unaffected.
	if !waitBriefly(l, APIYahoo) {
		t.Error("Wait(yahoo) blocked, want immediate")
	}
}

func TestLimiter_SetReplacesLimit(t *testing.T) {
	l := New(map[API]float64{APINSE: 0.001})
	waitBriefly(l, APINSE)

	l.Set(APINSE, 0)
	if !waitBriefly(l, APINSE) {
		t.Error("Wait() blocked after limit removed, want immediate")
	}
}

func TestLimiter_WaitHonoursContext(t *testing.T) {
	l := New(map[API]float64{APINSE: 0.001})
	waitBriefly(l, APINSE)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := l.Wait(ctx, APINSE); err == nil {
		t.Error("Wait() expected error for cancelled context, got nil")
	}
}

func TestLimiter_NilIsUnlimited(t *testing.T) {
	var l *Limiter
	if err := l.Wait(context.Background(), APINSE); err != nil {
		t.Errorf("nil Wait() returned unexpected error: %v", err)
	}
}
