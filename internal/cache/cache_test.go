package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemory_GetSet(t *testing.T) {
	t.Parallel()

	m := NewMemory(time.Minute, 0)
	ctx := context.Background()

	_, ok, err := m.Get(ctx, "nse:/api/quote-equity?symbol=INFY")
	require.NoError(t, err)
	require.False(t, ok, "empty cache reported a hit")

	require.NoError(t, m.Set(ctx, "nse:/api/quote-equity?symbol=INFY", []byte(`{"a":1}`)))

	body, ok, err := m.Get(ctx, "nse:/api/quote-equity?symbol=INFY")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"a":1}`, string(body))
}

func TestMemory_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	m := NewMemory(time.Minute, 0)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v")))

	now = now.Add(59 * time.Second)
	_, ok, _ := m.Get(ctx, "k")
	require.True(t, ok, "entry expired too early")

	now = now.Add(time.Second)
	_, ok, _ = m.Get(ctx, "k")
	require.False(t, ok, "entry survived its TTL")
}

func TestMemory_DisabledWithZeroTTL(t *testing.T) {
	t.Parallel()

	m := NewMemory(0, 0)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v")))
	_, ok, _ := m.Get(ctx, "k")
	require.False(t, ok)
	require.Zero(t, m.Len())
}

func TestMemory_MaxItems(t *testing.T) {
	t.Parallel()

	m := NewMemory(time.Minute, 3)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, m.Set(ctx, fmt.Sprintf("k%d", i), []byte("v")))
	}

	require.LessOrEqual(t, m.Len(), 3)
	_, ok, _ := m.Get(ctx, "k9")
	require.True(t, ok, "most recent entry must survive eviction")
}
