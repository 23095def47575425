package dashcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/wellness-hub/internal/domain/metrics"
)

func TestMemoryCache_ExpiresAndInvalidates(t *testing.T) {
	cache := NewMemoryCache()
	clock := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return clock }
	ctx := context.Background()

	dashboard := metrics.Dashboard{GeneratedAt: clock, Stats: metrics.Stats{WellnessScore: 42}}
	require.NoError(t, cache.Set(ctx, 1, dashboard, time.Minute))

	got, ok, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 42, got.Stats.WellnessScore)

	_, ok, err = cache.Get(ctx, 2)
	require.NoError(t, err)
	require.False(t, ok)

	clock = clock.Add(2 * time.Minute)
	_, ok, err = cache.Get(ctx, 1)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, cache.Set(ctx, 1, dashboard, 0))
	require.NoError(t, cache.Invalidate(ctx, 1))
	_, ok, err = cache.Get(ctx, 1)
	require.NoError(t, err)
	require.False(t, ok)
}
