package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWeekStart(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{name: "wednesday", now: at(2024, 3, 6, 15), want: at(2024, 3, 4, 0)},
		{name: "monday", now: at(2024, 3, 4, 8), want: at(2024, 3, 4, 0)},
		{name: "sunday rolls back six days", now: at(2024, 3, 10, 23), want: at(2024, 3, 4, 0)},
		{name: "saturday", now: at(2024, 3, 9, 1), want: at(2024, 3, 4, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, WeekStart(tc.now))
		})
	}
}

func TestWeeklyTotals(t *testing.T) {
	now := at(2024, 3, 6, 12)
	samples := []Sample{
		{At: at(2024, 3, 4, 1), Value: 30},
		{At: time.Date(2024, 3, 3, 23, 59, 0, 0, time.UTC), Value: 50},
		{At: at(2024, 3, 6, 9), Value: 45},
		{At: at(2024, 3, 8, 9), Value: 15},
		{At: at(2024, 3, 5, 9), Value: -10},
		{At: at(2024, 3, 5, 10), Value: math.NaN()},
	}

	got := Weekly(samples, 300, now)
	require.Equal(t, 90.0, got.Current)
	require.Equal(t, 300.0, got.Goal)
	require.Equal(t, 30, got.Percentage)
}

func TestWeeklyIsOrderIndependent(t *testing.T) {
	now := at(2024, 3, 6, 12)
	samples := []Sample{
		{At: at(2024, 3, 4, 1), Value: 20},
		{At: at(2024, 3, 5, 1), Value: 35},
		{At: at(2024, 3, 6, 1), Value: 12},
		{At: at(2024, 2, 28, 1), Value: 99},
	}
	reversed := make([]Sample, len(samples))
	for i := range samples {
		reversed[len(samples)-1-i] = samples[i]
	}

	forward := Weekly(samples, 140, now)
	backward := Weekly(reversed, 140, now)
	require.Equal(t, forward, backward)
	require.Equal(t, Percent(forward.Current, 140), forward.Percentage)
}

func TestWeeklyPercentageIsNotClamped(t *testing.T) {
	now := at(2024, 3, 6, 12)
	got := Weekly([]Sample{{At: now, Value: 150}}, 140, now)
	require.Equal(t, 107, got.Percentage)
	require.Equal(t, 100, Clamp(got.Percentage))
}

func TestWeeklyReaggregatesItsOwnTotal(t *testing.T) {
	now := at(2024, 3, 6, 12)
	first := Weekly([]Sample{
		{At: at(2024, 3, 4, 7), Value: 7.5},
		{At: at(2024, 3, 5, 7), Value: 6.25},
	}, 56, now)

	freshNow := at(2024, 3, 13, 12)
	again := Weekly([]Sample{{At: WeekStart(freshNow), Value: first.Current}}, 56, freshNow)
	require.Equal(t, first.Current, again.Current)
	require.Equal(t, first.Percentage, again.Percentage)
}

func TestPercent(t *testing.T) {
	require.Equal(t, 0, Percent(10, 0))
	require.Equal(t, 0, Percent(10, -5))
	require.Equal(t, 50, Percent(150, 300))
	require.Equal(t, 27, Percent(15, 56))
	require.Equal(t, 1, Percent(0.5, 100))
}

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}
