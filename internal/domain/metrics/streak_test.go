package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStreak(t *testing.T) {
	now := at(2024, 3, 10, 18)
	today := at(2024, 3, 10, 7)
	day := func(back int) time.Time { return today.AddDate(0, 0, -back) }

	cases := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{name: "no entries", dates: nil, want: 0},
		{name: "today only", dates: []time.Time{day(0)}, want: 1},
		{name: "three consecutive days", dates: []time.Time{day(0), day(1), day(2)}, want: 3},
		{name: "gap yesterday", dates: []time.Time{day(0), day(2)}, want: 1},
		{name: "yesterday without today", dates: []time.Time{day(1), day(2)}, want: 0},
		{name: "duplicates on one day", dates: []time.Time{day(0), day(0).Add(time.Hour), day(1)}, want: 2},
		{name: "unordered input", dates: []time.Time{day(2), day(0), day(1), day(4)}, want: 3},
		{name: "future entry ends streak", dates: []time.Time{today.AddDate(0, 0, 1), day(0), day(1)}, want: 0},
		{name: "late entry yesterday", dates: []time.Time{day(0), time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)}, want: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Streak(tc.dates, now))
		})
	}
}

func TestStreakUsesReferenceLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, tokyo)
	// 2024-03-09 22:30 UTC is already the 10th in Tokyo.
	dates := []time.Time{time.Date(2024, 3, 9, 22, 30, 0, 0, time.UTC)}
	require.Equal(t, 1, Streak(dates, now))
}

func TestLongestStreak(t *testing.T) {
	dates := []time.Time{
		at(2024, 3, 1, 9), at(2024, 3, 2, 9), at(2024, 3, 3, 9),
		at(2024, 3, 5, 9), at(2024, 3, 6, 9),
		at(2024, 3, 2, 20),
	}
	require.Equal(t, 3, LongestStreak(dates, time.UTC))
	require.Equal(t, 0, LongestStreak(nil, time.UTC))
	require.Equal(t, 1, LongestStreak([]time.Time{at(2024, 3, 1, 9)}, nil))
}

func TestActiveDays(t *testing.T) {
	a := []time.Time{at(2024, 3, 1, 9), at(2024, 3, 1, 20)}
	b := []time.Time{at(2024, 3, 1, 10), at(2024, 3, 2, 10), {}}
	require.Equal(t, 2, ActiveDays(time.UTC, a, b))
	require.Equal(t, 0, ActiveDays(time.UTC))
}
