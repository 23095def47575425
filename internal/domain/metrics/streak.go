package metrics

import (
	"sort"
	"time"

	"github.com/yanqian/wellness-hub/pkg/util"
)

// Streak counts consecutive calendar days, walking back from now's day, that
// have at least one entry. Today must have an entry for the streak to be
// non-zero. A future-dated entry also ends the walk.
func Streak(dates []time.Time, now time.Time) int {
	days := distinctDays(dates, now.Location())
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	streak := 0
	for _, day := range days {
		ts, err := time.ParseInLocation(util.DayLayout, day, now.Location())
		if err != nil {
			continue
		}
		if util.DaysBetween(ts, now) != streak {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of consecutive calendar days in loc.
func LongestStreak(dates []time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	days := distinctDays(dates, loc)
	if len(days) == 0 {
		return 0
	}
	sort.Strings(days)

	longest, run := 1, 1
	prev, _ := time.ParseInLocation(util.DayLayout, days[0], loc)
	for _, day := range days[1:] {
		ts, err := time.ParseInLocation(util.DayLayout, day, loc)
		if err != nil {
			continue
		}
		if util.DaysBetween(prev, ts) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = ts
	}
	return longest
}

// ActiveDays counts distinct calendar days across all given dates.
func ActiveDays(loc *time.Location, dates ...[]time.Time) int {
	seen := make(map[string]struct{})
	for _, group := range dates {
		for _, d := range group {
			if d.IsZero() {
				continue
			}
			seen[util.DayKey(d, loc)] = struct{}{}
		}
	}
	return len(seen)
}

func distinctDays(dates []time.Time, loc *time.Location) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		key := util.DayKey(d, loc)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
