package metrics

import (
	"math"
	"time"

	"github.com/yanqian/wellness-hub/pkg/util"
)

// WeeklyTotal is the amount logged since Monday and its share of the goal.
// Percentage is not clamped.
type WeeklyTotal struct {
	Current    float64 `json:"current"`
	Goal       float64 `json:"goal"`
	Percentage int     `json:"percentage"`
}

// WeekStart returns Monday 00:00 of now's week in now's location.
func WeekStart(now time.Time) time.Time {
	offset := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		offset = 6
	}
	return util.StartOfDay(now).AddDate(0, 0, -offset)
}

// Weekly sums samples dated on or after WeekStart(now). Future-dated samples
// are included; there is no upper bound.
func Weekly(samples []Sample, goal float64, now time.Time) WeeklyTotal {
	start := WeekStart(now)
	var current float64
	for _, s := range samples {
		if s.At.Before(start) {
			continue
		}
		current += amount(s.Value)
	}
	return WeeklyTotal{
		Current:    current,
		Goal:       goal,
		Percentage: Percent(current, goal),
	}
}

// SumSince totals samples dated on or after from.
func SumSince(samples []Sample, from time.Time) float64 {
	var total float64
	for _, s := range samples {
		if !s.At.Before(from) {
			total += amount(s.Value)
		}
	}
	return total
}

// Percent returns round(current/goal*100); a non-positive goal yields 0.
func Percent(current, goal float64) int {
	if goal <= 0 {
		return 0
	}
	return roundHalfUp(current / goal * 100)
}

// Clamp bounds a percentage to [0, 100].
func Clamp(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Floor(v*p+0.5) / p
}
