package metrics

import "time"

// Composite averages the activity, sleep and meditation percentages. Each
// input is clamped first and the result is clamped again.
func Composite(activity, sleep, meditation int) int {
	total := float64(Clamp(activity) + Clamp(sleep) + Clamp(meditation))
	return Clamp(roundHalfUp(total / 3))
}

// ActivityScore is the combined exercise and activity minutes logged since
// now-7d against goalMinutes, clamped.
func ActivityScore(exercise, activity []Sample, goalMinutes float64, now time.Time) int {
	from, _ := Windows(now)
	minutes := SumSince(exercise, from) + SumSince(activity, from)
	return Clamp(Percent(minutes, goalMinutes))
}

// ActivityTrend compares combined exercise and activity minutes week over week.
func ActivityTrend(exercise, activity []Sample, now time.Time) Trend {
	combined := make([]Sample, 0, len(exercise)+len(activity))
	combined = append(combined, exercise...)
	combined = append(combined, activity...)
	return SumTrend(combined, now, false)
}
