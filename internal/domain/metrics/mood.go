package metrics

import (
	"sort"
	"time"
)

// StressLevel is the categorical stress classification.
type StressLevel string

const (
	StressLow    StressLevel = "Low"
	StressMedium StressLevel = "Medium"
	StressHigh   StressLevel = "High"
)

const (
	stressSampleSize    = 7
	stressHighThreshold = 5
	stressMedThreshold  = 3
)

// MoodCount is one row of the mood breakdown.
type MoodCount struct {
	Mood  Mood `json:"mood"`
	Count int  `json:"count"`
}

// MoodScore is the mean headline score over all entries, one decimal.
func MoodScore(entries []MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	var total float64
	for _, e := range entries {
		total += e.Mood.Score()
	}
	return roundTo(total/float64(len(entries)), 1)
}

// ClassifyStress looks at the seven most recent entries, whatever their span.
func ClassifyStress(entries []MoodEntry) StressLevel {
	recent := latest(entries, stressSampleSize)
	stressed := 0
	for _, e := range recent {
		if e.Mood.Stressed() {
			stressed++
		}
	}
	switch {
	case stressed >= stressHighThreshold:
		return StressHigh
	case stressed >= stressMedThreshold:
		return StressMedium
	default:
		return StressLow
	}
}

// MoodTrend compares mean mood scores week over week.
func MoodTrend(entries []MoodEntry, now time.Time) Trend {
	return AverageTrend(moodSamples(entries, Mood.Score), now, false)
}

// WellnessTrend compares the mood-derived wellness equivalents week over
// week. Window means are rounded before comparison.
func WellnessTrend(entries []MoodEntry, now time.Time) Trend {
	cur, prior := split(moodSamples(entries, Mood.Wellness), now)
	return relativeTrend(roundedMean(cur), roundedMean(prior), false)
}

// StressTrend compares the stressed share of entries in percentage points.
// A falling share is favorable.
func StressTrend(entries []MoodEntry, now time.Time) Trend {
	return PointTrend(moodSamples(entries, func(m Mood) float64 {
		if m.Stressed() {
			return 1
		}
		return 0
	}), now, true)
}

// Breakdown counts entries per known mood, omitting empty categories.
func Breakdown(entries []MoodEntry) []MoodCount {
	counts := make(map[Mood]int, len(Moods))
	for _, e := range entries {
		counts[e.Mood]++
	}
	out := make([]MoodCount, 0, len(Moods))
	for _, m := range Moods {
		if counts[m] > 0 {
			out = append(out, MoodCount{Mood: m, Count: counts[m]})
		}
	}
	return out
}

func moodSamples(entries []MoodEntry, value func(Mood) float64) []Sample {
	out := make([]Sample, 0, len(entries))
	for _, e := range entries {
		out = append(out, Sample{At: e.Date, Value: value(e.Mood)})
	}
	return out
}

func roundedMean(samples []Sample) *float64 {
	avg := mean(samples)
	if avg == nil {
		return nil
	}
	rounded := float64(roundHalfUp(*avg))
	return &rounded
}

// latest returns up to n entries with the most recent dates, leaving the
// input untouched.
func latest(entries []MoodEntry, n int) []MoodEntry {
	sorted := make([]MoodEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
