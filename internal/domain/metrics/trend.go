package metrics

import (
	"fmt"
	"time"
)

const (
	trendWindow = 7 * 24 * time.Hour

	// LabelUndefined marks a trend with nothing to compare.
	LabelUndefined = "—"
	// LabelNoBaseline is reported when the prior window has nothing to divide by.
	LabelNoBaseline = "+100%"
)

// Trend is a week-over-week comparison ready for display. Delta is nil for
// the placeholder labels.
type Trend struct {
	Label     string `json:"label"`
	Favorable bool   `json:"favorable"`
	Delta     *int   `json:"delta,omitempty"`
}

// Windows returns the trailing [now-7d, now) and prior [now-14d, now-7d) windows.
func Windows(now time.Time) (curFrom, priorFrom time.Time) {
	return now.Add(-trendWindow), now.Add(-2 * trendWindow)
}

// split partitions samples into the current and prior windows.
func split(samples []Sample, now time.Time) (cur, prior []Sample) {
	curFrom, priorFrom := Windows(now)
	for _, s := range samples {
		switch {
		case !s.At.Before(curFrom) && s.At.Before(now):
			cur = append(cur, s)
		case !s.At.Before(priorFrom) && s.At.Before(curFrom):
			prior = append(prior, s)
		}
	}
	return cur, prior
}

func mean(samples []Sample) *float64 {
	if len(samples) == 0 {
		return nil
	}
	var total float64
	for _, s := range samples {
		total += s.Value
	}
	avg := total / float64(len(samples))
	return &avg
}

func sum(samples []Sample) float64 {
	var total float64
	for _, s := range samples {
		total += amount(s.Value)
	}
	return total
}

// AverageTrend compares the mean sample value of the two windows.
func AverageTrend(samples []Sample, now time.Time, lowerIsBetter bool) Trend {
	cur, prior := split(samples, now)
	return relativeTrend(mean(cur), mean(prior), lowerIsBetter)
}

// SumTrend compares window totals. An empty window totals zero, so the trend
// is undefined only when both windows are zero.
func SumTrend(samples []Sample, now time.Time, lowerIsBetter bool) Trend {
	cur, prior := split(samples, now)
	a, b := sum(cur), sum(prior)
	if a == 0 && b == 0 {
		return Trend{Label: LabelUndefined, Favorable: true}
	}
	return relativeTrend(&a, &b, lowerIsBetter)
}

// PointTrend compares window means of values in [0, 1] and reports the
// difference in percentage points instead of a relative change.
func PointTrend(samples []Sample, now time.Time, lowerIsBetter bool) Trend {
	cur, prior := split(samples, now)
	a, b := mean(cur), mean(prior)
	if a == nil {
		return Trend{Label: LabelUndefined, Favorable: true}
	}
	if b == nil {
		return Trend{Label: LabelNoBaseline, Favorable: true}
	}
	return deltaTrend(roundHalfUp((*a-*b)*100), lowerIsBetter)
}

func relativeTrend(cur, prior *float64, lowerIsBetter bool) Trend {
	if cur == nil {
		return Trend{Label: LabelUndefined, Favorable: true}
	}
	if prior == nil || *prior == 0 {
		return Trend{Label: LabelNoBaseline, Favorable: true}
	}
	return deltaTrend(roundHalfUp((*cur-*prior) / *prior * 100), lowerIsBetter)
}

func deltaTrend(delta int, lowerIsBetter bool) Trend {
	favorable := delta >= 0
	if lowerIsBetter {
		favorable = delta <= 0
	}
	return Trend{
		Label:     fmt.Sprintf("%+d%%", delta),
		Favorable: favorable,
		Delta:     &delta,
	}
}
