package metrics

import (
	"math"
	"strings"
	"time"
)

// Mood is a self-reported mood category.
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodNeutral  Mood = "neutral"
	MoodStressed Mood = "stressed"
	MoodBurnout  Mood = "burnout"
)

// Moods lists the known categories in display order.
var Moods = []Mood{MoodHappy, MoodNeutral, MoodStressed, MoodBurnout}

const (
	fallbackMoodScore    = 5.0
	fallbackWellnessMood = 50.0
)

var moodScores = map[Mood]float64{
	MoodHappy:    10,
	MoodNeutral:  7,
	MoodStressed: 4,
	MoodBurnout:  2,
}

var moodWellness = map[Mood]float64{
	MoodHappy:    85,
	MoodNeutral:  65,
	MoodStressed: 45,
	MoodBurnout:  25,
}

// ParseMood normalizes raw input and reports whether it is a known category.
func ParseMood(raw string) (Mood, bool) {
	mood := Mood(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := moodScores[mood]
	return mood, ok
}

// Score maps the mood onto the 0-10 headline scale.
func (m Mood) Score() float64 {
	if v, ok := moodScores[m]; ok {
		return v
	}
	return fallbackMoodScore
}

// Wellness maps the mood onto the 0-100 wellness-equivalent scale used for trends.
func (m Mood) Wellness() float64 {
	if v, ok := moodWellness[m]; ok {
		return v
	}
	return fallbackWellnessMood
}

// Stressed reports whether the mood counts towards stress.
func (m Mood) Stressed() bool {
	return m == MoodStressed || m == MoodBurnout
}

// MoodEntry is one mood log.
type MoodEntry struct {
	ID     int64     `json:"id"`
	UserID int64     `json:"-"`
	Mood   Mood      `json:"mood"`
	Note   string    `json:"note,omitempty"`
	Date   time.Time `json:"date"`
}

// ActivityEntry is a generic activity-tracker log. Duration is minutes for
// Exercise/Meditation and hours for Sleep.
type ActivityEntry struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"-"`
	ActivityType string    `json:"activity"`
	Duration     float64   `json:"duration"`
	Date         time.Time `json:"date"`
}

// ExerciseEntry is a workout log.
type ExerciseEntry struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"-"`
	ExerciseType    string    `json:"exerciseType"`
	DurationMinutes float64   `json:"duration"`
	Calories        *int      `json:"calories"`
	Notes           string    `json:"notes"`
	Date            time.Time `json:"date"`
}

// MeditationEntry is a meditation session.
type MeditationEntry struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"-"`
	MeditationType  string    `json:"meditationType"`
	DurationMinutes float64   `json:"duration"`
	MoodBefore      string    `json:"moodBefore,omitempty"`
	MoodAfter       string    `json:"moodAfter,omitempty"`
	Notes           string    `json:"notes"`
	Date            time.Time `json:"date"`
}

// SleepEntry is one night of sleep.
type SleepEntry struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"-"`
	DurationHours float64   `json:"duration"`
	Quality       string    `json:"quality,omitempty"`
	Bedtime       string    `json:"bedtime,omitempty"`
	WakeTime      string    `json:"wakeTime,omitempty"`
	Notes         string    `json:"notes"`
	Date          time.Time `json:"date"`
}

// JournalEntry is free text with an optional mood tag.
type JournalEntry struct {
	ID      int64     `json:"id"`
	UserID  int64     `json:"-"`
	Content string    `json:"content"`
	Mood    Mood      `json:"mood,omitempty"`
	Date    time.Time `json:"date"`
}

// Sample is the minimal (timestamp, amount) pair the aggregators work on.
type Sample struct {
	At    time.Time
	Value float64
}

// amount drops malformed values so a bad record contributes nothing.
func amount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ExerciseSamples projects exercise minutes.
func ExerciseSamples(entries []ExerciseEntry) []Sample {
	out := make([]Sample, 0, len(entries))
	for _, e := range entries {
		out = append(out, Sample{At: e.Date, Value: e.DurationMinutes})
	}
	return out
}

// ActivitySamples projects activity durations, optionally filtered by type
// (case-insensitive). An empty activityType keeps everything.
func ActivitySamples(entries []ActivityEntry, activityType string) []Sample {
	out := make([]Sample, 0, len(entries))
	for _, e := range entries {
		if activityType != "" && !strings.EqualFold(e.ActivityType, activityType) {
			continue
		}
		out = append(out, Sample{At: e.Date, Value: e.Duration})
	}
	return out
}

// MeditationSamples projects meditation minutes.
func MeditationSamples(entries []MeditationEntry) []Sample {
	out := make([]Sample, 0, len(entries))
	for _, e := range entries {
		out = append(out, Sample{At: e.Date, Value: e.DurationMinutes})
	}
	return out
}

// SleepSamples projects sleep hours.
func SleepSamples(entries []SleepEntry) []Sample {
	out := make([]Sample, 0, len(entries))
	for _, e := range entries {
		out = append(out, Sample{At: e.Date, Value: e.DurationHours})
	}
	return out
}

func sampleDates(samples []Sample) []time.Time {
	out := make([]time.Time, 0, len(samples))
	for _, s := range samples {
		out = append(out, s.At)
	}
	return out
}
