package wellness

import (
	"time"

	"github.com/yanqian/wellness-hub/internal/domain/metrics"
)

// Config holds runtime knobs for the wellness service.
type Config struct {
	Goals        metrics.Goals
	DashboardTTL time.Duration
	Location     *time.Location
}

// Defaults applied when a request leaves the field empty.
const (
	DefaultExerciseType   = "General"
	DefaultMeditationType = "Mindfulness"
	DefaultSleepQuality   = "Good"
)

// At fields are set by the transport after parsing the client timestamp.
// A nil At stamps the entry with the service clock.

// MoodRequest logs a mood.
type MoodRequest struct {
	Mood string     `json:"mood"`
	Note string     `json:"note"`
	At   *time.Time `json:"-"`
}

// ActivityRequest logs a generic tracker activity.
type ActivityRequest struct {
	Activity string     `json:"activity"`
	Duration float64    `json:"duration"`
	At       *time.Time `json:"-"`
}

// ExerciseRequest logs a workout.
type ExerciseRequest struct {
	ExerciseType string     `json:"exerciseType"`
	Duration     float64    `json:"duration"`
	Calories     *int       `json:"calories"`
	Notes        string     `json:"notes"`
	At           *time.Time `json:"-"`
}

// MeditationRequest logs a meditation session.
type MeditationRequest struct {
	MeditationType string     `json:"meditationType"`
	Duration       float64    `json:"duration"`
	MoodBefore     string     `json:"moodBefore"`
	MoodAfter      string     `json:"moodAfter"`
	Notes          string     `json:"notes"`
	At             *time.Time `json:"-"`
}

// SleepRequest logs a night of sleep. Bedtime and WakeTime are HH:MM.
type SleepRequest struct {
	Duration float64    `json:"duration"`
	Quality  string     `json:"quality"`
	Bedtime  string     `json:"bedtime"`
	WakeTime string     `json:"wakeTime"`
	Notes    string     `json:"notes"`
	At       *time.Time `json:"-"`
}

// JournalRequest adds a journal entry.
type JournalRequest struct {
	Content string     `json:"content"`
	Mood    string     `json:"mood"`
	At      *time.Time `json:"-"`
}
