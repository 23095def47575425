package wellness

import (
	"context"
	"time"

	"github.com/yanqian/wellness-hub/internal/domain/metrics"
)

// Repository persists wellness logs. List methods return entries newest first.
type Repository interface {
	InsertMood(ctx context.Context, entry metrics.MoodEntry) (metrics.MoodEntry, error)
	ListMoods(ctx context.Context, userID int64) ([]metrics.MoodEntry, error)

	InsertActivity(ctx context.Context, entry metrics.ActivityEntry) (metrics.ActivityEntry, error)
	ListActivities(ctx context.Context, userID int64) ([]metrics.ActivityEntry, error)

	InsertExercise(ctx context.Context, entry metrics.ExerciseEntry) (metrics.ExerciseEntry, error)
	ListExercises(ctx context.Context, userID int64) ([]metrics.ExerciseEntry, error)

	InsertMeditation(ctx context.Context, entry metrics.MeditationEntry) (metrics.MeditationEntry, error)
	ListMeditations(ctx context.Context, userID int64) ([]metrics.MeditationEntry, error)

	InsertSleep(ctx context.Context, entry metrics.SleepEntry) (metrics.SleepEntry, error)
	ListSleep(ctx context.Context, userID int64) ([]metrics.SleepEntry, error)

	InsertJournal(ctx context.Context, entry metrics.JournalEntry) (metrics.JournalEntry, error)
	ListJournals(ctx context.Context, userID int64) ([]metrics.JournalEntry, error)
	// DeleteJournal reports false when no journal with id belongs to userID.
	DeleteJournal(ctx context.Context, userID, id int64) (bool, error)
}

// DashboardCache holds computed dashboards per user.
type DashboardCache interface {
	Get(ctx context.Context, userID int64) (metrics.Dashboard, bool, error)
	Set(ctx context.Context, userID int64, dashboard metrics.Dashboard, ttl time.Duration) error
	Invalidate(ctx context.Context, userID int64) error
}
