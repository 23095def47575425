package wellness

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/wellness-hub/internal/domain/metrics"
	apperrors "github.com/yanqian/wellness-hub/pkg/errors"
)

var fixedNow = time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)

func TestService_LogMoodValidatesAndStamps(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	_, err := svc.LogMood(context.Background(), 1, MoodRequest{Mood: "angry"})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	entry, err := svc.LogMood(context.Background(), 1, MoodRequest{Mood: " Happy ", Note: " good day "})
	require.NoError(t, err)
	require.Equal(t, metrics.MoodHappy, entry.Mood)
	require.Equal(t, "good day", entry.Note)
	require.Equal(t, fixedNow, entry.Date)
	require.Equal(t, int64(1), entry.UserID)

	at := fixedNow.Add(-72 * time.Hour)
	backdated, err := svc.LogMood(context.Background(), 1, MoodRequest{Mood: "neutral", At: &at})
	require.NoError(t, err)
	require.Equal(t, at, backdated.Date)
}

func TestService_LogDefaults(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)
	ctx := context.Background()

	exercise, err := svc.LogExercise(ctx, 1, ExerciseRequest{Duration: 30})
	require.NoError(t, err)
	require.Equal(t, DefaultExerciseType, exercise.ExerciseType)

	meditation, err := svc.LogMeditation(ctx, 1, MeditationRequest{Duration: 10})
	require.NoError(t, err)
	require.Equal(t, DefaultMeditationType, meditation.MeditationType)

	sleep, err := svc.LogSleep(ctx, 1, SleepRequest{Duration: 7.5, Bedtime: "23:15", WakeTime: "6:45"})
	require.NoError(t, err)
	require.Equal(t, DefaultSleepQuality, sleep.Quality)
	require.Equal(t, "23:15", sleep.Bedtime)
	require.Equal(t, "06:45", sleep.WakeTime)

	journal, err := svc.AddJournal(ctx, 1, JournalRequest{Content: "  wrote a bit "})
	require.NoError(t, err)
	require.Equal(t, metrics.MoodNeutral, journal.Mood)
	require.Equal(t, "wrote a bit", journal.Content)
}

func TestService_LogValidation(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)
	ctx := context.Background()
	negative := -5

	cases := []struct {
		name string
		call func() error
	}{
		{name: "activity without type", call: func() error {
			_, err := svc.LogActivity(ctx, 1, ActivityRequest{Duration: 10})
			return err
		}},
		{name: "activity zero duration", call: func() error {
			_, err := svc.LogActivity(ctx, 1, ActivityRequest{Activity: "Walk"})
			return err
		}},
		{name: "exercise negative calories", call: func() error {
			_, err := svc.LogExercise(ctx, 1, ExerciseRequest{Duration: 10, Calories: &negative})
			return err
		}},
		{name: "sleep over a day", call: func() error {
			_, err := svc.LogSleep(ctx, 1, SleepRequest{Duration: 25})
			return err
		}},
		{name: "sleep bad bedtime", call: func() error {
			_, err := svc.LogSleep(ctx, 1, SleepRequest{Duration: 7, Bedtime: "late"})
			return err
		}},
		{name: "journal empty", call: func() error {
			_, err := svc.AddJournal(ctx, 1, JournalRequest{Content: "   "})
			return err
		}},
		{name: "journal unknown mood", call: func() error {
			_, err := svc.AddJournal(ctx, 1, JournalRequest{Content: "x", Mood: "elated"})
			return err
		}},
		{name: "meditation negative", call: func() error {
			_, err := svc.LogMeditation(ctx, 1, MeditationRequest{Duration: -1})
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.True(t, apperrors.IsCode(tc.call(), "invalid_input"))
		})
	}
}

func TestService_DeleteJournalOwnership(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	ctx := context.Background()

	entry, err := svc.AddJournal(ctx, 1, JournalRequest{Content: "mine"})
	require.NoError(t, err)

	err = svc.DeleteJournal(ctx, 2, entry.ID)
	require.True(t, apperrors.IsCode(err, "not_found"))

	require.NoError(t, svc.DeleteJournal(ctx, 1, entry.ID))
	journals, err := svc.ListJournals(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, journals)
}

func TestService_WeeklyStats(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	ctx := context.Background()

	monday := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	lastWeek := monday.Add(-24 * time.Hour)
	_, err := svc.LogExercise(ctx, 1, ExerciseRequest{Duration: 60, At: &monday})
	require.NoError(t, err)
	_, err = svc.LogExercise(ctx, 1, ExerciseRequest{Duration: 90, At: &lastWeek})
	require.NoError(t, err)
	_, err = svc.LogSleep(ctx, 1, SleepRequest{Duration: 7.25})
	require.NoError(t, err)

	stats, err := svc.WeeklyStats(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 60.0, stats.Exercise.Current)
	require.Equal(t, 20, stats.Exercise.Percentage)
	require.Equal(t, 7.3, stats.Sleep.Current)
	require.Equal(t, 13, stats.Sleep.Percentage)
	require.Equal(t, 1, stats.Sleep.StreakDays)
	require.Equal(t, 0, stats.Meditation.Percentage)
}

func TestService_WeeklyProgressUsesActivityLog(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)
	ctx := context.Background()

	_, err := svc.LogActivity(ctx, 1, ActivityRequest{Activity: "Exercise", Duration: 45})
	require.NoError(t, err)
	_, err = svc.LogActivity(ctx, 1, ActivityRequest{Activity: "Meditation", Duration: 14})
	require.NoError(t, err)

	progress, err := svc.WeeklyProgress(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 45.0, progress.Exercise.Current)
	require.Equal(t, 15, progress.Exercise.Percentage)
	require.Equal(t, 10, progress.Meditation.Percentage)
	require.Equal(t, 1, progress.Meditation.StreakDays)
}

func TestService_DashboardCachesAndInvalidates(t *testing.T) {
	repo := newFakeRepo()
	cache := newRecordingCache()
	svc := newTestService(repo, cache)
	ctx := context.Background()

	_, err := svc.LogExercise(ctx, 7, ExerciseRequest{Duration: 30})
	require.NoError(t, err)

	first, err := svc.Dashboard(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 10, first.Stats.ActivityScore)
	require.Equal(t, 1, cache.sets)

	repo.mu.Lock()
	repo.listCalls = 0
	repo.mu.Unlock()
	second, err := svc.Dashboard(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, first.Stats, second.Stats)
	require.Zero(t, repo.listCalls)

	_, err = svc.LogExercise(ctx, 7, ExerciseRequest{Duration: 30})
	require.NoError(t, err)
	require.Equal(t, 2, cache.invalidations)

	third, err := svc.Dashboard(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 20, third.Stats.ActivityScore)
}

func TestService_DashboardNotCachedAcrossConcurrentWrite(t *testing.T) {
	repo := newFakeRepo()
	cache := newRecordingCache()
	svc := newTestService(repo, cache)
	ctx := context.Background()

	var once sync.Once
	var writeErr error
	repo.onListMoods = func() {
		once.Do(func() {
			_, writeErr = svc.LogExercise(ctx, 7, ExerciseRequest{Duration: 30})
		})
	}

	_, err := svc.Dashboard(ctx, 7)
	require.NoError(t, err)
	require.NoError(t, writeErr)
	require.Zero(t, cache.sets)

	fresh, err := svc.Dashboard(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 10, fresh.Stats.ActivityScore)
	require.Equal(t, 1, cache.sets)
}

func TestService_DashboardSurvivesCacheFailure(t *testing.T) {
	cache := newRecordingCache()
	cache.fail = errors.New("cache down")
	svc := newTestService(newFakeRepo(), cache)

	_, err := svc.LogMood(context.Background(), 1, MoodRequest{Mood: "happy"})
	require.NoError(t, err)

	dashboard, err := svc.Dashboard(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 10.0, dashboard.Stats.MoodScore)
}

func TestService_SnapshotPropagatesStorageErrors(t *testing.T) {
	repo := newFakeRepo()
	repo.failList = errors.New("db offline")
	svc := newTestService(repo, nil)

	_, err := svc.Snapshot(context.Background(), 1)
	require.True(t, apperrors.IsCode(err, "storage_error"))

	_, err = svc.Dashboard(context.Background(), 1)
	require.True(t, apperrors.IsCode(err, "storage_error"))
}

func TestService_SnapshotUsesConfiguredLocation(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*60*60+30*60)
	svc := NewService(Config{Location: kolkata}, newFakeRepo(), nil, newTestLogger()).(*service)
	svc.now = func() time.Time { return fixedNow }

	snapshot, err := svc.Snapshot(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, kolkata, snapshot.Now.Location())
	require.True(t, snapshot.Now.Equal(fixedNow))
}

func newTestService(repo Repository, cache DashboardCache) Service {
	svc := NewService(Config{Goals: metrics.DefaultGoals(), DashboardTTL: time.Minute}, repo, cache, newTestLogger()).(*service)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeRepo struct {
	mu          sync.Mutex
	seq         int64
	listCalls   int
	failList    error
	onListMoods func()
	moods       []metrics.MoodEntry
	activities  []metrics.ActivityEntry
	exercises   []metrics.ExerciseEntry
	meditations []metrics.MeditationEntry
	sleep       []metrics.SleepEntry
	journals    []metrics.JournalEntry
}

func newFakeRepo() *fakeRepo { return &fakeRepo{} }

func (f *fakeRepo) next() int64 {
	f.seq++
	return f.seq
}

func (f *fakeRepo) listed() error {
	f.listCalls++
	return f.failList
}

func (f *fakeRepo) InsertMood(_ context.Context, e metrics.MoodEntry) (metrics.MoodEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = f.next()
	f.moods = append(f.moods, e)
	return e, nil
}

func (f *fakeRepo) ListMoods(_ context.Context, userID int64) ([]metrics.MoodEntry, error) {
	if f.onListMoods != nil {
		f.onListMoods()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []metrics.MoodEntry
	for _, e := range f.moods {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, f.listed()
}

func (f *fakeRepo) InsertActivity(_ context.Context, e metrics.ActivityEntry) (metrics.ActivityEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = f.next()
	f.activities = append(f.activities, e)
	return e, nil
}

func (f *fakeRepo) ListActivities(_ context.Context, userID int64) ([]metrics.ActivityEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []metrics.ActivityEntry
	for _, e := range f.activities {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, f.listed()
}

func (f *fakeRepo) InsertExercise(_ context.Context, e metrics.ExerciseEntry) (metrics.ExerciseEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = f.next()
	f.exercises = append(f.exercises, e)
	return e, nil
}

func (f *fakeRepo) ListExercises(_ context.Context, userID int64) ([]metrics.ExerciseEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []metrics.ExerciseEntry
	for _, e := range f.exercises {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, f.listed()
}

func (f *fakeRepo) InsertMeditation(_ context.Context, e metrics.MeditationEntry) (metrics.MeditationEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = f.next()
	f.meditations = append(f.meditations, e)
	return e, nil
}

func (f *fakeRepo) ListMeditations(_ context.Context, userID int64) ([]metrics.MeditationEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []metrics.MeditationEntry
	for _, e := range f.meditations {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, f.listed()
}

func (f *fakeRepo) InsertSleep(_ context.Context, e metrics.SleepEntry) (metrics.SleepEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = f.next()
	f.sleep = append(f.sleep, e)
	return e, nil
}

func (f *fakeRepo) ListSleep(_ context.Context, userID int64) ([]metrics.SleepEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []metrics.SleepEntry
	for _, e := range f.sleep {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, f.listed()
}

func (f *fakeRepo) InsertJournal(_ context.Context, e metrics.JournalEntry) (metrics.JournalEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = f.next()
	f.journals = append(f.journals, e)
	return e, nil
}

func (f *fakeRepo) ListJournals(_ context.Context, userID int64) ([]metrics.JournalEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []metrics.JournalEntry
	for _, e := range f.journals {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, f.listed()
}

func (f *fakeRepo) DeleteJournal(_ context.Context, userID, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.journals {
		if e.ID == id && e.UserID == userID {
			f.journals = append(f.journals[:i], f.journals[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type recordingCache struct {
	mu            sync.Mutex
	entries       map[int64]metrics.Dashboard
	sets          int
	invalidations int
	fail          error
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: make(map[int64]metrics.Dashboard)}
}

func (c *recordingCache) Get(_ context.Context, userID int64) (metrics.Dashboard, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return metrics.Dashboard{}, false, c.fail
	}
	d, ok := c.entries[userID]
	return d, ok, nil
}

func (c *recordingCache) Set(_ context.Context, userID int64, d metrics.Dashboard, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return c.fail
	}
	c.sets++
	c.entries[userID] = d
	return nil
}

func (c *recordingCache) Invalidate(_ context.Context, userID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	if c.fail != nil {
		return c.fail
	}
	delete(c.entries, userID)
	return nil
}
