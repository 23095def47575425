package wellnessrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yanqian/wellness-hub/internal/domain/metrics"
	"github.com/yanqian/wellness-hub/internal/domain/wellness"
)

// table is one in-memory collection keyed by owner.
type table[T any] struct {
	seq  int64
	rows map[int64][]T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64][]T)}
}

func (t *table[T]) insert(userID int64, row T, setID func(*T, int64)) T {
	t.seq++
	setID(&row, t.seq)
	t.rows[userID] = append(t.rows[userID], row)
	return row
}

// list returns a newest-first copy; ties keep insertion order reversed.
func (t *table[T]) list(userID int64, dateOf func(T) time.Time) []T {
	src := t.rows[userID]
	out := make([]T, len(src))
	for i := range src {
		out[len(src)-1-i] = src[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return dateOf(out[i]).After(dateOf(out[j]))
	})
	return out
}

// MemoryRepository keeps wellness logs in process memory for tests/dev.
type MemoryRepository struct {
	mu          sync.RWMutex
	moods       *table[metrics.MoodEntry]
	activities  *table[metrics.ActivityEntry]
	exercises   *table[metrics.ExerciseEntry]
	meditations *table[metrics.MeditationEntry]
	sleep       *table[metrics.SleepEntry]
	journals    *table[metrics.JournalEntry]
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		moods:       newTable[metrics.MoodEntry](),
		activities:  newTable[metrics.ActivityEntry](),
		exercises:   newTable[metrics.ExerciseEntry](),
		meditations: newTable[metrics.MeditationEntry](),
		sleep:       newTable[metrics.SleepEntry](),
		journals:    newTable[metrics.JournalEntry](),
	}
}

func (r *MemoryRepository) InsertMood(_ context.Context, entry metrics.MoodEntry) (metrics.MoodEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.moods.insert(entry.UserID, entry, func(e *metrics.MoodEntry, id int64) { e.ID = id }), nil
}

func (r *MemoryRepository) ListMoods(_ context.Context, userID int64) ([]metrics.MoodEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.moods.list(userID, func(e metrics.MoodEntry) time.Time { return e.Date }), nil
}

func (r *MemoryRepository) InsertActivity(_ context.Context, entry metrics.ActivityEntry) (metrics.ActivityEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activities.insert(entry.UserID, entry, func(e *metrics.ActivityEntry, id int64) { e.ID = id }), nil
}

func (r *MemoryRepository) ListActivities(_ context.Context, userID int64) ([]metrics.ActivityEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activities.list(userID, func(e metrics.ActivityEntry) time.Time { return e.Date }), nil
}

func (r *MemoryRepository) InsertExercise(_ context.Context, entry metrics.ExerciseEntry) (metrics.ExerciseEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.exercises.insert(entry.UserID, entry, func(e *metrics.ExerciseEntry, id int64) { e.ID = id }), nil
}

func (r *MemoryRepository) ListExercises(_ context.Context, userID int64) ([]metrics.ExerciseEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.exercises.list(userID, func(e metrics.ExerciseEntry) time.Time { return e.Date }), nil
}

func (r *MemoryRepository) InsertMeditation(_ context.Context, entry metrics.MeditationEntry) (metrics.MeditationEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.meditations.insert(entry.UserID, entry, func(e *metrics.MeditationEntry, id int64) { e.ID = id }), nil
}

func (r *MemoryRepository) ListMeditations(_ context.Context, userID int64) ([]metrics.MeditationEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.meditations.list(userID, func(e metrics.MeditationEntry) time.Time { return e.Date }), nil
}

func (r *MemoryRepository) InsertSleep(_ context.Context, entry metrics.SleepEntry) (metrics.SleepEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sleep.insert(entry.UserID, entry, func(e *metrics.SleepEntry, id int64) { e.ID = id }), nil
}

func (r *MemoryRepository) ListSleep(_ context.Context, userID int64) ([]metrics.SleepEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sleep.list(userID, func(e metrics.SleepEntry) time.Time { return e.Date }), nil
}

func (r *MemoryRepository) InsertJournal(_ context.Context, entry metrics.JournalEntry) (metrics.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.journals.insert(entry.UserID, entry, func(e *metrics.JournalEntry, id int64) { e.ID = id }), nil
}

func (r *MemoryRepository) ListJournals(_ context.Context, userID int64) ([]metrics.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.journals.list(userID, func(e metrics.JournalEntry) time.Time { return e.Date }), nil
}

func (r *MemoryRepository) DeleteJournal(_ context.Context, userID, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.journals.rows[userID]
	for i, row := range rows {
		if row.ID == id {
			r.journals.rows[userID] = append(rows[:i:i], rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

var _ wellness.Repository = (*MemoryRepository)(nil)
