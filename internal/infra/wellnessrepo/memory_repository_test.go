package wellnessrepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/wellness-hub/internal/domain/metrics"
)

func TestMemoryRepository_ListsNewestFirstPerUser(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)

	_, err := repo.InsertMood(ctx, metrics.MoodEntry{UserID: 1, Mood: metrics.MoodHappy, Date: base.Add(-48 * time.Hour)})
	require.NoError(t, err)
	_, err = repo.InsertMood(ctx, metrics.MoodEntry{UserID: 1, Mood: metrics.MoodStressed, Date: base})
	require.NoError(t, err)
	_, err = repo.InsertMood(ctx, metrics.MoodEntry{UserID: 2, Mood: metrics.MoodBurnout, Date: base})
	require.NoError(t, err)

	moods, err := repo.ListMoods(ctx, 1)
	require.NoError(t, err)
	require.Len(t, moods, 2)
	require.Equal(t, metrics.MoodStressed, moods[0].Mood)
	require.Equal(t, metrics.MoodHappy, moods[1].Mood)
	require.NotEqual(t, moods[0].ID, moods[1].ID)

	other, err := repo.ListMoods(ctx, 3)
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestMemoryRepository_ListReturnsCopy(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	_, err := repo.InsertExercise(ctx, metrics.ExerciseEntry{UserID: 1, ExerciseType: "Run", DurationMinutes: 30, Date: time.Now()})
	require.NoError(t, err)

	first, err := repo.ListExercises(ctx, 1)
	require.NoError(t, err)
	first[0].ExerciseType = "mutated"

	second, err := repo.ListExercises(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Run", second[0].ExerciseType)
}

func TestMemoryRepository_DeleteJournalChecksOwner(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	entry, err := repo.InsertJournal(ctx, metrics.JournalEntry{UserID: 1, Content: "hello", Date: time.Now()})
	require.NoError(t, err)

	deleted, err := repo.DeleteJournal(ctx, 2, entry.ID)
	require.NoError(t, err)
	require.False(t, deleted)

	deleted, err = repo.DeleteJournal(ctx, 1, entry.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	journals, err := repo.ListJournals(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, journals)
}
