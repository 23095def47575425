package wellnessrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/wellness-hub/internal/domain/metrics"
	"github.com/yanqian/wellness-hub/internal/domain/wellness"
)

// PostgresRepository persists wellness logs in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// collect scans every row with scan and closes rows.
func collect[T any](rows pgx.Rows, scan func(rowScanner) (T, error)) ([]T, error) {
	defer rows.Close()
	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) InsertMood(ctx context.Context, entry metrics.MoodEntry) (metrics.MoodEntry, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO moods (user_id, mood, note, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, mood, note, date
	`, entry.UserID, string(entry.Mood), entry.Note, entry.Date)
	return scanMood(row)
}

func (r *PostgresRepository) ListMoods(ctx context.Context, userID int64) ([]metrics.MoodEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, mood, note, date
		FROM moods
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanMood)
}

func (r *PostgresRepository) InsertActivity(ctx context.Context, entry metrics.ActivityEntry) (metrics.ActivityEntry, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO activities (user_id, activity, duration, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, activity, duration, date
	`, entry.UserID, entry.ActivityType, entry.Duration, entry.Date)
	return scanActivity(row)
}

func (r *PostgresRepository) ListActivities(ctx context.Context, userID int64) ([]metrics.ActivityEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, activity, duration, date
		FROM activities
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanActivity)
}

func (r *PostgresRepository) InsertExercise(ctx context.Context, entry metrics.ExerciseEntry) (metrics.ExerciseEntry, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO exercises (user_id, exercise_type, duration, calories, notes, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, exercise_type, duration, calories, notes, date
	`, entry.UserID, entry.ExerciseType, entry.DurationMinutes, entry.Calories, entry.Notes, entry.Date)
	return scanExercise(row)
}

func (r *PostgresRepository) ListExercises(ctx context.Context, userID int64) ([]metrics.ExerciseEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, exercise_type, duration, calories, notes, date
		FROM exercises
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanExercise)
}

func (r *PostgresRepository) InsertMeditation(ctx context.Context, entry metrics.MeditationEntry) (metrics.MeditationEntry, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO meditations (user_id, meditation_type, duration, mood_before, mood_after, notes, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, meditation_type, duration, mood_before, mood_after, notes, date
	`, entry.UserID, entry.MeditationType, entry.DurationMinutes, entry.MoodBefore, entry.MoodAfter, entry.Notes, entry.Date)
	return scanMeditation(row)
}

func (r *PostgresRepository) ListMeditations(ctx context.Context, userID int64) ([]metrics.MeditationEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, meditation_type, duration, mood_before, mood_after, notes, date
		FROM meditations
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanMeditation)
}

func (r *PostgresRepository) InsertSleep(ctx context.Context, entry metrics.SleepEntry) (metrics.SleepEntry, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO sleep_logs (user_id, duration, quality, bedtime, wake_time, notes, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, duration, quality, bedtime, wake_time, notes, date
	`, entry.UserID, entry.DurationHours, entry.Quality, entry.Bedtime, entry.WakeTime, entry.Notes, entry.Date)
	return scanSleep(row)
}

func (r *PostgresRepository) ListSleep(ctx context.Context, userID int64) ([]metrics.SleepEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, duration, quality, bedtime, wake_time, notes, date
		FROM sleep_logs
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSleep)
}

func (r *PostgresRepository) InsertJournal(ctx context.Context, entry metrics.JournalEntry) (metrics.JournalEntry, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO journals (user_id, content, mood, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, content, mood, date
	`, entry.UserID, entry.Content, string(entry.Mood), entry.Date)
	return scanJournal(row)
}

func (r *PostgresRepository) ListJournals(ctx context.Context, userID int64) ([]metrics.JournalEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, content, mood, date
		FROM journals
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanJournal)
}

func (r *PostgresRepository) DeleteJournal(ctx context.Context, userID, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM journals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanMood(row rowScanner) (metrics.MoodEntry, error) {
	var e metrics.MoodEntry
	var mood string
	var note *string
	if err := row.Scan(&e.ID, &e.UserID, &mood, &note, &e.Date); err != nil {
		return metrics.MoodEntry{}, err
	}
	e.Mood = metrics.Mood(mood)
	e.Note = deref(note)
	e.Date = e.Date.UTC()
	return e, nil
}

func scanActivity(row rowScanner) (metrics.ActivityEntry, error) {
	var e metrics.ActivityEntry
	if err := row.Scan(&e.ID, &e.UserID, &e.ActivityType, &e.Duration, &e.Date); err != nil {
		return metrics.ActivityEntry{}, err
	}
	e.Date = e.Date.UTC()
	return e, nil
}

func scanExercise(row rowScanner) (metrics.ExerciseEntry, error) {
	var e metrics.ExerciseEntry
	var notes *string
	if err := row.Scan(&e.ID, &e.UserID, &e.ExerciseType, &e.DurationMinutes, &e.Calories, &notes, &e.Date); err != nil {
		return metrics.ExerciseEntry{}, err
	}
	e.Notes = deref(notes)
	e.Date = e.Date.UTC()
	return e, nil
}

func scanMeditation(row rowScanner) (metrics.MeditationEntry, error) {
	var e metrics.MeditationEntry
	var before, after, notes *string
	if err := row.Scan(&e.ID, &e.UserID, &e.MeditationType, &e.DurationMinutes, &before, &after, &notes, &e.Date); err != nil {
		return metrics.MeditationEntry{}, err
	}
	e.MoodBefore, e.MoodAfter, e.Notes = deref(before), deref(after), deref(notes)
	e.Date = e.Date.UTC()
	return e, nil
}

func scanSleep(row rowScanner) (metrics.SleepEntry, error) {
	var e metrics.SleepEntry
	var quality, bedtime, wake, notes *string
	if err := row.Scan(&e.ID, &e.UserID, &e.DurationHours, &quality, &bedtime, &wake, &notes, &e.Date); err != nil {
		return metrics.SleepEntry{}, err
	}
	e.Quality, e.Bedtime, e.WakeTime, e.Notes = deref(quality), deref(bedtime), deref(wake), deref(notes)
	e.Date = e.Date.UTC()
	return e, nil
}

func scanJournal(row rowScanner) (metrics.JournalEntry, error) {
	var e metrics.JournalEntry
	var mood *string
	if err := row.Scan(&e.ID, &e.UserID, &e.Content, &mood, &e.Date); err != nil {
		return metrics.JournalEntry{}, err
	}
	e.Mood = metrics.Mood(deref(mood))
	e.Date = e.Date.UTC()
	return e, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ wellness.Repository = (*PostgresRepository)(nil)
