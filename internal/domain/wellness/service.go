package wellness

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yanqian/wellness-hub/internal/domain/metrics"
	apperrors "github.com/yanqian/wellness-hub/pkg/errors"
	"github.com/yanqian/wellness-hub/pkg/util"
)

// Service exposes wellness logging and the derived views.
type Service interface {
	LogMood(ctx context.Context, userID int64, req MoodRequest) (metrics.MoodEntry, error)
	ListMoods(ctx context.Context, userID int64) ([]metrics.MoodEntry, error)
	LogActivity(ctx context.Context, userID int64, req ActivityRequest) (metrics.ActivityEntry, error)
	ListActivities(ctx context.Context, userID int64) ([]metrics.ActivityEntry, error)
	LogExercise(ctx context.Context, userID int64, req ExerciseRequest) (metrics.ExerciseEntry, error)
	ListExercises(ctx context.Context, userID int64) ([]metrics.ExerciseEntry, error)
	LogMeditation(ctx context.Context, userID int64, req MeditationRequest) (metrics.MeditationEntry, error)
	ListMeditations(ctx context.Context, userID int64) ([]metrics.MeditationEntry, error)
	LogSleep(ctx context.Context, userID int64, req SleepRequest) (metrics.SleepEntry, error)
	ListSleep(ctx context.Context, userID int64) ([]metrics.SleepEntry, error)
	AddJournal(ctx context.Context, userID int64, req JournalRequest) (metrics.JournalEntry, error)
	ListJournals(ctx context.Context, userID int64) ([]metrics.JournalEntry, error)
	DeleteJournal(ctx context.Context, userID, journalID int64) error

	WeeklyStats(ctx context.Context, userID int64) (metrics.WeeklyStats, error)
	WeeklyProgress(ctx context.Context, userID int64) (metrics.WeeklyStats, error)
	Dashboard(ctx context.Context, userID int64) (metrics.Dashboard, error)
	Snapshot(ctx context.Context, userID int64) (metrics.Snapshot, error)
}

type service struct {
	cfg    Config
	repo   Repository
	cache  DashboardCache
	now    func() time.Time
	logger *slog.Logger

	// writes counts log writes per user so a dashboard computed across a
	// concurrent write is not cached.
	mu     sync.Mutex
	writes map[int64]uint64
}

const (
	maxSleepHours       = 24
	maxMinutesPerEntry  = 24 * 60
	maxLabelLength      = 100
	maxSleepQualityLen  = 20
	clockLayout         = "15:04"
	defaultDashboardTTL = time.Minute
)

// NewService constructs a Service instance. cache may be nil.
func NewService(cfg Config, repo Repository, cache DashboardCache, logger *slog.Logger) Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.DashboardTTL <= 0 {
		cfg.DashboardTTL = defaultDashboardTTL
	}
	return &service{
		cfg:    cfg,
		repo:   repo,
		cache:  cache,
		now:    util.NowUTC,
		logger: logger.With("component", "wellness.service"),
		writes: make(map[int64]uint64),
	}
}

func (s *service) LogMood(ctx context.Context, userID int64, req MoodRequest) (metrics.MoodEntry, error) {
	mood, ok := metrics.ParseMood(req.Mood)
	if !ok {
		return metrics.MoodEntry{}, apperrors.Wrap("invalid_input", "mood must be one of happy, neutral, stressed, burnout", nil)
	}
	entry, err := s.repo.InsertMood(ctx, metrics.MoodEntry{
		UserID: userID,
		Mood:   mood,
		Note:   strings.TrimSpace(req.Note),
		Date:   s.stamp(req.At),
	})
	if err != nil {
		return metrics.MoodEntry{}, apperrors.Wrap("storage_error", "failed to save mood", err)
	}
	s.written(ctx, userID, "mood")
	return entry, nil
}

func (s *service) ListMoods(ctx context.Context, userID int64) ([]metrics.MoodEntry, error) {
	entries, err := s.repo.ListMoods(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to load moods", err)
	}
	return entries, nil
}

func (s *service) LogActivity(ctx context.Context, userID int64, req ActivityRequest) (metrics.ActivityEntry, error) {
	activity, err := label(req.Activity, "", "activity")
	if err != nil {
		return metrics.ActivityEntry{}, err
	}
	if err := validateDuration(req.Duration, maxMinutesPerEntry); err != nil {
		return metrics.ActivityEntry{}, err
	}
	entry, err := s.repo.InsertActivity(ctx, metrics.ActivityEntry{
		UserID:       userID,
		ActivityType: activity,
		Duration:     req.Duration,
		Date:         s.stamp(req.At),
	})
	if err != nil {
		return metrics.ActivityEntry{}, apperrors.Wrap("storage_error", "failed to save activity", err)
	}
	s.written(ctx, userID, "activity")
	return entry, nil
}

func (s *service) ListActivities(ctx context.Context, userID int64) ([]metrics.ActivityEntry, error) {
	entries, err := s.repo.ListActivities(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to load activities", err)
	}
	return entries, nil
}

func (s *service) LogExercise(ctx context.Context, userID int64, req ExerciseRequest) (metrics.ExerciseEntry, error) {
	exerciseType, err := label(req.ExerciseType, DefaultExerciseType, "exercise type")
	if err != nil {
		return metrics.ExerciseEntry{}, err
	}
	if err := validateDuration(req.Duration, maxMinutesPerEntry); err != nil {
		return metrics.ExerciseEntry{}, err
	}
	if req.Calories != nil && *req.Calories < 0 {
		return metrics.ExerciseEntry{}, apperrors.Wrap("invalid_input", "calories cannot be negative", nil)
	}
	entry, err := s.repo.InsertExercise(ctx, metrics.ExerciseEntry{
		UserID:          userID,
		ExerciseType:    exerciseType,
		DurationMinutes: req.Duration,
		Calories:        req.Calories,
		Notes:           strings.TrimSpace(req.Notes),
		Date:            s.stamp(req.At),
	})
	if err != nil {
		return metrics.ExerciseEntry{}, apperrors.Wrap("storage_error", "failed to save exercise", err)
	}
	s.written(ctx, userID, "exercise")
	return entry, nil
}

func (s *service) ListExercises(ctx context.Context, userID int64) ([]metrics.ExerciseEntry, error) {
	entries, err := s.repo.ListExercises(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to load exercises", err)
	}
	return entries, nil
}

func (s *service) LogMeditation(ctx context.Context, userID int64, req MeditationRequest) (metrics.MeditationEntry, error) {
	meditationType, err := label(req.MeditationType, DefaultMeditationType, "meditation type")
	if err != nil {
		return metrics.MeditationEntry{}, err
	}
	if err := validateDuration(req.Duration, maxMinutesPerEntry); err != nil {
		return metrics.MeditationEntry{}, err
	}
	entry, err := s.repo.InsertMeditation(ctx, metrics.MeditationEntry{
		UserID:          userID,
		MeditationType:  meditationType,
		DurationMinutes: req.Duration,
		MoodBefore:      strings.TrimSpace(req.MoodBefore),
		MoodAfter:       strings.TrimSpace(req.MoodAfter),
		Notes:           strings.TrimSpace(req.Notes),
		Date:            s.stamp(req.At),
	})
	if err != nil {
		return metrics.MeditationEntry{}, apperrors.Wrap("storage_error", "failed to save meditation", err)
	}
	s.written(ctx, userID, "meditation")
	return entry, nil
}

func (s *service) ListMeditations(ctx context.Context, userID int64) ([]metrics.MeditationEntry, error) {
	entries, err := s.repo.ListMeditations(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to load meditations", err)
	}
	return entries, nil
}

func (s *service) LogSleep(ctx context.Context, userID int64, req SleepRequest) (metrics.SleepEntry, error) {
	if err := validateDuration(req.Duration, maxSleepHours); err != nil {
		return metrics.SleepEntry{}, err
	}
	quality := strings.TrimSpace(req.Quality)
	if quality == "" {
		quality = DefaultSleepQuality
	}
	if len([]rune(quality)) > maxSleepQualityLen {
		return metrics.SleepEntry{}, apperrors.Wrap("invalid_input", "sleep quality is too long", nil)
	}
	bedtime, err := clockTime(req.Bedtime, "bedtime")
	if err != nil {
		return metrics.SleepEntry{}, err
	}
	wake, err := clockTime(req.WakeTime, "wake time")
	if err != nil {
		return metrics.SleepEntry{}, err
	}
	entry, err := s.repo.InsertSleep(ctx, metrics.SleepEntry{
		UserID:        userID,
		DurationHours: req.Duration,
		Quality:       quality,
		Bedtime:       bedtime,
		WakeTime:      wake,
		Notes:         strings.TrimSpace(req.Notes),
		Date:          s.stamp(req.At),
	})
	if err != nil {
		return metrics.SleepEntry{}, apperrors.Wrap("storage_error", "failed to save sleep log", err)
	}
	s.written(ctx, userID, "sleep")
	return entry, nil
}

func (s *service) ListSleep(ctx context.Context, userID int64) ([]metrics.SleepEntry, error) {
	entries, err := s.repo.ListSleep(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to load sleep logs", err)
	}
	return entries, nil
}

func (s *service) AddJournal(ctx context.Context, userID int64, req JournalRequest) (metrics.JournalEntry, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return metrics.JournalEntry{}, apperrors.Wrap("invalid_input", "journal content cannot be empty", nil)
	}
	mood := metrics.MoodNeutral
	if strings.TrimSpace(req.Mood) != "" {
		parsed, ok := metrics.ParseMood(req.Mood)
		if !ok {
			return metrics.JournalEntry{}, apperrors.Wrap("invalid_input", "mood must be one of happy, neutral, stressed, burnout", nil)
		}
		mood = parsed
	}
	entry, err := s.repo.InsertJournal(ctx, metrics.JournalEntry{
		UserID:  userID,
		Content: content,
		Mood:    mood,
		Date:    s.stamp(req.At),
	})
	if err != nil {
		return metrics.JournalEntry{}, apperrors.Wrap("storage_error", "failed to save journal", err)
	}
	s.written(ctx, userID, "journal")
	return entry, nil
}

func (s *service) ListJournals(ctx context.Context, userID int64) ([]metrics.JournalEntry, error) {
	entries, err := s.repo.ListJournals(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to load journals", err)
	}
	return entries, nil
}

func (s *service) DeleteJournal(ctx context.Context, userID, journalID int64) error {
	if journalID <= 0 {
		return apperrors.Wrap("invalid_input", "journal id must be positive", nil)
	}
	deleted, err := s.repo.DeleteJournal(ctx, userID, journalID)
	if err != nil {
		return apperrors.Wrap("storage_error", "failed to delete journal", err)
	}
	if !deleted {
		return apperrors.Wrap("not_found", "journal not found", nil)
	}
	s.written(ctx, userID, "journal")
	return nil
}

func (s *service) WeeklyStats(ctx context.Context, userID int64) (metrics.WeeklyStats, error) {
	snapshot := metrics.Snapshot{Now: s.clock(), Goals: s.cfg.Goals}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snapshot.Exercises, err = s.repo.ListExercises(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		snapshot.Sleep, err = s.repo.ListSleep(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		snapshot.Meditations, err = s.repo.ListMeditations(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return metrics.WeeklyStats{}, apperrors.Wrap("storage_error", "failed to load weekly logs", err)
	}
	return metrics.WeeklyFromLogs(snapshot), nil
}

func (s *service) WeeklyProgress(ctx context.Context, userID int64) (metrics.WeeklyStats, error) {
	activities, err := s.repo.ListActivities(ctx, userID)
	if err != nil {
		return metrics.WeeklyStats{}, apperrors.Wrap("storage_error", "failed to load activities", err)
	}
	return metrics.WeeklyFromActivities(activities, s.cfg.Goals, s.clock()), nil
}

func (s *service) Dashboard(ctx context.Context, userID int64) (metrics.Dashboard, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.logger.Warn("dashboard cache read failed", "userId", userID, "error", err)
		} else if ok {
			return cached, nil
		}
	}

	generation := s.generation(userID)
	snapshot, err := s.Snapshot(ctx, userID)
	if err != nil {
		return metrics.Dashboard{}, err
	}
	dashboard := metrics.BuildDashboard(snapshot)

	if s.cache != nil {
		if s.generation(userID) != generation {
			s.logger.Debug("skipping dashboard cache write after concurrent log write", "userId", userID)
			return dashboard, nil
		}
		if err := s.cache.Set(ctx, userID, dashboard, s.cfg.DashboardTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", "userId", userID, "error", err)
		}
	}
	return dashboard, nil
}

// Snapshot loads every collection concurrently and stamps the result with a
// single reference time once all loads have joined.
func (s *service) Snapshot(ctx context.Context, userID int64) (metrics.Snapshot, error) {
	var snapshot metrics.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snapshot.Moods, err = s.repo.ListMoods(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		snapshot.Activities, err = s.repo.ListActivities(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		snapshot.Exercises, err = s.repo.ListExercises(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		snapshot.Meditations, err = s.repo.ListMeditations(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		snapshot.Sleep, err = s.repo.ListSleep(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		snapshot.Journals, err = s.repo.ListJournals(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("snapshot load failed", "userId", userID, "error", err)
		return metrics.Snapshot{}, apperrors.Wrap("storage_error", "failed to load wellness logs", err)
	}
	snapshot.Now = s.clock()
	snapshot.Goals = s.cfg.Goals
	return snapshot, nil
}

func (s *service) clock() time.Time {
	return s.now().In(s.cfg.Location)
}

func (s *service) stamp(at *time.Time) time.Time {
	if at == nil || at.IsZero() {
		return s.clock()
	}
	return *at
}

func (s *service) written(ctx context.Context, userID int64, kind string) {
	s.logger.Debug("wellness log written", "userId", userID, "kind", kind)
	s.mu.Lock()
	s.writes[userID]++
	s.mu.Unlock()
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", "userId", userID, "error", err)
	}
}

func (s *service) generation(userID int64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes[userID]
}

func label(raw, fallback, field string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		value = fallback
	}
	if value == "" {
		return "", apperrors.Wrap("invalid_input", field+" cannot be empty", nil)
	}
	if len([]rune(value)) > maxLabelLength {
		return "", apperrors.Wrap("invalid_input", field+" is too long", nil)
	}
	return value, nil
}

func validateDuration(v, limit float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return apperrors.Wrap("invalid_input", "duration must be greater than zero", nil)
	}
	if v > limit {
		return apperrors.Wrap("invalid_input", "duration is too long", nil)
	}
	return nil
}

func clockTime(raw, field string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", nil
	}
	parsed, err := time.Parse(clockLayout, value)
	if err != nil {
		return "", apperrors.Wrap("invalid_input", field+" must be HH:MM", err)
	}
	return parsed.Format(clockLayout), nil
}
