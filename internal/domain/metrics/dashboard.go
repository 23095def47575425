package metrics

import (
	"time"

	"github.com/yanqian/wellness-hub/pkg/util"
)

// Goals are the weekly targets used as percentage denominators.
type Goals struct {
	ExerciseMinutes   float64 `json:"exerciseMinutes"`
	SleepHours        float64 `json:"sleepHours"`
	MeditationMinutes float64 `json:"meditationMinutes"`
	ActivityMinutes   float64 `json:"activityMinutes"`
}

// DefaultGoals returns the stock weekly targets.
func DefaultGoals() Goals {
	return Goals{
		ExerciseMinutes:   300,
		SleepHours:        56,
		MeditationMinutes: 140,
		ActivityMinutes:   300,
	}
}

func (g Goals) orDefaults() Goals {
	d := DefaultGoals()
	if g.ExerciseMinutes <= 0 {
		g.ExerciseMinutes = d.ExerciseMinutes
	}
	if g.SleepHours <= 0 {
		g.SleepHours = d.SleepHours
	}
	if g.MeditationMinutes <= 0 {
		g.MeditationMinutes = d.MeditationMinutes
	}
	if g.ActivityMinutes <= 0 {
		g.ActivityMinutes = d.ActivityMinutes
	}
	return g
}

// Snapshot is every collection from one fetch cycle plus the reference time.
// All derived values are computed against Now; callers must not mix
// collections loaded at different times.
type Snapshot struct {
	Now         time.Time
	Goals       Goals
	Moods       []MoodEntry
	Activities  []ActivityEntry
	Exercises   []ExerciseEntry
	Meditations []MeditationEntry
	Sleep       []SleepEntry
	Journals    []JournalEntry
}

// CategoryStat is the weekly progress card for one tracked category.
type CategoryStat struct {
	Current       float64 `json:"current"`
	Goal          float64 `json:"goal"`
	Percentage    int     `json:"percentage"`
	StreakDays    int     `json:"streak"`
	LongestStreak int     `json:"longestStreak"`
}

// WeeklyStats groups the three tracked categories.
type WeeklyStats struct {
	Exercise   CategoryStat `json:"exercise"`
	Sleep      CategoryStat `json:"sleep"`
	Meditation CategoryStat `json:"meditation"`
}

// Stats are the dashboard headline values.
type Stats struct {
	MoodScore       float64     `json:"moodScore"`
	MoodTrend       Trend       `json:"moodTrend"`
	StressLevel     StressLevel `json:"stressLevel"`
	StressTrend     Trend       `json:"stressTrend"`
	ActivityScore   int         `json:"activityScore"`
	ActivityTrend   Trend       `json:"activityTrend"`
	SleepScore      int         `json:"sleepScore"`
	MeditationScore int         `json:"meditationScore"`
	WellnessScore   int         `json:"wellnessScore"`
	WellnessTrend   Trend       `json:"wellnessTrend"`
	TotalActiveDays int         `json:"totalActiveDays"`
}

// DailyPoint is one day of the seven-day chart series.
type DailyPoint struct {
	Day               string  `json:"day"`
	Weekday           string  `json:"weekday"`
	ActivityMinutes   float64 `json:"activityMinutes"`
	ExerciseMinutes   float64 `json:"exerciseMinutes"`
	MeditationMinutes float64 `json:"meditationMinutes"`
	SleepHours        float64 `json:"sleepHours"`
	Wellness          *int    `json:"wellness"`
}

// Totals are all-time counters shown next to the charts.
type Totals struct {
	ActivityMinutes   float64  `json:"activityMinutes"`
	Sessions          int      `json:"sessions"`
	ActiveDaysLast7   int      `json:"activeDaysLast7"`
	MeditationMinutes float64  `json:"meditationMinutes"`
	AverageSleepHours *float64 `json:"averageSleepHours"`
	MoodLogs          int      `json:"moodLogs"`
	JournalEntries    int      `json:"journalEntries"`
}

// Dashboard is the complete derived view model.
type Dashboard struct {
	GeneratedAt   time.Time    `json:"generatedAt"`
	Stats         Stats        `json:"stats"`
	Weekly        WeeklyStats  `json:"weekly"`
	LastSevenDays []DailyPoint `json:"lastSevenDays"`
	MoodBreakdown []MoodCount  `json:"moodBreakdown"`
	Totals        Totals       `json:"totals"`
}

// Category builds the weekly card for one category: the week-to-date total
// and the streak over the full history.
func Category(samples []Sample, goal float64, now time.Time) CategoryStat {
	week := Weekly(samples, goal, now)
	dates := sampleDates(samples)
	return CategoryStat{
		Current:       roundTo(week.Current, 1),
		Goal:          goal,
		Percentage:    week.Percentage,
		StreakDays:    Streak(dates, now),
		LongestStreak: LongestStreak(dates, now.Location()),
	}
}

// WeeklyFromLogs computes the cards from the dedicated exercise, sleep and
// meditation logs.
func WeeklyFromLogs(s Snapshot) WeeklyStats {
	goals := s.Goals.orDefaults()
	return WeeklyStats{
		Exercise:   Category(ExerciseSamples(s.Exercises), goals.ExerciseMinutes, s.Now),
		Sleep:      Category(SleepSamples(s.Sleep), goals.SleepHours, s.Now),
		Meditation: Category(MeditationSamples(s.Meditations), goals.MeditationMinutes, s.Now),
	}
}

// Activity types the generic tracker recognizes.
const (
	ActivityExercise   = "Exercise"
	ActivitySleep      = "Sleep"
	ActivityMeditation = "Meditation"
)

// WeeklyFromActivities computes the cards from the generic activity log,
// bucketing by activity type.
func WeeklyFromActivities(entries []ActivityEntry, goals Goals, now time.Time) WeeklyStats {
	goals = goals.orDefaults()
	return WeeklyStats{
		Exercise:   Category(ActivitySamples(entries, ActivityExercise), goals.ExerciseMinutes, now),
		Sleep:      Category(ActivitySamples(entries, ActivitySleep), goals.SleepHours, now),
		Meditation: Category(ActivitySamples(entries, ActivityMeditation), goals.MeditationMinutes, now),
	}
}

// BuildDashboard derives the full view model from one snapshot.
func BuildDashboard(s Snapshot) Dashboard {
	goals := s.Goals.orDefaults()
	now := s.Now
	loc := now.Location()

	exercise := ExerciseSamples(s.Exercises)
	activity := ActivitySamples(s.Activities, "")
	weekly := WeeklyFromLogs(s)

	activityScore := ActivityScore(exercise, activity, goals.ActivityMinutes, now)
	sleepScore := Clamp(weekly.Sleep.Percentage)
	meditationScore := Clamp(weekly.Meditation.Percentage)

	stats := Stats{
		MoodScore:       MoodScore(s.Moods),
		MoodTrend:       MoodTrend(s.Moods, now),
		StressLevel:     ClassifyStress(s.Moods),
		StressTrend:     StressTrend(s.Moods, now),
		ActivityScore:   activityScore,
		ActivityTrend:   ActivityTrend(exercise, activity, now),
		SleepScore:      sleepScore,
		MeditationScore: meditationScore,
		WellnessScore:   Composite(activityScore, sleepScore, meditationScore),
		WellnessTrend:   WellnessTrend(s.Moods, now),
		TotalActiveDays: ActiveDays(loc, sampleDates(exercise), sampleDates(activity)),
	}

	days := lastSevenDays(s)
	activeDays := 0
	for _, d := range days {
		if d.ActivityMinutes+d.ExerciseMinutes > 0 {
			activeDays++
		}
	}

	totals := Totals{
		ActivityMinutes:   sum(exercise) + sum(activity),
		Sessions:          len(exercise) + len(activity),
		ActiveDaysLast7:   activeDays,
		MeditationMinutes: sum(MeditationSamples(s.Meditations)),
		MoodLogs:          len(s.Moods),
		JournalEntries:    len(s.Journals),
	}
	if len(s.Sleep) > 0 {
		avg := roundTo(sum(SleepSamples(s.Sleep))/float64(len(s.Sleep)), 1)
		totals.AverageSleepHours = &avg
	}

	return Dashboard{
		GeneratedAt:   now,
		Stats:         stats,
		Weekly:        weekly,
		LastSevenDays: days,
		MoodBreakdown: Breakdown(s.Moods),
		Totals:        totals,
	}
}

func lastSevenDays(s Snapshot) []DailyPoint {
	loc := s.Now.Location()
	today := util.StartOfDay(s.Now)
	points := make([]DailyPoint, 7)
	index := make(map[string]int, 7)
	for i := range points {
		day := today.AddDate(0, 0, i-6)
		key := util.DayKey(day, loc)
		points[i] = DailyPoint{Day: key, Weekday: day.Format("Mon")}
		index[key] = i
	}
	bucket := func(t time.Time) (int, bool) {
		i, ok := index[util.DayKey(t, loc)]
		return i, ok
	}

	for _, e := range s.Activities {
		if i, ok := bucket(e.Date); ok {
			points[i].ActivityMinutes += amount(e.Duration)
		}
	}
	for _, e := range s.Exercises {
		if i, ok := bucket(e.Date); ok {
			points[i].ExerciseMinutes += amount(e.DurationMinutes)
		}
	}
	for _, e := range s.Meditations {
		if i, ok := bucket(e.Date); ok {
			points[i].MeditationMinutes += amount(e.DurationMinutes)
		}
	}
	for _, e := range s.Sleep {
		if i, ok := bucket(e.Date); ok {
			points[i].SleepHours += amount(e.DurationHours)
		}
	}

	moodTotals := make([]float64, 7)
	moodCounts := make([]int, 7)
	for _, e := range s.Moods {
		if i, ok := bucket(e.Date); ok {
			moodTotals[i] += e.Mood.Wellness()
			moodCounts[i]++
		}
	}
	for i := range points {
		if moodCounts[i] > 0 {
			v := roundHalfUp(moodTotals[i] / float64(moodCounts[i]))
			points[i].Wellness = &v
		}
	}
	return points
}
