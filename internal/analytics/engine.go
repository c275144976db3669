package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// recoveryLookbackDays bounds how far back the recovery view looks for each
// muscle category's last training and recent set counts.
const recoveryLookbackDays = 7

// SetFilter selects sets from the store. Nil fields match everything.
type SetFilter struct {
	ExerciseID    *uuid.UUID
	From, To      *time.Time
	CompletedOnly bool
}

// Store is the read contract the engine runs against. Implementations own
// persistence; the engine only composes pure computation over what they
// return. A store error is a real failure and is surfaced to the caller,
// never collapsed into "no data".
type Store interface {
	FetchSets(ctx context.Context, filter SetFilter) ([]models.WorkoutSet, error)
	FetchExercises(ctx context.Context) ([]models.Exercise, error)
	FetchExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error)
	FetchGoals(ctx context.Context, activeOnly bool) ([]models.FitnessGoal, error)
}

// Engine composes the store with the pure analytics functions. It holds no
// mutable state: every method is a single read followed by computation, safe
// to call concurrently.
type Engine struct {
	store Store
	loc   *time.Location
	now   func() time.Time
	log   *slog.Logger
}

// New creates an Engine. All day and week boundaries use loc; pass time.Local
// for device-local semantics.
func New(store Store, loc *time.Location, log *slog.Logger) *Engine {
	return &Engine{store: store, loc: loc, now: time.Now, log: log}
}

// SessionHistory returns date-ascending session summaries for an exercise,
// optionally bounded to [from, to).
func (e *Engine) SessionHistory(ctx context.Context, exerciseID uuid.UUID, from, to *time.Time) ([]SessionSummary, error) {
	ex, err := e.store.FetchExercise(ctx, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("fetching exercise: %w", err)
	}

	sets, err := e.store.FetchSets(ctx, SetFilter{ExerciseID: &exerciseID, From: from, To: to, CompletedOnly: true})
	if err != nil {
		return nil, fmt.Errorf("fetching sets: %w", err)
	}

	return e.summarizeByDay(sets, *ex), nil
}

// summarizeByDay groups one exercise's sets into per-calendar-day sessions.
func (e *Engine) summarizeByDay(sets []models.WorkoutSet, ex models.Exercise) []SessionSummary {
	byDay := map[time.Time][]models.WorkoutSet{}
	var days []time.Time
	for _, set := range sets {
		day := dayStart(set.Date, e.loc)
		if _, seen := byDay[day]; !seen {
			days = append(days, day)
		}
		byDay[day] = append(byDay[day], set)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	opts := OptionsForExercise(ex)
	sessions := make([]SessionSummary, 0, len(days))
	for _, day := range days {
		s := Summarize(byDay[day], opts)
		s.Date = day
		sessions = append(sessions, s)
	}
	return sessions
}

// Progression evaluates the advisor against the exercise's most recent
// sessions.
func (e *Engine) Progression(ctx context.Context, exerciseID uuid.UUID) (ProgressionAdvice, error) {
	ex, err := e.store.FetchExercise(ctx, exerciseID)
	if err != nil {
		return ProgressionAdvice{}, fmt.Errorf("fetching exercise: %w", err)
	}
	sets, err := e.store.FetchSets(ctx, SetFilter{ExerciseID: &exerciseID, CompletedOnly: true})
	if err != nil {
		return ProgressionAdvice{}, fmt.Errorf("fetching sets: %w", err)
	}

	sessions := e.summarizeByDay(sets, *ex)
	// Latest first for the advisor.
	recent := make([]SessionSummary, 0, advisorWindow)
	for i := len(sessions) - 1; i >= 0 && len(recent) < advisorWindow; i-- {
		recent = append(recent, sessions[i])
	}
	return Advise(recent, *ex), nil
}

// RecordCount counts exercises that set a new volume record within
// [from, to). With a zero range it applies the all-time policy: one record
// per exercise that has any completed set.
func (e *Engine) RecordCount(ctx context.Context, from, to time.Time) (int, error) {
	exercises, err := e.store.FetchExercises(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetching exercises: %w", err)
	}
	sets, err := e.store.FetchSets(ctx, SetFilter{CompletedOnly: true})
	if err != nil {
		return 0, fmt.Errorf("fetching sets: %w", err)
	}

	byExercise := groupByExercise(sets)

	if from.IsZero() && to.IsZero() {
		return CountAllTimeRecords(byExercise), nil
	}

	count := 0
	for _, ex := range exercises {
		sessions := e.summarizeByDay(byExercise[ex.ID], ex)
		if WindowHasRecord(sessions, from, to) {
			count++
		}
	}
	return count, nil
}

// PersonalRecords lists every record-setting set across all exercises,
// newest first.
func (e *Engine) PersonalRecords(ctx context.Context) ([]PersonalRecord, error) {
	exercises, err := e.store.FetchExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching exercises: %w", err)
	}
	sets, err := e.store.FetchSets(ctx, SetFilter{CompletedOnly: true})
	if err != nil {
		return nil, fmt.Errorf("fetching sets: %w", err)
	}

	names := make(map[uuid.UUID]string, len(exercises))
	for _, ex := range exercises {
		names[ex.ID] = ex.Name
	}
	return ListRecords(groupByExercise(sets), names), nil
}

// Streak computes training streaks across all exercises.
func (e *Engine) Streak(ctx context.Context) (StreakData, error) {
	sets, err := e.store.FetchSets(ctx, SetFilter{CompletedOnly: true})
	if err != nil {
		return StreakData{}, fmt.Errorf("fetching sets: %w", err)
	}
	dates := make([]time.Time, 0, len(sets))
	for _, set := range sets {
		dates = append(dates, set.Date)
	}
	return ComputeStreak(dates, e.now(), e.loc), nil
}

// Recovery returns per-muscle-group recovery estimates from the trailing
// training window, least-recovered groups first.
func (e *Engine) Recovery(ctx context.Context) ([]MuscleRecovery, error) {
	exercises, err := e.store.FetchExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching exercises: %w", err)
	}
	now := e.now()
	from := now.AddDate(0, 0, -recoveryLookbackDays)
	sets, err := e.store.FetchSets(ctx, SetFilter{From: &from, CompletedOnly: true})
	if err != nil {
		return nil, fmt.Errorf("fetching sets: %w", err)
	}

	categoryOf := make(map[uuid.UUID]string, len(exercises))
	for _, ex := range exercises {
		categoryOf[ex.ID] = ex.PrimaryCategory
	}

	trained := map[string]*CategoryTraining{}
	for _, cat := range models.Categories {
		trained[cat] = &CategoryTraining{Category: cat}
	}
	for _, set := range sets {
		cat := categoryOf[set.ExerciseID]
		ct, ok := trained[cat]
		if !ok {
			continue
		}
		ct.SetCount++
		when := set.Date
		if set.CompletedAt != nil {
			when = *set.CompletedAt
		}
		if ct.LastTrained == nil || when.After(*ct.LastTrained) {
			t := when
			ct.LastTrained = &t
		}
	}

	categories := make([]CategoryTraining, 0, len(models.Categories))
	for _, cat := range models.Categories {
		categories = append(categories, *trained[cat])
	}
	return ConsolidateRecovery(categories, now), nil
}

// Volume returns the bucketed volume trend for [from, to), or the sparse
// all-time trend when both bounds are zero.
func (e *Engine) Volume(ctx context.Context, bucket Bucket, from, to time.Time) ([]VolumePoint, error) {
	filter := SetFilter{CompletedOnly: true}
	if !from.IsZero() {
		filter.From = &from
	}
	if !to.IsZero() {
		filter.To = &to
	}
	sets, err := e.store.FetchSets(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("fetching sets: %w", err)
	}
	return VolumeTrend(sets, bucket, from, to, e.loc), nil
}

// Categories returns the category volume breakdown for [from, to).
func (e *Engine) Categories(ctx context.Context, from, to time.Time) ([]CategoryVolume, error) {
	exercises, err := e.store.FetchExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching exercises: %w", err)
	}
	filter := SetFilter{CompletedOnly: true}
	if !from.IsZero() {
		filter.From = &from
	}
	if !to.IsZero() {
		filter.To = &to
	}
	sets, err := e.store.FetchSets(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("fetching sets: %w", err)
	}

	categoryOf := make(map[uuid.UUID]string, len(exercises))
	for _, ex := range exercises {
		categoryOf[ex.ID] = ex.PrimaryCategory
	}
	return CategoryBreakdown(sets, categoryOf), nil
}

// PeriodReport compares volume and workout-day counts between the trailing
// window of the given length and the window immediately before it.
type PeriodReport struct {
	Days     int              `json:"days"`
	VolumeKg PeriodComparison `json:"volume_kg"`
	Workouts PeriodComparison `json:"workouts"`
}

// ComparePeriod builds a PeriodReport for [today−days, today) against
// [today−2·days, today−days).
func (e *Engine) ComparePeriod(ctx context.Context, days int) (PeriodReport, error) {
	now := e.now()
	mid := now.AddDate(0, 0, -days)
	from := now.AddDate(0, 0, -2*days)
	sets, err := e.store.FetchSets(ctx, SetFilter{From: &from, CompletedOnly: true})
	if err != nil {
		return PeriodReport{}, fmt.Errorf("fetching sets: %w", err)
	}

	var curVol, prevVol float64
	curDays, prevDays := map[time.Time]bool{}, map[time.Time]bool{}
	for _, set := range sets {
		vol := 0.0
		if set.Weight != nil && set.Reps != nil {
			vol = VolumeKg(*set.Weight, *set.Reps, set.Unit)
		}
		day := dayStart(set.Date, e.loc)
		if set.Date.Before(mid) {
			prevVol += vol
			prevDays[day] = true
		} else {
			curVol += vol
			curDays[day] = true
		}
	}

	return PeriodReport{
		Days:     days,
		VolumeKg: ComparePeriods(curVol, prevVol),
		Workouts: ComparePeriods(float64(len(curDays)), float64(len(prevDays))),
	}, nil
}

// GoalProgressAll evaluates every active goal against current aggregates.
func (e *Engine) GoalProgressAll(ctx context.Context) ([]GoalProgress, error) {
	goals, err := e.store.FetchGoals(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("fetching goals: %w", err)
	}

	result := make([]GoalProgress, 0, len(goals))
	for _, goal := range goals {
		current, err := e.goalCurrentValue(ctx, goal)
		if err != nil {
			return nil, err
		}
		result = append(result, EvaluateGoal(goal, current))
	}
	return result, nil
}

// goalCurrentValue computes the live value a goal is measured against.
// Weekly goals look at the current week only; a specific-lift goal tracks
// the heaviest completed set ever, normalized to kilograms.
func (e *Engine) goalCurrentValue(ctx context.Context, goal models.FitnessGoal) (float64, error) {
	switch goal.GoalType {
	case models.GoalWeeklyWorkouts, models.GoalWeeklyVolume:
		now := e.now()
		from := weekStart(now, e.loc)
		to := from.AddDate(0, 0, 7)
		sets, err := e.store.FetchSets(ctx, SetFilter{From: &from, To: &to, CompletedOnly: true})
		if err != nil {
			return 0, fmt.Errorf("fetching week sets: %w", err)
		}
		if goal.GoalType == models.GoalWeeklyWorkouts {
			days := map[time.Time]bool{}
			for _, set := range sets {
				days[dayStart(set.Date, e.loc)] = true
			}
			return float64(len(days)), nil
		}
		vol := 0.0
		for _, set := range sets {
			if set.Weight != nil && set.Reps != nil {
				vol += VolumeKg(*set.Weight, *set.Reps, set.Unit)
			}
		}
		return vol, nil

	case models.GoalSpecificLift:
		if goal.ExerciseID == nil {
			return 0, nil
		}
		sets, err := e.store.FetchSets(ctx, SetFilter{ExerciseID: goal.ExerciseID, CompletedOnly: true})
		if err != nil {
			return 0, fmt.Errorf("fetching lift sets: %w", err)
		}
		best := 0.0
		for _, set := range sets {
			if set.Weight == nil {
				continue
			}
			if w := WeightKg(*set.Weight, set.Unit); w > best {
				best = w
			}
		}
		return best, nil
	}
	return 0, nil
}

// YearInReview bundles a calendar year's headline numbers for presentation.
type YearInReview struct {
	Year          int              `json:"year"`
	WorkoutDays   int              `json:"workout_days"`
	TotalSets     int              `json:"total_sets"`
	TotalVolumeKg float64          `json:"total_volume_kg"`
	RecordCount   int              `json:"record_count"`
	BestStreak    int              `json:"best_streak"`
	TopCategories []CategoryVolume `json:"top_categories"`
}

// Review assembles the year-in-review bundle for one calendar year.
func (e *Engine) Review(ctx context.Context, year int) (YearInReview, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, e.loc)
	to := from.AddDate(1, 0, 0)

	sets, err := e.store.FetchSets(ctx, SetFilter{From: &from, To: &to, CompletedOnly: true})
	if err != nil {
		return YearInReview{}, fmt.Errorf("fetching sets: %w", err)
	}

	review := YearInReview{Year: year, TotalSets: len(sets)}
	days := map[time.Time]bool{}
	dates := make([]time.Time, 0, len(sets))
	for _, set := range sets {
		days[dayStart(set.Date, e.loc)] = true
		dates = append(dates, set.Date)
		if set.Weight != nil && set.Reps != nil {
			review.TotalVolumeKg += VolumeKg(*set.Weight, *set.Reps, set.Unit)
		}
	}
	review.WorkoutDays = len(days)

	records, err := e.RecordCount(ctx, from, to)
	if err != nil {
		return YearInReview{}, err
	}
	review.RecordCount = records

	// Best streak within the year: anchor "now" at year end so the current
	// incomplete week cannot skew it.
	streak := ComputeStreak(dates, to.AddDate(0, 0, -1), e.loc)
	review.BestStreak = streak.BestStreak

	cats, err := e.Categories(ctx, from, to)
	if err != nil {
		return YearInReview{}, err
	}
	review.TopCategories = cats

	e.log.Debug("year in review computed",
		"year", year, "workout_days", review.WorkoutDays, "sets", review.TotalSets)
	return review, nil
}

func groupByExercise(sets []models.WorkoutSet) map[uuid.UUID][]models.WorkoutSet {
	byExercise := map[uuid.UUID][]models.WorkoutSet{}
	for _, set := range sets {
		byExercise[set.ExerciseID] = append(byExercise[set.ExerciseID], set)
	}
	return byExercise
}
