package analytics

import (
	"sort"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// SessionSummary is the derived view of one exercise on one calendar day.
// It is recomputed on demand from the raw sets and never stored.
type SessionSummary struct {
	ExerciseID         uuid.UUID           `json:"exercise_id"`
	Date               time.Time           `json:"date"`
	Sets               []models.WorkoutSet `json:"sets"`
	TopWeight          float64             `json:"top_weight"`
	TotalVolumeKg      float64             `json:"total_volume_kg"`
	EstimatedOneRepMax *float64            `json:"estimated_one_rep_max,omitempty"`
	TypicalReps        *int                `json:"typical_reps,omitempty"`
	HitTargetReps      bool                `json:"hit_target_reps"`
}

// SummaryOptions carries the per-exercise configuration that shapes which
// sets count toward session math.
type SummaryOptions struct {
	TargetRepMin        *int
	TargetRepMax        *int
	UseWarmupSet        bool
	ProgressionSetCount *int
}

// OptionsForExercise builds SummaryOptions from an exercise's configuration.
func OptionsForExercise(ex models.Exercise) SummaryOptions {
	return SummaryOptions{
		TargetRepMin:        ex.TargetRepMin,
		TargetRepMax:        ex.TargetRepMax,
		UseWarmupSet:        ex.UseWarmupSet,
		ProgressionSetCount: ex.ProgressionSetCount,
	}
}

// Summarize derives a SessionSummary from one day's sets for one exercise.
//
// Counting rules, applied in order: sets are sorted by their in-day order;
// if the exercise designates a warm-up set, the first set is dropped; if a
// progression set count is configured, only the first N remaining sets count.
// Everything downstream (top weight, volume, E1RM, typical reps, target
// check) sees only the surviving sets.
func Summarize(sets []models.WorkoutSet, opts SummaryOptions) SessionSummary {
	s := SessionSummary{}
	if len(sets) > 0 {
		s.ExerciseID = sets[0].ExerciseID
		s.Date = sets[0].Date
	}

	ordered := make([]models.WorkoutSet, len(sets))
	copy(ordered, sets)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })
	s.Sets = ordered

	counted := ordered
	if opts.UseWarmupSet && len(counted) > 0 {
		counted = counted[1:]
	}
	if opts.ProgressionSetCount != nil && *opts.ProgressionSetCount > 0 && len(counted) > *opts.ProgressionSetCount {
		counted = counted[:*opts.ProgressionSetCount]
	}

	for _, set := range counted {
		if set.Weight != nil && *set.Weight > s.TopWeight {
			s.TopWeight = *set.Weight
		}
		if set.Weight != nil && set.Reps != nil {
			s.TotalVolumeKg += VolumeKg(*set.Weight, *set.Reps, set.Unit)
		}
	}

	// E1RM comes from the earliest completed counted set only: later sets are
	// taken under fatigue and would understate the estimate.
	for _, set := range counted {
		if set.IsCompleted {
			if set.Weight != nil && set.Reps != nil {
				s.EstimatedOneRepMax = EstimateOneRepMax(*set.Weight, *set.Reps)
			}
			break
		}
	}

	s.TypicalReps = repMode(counted)
	s.HitTargetReps = hitTarget(counted, opts)
	return s
}

// repMode returns the statistical mode of reps among completed sets.
// Ties resolve to the value encountered first in set order.
func repMode(sets []models.WorkoutSet) *int {
	counts := map[int]int{}
	var order []int
	for _, set := range sets {
		if !set.IsCompleted || set.Reps == nil {
			continue
		}
		if _, seen := counts[*set.Reps]; !seen {
			order = append(order, *set.Reps)
		}
		counts[*set.Reps]++
	}
	if len(order) == 0 {
		return nil
	}
	best := order[0]
	for _, r := range order[1:] {
		if counts[r] > counts[best] {
			best = r
		}
	}
	return &best
}

// hitTarget reports whether every completed counted set reached the lower end
// of the configured rep range. Exceeding the upper end does not invalidate:
// it signals readiness to progress, which the advisor handles.
func hitTarget(sets []models.WorkoutSet, opts SummaryOptions) bool {
	if opts.TargetRepMin == nil || opts.TargetRepMax == nil {
		return false
	}
	completed := 0
	for _, set := range sets {
		if !set.IsCompleted {
			continue
		}
		completed++
		if set.Reps == nil || *set.Reps < *opts.TargetRepMin {
			return false
		}
	}
	return completed > 0
}
