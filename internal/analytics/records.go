package analytics

import (
	"sort"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// PersonalRecord is a single set whose kg-volume strictly exceeded everything
// the exercise had seen before it.
type PersonalRecord struct {
	ExerciseID   uuid.UUID `json:"exercise_id"`
	ExerciseName string    `json:"exercise_name"`
	Date         time.Time `json:"date"`
	Weight       float64   `json:"weight"`
	Reps         int       `json:"reps"`
	VolumeKg     float64   `json:"volume_kg"`
}

// CountRecords counts record events over date-ascending sessions of one
// exercise: a session is a new record iff its total volume strictly exceeds
// the running maximum, seeded at zero. The first non-empty session therefore
// always counts.
func CountRecords(sessions []SessionSummary) int {
	count := 0
	maxSoFar := 0.0
	for _, s := range sessions {
		if s.TotalVolumeKg > maxSoFar {
			count++
			maxSoFar = s.TotalVolumeKg
		}
	}
	return count
}

// WindowHasRecord reports whether an exercise set a new volume record inside
// [start, end): the window maximum must strictly exceed the running maximum
// established before the window. Sessions must be date-ascending.
func WindowHasRecord(sessions []SessionSummary, start, end time.Time) bool {
	maxBefore := 0.0
	maxInWindow := 0.0
	for _, s := range sessions {
		switch {
		case s.Date.Before(start):
			if s.TotalVolumeKg > maxBefore {
				maxBefore = s.TotalVolumeKg
			}
		case s.Date.Before(end):
			if s.TotalVolumeKg > maxInWindow {
				maxInWindow = s.TotalVolumeKg
			}
		}
	}
	return maxInWindow > maxBefore
}

// CountAllTimeRecords counts one record per exercise that has any completed
// set at all. This deliberately differs from the running-maximum semantics of
// bounded windows: with no "before" baseline, every exercise with history
// trivially holds its own all-time best. Kept for compatibility with the
// established behavior.
func CountAllTimeRecords(setsByExercise map[uuid.UUID][]models.WorkoutSet) int {
	count := 0
	for _, sets := range setsByExercise {
		for _, set := range sets {
			if set.IsCompleted {
				count++
				break
			}
		}
	}
	return count
}

// ListRecords walks every exercise's completed sets in date order and returns
// each set that pushed the exercise's kg-volume running maximum, newest first.
func ListRecords(setsByExercise map[uuid.UUID][]models.WorkoutSet, names map[uuid.UUID]string) []PersonalRecord {
	var records []PersonalRecord
	for id, sets := range setsByExercise {
		ordered := make([]models.WorkoutSet, len(sets))
		copy(ordered, sets)
		sort.SliceStable(ordered, func(i, j int) bool {
			if !ordered[i].Date.Equal(ordered[j].Date) {
				return ordered[i].Date.Before(ordered[j].Date)
			}
			return ordered[i].Order < ordered[j].Order
		})

		maxSoFar := 0.0
		for _, set := range ordered {
			if !set.IsCompleted || set.Weight == nil || set.Reps == nil {
				continue
			}
			vol := VolumeKg(*set.Weight, *set.Reps, set.Unit)
			if vol > maxSoFar {
				maxSoFar = vol
				records = append(records, PersonalRecord{
					ExerciseID:   id,
					ExerciseName: names[id],
					Date:         set.Date,
					Weight:       *set.Weight,
					Reps:         *set.Reps,
					VolumeKg:     vol,
				})
			}
		}
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date.After(records[j].Date) })
	return records
}
