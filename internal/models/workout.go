package models

import (
	"time"

	"github.com/google/uuid"
)

// WeightUnit identifies the unit a weight value was recorded in.
type WeightUnit string

const (
	Kilograms WeightUnit = "kg"
	Pounds    WeightUnit = "lb"
)

// WorkoutSet is one logged set: weight × reps for an exercise on a day.
// Sets are immutable facts; a day's sets for an exercise are always replaced
// wholesale, never patched. Optional fields are nil when the user logged the
// set without them; a set with nil reps or weight contributes no volume but
// still counts toward set counts.
type WorkoutSet struct {
	ID          uuid.UUID  `json:"id"`
	ExerciseID  uuid.UUID  `json:"exercise_id"`
	Date        time.Time  `json:"date"`
	Order       int        `json:"order"`
	Weight      *float64   `json:"weight,omitempty"`
	Reps        *int       `json:"reps,omitempty"`
	Unit        WeightUnit `json:"unit"`
	IsCompleted bool       `json:"is_completed"`
	RPE         *int       `json:"rpe,omitempty"`
	RIR         *int       `json:"rir,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Exercise is the per-movement configuration that drives session math.
type Exercise struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	PrimaryCategory     string     `json:"primary_category"`
	Unit                WeightUnit `json:"unit"`
	UseWarmupSet        bool       `json:"use_warmup_set"`
	ProgressionSetCount *int       `json:"progression_set_count,omitempty"`
	TargetRepMin        *int       `json:"target_rep_min,omitempty"`
	TargetRepMax        *int       `json:"target_rep_max,omitempty"`
	IncrementValue      float64    `json:"increment_value"`
}

// HasTargetRange reports whether both ends of the rep-range target are set.
func (e Exercise) HasTargetRange() bool {
	return e.TargetRepMin != nil && e.TargetRepMax != nil
}

// Muscle-group vocabulary. PrimaryCategory values come from this closed set.
const (
	CategoryChest      = "Chest"
	CategoryBack       = "Back"
	CategoryShoulders  = "Shoulders"
	CategoryBiceps     = "Biceps"
	CategoryTriceps    = "Triceps"
	CategoryQuads      = "Quads"
	CategoryHamstrings = "Hamstrings"
	CategoryGlutes     = "Glutes"
	CategoryCalves     = "Calves"
	CategoryCore       = "Core"
)

// Categories lists the full muscle-group vocabulary.
var Categories = []string{
	CategoryChest, CategoryBack, CategoryShoulders,
	CategoryBiceps, CategoryTriceps,
	CategoryQuads, CategoryHamstrings, CategoryGlutes, CategoryCalves,
	CategoryCore,
}

// displayGroups consolidates raw categories into coarser presentation groups.
// Categories not listed here display under their own name.
var displayGroups = map[string]string{
	CategoryBiceps:     "Arms",
	CategoryTriceps:    "Arms",
	CategoryQuads:      "Legs",
	CategoryHamstrings: "Legs",
	CategoryGlutes:     "Legs",
	CategoryCalves:     "Legs",
}

// DisplayGroup returns the presentation group for a raw category.
func DisplayGroup(category string) string {
	if g, ok := displayGroups[category]; ok {
		return g
	}
	return category
}

// IsUpperBody reports whether a category takes the smaller weight increment
// when progressing.
func IsUpperBody(category string) bool {
	switch category {
	case CategoryChest, CategoryBack, CategoryShoulders, CategoryBiceps, CategoryTriceps:
		return true
	}
	return false
}
