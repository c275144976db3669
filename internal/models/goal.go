package models

import (
	"time"

	"github.com/google/uuid"
)

// GoalType identifies what a fitness goal measures.
type GoalType string

const (
	GoalWeeklyWorkouts GoalType = "weekly_workouts"
	GoalWeeklyVolume   GoalType = "weekly_volume"
	GoalSpecificLift   GoalType = "specific_lift"
)

// MaxActiveGoals caps how many goals may be active at once.
const MaxActiveGoals = 3

// FitnessGoal is a user-defined target evaluated against current aggregates.
type FitnessGoal struct {
	ID          uuid.UUID  `json:"id"`
	GoalType    GoalType   `json:"goal_type"`
	TargetValue float64    `json:"target_value"`
	ExerciseID  *uuid.UUID `json:"exercise_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	AchievedAt  *time.Time `json:"achieved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Valid reports whether the goal is well-formed: a known type, a positive
// target, and an exercise binding exactly when the type needs one.
func (g FitnessGoal) Valid() bool {
	if g.TargetValue <= 0 {
		return false
	}
	switch g.GoalType {
	case GoalWeeklyWorkouts, GoalWeeklyVolume:
		return true
	case GoalSpecificLift:
		return g.ExerciseID != nil
	}
	return false
}
