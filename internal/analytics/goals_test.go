package analytics

import (
	"math"
	"testing"

	"github.com/claude/liftlog/internal/models"
)

func TestEvaluateGoal(t *testing.T) {
	tests := []struct {
		name         string
		target       float64
		current      float64
		wantPercent  float64
		wantAchieved bool
	}{
		{"halfway", 4, 2, 50, false},
		{"achieved exactly", 4, 4, 100, true},
		{"overachieved caps at 100", 4, 6, 100, true},
		{"nothing yet", 4, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := models.FitnessGoal{GoalType: models.GoalWeeklyWorkouts, TargetValue: tt.target}
			got := EvaluateGoal(goal, tt.current)
			if math.Abs(got.ProgressPercent-tt.wantPercent) > 1e-9 {
				t.Errorf("ProgressPercent = %v, want %v", got.ProgressPercent, tt.wantPercent)
			}
			if got.IsAchieved != tt.wantAchieved {
				t.Errorf("IsAchieved = %v, want %v", got.IsAchieved, tt.wantAchieved)
			}
		})
	}
}

func TestGoalValid(t *testing.T) {
	ex := benchExercise()

	tests := []struct {
		name string
		goal models.FitnessGoal
		want bool
	}{
		{"weekly workouts", models.FitnessGoal{GoalType: models.GoalWeeklyWorkouts, TargetValue: 3}, true},
		{"zero target", models.FitnessGoal{GoalType: models.GoalWeeklyVolume, TargetValue: 0}, false},
		{"lift without exercise", models.FitnessGoal{GoalType: models.GoalSpecificLift, TargetValue: 100}, false},
		{"lift with exercise", models.FitnessGoal{GoalType: models.GoalSpecificLift, TargetValue: 100, ExerciseID: &ex.ID}, true},
		{"unknown type", models.FitnessGoal{GoalType: "marathon", TargetValue: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.goal.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
