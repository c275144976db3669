package analytics

import "github.com/claude/liftlog/internal/models"

// GoalProgress is the evaluated state of one goal against current aggregates.
type GoalProgress struct {
	Goal            models.FitnessGoal `json:"goal"`
	CurrentValue    float64            `json:"current_value"`
	ProgressPercent float64            `json:"progress_percent"`
	IsAchieved      bool               `json:"is_achieved"`
}

// EvaluateGoal scores a goal against its current value. Weekly goals are
// evaluated by the caller against the current week only; a specific-lift
// goal's current value is the best weight ever recorded and never resets.
func EvaluateGoal(goal models.FitnessGoal, current float64) GoalProgress {
	gp := GoalProgress{Goal: goal, CurrentValue: current}
	if goal.TargetValue > 0 {
		gp.ProgressPercent = current / goal.TargetValue * 100
		if gp.ProgressPercent > 100 {
			gp.ProgressPercent = 100
		}
	}
	gp.IsAchieved = current >= goal.TargetValue
	return gp
}
