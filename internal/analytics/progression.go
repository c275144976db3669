package analytics

import (
	"math"

	"github.com/claude/liftlog/internal/models"
)

// ProgressionState classifies an exercise's trajectory from its most recent
// sessions. States are computed on every read and never persisted.
type ProgressionState string

const (
	StateInsufficientData      ProgressionState = "insufficient_data"
	StateDecliningPerformance  ProgressionState = "declining_performance"
	StateRecentlyRegressed     ProgressionState = "recently_regressed"
	StateReadyToIncreaseWeight ProgressionState = "ready_to_increase_weight"
	StateReadyToIncreaseReps   ProgressionState = "ready_to_increase_reps"
	StateProgressing           ProgressionState = "progressing_toward_target"
	StateMaintaining           ProgressionState = "maintaining_below_target"
)

// Behavioral thresholds. These must not drift: downstream expectations
// (and years of logged history) are calibrated against them.
const (
	// volumeTolerance is the session-over-session volume swing treated as
	// noise. Beyond it, the advisor calls decline or progress.
	volumeTolerance = 0.10
	// e1rmTolerance is the relative E1RM band inside which a trend counts
	// as flat.
	e1rmTolerance = 0.05
	// weightTolerance absorbs sub-plate rounding when comparing top weights.
	weightTolerance = 0.1
)

// advisorWindow is how many recent sessions the advisor inspects.
const advisorWindow = 4

// ProgressionAdvice is the advisor's verdict plus the state-specific payload.
type ProgressionAdvice struct {
	State       ProgressionState `json:"state"`
	PercentDrop *float64         `json:"percent_drop,omitempty"`
	NextWeight  *float64         `json:"next_weight,omitempty"`
	ResetReps   *int             `json:"reset_reps,omitempty"`
	NextReps    *int             `json:"next_reps,omitempty"`
}

// Advise classifies an exercise's trajectory from its most recent sessions,
// index 0 being the latest. The rules form a priority cascade: the first
// matching rule wins, so a decline outranks target-hitting math even when
// both hold by raw numbers.
func Advise(recent []SessionSummary, ex models.Exercise) ProgressionAdvice {
	if len(recent) > advisorWindow {
		recent = recent[:advisorWindow]
	}

	// Rule 1: nothing to compare against, or no configured target range.
	if len(recent) < 2 || !ex.HasTargetRange() {
		return ProgressionAdvice{State: StateInsufficientData}
	}

	latest, previous := recent[0], recent[1]

	// Rule 2: volume dropped beyond tolerance.
	if latest.TotalVolumeKg < previous.TotalVolumeKg*(1-volumeTolerance) {
		drop := (latest.TotalVolumeKg - previous.TotalVolumeKg) / previous.TotalVolumeKg * 100
		return ProgressionAdvice{State: StateDecliningPerformance, PercentDrop: &drop}
	}

	// Rule 3: a session 2–4 workouts ago handled strictly more weight.
	for i := 2; i < len(recent); i++ {
		if recent[i].TopWeight > latest.TopWeight+weightTolerance {
			return ProgressionAdvice{State: StateRecentlyRegressed}
		}
	}

	// Rule 4: every set hit the target floor, so load or rep bump.
	if latest.HitTargetReps && latest.TypicalReps != nil {
		if *latest.TypicalReps >= *ex.TargetRepMax {
			next := latest.TopWeight + weightIncrement(ex.PrimaryCategory, ex.Unit)
			reset := *ex.TargetRepMin
			return ProgressionAdvice{State: StateReadyToIncreaseWeight, NextWeight: &next, ResetReps: &reset}
		}
		if *latest.TypicalReps >= *ex.TargetRepMin {
			next := *latest.TypicalReps + 1
			if next > *ex.TargetRepMax {
				next = *ex.TargetRepMax
			}
			return ProgressionAdvice{State: StateReadyToIncreaseReps, NextReps: &next}
		}
	}

	// Rule 5: volume grew beyond tolerance.
	if latest.TotalVolumeKg > previous.TotalVolumeKg*(1+volumeTolerance) {
		return ProgressionAdvice{State: StateProgressing}
	}

	// Rule 6: holding steady below target.
	return ProgressionAdvice{State: StateMaintaining}
}

// weightIncrement is the plate-step used when graduating to a heavier load.
// Upper-body movements take the smaller step.
func weightIncrement(category string, unit models.WeightUnit) float64 {
	if models.IsUpperBody(category) {
		if unit == models.Pounds {
			return 5
		}
		return 2.5
	}
	if unit == models.Pounds {
		return 10
	}
	return 5
}

// Trend classifies the direction of an E1RM series.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendFlat      Trend = "flat"
	TrendDeclining Trend = "declining"
)

// OneRepMaxTrend compares the latest session's E1RM against the oldest in the
// window, treating swings within e1rmTolerance as flat. Sessions are latest
// first; sessions without an estimate are skipped. Returns flat when fewer
// than two estimates exist.
func OneRepMaxTrend(recent []SessionSummary) Trend {
	var latest, oldest *float64
	for _, s := range recent {
		if s.EstimatedOneRepMax == nil {
			continue
		}
		if latest == nil {
			latest = s.EstimatedOneRepMax
		}
		oldest = s.EstimatedOneRepMax
	}
	if latest == nil || oldest == nil || latest == oldest || *oldest == 0 {
		return TrendFlat
	}
	change := (*latest - *oldest) / math.Abs(*oldest)
	switch {
	case change > e1rmTolerance:
		return TrendImproving
	case change < -e1rmTolerance:
		return TrendDeclining
	}
	return TrendFlat
}
