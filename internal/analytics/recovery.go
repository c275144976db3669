package analytics

import (
	"sort"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// Piecewise-linear recovery curve breakpoints: 40% back after one day,
// 80% after two, full after three.
const (
	recoveryDay1Hours = 24.0
	recoveryDay2Hours = 48.0
	recoveryFullHours = 72.0

	recoveryDay1Percent = 40.0
	recoveryDay2Percent = 80.0
)

// RecoveryPercent maps hours since a muscle group was last trained to a
// 0–100% recovery score. nil means never trained (or not within the lookback)
// and reads as fully recovered. The curve is piecewise linear, not
// exponential, and monotonically non-decreasing.
func RecoveryPercent(hoursSince *float64) float64 {
	if hoursSince == nil {
		return 100
	}
	h := *hoursSince
	switch {
	case h <= 0:
		return 0
	case h < recoveryDay1Hours:
		return h / recoveryDay1Hours * recoveryDay1Percent
	case h < recoveryDay2Hours:
		return recoveryDay1Percent + (h-recoveryDay1Hours)/(recoveryDay2Hours-recoveryDay1Hours)*(recoveryDay2Percent-recoveryDay1Percent)
	case h < recoveryFullHours:
		return recoveryDay2Percent + (h-recoveryDay2Hours)/(recoveryFullHours-recoveryDay2Hours)*(100-recoveryDay2Percent)
	}
	return 100
}

// CategoryTraining is one raw muscle category's recent training state.
type CategoryTraining struct {
	Category    string
	LastTrained *time.Time
	SetCount    int
}

// MuscleRecovery is the consolidated recovery view for one display group.
type MuscleRecovery struct {
	Group           string     `json:"group"`
	RecoveryPercent float64    `json:"recovery_percent"`
	SetCount        int        `json:"set_count"`
	LastTrained     *time.Time `json:"last_trained,omitempty"`
}

// ConsolidateRecovery folds raw categories into display groups. A group's
// recovery is the minimum among its constituents (the most recently trained
// muscle dominates) and its set count is the sum. Groups come back sorted by
// recovery ascending, least-recovered first.
func ConsolidateRecovery(categories []CategoryTraining, now time.Time) []MuscleRecovery {
	byGroup := map[string]*MuscleRecovery{}
	var order []string

	for _, ct := range categories {
		group := models.DisplayGroup(ct.Category)
		mr, ok := byGroup[group]
		if !ok {
			mr = &MuscleRecovery{Group: group, RecoveryPercent: 100}
			byGroup[group] = mr
			order = append(order, group)
		}
		mr.SetCount += ct.SetCount

		var hours *float64
		if ct.LastTrained != nil {
			h := now.Sub(*ct.LastTrained).Hours()
			hours = &h
			if mr.LastTrained == nil || ct.LastTrained.After(*mr.LastTrained) {
				t := *ct.LastTrained
				mr.LastTrained = &t
			}
		}
		if p := RecoveryPercent(hours); p < mr.RecoveryPercent {
			mr.RecoveryPercent = p
		}
	}

	result := make([]MuscleRecovery, 0, len(order))
	for _, g := range order {
		result = append(result, *byGroup[g])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].RecoveryPercent < result[j].RecoveryPercent
	})
	return result
}
