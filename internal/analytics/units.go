package analytics

import "github.com/claude/liftlog/internal/models"

// kgPerLb is the exact avoirdupois pound in kilograms.
const kgPerLb = 0.45359237

// WeightKg converts a recorded weight to kilograms. Unknown units are treated
// as already-kg: a degrade-gracefully policy so that a future unit string
// passes values through rather than silently scaling them.
func WeightKg(weight float64, unit models.WeightUnit) float64 {
	if unit == models.Pounds {
		return weight * kgPerLb
	}
	return weight
}

// VolumeKg returns weight × reps normalized to kilograms. All cross-session
// volume arithmetic goes through here so that mixed-unit histories compare.
func VolumeKg(weight float64, reps int, unit models.WeightUnit) float64 {
	return WeightKg(weight, unit) * float64(reps)
}
