package analytics

import (
	"math"
	"testing"

	"github.com/claude/liftlog/internal/models"
)

func TestVolumeKg(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		reps   int
		unit   models.WeightUnit
		want   float64
	}{
		{"kg passes through", 100, 5, models.Kilograms, 500},
		{"lb converts", 100, 5, models.Pounds, 100 * 0.45359237 * 5},
		{"unknown unit treated as kg", 60, 8, models.WeightUnit("stone"), 480},
		{"zero reps", 100, 0, models.Kilograms, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VolumeKg(tt.weight, tt.reps, tt.unit)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("VolumeKg(%v, %d, %q) = %v, want %v", tt.weight, tt.reps, tt.unit, got, tt.want)
			}
		})
	}
}
