package analytics

import (
	"math"
	"testing"
)

// TestEstimateOneRepMax verifies the Epley formula and its 1–10 rep domain.
// Outside the domain the estimate is nil ("not applicable"), never zero.
func TestEstimateOneRepMax(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		reps   int
		want   *float64
	}{
		{"zero reps undefined", 100, 0, nil},
		{"eleven reps undefined", 100, 11, nil},
		{"negative reps undefined", 100, -3, nil},
		{"single rep", 100, 1, ptr(103.33333333333333)},
		{"ten reps", 100, 10, ptr(133.33333333333334)},
		{"five reps", 80, 5, ptr(80 * (1 + 5.0/30))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateOneRepMax(tt.weight, tt.reps)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("EstimateOneRepMax(%v, %d) = %v, want %v", tt.weight, tt.reps, got, tt.want)
			}
			if got != nil && math.Abs(*got-*tt.want) > 1e-9 {
				t.Errorf("EstimateOneRepMax(%v, %d) = %v, want %v", tt.weight, tt.reps, *got, *tt.want)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }
