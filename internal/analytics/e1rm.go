package analytics

// Epley's estimate is only trustworthy for low-to-moderate rep counts.
const (
	minEpleyReps = 1
	maxEpleyReps = 10
)

// EstimateOneRepMax returns the Epley-formula estimated one-rep max,
// weight × (1 + reps/30), or nil outside the 1–10 rep range. Callers must
// treat nil as "not applicable", never as zero.
func EstimateOneRepMax(weight float64, reps int) *float64 {
	if reps < minEpleyReps || reps > maxEpleyReps {
		return nil
	}
	v := weight * (1 + float64(reps)/30)
	return &v
}
