package analytics

import (
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

func sessionsWithVolumes(volumes ...float64) []SessionSummary {
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	sessions := make([]SessionSummary, len(volumes))
	for i, v := range volumes {
		sessions[i] = SessionSummary{Date: base.AddDate(0, 0, i*7), TotalVolumeKg: v}
	}
	return sessions
}

// TestCountRecordsMonotonic checks the running-maximum semantics: a strictly
// increasing series is all records, a decreasing one only counts its first
// session (which trivially exceeds the zero baseline).
func TestCountRecordsMonotonic(t *testing.T) {
	tests := []struct {
		name    string
		volumes []float64
		want    int
	}{
		{"strictly increasing", []float64{10, 20, 30}, 3},
		{"strictly decreasing", []float64{30, 20, 10}, 1},
		{"plateau does not count", []float64{10, 10, 10}, 1},
		{"recovery below old max does not count", []float64{30, 10, 20}, 1},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountRecords(sessionsWithVolumes(tt.volumes...)); got != tt.want {
				t.Errorf("CountRecords(%v) = %d, want %d", tt.volumes, got, tt.want)
			}
		})
	}
}

func TestWindowHasRecord(t *testing.T) {
	sessions := sessionsWithVolumes(10, 30, 20, 40)
	base := sessions[0].Date

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		// Window holds the 40-volume session; max before it is 30.
		{"window with new max", base.AddDate(0, 0, 20), base.AddDate(0, 0, 28), true},
		// Window holds only the 20-volume session; 30 was set before it.
		{"window below prior max", base.AddDate(0, 0, 10), base.AddDate(0, 0, 20), false},
		{"empty window", base.AddDate(0, 1, 0), base.AddDate(0, 2, 0), false},
		{"whole history", base, base.AddDate(0, 1, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WindowHasRecord(sessions, tt.start, tt.end); got != tt.want {
				t.Errorf("WindowHasRecord = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestCountAllTimeRecords pins the deliberate all-time policy: every exercise
// with at least one completed set counts as one record, with no baseline
// comparison. This intentionally differs from the windowed running-max rule.
func TestCountAllTimeRecords(t *testing.T) {
	exA, exB, exC := uuid.New(), uuid.New(), uuid.New()
	incomplete := makeSet(1, 50, 5)
	incomplete.IsCompleted = false

	byExercise := map[uuid.UUID][]models.WorkoutSet{
		exA: {makeSet(1, 100, 8), makeSet(2, 90, 8)},
		exB: {makeSet(1, 60, 10)},
		exC: {incomplete},
	}

	if got := CountAllTimeRecords(byExercise); got != 2 {
		t.Errorf("CountAllTimeRecords = %d, want 2 (one per exercise with completed sets)", got)
	}
}

func TestListRecords(t *testing.T) {
	ex := uuid.New()
	day := func(n int) time.Time { return time.Date(2026, 3, n, 10, 0, 0, 0, time.UTC) }

	set := func(d time.Time, order int, weight float64, reps int) models.WorkoutSet {
		s := makeSet(order, weight, reps)
		s.ExerciseID = ex
		s.Date = d
		return s
	}

	sets := []models.WorkoutSet{
		set(day(1), 1, 100, 5), // 500, record
		set(day(1), 2, 100, 4), // 400, not
		set(day(8), 1, 100, 6), // 600, record
		set(day(15), 1, 90, 6), // 540, not
	}

	records := ListRecords(map[uuid.UUID][]models.WorkoutSet{ex: sets}, map[uuid.UUID]string{ex: "Squat"})

	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	// Newest first.
	if !records[0].Date.Equal(day(8)) || records[0].VolumeKg != 600 {
		t.Errorf("records[0] = %+v, want day 8 volume 600", records[0])
	}
	if records[1].ExerciseName != "Squat" {
		t.Errorf("ExerciseName = %q, want Squat", records[1].ExerciseName)
	}
}
