package analytics

import (
	"testing"
	"time"
)

// Fixed "now": Friday 2026-08-14. Its week starts Monday 2026-08-10.
var streakNow = time.Date(2026, 8, 14, 12, 0, 0, 0, time.UTC)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"friday", streakNow, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)},
		{"monday maps to itself", time.Date(2026, 8, 10, 23, 0, 0, 0, time.UTC), time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)},
		{"sunday belongs to prior monday", time.Date(2026, 8, 16, 1, 0, 0, 0, time.UTC), time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := weekStart(tt.in, time.UTC); !got.Equal(tt.want) {
				t.Errorf("weekStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestComputeStreakScenario is the normative streak case: workouts Mon/Wed of
// the current week and Tue of the prior week, nothing the week before that.
func TestComputeStreakScenario(t *testing.T) {
	dates := []time.Time{
		time.Date(2026, 8, 10, 7, 0, 0, 0, time.UTC), // Mon, week N
		time.Date(2026, 8, 12, 7, 0, 0, 0, time.UTC), // Wed, week N
		time.Date(2026, 8, 4, 7, 0, 0, 0, time.UTC),  // Tue, week N−1
	}

	got := ComputeStreak(dates, streakNow, time.UTC)

	if got.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", got.CurrentStreak)
	}
	if got.BestStreak != 2 {
		t.Errorf("BestStreak = %d, want 2", got.BestStreak)
	}
	if got.IsAtRisk {
		t.Error("IsAtRisk = true, want false (current week is active)")
	}

	if len(got.WeeklyConsistency) != consistencyWeeks {
		t.Fatalf("len(WeeklyConsistency) = %d, want %d", len(got.WeeklyConsistency), consistencyWeeks)
	}
	last := got.WeeklyConsistency[consistencyWeeks-1]
	if last.ActiveDays != 2 {
		t.Errorf("current week ActiveDays = %d, want 2", last.ActiveDays)
	}
	if got.WeeklyConsistency[consistencyWeeks-2].ActiveDays != 1 {
		t.Errorf("previous week ActiveDays = %d, want 1", got.WeeklyConsistency[consistencyWeeks-2].ActiveDays)
	}
}

// TestComputeStreakEmptyCurrentWeek pins the hard-stop policy: an inactive
// current week zeroes the current streak even with active weeks behind it,
// and flags the streak as at risk instead.
func TestComputeStreakEmptyCurrentWeek(t *testing.T) {
	dates := []time.Time{
		time.Date(2026, 8, 4, 7, 0, 0, 0, time.UTC),  // week N−1
		time.Date(2026, 7, 28, 7, 0, 0, 0, time.UTC), // week N−2
	}

	got := ComputeStreak(dates, streakNow, time.UTC)

	if got.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0 (current week inactive)", got.CurrentStreak)
	}
	if got.BestStreak != 2 {
		t.Errorf("BestStreak = %d, want 2", got.BestStreak)
	}
	if !got.IsAtRisk {
		t.Error("IsAtRisk = false, want true")
	}
}

// TestComputeStreakBestAnywhere checks that the best streak finds the longest
// adjacent run anywhere in history, not just the trailing run.
func TestComputeStreakBestAnywhere(t *testing.T) {
	var dates []time.Time
	// Current week and previous week: trailing run of 2.
	dates = append(dates,
		time.Date(2026, 8, 11, 7, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 6, 7, 0, 0, 0, time.UTC),
	)
	// Weeks N−4..N−7: an older run of 4.
	for i := 4; i <= 7; i++ {
		dates = append(dates, streakNow.AddDate(0, 0, -7*i))
	}

	got := ComputeStreak(dates, streakNow, time.UTC)

	if got.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", got.CurrentStreak)
	}
	if got.BestStreak != 4 {
		t.Errorf("BestStreak = %d, want 4", got.BestStreak)
	}
}

func TestComputeStreakNoHistory(t *testing.T) {
	got := ComputeStreak(nil, streakNow, time.UTC)
	if got.CurrentStreak != 0 || got.BestStreak != 0 || got.IsAtRisk {
		t.Errorf("empty history: got %+v, want zeros and not at risk", got)
	}
}
