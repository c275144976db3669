package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// stubStore serves canned data to the engine so handlers can be exercised
// without a database.
type stubStore struct {
	exercises []models.Exercise
	sets      []models.WorkoutSet
	goals     []models.FitnessGoal
}

func (s *stubStore) FetchSets(_ context.Context, filter analytics.SetFilter) ([]models.WorkoutSet, error) {
	var out []models.WorkoutSet
	for _, set := range s.sets {
		if filter.ExerciseID != nil && set.ExerciseID != *filter.ExerciseID {
			continue
		}
		if filter.CompletedOnly && !set.IsCompleted {
			continue
		}
		if filter.From != nil && set.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !set.Date.Before(*filter.To) {
			continue
		}
		out = append(out, set)
	}
	return out, nil
}

func (s *stubStore) FetchExercises(context.Context) ([]models.Exercise, error) {
	return s.exercises, nil
}

func (s *stubStore) FetchExercise(_ context.Context, id uuid.UUID) (*models.Exercise, error) {
	for _, ex := range s.exercises {
		if ex.ID == id {
			return &ex, nil
		}
	}
	return nil, nil
}

func (s *stubStore) FetchGoals(context.Context, bool) ([]models.FitnessGoal, error) {
	return s.goals, nil
}

func testServer(t *testing.T) (*Server, uuid.UUID) {
	t.Helper()

	benchID := uuid.New()
	w1, w2 := 100.0, 105.0
	reps := 5
	store := &stubStore{
		exercises: []models.Exercise{
			{ID: benchID, Name: "Bench Press", PrimaryCategory: models.CategoryChest, Unit: models.Kilograms},
		},
		sets: []models.WorkoutSet{
			{ID: uuid.New(), ExerciseID: benchID, Date: time.Date(2026, 8, 10, 18, 0, 0, 0, time.UTC), Order: 1, Weight: &w1, Reps: &reps, Unit: models.Kilograms, IsCompleted: true},
			{ID: uuid.New(), ExerciseID: benchID, Date: time.Date(2026, 8, 12, 18, 0, 0, 0, time.UTC), Order: 1, Weight: &w2, Reps: &reps, Unit: models.Kilograms, IsCompleted: true},
		},
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := analytics.New(store, time.UTC, log)
	return New(nil, engine, "test-key", log), benchID
}

// TestSessionHistoryEndpoint verifies that the sessions endpoint groups sets
// into per-day summaries.
func TestSessionHistoryEndpoint(t *testing.T) {
	s, benchID := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exercises/"+benchID.String()+"/sessions", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var sessions []analytics.SessionSummary
	if err := json.NewDecoder(rec.Body).Decode(&sessions); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("len(sessions) = %d, want 2", len(sessions))
	}
	if sessions[0].TotalVolumeKg != 500 {
		t.Errorf("first session volume = %v, want 500", sessions[0].TotalVolumeKg)
	}
}

// TestSessionHistoryBadID verifies a malformed exercise ID yields 400.
func TestSessionHistoryBadID(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exercises/not-a-uuid/sessions", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestRecordCountAllTime verifies that the count endpoint without a window
// returns one record per exercise trained.
func TestRecordCountAllTime(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/records/count", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["count"] != 1 {
		t.Errorf("count = %d, want 1", body["count"])
	}
}

// TestStreakEndpoint verifies the streak endpoint returns well-formed data.
func TestStreakEndpoint(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/streak", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var streak analytics.StreakData
	if err := json.NewDecoder(rec.Body).Decode(&streak); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if streak.BestStreak < 1 {
		t.Errorf("best streak = %d, want >= 1", streak.BestStreak)
	}
}

// TestComparisonBadDays verifies a non-numeric days parameter yields 400.
func TestComparisonBadDays(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/comparison?days=abc", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestVolumeEndpointWeekly verifies bucketed volume with an explicit window.
func TestVolumeEndpointWeekly(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/volume?bucket=weekly&start=2026-08-10&end=2026-08-17", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var points []analytics.VolumePoint
	if err := json.NewDecoder(rec.Body).Decode(&points); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("len(points) = %d, want 1", len(points))
	}
	if points[0].VolumeKg != 1025 {
		t.Errorf("week volume = %v, want 1025", points[0].VolumeKg)
	}
}

// TestMutatingRouteRequiresKey verifies that write endpoints sit behind the
// API key middleware.
func TestMutatingRouteRequiresKey(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/goals", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

// TestReviewBadYear verifies a non-numeric year yields 400.
func TestReviewBadYear(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/review/twenty", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestParseFlexTime verifies both accepted time formats.
func TestParseFlexTime(t *testing.T) {
	if _, err := parseFlexTime("2026-08-01"); err != nil {
		t.Errorf("date-only parse failed: %v", err)
	}
	if _, err := parseFlexTime("2026-08-01T10:00:00Z"); err != nil {
		t.Errorf("RFC3339 parse failed: %v", err)
	}
	if _, err := parseFlexTime("01.08.2026"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
