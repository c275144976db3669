package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleSaveExercise(w http.ResponseWriter, r *http.Request) {
	var ex models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&ex); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if ex.ID == uuid.Nil {
		ex.ID = uuid.New()
	}
	if ex.Name == "" || ex.PrimaryCategory == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and primary_category are required"})
		return
	}
	if ex.Unit == "" {
		ex.Unit = models.Kilograms
	}

	if err := s.db.SaveExercise(r.Context(), ex); err != nil {
		s.log.Error("save exercise failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

// handleReplaceDaySets replaces every set for one exercise on one calendar
// day. The day's sets are a unit: old rows are deleted and the posted rows
// inserted in one transaction, never patched piecemeal.
func (s *Server) handleReplaceDaySets(w http.ResponseWriter, r *http.Request) {
	exerciseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}
	day, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date, want YYYY-MM-DD"})
		return
	}

	var sets []models.WorkoutSet
	if err := json.NewDecoder(r.Body).Decode(&sets); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	for i := range sets {
		sets[i].ExerciseID = exerciseID
		if sets[i].Date.IsZero() {
			sets[i].Date = day
		}
		if sets[i].Unit == "" {
			sets[i].Unit = models.Kilograms
		}
	}

	if err := s.db.ReplaceDaySets(r.Context(), exerciseID, day, sets); err != nil {
		s.log.Error("replace day sets failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"saved": len(sets)})
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("all") == "" {
		// Default view: active goals with live progress.
		progress, err := s.engine.GoalProgressAll(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, progress)
		return
	}

	goals, err := s.db.FetchGoals(r.Context(), false)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (s *Server) handleSaveGoal(w http.ResponseWriter, r *http.Request) {
	var goal models.FitnessGoal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now()
	}
	if !goal.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid goal"})
		return
	}

	if err := s.db.SaveGoal(r.Context(), goal); err != nil {
		if errors.Is(err, storage.ErrTooManyActiveGoals) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		s.log.Error("save goal failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid goal ID"})
		return
	}
	if err := s.db.DeleteGoal(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleDeactivateGoal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid goal ID"})
		return
	}
	if err := s.db.DeactivateGoal(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}
