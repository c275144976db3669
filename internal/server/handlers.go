package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.db.FetchExercises(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleSessionHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}

	from, to, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sessions, err := s.engine.SessionHistory(r.Context(), id, from, to)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleProgression(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}

	advice, err := s.engine.Progression(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, advice)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.engine.PersonalRecords(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// handleRecordCount returns the record count for a window, or the all-time
// count when no window is given.
func (s *Server) handleRecordCount(w http.ResponseWriter, r *http.Request) {
	var from, to time.Time
	if r.URL.Query().Get("start") != "" || r.URL.Query().Get("end") != "" {
		fromP, toP, err := parseTimeRange(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if fromP != nil {
			from = *fromP
		}
		if toP != nil {
			to = *toP
		} else {
			to = time.Now()
		}
	}

	count, err := s.engine.RecordCount(r.Context(), from, to)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	streak, err := s.engine.Streak(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, streak)
}

func (s *Server) handleRecovery(w http.ResponseWriter, r *http.Request) {
	recovery, err := s.engine.Recovery(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, recovery)
}

func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	bucket := analytics.BucketDaily
	if r.URL.Query().Get("bucket") == "weekly" {
		bucket = analytics.BucketWeekly
	}

	var from, to time.Time
	if r.URL.Query().Get("start") != "" {
		fromP, toP, err := parseTimeRange(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		from = *fromP
		to = time.Now()
		if toP != nil {
			to = *toP
		}
	}

	points, err := s.engine.Volume(r.Context(), bucket, from, to)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	var from, to time.Time
	if r.URL.Query().Get("start") != "" {
		fromP, toP, err := parseTimeRange(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		from = *fromP
		to = time.Now()
		if toP != nil {
			to = *toP
		}
	}

	breakdown, err := s.engine.Categories(r.Context(), from, to)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "days must be a positive integer"})
			return
		}
		days = n
	}

	report, err := s.engine.ComparePeriod(r.Context(), days)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid year"})
		return
	}

	review, err := s.engine.Review(r.Context(), year)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseTimeRange reads optional start/end query params. A nil pointer means
// the bound was not given.
func parseTimeRange(r *http.Request) (from, to *time.Time, err error) {
	if v := r.URL.Query().Get("start"); v != "" {
		t, err := parseFlexTime(v)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if v := r.URL.Query().Get("end"); v != "" {
		t, err := parseFlexTime(v)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
