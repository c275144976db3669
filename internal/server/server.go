package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	engine *analytics.Engine
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, engine *analytics.Engine, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		engine: engine,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Mutating endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/exercises", s.handleSaveExercise)
		r.Put("/api/v1/exercises/{id}/sets/{date}", s.handleReplaceDaySets)
		r.Post("/api/v1/goals", s.handleSaveGoal)
		r.Post("/api/v1/goals/{id}/deactivate", s.handleDeactivateGoal)
		r.Delete("/api/v1/goals/{id}", s.handleDeleteGoal)
	})

	// Read endpoints
	s.router.Get("/api/v1/exercises", s.handleListExercises)
	s.router.Get("/api/v1/exercises/{id}/sessions", s.handleSessionHistory)
	s.router.Get("/api/v1/exercises/{id}/progression", s.handleProgression)
	s.router.Get("/api/v1/records", s.handleRecords)
	s.router.Get("/api/v1/records/count", s.handleRecordCount)
	s.router.Get("/api/v1/streak", s.handleStreak)
	s.router.Get("/api/v1/recovery", s.handleRecovery)
	s.router.Get("/api/v1/volume", s.handleVolume)
	s.router.Get("/api/v1/categories", s.handleCategories)
	s.router.Get("/api/v1/comparison", s.handleComparison)
	s.router.Get("/api/v1/goals", s.handleGoals)
	s.router.Get("/api/v1/review/{year}", s.handleReview)
}
