package mcp

import (
	"context"
	"log/slog"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ExerciseDirectory resolves exercise names for tools that take a name
// instead of a UUID. *storage.DB satisfies it.
type ExerciseDirectory interface {
	FetchExercises(ctx context.Context) ([]models.Exercise, error)
	FetchExerciseByName(ctx context.Context, name string) (*models.Exercise, error)
}

var _ ExerciseDirectory = (*storage.DB)(nil)

// New creates an MCP server exposing the analytics engine as tools.
func New(dir ExerciseDirectory, engine *analytics.Engine, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLog training analytics server. Query session history, progression advice, personal records, streaks, muscle recovery, and goal progress for a single lifter's workout log."),
	)

	h := &handlers{dir: dir, engine: engine, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetSessionHistory, Handler: h.getSessionHistory},
		server.ServerTool{Tool: toolGetProgression, Handler: h.getProgression},
		server.ServerTool{Tool: toolGetRecords, Handler: h.getRecords},
		server.ServerTool{Tool: toolGetRecordCount, Handler: h.getRecordCount},
		server.ServerTool{Tool: toolGetTrainingStreak, Handler: h.getTrainingStreak},
		server.ServerTool{Tool: toolGetMuscleRecovery, Handler: h.getMuscleRecovery},
		server.ServerTool{Tool: toolGetVolumeTrend, Handler: h.getVolumeTrend},
		server.ServerTool{Tool: toolGetCategoryBreakdown, Handler: h.getCategoryBreakdown},
		server.ServerTool{Tool: toolComparePeriods, Handler: h.comparePeriods},
		server.ServerTool{Tool: toolGetGoalProgress, Handler: h.getGoalProgress},
		server.ServerTool{Tool: toolGetYearInReview, Handler: h.getYearInReview},
	)

	s.AddResources(
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
		server.ServerResource{Resource: resTrainingStatus, Handler: h.trainingStatus},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	dir    ExerciseDirectory
	engine *analytics.Engine
	log    *slog.Logger
}

// --- Resource definitions ---

var resExerciseCatalog = mcp.NewResource(
	"liftlog://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All configured exercises with categories, units, and progression settings"),
	mcp.WithMIMEType("application/json"),
)

var resTrainingStatus = mcp.NewResource(
	"liftlog://training_status",
	"Training Status",
	mcp.WithResourceDescription("Current training streak, muscle recovery, and active goal progress in one snapshot"),
	mcp.WithMIMEType("application/json"),
)
