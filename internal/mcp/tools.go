package mcp

import (
	"context"
	"time"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/mark3labs/mcp-go/mcp"
)

// timeRange parses optional start/end strings. Empty bounds stay zero, which
// the engine treats as unbounded.
func timeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List all configured exercises with their muscle category, weight unit, and progression settings."),
)

var toolGetSessionHistory = mcp.NewTool("get_session_history",
	mcp.WithDescription("Per-day session summaries for one exercise: top weight, total volume, estimated 1RM, typical reps, and whether the rep target was hit."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (exact match, e.g. 'Bench Press')")),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Omit for all history.")),
	mcp.WithString("end", mcp.Description("End date (exclusive). Omit for all history.")),
)

var toolGetProgression = mcp.NewTool("get_progression",
	mcp.WithDescription("Progression advice for one exercise: current state (progressing, ready to increase weight/reps, regressed, declining volume, maintaining) plus recommended next weight or reps."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (exact match)")),
)

var toolGetRecords = mcp.NewTool("get_records",
	mcp.WithDescription("All personal records (session volume highs) across every exercise, newest first."),
)

var toolGetRecordCount = mcp.NewTool("get_record_count",
	mcp.WithDescription("Count of exercises that set a volume record in a window. Without dates, counts all-time records (one per exercise trained)."),
	mcp.WithString("start", mcp.Description("Window start date")),
	mcp.WithString("end", mcp.Description("Window end date (exclusive)")),
)

var toolGetTrainingStreak = mcp.NewTool("get_training_streak",
	mcp.WithDescription("Current and best weekly training streak, whether the streak is at risk, and the recent weeks' activity."),
)

var toolGetMuscleRecovery = mcp.NewTool("get_muscle_recovery",
	mcp.WithDescription("Estimated recovery percentage per muscle group based on hours since last training, least recovered first."),
)

var toolGetVolumeTrend = mcp.NewTool("get_volume_trend",
	mcp.WithDescription("Training volume over time in kilograms, bucketed by day or week."),
	mcp.WithString("start", mcp.Description("Start date. Omit both dates for the sparse all-time trend.")),
	mcp.WithString("end", mcp.Description("End date (exclusive)")),
	mcp.WithString("bucket", mcp.Description("Bucket size. Defaults to 'daily'."), mcp.Enum("daily", "weekly")),
)

var toolGetCategoryBreakdown = mcp.NewTool("get_category_breakdown",
	mcp.WithDescription("Volume share per muscle category for a window, top categories plus an 'Other' remainder."),
	mcp.WithString("start", mcp.Description("Start date. Omit for all time.")),
	mcp.WithString("end", mcp.Description("End date (exclusive)")),
)

var toolComparePeriods = mcp.NewTool("compare_periods",
	mcp.WithDescription("Compare volume and workout days between the trailing N days and the N days before that."),
	mcp.WithNumber("days", mcp.Description("Period length in days. Defaults to 7.")),
)

var toolGetGoalProgress = mcp.NewTool("get_goal_progress",
	mcp.WithDescription("Progress on every active fitness goal: current value, target, percent complete, and achievement status."),
)

var toolGetYearInReview = mcp.NewTool("get_year_in_review",
	mcp.WithDescription("Headline numbers for a calendar year: workout days, total sets and volume, records, best streak, top categories."),
	mcp.WithNumber("year", mcp.Required(), mcp.Description("Calendar year, e.g. 2026")),
)

// --- Tool handlers ---

func (h *handlers) listExercises(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.dir.FetchExercises(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(exercises)
}

func (h *handlers) getSessionHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	ex, err := h.dir.FetchExerciseByName(ctx, name)
	if err != nil {
		h.log.Error("mcp get_session_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if ex == nil {
		return mcp.NewToolResultError("unknown exercise: " + name), nil
	}

	start, end, err := timeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	var from, to *time.Time
	if !start.IsZero() {
		from = &start
	}
	if !end.IsZero() {
		to = &end
	}

	sessions, err := h.engine.SessionHistory(ctx, ex.ID, from, to)
	if err != nil {
		h.log.Error("mcp get_session_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(sessions)
}

func (h *handlers) getProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	ex, err := h.dir.FetchExerciseByName(ctx, name)
	if err != nil {
		h.log.Error("mcp get_progression", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if ex == nil {
		return mcp.NewToolResultError("unknown exercise: " + name), nil
	}

	advice, err := h.engine.Progression(ctx, ex.ID)
	if err != nil {
		h.log.Error("mcp get_progression", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(advice)
}

func (h *handlers) getRecords(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, err := h.engine.PersonalRecords(ctx)
	if err != nil {
		h.log.Error("mcp get_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(records)
}

func (h *handlers) getRecordCount(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := timeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	if !start.IsZero() && end.IsZero() {
		end = time.Now()
	}

	count, err := h.engine.RecordCount(ctx, start, end)
	if err != nil {
		h.log.Error("mcp get_record_count", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(map[string]int{"count": count})
}

func (h *handlers) getTrainingStreak(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	streak, err := h.engine.Streak(ctx)
	if err != nil {
		h.log.Error("mcp get_training_streak", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(streak)
}

func (h *handlers) getMuscleRecovery(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recovery, err := h.engine.Recovery(ctx)
	if err != nil {
		h.log.Error("mcp get_muscle_recovery", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(recovery)
}

func (h *handlers) getVolumeTrend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := timeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	if !start.IsZero() && end.IsZero() {
		end = time.Now()
	}

	bucket := analytics.BucketDaily
	if req.GetString("bucket", "daily") == "weekly" {
		bucket = analytics.BucketWeekly
	}

	points, err := h.engine.Volume(ctx, bucket, start, end)
	if err != nil {
		h.log.Error("mcp get_volume_trend", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(points)
}

func (h *handlers) getCategoryBreakdown(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := timeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	if !start.IsZero() && end.IsZero() {
		end = time.Now()
	}

	breakdown, err := h.engine.Categories(ctx, start, end)
	if err != nil {
		h.log.Error("mcp get_category_breakdown", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(breakdown)
}

func (h *handlers) comparePeriods(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := int(req.GetFloat("days", 7))
	if days <= 0 {
		return mcp.NewToolResultError("days must be positive"), nil
	}

	report, err := h.engine.ComparePeriod(ctx, days)
	if err != nil {
		h.log.Error("mcp compare_periods", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(report)
}

func (h *handlers) getGoalProgress(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	progress, err := h.engine.GoalProgressAll(ctx)
	if err != nil {
		h.log.Error("mcp get_goal_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(progress)
}

func (h *handlers) getYearInReview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	year, err := req.RequireFloat("year")
	if err != nil {
		return mcp.NewToolResultError("year parameter is required"), nil
	}

	review, err := h.engine.Review(ctx, int(year))
	if err != nil {
		h.log.Error("mcp get_year_in_review", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(review)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
