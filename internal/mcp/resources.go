package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) exerciseCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	exercises, err := h.dir.FetchExercises(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(exercises)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// trainingStatus bundles the views a coach would check first. Failed sections
// degrade to warnings so one bad query does not blank the whole snapshot.
func (h *handlers) trainingStatus(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	streak, err := h.engine.Streak(ctx)
	if err != nil {
		return nil, err
	}

	recovery, err := h.engine.Recovery(ctx)
	if err != nil {
		h.log.Warn("training_status: recovery failed", "error", err)
	}

	goals, err := h.engine.GoalProgressAll(ctx)
	if err != nil {
		h.log.Warn("training_status: goal progress failed", "error", err)
	}

	status := map[string]any{
		"streak":   streak,
		"recovery": recovery,
		"goals":    goals,
	}

	data, err := json.Marshal(status)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
