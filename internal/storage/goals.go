package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

const goalColumns = `id, goal_type, target_value, exercise_id, is_active, achieved_at, created_at`

// ErrTooManyActiveGoals is returned when saving an active goal would exceed
// the active-goal cap.
var ErrTooManyActiveGoals = fmt.Errorf("at most %d goals may be active", models.MaxActiveGoals)

// FetchGoals returns goals, optionally only active ones, newest first.
func (db *DB) FetchGoals(ctx context.Context, activeOnly bool) ([]models.FitnessGoal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer rows.Close()

	var result []models.FitnessGoal
	for rows.Next() {
		var g models.FitnessGoal
		if err := rows.Scan(&g.ID, &g.GoalType, &g.TargetValue, &g.ExerciseID,
			&g.IsActive, &g.AchievedAt, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

// SaveGoal inserts or updates a goal. Goal mutations are serialized here:
// the active-goal cap is enforced inside the transaction so concurrent saves
// cannot overshoot it.
func (db *DB) SaveGoal(ctx context.Context, g models.FitnessGoal) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if g.IsActive {
		var active int
		if err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM goals WHERE is_active AND id <> $1`, g.ID).Scan(&active); err != nil {
			return fmt.Errorf("counting active goals: %w", err)
		}
		if active >= models.MaxActiveGoals {
			return ErrTooManyActiveGoals
		}
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO goals (`+goalColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT (id) DO UPDATE SET
			goal_type = EXCLUDED.goal_type,
			target_value = EXCLUDED.target_value,
			exercise_id = EXCLUDED.exercise_id,
			is_active = EXCLUDED.is_active,
			achieved_at = EXCLUDED.achieved_at`,
		g.ID, g.GoalType, g.TargetValue, g.ExerciseID, g.IsActive, g.AchievedAt, g.CreatedAt); err != nil {
		return fmt.Errorf("saving goal: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing goal: %w", err)
	}
	return nil
}

// DeleteGoal removes a goal.
func (db *DB) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	if _, err := db.Pool.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	return nil
}

// DeactivateGoal marks a goal inactive without deleting its history.
func (db *DB) DeactivateGoal(ctx context.Context, id uuid.UUID) error {
	if _, err := db.Pool.Exec(ctx, `UPDATE goals SET is_active = FALSE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deactivating goal: %w", err)
	}
	return nil
}
