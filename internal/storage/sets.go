package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

const setColumns = `id, exercise_id, logged_at, set_order, weight, reps, unit,
	is_completed, rpe, rir, completed_at`

// FetchSets retrieves workout sets matching the filter, ordered by date then
// in-day set order. Satisfies the engine's Store contract.
func (db *DB) FetchSets(ctx context.Context, filter analytics.SetFilter) ([]models.WorkoutSet, error) {
	query := `SELECT ` + setColumns + ` FROM workout_sets WHERE TRUE`
	var args []any

	if filter.ExerciseID != nil {
		args = append(args, *filter.ExerciseID)
		query += fmt.Sprintf(" AND exercise_id = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND logged_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND logged_at < $%d", len(args))
	}
	if filter.CompletedOnly {
		query += " AND is_completed"
	}
	query += " ORDER BY logged_at ASC, set_order ASC"

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workout sets: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSet
	for rows.Next() {
		var s models.WorkoutSet
		if err := rows.Scan(&s.ID, &s.ExerciseID, &s.Date, &s.Order, &s.Weight, &s.Reps,
			&s.Unit, &s.IsCompleted, &s.RPE, &s.RIR, &s.CompletedAt); err != nil {
			return nil, fmt.Errorf("scanning workout set: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// ReplaceDaySets replaces every set for one exercise on one calendar day with
// the given sets, atomically: delete then insert in a single transaction.
// Days are never partially patched.
func (db *DB) ReplaceDaySets(ctx context.Context, exerciseID uuid.UUID, day time.Time, sets []models.WorkoutSet) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	if _, err := tx.Exec(ctx,
		`DELETE FROM workout_sets WHERE exercise_id = $1 AND logged_at >= $2 AND logged_at < $3`,
		exerciseID, dayStart, dayEnd); err != nil {
		return fmt.Errorf("deleting day sets: %w", err)
	}

	for _, s := range sets {
		id := s.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO workout_sets (`+setColumns+`)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
			id, exerciseID, s.Date, s.Order, s.Weight, s.Reps, s.Unit,
			s.IsCompleted, s.RPE, s.RIR, s.CompletedAt); err != nil {
			return fmt.Errorf("inserting set: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing day sets: %w", err)
	}
	return nil
}
