package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

const exerciseColumns = `id, name, primary_category, unit, use_warmup_set,
	progression_set_count, target_rep_min, target_rep_max, increment_value`

// FetchExercises returns all exercises, alphabetically.
func (db *DB) FetchExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+exerciseColumns+` FROM exercises ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.PrimaryCategory, &e.Unit, &e.UseWarmupSet,
			&e.ProgressionSetCount, &e.TargetRepMin, &e.TargetRepMax, &e.IncrementValue); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// FetchExercise returns one exercise by ID.
func (db *DB) FetchExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error) {
	var e models.Exercise
	err := db.Pool.QueryRow(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.PrimaryCategory, &e.Unit, &e.UseWarmupSet,
			&e.ProgressionSetCount, &e.TargetRepMin, &e.TargetRepMax, &e.IncrementValue)
	if err != nil {
		return nil, fmt.Errorf("fetching exercise %s: %w", id, err)
	}
	return &e, nil
}

// FetchExerciseByName returns one exercise by exact name, or nil when absent.
func (db *DB) FetchExerciseByName(ctx context.Context, name string) (*models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE name = $1`, name)
	if err != nil {
		return nil, fmt.Errorf("querying exercise by name: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var e models.Exercise
	if err := rows.Scan(&e.ID, &e.Name, &e.PrimaryCategory, &e.Unit, &e.UseWarmupSet,
		&e.ProgressionSetCount, &e.TargetRepMin, &e.TargetRepMax, &e.IncrementValue); err != nil {
		return nil, fmt.Errorf("scanning exercise: %w", err)
	}
	return &e, nil
}

// SaveExercise inserts or updates an exercise's configuration.
func (db *DB) SaveExercise(ctx context.Context, e models.Exercise) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO exercises (`+exerciseColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			primary_category = EXCLUDED.primary_category,
			unit = EXCLUDED.unit,
			use_warmup_set = EXCLUDED.use_warmup_set,
			progression_set_count = EXCLUDED.progression_set_count,
			target_rep_min = EXCLUDED.target_rep_min,
			target_rep_max = EXCLUDED.target_rep_max,
			increment_value = EXCLUDED.increment_value`,
		e.ID, e.Name, e.PrimaryCategory, e.Unit, e.UseWarmupSet,
		e.ProgressionSetCount, e.TargetRepMin, e.TargetRepMax, e.IncrementValue)
	if err != nil {
		return fmt.Errorf("saving exercise: %w", err)
	}
	return nil
}
