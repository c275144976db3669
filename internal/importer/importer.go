package importer

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	SessionsImported int
	SetsImported     int

	// Exercise names in the export with no configured exercise. Their sets
	// are not imported; configure the exercise and re-run with a fresh file.
	UnknownExercises []string
}

// Store is the slice of the storage layer the importer writes through.
type Store interface {
	FetchExerciseByName(ctx context.Context, name string) (*models.Exercise, error)
	ReplaceDaySets(ctx context.Context, exerciseID uuid.UUID, day time.Time, sets []models.WorkoutSet) error
}

var _ Store = (*storage.DB)(nil)

// Importer reads CSV workout exports from a directory and replays them
// through the replace-day-sets storage path.
type Importer struct {
	db     Store
	state  *StateDB
	log    *slog.Logger
	dryRun bool
	stats  Stats

	unknownSeen map[string]bool
}

// New creates a new Importer. state may be nil, in which case every file is
// processed on every run.
func New(db Store, state *StateDB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, state: state, log: log, dryRun: dryRun, unknownSeen: map[string]bool{}}
}

// Import processes all .csv files in the given directory, oldest name first.
func (imp *Importer) Import(ctx context.Context, dir string) (*Stats, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return &imp.stats, fmt.Errorf("listing %s: %w", dir, err)
	}
	sort.Strings(files)

	for _, f := range files {
		if err := imp.importFile(ctx, f); err != nil {
			imp.log.Warn("import failed", "file", f, "error", err)
			imp.stats.FilesErrored++
		}
	}
	return &imp.stats, nil
}

func (imp *Importer) importFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	var hash string
	if imp.state != nil {
		hash, err = HashFile(path)
		if err != nil {
			return fmt.Errorf("hashing: %w", err)
		}
		done, err := imp.state.IsImported(filepath.Base(path), info.Size(), hash)
		if err != nil {
			return fmt.Errorf("checking state: %w", err)
		}
		if done {
			imp.stats.FilesSkipped++
			return nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sessions, err := Parse(f)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}

	for _, session := range sessions {
		if err := imp.importSession(ctx, session); err != nil {
			return fmt.Errorf("session %q (%s): %w", session.Name, session.Date.Format("2006-01-02"), err)
		}
		imp.stats.SessionsImported++
	}
	imp.stats.FilesProcessed++

	if imp.state != nil && !imp.dryRun {
		if err := imp.state.MarkImported(filepath.Base(path), info.Size(), hash); err != nil {
			return fmt.Errorf("marking state: %w", err)
		}
	}
	return nil
}

// importSession writes each exercise block as that exercise's full set list
// for the session day. Warmup sets come first so warmup-aware exercises drop
// them from analytics by order.
func (imp *Importer) importSession(ctx context.Context, session ParsedSession) error {
	for _, block := range session.Exercises {
		ex, err := imp.db.FetchExerciseByName(ctx, block.Name)
		if err != nil {
			return fmt.Errorf("resolving exercise %q: %w", block.Name, err)
		}
		if ex == nil {
			if !imp.unknownSeen[block.Name] {
				imp.unknownSeen[block.Name] = true
				imp.stats.UnknownExercises = append(imp.stats.UnknownExercises, block.Name)
				imp.log.Info("skipping unknown exercise", "exercise", block.Name)
			}
			continue
		}

		sets := buildSets(*ex, session.Date, block.Sets)
		imp.stats.SetsImported += len(sets)
		if imp.dryRun {
			continue
		}
		if err := imp.db.ReplaceDaySets(ctx, ex.ID, session.Date, sets); err != nil {
			return fmt.Errorf("replacing sets for %q: %w", block.Name, err)
		}
	}
	return nil
}

// buildSets converts parsed sets to workout sets, warmups first, with
// sequential order.
func buildSets(ex models.Exercise, date time.Time, parsed []ParsedSet) []models.WorkoutSet {
	ordered := make([]ParsedSet, 0, len(parsed))
	for _, p := range parsed {
		if p.IsWarmup {
			ordered = append(ordered, p)
		}
	}
	for _, p := range parsed {
		if !p.IsWarmup {
			ordered = append(ordered, p)
		}
	}

	sets := make([]models.WorkoutSet, 0, len(ordered))
	for i, p := range ordered {
		weight := p.WeightKg
		reps := p.Reps
		rir := int(math.Round(p.RIR))
		set := models.WorkoutSet{
			ID:          uuid.New(),
			ExerciseID:  ex.ID,
			Date:        date,
			Order:       i + 1,
			Weight:      &weight,
			Reps:        &reps,
			Unit:        models.Kilograms,
			IsCompleted: true,
		}
		if !p.IsWarmup {
			set.RIR = &rir
		}
		sets = append(sets, set)
	}
	return sets
}
