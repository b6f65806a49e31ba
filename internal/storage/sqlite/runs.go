package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/praxable/praxable-cli/internal/models"
)

// ErrRunNotFound is returned by GetRun for an unknown id.
var ErrRunNotFound = errors.New("approval run not found")

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ListRuns returns the most recent runs, newest first, without their steps.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]models.ApprovalRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, started_at, finished_at, total, succeeded, error
		 FROM approval_runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []models.ApprovalRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns a run with its steps in order.
func (s *Store) GetRun(ctx context.Context, id string) (*models.ApprovalRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, started_at, finished_at, total, succeeded, error
		 FROM approval_runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT position, task, step, ok, error, recorded_at
		 FROM approval_steps WHERE run_id = ? ORDER BY position, id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load steps: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			step     models.ApprovalStep
			ok       int
			recorded string
		)
		if err := rows.Scan(&step.Position, &step.Task, &step.Step, &ok, &step.Error, &recorded); err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		step.OK = ok == 1
		if step.RecordedAt, err = time.Parse(timeLayout, recorded); err != nil {
			return nil, fmt.Errorf("invalid step timestamp %q: %w", recorded, err)
		}
		run.Steps = append(run.Steps, step)
	}
	return &run, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (models.ApprovalRun, error) {
	var (
		run      models.ApprovalRun
		started  string
		finished sql.NullString
	)
	if err := sc.Scan(&run.ID, &run.Source, &started, &finished, &run.Total, &run.Succeeded, &run.Error); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return run, err
		}
		return run, fmt.Errorf("failed to scan run: %w", err)
	}

	var err error
	if run.StartedAt, err = time.Parse(timeLayout, started); err != nil {
		return run, fmt.Errorf("invalid run timestamp %q: %w", started, err)
	}
	if finished.Valid {
		t, err := time.Parse(timeLayout, finished.String)
		if err != nil {
			return run, fmt.Errorf("invalid run timestamp %q: %w", finished.String, err)
		}
		run.FinishedAt = &t
	}
	return run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
