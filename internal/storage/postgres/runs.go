package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/praxable/praxable-cli/internal/models"
)

// ListRuns returns the most recent runs, newest first, without their steps.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]models.ApprovalRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, started_at, finished_at, total, succeeded, error
		 FROM approval_runs ORDER BY started_at DESC, id LIMIT $1`, limit)
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
		 FROM approval_runs WHERE id = $1`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT position, task, step, ok, error, recorded_at
		 FROM approval_steps WHERE run_id = $1 ORDER BY position, id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load steps: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var step models.ApprovalStep
		if err := rows.Scan(&step.Position, &step.Task, &step.Step, &step.OK, &step.Error, &step.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
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
		finished sql.NullTime
	)
	if err := sc.Scan(&run.ID, &run.Source, &run.StartedAt, &finished, &run.Total, &run.Succeeded, &run.Error); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return run, err
		}
		return run, fmt.Errorf("failed to scan run: %w", err)
	}
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	return run, nil
}
