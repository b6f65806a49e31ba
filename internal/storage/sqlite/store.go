// Package sqlite is the default approval journal backend, a single file
// under the config directory.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/praxable/praxable-cli/internal/logger"
	"github.com/praxable/praxable-cli/internal/migration"
	"github.com/praxable/praxable-cli/migrations"
)

// ErrNotInitialized is returned by Load before the journal file exists.
var ErrNotInitialized = errors.New("journal not initialized")

type Store struct {
	path   string
	source string
	db     *sql.DB
	now    func() time.Time
}

func NewStore(path, source string) *Store {
	return &Store{
		path:   path,
		source: source,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Init creates the journal file if needed and migrates it.
func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db

	runner, err := s.runner()
	if err != nil {
		return err
	}
	if _, err := runner.ApplyMigrations(func(msg string) {
		logger.Debug("Journal migration", "driver", "sqlite", "msg", msg)
	}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Load opens an existing journal and checks its schema version.
func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("%w at %s", ErrNotInitialized, s.path)
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db

	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DriverSQLite)
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Location returns the journal file path.
func (s *Store) Location() string {
	return s.path
}

// SchemaStatus reports the applied and latest schema versions.
func (s *Store) SchemaStatus() (migration.Status, error) {
	if s.db == nil {
		return migration.Status{}, ErrNotInitialized
	}
	runner, err := s.runner()
	if err != nil {
		return migration.Status{}, err
	}
	return runner.Status()
}

func (s *Store) StartRun(ctx context.Context, total int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO approval_runs (id, source, started_at, total) VALUES (?, ?, ?, ?)`,
		id, s.source, s.now().Format(timeLayout), total)
	if err != nil {
		return "", fmt.Errorf("failed to start run: %w", err)
	}
	return id, nil
}

func (s *Store) RecordStep(ctx context.Context, runID string, index int, task, step string, stepErr error) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO approval_steps (run_id, position, task, step, ok, error, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, index, task, step, boolToInt(stepErr == nil), errString(stepErr), s.now().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to record step: %w", err)
	}
	return nil
}

func (s *Store) FinishRun(ctx context.Context, runID string, succeeded int, runErr error) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE approval_runs SET finished_at = ?, succeeded = ?, error = ? WHERE id = ?`,
		s.now().Format(timeLayout), succeeded, errString(runErr), runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s not found", runID)
	}
	return nil
}
