// Package postgres stores the approval journal in a shared PostgreSQL
// database, under the praxable schema.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	pq "github.com/lib/pq"

	"github.com/praxable/praxable-cli/internal/constants"
	"github.com/praxable/praxable-cli/internal/logger"
	"github.com/praxable/praxable-cli/internal/migration"
	"github.com/praxable/praxable-cli/migrations"
)

type Store struct {
	connStr string
	source  string
	db      *sql.DB
	now     func() time.Time
}

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
	ErrRunNotFound             = errors.New("approval run not found")
)

func New(connStr, source string) *Store {
	s := &Store{
		connStr: connStr,
		source:  source,
		now:     func() time.Time { return time.Now().UTC() },
	}
	s.ensureSearchPath()
	return s
}

func (s *Store) ensureSearchPath() {
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
		return
	}
	if !hasParam(s.connStr, "search_path") {
		s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
	}
}

// hasParam reports whether a key=value DSN carries key (case-insensitive).
func hasParam(connStr, key string) bool {
	for _, part := range strings.Fields(connStr) {
		k, _, ok := strings.Cut(part, "=")
		if ok && strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

// hasSSLMode checks URL and key=value forms for an sslmode parameter.
func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}
	return hasParam(connStr, "sslmode")
}

// ValidateConnString checks that connStr is a PostgreSQL URI or DSN. Unless
// allowPassword is set, a connection string carrying a password is rejected;
// such strings belong in the keyring, not the config file.
func ValidateConnString(connStr string, allowPassword bool) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := u.User.Password(); isSet && !allowPassword {
			return ErrEmbeddedCredentials
		}
		if u.Host == "" && u.User == nil && (u.Path == "" || u.Path == "/") {
			return fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return nil
	}

	if !allowPassword && hasParam(connStr, "password") {
		return ErrEmbeddedCredentials
	}
	return nil
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return nil, fmt.Errorf("failed to connect to database: %w (hint: try adding sslmode=disable to your connection string)", err)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Init creates the schema if needed and migrates it.
func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}
	db, err := s.open()
	if err != nil {
		return err
	}
	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db

	runner, err := s.runner()
	if err != nil {
		return err
	}
	if _, err := runner.ApplyMigrations(func(msg string) {
		logger.Debug("Journal migration", "driver", "postgres", "msg", msg)
	}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Load connects and checks the schema version.
func (s *Store) Load() error {
	if s.db != nil {
		return nil
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

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DriverPostgres)
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Location returns the connection string with any password masked.
func (s *Store) Location() string {
	if u, err := url.Parse(s.connStr); err == nil && u.Scheme != "" {
		return u.Redacted()
	}
	fields := strings.Fields(s.connStr)
	for i, f := range fields {
		if k, _, ok := strings.Cut(f, "="); ok && strings.EqualFold(k, "password") {
			fields[i] = k + "=xxxxx"
		}
	}
	return strings.Join(fields, " ")
}

// SchemaStatus reports the applied and latest schema versions.
func (s *Store) SchemaStatus() (migration.Status, error) {
	if s.db == nil {
		return migration.Status{}, errors.New("journal not loaded")
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
		`INSERT INTO approval_runs (id, source, started_at, total) VALUES ($1, $2, $3, $4)`,
		id, s.source, s.now(), total)
	if err != nil {
		return "", fmt.Errorf("failed to start run: %w", err)
	}
	return id, nil
}

func (s *Store) RecordStep(ctx context.Context, runID string, index int, task, step string, stepErr error) error {
	msg := ""
	if stepErr != nil {
		msg = stepErr.Error()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO approval_steps (run_id, position, task, step, ok, error, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		runID, index, task, step, stepErr == nil, msg, s.now())
	if err != nil {
		return fmt.Errorf("failed to record step: %w", err)
	}
	return nil
}

func (s *Store) FinishRun(ctx context.Context, runID string, succeeded int, runErr error) error {
	msg := ""
	if runErr != nil {
		msg = runErr.Error()
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE approval_runs SET finished_at = $1, succeeded = $2, error = $3 WHERE id = $4`,
		s.now(), succeeded, msg, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}
