// Package storage is the local approval journal: an audit trail of plan
// approval runs and how far each got. It never caches backend state.
package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/praxable/praxable-cli/internal/migration"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/storage/postgres"
	"github.com/praxable/praxable-cli/internal/storage/sqlite"
)

// Provider is a journal backend.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	Location() string
	SchemaStatus() (migration.Status, error)

	// Runs
	StartRun(ctx context.Context, total int) (string, error)
	RecordStep(ctx context.Context, runID string, index int, task, step string, stepErr error) error
	FinishRun(ctx context.Context, runID string, succeeded int, runErr error) error
	ListRuns(ctx context.Context, limit int) ([]models.ApprovalRun, error)
	GetRun(ctx context.Context, id string) (*models.ApprovalRun, error)
}

var (
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
)

// IsPostgres reports whether target is a PostgreSQL URI or key=value DSN
// rather than a file path.
func IsPostgres(target string) bool {
	t := strings.TrimSpace(target)
	if strings.HasPrefix(t, "postgres://") || strings.HasPrefix(t, "postgresql://") {
		return true
	}
	return strings.Contains(t, "host=") || strings.Contains(t, "dbname=")
}

// New returns the provider for target without opening it. source tags runs
// with where they were started from, e.g. "cli" or "tui".
func New(target, source string) Provider {
	if IsPostgres(target) {
		return postgres.New(target, source)
	}
	return sqlite.NewStore(target, source)
}

// Open returns an initialized provider for target, migrating it if needed.
func Open(target, source string) (Provider, error) {
	p := New(target, source)
	if err := p.Init(); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// IsRunNotFound reports whether err is either backend's unknown-run error.
func IsRunNotFound(err error) bool {
	return errors.Is(err, sqlite.ErrRunNotFound) || errors.Is(err, postgres.ErrRunNotFound)
}

// IsNotInitialized reports whether Load found no journal to open.
func IsNotInitialized(err error) bool {
	return errors.Is(err, sqlite.ErrNotInitialized)
}
