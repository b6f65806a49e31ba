package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/praxable/praxable-cli/internal/models"
)

// Set PRAXABLE_POSTGRES_TEST_URL to run, e.g.
// PRAXABLE_POSTGRES_TEST_URL="postgres://me@localhost:5432/praxable_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("PRAXABLE_POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("PRAXABLE_POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr, "test")
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	t.Cleanup(func() {
		if store.db != nil {
			store.db.Exec("DELETE FROM approval_runs WHERE source = 'test'")
		}
	})

	st, err := store.SchemaStatus()
	if err != nil || !st.UpToDate() {
		t.Fatalf("schema status = %+v, err = %v", st, err)
	}

	id, err := store.StartRun(ctx, 2)
	if err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	if err := store.RecordStep(ctx, id, 0, "Run", "create_event", nil); err != nil {
		t.Fatalf("RecordStep: %v", err)
	}
	if err := store.RecordStep(ctx, id, 1, "Read", "log_task", errors.New("boom")); err != nil {
		t.Fatalf("RecordStep: %v", err)
	}
	if err := store.FinishRun(ctx, id, 1, errors.New("boom")); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	run, err := store.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.Status() != models.RunPartial || len(run.Steps) != 2 || run.Steps[1].OK {
		t.Errorf("run = %+v", run)
	}

	runs, err := store.ListRuns(ctx, 5)
	if err != nil || len(runs) == 0 || runs[0].ID != id {
		t.Errorf("ListRuns = %+v, err = %v", runs, err)
	}

	if _, err := store.GetRun(ctx, "00000000-0000-0000-0000-000000000000"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}
