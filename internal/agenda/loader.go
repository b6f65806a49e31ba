package agenda

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/praxable/praxable-cli/internal/logger"
	"github.com/praxable/praxable-cli/internal/models"
)

// Source is the subset of the backend the loader reads from.
type Source interface {
	ListValues(ctx context.Context) ([]models.CoreValue, error)
	TodayEvents(ctx context.Context) ([]models.CalendarEvent, error)
	FreeSlots(ctx context.Context) ([]models.FreeSlot, error)
	ListTasks(ctx context.Context) ([]models.TaskData, error)
}

// Snapshot is one consistent read of everything the home view shows.
type Snapshot struct {
	Values []models.CoreValue
	Events []models.CalendarEvent
	Slots  []models.FreeSlot
	Tasks  []models.TaskData
}

// Loader fetches a Snapshot.
type Loader struct {
	src Source
}

// NewLoader returns a Loader reading from src.
func NewLoader(src Source) *Loader {
	return &Loader{src: src}
}

// Load issues the four reads concurrently and waits for all of them. The
// first failure cancels the others and fails the load.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		v, err := l.src.ListValues(gctx)
		if err != nil {
			return fmt.Errorf("load values: %w", err)
		}
		snap.Values = v
		return nil
	})
	g.Go(func() error {
		e, err := l.src.TodayEvents(gctx)
		if err != nil {
			return fmt.Errorf("load events: %w", err)
		}
		snap.Events = e
		return nil
	})
	g.Go(func() error {
		s, err := l.src.FreeSlots(gctx)
		if err != nil {
			return fmt.Errorf("load free slots: %w", err)
		}
		snap.Slots = s
		return nil
	})
	g.Go(func() error {
		t, err := l.src.ListTasks(gctx)
		if err != nil {
			return fmt.Errorf("load tasks: %w", err)
		}
		snap.Tasks = t
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Warn("Agenda load failed", "error", err)
		return nil, err
	}
	logger.Debug("Agenda loaded",
		"values", len(snap.Values),
		"events", len(snap.Events),
		"slots", len(snap.Slots),
		"tasks", len(snap.Tasks))
	return &snap, nil
}

// Agenda builds the day view from a snapshot.
func (s *Snapshot) Agenda(in Input) Agenda {
	in.Tasks = s.Tasks
	in.Events = s.Events
	in.Slots = s.Slots
	return Build(in)
}
