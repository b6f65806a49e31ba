package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/praxable/praxable-cli/internal/constants"
	"github.com/praxable/praxable-cli/internal/logger"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/utils"
	"github.com/praxable/praxable-cli/internal/validation"
)

// Approval step names, as recorded in the journal.
const (
	StepLog   = "log_task"
	StepParse = "parse_time"
	StepEvent = "create_event"
)

// Backend is what approval and generation need from the Praxable API.
type Backend interface {
	LogTask(ctx context.Context, task models.TaskData) (*models.TaskData, error)
	AddEvent(ctx context.Context, event models.CalendarEvent) (*models.CalendarEvent, error)
}

// Recorder keeps a local audit trail of approval runs. Failures to record
// are logged and never fail the run.
type Recorder interface {
	StartRun(ctx context.Context, total int) (string, error)
	RecordStep(ctx context.Context, runID string, index int, task, step string, stepErr error) error
	FinishRun(ctx context.Context, runID string, succeeded int, runErr error) error
}

// Defaults are the self-report values attached to approved tasks.
type Defaults struct {
	MoodBefore   int
	SleepQuality int
	EnergyLevel  int
}

// DefaultRatings returns the neutral midpoint ratings.
func DefaultRatings() Defaults {
	return Defaults{
		MoodBefore:   constants.DefaultMoodBefore,
		SleepQuality: constants.DefaultSleepQuality,
		EnergyLevel:  constants.DefaultEnergyLevel,
	}
}

// ApproverOptions configure an Approver. Zero values pick the defaults.
type ApproverOptions struct {
	Mode     constants.TimePreferenceMode
	Location *time.Location
	Now      func() time.Time
	Defaults *Defaults
	Recorder Recorder
}

// Approver commits generated tasks: each is logged, its time preference
// parsed, and a calendar event created, in that order.
type Approver struct {
	backend  Backend
	mode     constants.TimePreferenceMode
	loc      *time.Location
	now      func() time.Time
	defaults Defaults
	recorder Recorder
}

// NewApprover creates an Approver over backend.
func NewApprover(backend Backend, opts ApproverOptions) *Approver {
	a := &Approver{
		backend:  backend,
		mode:     opts.Mode,
		loc:      opts.Location,
		now:      opts.Now,
		defaults: DefaultRatings(),
		recorder: opts.Recorder,
	}
	if a.mode == "" {
		a.mode = constants.TimePreferenceAuto
	}
	if a.loc == nil {
		a.loc = time.Local
	}
	if a.now == nil {
		a.now = time.Now
	}
	if opts.Defaults != nil {
		a.defaults = *opts.Defaults
	}
	return a
}

func (a *Approver) today() string {
	return utils.Today(a.now().In(a.loc))
}

// TaskFor builds the TaskData logged for a planned task on today.
func (a *Approver) TaskFor(p models.PlannedTask, today string) models.TaskData {
	return models.TaskData{
		Date:         today,
		Task:         p.TaskName,
		TaskType:     p.TaskType,
		AlignedValue: p.AlignedValue,
		PlannedTime:  p.TimePreference,
		DidIt:        0,
		MoodBefore:   a.defaults.MoodBefore,
		SleepQuality: a.defaults.SleepQuality,
		EnergyLevel:  a.defaults.EnergyLevel,
	}
}

// Approve commits tasks in order and stops at the first failure. Tasks
// committed before the failure stay on the backend, and so does a failed task
// that was logged before its parse or event step failed. A failed run returns
// the report together with a *errors.PartialSequenceError.
func (a *Approver) Approve(ctx context.Context, tasks []models.PlannedTask) (Report[models.PlannedTask], error) {
	today := a.today()
	runID := a.startRun(ctx, len(tasks))

	seq := Sequence[models.PlannedTask]{
		Step: func(ctx context.Context, i int, p models.PlannedTask) error {
			step, err := a.approveOne(ctx, p, today)
			a.recordStep(ctx, runID, i, p.TaskName, step, err)
			if err != nil {
				err = fmt.Errorf("%s: %w", step, err)
				if step != StepLog {
					return &CommittedError{Err: err}
				}
				return err
			}
			return nil
		},
	}

	report := seq.Run(ctx, tasks)
	a.finishRun(ctx, runID, report.Succeeded, report.Err)

	if report.Failed() {
		logger.Error("Plan approval stopped",
			"succeeded", report.Succeeded,
			"persisted", report.Persisted,
			"total", report.Total,
			"failed_at", report.FailedAt,
			"error", report.Err)
		return report, report.Error(func(p models.PlannedTask) string { return p.TaskName })
	}

	logger.Info("Plan approved", "tasks", report.Succeeded)
	return report, nil
}

func (a *Approver) approveOne(ctx context.Context, p models.PlannedTask, today string) (string, error) {
	if _, err := a.backend.LogTask(ctx, a.TaskFor(p, today)); err != nil {
		return StepLog, err
	}

	w, err := ParseTimePreference(p.TimePreference, today, a.mode, a.loc)
	if err != nil {
		return StepParse, err
	}

	event := models.CalendarEvent{
		Summary: p.TaskName,
		Start:   utils.FormatLocalDateTime(w.Start),
		End:     utils.FormatLocalDateTime(w.End),
	}
	if _, err := a.backend.AddEvent(ctx, event); err != nil {
		return StepEvent, err
	}

	logger.Debug("Approved task", "task", p.TaskName, "start", event.Start, "end", event.End)
	return StepEvent, nil
}

// Conflicts checks the planned windows against each other and against the
// events already on the calendar. Tasks whose time preference cannot be
// parsed are reported as invalid windows.
func (a *Approver) Conflicts(tasks []models.PlannedTask, events []models.CalendarEvent) validation.ValidationResult {
	today := a.today()
	windows := make([]validation.Window, 0, len(tasks)+len(events))
	var invalid []validation.Conflict

	for _, p := range tasks {
		w, err := ParseTimePreference(p.TimePreference, today, a.mode, a.loc)
		if err != nil {
			invalid = append(invalid, validation.Conflict{
				Type:        validation.ConflictInvalidWindow,
				Description: fmt.Sprintf("Task %q has an unusable time preference: %v", p.TaskName, err),
				Items:       []string{p.TaskName},
			})
			continue
		}
		windows = append(windows, validation.Window{Name: p.TaskName, Start: w.Start, End: w.End})
	}
	for _, e := range events {
		start, err1 := utils.ParseISO(e.Start, a.loc)
		end, err2 := utils.ParseISO(e.End, a.loc)
		if err1 != nil || err2 != nil {
			continue
		}
		windows = append(windows, validation.Window{Name: e.Summary, Start: start, End: end, Fixed: true})
	}

	result := validation.Windows(windows)
	for _, c := range invalid {
		result.Add(c)
	}
	return result
}

func (a *Approver) startRun(ctx context.Context, total int) string {
	if a.recorder == nil {
		return ""
	}
	id, err := a.recorder.StartRun(ctx, total)
	if err != nil {
		logger.Warn("Failed to start approval journal run", "error", err)
		return ""
	}
	return id
}

func (a *Approver) recordStep(ctx context.Context, runID string, i int, task, step string, err error) {
	if a.recorder == nil || runID == "" {
		return
	}
	if rerr := a.recorder.RecordStep(ctx, runID, i, task, step, err); rerr != nil {
		logger.Warn("Failed to record approval step", "run", runID, "task", task, "error", rerr)
	}
}

func (a *Approver) finishRun(ctx context.Context, runID string, succeeded int, err error) {
	if a.recorder == nil || runID == "" {
		return
	}
	// The run context may already be cancelled; the journal is local.
	if rerr := a.recorder.FinishRun(context.WithoutCancel(ctx), runID, succeeded, err); rerr != nil {
		logger.Warn("Failed to finish approval journal run", "run", runID, "error", rerr)
	}
}
