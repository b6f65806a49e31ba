package system

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/praxable/praxable-cli/internal/agenda"
	"github.com/praxable/praxable-cli/internal/cli"
	"github.com/praxable/praxable-cli/internal/constants"
	"github.com/praxable/praxable-cli/internal/logger"
	"github.com/praxable/praxable-cli/internal/notifier"
	"github.com/praxable/praxable-cli/internal/reminder"
)

// RemindCmd runs in the foreground and notifies shortly before each of
// today's planned tasks starts.
type RemindCmd struct {
	List  bool `help:"Print the reminders that would be scheduled and exit."`
	Until bool `help:"Exit once every reminder has fired instead of waiting for Ctrl+C."`
}

type reminderView struct {
	Task     string    `json:"task"`
	StartsAt time.Time `json:"starts_at"`
	FireAt   time.Time `json:"fire_at"`
}

// deliveryChain is the notifier used by remind, tray first.
var deliveryChain = func(ctx *cli.Context) reminder.Notifier {
	return reminder.Fallback{notifier.New(), reminder.NewWriterNotifier(ctx.Out.Writer())}
}

func (cmd *RemindCmd) Run(ctx *cli.Context) error {
	lock, err := reminder.Lock(ctx.Config.ConfigDir)
	if err != nil {
		if errors.Is(err, reminder.ErrAlreadyRunning) {
			return errors.New("reminders are already running in another process")
		}
		return err
	}
	defer lock.Unlock()

	tasks, err := ctx.Backend.ListTasks(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	today := agenda.TodayTasks(tasks, ctx.Today(), false)

	var remaining atomic.Int64
	allFired := make(chan struct{})
	svc := reminder.NewService(deliveryChain(ctx))
	svc.Fired = func(r reminder.Reminder, err error) {
		if err != nil {
			logger.Warn("Reminder delivery failed", "task", r.Task, "error", err)
		} else {
			logger.Info("Reminder delivered", "task", r.Task)
		}
		if remaining.Add(-1) == 0 {
			close(allFired)
		}
	}

	scheduled, err := svc.ScheduleTasks(today)
	if err != nil {
		return err
	}
	remaining.Store(int64(len(scheduled)))

	views := make([]reminderView, 0, len(scheduled))
	for _, r := range scheduled {
		views = append(views, reminderView{Task: r.Task, StartsAt: r.StartsAt, FireAt: r.FireAt})
	}
	if cmd.List || len(scheduled) == 0 {
		return ctx.Out.Emit(ctx.Ctx, views, func() error {
			if len(views) == 0 {
				ctx.Out.Muted("No upcoming tasks with a planned time today.")
				return nil
			}
			loc := ctx.Location()
			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{v.Task, v.StartsAt.In(loc).Format(constants.TimeFormat), v.FireAt.In(loc).Format(constants.TimeFormat)})
			}
			ctx.Out.Table([]string{"Task", "Starts", "Reminder"}, rows)
			return nil
		})
	}

	svc.Start(ctx.Ctx)
	defer svc.Stop()
	ctx.Out.Success("Scheduled %d reminder(s). Press Ctrl+C to stop.", len(scheduled))

	if cmd.Until {
		select {
		case <-allFired:
		case <-ctx.Ctx.Done():
		}
		return nil
	}
	<-ctx.Ctx.Done()
	return nil
}
