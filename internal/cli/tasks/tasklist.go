package tasks

import (
	"fmt"

	"github.com/praxable/praxable-cli/internal/agenda"
	"github.com/praxable/praxable-cli/internal/cli"
	"github.com/praxable/praxable-cli/internal/models"
)

type TaskListCmd struct {
	All     bool   `short:"a" help:"Show every task, not just today's."`
	Date    string `help:"Show tasks for this date (YYYY-MM-DD)."`
	Pending bool   `help:"Hide completed tasks."`
	Undated bool   `help:"Include tasks without a date."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	all, err := ctx.Backend.ListTasks(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := all
	if !c.All {
		date := c.Date
		if date == "" {
			date = ctx.Today()
		}
		tasks = agenda.TodayTasks(all, date, c.Undated || ctx.Config.IncludeUndated)
	}
	if c.Pending {
		kept := make([]models.TaskData, 0, len(tasks))
		for _, t := range tasks {
			if !t.Done() {
				kept = append(kept, t)
			}
		}
		tasks = kept
	}

	return ctx.Out.Emit(ctx.Ctx, tasks, func() error {
		ctx.Out.Tasks(tasks, ctx.Location())
		return nil
	})
}
