package today

import (
	"fmt"

	"github.com/praxable/praxable-cli/internal/agenda"
	"github.com/praxable/praxable-cli/internal/cli"
	"github.com/praxable/praxable-cli/internal/constants"
)

type TodayCmd struct {
	Order   string `help:"Agenda layout." enum:"config,sectioned,interleaved" default:"config"`
	Undated bool   `help:"Also show tasks that have no date."`
}

type todayView struct {
	Agenda agenda.Agenda `json:"agenda"`
	Stats  agenda.Stats  `json:"stats"`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	snap, err := agenda.NewLoader(ctx.Backend).Load(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to load today: %w", err)
	}

	order := ctx.Config.AgendaOrder
	if c.Order != "" && c.Order != "config" {
		order = constants.AgendaOrder(c.Order)
	}
	undated := c.Undated || ctx.Config.IncludeUndated
	date := ctx.Today()

	view := todayView{
		Agenda: snap.Agenda(agenda.Input{
			Date:           date,
			Location:       ctx.Location(),
			Order:          order,
			IncludeUndated: undated,
		}),
		Stats: agenda.ComputeStats(agenda.TodayTasks(snap.Tasks, date, undated)),
	}

	return ctx.Out.Emit(ctx.Ctx, view, func() error {
		ctx.Out.Agenda(view.Agenda)
		ctx.Out.Println()
		ctx.Out.Muted("%d of %d tasks done (%.0f%%)", view.Stats.Completed, view.Stats.Total, view.Stats.CompletionRate)
		return nil
	})
}
