package today

import (
	"fmt"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/praxable/praxable-cli/internal/agenda"
	"github.com/praxable/praxable-cli/internal/cli"
	"github.com/praxable/praxable-cli/internal/models"
)

type DashboardCmd struct {
	// pick chooses the inspiration value; tests pin it.
	pick func(n int) int
}

type dashboardView struct {
	Greeting    string                `json:"greeting"`
	TotalTasks  int                   `json:"total_tasks"`
	NextEvent   *models.CalendarEvent `json:"next_event,omitempty"`
	Inspiration string                `json:"inspiration,omitempty"`
}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
	var (
		analytics *models.AnalyticsResponse
		events    []models.CalendarEvent
		vals      []models.CoreValue
	)

	g, gctx := errgroup.WithContext(ctx.Ctx)
	g.Go(func() error {
		var err error
		analytics, err = ctx.Backend.Analytics(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = ctx.Backend.TodayEvents(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		vals, err = ctx.Backend.ListValues(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	now := ctx.Clock()()
	view := dashboardView{
		Greeting:   agenda.Greeting(now),
		TotalTasks: analytics.TotalTasks,
	}
	if next, ok := agenda.NextEvent(events, now); ok {
		view.NextEvent = &next
	}
	if len(vals) > 0 {
		pick := c.pick
		if pick == nil {
			pick = rand.IntN
		}
		view.Inspiration = vals[pick(len(vals))].ValueName
	}

	return ctx.Out.Emit(ctx.Ctx, view, func() error {
		ctx.Out.Heading(view.Greeting + "!")
		ctx.Out.Printf("Tasks logged: %d\n", view.TotalTasks)
		if view.NextEvent != nil {
			ctx.Out.Printf("Up next:      %s at %s\n", view.NextEvent.Summary, agenda.FormatTimeIn(view.NextEvent.Start, ctx.Location()))
		} else {
			ctx.Out.Muted("No more events today.")
		}
		if view.Inspiration != "" {
			ctx.Out.Printf("Focus on:     %s\n", view.Inspiration)
		}
		return nil
	})
}
