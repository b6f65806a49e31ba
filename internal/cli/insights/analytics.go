package insights

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/praxable/praxable-cli/internal/agenda"
	"github.com/praxable/praxable-cli/internal/cli"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/output"
)

type AnalyticsCmd struct{}

type analyticsView struct {
	Alignment *models.AnalyticsResponse `json:"alignment"`
	Stats     agenda.Stats              `json:"stats"`
}

func (c *AnalyticsCmd) Run(ctx *cli.Context) error {
	var (
		resp  *models.AnalyticsResponse
		tasks []models.TaskData
	)
	g, gctx := errgroup.WithContext(ctx.Ctx)
	g.Go(func() error {
		var err error
		resp, err = ctx.Backend.Analytics(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = ctx.Backend.ListTasks(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load analytics: %w", err)
	}

	view := analyticsView{Alignment: resp, Stats: agenda.ComputeStats(tasks)}
	return ctx.Out.Emit(ctx.Ctx, view, func() error {
		return ctx.Out.Markdown(output.AnalyticsMarkdown(resp, view.Stats))
	})
}
