package plans

import (
	"fmt"

	"github.com/praxable/praxable-cli/internal/cli"
	"github.com/praxable/praxable-cli/internal/storage"
)

type ApprovalsCmd struct {
	ID    string `arg:"" optional:"" help:"Show the steps of one run."`
	Limit int    `short:"n" help:"How many runs to list." default:"20"`
}

func (c *ApprovalsCmd) Run(ctx *cli.Context) error {
	j, err := ctx.Journal()
	if err != nil {
		return err
	}

	if c.ID != "" {
		run, err := j.GetRun(ctx.Ctx, c.ID)
		if err != nil {
			if storage.IsRunNotFound(err) {
				return fmt.Errorf("no approval run with id %q", c.ID)
			}
			return err
		}
		return ctx.Out.Emit(ctx.Ctx, run, func() error {
			ctx.Out.Run(*run)
			return nil
		})
	}

	runs, err := j.ListRuns(ctx.Ctx, c.Limit)
	if err != nil {
		return fmt.Errorf("failed to list approval runs: %w", err)
	}
	return ctx.Out.Emit(ctx.Ctx, runs, func() error {
		ctx.Out.Runs(runs)
		return nil
	})
}
