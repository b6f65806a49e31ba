package values

import (
	"fmt"

	"github.com/praxable/praxable-cli/internal/cli"
	"github.com/praxable/praxable-cli/internal/validation"
)

type ValuesCmd struct {
	List   ValueListCmd   `cmd:"" default:"1" help:"List core values."`
	Add    ValueAddCmd    `cmd:"" help:"Add a core value."`
	Remove ValueRemoveCmd `cmd:"" aliases:"rm" help:"Delete a core value."`
}

type ValueListCmd struct{}

func (c *ValueListCmd) Run(ctx *cli.Context) error {
	vals, err := ctx.Backend.ListValues(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to list values: %w", err)
	}
	return ctx.Out.Emit(ctx.Ctx, vals, func() error {
		ctx.Out.Values(vals, nil)
		return nil
	})
}

type ValueAddCmd struct {
	Name string `arg:"" help:"Value name, e.g. Health."`
}

func (c *ValueAddCmd) Run(ctx *cli.Context) error {
	name := validation.SanitizeText(c.Name)
	if err := validation.ValueName(name); err != nil {
		return err
	}
	v, err := ctx.Backend.AddValue(ctx.Ctx, name)
	if err != nil {
		return fmt.Errorf("failed to add value: %w", err)
	}
	return ctx.Out.Emit(ctx.Ctx, v, func() error {
		ctx.Out.Success("Added value %q", v.ValueName)
		return nil
	})
}

type ValueRemoveCmd struct {
	Name string `arg:"" help:"Value name to delete."`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *ValueRemoveCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete value %q?", c.Name), true)
		if err != nil {
			return err
		}
		if !ok {
			ctx.Out.Muted("Cancelled")
			return nil
		}
	}
	if err := ctx.Backend.DeleteValue(ctx.Ctx, c.Name); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}
	ctx.Out.Success("Deleted value %q", c.Name)
	return nil
}
