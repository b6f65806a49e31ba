package activities

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/praxable/praxable-cli/internal/cli"
)

type ActivityListCmd struct {
	Value string `short:"v" help:"Only activities aligned with this value."`
}

func (c *ActivityListCmd) Run(ctx *cli.Context) error {
	acts, err := ctx.Backend.ListActivities(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to list activities: %w", err)
	}
	if c.Value != "" {
		kept := acts[:0]
		for _, a := range acts {
			for _, v := range a.AlignedValues {
				if v == c.Value {
					kept = append(kept, a)
					break
				}
			}
		}
		acts = kept
	}

	return ctx.Out.Emit(ctx.Ctx, acts, func() error {
		if len(acts) == 0 {
			ctx.Out.Muted("No activities found")
			return nil
		}
		rows := make([][]string, 0, len(acts))
		for _, a := range acts {
			rows = append(rows, []string{
				strings.TrimSpace(a.Emoji + " " + a.Name),
				strconv.Itoa(a.DurationMinutes) + " min",
				a.Category,
				strings.Join(a.AlignedValues, ", "),
			})
		}
		ctx.Out.Table([]string{"Activity", "Length", "Category", "Values"}, rows)
		return nil
	})
}
