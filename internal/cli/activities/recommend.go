package activities

import (
	"fmt"

	"github.com/praxable/praxable-cli/internal/agenda"
	"github.com/praxable/praxable-cli/internal/cli"
	"github.com/praxable/praxable-cli/internal/constants"
	apperrors "github.com/praxable/praxable-cli/internal/errors"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/recommend"
	"github.com/praxable/praxable-cli/internal/values"
)

type RecommendCmd struct {
	Value       []string `short:"v" name:"value" help:"Core value to match; repeat for several. Prompts when omitted."`
	MinDuration int      `help:"Only activities lasting at least this many minutes." default:"0"`
	Fit         int      `help:"Only activities that fit in this many minutes." default:"0"`
	Order       string   `help:"Result order." enum:"config,backend,score" default:"config"`
	Schedule    int      `help:"Book the Nth recommendation into its suggested slot." default:"0"`
	Yes         bool     `short:"y" help:"Do not ask before booking."`
}

type recommendView struct {
	Values          []string                `json:"values"`
	Recommendations []models.Recommendation `json:"recommendations"`
	Scheduled       *models.CalendarEvent   `json:"scheduled,omitempty"`
}

func (c *RecommendCmd) service(ctx *cli.Context) *recommend.Service {
	var order constants.RecommendationOrder
	if c.Order != "" && c.Order != "config" {
		order = constants.RecommendationOrder(c.Order)
	}
	return ctx.Recommender(order)
}

func (c *RecommendCmd) selection(ctx *cli.Context) (*values.Selector, error) {
	if len(c.Value) > 0 {
		return ctx.Selection(c.Value)
	}
	known, err := ctx.Backend.ListValues(ctx.Ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list values: %w", err)
	}
	picked, err := ctx.PickValues(values.Names(known))
	if err != nil {
		return nil, err
	}
	return values.NewSelector(picked...), nil
}

func (c *RecommendCmd) Run(ctx *cli.Context) error {
	if c.Fit < 0 {
		return apperrors.FieldValidation("fit", "must not be negative")
	}

	sel, err := c.selection(ctx)
	if err != nil {
		return err
	}

	svc := c.service(ctx)
	recs, err := svc.Recommend(ctx.Ctx, sel, c.MinDuration)
	if err != nil {
		return err
	}
	if c.Fit > 0 {
		recs = recommend.FilterByFit(recs, c.Fit)
	}

	view := recommendView{Values: sel.Selected(), Recommendations: recs}

	if c.Schedule != 0 {
		if c.Schedule < 1 || c.Schedule > len(recs) {
			return apperrors.FieldValidation("schedule", fmt.Sprintf("pick a number between 1 and %d", len(recs)))
		}
		view.Scheduled, err = c.book(ctx, svc, recs[c.Schedule-1])
		if err != nil {
			return err
		}
	}

	return ctx.Out.Emit(ctx.Ctx, view, func() error {
		ctx.Out.Recommendations(recs, svc.Summary, ctx.Location())
		if view.Scheduled != nil {
			ctx.Out.Success("Scheduled %s (%s)", view.Scheduled.Summary,
				agenda.FormatRange(view.Scheduled.Start, view.Scheduled.End, ctx.Location()))
		}
		return nil
	})
}

// book schedules rec after confirmation. A declined booking returns nil.
func (c *RecommendCmd) book(ctx *cli.Context, svc *recommend.Service, rec models.Recommendation) (*models.CalendarEvent, error) {
	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Book %s at %s?", svc.Summary(rec),
			agenda.FormatRange(rec.SuggestedSlot.Start, rec.SuggestedSlot.End, ctx.Location())), true)
		if err != nil {
			return nil, err
		}
		if !ok {
			ctx.Out.Muted("Not booked")
			return nil, nil
		}
	}
	return svc.Schedule(ctx.Ctx, rec)
}
