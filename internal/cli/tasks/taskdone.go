package tasks

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/praxable/praxable-cli/internal/cli"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/validation"
)

type TaskDoneCmd struct {
	ID          int `arg:"" help:"Task ID."`
	MoodAfter   int `help:"Mood afterwards, 1-10. Prompts when omitted."`
	Fulfillment int `help:"How fulfilling it was, 1-10. Prompts when omitted."`
}

func (c *TaskDoneCmd) feedback(ctx *cli.Context) (models.TaskFeedback, error) {
	fb := models.TaskFeedback{MoodAfter: c.MoodAfter, FulfillmentScore: c.Fulfillment}
	if (fb.MoodAfter == 0 || fb.FulfillmentScore == 0) && !ctx.Out.JSONMode() && cli.Interactive() {
		if err := promptFeedback(&fb); err != nil {
			return fb, err
		}
	}
	if err := validation.Rating("mood_after", fb.MoodAfter); err != nil {
		return fb, err
	}
	if err := validation.Rating("fulfillment_score", fb.FulfillmentScore); err != nil {
		return fb, err
	}
	return fb, nil
}

func promptFeedback(fb *models.TaskFeedback) error {
	mood, fulfillment := ratingString(fb.MoodAfter), ratingString(fb.FulfillmentScore)
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("How do you feel now?").Options(ratingOptions()...).Value(&mood),
		huh.NewSelect[string]().Title("How fulfilling was it?").Options(ratingOptions()...).Value(&fulfillment),
	)).Run()
	if err != nil {
		return err
	}
	fb.MoodAfter, _ = strconv.Atoi(mood)
	fb.FulfillmentScore, _ = strconv.Atoi(fulfillment)
	return nil
}

func ratingString(v int) string {
	if v == 0 {
		return "5"
	}
	return strconv.Itoa(v)
}

func ratingOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, 10)
	for i := 1; i <= 10; i++ {
		s := strconv.Itoa(i)
		opts = append(opts, huh.NewOption(s, s))
	}
	return opts
}

func (c *TaskDoneCmd) Run(ctx *cli.Context) error {
	fb, err := c.feedback(ctx)
	if err != nil {
		return err
	}
	t, err := ctx.Backend.CompleteTask(ctx.Ctx, c.ID, fb)
	if err != nil {
		return fmt.Errorf("failed to complete task %d: %w", c.ID, err)
	}
	return ctx.Out.Emit(ctx.Ctx, t, func() error {
		ctx.Out.Success("Completed %q (mood %d, fulfillment %d)", t.Task, fb.MoodAfter, fb.FulfillmentScore)
		return nil
	})
}
