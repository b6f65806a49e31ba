package tasks

import (
	"fmt"

	"github.com/praxable/praxable-cli/internal/cli"
	apperrors "github.com/praxable/praxable-cli/internal/errors"
	"github.com/praxable/praxable-cli/internal/logger"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/validation"
)

type TaskEditCmd struct {
	ID          int     `arg:"" help:"Task ID."`
	MoodAfter   int     `help:"Corrected mood afterwards, 1-10."`
	Fulfillment int     `help:"Corrected fulfillment, 1-10."`
	Value       *string `short:"v" help:"Corrected core value."`
	NoRetrain   bool    `help:"Skip retraining the predictor."`
}

func (c *TaskEditCmd) update() (models.TaskUpdate, error) {
	var u models.TaskUpdate
	if c.MoodAfter != 0 {
		if err := validation.Rating("mood_after", c.MoodAfter); err != nil {
			return u, err
		}
		u.MoodAfter = models.IntPtr(c.MoodAfter)
	}
	if c.Fulfillment != 0 {
		if err := validation.Rating("fulfillment_score", c.Fulfillment); err != nil {
			return u, err
		}
		u.FulfillmentScore = models.IntPtr(c.Fulfillment)
	}
	if c.Value != nil {
		u.AlignedValue = models.StringPtr(validation.SanitizeText(*c.Value))
	}
	if u.Empty() {
		return u, apperrors.Validation("nothing to change; pass --mood-after, --fulfillment or --value")
	}
	return u, nil
}

// requireDone refuses rating corrections on a task that was never completed;
// those belong to `task done`, which also marks the task as done.
func (c *TaskEditCmd) requireDone(ctx *cli.Context) error {
	tasks, err := ctx.Backend.ListTasks(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to load task %d: %w", c.ID, err)
	}
	for _, t := range tasks {
		if t.ID != c.ID {
			continue
		}
		if !t.Done() {
			return apperrors.Validationf(
				"task %d is not done; record mood and fulfillment with `praxable task done %d`", c.ID, c.ID)
		}
		return nil
	}
	return apperrors.Validationf("no task with id %d", c.ID)
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	u, err := c.update()
	if err != nil {
		return err
	}
	if u.MoodAfter != nil || u.FulfillmentScore != nil {
		if err := c.requireDone(ctx); err != nil {
			return err
		}
	}
	if err := ctx.Backend.UpdateTask(ctx.Ctx, c.ID, u); err != nil {
		return fmt.Errorf("failed to update task %d: %w", c.ID, err)
	}
	ctx.Out.Success("Updated task %d", c.ID)

	if c.NoRetrain {
		return nil
	}
	if err := ctx.Backend.RetrainModel(ctx.Ctx); err != nil {
		logger.Warn("Retrain failed after edit", "task", c.ID, "error", err)
		return fmt.Errorf("task updated but retraining failed: %w", err)
	}
	ctx.Out.Muted("Predictor retrained")
	return nil
}
