package insights

import (
	"fmt"

	"github.com/praxable/praxable-cli/internal/agenda"
	"github.com/praxable/praxable-cli/internal/cli"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/output"
	"github.com/praxable/praxable-cli/internal/validation"
)

type PredictCmd struct {
	TaskType string `arg:"" help:"Kind of task, e.g. exercise."`
	Value    string `short:"v" required:"" help:"Core value the task serves."`
	Energy   int    `help:"Current energy, 1-10." default:"5"`
	Mood     int    `help:"Current mood, 1-10." default:"5"`
}

type predictionView struct {
	Request   models.PredictionRequest `json:"request"`
	Predicted *float64                 `json:"predicted_fulfillment"`
	Band      string                   `json:"band,omitempty"`
}

func (c *PredictCmd) Run(ctx *cli.Context) error {
	req := models.PredictionRequest{
		TaskType:     validation.SanitizeText(c.TaskType),
		AlignedValue: c.Value,
		EnergyLevel:  c.Energy,
		MoodBefore:   c.Mood,
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	score, err := ctx.Backend.PredictFulfillment(ctx.Ctx, req)
	if err != nil {
		return fmt.Errorf("failed to predict fulfillment: %w", err)
	}

	view := predictionView{Request: req, Predicted: score}
	if score != nil {
		view.Band = agenda.ScoreBand(*score)
	}
	return ctx.Out.Emit(ctx.Ctx, view, func() error {
		ctx.Out.Printf("Predicted fulfillment for %s (%s): %s\n", req.TaskType, req.AlignedValue, output.PredictionLabel(score))
		if score == nil {
			ctx.Out.Muted("Complete a few more tasks so the model has something to learn from.")
		}
		return nil
	})
}
