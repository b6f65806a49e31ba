package tasks

import (
	"fmt"

	"github.com/praxable/praxable-cli/internal/cli"
	"github.com/praxable/praxable-cli/internal/constants"
	apperrors "github.com/praxable/praxable-cli/internal/errors"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/utils"
	"github.com/praxable/praxable-cli/internal/validation"
)

type TaskCmd struct {
	Log  TaskLogCmd  `cmd:"" help:"Log a task."`
	List TaskListCmd `cmd:"" default:"1" help:"List logged tasks."`
	Done TaskDoneCmd `cmd:"" help:"Mark a task done and rate how it went."`
	Edit TaskEditCmd `cmd:"" help:"Correct a logged task and retrain the predictor."`
}

type TaskLogCmd struct {
	Name     string `arg:"" help:"What you are doing."`
	Date     string `help:"Date (YYYY-MM-DD); defaults to today. Pass 'none' for an undated task."`
	Time     string `help:"Planned time, HH:MM or 'HH:MM - HH:MM'."`
	Type     string `help:"Task type, e.g. exercise or work."`
	Value    string `short:"v" help:"Core value the task serves."`
	Location string `help:"Where it happens."`
	Mood     int    `help:"Mood before, 1-10." default:"5"`
	Sleep    int    `help:"Sleep quality, 0-10." default:"5"`
	Energy   int    `help:"Energy level, 0-10." default:"5"`
	Dread    int    `help:"Dread level, 0-10." default:"0"`
}

func (c *TaskLogCmd) task(ctx *cli.Context) (models.TaskData, error) {
	date := c.Date
	switch date {
	case "":
		date = ctx.Today()
	case "none":
		date = ""
	default:
		if !utils.ValidateDateFormat(date) {
			return models.TaskData{}, apperrors.FieldValidation("date", fmt.Sprintf("expected %s, got %q", constants.DateFormat, date))
		}
	}

	t := models.TaskData{
		Date:         date,
		Task:         validation.SanitizeText(c.Name),
		TaskType:     c.Type,
		AlignedValue: c.Value,
		DreadLevel:   c.Dread,
		Location:     c.Location,
		PlannedTime:  c.Time,
		MoodBefore:   c.Mood,
		SleepQuality: c.Sleep,
		EnergyLevel:  c.Energy,
	}
	if err := validation.TaskData(t); err != nil {
		return models.TaskData{}, err
	}
	return t, nil
}

func (c *TaskLogCmd) Run(ctx *cli.Context) error {
	t, err := c.task(ctx)
	if err != nil {
		return err
	}
	saved, err := ctx.Backend.LogTask(ctx.Ctx, t)
	if err != nil {
		return fmt.Errorf("failed to log task: %w", err)
	}
	return ctx.Out.Emit(ctx.Ctx, saved, func() error {
		ctx.Out.Success("Logged %q (ID %d)", saved.Task, saved.ID)
		return nil
	})
}
