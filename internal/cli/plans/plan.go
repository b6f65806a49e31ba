package plans

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/praxable/praxable-cli/internal/cli"
	apperrors "github.com/praxable/praxable-cli/internal/errors"
	"github.com/praxable/praxable-cli/internal/logger"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/planner"
	"github.com/praxable/praxable-cli/internal/validation"
	"github.com/praxable/praxable-cli/internal/values"
)

type PlanCmd struct {
	Generate PlanGenerateCmd `cmd:"" default:"withargs" help:"Generate a plan from a description of your day."`
	Approve  PlanApproveCmd  `cmd:"" help:"Approve a saved plan: log each task and add it to the calendar."`
}

type PlanGenerateCmd struct {
	Input   []string `arg:"" optional:"" help:"What your day looks like."`
	Audio   string   `type:"existingfile" help:"Voice memo to upload with the description (.wav, .m4a)."`
	Value   []string `short:"v" name:"value" help:"Core value to plan around; defaults to all of them."`
	Save    string   `type:"path" help:"Write the generated plan as JSON to this file."`
	Approve bool     `help:"Approve the plan right after generating it."`
	Yes     bool     `short:"y" help:"Do not ask before approving."`
}

type planView struct {
	Tasks     []models.PlannedTask `json:"tasks"`
	Conflicts []string             `json:"conflicts,omitempty"`
	Approval  *approvalView        `json:"approval,omitempty"`
}

func (c *PlanGenerateCmd) coreValues(ctx *cli.Context) ([]string, error) {
	if len(c.Value) > 0 {
		sel, err := ctx.Selection(c.Value)
		if err != nil {
			return nil, err
		}
		return sel.Selected(), nil
	}
	known, err := ctx.Backend.ListValues(ctx.Ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list values: %w", err)
	}
	return values.Names(known), nil
}

func (c *PlanGenerateCmd) Run(ctx *cli.Context) error {
	input := strings.Join(c.Input, " ")
	if strings.TrimSpace(input) == "" && c.Audio == "" {
		return apperrors.FieldValidation("input", "describe your day or pass --audio")
	}

	coreValues, err := c.coreValues(ctx)
	if err != nil {
		return err
	}

	plan, err := planner.GenerateWithAudio(ctx.Ctx, ctx.Backend, c.Audio, input, coreValues)
	if err != nil {
		return fmt.Errorf("failed to generate plan: %w", err)
	}
	if err := validation.Struct(plan); err != nil {
		return fmt.Errorf("planner returned an invalid plan: %w", err)
	}

	if c.Save != "" {
		if err := savePlan(c.Save, plan); err != nil {
			return err
		}
		logger.Info("Plan saved", "path", c.Save, "tasks", len(plan.Tasks))
	}

	approver := ctx.Approver()
	view := planView{Tasks: plan.Tasks}
	if events, err := ctx.Backend.TodayEvents(ctx.Ctx); err == nil {
		res := approver.Conflicts(plan.Tasks, events)
		for _, cf := range res.Conflicts {
			view.Conflicts = append(view.Conflicts, cf.Description)
		}
		if !ctx.Out.JSONMode() {
			ctx.Out.PlannedTasks(plan.Tasks, ctx.Location())
			ctx.Out.Conflicts(res)
		}
	} else {
		logger.Warn("Skipping conflict check", "error", err)
		if !ctx.Out.JSONMode() {
			ctx.Out.PlannedTasks(plan.Tasks, ctx.Location())
		}
	}

	var approveErr error
	if c.Approve && len(plan.Tasks) > 0 {
		view.Approval, approveErr = approve(ctx, approver, plan.Tasks, c.Yes)
	}

	if ctx.Out.JSONMode() {
		if err := ctx.Out.JSON(ctx.Ctx, view); err != nil {
			return err
		}
	} else if c.Save != "" {
		ctx.Out.Muted("Saved to %s; approve later with `praxable plan approve %s`", c.Save, c.Save)
	}
	return approveErr
}

type PlanApproveCmd struct {
	File string `arg:"" type:"existingfile" help:"Plan JSON written by 'plan generate --save'."`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *PlanApproveCmd) Run(ctx *cli.Context) error {
	plan, err := loadPlan(c.File)
	if err != nil {
		return err
	}
	if len(plan.Tasks) == 0 {
		return apperrors.Validation("the plan has no tasks to approve")
	}

	approver := ctx.Approver()
	if !ctx.Out.JSONMode() {
		ctx.Out.PlannedTasks(plan.Tasks, ctx.Location())
	}

	view, err := approve(ctx, approver, plan.Tasks, c.Yes)
	if ctx.Out.JSONMode() && view != nil {
		if jerr := ctx.Out.JSON(ctx.Ctx, view); jerr != nil {
			return jerr
		}
	}
	return err
}

func savePlan(path string, plan *models.PlannerResponse) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	return nil
}

func loadPlan(path string) (*models.PlannerResponse, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied plan file
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	var plan models.PlannerResponse
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, apperrors.FieldValidation("plan", fmt.Sprintf("not a plan file: %v", err))
	}
	if err := validation.Struct(plan); err != nil {
		return nil, err
	}
	return &plan, nil
}
