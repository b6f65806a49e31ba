package plans

import (
	"fmt"

	"github.com/praxable/praxable-cli/internal/cli"
	apperrors "github.com/praxable/praxable-cli/internal/errors"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/planner"
)

type approvalView struct {
	Total     int          `json:"total"`
	Succeeded int          `json:"succeeded"`
	Persisted int          `json:"persisted"`
	Steps     []stepResult `json:"steps"`
	Error     string       `json:"error,omitempty"`
}

type stepResult struct {
	Task      string `json:"task"`
	OK        bool   `json:"ok"`
	Persisted bool   `json:"persisted"`
	Error     string `json:"error,omitempty"`
}

// approve confirms and runs the approval sequence, reporting each step. A
// declined confirmation returns a nil view.
func approve(ctx *cli.Context, a *planner.Approver, tasks []models.PlannedTask, yes bool) (*approvalView, error) {
	if !yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Approve %d task(s)? Each is logged and added to your calendar.", len(tasks)), true)
		if err != nil {
			return nil, err
		}
		if !ok {
			ctx.Out.Muted("Plan not approved")
			return nil, nil
		}
	}

	report, err := a.Approve(ctx.Ctx, tasks)

	view := &approvalView{Total: report.Total, Succeeded: report.Succeeded, Persisted: report.Persisted}
	for _, r := range report.Results {
		s := stepResult{Task: r.Item.TaskName, OK: r.OK(), Persisted: r.Persisted}
		if r.Err != nil {
			s.Error = r.Err.Error()
		}
		view.Steps = append(view.Steps, s)
	}
	if err != nil {
		view.Error = err.Error()
	}

	if !ctx.Out.JSONMode() {
		for _, s := range view.Steps {
			if s.OK {
				ctx.Out.Success("%s", s.Task)
			} else {
				ctx.Out.Warn("%s: %s", s.Task, s.Error)
			}
		}
		switch {
		case err == nil:
			ctx.Out.Success("Approved %d task(s)", report.Succeeded)
		case apperrors.IsPartial(err):
			if report.Succeeded > 0 {
				ctx.Out.Warn("%d of %d task(s) were committed before the failure and remain on your calendar", report.Succeeded, report.Total)
			}
			if report.Persisted > report.Succeeded {
				ctx.Out.Warn("%q was logged but has no calendar event", report.Results[report.FailedAt].Item.TaskName)
			}
		}
	}
	return view, err
}
