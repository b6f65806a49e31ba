package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/praxable/praxable-cli/internal/agenda"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/planner"
	"github.com/praxable/praxable-cli/internal/validation"
	"github.com/praxable/praxable-cli/internal/values"
)

type snapshotMsg struct {
	snap *agenda.Snapshot
}

type recsMsg struct {
	recs []models.Recommendation
}

type planMsg struct {
	tasks []models.PlannedTask
}

type approvedMsg struct {
	report planner.Report[models.PlannedTask]
}

type bookedMsg struct {
	event *models.CalendarEvent
}

type errMsg struct {
	op  string
	err error
}

func (e errMsg) Error() string {
	return fmt.Sprintf("%s: %v", e.op, e.err)
}

func (m Model) loadSnapshot() tea.Cmd {
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		snap, err := loader.Load(ctx)
		if err != nil {
			return errMsg{op: "failed to load today", err: err}
		}
		return snapshotMsg{snap: snap}
	}
}

func (m Model) fetchRecommendations() tea.Cmd {
	ctx, svc := m.ctx, m.opts.Recommender
	sel := values.NewSelector(m.selector.Selected()...)
	return func() tea.Msg {
		recs, err := svc.Recommend(ctx, sel, 0)
		if err != nil {
			return errMsg{op: "failed to get recommendations", err: err}
		}
		return recsMsg{recs: recs}
	}
}

func (m Model) book(rec models.Recommendation) tea.Cmd {
	ctx, svc := m.ctx, m.opts.Recommender
	return func() tea.Msg {
		ev, err := svc.Schedule(ctx, rec)
		if err != nil {
			return errMsg{op: "failed to schedule activity", err: err}
		}
		return bookedMsg{event: ev}
	}
}

func (m Model) generate(input string, coreValues []string) tea.Cmd {
	ctx, backend := m.ctx, m.opts.Backend
	return func() tea.Msg {
		resp, err := planner.Generate(ctx, backend, input, coreValues)
		if err != nil {
			return errMsg{op: "failed to generate plan", err: err}
		}
		if err := validation.Struct(resp); err != nil {
			return errMsg{op: "planner returned an invalid plan", err: err}
		}
		return planMsg{tasks: resp.Tasks}
	}
}

func (m Model) approve(tasks []models.PlannedTask) tea.Cmd {
	ctx, a := m.ctx, m.opts.Approver
	return func() tea.Msg {
		report, _ := a.Approve(ctx, tasks)
		return approvedMsg{report: report}
	}
}
