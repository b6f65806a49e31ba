package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/praxable/praxable-cli/internal/agenda"
	"github.com/praxable/praxable-cli/internal/constants"
	"github.com/praxable/praxable-cli/internal/logger"
	"github.com/praxable/praxable-cli/internal/values"
)

var tabOrder = []constants.SessionState{
	constants.StateToday,
	constants.StateRecommendations,
	constants.StateValues,
	constants.StatePlan,
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The plan description form owns every message while open.
	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h := max(msg.Height-6, 1)
		w := max(msg.Width-4, 1)
		m.todayModel.SetSize(w, h)
		m.planModel.SetSize(w, h)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case snapshotMsg:
		m.loading = false
		m.applySnapshot(msg.snap)
		return m, nil

	case recsMsg:
		m.loading = false
		m.recs = msg.recs
		items := make([]string, 0, len(msg.recs))
		for _, r := range msg.recs {
			items = append(items, m.opts.Recommender.Summary(r))
		}
		m.recsModel.SetItems(items)
		m.status = ""
		return m, nil

	case bookedMsg:
		// The recommendation list is left as is; 'r' fetches a fresh one.
		m.loading = false
		m.status = "Added to calendar"
		if msg.event != nil {
			m.status += ": " + msg.event.Summary
		}
		return m, nil

	case planMsg:
		m.loading = false
		m.planModel.SetPlan(msg.tasks, m.opts.Approver.Conflicts(msg.tasks, m.events))
		m.status = ""
		return m, nil

	case approvedMsg:
		m.loading = false
		m.planModel.SetReport(msg.report)
		if msg.report.Err != nil {
			m.err = msg.report.Error(nil)
		} else {
			m.status = "Plan approved"
		}
		// Re-fetch so today's view reflects what was committed.
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadSnapshot())

	case errMsg:
		m.loading = false
		m.err = msg
		logger.Error("TUI action failed", "op", msg.op, "error", msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActive(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.state = nextState(m.state, 1)
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = nextState(m.state, -1)
		return m, nil
	}

	switch m.state {
	case constants.StateValues:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.valuesModel.Up()
		case key.Matches(msg, m.keys.Down):
			m.valuesModel.Down()
		case key.Matches(msg, m.keys.Toggle):
			if i := m.valuesModel.Selected(); i >= 0 {
				m.selector.Toggle(m.valueNames[i])
			}
		case key.Matches(msg, m.keys.Refresh):
			return m.trigger(m.loadSnapshot())
		}
		return m, nil

	case constants.StateRecommendations:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.recsModel.Up()
		case key.Matches(msg, m.keys.Down):
			m.recsModel.Down()
		case key.Matches(msg, m.keys.Refresh):
			if m.selector.Empty() {
				m.status = "Select at least one value first"
				return m, nil
			}
			return m.trigger(m.fetchRecommendations())
		case key.Matches(msg, m.keys.Book):
			if i := m.recsModel.Selected(); i >= 0 && i < len(m.recs) {
				return m.trigger(m.book(m.recs[i]))
			}
		}
		return m, nil

	case constants.StatePlan:
		switch {
		case key.Matches(msg, m.keys.Generate):
			if m.loading {
				return m, nil
			}
			return m.openPlanForm()
		case key.Matches(msg, m.keys.Approve):
			if len(m.planModel.Tasks) == 0 || m.planModel.Approved() {
				return m, nil
			}
			return m.trigger(m.approve(m.planModel.Tasks))
		}
		return m.updateActive(msg)

	default:
		if key.Matches(msg, m.keys.Refresh) {
			return m.trigger(m.loadSnapshot())
		}
		return m.updateActive(msg)
	}
}

// trigger starts cmd unless another request is in flight.
func (m Model) trigger(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	return m.startLoading(cmd)
}

func (m Model) startLoading(cmd tea.Cmd) (Model, tea.Cmd) {
	m.loading = true
	m.err = nil
	return m, tea.Batch(m.spinner.Tick, cmd)
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case constants.StateToday:
		m.todayModel, cmd = m.todayModel.Update(msg)
	case constants.StatePlan:
		m.planModel, cmd = m.planModel.Update(msg)
	}
	return m, cmd
}

func (m Model) openPlanForm() (tea.Model, tea.Cmd) {
	*m.planInput = ""
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("Describe your day").
			Description("What do you need to get done? Selected values guide the plan.").
			Value(m.planInput),
	))
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		coreValues := m.selector.Selected()
		if len(coreValues) == 0 {
			coreValues = m.valueNames
		}
		return m.startLoading(m.generate(*m.planInput, coreValues))
	case huh.StateAborted:
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m *Model) applySnapshot(snap *agenda.Snapshot) {
	m.events = snap.Events
	m.valueNames = values.Names(snap.Values)
	m.selector.Retain(m.valueNames)
	m.valuesModel.SetItems(m.valueNames)
	names := m.valueNames
	sel := m.selector
	m.valuesModel.Checked = func(i int) bool { return sel.Has(names[i]) }

	in := agenda.Input{Location: m.opts.Location}
	if m.opts.Input != nil {
		in = m.opts.Input()
	}
	m.todayModel.SetAgenda(
		agenda.Greeting(m.opts.Now().In(m.opts.Location)),
		snap.Agenda(in),
		agenda.ComputeStats(agenda.TodayTasks(snap.Tasks, in.Date, in.IncludeUndated)),
	)
}

func nextState(s constants.SessionState, step int) constants.SessionState {
	for i, t := range tabOrder {
		if t == s {
			return tabOrder[(i+step+len(tabOrder))%len(tabOrder)]
		}
	}
	return constants.StateToday
}
