// Package plan shows a generated plan and the outcome of approving it.
package plan

import (
	"bytes"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/output"
	"github.com/praxable/praxable-cli/internal/planner"
	"github.com/praxable/praxable-cli/internal/validation"
)

var (
	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

type Model struct {
	viewport  viewport.Model
	Tasks     []models.PlannedTask
	Conflicts validation.ValidationResult
	Report    *planner.Report[models.PlannedTask]
	loc       *time.Location
	width     int
	height    int
}

func New(width, height int, loc *time.Location) Model {
	return Model{viewport: viewport.New(width, height), loc: loc}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Tasks == nil {
		return "No plan yet. Press 'g' to describe your day."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetPlan shows a freshly generated plan and forgets any earlier approval.
func (m *Model) SetPlan(tasks []models.PlannedTask, conflicts validation.ValidationResult) {
	if tasks == nil {
		tasks = []models.PlannedTask{}
	}
	m.Tasks = tasks
	m.Conflicts = conflicts
	m.Report = nil
	m.Render()
}

func (m *Model) SetReport(r planner.Report[models.PlannedTask]) {
	m.Report = &r
	m.Render()
}

// Approved reports whether the current plan has already been committed.
func (m Model) Approved() bool {
	return m.Report != nil
}

func (m *Model) Render() {
	if m.Tasks == nil {
		return
	}
	var buf bytes.Buffer
	p := output.New(&buf, output.Options{Width: m.width})
	p.PlannedTasks(m.Tasks, m.loc)
	p.Conflicts(m.Conflicts)

	if m.Report != nil {
		p.Println()
		for _, r := range m.Report.Results {
			if r.OK() {
				p.Println(okStyle.Render("✓ " + r.Item.TaskName))
			} else {
				p.Println(failStyle.Render(fmt.Sprintf("✗ %s: %v", r.Item.TaskName, r.Err)))
			}
		}
		if m.Report.Partial() {
			p.Println(warningStyle.Render(fmt.Sprintf("%d of %d tasks saved; the rest were not undone.", m.Report.Persisted, m.Report.Total)))
		}
	}
	m.viewport.SetContent(buf.String())
}
