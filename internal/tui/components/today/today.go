// Package today renders the day's agenda in a scrollable viewport.
package today

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/praxable/praxable-cli/internal/agenda"
	"github.com/praxable/praxable-cli/internal/output"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("205")).
	Bold(true).
	MarginBottom(1)

type Model struct {
	viewport viewport.Model
	Greeting string
	Agenda   *agenda.Agenda
	Stats    agenda.Stats
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Agenda == nil {
		return "Loading today..."
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

func (m *Model) SetAgenda(greeting string, a agenda.Agenda, stats agenda.Stats) {
	m.Greeting = greeting
	m.Agenda = &a
	m.Stats = stats
	m.Render()
}

func (m *Model) Render() {
	if m.Agenda == nil {
		return
	}
	var buf bytes.Buffer
	p := output.New(&buf, output.Options{Width: m.width})
	p.Agenda(*m.Agenda)
	p.Println()
	p.Muted("%d of %d tasks done (%.0f%%)", m.Stats.Completed, m.Stats.Total, m.Stats.CompletionRate)

	title := titleStyle.Render(fmt.Sprintf("%s · %s", m.Greeting, m.Agenda.Date))
	m.viewport.SetContent(title + "\n" + buf.String())
}
