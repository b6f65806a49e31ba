package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/praxable/praxable-cli/internal/constants"
)

var tabTitles = map[constants.SessionState]string{
	constants.StateToday:           "Today",
	constants.StateRecommendations: "Recommendations",
	constants.StateValues:          "Values",
	constants.StatePlan:            "Plan",
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch {
	case m.form != nil:
		content = m.form.View()
	case m.state == constants.StateRecommendations:
		content = docStyle.Render(m.recsModel.View())
	case m.state == constants.StateValues:
		content = docStyle.Render(m.valuesModel.View())
	case m.state == constants.StatePlan:
		content = docStyle.Render(m.planModel.View())
	default:
		content = docStyle.Render(m.todayModel.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	tabs := make([]string, 0, len(tabOrder))
	for _, s := range tabOrder {
		if m.state == s {
			tabs = append(tabs, activeTabStyle.Render(tabTitles[s]))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(tabTitles[s]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	switch {
	case m.loading:
		return m.spinner.View() + " Working..."
	case m.err != nil:
		return dangerStyle.Render("Error: " + m.err.Error())
	case m.status != "":
		if m.state == constants.StateRecommendations && m.selector.Empty() {
			return warningStyle.Render(m.status)
		}
		return statusStyle.Render(m.status)
	}
	return ""
}
