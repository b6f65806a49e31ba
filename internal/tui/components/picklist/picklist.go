// Package picklist is a cursor list with optional check marks.
package picklist

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	itemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

type Model struct {
	Items  []string
	Cursor int
	// Checked, when set, decides which items show a check mark.
	Checked func(i int) bool
	Empty   string
}

func New(empty string) Model {
	return Model{Empty: empty}
}

// SetItems replaces the items, keeping the cursor in range.
func (m *Model) SetItems(items []string) {
	m.Items = items
	if m.Cursor >= len(items) {
		m.Cursor = max(len(items)-1, 0)
	}
}

func (m *Model) Up() {
	if m.Cursor > 0 {
		m.Cursor--
	}
}

func (m *Model) Down() {
	if m.Cursor < len(m.Items)-1 {
		m.Cursor++
	}
}

// Selected returns the index under the cursor, or -1 when empty.
func (m Model) Selected() int {
	if len(m.Items) == 0 {
		return -1
	}
	return m.Cursor
}

func (m Model) View() string {
	if len(m.Items) == 0 {
		return emptyStyle.Render(m.Empty)
	}
	var b strings.Builder
	for i, item := range m.Items {
		prefix := "  "
		if i == m.Cursor {
			prefix = cursorStyle.Render("> ")
		}
		if m.Checked != nil {
			if m.Checked(i) {
				prefix += "[x] "
			} else {
				prefix += "[ ] "
			}
		}
		b.WriteString(prefix + itemStyle.Render(item) + "\n")
	}
	return b.String()
}
