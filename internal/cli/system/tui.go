package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/praxable/praxable-cli/internal/cli"
	"github.com/praxable/praxable-cli/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	ctx.Source = "tui"
	model := tui.NewModel(ctx.Ctx, tui.Options{
		Backend:     ctx.Backend,
		Recommender: ctx.Recommender(""),
		Approver:    ctx.Approver(),
		Input:       ctx.AgendaInput,
		Location:    ctx.Location(),
		Now:         ctx.Clock(),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx.Ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
