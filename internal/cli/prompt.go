package cli

import (
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// Interactive reports whether stdin is a terminal, so prompts can be shown.
var Interactive = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// Confirm asks a yes/no question. Without a terminal it returns def.
func (c *Context) Confirm(title string, def bool) (bool, error) {
	if c.Out.JSONMode() || !Interactive() {
		return def, nil
	}
	answer := def
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&answer),
	)).Run()
	if err != nil {
		return false, err
	}
	return answer, nil
}

// PickValues lets the user choose among names. Without a terminal nothing is
// picked.
func (c *Context) PickValues(names []string) ([]string, error) {
	if len(names) == 0 || c.Out.JSONMode() || !Interactive() {
		return nil, nil
	}
	var picked []string
	err := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Which values matter right now?").
			Options(huh.NewOptions(names...)...).
			Value(&picked),
	)).Run()
	if err != nil {
		return nil, err
	}
	return picked, nil
}
