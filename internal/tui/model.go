// Package tui is the interactive terminal dashboard: today's agenda, value
// selection, activity recommendations and plan generation in one program.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/praxable/praxable-cli/internal/agenda"
	"github.com/praxable/praxable-cli/internal/api"
	"github.com/praxable/praxable-cli/internal/constants"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/planner"
	"github.com/praxable/praxable-cli/internal/recommend"
	"github.com/praxable/praxable-cli/internal/tui/components/picklist"
	"github.com/praxable/praxable-cli/internal/tui/components/plan"
	"github.com/praxable/praxable-cli/internal/tui/components/today"
	"github.com/praxable/praxable-cli/internal/values"
)

// Options wires the model to the backend and the domain services.
type Options struct {
	Backend     api.Backend
	Recommender *recommend.Service
	Approver    *planner.Approver
	// Input describes today's agenda; tasks, events and slots are filled in
	// from each load.
	Input    func() agenda.Input
	Location *time.Location
	Now      func() time.Time
}

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   Options
	loader *agenda.Loader

	state   constants.SessionState
	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	loading bool
	err     error
	status  string

	todayModel  today.Model
	valuesModel picklist.Model
	recsModel   picklist.Model
	planModel   plan.Model

	valueNames []string
	selector   *values.Selector
	recs       []models.Recommendation
	events     []models.CalendarEvent

	form      *huh.Form
	planInput *string

	quitting bool
	width    int
	height   int
}

// NewModel creates the model. Every backend call made by the model runs under
// a context derived from parent and cancelled when the program quits.
func NewModel(parent context.Context, opts Options) Model {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	ctx, cancel := context.WithCancel(parent)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:         ctx,
		cancel:      cancel,
		opts:        opts,
		loader:      agenda.NewLoader(opts.Backend),
		state:       constants.StateToday,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		spinner:     sp,
		todayModel:  today.New(0, 0),
		valuesModel: picklist.New("No core values yet. Add one with 'praxable values add'."),
		recsModel:   picklist.New("Select values and press 'r' to get recommendations."),
		planModel:   plan.New(0, 0, opts.Location),
		selector:    values.NewSelector(),
		planInput:   new(string),
	}
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateValues:
		keys = append(keys, m.keys.Toggle)
	case constants.StateRecommendations:
		keys = append(keys, m.keys.Refresh, m.keys.Book)
	case constants.StatePlan:
		keys = append(keys, m.keys.Generate, m.keys.Approve)
	default:
		keys = append(keys, m.keys.Refresh)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case constants.StateValues:
		actions = []key.Binding{m.keys.Toggle}
	case constants.StateRecommendations:
		actions = []key.Binding{m.keys.Book}
	case constants.StatePlan:
		actions = []key.Binding{m.keys.Generate, m.keys.Approve}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadSnapshot())
}

// Err is the error from the last failed action, if any.
func (m Model) Err() error {
	return m.err
}

// Selection is the current value selection.
func (m Model) Selection() []string {
	return m.selector.Selected()
}
