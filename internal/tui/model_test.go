package tui

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/praxable/praxable-cli/internal/agenda"
	"github.com/praxable/praxable-cli/internal/api"
	"github.com/praxable/praxable-cli/internal/api/apitest"
	"github.com/praxable/praxable-cli/internal/constants"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/planner"
	"github.com/praxable/praxable-cli/internal/recommend"
)

func newTestModel(t *testing.T) (Model, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)
	srv.Values = []models.CoreValue{{ID: 1, ValueName: "Health"}, {ID: 2, ValueName: "Family"}}

	backend := api.New(api.Config{BaseURL: srv.URL})
	now := func() time.Time { return time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC) }
	m := NewModel(context.Background(), Options{
		Backend:     backend,
		Recommender: recommend.NewService(backend, recommend.Options{Location: time.UTC, Now: now}),
		Approver:    planner.NewApprover(backend, planner.ApproverOptions{Location: time.UTC, Now: now}),
		Input: func() agenda.Input {
			return agenda.Input{Date: "2025-03-10", Location: time.UTC}
		},
		Location: time.UTC,
		Now:      now,
	})
	return m, srv
}

// runCmd executes cmd and any batched commands, dropping spinner ticks.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, runCmd(c)...)
		}
		return out
	case spinner.TickMsg:
		return nil
	case nil:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	return update(t, m, msg)
}

func loaded(t *testing.T, m Model) Model {
	t.Helper()
	for _, msg := range runCmd(m.Init()) {
		m, _ = update(t, m, msg)
	}
	if m.Err() != nil {
		t.Fatalf("initial load failed: %v", m.Err())
	}
	return m
}

func TestInitLoadsValues(t *testing.T) {
	m, _ := newTestModel(t)
	m = loaded(t, m)

	if want := []string{"Health", "Family"}; !reflect.DeepEqual(m.valuesModel.Items, want) {
		t.Errorf("values = %v, want %v", m.valuesModel.Items, want)
	}
	if m.loading {
		t.Error("model still loading after snapshot")
	}
	if m.todayModel.Agenda == nil || m.todayModel.Agenda.Date != "2025-03-10" {
		t.Errorf("agenda not built for today: %+v", m.todayModel.Agenda)
	}
}

func TestToggleValues(t *testing.T) {
	m, _ := newTestModel(t)
	m = loaded(t, m)

	m, _ = press(t, m, "tab")
	m, _ = press(t, m, "tab")
	if m.state != constants.StateValues {
		t.Fatalf("state = %v, want values", m.state)
	}

	m, _ = press(t, m, " ")
	m, _ = press(t, m, "j")
	m, _ = press(t, m, " ")
	if want := []string{"Health", "Family"}; !reflect.DeepEqual(m.Selection(), want) {
		t.Errorf("selection = %v, want %v", m.Selection(), want)
	}

	m, _ = press(t, m, " ")
	if want := []string{"Health"}; !reflect.DeepEqual(m.Selection(), want) {
		t.Errorf("selection after untoggle = %v, want %v", m.Selection(), want)
	}
}

func TestRecommendWithoutSelection(t *testing.T) {
	m, srv := newTestModel(t)
	m = loaded(t, m)
	m.state = constants.StateRecommendations

	m, cmd := press(t, m, "r")
	if cmd != nil {
		t.Error("expected no request without a selection")
	}
	if m.status == "" {
		t.Error("expected a status hint")
	}
	if n := srv.Calls(apitest.RouteRecommend); n != 0 {
		t.Errorf("recommend calls = %d, want 0", n)
	}
}

func TestApproveIgnoresRetriggerWhileLoading(t *testing.T) {
	m, srv := newTestModel(t)
	m = loaded(t, m)
	m.state = constants.StatePlan

	tasks := []models.PlannedTask{
		{TaskName: "Run", TaskType: "exercise", TimePreference: "09:00", AlignedValue: "Health"},
		{TaskName: "Read", TaskType: "learning", TimePreference: "10:00 - 11:00", AlignedValue: "Family"},
	}
	m, _ = update(t, m, planMsg{tasks: tasks})

	m, cmd := press(t, m, "a")
	if cmd == nil || !m.loading {
		t.Fatal("expected approval to start")
	}
	if _, again := press(t, m, "a"); again != nil {
		t.Error("approval re-triggered while in flight")
	}

	for _, msg := range runCmd(cmd) {
		m, cmd = update(t, m, msg)
	}
	if !m.planModel.Approved() {
		t.Fatal("plan not marked approved")
	}
	if m.Err() != nil {
		t.Errorf("unexpected error: %v", m.Err())
	}
	if n := srv.Calls(apitest.RouteLogTask); n != 2 {
		t.Errorf("log task calls = %d, want 2", n)
	}
	if n := srv.Calls(apitest.RouteAddEvent); n != 2 {
		t.Errorf("add event calls = %d, want 2", n)
	}

	// The follow-up refresh re-fetches today.
	before := srv.Calls(apitest.RouteListValues)
	for _, msg := range runCmd(cmd) {
		m, _ = update(t, m, msg)
	}
	if srv.Calls(apitest.RouteListValues) != before+1 {
		t.Error("expected a refresh after approval")
	}
	if _, again := press(t, m, "a"); again != nil {
		t.Error("an approved plan should not be approved twice")
	}
}

func TestApprovePartialFailureSurfacesError(t *testing.T) {
	m, srv := newTestModel(t)
	m = loaded(t, m)
	m.state = constants.StatePlan
	srv.FailOn(apitest.RouteLogTask, 2, 500, "boom")

	m, _ = update(t, m, planMsg{tasks: []models.PlannedTask{
		{TaskName: "Run", TimePreference: "09:00"},
		{TaskName: "Read", TimePreference: "10:00"},
	}})
	m, cmd := press(t, m, "a")
	for _, msg := range runCmd(cmd) {
		m, _ = update(t, m, msg)
	}
	if m.Err() == nil {
		t.Fatal("expected the failed step to be reported")
	}
	if m.planModel.Report.Succeeded != 1 {
		t.Errorf("succeeded = %d, want 1", m.planModel.Report.Succeeded)
	}
}

func TestQuitCancelsContext(t *testing.T) {
	m, _ := newTestModel(t)
	ctx := m.ctx

	m, cmd := press(t, m, "q")
	if !m.quitting {
		t.Error("model not quitting")
	}
	if !errors.Is(ctx.Err(), context.Canceled) {
		t.Errorf("ctx.Err() = %v, want context.Canceled", ctx.Err())
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestNextStateWraps(t *testing.T) {
	if got := nextState(constants.StatePlan, 1); got != constants.StateToday {
		t.Errorf("next after plan = %v, want today", got)
	}
	if got := nextState(constants.StateToday, -1); got != constants.StatePlan {
		t.Errorf("prev before today = %v, want plan", got)
	}
}
