package today

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/praxable/praxable-cli/internal/api/apitest"
	"github.com/praxable/praxable-cli/internal/cli/clitest"
	"github.com/praxable/praxable-cli/internal/models"
)

func TestDashboardCmd(t *testing.T) {
	env := clitest.NewJSON(t, "")
	env.Server.Analytics = models.AnalyticsResponse{TotalTasks: 12}
	env.Server.Values = []models.CoreValue{{ValueName: "Health"}, {ValueName: "Family"}}
	env.Server.Events = []models.CalendarEvent{
		{Summary: "Breakfast", Start: "2025-03-10T07:00:00Z", End: "2025-03-10T07:30:00Z"},
		{Summary: "Standup", Start: "2025-03-10T09:00:00Z", End: "2025-03-10T09:15:00Z"},
	}

	cmd := &DashboardCmd{pick: func(int) int { return 1 }}
	if err := cmd.Run(env.Ctx); err != nil {
		t.Fatalf("DashboardCmd.Run() error = %v", err)
	}

	var view dashboardView
	if err := json.Unmarshal(env.Out.Bytes(), &view); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if view.Greeting != "Good Morning" {
		t.Errorf("greeting = %q", view.Greeting)
	}
	if view.TotalTasks != 12 {
		t.Errorf("total = %d, want 12", view.TotalTasks)
	}
	if view.NextEvent == nil || view.NextEvent.Summary != "Standup" {
		t.Errorf("next event = %+v, want Standup", view.NextEvent)
	}
	if view.Inspiration != "Family" {
		t.Errorf("inspiration = %q, want Family", view.Inspiration)
	}
}

func TestDashboardCmdEmptyDay(t *testing.T) {
	env := clitest.New(t)

	if err := (&DashboardCmd{}).Run(env.Ctx); err != nil {
		t.Fatalf("DashboardCmd.Run() error = %v", err)
	}
	out := env.Out.String()
	if !strings.Contains(out, "No more events today.") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "Focus on") {
		t.Errorf("no inspiration expected without values: %q", out)
	}
}

func TestDashboardCmdFailure(t *testing.T) {
	env := clitest.New(t)
	env.Server.FailAlways(apitest.RouteAnalytics, 500, "analytics offline")

	if err := (&DashboardCmd{}).Run(env.Ctx); err == nil {
		t.Error("expected the dashboard to fail when analytics fails")
	}
}
