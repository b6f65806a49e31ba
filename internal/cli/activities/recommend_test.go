package activities

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/praxable/praxable-cli/internal/api/apitest"
	"github.com/praxable/praxable-cli/internal/cli/clitest"
	apperrors "github.com/praxable/praxable-cli/internal/errors"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/recommend"
)

func seedRecommendations(srv *apitest.Server) {
	srv.Values = []models.CoreValue{{ID: 1, ValueName: "Health"}, {ID: 2, ValueName: "Growth"}}
	srv.Recommendations = []models.Recommendation{
		{
			Activity:       models.Activity{ID: 1, Name: "Walk", Emoji: "🚶", DurationMinutes: 30},
			MatchingValues: []string{"Health"},
			MatchScore:     0.4,
			SuggestedSlot:  models.FreeSlot{Start: "14:00", End: "14:30", DurationMinutes: 30},
		},
		{
			Activity:       models.Activity{ID: 2, Name: "Read", Emoji: "📚", DurationMinutes: 90},
			MatchingValues: []string{"Growth"},
			MatchScore:     0.9,
			SuggestedSlot:  models.FreeSlot{Start: "15:00", End: "16:00", DurationMinutes: 60},
		},
	}
}

func decodeView(t *testing.T, env *clitest.Env) recommendView {
	t.Helper()
	var view recommendView
	if err := json.Unmarshal(env.Out.Bytes(), &view); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, env.Out.String())
	}
	return view
}

func names(recs []models.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Name)
	}
	return out
}

func TestRecommendCmd(t *testing.T) {
	tests := []struct {
		name  string
		cmd   RecommendCmd
		order string
		want  []string
	}{
		{name: "backend order", cmd: RecommendCmd{Value: []string{"Health", "Growth"}}, want: []string{"Walk", "Read"}},
		{name: "score order", cmd: RecommendCmd{Value: []string{"Health"}, Order: "score"}, want: []string{"Read", "Walk"}},
		{name: "config order", cmd: RecommendCmd{Value: []string{"Health"}, Order: "config"}, order: "score", want: []string{"Read", "Walk"}},
		{name: "fit window", cmd: RecommendCmd{Value: []string{"Health"}, Fit: 45}, want: []string{"Walk"}},
		{name: "fit own slot", cmd: RecommendCmd{Value: []string{"Health"}, Fit: 0}, want: []string{"Walk", "Read"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := clitest.NewJSON(t, "")
			seedRecommendations(env.Server)
			if tt.order != "" {
				env.Ctx.Config.RecommendationOrder = "score"
			}

			if err := tt.cmd.Run(env.Ctx); err != nil {
				t.Fatalf("RecommendCmd.Run() error = %v", err)
			}
			view := decodeView(t, env)
			got := names(view.Recommendations)
			if len(got) != len(tt.want) {
				t.Fatalf("recommendations = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("recommendations = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestRecommendCmdSendsSelection(t *testing.T) {
	env := clitest.NewJSON(t, "")
	seedRecommendations(env.Server)

	cmd := &RecommendCmd{Value: []string{"Growth", "Health", "Growth"}, MinDuration: 20}
	if err := cmd.Run(env.Ctx); err != nil {
		t.Fatalf("RecommendCmd.Run() error = %v", err)
	}
	var req models.RecommendationRequest
	env.Server.DecodeLastBody(t, apitest.RouteRecommend, &req)
	if len(req.ValueNames) != 2 || req.ValueNames[0] != "Growth" || req.ValueNames[1] != "Health" {
		t.Errorf("value_names = %v, want [Growth Health]", req.ValueNames)
	}
	if req.MinDuration != 20 {
		t.Errorf("min_duration = %d, want 20", req.MinDuration)
	}
}

func TestRecommendCmdRejectsBadSelection(t *testing.T) {
	tests := []struct {
		name string
		cmd  RecommendCmd
	}{
		{name: "unknown value", cmd: RecommendCmd{Value: []string{"Wealth"}}},
		{name: "nothing picked without a terminal", cmd: RecommendCmd{}},
		{name: "negative min duration", cmd: RecommendCmd{Value: []string{"Health"}, MinDuration: -5}},
		{name: "negative fit", cmd: RecommendCmd{Value: []string{"Health"}, Fit: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := clitest.New(t)
			seedRecommendations(env.Server)

			err := tt.cmd.Run(env.Ctx)
			if !apperrors.IsValidation(err) {
				t.Errorf("error = %v, want a validation error", err)
			}
			if n := env.Server.Calls(apitest.RouteRecommend); n != 0 {
				t.Errorf("recommend called %d time(s)", n)
			}
		})
	}
}

func TestRecommendCmdSchedule(t *testing.T) {
	env := clitest.NewJSON(t, "")
	seedRecommendations(env.Server)

	cmd := &RecommendCmd{Value: []string{"Health"}, Schedule: 1, Yes: true}
	if err := cmd.Run(env.Ctx); err != nil {
		t.Fatalf("RecommendCmd.Run() error = %v", err)
	}

	events := env.Server.EventsSnapshot()
	if len(events) != 1 {
		t.Fatalf("events = %+v, want one", events)
	}
	want := models.CalendarEvent{Summary: "🚶 Walk", Start: "2025-03-10T14:00:00", End: "2025-03-10T14:30:00"}
	if events[0] != want {
		t.Errorf("event = %+v, want %+v", events[0], want)
	}
	if view := decodeView(t, env); view.Scheduled == nil {
		t.Error("view should carry the scheduled event")
	}
}

func TestRecommendCmdScheduleOutOfRange(t *testing.T) {
	env := clitest.New(t)
	seedRecommendations(env.Server)

	err := (&RecommendCmd{Value: []string{"Health"}, Schedule: 3, Yes: true}).Run(env.Ctx)
	if !apperrors.IsValidation(err) {
		t.Errorf("error = %v, want a validation error", err)
	}
	if n := env.Server.Calls(apitest.RouteAddEvent); n != 0 {
		t.Errorf("add event called %d time(s)", n)
	}
}

func TestRecommendCmdScheduleFailure(t *testing.T) {
	env := clitest.New(t)
	seedRecommendations(env.Server)
	env.Server.FailAlways(apitest.RouteAddEvent, 500, "calendar unavailable")

	err := (&RecommendCmd{Value: []string{"Health"}, Schedule: 2, Yes: true}).Run(env.Ctx)
	if !errors.Is(err, recommend.ErrScheduleFailed) {
		t.Errorf("error = %v, want ErrScheduleFailed", err)
	}
}

func TestActivityListCmd(t *testing.T) {
	env := clitest.NewJSON(t, "[.[].name]")
	env.Server.Activities = []models.Activity{
		{ID: 1, Name: "Walk", AlignedValues: []string{"Health"}},
		{ID: 2, Name: "Read", AlignedValues: []string{"Growth"}},
		{ID: 3, Name: "Swim", AlignedValues: []string{"Health", "Joy"}},
	}

	if err := (&ActivityListCmd{Value: "Health"}).Run(env.Ctx); err != nil {
		t.Fatalf("ActivityListCmd.Run() error = %v", err)
	}
	var got []string
	if err := json.Unmarshal(env.Out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, env.Out.String())
	}
	if len(got) != 2 || got[0] != "Walk" || got[1] != "Swim" {
		t.Errorf("activities = %v, want [Walk Swim]", got)
	}
}
