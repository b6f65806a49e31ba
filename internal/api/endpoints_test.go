package api_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxable/praxable-cli/internal/api"
	"github.com/praxable/praxable-cli/internal/api/apitest"
	apperrors "github.com/praxable/praxable-cli/internal/errors"
	"github.com/praxable/praxable-cli/internal/models"
)

func newClient(t *testing.T) (*api.Client, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)
	return api.New(api.Config{BaseURL: srv.URL}), srv
}

func TestValuesRoundTrip(t *testing.T) {
	client, srv := newClient(t)
	ctx := context.Background()

	added, err := client.AddValue(ctx, "Health Goals")
	require.NoError(t, err)
	assert.Equal(t, "Health Goals", added.ValueName)
	assert.NotZero(t, added.ID)

	values, err := client.ListValues(ctx)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, added.ID, values[0].ID)

	require.NoError(t, client.DeleteValue(ctx, "Health Goals"))

	values, err = client.ListValues(ctx)
	require.NoError(t, err)
	assert.Empty(t, values)
	assert.Equal(t, 1, srv.Calls(apitest.RouteDeleteValue))
}

func TestValuesRejectEmptyName(t *testing.T) {
	client, srv := newClient(t)

	_, err := client.AddValue(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	err = client.DeleteValue(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, 0, srv.TotalCalls())
}

func TestDeleteMissingValue(t *testing.T) {
	client, _ := newClient(t)

	err := client.DeleteValue(context.Background(), "Nope")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, api.StatusCode(err))
	assert.Contains(t, err.Error(), `value "Nope" not found`)
}

func TestGeneratePlan(t *testing.T) {
	client, srv := newClient(t)
	srv.Plan = models.PlannerResponse{Tasks: []models.PlannedTask{
		{TaskName: "Stretch", TaskType: "exercise", TimePreference: "07:00", AlignedValue: "Health"},
	}}

	plan, err := client.GeneratePlan(context.Background(), "move more", nil)
	require.NoError(t, err)
	require.Len(t, plan.Tasks, 1)
	assert.Equal(t, "Stretch", plan.Tasks[0].TaskName)

	var body models.PlannerRequest
	srv.DecodeLastBody(t, apitest.RouteGeneratePlan, &body)
	assert.Equal(t, "move more", body.UserInput)
	assert.NotNil(t, body.CoreValues)
}

func TestGeneratePlanWithAudio(t *testing.T) {
	client, srv := newClient(t)
	srv.Plan = models.PlannerResponse{Tasks: []models.PlannedTask{{TaskName: "Call mom", TimePreference: "18:00 - 18:30"}}}

	audio := &api.AudioFile{Name: "note.wav", Data: bytes.NewReader([]byte("RIFF....WAVE"))}
	plan, err := client.GeneratePlanWithAudio(context.Background(), audio, "", []string{"Family"})
	require.NoError(t, err)
	require.Len(t, plan.Tasks, 1)

	require.NotNil(t, srv.LastAudio)
	assert.True(t, srv.LastAudio.HasAudio)
	assert.Equal(t, "note.wav", srv.LastAudio.Filename)
	assert.Equal(t, []byte("RIFF....WAVE"), srv.LastAudio.Audio)
	assert.Equal(t, []string{"Family"}, srv.LastAudio.CoreValues)

	_, err = client.GeneratePlanWithAudio(context.Background(), nil, "text only", nil)
	require.NoError(t, err)
	assert.False(t, srv.LastAudio.HasAudio)
	assert.Equal(t, "text only", srv.LastAudio.UserInput)
	assert.Equal(t, []string{}, srv.LastAudio.CoreValues)
}

func TestGeneratePlanRejectsInvalidResponse(t *testing.T) {
	client, srv := newClient(t)
	srv.Plan = models.PlannerResponse{Tasks: []models.PlannedTask{{TaskName: ""}}}

	_, err := client.GeneratePlan(context.Background(), "anything", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task_name")
}

func TestCalendar(t *testing.T) {
	client, srv := newClient(t)
	srv.Slots = []models.FreeSlot{{Start: "14:00", End: "15:30", DurationMinutes: 90}}
	ctx := context.Background()

	_, err := client.AddEvent(ctx, models.CalendarEvent{Summary: "Walk", Start: "2024-01-15T14:00:00", End: "2024-01-15T15:00:00"})
	require.NoError(t, err)

	events, err := client.TodayEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Walk", events[0].Summary)

	slots, err := client.FreeSlots(ctx)
	require.NoError(t, err)
	assert.Equal(t, 90, slots[0].DurationMinutes)

	_, err = client.AddEvent(ctx, models.CalendarEvent{Summary: "No times"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, 1, srv.Calls(apitest.RouteAddEvent))
}

func TestFreeSlotsRejectMalformed(t *testing.T) {
	client, srv := newClient(t)
	srv.Slots = []models.FreeSlot{{Start: "later", End: "15:00", DurationMinutes: 30}}

	_, err := client.FreeSlots(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "free slot 0")
}

func TestTaskLifecycle(t *testing.T) {
	client, srv := newClient(t)
	ctx := context.Background()

	logged, err := client.LogTask(ctx, models.TaskData{
		Date: "2024-01-15", Task: "Read", TaskType: "learning", AlignedValue: "Growth",
		PlannedTime: "20:00", MoodBefore: 5, EnergyLevel: 5, SleepQuality: 5,
	})
	require.NoError(t, err)
	require.NotZero(t, logged.ID)
	assert.Equal(t, models.Pending{}, logged.Outcome())

	done, err := client.CompleteTask(ctx, logged.ID, models.TaskFeedback{MoodAfter: 8, FulfillmentScore: 9})
	require.NoError(t, err)
	assert.Equal(t, models.Completed{MoodAfter: 8, FulfillmentScore: 9}, done.Outcome())

	require.NoError(t, client.UpdateTask(ctx, logged.ID, models.TaskUpdate{FulfillmentScore: models.IntPtr(7)}))
	require.NoError(t, client.RetrainModel(ctx))
	assert.Equal(t, 1, srv.Retrains)

	tasks, err := client.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, 7, *tasks[0].FulfillmentScore)
}

func TestTaskValidationBeforeCall(t *testing.T) {
	client, srv := newClient(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"log without name", func() error {
			_, err := client.LogTask(ctx, models.TaskData{MoodBefore: 5})
			return err
		}},
		{"feedback out of range", func() error {
			_, err := client.CompleteTask(ctx, 1, models.TaskFeedback{MoodAfter: 0, FulfillmentScore: 5})
			return err
		}},
		{"non-positive id", func() error {
			_, err := client.CompleteTask(ctx, 0, models.TaskFeedback{MoodAfter: 5, FulfillmentScore: 5})
			return err
		}},
		{"empty update", func() error {
			return client.UpdateTask(ctx, 1, models.TaskUpdate{})
		}},
		{"update out of range", func() error {
			return client.UpdateTask(ctx, 1, models.TaskUpdate{MoodAfter: models.IntPtr(12)})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err), "got %v", err)
		})
	}
	assert.Equal(t, 0, srv.TotalCalls())
}

func TestCompleteMissingTask(t *testing.T) {
	client, _ := newClient(t)

	_, err := client.CompleteTask(context.Background(), 42, models.TaskFeedback{MoodAfter: 5, FulfillmentScore: 5})
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
}

func TestListTasksKeepsRowsWithInconsistentOutcome(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()

	for _, name := range []string{"Run", "Read"} {
		_, err := client.LogTask(ctx, models.TaskData{Date: "2025-03-10", Task: name, MoodBefore: 5})
		require.NoError(t, err)
	}
	// Editing a pending task leaves feedback on a row that is not done.
	require.NoError(t, client.UpdateTask(ctx, 1, models.TaskUpdate{MoodAfter: models.IntPtr(5), FulfillmentScore: models.IntPtr(5)}))

	tasks, err := client.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Run", tasks[0].Task)
	assert.Equal(t, models.Pending{}, tasks[0].Outcome())
	assert.Equal(t, "Read", tasks[1].Task)
}

func TestListTasksFiltersUnusableRows(t *testing.T) {
	client, srv := newClient(t)
	srv.Tasks = []models.TaskData{
		{ID: 1, Task: "Run", DidIt: 1, MoodBefore: 5},
		{ID: 2, Task: "Nap", MoodBefore: 0},
		{ID: 3, Task: "   ", MoodBefore: 5},
		{ID: 4, Task: "Swim", Date: "10/03/2025", MoodBefore: 5},
		{ID: 5, Task: "Write", Date: "2025-03-10", MoodBefore: 5},
	}

	tasks, err := client.ListTasks(context.Background())
	require.NoError(t, err)

	var ids []int
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []int{1, 2, 5}, ids)
	assert.Equal(t, models.Pending{}, tasks[0].Outcome(), "done without feedback reads as pending")
}

func TestPredictAndAnalytics(t *testing.T) {
	client, srv := newClient(t)
	ctx := context.Background()
	req := models.PredictionRequest{TaskType: "exercise", AlignedValue: "Health", EnergyLevel: 6, MoodBefore: 4}

	p, err := client.PredictFulfillment(ctx, req)
	require.NoError(t, err)
	assert.Nil(t, p)

	score := 7.5
	srv.Prediction = &score
	p, err = client.PredictFulfillment(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.InDelta(t, 7.5, *p, 0.001)

	_, err = client.PredictFulfillment(ctx, models.PredictionRequest{AlignedValue: "Health", EnergyLevel: 5, MoodBefore: 5})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	srv.Analytics = models.AnalyticsResponse{TotalTasks: 4, Breakdown: []models.ValueBreakdown{{ValueName: "Health", TaskCount: 4, AvgFulfillment: 7.25}}}
	a, err := client.Analytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, a.TotalTasks)
	assert.Equal(t, "Health", a.Breakdown[0].ValueName)
}

func TestRecommendPreservesBackendOrder(t *testing.T) {
	client, srv := newClient(t)
	srv.Recommendations = []models.Recommendation{
		{Activity: models.Activity{ID: 1, Name: "Nap", DurationMinutes: 20}, MatchScore: 1, SuggestedSlot: models.FreeSlot{Start: "13:00", End: "14:00", DurationMinutes: 60}},
		{Activity: models.Activity{ID: 2, Name: "Run", DurationMinutes: 30}, MatchScore: 3, SuggestedSlot: models.FreeSlot{Start: "14:00", End: "15:00", DurationMinutes: 60}},
	}

	recs, err := client.Recommend(context.Background(), models.RecommendationRequest{ValueNames: []string{"Health"}})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Nap", recs[0].Name)
	assert.Equal(t, "Run", recs[1].Name)

	var body map[string]any
	srv.DecodeLastBody(t, apitest.RouteRecommend, &body)
	assert.Equal(t, float64(0), body["min_duration"])
	assert.Equal(t, []any{"Health"}, body["value_names"])
}

func TestRecommendEmptySelection(t *testing.T) {
	client, srv := newClient(t)

	_, err := client.Recommend(context.Background(), models.RecommendationRequest{})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, 0, srv.TotalCalls())
}

func TestActivities(t *testing.T) {
	client, srv := newClient(t)
	srv.Activities = []models.Activity{{ID: 1, Name: "Sketch", DurationMinutes: 30, Emoji: "🎨", AlignedValues: []string{"Creativity"}}}

	acts, err := client.ListActivities(context.Background())
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, "🎨", acts[0].Emoji)
}

func TestConfigEndpoints(t *testing.T) {
	client, srv := newClient(t)
	ctx := context.Background()

	status, err := client.ConfigStatus(ctx)
	require.NoError(t, err)
	assert.False(t, status.IsConfigured)
	assert.Nil(t, status.KeyPreview)

	err = client.SetAPIKey(ctx, "sk-wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, 0, srv.Calls(apitest.RouteSetAPIKey))

	require.NoError(t, client.SetAPIKey(ctx, " AIzaSyRealLookingKey42 "))
	assert.Equal(t, "AIzaSyRealLookingKey42", srv.APIKey)

	status, err = client.ConfigStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.IsConfigured)
	require.NotNil(t, status.KeyPreview)
	assert.Equal(t, "AIza...ey42", *status.KeyPreview)
}

func TestInjectedFailure(t *testing.T) {
	client, srv := newClient(t)
	srv.FailOn(apitest.RouteListValues, 2, http.StatusInternalServerError, "database locked")

	_, err := client.ListValues(context.Background())
	require.NoError(t, err)

	_, err = client.ListValues(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database locked")
	assert.Equal(t, 2, srv.Calls(apitest.RouteListValues))
}
