package api

import (
	"context"

	"github.com/praxable/praxable-cli/internal/models"
)

// Backend is the full set of Praxable operations. *Client implements it;
// services depend on the interface.
type Backend interface {
	ListValues(ctx context.Context) ([]models.CoreValue, error)
	AddValue(ctx context.Context, name string) (*models.CoreValue, error)
	DeleteValue(ctx context.Context, name string) error

	GeneratePlan(ctx context.Context, userInput string, coreValues []string) (*models.PlannerResponse, error)
	GeneratePlanWithAudio(ctx context.Context, audio *AudioFile, userInput string, coreValues []string) (*models.PlannerResponse, error)

	TodayEvents(ctx context.Context) ([]models.CalendarEvent, error)
	AddEvent(ctx context.Context, event models.CalendarEvent) (*models.CalendarEvent, error)
	FreeSlots(ctx context.Context) ([]models.FreeSlot, error)

	LogTask(ctx context.Context, task models.TaskData) (*models.TaskData, error)
	ListTasks(ctx context.Context) ([]models.TaskData, error)
	CompleteTask(ctx context.Context, id int, feedback models.TaskFeedback) (*models.TaskData, error)
	UpdateTask(ctx context.Context, id int, update models.TaskUpdate) error

	RetrainModel(ctx context.Context) error
	PredictFulfillment(ctx context.Context, req models.PredictionRequest) (*float64, error)
	Analytics(ctx context.Context) (*models.AnalyticsResponse, error)

	ListActivities(ctx context.Context) ([]models.Activity, error)
	Recommend(ctx context.Context, req models.RecommendationRequest) ([]models.Recommendation, error)

	ConfigStatus(ctx context.Context) (*models.ConfigStatus, error)
	SetAPIKey(ctx context.Context, key string) error
}

var _ Backend = (*Client)(nil)
