package models

// ValueBreakdown aggregates tasks for one core value.
type ValueBreakdown struct {
	ValueName      string  `json:"value_name"`
	TaskCount      int     `json:"task_count" validate:"min=0"`
	AvgFulfillment float64 `json:"avg_fulfillment"`
}

// AnalyticsResponse is the server-side alignment summary.
type AnalyticsResponse struct {
	TotalTasks int              `json:"total_tasks" validate:"min=0"`
	Breakdown  []ValueBreakdown `json:"breakdown" validate:"dive"`
}

// PredictionRequest asks the backend model for a fulfillment estimate.
type PredictionRequest struct {
	TaskType     string `json:"task_type" validate:"required"`
	AlignedValue string `json:"aligned_value" validate:"required"`
	EnergyLevel  int    `json:"energy_level" validate:"min=1,max=10"`
	MoodBefore   int    `json:"mood_before" validate:"min=1,max=10"`
}

// PredictionResponse is nil-valued when the model has too little data.
type PredictionResponse struct {
	PredictedFulfillment *float64 `json:"predicted_fulfillment"`
}

// ConfigStatus reports whether the backend has an LLM API key configured.
type ConfigStatus struct {
	IsConfigured bool    `json:"is_configured"`
	KeyPreview   *string `json:"key_preview"`
}
