package models

// PlannedTask is a generated, not yet approved task proposed by the planner.
type PlannedTask struct {
	TaskName       string `json:"task_name" validate:"required"`
	TaskType       string `json:"task_type"`
	TimePreference string `json:"time_preference"` // "HH:MM" or "HH:MM - HH:MM"
	AlignedValue   string `json:"aligned_value"`
}

// PlannerRequest asks the backend to generate a plan.
type PlannerRequest struct {
	UserInput  string   `json:"user_input"`
	CoreValues []string `json:"core_values"`
}

// PlannerResponse holds the generated tasks.
type PlannerResponse struct {
	Tasks []PlannedTask `json:"tasks" validate:"dive"`
}
