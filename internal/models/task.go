package models

// TaskData is a planned or logged activity instance as stored by the backend.
type TaskData struct {
	ID               int    `json:"id,omitempty"`
	Date             string `json:"date" validate:"omitempty,datefmt"` // YYYY-MM-DD, may be empty
	Task             string `json:"task" validate:"required"`
	TaskType         string `json:"task_type"`
	AlignedValue     string `json:"aligned_value"`
	DreadLevel       int    `json:"dread_level" validate:"min=0,max=10"`
	Location         string `json:"location"`
	PlannedTime      string `json:"planned_time"`
	ActualTime       string `json:"actual_time"`
	DidIt            int    `json:"did_it" validate:"oneof=0 1"`
	MoodBefore       int    `json:"mood_before" validate:"min=1,max=10"`
	MoodAfter        *int   `json:"mood_after,omitempty" validate:"omitempty,min=1,max=10"`
	FulfillmentScore *int   `json:"fulfillment_score,omitempty" validate:"omitempty,min=1,max=10"`
	SleepQuality     int    `json:"sleep_quality" validate:"min=0,max=10"`
	EnergyLevel      int    `json:"energy_level" validate:"min=0,max=10"`
}

// Outcome is the completion state of a task: either Pending or Completed.
type Outcome interface {
	isOutcome()
}

// Pending marks a task that has not been completed yet.
type Pending struct{}

// Completed carries the feedback recorded when a task was done.
type Completed struct {
	MoodAfter        int
	FulfillmentScore int
}

func (Pending) isOutcome()   {}
func (Completed) isOutcome() {}

// Done reports whether the backend marked the task as done.
func (t TaskData) Done() bool {
	return t.DidIt == 1
}

// Outcome returns the task's completion state. A task flagged done without
// feedback is reported as Pending; validation rejects that shape at the boundary.
func (t TaskData) Outcome() Outcome {
	if t.DidIt == 1 && t.MoodAfter != nil && t.FulfillmentScore != nil {
		return Completed{MoodAfter: *t.MoodAfter, FulfillmentScore: *t.FulfillmentScore}
	}
	return Pending{}
}

// TaskFeedback is the body of the completion-feedback endpoint.
type TaskFeedback struct {
	MoodAfter        int `json:"mood_after" validate:"min=1,max=10"`
	FulfillmentScore int `json:"fulfillment_score" validate:"min=1,max=10"`
}

// TaskUpdate is a partial correction of a logged task.
type TaskUpdate struct {
	MoodAfter        *int    `json:"mood_after,omitempty" validate:"omitempty,min=1,max=10"`
	FulfillmentScore *int    `json:"fulfillment_score,omitempty" validate:"omitempty,min=1,max=10"`
	AlignedValue     *string `json:"aligned_value,omitempty"`
}

// Empty reports whether the update carries no field at all.
func (u TaskUpdate) Empty() bool {
	return u.MoodAfter == nil && u.FulfillmentScore == nil && u.AlignedValue == nil
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// StringPtr returns a pointer to v.
func StringPtr(v string) *string {
	return &v
}
