package models

// Activity is a free-time activity known to the backend.
type Activity struct {
	ID              int      `json:"id"`
	Name            string   `json:"name" validate:"required"`
	DurationMinutes int      `json:"duration_minutes" validate:"min=0"`
	AlignedValues   []string `json:"aligned_values"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Emoji           string   `json:"emoji"`
}

// Recommendation is an Activity ranked against the selected core values.
// MatchScore is computed by the backend only.
type Recommendation struct {
	Activity
	MatchingValues       []string   `json:"matching_values"`
	MatchScore           float64    `json:"match_score"`
	PredictedFulfillment *float64   `json:"predicted_fulfillment,omitempty"` // nil without enough history
	SuggestedSlot        FreeSlot   `json:"suggested_slot"`
	AllAvailableSlots    []FreeSlot `json:"all_available_slots" validate:"dive"`
}

// RecommendationRequest is the body of the suggest endpoint.
type RecommendationRequest struct {
	ValueNames  []string `json:"value_names" validate:"min=1,dive,required"`
	MinDuration int      `json:"min_duration" validate:"min=0"`
}
