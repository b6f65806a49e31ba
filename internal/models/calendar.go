package models

// CalendarEvent is an event on the user's calendar. Start and End are ISO datetimes.
type CalendarEvent struct {
	Summary string `json:"summary"`
	Start   string `json:"start" validate:"required"`
	End     string `json:"end" validate:"required"`
}

// FreeSlot is a backend-computed open window. Start and End are either bare
// HH:MM times or full ISO datetimes.
type FreeSlot struct {
	Start           string `json:"start" validate:"required,slottime"`
	End             string `json:"end" validate:"required,slottime"`
	DurationMinutes int    `json:"duration_minutes" validate:"min=0"`
}
