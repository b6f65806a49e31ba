// Package reminder delivers a local notification shortly before each of
// today's planned tasks starts.
package reminder

import (
	"fmt"
	"time"

	"github.com/praxable/praxable-cli/internal/constants"
	apperrors "github.com/praxable/praxable-cli/internal/errors"
	"github.com/praxable/praxable-cli/internal/utils"
)

// Title is the heading of every task reminder.
const Title = "⏰ Upcoming Task"

// Reminder is a notification due at FireAt for a task starting at StartsAt.
type Reminder struct {
	ID       string
	Task     string
	StartsAt time.Time
	FireAt   time.Time
}

// Body is the notification text.
func (r Reminder) Body() string {
	return fmt.Sprintf("%q starts in %d minutes", r.Task, int(constants.ReminderLeadTime/time.Minute))
}

// Plan computes the reminder for a task planned at clock ("HH:MM"). A start
// time at or before now rolls over to tomorrow. The reminder fires the lead
// time before the start, or immediately when that moment has passed.
func Plan(task, clock string, now time.Time) (Reminder, error) {
	hour, minute, err := utils.SplitBareTime(clock)
	if err != nil || hour > 23 || minute > 59 {
		return Reminder{}, apperrors.FieldValidation("planned_time", fmt.Sprintf("expected HH:MM, got %q", clock))
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !start.After(now) {
		start = start.AddDate(0, 0, 1)
	}

	fire := start.Add(-constants.ReminderLeadTime)
	if fire.Before(now) {
		fire = now
	}

	return Reminder{
		ID:       fmt.Sprintf("%s@%s", task, start.Format(constants.LocalDateTimeFormat)),
		Task:     task,
		StartsAt: start,
		FireAt:   fire,
	}, nil
}
