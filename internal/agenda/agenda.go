// Package agenda merges today's tasks, calendar events and free slots into
// one view.
package agenda

import (
	"sort"
	"time"

	"github.com/praxable/praxable-cli/internal/constants"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/utils"
)

// ItemKind says which source an agenda item came from.
type ItemKind string

const (
	KindTask     ItemKind = "task"
	KindEvent    ItemKind = "event"
	KindFreeSlot ItemKind = "free"
)

// Item is one row of the agenda.
type Item struct {
	Kind  ItemKind `json:"kind"`
	Title string   `json:"title"`
	Start string   `json:"start,omitempty"`
	End   string   `json:"end,omitempty"`
	// When is the display form of Start/End.
	When string `json:"when"`

	Task  *models.TaskData      `json:"task,omitempty"`
	Event *models.CalendarEvent `json:"event,omitempty"`
	Slot  *models.FreeSlot      `json:"slot,omitempty"`

	at    time.Time
	timed bool
}

// Section is a titled run of items.
type Section struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Agenda is the unified view of one day.
type Agenda struct {
	Date     string                `json:"date"`
	Order    constants.AgendaOrder `json:"order"`
	Sections []Section             `json:"sections"`
}

// Len returns the number of items across all sections.
func (a Agenda) Len() int {
	n := 0
	for _, s := range a.Sections {
		n += len(s.Items)
	}
	return n
}

// Input is everything Build needs. Tasks is the full task list; Build
// filters it down to Date.
type Input struct {
	Date           string
	Location       *time.Location
	Tasks          []models.TaskData
	Events         []models.CalendarEvent
	Slots          []models.FreeSlot
	Order          constants.AgendaOrder
	IncludeUndated bool
}

// TodayTasks returns tasks dated today, plus undated ones when includeUndated
// is set. Order is preserved.
func TodayTasks(tasks []models.TaskData, today string, includeUndated bool) []models.TaskData {
	out := make([]models.TaskData, 0, len(tasks))
	for _, t := range tasks {
		if t.Date == today || (includeUndated && t.Date == "") {
			out = append(out, t)
		}
	}
	return out
}

// Build assembles the agenda. The sectioned order lists tasks, then events,
// then free time, each in fetch order. The interleaved order is a single
// chronological list; items without a parseable time sort last.
func Build(in Input) Agenda {
	loc := in.Location
	if loc == nil {
		loc = time.Local
	}
	order := in.Order
	if order == "" {
		order = constants.AgendaSectioned
	}

	tasks := TodayTasks(in.Tasks, in.Date, in.IncludeUndated)
	taskItems := make([]Item, 0, len(tasks))
	for i := range tasks {
		taskItems = append(taskItems, taskItem(&tasks[i], in.Date, loc))
	}
	eventItems := make([]Item, 0, len(in.Events))
	for i := range in.Events {
		eventItems = append(eventItems, eventItem(&in.Events[i], in.Date, loc))
	}
	slotItems := make([]Item, 0, len(in.Slots))
	for i := range in.Slots {
		slotItems = append(slotItems, slotItem(&in.Slots[i], in.Date, loc))
	}

	a := Agenda{Date: in.Date, Order: order}
	if order == constants.AgendaInterleaved {
		all := make([]Item, 0, len(taskItems)+len(eventItems)+len(slotItems))
		all = append(all, taskItems...)
		all = append(all, eventItems...)
		all = append(all, slotItems...)
		sort.SliceStable(all, func(i, j int) bool {
			return before(all[i], all[j])
		})
		a.Sections = []Section{{Title: "Timeline", Items: all}}
		return a
	}

	a.Sections = []Section{
		{Title: constants.SectionTasks, Items: taskItems},
		{Title: constants.SectionEvents, Items: eventItems},
		{Title: constants.SectionFreeTime, Items: slotItems},
	}
	return a
}

func before(a, b Item) bool {
	switch {
	case a.timed && b.timed:
		return a.at.Before(b.at)
	case a.timed:
		return true
	default:
		return false
	}
}

func taskItem(t *models.TaskData, date string, loc *time.Location) Item {
	start, end := SplitPreference(t.PlannedTime)
	it := Item{
		Kind:  KindTask,
		Title: t.Task,
		Start: start,
		End:   end,
		When:  FormatPreference(t.PlannedTime, loc),
		Task:  t,
	}
	it.at, it.timed = parseAt(start, date, loc)
	return it
}

func eventItem(e *models.CalendarEvent, date string, loc *time.Location) Item {
	it := Item{
		Kind:  KindEvent,
		Title: e.Summary,
		Start: e.Start,
		End:   e.End,
		When:  FormatRange(e.Start, e.End, loc),
		Event: e,
	}
	it.at, it.timed = parseAt(e.Start, date, loc)
	return it
}

func slotItem(s *models.FreeSlot, date string, loc *time.Location) Item {
	it := Item{
		Kind:  KindFreeSlot,
		Title: "Free",
		Start: s.Start,
		End:   s.End,
		When:  FormatRange(s.Start, s.End, loc),
		Slot:  s,
	}
	it.at, it.timed = parseAt(s.Start, date, loc)
	return it
}

func parseAt(value, date string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := utils.ParseSlotTime(value, date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SortEvents returns events ordered by start time. Events with an
// unparseable start keep their relative order after the rest.
func SortEvents(events []models.CalendarEvent, loc *time.Location) []models.CalendarEvent {
	type keyed struct {
		ev    models.CalendarEvent
		at    time.Time
		timed bool
	}
	ks := make([]keyed, len(events))
	for i, e := range events {
		t, err := utils.ParseISO(e.Start, loc)
		ks[i] = keyed{ev: e, at: t, timed: err == nil}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		a, b := ks[i], ks[j]
		switch {
		case a.timed && b.timed:
			return a.at.Before(b.at)
		case a.timed:
			return true
		default:
			return false
		}
	})
	out := make([]models.CalendarEvent, len(ks))
	for i, k := range ks {
		out[i] = k.ev
	}
	return out
}

// NextEvent returns the first event, in start order, that has not ended by now.
func NextEvent(events []models.CalendarEvent, now time.Time) (models.CalendarEvent, bool) {
	for _, e := range SortEvents(events, now.Location()) {
		end, err := utils.ParseISO(e.End, now.Location())
		if err != nil {
			continue
		}
		if end.After(now) {
			return e, true
		}
	}
	return models.CalendarEvent{}, false
}
