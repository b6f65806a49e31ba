package api

import (
	"context"
	"fmt"

	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/validation"
)

// TodayEvents returns today's calendar events in backend order.
func (c *Client) TodayEvents(ctx context.Context) ([]models.CalendarEvent, error) {
	resp, err := c.Get(ctx, "/calendar/today")
	if err != nil {
		return nil, err
	}

	var events []models.CalendarEvent
	if err := decode(resp, &events); err != nil {
		return nil, err
	}
	for i := range events {
		if err := validation.Struct(events[i]); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
	}
	return events, nil
}

// AddEvent creates a calendar event.
func (c *Client) AddEvent(ctx context.Context, event models.CalendarEvent) (*models.CalendarEvent, error) {
	if err := validation.Struct(event); err != nil {
		return nil, err
	}

	resp, err := c.Post(ctx, "/calendar/events", event)
	if err != nil {
		return nil, err
	}

	created := event
	if len(resp) > 0 {
		if err := decode(resp, &created); err != nil {
			return nil, err
		}
	}
	return &created, nil
}

// FreeSlots returns the backend-computed open windows for the rest of today.
func (c *Client) FreeSlots(ctx context.Context) ([]models.FreeSlot, error) {
	resp, err := c.Get(ctx, "/scheduler/free")
	if err != nil {
		return nil, err
	}

	var slots []models.FreeSlot
	if err := decode(resp, &slots); err != nil {
		return nil, err
	}
	for i := range slots {
		if err := validation.Struct(slots[i]); err != nil {
			return nil, fmt.Errorf("free slot %d: %w", i, err)
		}
	}
	return slots, nil
}
