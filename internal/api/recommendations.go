package api

import (
	"context"
	"fmt"

	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/validation"
)

// ListActivities returns the activity catalogue.
func (c *Client) ListActivities(ctx context.Context) ([]models.Activity, error) {
	resp, err := c.Get(ctx, "/recommendations/activities")
	if err != nil {
		return nil, err
	}

	var activities []models.Activity
	if err := decode(resp, &activities); err != nil {
		return nil, err
	}
	for i := range activities {
		if err := validation.Struct(activities[i]); err != nil {
			return nil, fmt.Errorf("activity %d: %w", activities[i].ID, err)
		}
	}
	return activities, nil
}

// Recommend returns activities matched to the given values, in backend order.
func (c *Client) Recommend(ctx context.Context, req models.RecommendationRequest) ([]models.Recommendation, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	resp, err := c.Post(ctx, "/recommendations/suggest", req)
	if err != nil {
		return nil, err
	}

	var recs []models.Recommendation
	if err := decode(resp, &recs); err != nil {
		return nil, err
	}
	for i := range recs {
		if err := validation.Struct(recs[i]); err != nil {
			return nil, fmt.Errorf("recommendation %q: %w", recs[i].Name, err)
		}
	}
	return recs, nil
}
