package api

import (
	"context"

	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/validation"
)

// PredictFulfillment asks the model for an expected fulfillment score. A nil
// result means the model lacks training data.
func (c *Client) PredictFulfillment(ctx context.Context, req models.PredictionRequest) (*float64, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	resp, err := c.Post(ctx, "/predict/fulfillment", req)
	if err != nil {
		return nil, err
	}

	var out models.PredictionResponse
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return out.PredictedFulfillment, nil
}

// RetrainModel triggers a retrain of the fulfillment model.
func (c *Client) RetrainModel(ctx context.Context) error {
	_, err := c.Post(ctx, "/predict/retrain", nil)
	return err
}

// Analytics returns the per-value alignment summary.
func (c *Client) Analytics(ctx context.Context) (*models.AnalyticsResponse, error) {
	resp, err := c.Get(ctx, "/analytics/alignment")
	if err != nil {
		return nil, err
	}

	var out models.AnalyticsResponse
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	if err := validation.Struct(out); err != nil {
		return nil, err
	}
	return &out, nil
}
