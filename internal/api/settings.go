package api

import (
	"context"
	"strings"

	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/validation"
)

// ConfigStatus reports whether the backend has an LLM API key.
func (c *Client) ConfigStatus(ctx context.Context) (*models.ConfigStatus, error) {
	resp, err := c.Get(ctx, "/config/status")
	if err != nil {
		return nil, err
	}

	var status models.ConfigStatus
	if err := decode(resp, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// SetAPIKey hands the LLM API key to the backend.
func (c *Client) SetAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if err := validation.APIKey(key); err != nil {
		return err
	}
	_, err := c.Post(ctx, "/config/api-key", map[string]string{"api_key": key})
	return err
}
