package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/validation"
)

// ListValues returns every core value.
func (c *Client) ListValues(ctx context.Context) ([]models.CoreValue, error) {
	resp, err := c.Get(ctx, "/values")
	if err != nil {
		return nil, err
	}

	var values []models.CoreValue
	if err := decode(resp, &values); err != nil {
		return nil, err
	}
	for i := range values {
		if err := validation.Struct(values[i]); err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
	}
	return values, nil
}

// AddValue creates a core value.
func (c *Client) AddValue(ctx context.Context, name string) (*models.CoreValue, error) {
	if err := validation.ValueName(name); err != nil {
		return nil, err
	}

	resp, err := c.Post(ctx, "/values", models.CoreValue{ValueName: name})
	if err != nil {
		return nil, err
	}

	var value models.CoreValue
	if err := decode(resp, &value); err != nil {
		return nil, err
	}
	if value.ValueName == "" {
		value.ValueName = name
	}
	return &value, nil
}

// DeleteValue removes a core value by name.
func (c *Client) DeleteValue(ctx context.Context, name string) error {
	if err := validation.ValueName(name); err != nil {
		return err
	}
	_, err := c.Delete(ctx, "/values/"+url.PathEscape(name))
	return err
}
