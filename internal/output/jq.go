package output

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"

	apperrors "github.com/praxable/praxable-cli/internal/errors"
)

// Filter runs a jq query over v and collects every result. v is first
// normalised through JSON so struct tags decide the field names.
func Filter(ctx context.Context, query string, v any) ([]any, error) {
	q, err := gojq.Parse(query)
	if err != nil {
		return nil, apperrors.FieldValidation("jq", err.Error())
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode jq input: %w", err)
	}
	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to decode jq input: %w", err)
	}

	var results []any
	iter := q.RunWithContext(ctx, input)
	for {
		r, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := r.(error); isErr {
			if halt, ok := err.(*gojq.HaltError); ok && halt.Value() == nil {
				break
			}
			return results, fmt.Errorf("jq: %w", err)
		}
		results = append(results, r)
	}
	return results, nil
}
