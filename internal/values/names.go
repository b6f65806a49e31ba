package values

import (
	"fmt"
	"strings"

	apperrors "github.com/praxable/praxable-cli/internal/errors"
	"github.com/praxable/praxable-cli/internal/models"
)

// Names returns the names of vals in order.
func Names(vals []models.CoreValue) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.ValueName
	}
	return out
}

// FromNames selects names, each of which must be one of known.
func FromNames(known []models.CoreValue, names []string) (*Selector, error) {
	all := Names(known)
	idx := make(map[string]struct{}, len(all))
	for _, n := range all {
		idx[n] = struct{}{}
	}

	var unknown []string
	for _, n := range names {
		if _, ok := idx[n]; !ok {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		return nil, apperrors.FieldValidation("values",
			fmt.Sprintf("unknown value(s) %s; known: %s", strings.Join(unknown, ", "), strings.Join(all, ", ")))
	}
	return NewSelector(names...), nil
}
