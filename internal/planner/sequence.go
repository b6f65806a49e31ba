// Package planner generates candidate tasks from free-form input and
// approves them onto the backend one at a time.
package planner

import (
	"context"
	"errors"

	apperrors "github.com/praxable/praxable-cli/internal/errors"
)

// CommittedError marks a step that saved part of its work before failing.
// Sequence counts the item as persisted.
type CommittedError struct {
	Err error
}

func (e *CommittedError) Error() string { return e.Err.Error() }

func (e *CommittedError) Unwrap() error { return e.Err }

// StepResult is the outcome of one item in a sequence. Persisted is set for
// successful steps and for failed steps that returned a *CommittedError.
type StepResult[T any] struct {
	Index     int
	Item      T
	Err       error
	Persisted bool
}

// OK reports whether the step succeeded.
func (r StepResult[T]) OK() bool {
	return r.Err == nil
}

// Report summarises a sequence run. FailedAt is -1 when every step succeeded.
// Persisted counts items that left something on the backend, including a
// failed item that got part way.
type Report[T any] struct {
	Results   []StepResult[T]
	Total     int
	Succeeded int
	Persisted int
	FailedAt  int
	Err       error
}

// Failed reports whether the run stopped on an error.
func (r Report[T]) Failed() bool {
	return r.Err != nil
}

// Partial reports whether anything was persisted before a failure.
func (r Report[T]) Partial() bool {
	return r.Persisted > 0 && r.Err != nil
}

// Error converts a failed report into a *PartialSequenceError, naming the
// failed item with name. It returns nil when the run succeeded.
func (r Report[T]) Error(name func(T) string) error {
	if r.Err == nil {
		return nil
	}
	pe := &apperrors.PartialSequenceError{
		Succeeded: r.Succeeded,
		Persisted: r.Persisted,
		Total:     r.Total,
		FailedAt:  r.FailedAt,
		Err:       r.Err,
	}
	if name != nil && r.FailedAt >= 0 && r.FailedAt < len(r.Results) {
		pe.Item = name(r.Results[r.FailedAt].Item)
	}
	return pe
}

// Sequence runs Step over items strictly in order and stops at the first
// failure. Committed items are never rolled back.
type Sequence[T any] struct {
	Step func(ctx context.Context, index int, item T) error
	// OnResult, when set, observes every attempted step.
	OnResult func(StepResult[T])
}

// Run executes the sequence. Items after a failure are never attempted.
func (s Sequence[T]) Run(ctx context.Context, items []T) Report[T] {
	report := Report[T]{
		Results:  make([]StepResult[T], 0, len(items)),
		Total:    len(items),
		FailedAt: -1,
	}

	for i, item := range items {
		err := ctx.Err()
		if err == nil {
			err = s.Step(ctx, i, item)
		}

		var committed *CommittedError
		res := StepResult[T]{Index: i, Item: item, Err: err, Persisted: err == nil || errors.As(err, &committed)}
		report.Results = append(report.Results, res)
		if s.OnResult != nil {
			s.OnResult(res)
		}
		if res.Persisted {
			report.Persisted++
		}

		if err != nil {
			report.FailedAt = i
			report.Err = err
			return report
		}
		report.Succeeded++
	}
	return report
}
