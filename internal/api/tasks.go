package api

import (
	"context"
	"fmt"
	"strconv"

	apperrors "github.com/praxable/praxable-cli/internal/errors"
	"github.com/praxable/praxable-cli/internal/logger"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/validation"
)

// LogTask persists a task. The returned task carries the backend-assigned ID
// when the backend echoes it.
func (c *Client) LogTask(ctx context.Context, task models.TaskData) (*models.TaskData, error) {
	if err := validation.TaskData(task); err != nil {
		return nil, err
	}

	resp, err := c.Post(ctx, "/tasks", task)
	if err != nil {
		return nil, err
	}

	logged := task
	if len(resp) > 0 {
		if err := decode(resp, &logged); err != nil {
			return nil, err
		}
	}
	return &logged, nil
}

// ListTasks returns every logged task. Rows are checked one at a time: a row
// that breaks the completion invariant or a rating range is kept and read
// through its Outcome, and only rows without a name or with a malformed date
// are dropped.
func (c *Client) ListTasks(ctx context.Context) ([]models.TaskData, error) {
	resp, err := c.Get(ctx, "/tasks")
	if err != nil {
		return nil, err
	}

	var tasks []models.TaskData
	if err := decode(resp, &tasks); err != nil {
		return nil, err
	}

	kept := tasks[:0]
	for _, t := range tasks {
		if err := validation.TaskData(t); err != nil {
			if ierr := validation.TaskIdentity(t); ierr != nil {
				logger.Warn("Dropping unusable task", "id", t.ID, "error", ierr)
				continue
			}
			logger.Warn("Keeping task that failed validation",
				"id", t.ID, "task", t.Task, "outcome", outcomeName(t.Outcome()), "error", err)
		}
		kept = append(kept, t)
	}
	return kept, nil
}

func outcomeName(o models.Outcome) string {
	if _, ok := o.(models.Completed); ok {
		return "completed"
	}
	return "pending"
}

// CompleteTask marks a task done with its feedback.
func (c *Client) CompleteTask(ctx context.Context, id int, feedback models.TaskFeedback) (*models.TaskData, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if err := validation.Struct(feedback); err != nil {
		return nil, err
	}

	resp, err := c.Post(ctx, "/tasks/"+strconv.Itoa(id)+"/feedback", feedback)
	if err != nil {
		return nil, err
	}

	var task models.TaskData
	if len(resp) > 0 {
		if err := decode(resp, &task); err != nil {
			return nil, err
		}
	}
	return &task, nil
}

// UpdateTask applies a partial correction to a logged task.
func (c *Client) UpdateTask(ctx context.Context, id int, update models.TaskUpdate) error {
	if err := validateID(id); err != nil {
		return err
	}
	if update.Empty() {
		return apperrors.Validation("update must change at least one field")
	}
	if err := validation.Struct(update); err != nil {
		return err
	}

	_, err := c.Patch(ctx, "/tasks/"+strconv.Itoa(id), update)
	return err
}

func validateID(id int) error {
	if id <= 0 {
		return apperrors.FieldValidation("id", fmt.Sprintf("must be positive, got %d", id))
	}
	return nil
}
