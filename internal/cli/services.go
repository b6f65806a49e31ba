package cli

import (
	"github.com/praxable/praxable-cli/internal/agenda"
	"github.com/praxable/praxable-cli/internal/constants"
	"github.com/praxable/praxable-cli/internal/logger"
	"github.com/praxable/praxable-cli/internal/planner"
	"github.com/praxable/praxable-cli/internal/recommend"
)

// Approver builds a plan approver recording into the journal. A journal that
// cannot be opened only costs the audit trail.
func (c *Context) Approver() *planner.Approver {
	var rec planner.Recorder
	if j, err := c.Journal(); err != nil {
		logger.Warn("Approval journal unavailable, continuing without it", "error", err)
	} else {
		rec = j
	}
	return planner.NewApprover(c.Backend, planner.ApproverOptions{
		Mode:     c.Config.TimePreference,
		Location: c.Location(),
		Now:      c.Clock(),
		Recorder: rec,
	})
}

// Recommender builds the recommendation service. An empty order uses the
// configured one.
func (c *Context) Recommender(order constants.RecommendationOrder) *recommend.Service {
	if order == "" {
		order = c.Config.RecommendationOrder
	}
	return recommend.NewService(c.Backend, recommend.Options{
		Order:    order,
		Summary:  c.Config.SummaryStyle(),
		Location: c.Location(),
		Now:      c.Clock(),
	})
}

// AgendaInput is today's agenda request under the configured policies.
func (c *Context) AgendaInput() agenda.Input {
	return agenda.Input{
		Date:           c.Today(),
		Location:       c.Location(),
		Order:          c.Config.AgendaOrder,
		IncludeUndated: c.Config.IncludeUndated,
	}
}
