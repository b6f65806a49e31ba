// Package recommend asks the backend for activities that match the selected
// core values and books a chosen one onto the calendar.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/praxable/praxable-cli/internal/constants"
	apperrors "github.com/praxable/praxable-cli/internal/errors"
	"github.com/praxable/praxable-cli/internal/logger"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/utils"
	"github.com/praxable/praxable-cli/internal/values"
)

// ErrScheduleFailed is returned for any failure to book a recommendation.
// The underlying cause is wrapped alongside it.
var ErrScheduleFailed = errors.New("failed to schedule activity")

// Backend is what the service needs from the Praxable API.
type Backend interface {
	Recommend(ctx context.Context, req models.RecommendationRequest) ([]models.Recommendation, error)
	AddEvent(ctx context.Context, event models.CalendarEvent) (*models.CalendarEvent, error)
}

// Options tune the service. Zero values pick the defaults.
type Options struct {
	Order    constants.RecommendationOrder
	Summary  constants.SummaryStyle
	Location *time.Location
	Now      func() time.Time
}

// Service matches and schedules recommendations.
type Service struct {
	backend Backend
	order   constants.RecommendationOrder
	summary constants.SummaryStyle
	loc     *time.Location
	now     func() time.Time
}

// NewService creates a Service over backend.
func NewService(backend Backend, opts Options) *Service {
	s := &Service{
		backend: backend,
		order:   opts.Order,
		summary: opts.Summary,
		loc:     opts.Location,
		now:     opts.Now,
	}
	if s.order == "" {
		s.order = constants.RecommendationOrderBackend
	}
	if s.summary == "" {
		s.summary = constants.SummaryWithEmoji
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Recommend requests suggestions for the selected values. An empty selection
// is rejected without contacting the backend.
func (s *Service) Recommend(ctx context.Context, sel *values.Selector, minDuration int) ([]models.Recommendation, error) {
	if sel == nil || sel.Empty() {
		return nil, apperrors.FieldValidation("value_names", "select at least one core value")
	}
	if minDuration < 0 {
		return nil, apperrors.FieldValidation("min_duration", "must be 0 or greater")
	}

	req := models.RecommendationRequest{
		ValueNames:  sel.Selected(),
		MinDuration: minDuration,
	}
	recs, err := s.backend.Recommend(ctx, req)
	if err != nil {
		return nil, err
	}

	logger.Debug("Recommendations received", "count", len(recs), "values", len(req.ValueNames), "order", s.order)
	if s.order == constants.RecommendationOrderScore {
		recs = OrderByScore(recs)
	}
	return recs, nil
}

// OrderByScore returns recs sorted by descending match score. Ties keep
// their backend order.
func OrderByScore(recs []models.Recommendation) []models.Recommendation {
	out := make([]models.Recommendation, len(recs))
	copy(out, recs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	return out
}

// FitsWindow reports whether rec's duration fits in minutes. A non-positive
// window means the recommendation's own suggested slot.
func FitsWindow(rec models.Recommendation, minutes int) bool {
	window := minutes
	if window <= 0 {
		window = rec.SuggestedSlot.DurationMinutes
	}
	return rec.DurationMinutes <= window
}

// FilterByFit keeps the recommendations that fit in minutes.
func FilterByFit(recs []models.Recommendation, minutes int) []models.Recommendation {
	out := make([]models.Recommendation, 0, len(recs))
	for _, r := range recs {
		if FitsWindow(r, minutes) {
			out = append(out, r)
		}
	}
	return out
}

// Summary returns the calendar title for rec under the configured style.
func (s *Service) Summary(rec models.Recommendation) string {
	return summarize(rec, s.summary)
}

func summarize(rec models.Recommendation, style constants.SummaryStyle) string {
	name := strings.TrimSpace(rec.Name)
	emoji := strings.TrimSpace(rec.Emoji)
	if style == constants.SummaryPlain || emoji == "" {
		return name
	}
	return emoji + " " + name
}

// EventFor composes the calendar event for rec on date. Bare HH:MM slot
// bounds are anchored to date; ISO bounds pass through unchanged.
func EventFor(rec models.Recommendation, date string, style constants.SummaryStyle, loc *time.Location) (models.CalendarEvent, error) {
	slot := rec.SuggestedSlot
	if slot.Start == "" || slot.End == "" {
		return models.CalendarEvent{}, apperrors.FieldValidation("suggested_slot", "slot has no start or end")
	}

	start, err := utils.ParseSlotTime(slot.Start, date, loc)
	if err != nil {
		return models.CalendarEvent{}, apperrors.FieldValidation("suggested_slot.start", err.Error())
	}
	end, err := utils.ParseSlotTime(slot.End, date, loc)
	if err != nil {
		return models.CalendarEvent{}, apperrors.FieldValidation("suggested_slot.end", err.Error())
	}
	if !end.After(start) {
		return models.CalendarEvent{}, apperrors.FieldValidation("suggested_slot", "end must be after start")
	}

	return models.CalendarEvent{
		Summary: summarize(rec, style),
		Start:   utils.AnchorToDate(date, slot.Start),
		End:     utils.AnchorToDate(date, slot.End),
	}, nil
}

// Schedule books rec's suggested slot for today. Every failure is reported as
// ErrScheduleFailed; nothing is recorded locally on success.
func (s *Service) Schedule(ctx context.Context, rec models.Recommendation) (*models.CalendarEvent, error) {
	today := utils.Today(s.now().In(s.loc))

	event, err := EventFor(rec, today, s.summary, s.loc)
	if err != nil {
		logger.Warn("Rejected recommendation slot", "activity", rec.Name, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrScheduleFailed, err)
	}

	created, err := s.backend.AddEvent(ctx, event)
	if err != nil {
		logger.Error("Failed to schedule activity", "activity", rec.Name, "start", event.Start, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrScheduleFailed, err)
	}

	logger.Info("Scheduled activity", "summary", created.Summary, "start", created.Start, "end", created.End)
	return created, nil
}
