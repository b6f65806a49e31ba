package agenda

import (
	"time"

	"github.com/praxable/praxable-cli/internal/constants"
	"github.com/praxable/praxable-cli/internal/models"
)

// Stats summarises a task list.
type Stats struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"` // percent, 0 when Total is 0
	AvgFulfillment float64 `json:"avg_fulfillment"`
	AvgMood        float64 `json:"avg_mood"`
	AvgEnergy      float64 `json:"avg_energy"`
}

// ComputeStats derives completion and averages. Fulfillment and mood average
// over completed tasks that carry a fulfillment score; energy averages over
// every task. Empty inputs yield zeros, never NaN.
func ComputeStats(tasks []models.TaskData) Stats {
	s := Stats{Total: len(tasks)}
	if s.Total == 0 {
		return s
	}

	var scored, fulfillment, mood, energy int
	for _, t := range tasks {
		energy += t.EnergyLevel
		if !t.Done() {
			continue
		}
		s.Completed++
		if t.FulfillmentScore != nil && *t.FulfillmentScore > 0 {
			scored++
			fulfillment += *t.FulfillmentScore
			if t.MoodAfter != nil {
				mood += *t.MoodAfter
			}
		}
	}

	s.CompletionRate = float64(s.Completed) / float64(s.Total) * 100
	s.AvgEnergy = float64(energy) / float64(s.Total)
	if scored > 0 {
		s.AvgFulfillment = float64(fulfillment) / float64(scored)
		s.AvgMood = float64(mood) / float64(scored)
	}
	return s
}

// Greeting returns a salutation for the hour of now.
func Greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return "Good Morning"
	case h < 18:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}

// ScoreBand buckets a 0..10 score: "high" at 7 and above, "medium" at 4 and
// above, otherwise "low".
func ScoreBand(score float64) string {
	switch {
	case score >= constants.PredictionHighThreshold:
		return "high"
	case score >= constants.PredictionMediumThreshold:
		return "medium"
	default:
		return "low"
	}
}
