package output

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/praxable/praxable-cli/internal/agenda"
	"github.com/praxable/praxable-cli/internal/constants"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/validation"
)

// Agenda prints each section of a, with a placeholder for empty sections.
func (p *Printer) Agenda(a agenda.Agenda) {
	p.Heading(fmt.Sprintf("Today · %s", a.Date))
	for _, s := range a.Sections {
		p.Println()
		p.Heading(s.Title)
		if len(s.Items) == 0 {
			p.Muted("  nothing %s", emptyHint(s.Title))
			continue
		}
		rows := make([][]string, 0, len(s.Items))
		for _, it := range s.Items {
			rows = append(rows, []string{it.When, it.Title, itemDetail(it)})
		}
		p.Table([]string{"When", "What", ""}, rows)
	}
}

func emptyHint(section string) string {
	switch section {
	case constants.SectionTasks:
		return "planned"
	case constants.SectionEvents:
		return "on the calendar"
	case constants.SectionFreeTime:
		return "free"
	default:
		return "scheduled"
	}
}

func itemDetail(it agenda.Item) string {
	switch it.Kind {
	case agenda.KindTask:
		if it.Task == nil {
			return ""
		}
		status := "pending"
		if it.Task.Done() {
			status = "done"
		}
		if it.Task.AlignedValue != "" {
			return status + " · " + it.Task.AlignedValue
		}
		return status
	case agenda.KindFreeSlot:
		if it.Slot != nil && it.Slot.DurationMinutes > 0 {
			return fmt.Sprintf("%d min", it.Slot.DurationMinutes)
		}
	case agenda.KindEvent:
		return "event"
	}
	return ""
}

// Values prints the core values, marking the selected ones.
func (p *Printer) Values(vals []models.CoreValue, selected func(string) bool) {
	if len(vals) == 0 {
		p.Muted("No core values yet. Add one with `praxable values add <name>`.")
		return
	}
	rows := make([][]string, 0, len(vals))
	for _, v := range vals {
		mark := " "
		if selected != nil && selected(v.ValueName) {
			mark = "●"
		}
		rows = append(rows, []string{mark, v.ValueName})
	}
	p.Table([]string{"", "Value"}, rows)
}

// Recommendations prints ranked activities. title renders the calendar summary.
func (p *Printer) Recommendations(recs []models.Recommendation, title func(models.Recommendation) string, loc *time.Location) {
	if len(recs) == 0 {
		p.Muted("No activities match the selected values right now.")
		return
	}
	rows := make([][]string, 0, len(recs))
	for i, r := range recs {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			title(r),
			fmt.Sprintf("%d min", r.DurationMinutes),
			fmt.Sprintf("%.1f", r.MatchScore),
			PredictionLabel(r.PredictedFulfillment),
			agenda.FormatRange(r.SuggestedSlot.Start, r.SuggestedSlot.End, loc),
			strings.Join(r.MatchingValues, ", "),
		})
	}
	p.Table([]string{"#", "Activity", "Length", "Match", "Predicted", "Slot", "Values"}, rows)
}

// PredictionLabel renders an optional fulfillment estimate.
func PredictionLabel(v *float64) string {
	if v == nil {
		return "not enough data"
	}
	band := agenda.ScoreBand(*v)
	return BandStyle(band).Render(fmt.Sprintf("%.1f (%s)", *v, band))
}

// PlannedTasks prints generated tasks awaiting approval.
func (p *Printer) PlannedTasks(tasks []models.PlannedTask, loc *time.Location) {
	if len(tasks) == 0 {
		p.Muted("The planner returned no tasks.")
		return
	}
	rows := make([][]string, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			t.TaskName,
			agenda.FormatPreference(t.TimePreference, loc),
			t.TaskType,
			t.AlignedValue,
		})
	}
	p.Table([]string{"#", "Task", "When", "Type", "Value"}, rows)
}

// Tasks prints logged tasks.
func (p *Printer) Tasks(tasks []models.TaskData, loc *time.Location) {
	if len(tasks) == 0 {
		p.Muted("No tasks found")
		return
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		status := "pending"
		if t.Done() {
			status = "done"
		}
		date := t.Date
		if date == "" {
			date = "undated"
		}
		rows = append(rows, []string{
			strconv.Itoa(t.ID),
			date,
			agenda.FormatPreference(t.PlannedTime, loc),
			t.Task,
			t.AlignedValue,
			status,
			optionalScore(t.FulfillmentScore),
		})
	}
	p.Table([]string{"ID", "Date", "When", "Task", "Value", "Status", "Fulfillment"}, rows)
}

func optionalScore(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

// Conflicts prints scheduling conflicts as warnings.
func (p *Printer) Conflicts(res validation.ValidationResult) {
	if !res.HasConflicts() {
		return
	}
	p.Warn("%d conflict(s) detected", len(res.Conflicts))
	for _, c := range res.Conflicts {
		p.Muted("  - %s", c.Description)
	}
}

// Runs prints approval journal runs, newest first.
func (p *Printer) Runs(runs []models.ApprovalRun) {
	if len(runs) == 0 {
		p.Muted("No approval runs recorded.")
		return
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			shortID(r.ID),
			r.StartedAt.Local().Format(constants.DateFormat + " " + constants.TimeFormat),
			r.Source,
			r.Status(),
			fmt.Sprintf("%d/%d", r.Succeeded, r.Total),
			r.Error,
		})
	}
	p.Table([]string{"Run", "Started", "Source", "Status", "Approved", "Error"}, rows)
}

// Run prints one run with its steps.
func (p *Printer) Run(r models.ApprovalRun) {
	p.Heading(fmt.Sprintf("Run %s", r.ID))
	p.Printf("Started:  %s\n", r.StartedAt.Local().Format(time.RFC1123))
	p.Printf("Status:   %s (%d of %d approved)\n", r.Status(), r.Succeeded, r.Total)
	if r.Error != "" {
		p.Printf("Error:    %s\n", r.Error)
	}
	rows := make([][]string, 0, len(r.Steps))
	for _, s := range r.Steps {
		result := "ok"
		if !s.OK {
			result = s.Error
		}
		rows = append(rows, []string{strconv.Itoa(s.Position + 1), s.Task, s.Step, result})
	}
	p.Table([]string{"#", "Task", "Step", "Result"}, rows)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// AnalyticsMarkdown builds the alignment report from the backend summary and
// locally computed task stats.
func AnalyticsMarkdown(resp *models.AnalyticsResponse, stats agenda.Stats) string {
	var b strings.Builder
	b.WriteString("# Value Alignment\n\n")

	fmt.Fprintf(&b, "- **Tasks logged:** %d\n", stats.Total)
	fmt.Fprintf(&b, "- **Completion rate:** %.0f%% (%d of %d)\n", stats.CompletionRate, stats.Completed, stats.Total)
	fmt.Fprintf(&b, "- **Average fulfillment:** %.1f\n", stats.AvgFulfillment)
	fmt.Fprintf(&b, "- **Average mood after:** %.1f\n", stats.AvgMood)
	fmt.Fprintf(&b, "- **Average energy:** %.1f\n\n", stats.AvgEnergy)

	if resp == nil || len(resp.Breakdown) == 0 {
		b.WriteString("_No value breakdown yet. Log and complete a few tasks first._\n")
		return b.String()
	}

	fmt.Fprintf(&b, "## By value (%d tasks)\n\n", resp.TotalTasks)
	b.WriteString("| Value | Tasks | Avg fulfillment | Band |\n")
	b.WriteString("|---|---:|---:|---|\n")
	for _, v := range resp.Breakdown {
		fmt.Fprintf(&b, "| %s | %d | %.1f | %s |\n", v.ValueName, v.TaskCount, v.AvgFulfillment, agenda.ScoreBand(v.AvgFulfillment))
	}
	return b.String()
}
