package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/praxable/praxable-cli/internal/constants"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOverlappingTasks  ConflictType = "overlapping_tasks"
	ConflictOverlapsEvent     ConflictType = "overlaps_event"
	ConflictDuplicateTaskName ConflictType = "duplicate_task_name"
	ConflictInvalidWindow     ConflictType = "invalid_window"
)

// Window is a named time range to check. Fixed windows already exist on the
// calendar; the others are about to be created.
type Window struct {
	Name  string
	Start time.Time
	End   time.Time
	Fixed bool
}

// Conflict represents a detected conflict between windows
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string
	TimeRange   string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Add records a conflict.
func (vr *ValidationResult) Add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// Windows checks proposed windows against each other and against fixed ones.
// Conflicts between two fixed windows are not reported.
func Windows(windows []Window) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	nameCount := make(map[string]int)
	var valid []Window
	for _, w := range windows {
		if !w.End.After(w.Start) {
			result.Add(Conflict{
				Type:        ConflictInvalidWindow,
				Description: fmt.Sprintf("%q ends (%s) before it starts (%s)", w.Name, clock(w.End), clock(w.Start)),
				Items:       []string{w.Name},
				TimeRange:   timeRange(w),
			})
			continue
		}
		if !w.Fixed && w.Name != "" {
			nameCount[w.Name]++
		}
		valid = append(valid, w)
	}

	names := make([]string, 0, len(nameCount))
	for name, n := range nameCount {
		if n > 1 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		result.Add(Conflict{
			Type:        ConflictDuplicateTaskName,
			Description: fmt.Sprintf("Duplicate task name: %q (%d times)", name, nameCount[name]),
			Items:       []string{name},
		})
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Start.Before(valid[j].Start)
	})

	// O(n²) is fine for a single day's plan.
	for i := 0; i < len(valid); i++ {
		for j := i + 1; j < len(valid); j++ {
			w1, w2 := valid[i], valid[j]
			if !w2.Start.Before(w1.End) {
				break
			}
			if w1.Fixed && w2.Fixed {
				continue
			}
			ct := ConflictOverlappingTasks
			if w1.Fixed || w2.Fixed {
				ct = ConflictOverlapsEvent
			}
			result.Add(Conflict{
				Type: ct,
				Description: fmt.Sprintf("%s \"%s\" overlaps \"%s\" (%s)",
					timeRange(w1), w1.Name, w2.Name, timeRange(w2)),
				Items:     []string{w1.Name, w2.Name},
				TimeRange: timeRange(w1),
			})
		}
	}

	return result
}

func clock(t time.Time) string {
	return t.Format(constants.TimeFormat)
}

func timeRange(w Window) string {
	return fmt.Sprintf("%s-%s", clock(w.Start), clock(w.End))
}
