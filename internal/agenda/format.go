package agenda

import (
	"fmt"
	"strings"
	"time"

	"github.com/praxable/praxable-cli/internal/constants"
	"github.com/praxable/praxable-cli/internal/utils"
)

// rangeSep separates the two ends of a "HH:MM - HH:MM" preference.
const rangeSep = "-"

// FormatTime renders a bare HH:MM or an ISO datetime as a 12-hour clock time
// in the local timezone.
func FormatTime(s string) string {
	return FormatTimeIn(s, time.Local)
}

// FormatTimeIn is FormatTime with ISO values converted to loc.
//
//	""                    -> "N/A"
//	"00:00"               -> "12:00 AM"
//	"12:00"               -> "12:00 PM"
//	"13:05"               -> "1:05 PM"
//	"2024-01-15T09:30:00" -> "9:30 AM"
//	"24:00"               -> "Invalid time"
//	"not-a-date"          -> "Invalid time"
func FormatTimeIn(s string, loc *time.Location) string {
	if s == "" {
		return constants.TimeNotAvailable
	}

	if utils.IsBareTime(s) {
		hour, minute, err := utils.SplitBareTime(s)
		if err != nil || hour > 23 || minute > 59 {
			return constants.TimeInvalid
		}
		period := "AM"
		if hour >= 12 {
			period = "PM"
		}
		display := hour
		switch {
		case hour > 12:
			display = hour - 12
		case hour == 0:
			display = 12
		}
		return fmt.Sprintf("%d:%02d %s", display, minute, period)
	}

	t, err := utils.ParseISO(s, loc)
	if err != nil {
		return constants.TimeInvalid
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("3:04 PM")
}

// FormatTimePtr is FormatTime for optional values; nil renders as "N/A".
func FormatTimePtr(s *string) string {
	if s == nil {
		return constants.TimeNotAvailable
	}
	return FormatTime(*s)
}

// FormatRange renders start and end as "start - end".
func FormatRange(start, end string, loc *time.Location) string {
	return FormatTimeIn(start, loc) + " - " + FormatTimeIn(end, loc)
}

// SplitPreference splits "HH:MM - HH:MM" into its two ends. Anything else
// comes back whole as start with an empty end.
func SplitPreference(pref string) (start, end string) {
	parts := strings.SplitN(pref, rangeSep, 2)
	if len(parts) == 2 {
		s, e := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if utils.IsBareTime(s) && utils.IsBareTime(e) {
			return s, e
		}
	}
	return strings.TrimSpace(pref), ""
}

// FormatPreference renders a task's planned time, which may be a single time
// or a range.
func FormatPreference(pref string, loc *time.Location) string {
	if pref == "" {
		return constants.TimeNotAvailable
	}
	if utils.IsBareTime(pref) {
		return FormatTimeIn(pref, loc)
	}
	if start, end := SplitPreference(pref); end != "" {
		return FormatRange(start, end, loc)
	}
	return FormatTimeIn(pref, loc)
}
