package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/praxable/praxable-cli/internal/constants"
)

// bareTimeRe matches a time-of-day without a date component, e.g. "9:05" or "14:00".
var bareTimeRe = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// isoLayouts are the datetime shapes the backend is known to send.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	constants.LocalDateTimeFormat,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// Today returns the calendar date of now as YYYY-MM-DD, using now's own location.
func Today(now time.Time) string {
	return now.Format(constants.DateFormat)
}

// IsBareTime reports whether s is a time-of-day token with no date component.
func IsBareTime(s string) bool {
	return bareTimeRe.MatchString(s)
}

// SplitBareTime returns the hour and minute of a bare time token without
// range-checking them.
func SplitBareTime(s string) (hour, minute int, err error) {
	if !IsBareTime(s) {
		return 0, 0, fmt.Errorf("not a bare time: %q", s)
	}
	i := len(s) - 3
	hour, err = strconv.Atoi(s[:i])
	if err != nil {
		return 0, 0, err
	}
	minute, err = strconv.Atoi(s[i+1:])
	if err != nil {
		return 0, 0, err
	}
	return hour, minute, nil
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseISO parses an ISO datetime. Values without a zone offset are read in
// loc; a date-only value is midnight UTC.
func ParseISO(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range isoLayouts[1:] {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(constants.DateFormat, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q", s)
}

// ParseSlotTime parses a slot boundary that is either a bare HH:MM on date or
// a full ISO datetime.
func ParseSlotTime(value, date string, loc *time.Location) (time.Time, error) {
	if IsBareTime(value) {
		return CombineDateAndTime(date, value, loc)
	}
	return ParseISO(value, loc)
}

// AnchorToDate turns a bare HH:MM into "{date}T{HH:MM}:00". Anything else is
// returned unchanged.
func AnchorToDate(date, value string) string {
	if !IsBareTime(value) {
		return value
	}
	if len(value) == 4 {
		value = "0" + value
	}
	return date + "T" + value + ":00"
}

// FormatLocalDateTime renders t as a zone-less ISO datetime.
func FormatLocalDateTime(t time.Time) string {
	return t.Format(constants.LocalDateTimeFormat)
}

// CombineDateAndTime combines a date string (YYYY-MM-DD) and time string (HH:MM)
// into a single time.Time in the specified timezone.
func CombineDateAndTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	date, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}

	timeOfDay, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %w", err)
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0,
		loc,
	), nil
}

// ValidateDateFormat checks if the string is a YYYY-MM-DD date.
func ValidateDateFormat(dateStr string) bool {
	_, err := time.Parse(constants.DateFormat, dateStr)
	return err == nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
