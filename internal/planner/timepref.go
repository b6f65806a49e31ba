package planner

import (
	"strings"
	"time"

	"github.com/praxable/praxable-cli/internal/constants"
	apperrors "github.com/praxable/praxable-cli/internal/errors"
	"github.com/praxable/praxable-cli/internal/utils"
)

// Window is a parsed time preference on a concrete date.
type Window struct {
	Start time.Time
	End   time.Time
}

// ParseTimePreference turns a task's time_preference into a window on today.
//
//	single: "HH:MM" starts a one-hour window
//	range:  "HH:MM - HH:MM"
//	auto:   range when the value contains "-", single otherwise
func ParseTimePreference(pref, today string, mode constants.TimePreferenceMode, loc *time.Location) (Window, error) {
	pref = strings.TrimSpace(pref)
	if pref == "" {
		return Window{}, apperrors.FieldValidation("time_preference", "is empty")
	}
	if loc == nil {
		loc = time.Local
	}

	if mode == "" || mode == constants.TimePreferenceAuto {
		mode = constants.TimePreferenceSingle
		if strings.Contains(pref, "-") {
			mode = constants.TimePreferenceRange
		}
	}

	switch mode {
	case constants.TimePreferenceSingle:
		if !utils.IsBareTime(pref) {
			return Window{}, apperrors.FieldValidation("time_preference", "expected HH:MM, got "+pref)
		}
		start, err := at(today, pref, loc)
		if err != nil {
			return Window{}, err
		}
		return Window{Start: start, End: start.Add(constants.DefaultPlannedTaskDuration)}, nil

	case constants.TimePreferenceRange:
		parts := strings.SplitN(pref, "-", 2)
		if len(parts) != 2 {
			return Window{}, apperrors.FieldValidation("time_preference", "expected HH:MM - HH:MM, got "+pref)
		}
		from, to := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if !utils.IsBareTime(from) || !utils.IsBareTime(to) {
			return Window{}, apperrors.FieldValidation("time_preference", "expected HH:MM - HH:MM, got "+pref)
		}
		start, err := at(today, from, loc)
		if err != nil {
			return Window{}, err
		}
		end, err := at(today, to, loc)
		if err != nil {
			return Window{}, err
		}
		if !end.After(start) {
			return Window{}, apperrors.FieldValidation("time_preference", "end must be after start")
		}
		return Window{Start: start, End: end}, nil
	}

	return Window{}, apperrors.Validationf("unknown time preference mode %q", mode)
}

func at(date, clock string, loc *time.Location) (time.Time, error) {
	hour, minute, err := utils.SplitBareTime(clock)
	if err != nil {
		return time.Time{}, apperrors.FieldValidation("time_preference", err.Error())
	}
	if hour > 23 || minute > 59 {
		return time.Time{}, apperrors.FieldValidation("time_preference", "time out of range: "+clock)
	}
	t, err := utils.CombineDateAndTime(date, clock, loc)
	if err != nil {
		return time.Time{}, apperrors.FieldValidation("time_preference", err.Error())
	}
	return t, nil
}
