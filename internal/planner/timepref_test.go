package planner

import (
	"testing"
	"time"

	"github.com/praxable/praxable-cli/internal/constants"
	apperrors "github.com/praxable/praxable-cli/internal/errors"
)

func TestParseTimePreference(t *testing.T) {
	day := func(h, m int) time.Time {
		return time.Date(2024, 1, 15, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name      string
		pref      string
		mode      constants.TimePreferenceMode
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{name: "auto single", pref: "09:00", mode: constants.TimePreferenceAuto, wantStart: day(9, 0), wantEnd: day(10, 0)},
		{name: "auto range", pref: "09:00 - 10:30", mode: constants.TimePreferenceAuto, wantStart: day(9, 0), wantEnd: day(10, 30)},
		{name: "empty mode is auto", pref: "7:15-8:00", wantStart: day(7, 15), wantEnd: day(8, 0)},
		{name: "single", pref: "14:00", mode: constants.TimePreferenceSingle, wantStart: day(14, 0), wantEnd: day(15, 0)},
		{name: "single rejects range", pref: "14:00 - 15:00", mode: constants.TimePreferenceSingle, wantErr: true},
		{name: "range rejects single", pref: "14:00", mode: constants.TimePreferenceRange, wantErr: true},
		{name: "reversed range", pref: "15:00 - 14:00", mode: constants.TimePreferenceRange, wantErr: true},
		{name: "out of range hour", pref: "25:00", mode: constants.TimePreferenceSingle, wantErr: true},
		{name: "words", pref: "morning", wantErr: true},
		{name: "empty", pref: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ParseTimePreference(tt.pref, "2024-01-15", tt.mode, time.UTC)
			if tt.wantErr {
				if !apperrors.IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !w.Start.Equal(tt.wantStart) || !w.End.Equal(tt.wantEnd) {
				t.Errorf("window = %v..%v, want %v..%v", w.Start, w.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
