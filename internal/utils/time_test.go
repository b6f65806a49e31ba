package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{
			name:     "empty string returns local",
			timezone: "",
			wantErr:  false,
		},
		{
			name:     "Local returns local",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "valid timezone UTC",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "valid timezone America/New_York",
			timezone: "America/New_York",
			wantErr:  false,
		},
		{
			name:     "valid timezone Europe/London",
			timezone: "Europe/London",
			wantErr:  false,
		},
		{
			name:     "valid timezone Asia/Tokyo",
			timezone: "Asia/Tokyo",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestCombineDateAndTime(t *testing.T) {
	utc, _ := time.LoadLocation("UTC")
	est, _ := time.LoadLocation("America/New_York")

	tests := []struct {
		name     string
		dateStr  string
		timeStr  string
		loc      *time.Location
		wantYear int
		wantMon  time.Month
		wantDay  int
		wantHour int
		wantMin  int
		wantErr  bool
	}{
		{
			name:     "valid date and time in UTC",
			dateStr:  "2026-01-15",
			timeStr:  "14:30",
			loc:      utc,
			wantYear: 2026,
			wantMon:  time.January,
			wantDay:  15,
			wantHour: 14,
			wantMin:  30,
			wantErr:  false,
		},
		{
			name:     "valid date and time in EST",
			dateStr:  "2025-12-31",
			timeStr:  "23:59",
			loc:      est,
			wantYear: 2025,
			wantMon:  time.December,
			wantDay:  31,
			wantHour: 23,
			wantMin:  59,
			wantErr:  false,
		},
		{
			name:     "midnight",
			dateStr:  "2026-01-01",
			timeStr:  "00:00",
			loc:      utc,
			wantYear: 2026,
			wantMon:  time.January,
			wantDay:  1,
			wantHour: 0,
			wantMin:  0,
			wantErr:  false,
		},
		{
			name:     "invalid date format",
			dateStr:  "2026/01/15",
			timeStr:  "14:30",
			loc:      utc,
			wantErr:  true,
		},
		{
			name:     "invalid time format",
			dateStr:  "2026-01-15",
			timeStr:  "25:00",
			loc:      utc,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CombineDateAndTime(tt.dateStr, tt.timeStr, tt.loc)
			if (err != nil) != tt.wantErr {
				t.Errorf("CombineDateAndTime() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if got.Year() != tt.wantYear {
					t.Errorf("CombineDateAndTime() year = %v, want %v", got.Year(), tt.wantYear)
				}
				if got.Month() != tt.wantMon {
					t.Errorf("CombineDateAndTime() month = %v, want %v", got.Month(), tt.wantMon)
				}
				if got.Day() != tt.wantDay {
					t.Errorf("CombineDateAndTime() day = %v, want %v", got.Day(), tt.wantDay)
				}
				if got.Hour() != tt.wantHour {
					t.Errorf("CombineDateAndTime() hour = %v, want %v", got.Hour(), tt.wantHour)
				}
				if got.Minute() != tt.wantMin {
					t.Errorf("CombineDateAndTime() minute = %v, want %v", got.Minute(), tt.wantMin)
				}
				if got.Location() != tt.loc {
					t.Errorf("CombineDateAndTime() location = %v, want %v", got.Location(), tt.loc)
				}
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		want     bool
	}{
		{
			name:     "empty string is valid",
			timezone: "",
			want:     true,
		},
		{
			name:     "Local is valid",
			timezone: "Local",
			want:     true,
		},
		{
			name:     "UTC is valid",
			timezone: "UTC",
			want:     true,
		},
		{
			name:     "America/New_York is valid",
			timezone: "America/New_York",
			want:     true,
		},
		{
			name:     "Europe/London is valid",
			timezone: "Europe/London",
			want:     true,
		},
		{
			name:     "Asia/Tokyo is valid",
			timezone: "Asia/Tokyo",
			want:     true,
		},
		{
			name:     "Invalid/Timezone is invalid",
			timezone: "Invalid/Timezone",
			want:     false,
		},
		{
			name:     "random string is invalid",
			timezone: "not-a-timezone",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateTimezone(tt.timezone); got != tt.want {
				t.Errorf("ValidateTimezone() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsBareTime(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"14:00", true},
		{"9:05", true},
		{"00:00", true},
		{"123:00", false},
		{"9:5", false},
		{"2024-01-15T14:00:00", false},
		{"", false},
		{"14:00:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsBareTime(tt.input); got != tt.want {
				t.Errorf("IsBareTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitBareTime(t *testing.T) {
	h, m, err := SplitBareTime("9:05")
	if err != nil {
		t.Fatalf("SplitBareTime() error = %v", err)
	}
	if h != 9 || m != 5 {
		t.Errorf("SplitBareTime() = %d, %d, want 9, 5", h, m)
	}

	if _, _, err := SplitBareTime("noon"); err == nil {
		t.Error("SplitBareTime(\"noon\") expected error")
	}
}

func TestParseISO(t *testing.T) {
	utc, _ := time.LoadLocation("UTC")
	tokyo, _ := time.LoadLocation("Asia/Tokyo")

	tests := []struct {
		name     string
		input    string
		loc      *time.Location
		wantHour int
		wantMin  int
		wantLoc  *time.Location
		wantErr  bool
	}{
		{name: "zoned", input: "2024-01-15T14:30:00Z", loc: tokyo, wantHour: 14, wantMin: 30, wantLoc: utc},
		{name: "offset", input: "2024-01-15T14:30:00+09:00", loc: utc, wantHour: 14, wantMin: 30},
		{name: "zone-less uses loc", input: "2024-01-15T14:30:00", loc: tokyo, wantHour: 14, wantMin: 30, wantLoc: tokyo},
		{name: "fractional seconds", input: "2024-01-15T08:05:00.123456", loc: utc, wantHour: 8, wantMin: 5, wantLoc: utc},
		{name: "no seconds", input: "2024-01-15T08:05", loc: utc, wantHour: 8, wantMin: 5, wantLoc: utc},
		{name: "date only", input: "2024-01-15", loc: tokyo, wantHour: 0, wantMin: 0, wantLoc: utc},
		{name: "garbage", input: "not-a-date", loc: utc, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseISO(tt.input, tt.loc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseISO() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Hour() != tt.wantHour || got.Minute() != tt.wantMin {
				t.Errorf("ParseISO() = %v, want %02d:%02d", got, tt.wantHour, tt.wantMin)
			}
			if tt.wantLoc != nil && got.Location().String() != tt.wantLoc.String() {
				t.Errorf("ParseISO() location = %v, want %v", got.Location(), tt.wantLoc)
			}
		})
	}
}

func TestAnchorToDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"bare time", "14:00", "2024-01-15T14:00:00"},
		{"single digit hour", "9:30", "2024-01-15T09:30:00"},
		{"already iso", "2024-01-16T09:00:00", "2024-01-16T09:00:00"},
		{"garbage passes through", "soon", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnchorToDate("2024-01-15", tt.value); got != tt.want {
				t.Errorf("AnchorToDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSlotTime(t *testing.T) {
	utc, _ := time.LoadLocation("UTC")

	got, err := ParseSlotTime("14:00", "2024-01-15", utc)
	if err != nil {
		t.Fatalf("ParseSlotTime() error = %v", err)
	}
	want := time.Date(2024, time.January, 15, 14, 0, 0, 0, utc)
	if !got.Equal(want) {
		t.Errorf("ParseSlotTime() = %v, want %v", got, want)
	}

	got, err = ParseSlotTime("2024-01-16T09:00:00", "2024-01-15", utc)
	if err != nil {
		t.Fatalf("ParseSlotTime() error = %v", err)
	}
	if got.Day() != 16 {
		t.Errorf("ParseSlotTime() day = %d, want 16", got.Day())
	}
}

func TestToday(t *testing.T) {
	tokyo, _ := time.LoadLocation("Asia/Tokyo")
	now := time.Date(2024, time.January, 15, 23, 30, 0, 0, time.UTC)

	if got := Today(now); got != "2024-01-15" {
		t.Errorf("Today() = %q, want 2024-01-15", got)
	}
	if got := Today(now.In(tokyo)); got != "2024-01-16" {
		t.Errorf("Today() in Tokyo = %q, want 2024-01-16", got)
	}
}
