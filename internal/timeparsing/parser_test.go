package timeparsing

import (
	"testing"
	"time"
)

func TestParseCompactOffset(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "-1d is yesterday", input: "-1d", want: time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)},
		{name: "+1d is tomorrow", input: "+1d", want: time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)},
		{name: "unsigned is forward", input: "2d", want: time.Date(2025, 6, 17, 12, 0, 0, 0, time.UTC)},
		{name: "-2w", input: "-2w", want: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		{name: "-1m", input: "-1m", want: time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)},
		{name: "+1y", input: "+1y", want: time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)},
		{name: "hours are not days", input: "+6h", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "double sign", input: "--1d", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCompactOffset(tt.input, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCompactOffset(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseCompactOffset(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCompactOffset_LeapDay(t *testing.T) {
	feb28 := time.Date(2024, 2, 28, 9, 0, 0, 0, time.UTC)
	got, err := ParseCompactOffset("+1d", feb28)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Month() != time.February || got.Day() != 29 {
		t.Errorf("Feb 28, 2024 + 1d = %v, want Feb 29", got)
	}
}

func TestParseNaturalLanguage(t *testing.T) {
	// Wednesday, January 15, 2025
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		input   string
		wantDay int
		wantErr bool
	}{
		{name: "yesterday", input: "yesterday", wantDay: 14},
		{name: "tomorrow", input: "tomorrow", wantDay: 16},
		{name: "surrounding spaces", input: "  yesterday ", wantDay: 14},
		{name: "random text", input: "not a date at all", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNaturalLanguage(tt.input, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseNaturalLanguage(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Year() != 2025 || got.Month() != time.January || got.Day() != tt.wantDay {
				t.Errorf("ParseNaturalLanguage(%q) = %v, want Jan %d 2025", tt.input, got, tt.wantDay)
			}
		})
	}
}

func TestParseRelativeTime(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		input     string
		wantMonth time.Month
		wantDay   int
		wantErr   bool
	}{
		{name: "compact", input: "-1d", wantMonth: time.January, wantDay: 14},
		{name: "date-only", input: "2025-02-01", wantMonth: time.February, wantDay: 1},
		{name: "rfc3339", input: "2025-03-15T14:30:00Z", wantMonth: time.March, wantDay: 15},
		{name: "natural language", input: "yesterday", wantMonth: time.January, wantDay: 14},
		{name: "invalid", input: "not-a-date", wantErr: true},
		{name: "bad calendar date", input: "2025-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelativeTime(tt.input, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRelativeTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Month() != tt.wantMonth || got.Day() != tt.wantDay {
				t.Errorf("ParseRelativeTime(%q) = %v, want %v %d", tt.input, got, tt.wantMonth, tt.wantDay)
			}
		})
	}
}

func TestParseRelativeTime_DateOnlyUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, loc)

	got, err := ParseRelativeTime("2025-01-20", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Location() != loc {
		t.Errorf("location = %v, want %v", got.Location(), loc)
	}
}

func TestIsCompactOffset(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"-1d", true},
		{"+2w", true},
		{"3m", true},
		{"1y", true},
		{"", false},
		{"yesterday", false},
		{"2025-01-15", false},
		{"1d+", false},
		{"+6h", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsCompactOffset(tt.input); got != tt.want {
				t.Errorf("IsCompactOffset(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
