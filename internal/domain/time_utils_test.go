package domain

import (
	"testing"
	"time"
)

func TestLoadLocationFallsBackToUTC(t *testing.T) {
	if loc := LoadLocation(""); loc != time.UTC {
		t.Errorf("expected UTC for empty zone, got %v", loc)
	}
	if loc := LoadLocation("Not/AZone"); loc != time.UTC {
		t.Errorf("expected UTC for unknown zone, got %v", loc)
	}
}

func TestDayMonthYearBounds(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	// 2024-02-29 20:30 UTC is already March 1st at UTC+7
	date := time.Date(2024, time.February, 29, 20, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		got      time.Time
		expected time.Time
	}{
		{"beginning of day", BeginningOfDay(date, loc), time.Date(2024, time.March, 1, 0, 0, 0, 0, loc)},
		{"end of day", EndOfDay(date, loc), time.Date(2024, time.March, 1, 23, 59, 59, 0, loc)},
		{"beginning of month", BeginningOfMonth(date, loc), time.Date(2024, time.March, 1, 0, 0, 0, 0, loc)},
		{"end of month", EndOfMonth(date, loc), time.Date(2024, time.March, 31, 23, 59, 59, 999999999, loc)},
		{"beginning of year", BeginningOfYear(date, loc), time.Date(2024, time.January, 1, 0, 0, 0, 0, loc)},
		{"end of year", EndOfYear(date, loc), time.Date(2024, time.December, 31, 23, 59, 59, 999999999, loc)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equal(tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}
