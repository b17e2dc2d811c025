package budget

import (
	"testing"
	"time"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			"wednesday rewinds to monday",
			time.Date(2026, 1, 7, 15, 30, 0, 0, time.UTC),
			time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			"monday is its own start",
			time.Date(2026, 1, 5, 23, 59, 59, 0, time.UTC),
			time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			"sunday belongs to the previous monday",
			time.Date(2026, 1, 11, 8, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			"week spanning a year boundary",
			time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
			time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(tt.now)
			if !got.Equal(tt.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestWeekEnd(t *testing.T) {
	now := time.Date(2026, 1, 7, 15, 30, 0, 0, time.UTC)
	want := time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)
	if got := WeekEnd(now); !got.Equal(want) {
		t.Errorf("WeekEnd = %v, want %v", got, want)
	}
}

func TestWeekStartPreservesLocation(t *testing.T) {
	loc := time.FixedZone("test", -5*3600)
	now := time.Date(2026, 1, 7, 1, 0, 0, 0, loc)
	got := WeekStart(now)
	if got.Location() != loc {
		t.Errorf("WeekStart location = %v, want %v", got.Location(), loc)
	}
}
