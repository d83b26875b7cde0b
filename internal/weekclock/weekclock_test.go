package weekclock

import (
	"testing"
	"time"

	"github.com/julianstephens/chorewheel/internal/models"
)

func TestWeekKey(t *testing.T) {
	t.Run("mid-year week", func(t *testing.T) {
		// Monday, March 4th 2024 is ISO week 10
		now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
		if got := WeekKey(now); got != "2024-W10" {
			t.Errorf("WeekKey = %s, want 2024-W10", got)
		}
	})

	t.Run("single digit week is zero padded", func(t *testing.T) {
		now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
		if got := WeekKey(now); got != "2024-W02" {
			t.Errorf("WeekKey = %s, want 2024-W02", got)
		}
	})

	t.Run("year boundary uses ISO year", func(t *testing.T) {
		// December 30th 2024 belongs to ISO week 1 of 2025
		now := time.Date(2024, 12, 30, 9, 0, 0, 0, time.UTC)
		if got := WeekKey(now); got != "2025-W01" {
			t.Errorf("WeekKey = %s, want 2025-W01", got)
		}
	})
}

func TestWeekBounds(t *testing.T) {
	cases := []struct {
		name       string
		now        time.Time
		start, end string
	}{
		{"from a Wednesday", time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC), "2024-03-04", "2024-03-10"},
		{"from the Monday itself", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), "2024-03-04", "2024-03-10"},
		{"from the Sunday", time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC), "2024-03-04", "2024-03-10"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := WeekBounds(tc.now)
			if start != tc.start || end != tc.end {
				t.Errorf("WeekBounds = (%s, %s), want (%s, %s)", start, end, tc.start, tc.end)
			}
		})
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) // a Saturday
	if got := Today(now); got != models.Saturday {
		t.Errorf("Today = %s, want Saturday", got)
	}
}

func TestLoadLocation(t *testing.T) {
	t.Run("Local and empty mean system timezone", func(t *testing.T) {
		for _, tz := range []string{"", "Local"} {
			loc, err := LoadLocation(tz)
			if err != nil {
				t.Fatalf("LoadLocation(%q) returned error: %v", tz, err)
			}
			if loc != time.Local {
				t.Errorf("LoadLocation(%q) != time.Local", tz)
			}
		}
	})

	t.Run("IANA name", func(t *testing.T) {
		if _, err := LoadLocation("Asia/Kolkata"); err != nil {
			t.Errorf("LoadLocation(Asia/Kolkata) returned error: %v", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		if _, err := LoadLocation("Not/AZone"); err == nil {
			t.Error("LoadLocation(Not/AZone) should fail")
		}
	})
}
