package models

import (
	"fmt"
	"strings"
	"time"
)

// Day is a day of the week, Monday-first.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// Days is the canonical slot-fill order.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Period is one of the two daily shift periods.
type Period string

const (
	Morning Period = "morning"
	Night   Period = "night"
)

// Periods is the within-day slot-fill order.
var Periods = []Period{Morning, Night}

// SlotCount is the fixed number of shift slots in a week.
var SlotCount = len(Days) * len(Periods)

// ParseDay parses a day name case-insensitively.
func ParseDay(s string) (Day, error) {
	for _, d := range Days {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid day: %s", s)
}

// ParsePeriod parses a period name case-insensitively.
func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid period: %s (must be morning or night)", s)
}

// DayOf returns the Day for a wall-clock instant.
func DayOf(t time.Time) Day {
	return Day(t.Weekday().String())
}

// ValidSlot reports whether (day, period) is one of the 14 fixed slots.
func ValidSlot(day Day, period Period) bool {
	_, derr := ParseDay(string(day))
	_, perr := ParsePeriod(string(period))
	return derr == nil && perr == nil
}
