// Package weekclock resolves wall-clock time to the rotation's calendar
// units: the timezone-local day of week and the ISO year-week bucket used
// by the completion ledger.
package weekclock

import (
	"fmt"
	"time"

	"github.com/julianstephens/chorewheel/internal/constants"
	"github.com/julianstephens/chorewheel/internal/models"
)

// NowFunc is an injectable time source.
type NowFunc func() time.Time

// LoadLocation loads an IANA timezone. "Local" or empty means the system
// timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// WeekKey returns the ISO year-week identifier (e.g. "2024-W07") for t.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// WeekBounds returns the Monday and Sunday dates (YYYY-MM-DD) of the week
// containing t.
func WeekBounds(t time.Time) (start, end string) {
	// time.Weekday is Sunday-based; shift so Monday is day 0.
	offset := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format(constants.DateFormat), sunday.Format(constants.DateFormat)
}

// Today returns the Day for t in its own location.
func Today(t time.Time) models.Day {
	return models.DayOf(t)
}
