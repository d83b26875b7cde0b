package rotation

import (
	"time"

	"github.com/julianstephens/chorewheel/internal/models"
	"github.com/julianstephens/chorewheel/internal/weekclock"
)

// SweepMisses records a MissEvent for each of the day's slots that has an
// assignee but no completion in the week containing now. Re-running the
// sweep for the same day and week records nothing new, so the nightly
// trigger and the manual command can overlap safely.
func SweepMisses(s *models.State, day models.Day, now time.Time) []models.MissEvent {
	var recorded []models.MissEvent
	weekKey := weekclock.WeekKey(now)
	for _, period := range models.Periods {
		assignee := s.Assignments[day][period]
		if assignee == "" {
			continue
		}
		if week, ok := s.Weeks[weekKey]; ok {
			if hasCompletion(week, assignee, day, period) || hasMiss(week, assignee, day, period) {
				continue
			}
		}
		recorded = append(recorded, RecordMiss(s, assignee, day, period, now))
	}
	return recorded
}

func hasCompletion(week *models.WeekSnapshot, username string, day models.Day, period models.Period) bool {
	for _, c := range week.Completed {
		if c.Username == username && c.Day == day && c.Period == period {
			return true
		}
	}
	return false
}

func hasMiss(week *models.WeekSnapshot, username string, day models.Day, period models.Period) bool {
	for _, m := range week.Missed {
		if m.Username == username && m.Day == day && m.Period == period {
			return true
		}
	}
	return false
}
