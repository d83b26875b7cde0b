package rotation

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/chorewheel/internal/models"
	"github.com/julianstephens/chorewheel/internal/weekclock"
)

// UserStats is one participant's line in a weekly breakdown.
type UserStats struct {
	Completed int
	Missed    int
	// Rate is completed/(completed+missed), defined as 0 when the user
	// has no events yet.
	Rate float64
}

// WeekStats aggregates a week's ledger.
type WeekStats struct {
	WeekKey        string
	CompletedCount int
	MissedCount    int
	CompletionRate float64
	PerUser        map[string]UserStats
}

// WeekReport is the raw ordered event listing for a week.
type WeekReport struct {
	WeekKey   string
	WeekStart string
	WeekEnd   string
	Completed []models.CompletionEvent
	Missed    []models.MissEvent
}

// snapshotFor returns the week's snapshot, creating it lazily with bounds
// computed from now.
func snapshotFor(s *models.State, now time.Time) (string, *models.WeekSnapshot) {
	key := weekclock.WeekKey(now)
	week, ok := s.Weeks[key]
	if !ok {
		start, end := weekclock.WeekBounds(now)
		week = &models.WeekSnapshot{
			WeekStart: start,
			WeekEnd:   end,
			Completed: []models.CompletionEvent{},
			Missed:    []models.MissEvent{},
		}
		s.Weeks[key] = week
	}
	return key, week
}

// RecordCompletion appends a completion to the global log and the current
// week's snapshot. Deliberately not idempotent: two records for the same
// slot on the same day are two completions.
func RecordCompletion(s *models.State, username string, day models.Day, period models.Period, now time.Time) models.CompletionEvent {
	event := models.CompletionEvent{
		ID:        uuid.New().String(),
		Username:  username,
		Day:       day,
		Period:    period,
		Timestamp: now,
	}
	_, week := snapshotFor(s, now)
	s.CompletionLog = append(s.CompletionLog, event)
	week.Completed = append(week.Completed, event)
	return event
}

// RecordMiss appends a miss to the global log and the snapshot of the week
// containing now.
func RecordMiss(s *models.State, username string, day models.Day, period models.Period, now time.Time) models.MissEvent {
	event := models.MissEvent{
		ID:       uuid.New().String(),
		Username: username,
		Day:      day,
		Period:   period,
	}
	_, week := snapshotFor(s, now)
	s.MissLog = append(s.MissLog, event)
	week.Missed = append(week.Missed, event)
	return event
}

// StatsForWeek aggregates the week's ledger. The week-level completion rate
// is undefined when no events were recorded, so that case returns
// ErrNoEvents rather than dividing by zero; per-user rates in a week that
// does have events are defined as 0 for users with no events.
func StatsForWeek(s *models.State, weekKey string) (WeekStats, error) {
	stats := WeekStats{WeekKey: weekKey, PerUser: make(map[string]UserStats, len(s.Participants))}

	week, ok := s.Weeks[weekKey]
	if ok {
		stats.CompletedCount = len(week.Completed)
		stats.MissedCount = len(week.Missed)
	}
	total := stats.CompletedCount + stats.MissedCount
	if total == 0 {
		return WeekStats{}, ErrNoEvents
	}
	stats.CompletionRate = float64(stats.CompletedCount) / float64(total)

	for _, p := range s.Participants {
		stats.PerUser[p.Username] = UserStats{}
	}
	for _, c := range week.Completed {
		if u, ok := stats.PerUser[c.Username]; ok {
			u.Completed++
			stats.PerUser[c.Username] = u
		}
	}
	for _, m := range week.Missed {
		if u, ok := stats.PerUser[m.Username]; ok {
			u.Missed++
			stats.PerUser[m.Username] = u
		}
	}
	for username, u := range stats.PerUser {
		if t := u.Completed + u.Missed; t > 0 {
			u.Rate = float64(u.Completed) / float64(t)
			stats.PerUser[username] = u
		}
	}
	return stats, nil
}

// Report returns the week's ordered event listing, or ErrNoWeekData when no
// snapshot exists for the key.
func Report(s *models.State, weekKey string) (WeekReport, error) {
	week, ok := s.Weeks[weekKey]
	if !ok {
		return WeekReport{}, ErrNoWeekData
	}
	return WeekReport{
		WeekKey:   weekKey,
		WeekStart: week.WeekStart,
		WeekEnd:   week.WeekEnd,
		Completed: week.Completed,
		Missed:    week.Missed,
	}, nil
}
