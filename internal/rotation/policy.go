package rotation

import "github.com/julianstephens/chorewheel/internal/models"

// OutcomeKind describes what the reassignment policy did with a slot.
type OutcomeKind string

const (
	// OutcomeReassigned means the slot moved to another participant.
	OutcomeReassigned OutcomeKind = "reassigned"
	// OutcomeCleared means the slot was opened for self-service claim.
	OutcomeCleared OutcomeKind = "cleared"
)

// Outcome is the result of handling one slot of an unavailability report.
type Outcome struct {
	Day         models.Day
	Period      models.Period
	Kind        OutcomeKind
	NewAssignee string // set when Kind is OutcomeReassigned
}

// Reassign handles an unavailability report for username on the given day.
// Every slot the reporter holds that day is handled: in auto mode the slot
// goes to the least-loaded other participant (ties broken by roster order);
// in manual mode the slot is cleared for open claim. Returns ErrNoShiftToday
// when the reporter holds no slot that day. No miss is recorded here; the
// sweep does that if nobody completes the shift.
func Reassign(s *models.State, username string, day models.Day) ([]Outcome, error) {
	if _, err := models.ParseDay(string(day)); err != nil {
		return nil, ErrInvalidSlot
	}

	var outcomes []Outcome
	for _, period := range models.Periods {
		if s.Assignments[day][period] != username {
			continue
		}
		switch s.Mode {
		case models.ModeManual:
			s.Assignments[day][period] = ""
			outcomes = append(outcomes, Outcome{Day: day, Period: period, Kind: OutcomeCleared})
		default: // auto
			next := leastLoaded(s, username)
			if next == "" {
				// Nobody else to hand the shift to; open it instead.
				s.Assignments[day][period] = ""
				outcomes = append(outcomes, Outcome{Day: day, Period: period, Kind: OutcomeCleared})
				continue
			}
			s.Assignments[day][period] = next
			outcomes = append(outcomes, Outcome{Day: day, Period: period, Kind: OutcomeReassigned, NewAssignee: next})
		}
	}
	if len(outcomes) == 0 {
		return nil, ErrNoShiftToday
	}
	return outcomes, nil
}

// leastLoaded picks the participant holding the fewest slots across the full
// grid, excluding the reporter entirely. Ties break toward the participant
// registered first.
func leastLoaded(s *models.State, exclude string) string {
	counts := Loads(s)
	best := ""
	bestCount := -1
	for _, p := range s.Participants {
		if p.Username == exclude {
			continue
		}
		if bestCount == -1 || counts[p.Username] < bestCount {
			best = p.Username
			bestCount = counts[p.Username]
		}
	}
	return best
}
