package rotation

import "github.com/julianstephens/chorewheel/internal/models"

// SlotView is one row of the rendered grid.
type SlotView struct {
	Day      models.Day
	Period   models.Period
	Assignee string // empty when unassigned
}

// Assignee returns the current assignee of a slot, or an empty string when
// the slot is open.
func Assignee(s *models.State, day models.Day, period models.Period) (string, error) {
	if !models.ValidSlot(day, period) {
		return "", ErrInvalidSlot
	}
	return s.Assignments[day][period], nil
}

// SetManual assigns a slot unconditionally, overwriting any prior assignee.
// This is the administrative path; it never returns ErrAlreadyAssigned.
func SetManual(s *models.State, day models.Day, period models.Period, username string) error {
	if !models.ValidSlot(day, period) {
		return ErrInvalidSlot
	}
	if !Exists(s, username) {
		return ErrUnknownUser
	}
	s.Assignments[day][period] = username
	return nil
}

// Claim is the self-service path: it assigns a slot only when it is
// currently unassigned.
func Claim(s *models.State, day models.Day, period models.Period, username string) error {
	if !models.ValidSlot(day, period) {
		return ErrInvalidSlot
	}
	if !Exists(s, username) {
		return ErrUnknownUser
	}
	if s.Assignments[day][period] != "" {
		return ErrAlreadyAssigned
	}
	s.Assignments[day][period] = username
	return nil
}

// AutoFill fills all 14 slots by cycling through the given ordering in slot
// order (Mon morning, Mon night, Tue morning, ...). The ordering is expected
// to be pre-shuffled by the caller; the fill itself is deterministic so
// distribution stays as even as 14/n allows.
func AutoFill(s *models.State, order []string) error {
	if len(order) == 0 {
		return ErrEmptyOrder
	}
	i := 0
	for _, day := range models.Days {
		for _, period := range models.Periods {
			s.Assignments[day][period] = order[i%len(order)]
			i++
		}
	}
	return nil
}

// View returns all 14 slots in canonical order for rendering.
func View(s *models.State) []SlotView {
	rows := make([]SlotView, 0, models.SlotCount)
	for _, day := range models.Days {
		for _, period := range models.Periods {
			rows = append(rows, SlotView{
				Day:      day,
				Period:   period,
				Assignee: s.Assignments[day][period],
			})
		}
	}
	return rows
}

// Loads counts how many slots each registered participant currently holds.
func Loads(s *models.State) map[string]int {
	counts := make(map[string]int, len(s.Participants))
	for _, p := range s.Participants {
		counts[p.Username] = 0
	}
	for _, day := range models.Days {
		for _, period := range models.Periods {
			if assigned := s.Assignments[day][period]; assigned != "" {
				if _, ok := counts[assigned]; ok {
					counts[assigned]++
				}
			}
		}
	}
	return counts
}
