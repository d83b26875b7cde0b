package models

import "fmt"

// Participant is a registered member of the rotation. Username is the
// unique, case-sensitive identity key; ExternalID is only used for
// out-of-band reminder delivery. Participants are never removed.
type Participant struct {
	Username   string `json:"username"`
	ExternalID string `json:"user_id"`
}

func (p *Participant) Validate() error {
	if p.Username == "" {
		return fmt.Errorf("participant username cannot be empty")
	}
	return nil
}

// RotationMode controls what happens to a slot when its assignee reports
// unavailability.
type RotationMode string

const (
	// ModeAuto reassigns the slot to the least-loaded other participant.
	ModeAuto RotationMode = "auto"
	// ModeManual clears the slot so anyone can take it.
	ModeManual RotationMode = "manual"
)

// ParseRotationMode parses a rotation mode name.
func ParseRotationMode(s string) (RotationMode, error) {
	switch RotationMode(s) {
	case ModeAuto, ModeManual:
		return RotationMode(s), nil
	default:
		return "", fmt.Errorf("invalid rotation mode: %s (must be auto or manual)", s)
	}
}

// State is the single persisted root object. Every mutating operation loads,
// mutates, and saves the whole State as one unit.
type State struct {
	Participants  []Participant             `json:"participants"`
	Assignments   map[Day]map[Period]string `json:"assignments"`
	CompletionLog []CompletionEvent         `json:"completion_log"`
	MissLog       []MissEvent               `json:"miss_log"`
	Weeks         map[string]*WeekSnapshot  `json:"weekly_stats"`
	Mode          RotationMode              `json:"mode"`
}

// DefaultState returns a fresh State: empty roster, all 14 slots
// unassigned, auto mode.
func DefaultState() *State {
	return Normalize(&State{})
}

// Normalize repairs a loaded State in place, defaulting any missing fields
// so that older or partially-written persisted forms keep loading. It
// guarantees every one of the 14 slot keys exists.
func Normalize(s *State) *State {
	if s == nil {
		s = &State{}
	}
	if s.Participants == nil {
		s.Participants = []Participant{}
	}
	if s.Assignments == nil {
		s.Assignments = make(map[Day]map[Period]string, len(Days))
	}
	for _, day := range Days {
		if s.Assignments[day] == nil {
			s.Assignments[day] = make(map[Period]string, len(Periods))
		}
		for _, period := range Periods {
			if _, ok := s.Assignments[day][period]; !ok {
				s.Assignments[day][period] = ""
			}
		}
	}
	if s.CompletionLog == nil {
		s.CompletionLog = []CompletionEvent{}
	}
	if s.MissLog == nil {
		s.MissLog = []MissEvent{}
	}
	if s.Weeks == nil {
		s.Weeks = make(map[string]*WeekSnapshot)
	}
	for _, week := range s.Weeks {
		if week.Completed == nil {
			week.Completed = []CompletionEvent{}
		}
		if week.Missed == nil {
			week.Missed = []MissEvent{}
		}
	}
	if s.Mode != ModeAuto && s.Mode != ModeManual {
		s.Mode = ModeAuto
	}
	return s
}
