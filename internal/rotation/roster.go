package rotation

import "github.com/julianstephens/chorewheel/internal/models"

// Register adds a participant to the roster. It returns
// ErrAlreadyRegistered if the username is already present; usernames are
// opaque, case-sensitive identity keys.
func Register(s *models.State, username, externalID string) error {
	if Exists(s, username) {
		return ErrAlreadyRegistered
	}
	p := models.Participant{Username: username, ExternalID: externalID}
	if err := p.Validate(); err != nil {
		return err
	}
	s.Participants = append(s.Participants, p)
	return nil
}

// Exists reports whether username is registered.
func Exists(s *models.State, username string) bool {
	_, ok := FindParticipant(s, username)
	return ok
}

// FindParticipant looks a participant up by username.
func FindParticipant(s *models.State, username string) (models.Participant, bool) {
	for _, p := range s.Participants {
		if p.Username == username {
			return p, true
		}
	}
	return models.Participant{}, false
}
