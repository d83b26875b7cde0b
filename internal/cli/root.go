package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/chorewheel/internal/models"
	"github.com/julianstephens/chorewheel/internal/rotation"
	"github.com/julianstephens/chorewheel/internal/storage"
)

// Context carries the wired collaborators into every command's Run.
type Context struct {
	Service   *rotation.Service
	Store     storage.Provider
	User      string // acting username, from --user
	ConfigDir string
	Location  *time.Location
}

// RequireUser returns the acting username or an error when --user was not
// provided and could not be derived from the environment.
func (c *Context) RequireUser() (string, error) {
	if c.User == "" {
		return "", fmt.Errorf("no acting user; pass --user or set CHOREWHEEL_USER")
	}
	return c.User, nil
}

// ParseSlot parses and validates a (day, period) pair from command input.
func ParseSlot(dayStr, periodStr string) (models.Day, models.Period, error) {
	day, err := models.ParseDay(dayStr)
	if err != nil {
		return "", "", err
	}
	period, err := models.ParsePeriod(periodStr)
	if err != nil {
		return "", "", err
	}
	return day, period, nil
}

// FormatOutcome renders one reassignment outcome for the terminal.
func FormatOutcome(o rotation.Outcome) string {
	switch o.Kind {
	case rotation.OutcomeReassigned:
		return fmt.Sprintf("%s %s shift reassigned to @%s", o.Day, o.Period, o.NewAssignee)
	default:
		return fmt.Sprintf("%s %s shift is now open; anyone can run 'chorewheel take %s %s'", o.Day, o.Period, o.Day, o.Period)
	}
}
