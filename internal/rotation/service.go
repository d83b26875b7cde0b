package rotation

import (
	"fmt"
	"time"

	"github.com/julianstephens/chorewheel/internal/models"
	"github.com/julianstephens/chorewheel/internal/storage"
	"github.com/julianstephens/chorewheel/internal/weekclock"
)

// Service runs every rotation command as a single load -> mutate -> save
// unit against the store, so two racing commands never lose updates. It
// holds no state of its own between operations.
type Service struct {
	store storage.Provider
	now   weekclock.NowFunc
	loc   *time.Location
}

// Option configures a Service.
type Option func(*Service)

// WithNowFunc overrides the time source (used in tests).
func WithNowFunc(now weekclock.NowFunc) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service on the given store, resolving times in loc.
func NewService(store storage.Provider, loc *time.Location, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now, loc: loc}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the current instant in the service's timezone.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

// mutate runs fn against freshly loaded state and persists the result. When
// fn fails, nothing is saved.
func (s *Service) mutate(fn func(*models.State) error) error {
	state, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	if err := fn(state); err != nil {
		return err
	}
	if err := s.store.Save(state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Register adds a participant to the rotation.
func (s *Service) Register(username, externalID string) error {
	return s.mutate(func(state *models.State) error {
		return Register(state, username, externalID)
	})
}

// SetShift assigns a slot administratively, overwriting any prior assignee.
func (s *Service) SetShift(day models.Day, period models.Period, username string) error {
	return s.mutate(func(state *models.State) error {
		return SetManual(state, day, period, username)
	})
}

// Claim takes over an unassigned slot.
func (s *Service) Claim(day models.Day, period models.Period, username string) error {
	return s.mutate(func(state *models.State) error {
		return Claim(state, day, period, username)
	})
}

// AutoFill distributes all 14 slots over the given pre-shuffled ordering.
func (s *Service) AutoFill(order []string) error {
	return s.mutate(func(state *models.State) error {
		return AutoFill(state, order)
	})
}

// Participants returns the current roster.
func (s *Service) Participants() ([]models.Participant, error) {
	state, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return state.Participants, nil
}

// Grid returns the 14 slots in canonical order.
func (s *Service) Grid() ([]SlotView, error) {
	state, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return View(state), nil
}

// CompleteToday records a completion for the caller's shift today. When the
// caller holds both of today's shifts, the morning one completes first; a
// second call completes the other.
func (s *Service) CompleteToday(username string) (models.CompletionEvent, error) {
	now := s.Now()
	today := weekclock.Today(now)
	var event models.CompletionEvent
	err := s.mutate(func(state *models.State) error {
		for _, period := range models.Periods {
			if state.Assignments[today][period] == username {
				event = RecordCompletion(state, username, today, period, now)
				return nil
			}
		}
		return ErrNoShiftToday
	})
	return event, err
}

// ReportUnavailable applies the reassignment policy to every slot the
// reporter holds today.
func (s *Service) ReportUnavailable(username string) ([]Outcome, error) {
	today := weekclock.Today(s.Now())
	var outcomes []Outcome
	err := s.mutate(func(state *models.State) error {
		var rerr error
		outcomes, rerr = Reassign(state, username, today)
		return rerr
	})
	return outcomes, err
}

// Sweep records misses for the given day's uncompleted assigned slots.
func (s *Service) Sweep(day models.Day) ([]models.MissEvent, error) {
	now := s.Now()
	var recorded []models.MissEvent
	err := s.mutate(func(state *models.State) error {
		recorded = SweepMisses(state, day, now)
		return nil
	})
	return recorded, err
}

// SetMode switches the reassignment policy between auto and manual.
func (s *Service) SetMode(mode models.RotationMode) error {
	return s.mutate(func(state *models.State) error {
		state.Mode = mode
		return nil
	})
}

// CurrentWeekKey returns the ISO week key for "now".
func (s *Service) CurrentWeekKey() string {
	return weekclock.WeekKey(s.Now())
}

// StatsForWeek aggregates the ledger for a week key.
func (s *Service) StatsForWeek(weekKey string) (WeekStats, error) {
	state, err := s.store.Load()
	if err != nil {
		return WeekStats{}, fmt.Errorf("failed to load state: %w", err)
	}
	return StatsForWeek(state, weekKey)
}

// WeekReport returns the ordered event listing for a week key.
func (s *Service) WeekReport(weekKey string) (WeekReport, error) {
	state, err := s.store.Load()
	if err != nil {
		return WeekReport{}, fmt.Errorf("failed to load state: %w", err)
	}
	return Report(state, weekKey)
}
