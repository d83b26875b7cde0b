// Package scheduler runs the recurring reminder triggers: one per
// (day, period) slot, fixed at a local wall-clock time, plus the nightly
// miss sweep. Triggers only read state and call the notifier; the sweep is
// the single mutating job and is wired in explicitly.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/chorewheel/internal/constants"
	"github.com/julianstephens/chorewheel/internal/logger"
	"github.com/julianstephens/chorewheel/internal/models"
	"github.com/julianstephens/chorewheel/internal/rotation"
	"github.com/julianstephens/chorewheel/internal/weekclock"
)

// Notifier delivers a reminder to a participant's external ID.
type Notifier interface {
	Notify(externalID, message string) error
}

// StateLoader is the read-only slice of the store the scheduler needs.
type StateLoader interface {
	Load() (*models.State, error)
}

// Trigger is one recurring reminder: fire at local time At on every Day,
// reminding whoever is assigned to (Day, Period).
type Trigger struct {
	Day    models.Day
	Period models.Period
	At     string // HH:MM
}

// Key identifies a trigger; re-registering the same key replaces the
// existing trigger instead of duplicating it.
func (t Trigger) Key() string {
	return fmt.Sprintf("%s-%s", t.Day, t.Period)
}

type triggerState struct {
	Trigger
	lastFired string // minute key of the most recent firing
}

// SweepFunc records misses for a day's uncompleted shifts.
type SweepFunc func(day models.Day) ([]models.MissEvent, error)

// Scheduler owns the trigger table. Trigger definitions are static for the
// process lifetime; state is re-read on every firing.
type Scheduler struct {
	mu       sync.Mutex
	store    StateLoader
	notifier Notifier
	loc      *time.Location
	now      weekclock.NowFunc
	triggers map[string]*triggerState

	sweep     SweepFunc
	sweepAt   string
	lastSwept string
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithNowFunc overrides the time source (used in tests).
func WithNowFunc(now weekclock.NowFunc) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithMissSweep enables the nightly sweep at the given local time.
func WithMissSweep(at string, fn SweepFunc) Option {
	return func(s *Scheduler) {
		s.sweepAt = at
		s.sweep = fn
	}
}

// New creates a Scheduler resolving trigger times in loc.
func New(store StateLoader, notifier Notifier, loc *time.Location, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:    store,
		notifier: notifier,
		loc:      loc,
		now:      time.Now,
		triggers: make(map[string]*triggerState),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a trigger, replacing any existing trigger with the same
// (day, period) key.
func (s *Scheduler) Register(t Trigger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.triggers[t.Key()] = &triggerState{Trigger: t}
}

// RegisterShiftTriggers installs the 14 standard triggers: 08:00 for every
// morning slot and 16:00 for every night slot. Safe to call again after a
// restart; existing triggers are replaced, not duplicated.
func (s *Scheduler) RegisterShiftTriggers() {
	for _, day := range models.Days {
		s.Register(Trigger{Day: day, Period: models.Morning, At: constants.MorningReminderTime})
		s.Register(Trigger{Day: day, Period: models.Night, At: constants.NightReminderTime})
	}
}

// Triggers returns a snapshot of the registered triggers.
func (s *Scheduler) Triggers() []Trigger {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Trigger, 0, len(s.triggers))
	for _, t := range s.triggers {
		out = append(out, t.Trigger)
	}
	return out
}

// Start runs the trigger loop until ctx is cancelled. Each due trigger
// fires in its own goroutine so one slow or failing delivery never delays
// the others.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(20 * time.Second)
	defer ticker.Stop()

	logger.Info("Reminder scheduler started", "triggers", len(s.triggers))

	s.Tick()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Reminder scheduler stopped")
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick fires every trigger due at the current minute.
func (s *Scheduler) Tick() {
	now := s.now().In(s.loc)
	today := weekclock.Today(now)
	hhmm := now.Format(constants.TimeFormat)
	minuteKey := now.Format("2006-01-02 15:04")

	s.mu.Lock()
	var due []Trigger
	for _, t := range s.triggers {
		if t.Day == today && t.At == hhmm && t.lastFired != minuteKey {
			t.lastFired = minuteKey
			due = append(due, t.Trigger)
		}
	}
	runSweep := s.sweep != nil && s.sweepAt == hhmm && s.lastSwept != minuteKey
	if runSweep {
		s.lastSwept = minuteKey
	}
	s.mu.Unlock()

	for _, t := range due {
		go func(t Trigger) {
			if err := s.fire(t); err != nil {
				logger.Error("Reminder delivery failed", "day", t.Day, "period", t.Period, "error", err)
			}
		}(t)
	}

	if runSweep {
		go func() {
			missed, err := s.sweep(today)
			if err != nil {
				logger.Error("Miss sweep failed", "day", today, "error", err)
				return
			}
			logger.Info("Miss sweep complete", "day", today, "recorded", len(missed))
		}()
	}
}

// fire looks up the slot's assignee and sends the reminder. An unassigned
// slot is a logged no-op, not an error.
func (s *Scheduler) fire(t Trigger) error {
	state, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	username := state.Assignments[t.Day][t.Period]
	if username == "" {
		logger.Info("No one assigned, skipping reminder", "day", t.Day, "period", t.Period)
		return nil
	}

	participant, ok := rotation.FindParticipant(state, username)
	if !ok {
		logger.Warn("Assignee is not on the roster", "username", username, "day", t.Day, "period", t.Period)
		return nil
	}

	message := fmt.Sprintf("Reminder: you are assigned to the %s shift on %s. Run 'chorewheel done' once it's finished.", t.Period, t.Day)
	if err := s.notifier.Notify(participant.ExternalID, message); err != nil {
		return err
	}

	logger.Info("Reminder sent", "username", username, "day", t.Day, "period", t.Period)
	return nil
}
