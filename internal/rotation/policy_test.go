package rotation

import (
	"errors"
	"testing"

	"github.com/julianstephens/chorewheel/internal/models"
)

func TestReassignAuto(t *testing.T) {
	t.Run("goes to the least loaded participant", func(t *testing.T) {
		s := newTestState(t, "alice", "bob")
		// alice holds 3 slots, bob 1
		mustSet(t, s, models.Monday, models.Morning, "alice")
		mustSet(t, s, models.Tuesday, models.Morning, "alice")
		mustSet(t, s, models.Wednesday, models.Morning, "alice")
		mustSet(t, s, models.Thursday, models.Morning, "bob")

		outcomes, err := Reassign(s, "alice", models.Monday)
		if err != nil {
			t.Fatalf("Reassign returned error: %v", err)
		}
		if len(outcomes) != 1 {
			t.Fatalf("outcomes = %d, want 1", len(outcomes))
		}
		if outcomes[0].Kind != OutcomeReassigned || outcomes[0].NewAssignee != "bob" {
			t.Errorf("outcome = %+v, want reassigned to bob", outcomes[0])
		}
		if got := s.Assignments[models.Monday][models.Morning]; got != "bob" {
			t.Errorf("slot assignee = %s, want bob", got)
		}
	})

	t.Run("reporter is excluded even when their count would win", func(t *testing.T) {
		s := newTestState(t, "alice", "bob")
		// alice holds only the reported slot; bob holds 5
		mustSet(t, s, models.Monday, models.Morning, "alice")
		mustSet(t, s, models.Tuesday, models.Morning, "bob")
		mustSet(t, s, models.Wednesday, models.Morning, "bob")
		mustSet(t, s, models.Thursday, models.Morning, "bob")
		mustSet(t, s, models.Friday, models.Morning, "bob")
		mustSet(t, s, models.Saturday, models.Morning, "bob")

		outcomes, err := Reassign(s, "alice", models.Monday)
		if err != nil {
			t.Fatalf("Reassign returned error: %v", err)
		}
		if outcomes[0].NewAssignee != "bob" {
			t.Errorf("new assignee = %s, want bob", outcomes[0].NewAssignee)
		}
	})

	t.Run("ties break by roster order", func(t *testing.T) {
		s := newTestState(t, "alice", "bob", "carol")
		mustSet(t, s, models.Monday, models.Morning, "alice")
		// bob and carol both hold zero slots; bob registered first

		outcomes, err := Reassign(s, "alice", models.Monday)
		if err != nil {
			t.Fatalf("Reassign returned error: %v", err)
		}
		if outcomes[0].NewAssignee != "bob" {
			t.Errorf("new assignee = %s, want bob (first in roster)", outcomes[0].NewAssignee)
		}
	})

	t.Run("handles both shifts of the day", func(t *testing.T) {
		s := newTestState(t, "alice", "bob")
		mustSet(t, s, models.Monday, models.Morning, "alice")
		mustSet(t, s, models.Monday, models.Night, "alice")

		outcomes, err := Reassign(s, "alice", models.Monday)
		if err != nil {
			t.Fatalf("Reassign returned error: %v", err)
		}
		if len(outcomes) != 2 {
			t.Errorf("outcomes = %d, want 2", len(outcomes))
		}
	})

	t.Run("sole participant clears instead", func(t *testing.T) {
		s := newTestState(t, "alice")
		mustSet(t, s, models.Monday, models.Morning, "alice")

		outcomes, err := Reassign(s, "alice", models.Monday)
		if err != nil {
			t.Fatalf("Reassign returned error: %v", err)
		}
		if outcomes[0].Kind != OutcomeCleared {
			t.Errorf("outcome = %+v, want cleared", outcomes[0])
		}
		if got := s.Assignments[models.Monday][models.Morning]; got != "" {
			t.Errorf("slot assignee = %s, want empty", got)
		}
	})
}

func TestReassignManual(t *testing.T) {
	s := newTestState(t, "alice", "bob")
	s.Mode = models.ModeManual
	mustSet(t, s, models.Monday, models.Morning, "alice")
	mustSet(t, s, models.Tuesday, models.Morning, "bob")

	outcomes, err := Reassign(s, "alice", models.Monday)
	if err != nil {
		t.Fatalf("Reassign returned error: %v", err)
	}
	if outcomes[0].Kind != OutcomeCleared || outcomes[0].NewAssignee != "" {
		t.Errorf("outcome = %+v, want cleared with no target", outcomes[0])
	}
	if got := s.Assignments[models.Monday][models.Morning]; got != "" {
		t.Errorf("slot assignee = %s, want empty", got)
	}
}

func TestReassignNoShift(t *testing.T) {
	s := newTestState(t, "alice", "bob")
	mustSet(t, s, models.Monday, models.Morning, "bob")

	if _, err := Reassign(s, "alice", models.Monday); !errors.Is(err, ErrNoShiftToday) {
		t.Errorf("error = %v, want ErrNoShiftToday", err)
	}
	if got := s.Assignments[models.Monday][models.Morning]; got != "bob" {
		t.Errorf("slot mutated on failed reassign: %s", got)
	}
}

func mustSet(t *testing.T, s *models.State, day models.Day, period models.Period, username string) {
	t.Helper()
	if err := SetManual(s, day, period, username); err != nil {
		t.Fatalf("SetManual(%s, %s, %s) returned error: %v", day, period, username, err)
	}
}
