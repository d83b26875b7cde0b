package rotation

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/chorewheel/internal/models"
	"github.com/julianstephens/chorewheel/internal/storage"
)

func newTestService(t *testing.T, now time.Time) *Service {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "state.json"))
	return NewService(store, time.UTC, WithNowFunc(func() time.Time { return now }))
}

func TestServiceFlow(t *testing.T) {
	// Monday, March 4th 2024: ISO week 2024-W10
	svc := newTestService(t, week10)

	if err := svc.Register("alice", "id-alice"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := svc.Register("bob", "id-bob"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := svc.AutoFill([]string{"alice", "bob"}); err != nil {
		t.Fatalf("AutoFill returned error: %v", err)
	}

	t.Run("grid survives the store round trip", func(t *testing.T) {
		rows, err := svc.Grid()
		if err != nil {
			t.Fatalf("Grid returned error: %v", err)
		}
		if len(rows) != models.SlotCount {
			t.Fatalf("grid rows = %d, want %d", len(rows), models.SlotCount)
		}
		if rows[0].Assignee != "alice" || rows[1].Assignee != "bob" {
			t.Errorf("fill order = %s,%s, want alice,bob", rows[0].Assignee, rows[1].Assignee)
		}
	})

	t.Run("done completes today's shift", func(t *testing.T) {
		// alice holds Monday morning after the alternating fill
		event, err := svc.CompleteToday("alice")
		if err != nil {
			t.Fatalf("CompleteToday returned error: %v", err)
		}
		if event.Day != models.Monday || event.Period != models.Morning {
			t.Errorf("completed %s/%s, want Monday/morning", event.Day, event.Period)
		}

		stats, err := svc.StatsForWeek(svc.CurrentWeekKey())
		if err != nil {
			t.Fatalf("StatsForWeek returned error: %v", err)
		}
		if stats.CompletedCount != 1 {
			t.Errorf("completedCount = %d, want 1", stats.CompletedCount)
		}
	})

	t.Run("done without a shift today", func(t *testing.T) {
		if err := svc.Register("carol", "id-carol"); err != nil {
			t.Fatal(err)
		}
		if _, err := svc.CompleteToday("carol"); !errors.Is(err, ErrNoShiftToday) {
			t.Errorf("error = %v, want ErrNoShiftToday", err)
		}
	})
}

func TestServiceCompleteTodayPrefersMorning(t *testing.T) {
	svc := newTestService(t, week10)
	if err := svc.Register("alice", "id-alice"); err != nil {
		t.Fatal(err)
	}
	if err := svc.SetShift(models.Monday, models.Morning, "alice"); err != nil {
		t.Fatal(err)
	}
	if err := svc.SetShift(models.Monday, models.Night, "alice"); err != nil {
		t.Fatal(err)
	}

	first, err := svc.CompleteToday("alice")
	if err != nil {
		t.Fatalf("first CompleteToday returned error: %v", err)
	}
	second, err := svc.CompleteToday("alice")
	if err != nil {
		t.Fatalf("second CompleteToday returned error: %v", err)
	}
	if first.Period != models.Morning || second.Period != models.Morning {
		t.Errorf("periods = %s,%s; completion targets the first matching shift", first.Period, second.Period)
	}
}

func TestServiceReportUnavailable(t *testing.T) {
	svc := newTestService(t, week10)
	for _, u := range []string{"alice", "bob"} {
		if err := svc.Register(u, "id-"+u); err != nil {
			t.Fatal(err)
		}
	}
	if err := svc.SetShift(models.Monday, models.Morning, "alice"); err != nil {
		t.Fatal(err)
	}

	outcomes, err := svc.ReportUnavailable("alice")
	if err != nil {
		t.Fatalf("ReportUnavailable returned error: %v", err)
	}
	if len(outcomes) != 1 || outcomes[0].NewAssignee != "bob" {
		t.Fatalf("outcomes = %+v, want one reassignment to bob", outcomes)
	}

	rows, err := svc.Grid()
	if err != nil {
		t.Fatal(err)
	}
	if rows[0].Assignee != "bob" {
		t.Errorf("persisted assignee = %s, want bob", rows[0].Assignee)
	}
}

func TestServiceSweepAndMode(t *testing.T) {
	svc := newTestService(t, week10)
	if err := svc.Register("alice", "id-alice"); err != nil {
		t.Fatal(err)
	}
	if err := svc.SetShift(models.Monday, models.Morning, "alice"); err != nil {
		t.Fatal(err)
	}

	recorded, err := svc.Sweep(models.Monday)
	if err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}
	if len(recorded) != 1 {
		t.Fatalf("recorded %d misses, want 1", len(recorded))
	}
	// rerunning the sweep must not duplicate the miss
	again, err := svc.Sweep(models.Monday)
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 0 {
		t.Errorf("second sweep recorded %d misses, want 0", len(again))
	}

	report, err := svc.WeekReport("2024-W10")
	if err != nil {
		t.Fatalf("WeekReport returned error: %v", err)
	}
	if len(report.Missed) != 1 {
		t.Errorf("report misses = %d, want 1", len(report.Missed))
	}

	if err := svc.SetMode(models.ModeManual); err != nil {
		t.Fatalf("SetMode returned error: %v", err)
	}
	outcomes, err := svc.ReportUnavailable("alice")
	if err != nil {
		t.Fatal(err)
	}
	if outcomes[0].Kind != OutcomeCleared {
		t.Errorf("manual mode outcome = %+v, want cleared", outcomes[0])
	}
}

func TestServiceCurrentWeekKey(t *testing.T) {
	svc := newTestService(t, week10)
	if got := svc.CurrentWeekKey(); got != "2024-W10" {
		t.Errorf("CurrentWeekKey = %s, want 2024-W10", got)
	}
}
