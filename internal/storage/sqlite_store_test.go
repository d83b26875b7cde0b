package storage

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/chorewheel/internal/models"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	defer store.Close()

	want := testState()
	if err := store.Save(want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	assertStateEqual(t, got, want)
}

func TestSQLiteStoreEmptyDatabase(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	defer store.Close()

	state, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(state.Participants) != 0 || state.Mode != models.ModeAuto {
		t.Errorf("empty database should normalize to defaults, got %+v", state)
	}
	if len(state.Assignments) != len(models.Days) {
		t.Errorf("assignment days = %d, want %d", len(state.Assignments), len(models.Days))
	}
}

func TestSQLiteStoreSaveOverwrites(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	defer store.Close()

	first := testState()
	if err := store.Save(first); err != nil {
		t.Fatal(err)
	}

	second := models.DefaultState()
	second.Participants = append(second.Participants, models.Participant{Username: "carol", ExternalID: "id-carol"})
	if err := store.Save(second); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Participants) != 1 || got.Participants[0].Username != "carol" {
		t.Errorf("participants after overwrite = %+v, want only carol", got.Participants)
	}
	if len(got.CompletionLog) != 0 || len(got.MissLog) != 0 {
		t.Errorf("logs after overwrite = (%d, %d), want empty", len(got.CompletionLog), len(got.MissLog))
	}
}
