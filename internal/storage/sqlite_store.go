package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/chorewheel/internal/models"
)

// SQLiteStore persists the State in a SQLite database. Each Save rewrites
// the state inside one transaction, which is the atomic unit the rotation
// commands rely on.
type SQLiteStore struct {
	mu   sync.Mutex
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS participants (
		username    TEXT PRIMARY KEY,
		external_id TEXT NOT NULL,
		position    INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS slots (
		day      TEXT NOT NULL,
		period   TEXT NOT NULL,
		assignee TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (day, period)
	)`,
	`CREATE TABLE IF NOT EXISTS completion_log (
		id          TEXT PRIMARY KEY,
		username    TEXT NOT NULL,
		day         TEXT NOT NULL,
		period      TEXT NOT NULL,
		recorded_at TEXT NOT NULL,
		position    INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS miss_log (
		id       TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		day      TEXT NOT NULL,
		period   TEXT NOT NULL,
		position INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS week_snapshots (
		week_key   TEXT PRIMARY KEY,
		week_start TEXT NOT NULL,
		week_end   TEXT NOT NULL,
		completed  TEXT NOT NULL,
		missed     TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := s.open(); err != nil {
		return err
	}
	return s.Save(models.DefaultState())
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	for _, stmt := range sqliteSchema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) Load() (*models.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return nil, err
	}

	state := &models.State{}

	rows, err := s.db.Query(`SELECT username, external_id FROM participants ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.Username, &p.ExternalID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		state.Participants = append(state.Participants, p)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	state.Assignments = make(map[models.Day]map[models.Period]string)
	rows, err = s.db.Query(`SELECT day, period, assignee FROM slots`)
	if err != nil {
		return nil, fmt.Errorf("failed to load slots: %w", err)
	}
	for rows.Next() {
		var day, period, assignee string
		if err := rows.Scan(&day, &period, &assignee); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		d := models.Day(day)
		if state.Assignments[d] == nil {
			state.Assignments[d] = make(map[models.Period]string)
		}
		state.Assignments[d][models.Period(period)] = assignee
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`SELECT id, username, day, period, recorded_at FROM completion_log ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load completion log: %w", err)
	}
	for rows.Next() {
		var e models.CompletionEvent
		var recordedAt string
		if err := rows.Scan(&e.ID, &e.Username, &e.Day, &e.Period, &recordedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		t, err := time.Parse(time.RFC3339, recordedAt)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to parse completion timestamp: %w", err)
		}
		e.Timestamp = t
		state.CompletionLog = append(state.CompletionLog, e)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`SELECT id, username, day, period FROM miss_log ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load miss log: %w", err)
	}
	for rows.Next() {
		var e models.MissEvent
		if err := rows.Scan(&e.ID, &e.Username, &e.Day, &e.Period); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan miss: %w", err)
		}
		state.MissLog = append(state.MissLog, e)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	state.Weeks = make(map[string]*models.WeekSnapshot)
	rows, err = s.db.Query(`SELECT week_key, week_start, week_end, completed, missed FROM week_snapshots`)
	if err != nil {
		return nil, fmt.Errorf("failed to load week snapshots: %w", err)
	}
	for rows.Next() {
		var key, completedJSON, missedJSON string
		week := &models.WeekSnapshot{}
		if err := rows.Scan(&key, &week.WeekStart, &week.WeekEnd, &completedJSON, &missedJSON); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan week snapshot: %w", err)
		}
		if err := json.Unmarshal([]byte(completedJSON), &week.Completed); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to unmarshal completed events: %w", err)
		}
		if err := json.Unmarshal([]byte(missedJSON), &week.Missed); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to unmarshal missed events: %w", err)
		}
		state.Weeks[key] = week
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	var mode string
	err = s.db.QueryRow(`SELECT value FROM meta WHERE key = 'mode'`).Scan(&mode)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to load mode: %w", err)
	}
	state.Mode = models.RotationMode(mode)

	return models.Normalize(state), nil
}

func (s *SQLiteStore) Save(state *models.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"participants", "slots", "completion_log", "miss_log", "week_snapshots", "meta"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, p := range state.Participants {
		if _, err := tx.Exec(`INSERT INTO participants (username, external_id, position) VALUES (?, ?, ?)`,
			p.Username, p.ExternalID, i); err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for day, periods := range state.Assignments {
		for period, assignee := range periods {
			if _, err := tx.Exec(`INSERT INTO slots (day, period, assignee) VALUES (?, ?, ?)`,
				string(day), string(period), assignee); err != nil {
				return fmt.Errorf("failed to insert slot: %w", err)
			}
		}
	}

	for i, e := range state.CompletionLog {
		if _, err := tx.Exec(`INSERT INTO completion_log (id, username, day, period, recorded_at, position) VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, e.Username, string(e.Day), string(e.Period), e.Timestamp.Format(time.RFC3339), i); err != nil {
			return fmt.Errorf("failed to insert completion: %w", err)
		}
	}

	for i, e := range state.MissLog {
		if _, err := tx.Exec(`INSERT INTO miss_log (id, username, day, period, position) VALUES (?, ?, ?, ?, ?)`,
			e.ID, e.Username, string(e.Day), string(e.Period), i); err != nil {
			return fmt.Errorf("failed to insert miss: %w", err)
		}
	}

	for key, week := range state.Weeks {
		completedJSON, err := json.Marshal(week.Completed)
		if err != nil {
			return fmt.Errorf("failed to marshal completed events: %w", err)
		}
		missedJSON, err := json.Marshal(week.Missed)
		if err != nil {
			return fmt.Errorf("failed to marshal missed events: %w", err)
		}
		if _, err := tx.Exec(`INSERT INTO week_snapshots (week_key, week_start, week_end, completed, missed) VALUES (?, ?, ?, ?, ?)`,
			key, week.WeekStart, week.WeekEnd, string(completedJSON), string(missedJSON)); err != nil {
			return fmt.Errorf("failed to insert week snapshot: %w", err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES ('mode', ?)`, string(state.Mode)); err != nil {
		return fmt.Errorf("failed to insert mode: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit state: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
