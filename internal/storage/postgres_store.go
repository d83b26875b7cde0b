package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"

	_ "github.com/lib/pq"

	"github.com/julianstephens/chorewheel/internal/logger"
	"github.com/julianstephens/chorewheel/internal/models"
)

// PostgresStore keeps the State as a single jsonb document. The state is
// always loaded and saved whole, so a one-row upsert gives the same atomic
// unit as the file stores without a relational schema to migrate.
type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{connStr: connStr}
}

// HasEmbeddedCredentials reports whether a connection string carries a
// password inline. Those are refused; the DSN belongs in the OS keyring.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil || u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

func (s *PostgresStore) Init() error {
	if err := s.open(); err != nil {
		return err
	}
	return s.Save(models.DefaultState())
}

func (s *PostgresStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS chorewheel_state (
		id         INTEGER PRIMARY KEY CHECK (id = 1),
		doc        JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	s.db = db
	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *PostgresStore) Load() (*models.State, error) {
	if err := s.open(); err != nil {
		return nil, err
	}

	var doc []byte
	err := s.db.QueryRow(`SELECT doc FROM chorewheel_state WHERE id = 1`).Scan(&doc)
	if err == sql.ErrNoRows {
		return models.DefaultState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	state := &models.State{}
	if err := json.Unmarshal(doc, state); err != nil {
		logger.Warn("Persisted state is malformed, starting from defaults", "error", err)
		return models.DefaultState(), nil
	}
	return models.Normalize(state), nil
}

func (s *PostgresStore) Save(state *models.State) error {
	if err := s.open(); err != nil {
		return err
	}

	doc, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO chorewheel_state (id, doc, updated_at) VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
	`, doc)
	if err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetConfigPath() string {
	return s.connStr
}
