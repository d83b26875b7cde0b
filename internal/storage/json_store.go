package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/julianstephens/chorewheel/internal/logger"
	"github.com/julianstephens/chorewheel/internal/models"
)

// JSONStore keeps the whole State in one JSON file. Saves write a temp file
// and rename it over the original, so concurrent loads always see a
// complete document; the mutex serializes writers in-process.
type JSONStore struct {
	mu   sync.Mutex
	path string
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	return s.Save(models.DefaultState())
}

func (s *JSONStore) Close() error {
	return nil
}

// Load reads the persisted State. A missing or unparsable file yields a
// fresh default state rather than an error, so a corrupted file never
// blocks startup.
func (s *JSONStore) Load() (*models.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultState(), nil
		}
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}

	state := &models.State{}
	if err := json.Unmarshal(data, state); err != nil {
		logger.Warn("State file is malformed, starting from defaults", "path", s.path, "error", err)
		return models.DefaultState(), nil
	}

	return models.Normalize(state), nil
}

func (s *JSONStore) Save(state *models.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".chorewheel-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set storage permissions: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
