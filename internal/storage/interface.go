package storage

import "github.com/julianstephens/chorewheel/internal/models"

// Provider persists the single rotation State. Load must synthesize a
// default State when nothing has been persisted yet or the persisted form
// is malformed, and every loaded State passes through models.Normalize.
// Save must be atomic with respect to concurrent loads: a reader never
// observes a torn write.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	Load() (*models.State, error)
	Save(*models.State) error

	// Utils
	GetConfigPath() string
}
