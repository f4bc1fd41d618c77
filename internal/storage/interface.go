package storage

import (
	"github.com/julianstephens/habitdash/internal/migration"
	"github.com/julianstephens/habitdash/internal/models"
)

// Provider persists client-only dashboard preferences. It never stores habit
// data; that belongs to the backend.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Card order overrides, keyed by habit id
	GetCardOrder() (map[string]int, error)
	SaveCardOrder(ids []string) error
	ClearCardOrder() error

	// Utils
	SchemaStatus() (migration.Status, error)
	GetConfigPath() string
}

// Migrator is implemented by providers whose schema can be upgraded in place
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
}
