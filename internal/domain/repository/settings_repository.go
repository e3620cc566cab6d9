package repository

import "github.com/stratera/pos-api/internal/domain/entity"

// SettingsRepository is the port for the singleton business settings row.
// Get returns nil when the row has not been seeded; callers fall back to
// entity.DefaultSettings().
type SettingsRepository interface {
	Get() (*entity.BusinessSettings, error)
	Upsert(settings *entity.BusinessSettings) error
}
