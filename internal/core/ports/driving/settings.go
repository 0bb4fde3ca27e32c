package driving

import "github.com/custodia-labs/treestore/internal/core/domain"

// SettingsService manages server settings.
type SettingsService interface {
	// Get returns effective settings: defaults, then stored configuration,
	// then any overlay.
	Get() (*domain.ServerSettings, error)

	// Save persists settings to the config store.
	Save(settings *domain.ServerSettings) error

	// Set parses and stores a single setting by key.
	Set(key, value string) error

	// Keys returns the recognised setting keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.ServerSettings
}
