package driving

import "github.com/custodia-labs/sanumbers/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by its config key (for example "source.kind").
	Set(key, value string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Validate checks that the settings describe a usable data source.
	Validate(settings *domain.AppSettings) error
}
