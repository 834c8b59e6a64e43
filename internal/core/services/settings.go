package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/sanumbers/internal/core/domain"
	"github.com/custodia-labs/sanumbers/internal/core/ports/driven"
	"github.com/custodia-labs/sanumbers/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeySourceKind    = domain.SettingSourceKind
	KeySourceRoot    = domain.SettingSourceRoot
	KeySourceBaseURL = domain.SettingSourceBaseURL
	KeySourceRPS     = domain.SettingSourceRPS
	KeyWatchEnabled  = domain.SettingWatchEnabled
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Source: domain.SourceSettings{
			Kind:              s.getSourceKind(defaults.Source.Kind),
			Root:              s.getString(KeySourceRoot, defaults.Source.Root),
			BaseURL:           s.configStore.GetString(KeySourceBaseURL),
			RequestsPerSecond: s.getInt(KeySourceRPS, defaults.Source.RequestsPerSecond),
		},
		Watch: s.getBool(KeyWatchEnabled, defaults.Watch),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.Validate(settings); err != nil {
		return err
	}

	if err := s.configStore.Set(KeySourceKind, settings.Source.Kind.String()); err != nil {
		return fmt.Errorf("save source kind: %w", err)
	}
	if err := s.configStore.Set(KeySourceRoot, settings.Source.Root); err != nil {
		return fmt.Errorf("save source root: %w", err)
	}
	if err := s.configStore.Set(KeySourceBaseURL, settings.Source.BaseURL); err != nil {
		return fmt.Errorf("save source base_url: %w", err)
	}
	if err := s.configStore.Set(KeySourceRPS, settings.Source.RequestsPerSecond); err != nil {
		return fmt.Errorf("save source requests_per_second: %w", err)
	}
	if err := s.configStore.Set(KeyWatchEnabled, settings.Watch); err != nil {
		return fmt.Errorf("save watch enabled: %w", err)
	}

	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case KeySourceKind:
		settings.Source.Kind = domain.SourceKind(value)
	case KeySourceRoot:
		settings.Source.Root = value
	case KeySourceBaseURL:
		settings.Source.BaseURL = value
	case KeySourceRPS:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.Source.RequestsPerSecond = n
	case KeyWatchEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		settings.Watch = b
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Validate checks that the settings describe a usable data source.
func (s *SettingsService) Validate(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are nil", domain.ErrInvalidInput)
	}
	if !settings.Source.Kind.IsValid() {
		return fmt.Errorf("%w: invalid source kind: %s", domain.ErrInvalidInput, settings.Source.Kind)
	}
	if settings.Source.Kind == domain.SourceKindHTTP && settings.Source.BaseURL == "" {
		return fmt.Errorf("%w: base_url is required for http sources", domain.ErrInvalidInput)
	}
	if settings.Source.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests_per_second cannot be negative", domain.ErrInvalidInput)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getSourceKind(defaultVal domain.SourceKind) domain.SourceKind {
	val := s.configStore.GetString(KeySourceKind)
	if val == "" {
		return defaultVal
	}
	kind := domain.SourceKind(val)
	if !kind.IsValid() {
		return defaultVal
	}
	return kind
}
