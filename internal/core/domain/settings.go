package domain

const unknownDescription = "Unknown"

// Setting keys accepted by the settings service. They double as config store keys.
const (
	SettingSourceKind    = "source.kind"
	SettingSourceRoot    = "source.root"
	SettingSourceBaseURL = "source.base_url"
	SettingSourceRPS     = "source.requests_per_second"
	SettingWatchEnabled  = "watch.enabled"
)

// SourceKind selects where province data resources are read from.
type SourceKind string

// Available source kinds.
const (
	// SourceKindFile reads <root>/<key>.json from a local directory.
	SourceKindFile SourceKind = "file"

	// SourceKindHTTP reads <base_url>/<key>.json from a static web root.
	SourceKindHTTP SourceKind = "http"
)

// IsValid returns true if the source kind is recognised.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceKindFile, SourceKindHTTP:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k SourceKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the kind.
func (k SourceKind) Description() string {
	switch k {
	case SourceKindFile:
		return "Local directory"
	case SourceKindHTTP:
		return "Static web root"
	default:
		return unknownDescription
	}
}

// SourceSettings configures the province data source.
type SourceSettings struct {
	// Kind selects the adapter.
	Kind SourceKind

	// Root is the data directory for SourceKindFile.
	Root string

	// BaseURL is the data root URL for SourceKindHTTP.
	BaseURL string

	// RequestsPerSecond throttles SourceKindHTTP. Zero means unlimited.
	RequestsPerSecond int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Source holds data source settings.
	Source SourceSettings

	// Watch reloads the selected province when its file changes (file sources only).
	Watch bool
}

// DefaultAppSettings returns settings with sensible defaults.
// Root is left empty; adapters resolve it to ~/.sanumbers/data.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Source: SourceSettings{
			Kind: SourceKindFile,
		},
		Watch: true,
	}
}
