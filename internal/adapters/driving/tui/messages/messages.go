// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/sanumbers/internal/core/domain"
)

// ProvinceChosen is sent when the user picks a province in the picker.
type ProvinceChosen struct {
	Province string
}

// ProvinceLoaded carries a finished load back to the event loop.
// The result is applied only if it answers the latest selection.
type ProvinceLoaded struct {
	Result domain.LoadResult
}

// DataChanged is sent when the data watcher reports a changed resource key.
type DataChanged struct {
	Key string
}

// WatchStopped is sent when the data watcher channel closes.
type WatchStopped struct{}

// ActionKind identifies a contact action.
type ActionKind int

const (
	// ActionCall dials the phone number.
	ActionCall ActionKind = iota
	// ActionCopy copies the phone number.
	ActionCopy
)

// String returns the label of the action.
func (k ActionKind) String() string {
	switch k {
	case ActionCall:
		return "Call"
	case ActionCopy:
		return "Copy"
	default:
		return "unknown"
	}
}

// ActionCompleted reports the outcome of a call or copy.
type ActionCompleted struct {
	Kind   ActionKind
	Record domain.ServiceRecord
	Err    error
}

// StatusExpired clears a transient status message if it is still the one shown.
type StatusExpired struct {
	ID int
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewProvinces is the province picker.
	ViewProvinces ViewType = iota
	// ViewLookup is the town search and results view.
	ViewLookup
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings shows the data source settings.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewProvinces:
		return "provinces"
	case ViewLookup:
		return "lookup"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
