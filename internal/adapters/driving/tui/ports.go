// Package tui provides an interactive terminal user interface for sanumbers.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/sanumbers/internal/core/ports/driven"
	"github.com/custodia-labs/sanumbers/internal/core/ports/driving"
)

// Ports aggregates the services the TUI drives.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Selection owns the province, search and result state.
	Selection driving.SelectionService

	// Actions calls or copies a service's number. Optional.
	Actions driving.ContactActionService

	// Settings manages application settings. Optional; the settings view
	// reports it as unavailable when nil.
	Settings driving.SettingsService

	// Watcher reports changed province files. Optional.
	Watcher driven.DataWatcher
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(selection driving.SelectionService, actions driving.ContactActionService) *Ports {
	return &Ports{
		Selection: selection,
		Actions:   actions,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Selection == nil {
		return ErrMissingSelectionService
	}
	return nil
}
