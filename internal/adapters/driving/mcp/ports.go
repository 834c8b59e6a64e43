package mcp

import (
	"github.com/custodia-labs/sanumbers/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Loader loads province datasets.
	Loader driving.ProvinceLoader

	// NewSelection creates a selection container. Each tool call gets its own
	// so concurrent clients never see each other's search.
	NewSelection func() driving.SelectionService

	// Check runs the coverage check. Optional.
	Check driving.CheckService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Loader == nil {
		return ErrMissingLoader
	}
	if p.NewSelection == nil {
		return ErrMissingSelection
	}
	return nil
}
