package tui

import "errors"

// ErrMissingSelectionService is returned when the selection service is not provided.
var ErrMissingSelectionService = errors.New("tui: selection service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
