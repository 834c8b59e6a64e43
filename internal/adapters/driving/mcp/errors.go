// Package mcp provides an MCP (Model Context Protocol) server adapter for sanumbers.
// It lets AI assistants look up South African emergency contacts by province and town.
package mcp

import "errors"

var (
	// ErrMissingLoader is returned when the province loader is not provided.
	ErrMissingLoader = errors.New("mcp: province loader is required")

	// ErrMissingSelection is returned when no selection factory is provided.
	ErrMissingSelection = errors.New("mcp: selection factory is required")
)
