// Package mcp provides an MCP (Model Context Protocol) server adapter for gproxy.
// It exposes the Sheets and Drive proxy to AI assistants as tools.
package mcp

import "errors"

// Errors returned when required ports are missing.
var (
	ErrMissingSheetsService = errors.New("mcp: sheets service is required")
	ErrMissingDriveService  = errors.New("mcp: drive service is required")
)
