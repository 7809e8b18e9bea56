package mcp

import (
	"github.com/custodia-labs/gproxy/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Sheets proxies spreadsheet operations.
	Sheets driving.SheetsService

	// Drive proxies file operations.
	Drive driving.DriveService

	// Credentials reports where the service-account key came from. Optional.
	Credentials driving.CredentialService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Sheets == nil {
		return ErrMissingSheetsService
	}
	if p.Drive == nil {
		return ErrMissingDriveService
	}
	return nil
}
