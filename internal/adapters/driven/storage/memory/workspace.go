package memory

import (
	"context"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
)

// Ensure Workspace implements the interface.
var _ driven.ClientFactory = (*Workspace)(nil)

// Workspace pairs an in-memory Sheets and Drive backend and hands them out
// as clients for any credential. It lets gproxy run without Google access.
type Workspace struct {
	Sheets *Spreadsheets
	Drive  *Drive
}

// NewWorkspace creates an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{
		Sheets: NewSpreadsheets(),
		Drive:  NewDrive(),
	}
}

// AddSpreadsheet creates a spreadsheet and its Drive file entry.
func (w *Workspace) AddSpreadsheet(id, title string, sheetTitles ...string) {
	w.Sheets.AddSpreadsheet(id, title, sheetTitles...)
	w.Drive.AddFile(domain.File{ID: id, Name: title, MimeType: domain.MimeTypeSpreadsheet})
}

// NewSheetsClient returns the shared Sheets backend.
func (w *Workspace) NewSheetsClient(_ context.Context, _ domain.Credential) (driven.SheetsClient, error) {
	return w.Sheets, nil
}

// NewDriveClient returns the shared Drive backend.
func (w *Workspace) NewDriveClient(_ context.Context, _ domain.Credential) (driven.DriveClient, error) {
	return w.Drive, nil
}
