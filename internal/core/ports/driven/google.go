package driven

import (
	"context"

	"github.com/custodia-labs/gproxy/internal/core/domain"
)

// SheetsClient issues Google Sheets API calls with an authorised identity.
// Each method performs exactly one API round trip.
type SheetsClient interface {
	// GetValues reads one range.
	GetValues(ctx context.Context, spreadsheetID, rng string) (*domain.ValueRange, error)

	// UpdateValues overwrites one range using RAW input.
	UpdateValues(ctx context.Context, spreadsheetID, rng string, values domain.ValueMatrix) (*domain.UpdateResult, error)

	// AppendValues appends rows after the table found in the range using RAW input.
	AppendValues(ctx context.Context, spreadsheetID, rng string, values domain.ValueMatrix) (*domain.AppendResult, error)

	// ClearValues clears one range.
	ClearValues(ctx context.Context, spreadsheetID, rng string) (*domain.ClearResult, error)

	// GetSpreadsheet returns spreadsheet and sheet properties.
	GetSpreadsheet(ctx context.Context, spreadsheetID string) (*domain.SpreadsheetMetadata, error)

	// BatchGetValues reads several ranges in one call.
	BatchGetValues(ctx context.Context, spreadsheetID string, ranges []string) (*domain.BatchValueRanges, error)
}

// DriveClient issues Google Drive API calls with an authorised identity.
// Each method performs exactly one API round trip.
type DriveClient interface {
	// ListFiles returns the first page of non-trashed files, optionally within a folder.
	ListFiles(ctx context.Context, folderID string) ([]domain.File, error)

	// GetFile returns file metadata.
	GetFile(ctx context.Context, fileID string) (*domain.File, error)

	// DeleteFile permanently deletes a file.
	DeleteFile(ctx context.Context, fileID string) error

	// CreatePermission grants a user access to a file.
	CreatePermission(ctx context.Context, fileID, email string, role domain.PermissionRole) (*domain.Permission, error)

	// RenameFile changes a file's name.
	RenameFile(ctx context.Context, fileID, name string) (*domain.File, error)

	// CreateFolder creates a folder, optionally inside a parent.
	CreateFolder(ctx context.Context, name, parentID string) (*domain.File, error)

	// UploadFile creates a file with content.
	UploadFile(ctx context.Context, upload domain.Upload) (*domain.File, error)
}

// ClientFactory builds authorised clients from a credential.
// Construction may be slow (key parsing, discovery); callers memoise the result.
type ClientFactory interface {
	// NewSheetsClient builds a Sheets client scoped for domain.SurfaceSheets.
	NewSheetsClient(ctx context.Context, cred domain.Credential) (SheetsClient, error)

	// NewDriveClient builds a Drive client scoped for domain.SurfaceDrive.
	NewDriveClient(ctx context.Context, cred domain.Credential) (DriveClient, error)
}

// CallOutcome labels the result of an upstream call.
type CallOutcome string

const (
	OutcomeSuccess CallOutcome = "success"
	OutcomeError   CallOutcome = "error"
)

// ProxyObserver records proxy activity. Implementations must be safe for concurrent use.
type ProxyObserver interface {
	// ObserveCall records one forwarded API call.
	ObserveCall(surface domain.Surface, op string, outcome CallOutcome)

	// ObserveClientInit records one client construction attempt.
	ObserveClientInit(surface domain.Surface, outcome CallOutcome)
}
