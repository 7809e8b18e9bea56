package driving

import (
	"context"

	"github.com/custodia-labs/gproxy/internal/core/domain"
)

// SheetsService proxies Google Sheets operations.
// Failures are *domain.Error values with caller-facing messages.
type SheetsService interface {
	// Configured reports whether calls can reach Google.
	Configured() bool

	// ReadRange reads one A1 range.
	ReadRange(ctx context.Context, spreadsheetID, rng string) (*domain.ValueRange, error)

	// WriteRange overwrites one A1 range.
	WriteRange(ctx context.Context, spreadsheetID, rng string, values domain.ValueMatrix) (*domain.UpdateResult, error)

	// AppendRange appends rows to the table at the A1 range.
	AppendRange(ctx context.Context, spreadsheetID, rng string, values domain.ValueMatrix) (*domain.AppendResult, error)

	// ClearRange clears one A1 range.
	ClearRange(ctx context.Context, spreadsheetID, rng string) (*domain.ClearResult, error)

	// GetMetadata returns spreadsheet properties and sheets.
	GetMetadata(ctx context.Context, spreadsheetID string) (*domain.SpreadsheetMetadata, error)

	// BatchGetRanges reads several A1 ranges.
	BatchGetRanges(ctx context.Context, spreadsheetID string, ranges []string) (*domain.BatchValueRanges, error)
}
