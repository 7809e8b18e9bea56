package services

import (
	"context"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driving"
	"github.com/custodia-labs/gproxy/internal/logger"
)

// Ensure the fallback decorators implement the interfaces.
var (
	_ driving.SheetsService = (*FallbackSheets)(nil)
	_ driving.DriveService  = (*FallbackDrive)(nil)
)

// FallbackSheets serves demo data on read operations while no credential is
// configured and enabled reports true. Writes always reach the wrapped service.
type FallbackSheets struct {
	driving.SheetsService
	demo    driving.DemoService
	enabled func() bool
}

// NewFallbackSheets wraps inner. enabled is read on every call so the switch
// can change at runtime.
func NewFallbackSheets(inner driving.SheetsService, demo driving.DemoService, enabled func() bool) *FallbackSheets {
	return &FallbackSheets{SheetsService: inner, demo: demo, enabled: enabled}
}

func (f *FallbackSheets) active() bool {
	return f.demo != nil && f.enabled != nil && f.enabled() && !f.SheetsService.Configured()
}

// Configured is true when the wrapped service is configured or demo data is served.
func (f *FallbackSheets) Configured() bool {
	return f.SheetsService.Configured() || f.active()
}

// ReadRange returns sample values in degraded mode.
func (f *FallbackSheets) ReadRange(ctx context.Context, spreadsheetID, rng string) (*domain.ValueRange, error) {
	if f.active() && spreadsheetID != "" && rng != "" {
		logger.Debug("serving sample values for %s", rng)
		return f.demo.SampleValues(rng), nil
	}
	return f.SheetsService.ReadRange(ctx, spreadsheetID, rng)
}

// GetMetadata returns sample metadata in degraded mode.
func (f *FallbackSheets) GetMetadata(ctx context.Context, spreadsheetID string) (*domain.SpreadsheetMetadata, error) {
	if f.active() && spreadsheetID != "" {
		return f.demo.SampleMetadata(spreadsheetID), nil
	}
	return f.SheetsService.GetMetadata(ctx, spreadsheetID)
}

// BatchGetRanges returns sample values for every range in degraded mode.
func (f *FallbackSheets) BatchGetRanges(
	ctx context.Context,
	spreadsheetID string,
	ranges []string,
) (*domain.BatchValueRanges, error) {
	if f.active() && spreadsheetID != "" && len(ranges) > 0 {
		out := &domain.BatchValueRanges{SpreadsheetID: spreadsheetID}
		for _, r := range ranges {
			out.ValueRanges = append(out.ValueRanges, *f.demo.SampleValues(r))
		}
		return out, nil
	}
	return f.SheetsService.BatchGetRanges(ctx, spreadsheetID, ranges)
}

// FallbackDrive serves demo data on read operations while no credential is
// configured and enabled reports true. Mutations always reach the wrapped service.
type FallbackDrive struct {
	driving.DriveService
	demo    driving.DemoService
	enabled func() bool
}

// NewFallbackDrive wraps inner. enabled is read on every call.
func NewFallbackDrive(inner driving.DriveService, demo driving.DemoService, enabled func() bool) *FallbackDrive {
	return &FallbackDrive{DriveService: inner, demo: demo, enabled: enabled}
}

func (f *FallbackDrive) active() bool {
	return f.demo != nil && f.enabled != nil && f.enabled() && !f.DriveService.Configured()
}

// Configured is true when the wrapped service is configured or demo data is served.
func (f *FallbackDrive) Configured() bool {
	return f.DriveService.Configured() || f.active()
}

// ListFiles returns the sample listing in degraded mode.
func (f *FallbackDrive) ListFiles(ctx context.Context, folderID string) ([]domain.File, error) {
	if f.active() {
		return f.demo.SampleFiles(), nil
	}
	return f.DriveService.ListFiles(ctx, folderID)
}

// GetMetadata returns a sample file in degraded mode.
func (f *FallbackDrive) GetMetadata(ctx context.Context, fileID string) (*domain.File, error) {
	if !f.active() || fileID == "" {
		return f.DriveService.GetMetadata(ctx, fileID)
	}
	files := f.demo.SampleFiles()
	for i := range files {
		if files[i].ID == fileID {
			return &files[i], nil
		}
	}
	return &domain.File{ID: fileID, Name: "Sample file", MimeType: domain.MimeTypeOctetStream}, nil
}
