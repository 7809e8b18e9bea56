package services

import (
	"context"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
	"github.com/custodia-labs/gproxy/internal/core/ports/driving"
)

// Ensure SheetsProxy implements the interface.
var _ driving.SheetsService = (*SheetsProxy)(nil)

// SheetsProxy forwards Sheets operations to the cached client.
type SheetsProxy struct {
	cache    *ClientCache
	observer driven.ProxyObserver
}

// NewSheetsProxy creates a Sheets proxy over the cache. observer may be nil.
func NewSheetsProxy(cache *ClientCache, observer driven.ProxyObserver) *SheetsProxy {
	return &SheetsProxy{cache: cache, observer: observer}
}

// Configured reports whether a credential was resolved.
func (s *SheetsProxy) Configured() bool {
	return s.cache.Configured()
}

// ReadRange reads one range.
func (s *SheetsProxy) ReadRange(ctx context.Context, spreadsheetID, rng string) (*domain.ValueRange, error) {
	if spreadsheetID == "" || rng == "" {
		return nil, domain.Validation(domain.MsgMissingSpreadsheetRange)
	}
	return forward(ctx, s.call("read_range", "read sheet"), s.observer, s.cache.Sheets,
		func(c driven.SheetsClient) (*domain.ValueRange, error) {
			return c.GetValues(ctx, spreadsheetID, rng)
		})
}

// WriteRange overwrites one range with RAW values.
func (s *SheetsProxy) WriteRange(
	ctx context.Context,
	spreadsheetID, rng string,
	values domain.ValueMatrix,
) (*domain.UpdateResult, error) {
	if spreadsheetID == "" || rng == "" || values == nil {
		return nil, domain.Validation(domain.MsgMissingSpreadsheetRangeValues)
	}
	return forward(ctx, s.call("write_range", "write sheet"), s.observer, s.cache.Sheets,
		func(c driven.SheetsClient) (*domain.UpdateResult, error) {
			return c.UpdateValues(ctx, spreadsheetID, rng, values)
		})
}

// AppendRange appends rows with RAW values.
func (s *SheetsProxy) AppendRange(
	ctx context.Context,
	spreadsheetID, rng string,
	values domain.ValueMatrix,
) (*domain.AppendResult, error) {
	if spreadsheetID == "" || rng == "" || values == nil {
		return nil, domain.Validation(domain.MsgMissingSpreadsheetRangeValues)
	}
	return forward(ctx, s.call("append_range", "append sheet"), s.observer, s.cache.Sheets,
		func(c driven.SheetsClient) (*domain.AppendResult, error) {
			return c.AppendValues(ctx, spreadsheetID, rng, values)
		})
}

// ClearRange clears one range.
func (s *SheetsProxy) ClearRange(ctx context.Context, spreadsheetID, rng string) (*domain.ClearResult, error) {
	if spreadsheetID == "" || rng == "" {
		return nil, domain.Validation(domain.MsgMissingSpreadsheetRange)
	}
	return forward(ctx, s.call("clear_range", "clear sheet"), s.observer, s.cache.Sheets,
		func(c driven.SheetsClient) (*domain.ClearResult, error) {
			return c.ClearValues(ctx, spreadsheetID, rng)
		})
}

// GetMetadata returns spreadsheet properties.
func (s *SheetsProxy) GetMetadata(ctx context.Context, spreadsheetID string) (*domain.SpreadsheetMetadata, error) {
	if spreadsheetID == "" {
		return nil, domain.Validation(domain.MsgMissingSpreadsheetID)
	}
	return forward(ctx, s.call("get_metadata", "get metadata"), s.observer, s.cache.Sheets,
		func(c driven.SheetsClient) (*domain.SpreadsheetMetadata, error) {
			return c.GetSpreadsheet(ctx, spreadsheetID)
		})
}

// BatchGetRanges reads several ranges in one call.
func (s *SheetsProxy) BatchGetRanges(
	ctx context.Context,
	spreadsheetID string,
	ranges []string,
) (*domain.BatchValueRanges, error) {
	if spreadsheetID == "" || len(ranges) == 0 {
		return nil, domain.Validation(domain.MsgMissingSpreadsheetRanges)
	}
	return forward(ctx, s.call("batch_get", "batch get"), s.observer, s.cache.Sheets,
		func(c driven.SheetsClient) (*domain.BatchValueRanges, error) {
			return c.BatchGetValues(ctx, spreadsheetID, ranges)
		})
}

func (s *SheetsProxy) call(op, verb string) proxyCall {
	return proxyCall{surface: domain.SurfaceSheets, op: op, verb: verb}
}
