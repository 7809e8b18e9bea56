package google

import (
	"context"

	"google.golang.org/api/sheets/v4"

	gsheets "github.com/custodia-labs/gproxy/internal/connectors/google/sheets"
	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.SheetsClient = (*SheetsClient)(nil)

// SheetsClient implements driven.SheetsClient over the Sheets v4 API.
type SheetsClient struct {
	svc     *sheets.Service
	limiter *RateLimiter
}

// NewSheetsClient wraps an API service. A nil limiter uses the Sheets defaults.
func NewSheetsClient(svc *sheets.Service, limiter *RateLimiter) *SheetsClient {
	if limiter == nil {
		limiter = NewRateLimiter(domain.SurfaceSheets)
	}
	return &SheetsClient{svc: svc, limiter: limiter}
}

// GetValues reads one range.
func (c *SheetsClient) GetValues(ctx context.Context, spreadsheetID, rng string) (*domain.ValueRange, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err = c.done(err); err != nil {
		return nil, err
	}
	return gsheets.ToValueRange(resp), nil
}

// UpdateValues overwrites one range using RAW input.
func (c *SheetsClient) UpdateValues(
	ctx context.Context, spreadsheetID, rng string, values domain.ValueMatrix,
) (*domain.UpdateResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, rng, gsheets.FromValues(rng, values)).
		ValueInputOption(gsheets.ValueInputOption).
		Context(ctx).
		Do()
	if err = c.done(err); err != nil {
		return nil, err
	}
	return gsheets.ToUpdateResult(resp), nil
}

// AppendValues appends rows after the table found in the range using RAW input.
func (c *SheetsClient) AppendValues(
	ctx context.Context, spreadsheetID, rng string, values domain.ValueMatrix,
) (*domain.AppendResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Spreadsheets.Values.Append(spreadsheetID, rng, gsheets.FromValues(rng, values)).
		ValueInputOption(gsheets.ValueInputOption).
		Context(ctx).
		Do()
	if err = c.done(err); err != nil {
		return nil, err
	}
	return gsheets.ToAppendResult(resp), nil
}

// ClearValues clears one range.
func (c *SheetsClient) ClearValues(ctx context.Context, spreadsheetID, rng string) (*domain.ClearResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Spreadsheets.Values.Clear(spreadsheetID, rng, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err = c.done(err); err != nil {
		return nil, err
	}
	return gsheets.ToClearResult(resp), nil
}

// GetSpreadsheet returns spreadsheet and sheet properties.
func (c *SheetsClient) GetSpreadsheet(ctx context.Context, spreadsheetID string) (*domain.SpreadsheetMetadata, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err = c.done(err); err != nil {
		return nil, err
	}
	return gsheets.ToMetadata(resp), nil
}

// BatchGetValues reads several ranges in one call.
func (c *SheetsClient) BatchGetValues(
	ctx context.Context, spreadsheetID string, ranges []string,
) (*domain.BatchValueRanges, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Spreadsheets.Values.BatchGet(spreadsheetID).Ranges(ranges...).Context(ctx).Do()
	if err = c.done(err); err != nil {
		return nil, err
	}
	return gsheets.ToBatch(resp), nil
}

func (c *SheetsClient) done(err error) error {
	c.limiter.Observe(err)
	return WrapError(err)
}
