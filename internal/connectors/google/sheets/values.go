// Package sheets converts between Google Sheets API types and domain types.
package sheets

import (
	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/gproxy/internal/core/domain"
)

// ValueInputOption is the input option used for every write.
// Values are stored exactly as given, without formula or number parsing.
const ValueInputOption = domain.ValueInputRaw

// ToValueRange converts an API value range.
func ToValueRange(vr *sheets.ValueRange) *domain.ValueRange {
	if vr == nil {
		return &domain.ValueRange{}
	}
	return &domain.ValueRange{
		Range:          vr.Range,
		MajorDimension: vr.MajorDimension,
		Values:         domain.ValueMatrix(vr.Values),
	}
}

// FromValues builds the request body for an update or append.
func FromValues(rng string, values domain.ValueMatrix) *sheets.ValueRange {
	return &sheets.ValueRange{
		Range:          rng,
		MajorDimension: domain.DimensionRows,
		Values:         [][]interface{}(values),
	}
}

// ToUpdateResult converts an update response.
func ToUpdateResult(r *sheets.UpdateValuesResponse) *domain.UpdateResult {
	if r == nil {
		return &domain.UpdateResult{}
	}
	return &domain.UpdateResult{
		SpreadsheetID:  r.SpreadsheetId,
		UpdatedRange:   r.UpdatedRange,
		UpdatedRows:    r.UpdatedRows,
		UpdatedColumns: r.UpdatedColumns,
		UpdatedCells:   r.UpdatedCells,
	}
}

// ToAppendResult converts an append response.
func ToAppendResult(r *sheets.AppendValuesResponse) *domain.AppendResult {
	if r == nil {
		return &domain.AppendResult{}
	}
	return &domain.AppendResult{
		SpreadsheetID: r.SpreadsheetId,
		TableRange:    r.TableRange,
		Updates:       *ToUpdateResult(r.Updates),
	}
}

// ToClearResult converts a clear response.
func ToClearResult(r *sheets.ClearValuesResponse) *domain.ClearResult {
	if r == nil {
		return &domain.ClearResult{}
	}
	return &domain.ClearResult{SpreadsheetID: r.SpreadsheetId, ClearedRange: r.ClearedRange}
}

// ToBatch converts a batch get response.
func ToBatch(r *sheets.BatchGetValuesResponse) *domain.BatchValueRanges {
	out := &domain.BatchValueRanges{ValueRanges: []domain.ValueRange{}}
	if r == nil {
		return out
	}
	out.SpreadsheetID = r.SpreadsheetId
	for _, vr := range r.ValueRanges {
		out.ValueRanges = append(out.ValueRanges, *ToValueRange(vr))
	}
	return out
}

// ToMetadata converts a spreadsheet resource.
func ToMetadata(s *sheets.Spreadsheet) *domain.SpreadsheetMetadata {
	if s == nil {
		return &domain.SpreadsheetMetadata{}
	}
	md := &domain.SpreadsheetMetadata{
		SpreadsheetID:  s.SpreadsheetId,
		SpreadsheetURL: s.SpreadsheetUrl,
		Sheets:         []domain.Sheet{},
	}
	if s.Properties != nil {
		md.Properties = domain.SpreadsheetProperties{
			Title:    s.Properties.Title,
			Locale:   s.Properties.Locale,
			TimeZone: s.Properties.TimeZone,
		}
	}
	for _, sh := range s.Sheets {
		if sh == nil || sh.Properties == nil {
			continue
		}
		p := domain.SheetProperties{
			SheetID:   sh.Properties.SheetId,
			Title:     sh.Properties.Title,
			Index:     sh.Properties.Index,
			SheetType: sh.Properties.SheetType,
		}
		if g := sh.Properties.GridProperties; g != nil {
			p.GridProperties = domain.GridProperties{RowCount: g.RowCount, ColumnCount: g.ColumnCount}
		}
		md.Sheets = append(md.Sheets, domain.Sheet{Properties: p})
	}
	return md
}
