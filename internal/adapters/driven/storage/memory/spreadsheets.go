package memory

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
)

// Ensure Spreadsheets implements the interface.
var _ driven.SheetsClient = (*Spreadsheets)(nil)

// Default grid size of a new sheet, matching Google Sheets.
const (
	DefaultRowCount    = 1000
	DefaultColumnCount = 26
)

type grid struct {
	id    int64
	title string
	rows  int
	cols  int
	cells [][]any
}

type spreadsheet struct {
	id       string
	title    string
	locale   string
	timeZone string
	sheets   []*grid
}

// Spreadsheets is an in-memory implementation of driven.SheetsClient.
// Values are stored exactly as written and read back unformatted.
type Spreadsheets struct {
	mu     sync.RWMutex
	byID   map[string]*spreadsheet
	nextID int64
}

// NewSpreadsheets creates an empty in-memory spreadsheet backend.
func NewSpreadsheets() *Spreadsheets {
	return &Spreadsheets{
		byID: make(map[string]*spreadsheet),
	}
}

// AddSpreadsheet creates a spreadsheet with the given tabs.
// With no tab titles a single "Sheet1" is created.
func (s *Spreadsheets) AddSpreadsheet(id, title string, sheetTitles ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(sheetTitles) == 0 {
		sheetTitles = []string{"Sheet1"}
	}
	ss := &spreadsheet{id: id, title: title, locale: "en_US", timeZone: "Etc/GMT"}
	for _, t := range sheetTitles {
		ss.sheets = append(ss.sheets, &grid{id: s.nextID, title: t, rows: DefaultRowCount, cols: DefaultColumnCount})
		s.nextID++
	}
	s.byID[id] = ss
}

// GetValues reads one range. Trailing empty rows and cells are omitted.
func (s *Spreadsheets) GetValues(_ context.Context, spreadsheetID, rng string) (*domain.ValueRange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, r, err := s.resolve(spreadsheetID, rng)
	if err != nil {
		return nil, err
	}
	return &domain.ValueRange{
		Range:          g.bounded(r).String(),
		MajorDimension: domain.DimensionRows,
		Values:         g.read(r),
	}, nil
}

// UpdateValues overwrites the cells starting at the range origin.
func (s *Spreadsheets) UpdateValues(
	_ context.Context, spreadsheetID, rng string, values domain.ValueMatrix,
) (*domain.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, r, err := s.resolve(spreadsheetID, rng)
	if err != nil {
		return nil, err
	}
	r = anchor(r)
	col, row := r.Origin()
	if err := checkFits(r, col, row, values); err != nil {
		return nil, err
	}
	res := g.write(col, row, values)
	res.SpreadsheetID = spreadsheetID
	return res, nil
}

// AppendValues writes values below the last non-empty row of the table
// found in the range.
func (s *Spreadsheets) AppendValues(
	_ context.Context, spreadsheetID, rng string, values domain.ValueMatrix,
) (*domain.AppendResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, r, err := s.resolve(spreadsheetID, rng)
	if err != nil {
		return nil, err
	}

	r = anchor(r)
	col, row := r.Origin()
	out := &domain.AppendResult{SpreadsheetID: spreadsheetID}
	if last := g.lastRow(r); last >= row {
		table := domain.A1Range{Sheet: g.title, StartCol: col, StartRow: row, EndCol: g.lastCol(r), EndRow: last}
		out.TableRange = table.String()
		row = last + 1
	}
	res := g.write(col, row, values)
	res.SpreadsheetID = spreadsheetID
	out.Updates = *res
	return out, nil
}

// ClearValues empties every cell in the range.
func (s *Spreadsheets) ClearValues(_ context.Context, spreadsheetID, rng string) (*domain.ClearResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, r, err := s.resolve(spreadsheetID, rng)
	if err != nil {
		return nil, err
	}
	for y := range g.cells {
		for x := range g.cells[y] {
			if r.Contains(x+1, y+1) {
				g.cells[y][x] = nil
			}
		}
	}
	return &domain.ClearResult{SpreadsheetID: spreadsheetID, ClearedRange: g.bounded(r).String()}, nil
}

// GetSpreadsheet returns spreadsheet and sheet properties.
func (s *Spreadsheets) GetSpreadsheet(_ context.Context, spreadsheetID string) (*domain.SpreadsheetMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ss, ok := s.byID[spreadsheetID]
	if !ok {
		return nil, notFound()
	}
	md := &domain.SpreadsheetMetadata{
		SpreadsheetID:  ss.id,
		SpreadsheetURL: "https://docs.google.com/spreadsheets/d/" + ss.id + "/edit",
		Properties:     domain.SpreadsheetProperties{Title: ss.title, Locale: ss.locale, TimeZone: ss.timeZone},
		Sheets:         make([]domain.Sheet, 0, len(ss.sheets)),
	}
	for i, g := range ss.sheets {
		md.Sheets = append(md.Sheets, domain.Sheet{Properties: domain.SheetProperties{
			SheetID:        g.id,
			Title:          g.title,
			Index:          int64(i),
			SheetType:      "GRID",
			GridProperties: domain.GridProperties{RowCount: int64(g.rows), ColumnCount: int64(g.cols)},
		}})
	}
	return md, nil
}

// BatchGetValues reads several ranges. Any bad range fails the whole call.
func (s *Spreadsheets) BatchGetValues(
	ctx context.Context, spreadsheetID string, ranges []string,
) (*domain.BatchValueRanges, error) {
	out := &domain.BatchValueRanges{SpreadsheetID: spreadsheetID, ValueRanges: make([]domain.ValueRange, 0, len(ranges))}
	for _, rng := range ranges {
		vr, err := s.GetValues(ctx, spreadsheetID, rng)
		if err != nil {
			return nil, err
		}
		out.ValueRanges = append(out.ValueRanges, *vr)
	}
	return out, nil
}

// resolve finds the sheet a range refers to. Callers hold s.mu.
func (s *Spreadsheets) resolve(spreadsheetID, rng string) (*grid, domain.A1Range, error) {
	ss, ok := s.byID[spreadsheetID]
	if !ok {
		return nil, domain.A1Range{}, notFound()
	}
	r, err := domain.ParseA1(rng)
	if err != nil {
		return nil, domain.A1Range{}, badRange(rng)
	}
	if r.Sheet == "" && len(ss.sheets) > 0 {
		r.Sheet = ss.sheets[0].title
	}
	for _, g := range ss.sheets {
		if g.title == r.Sheet {
			return g, r, nil
		}
	}
	return nil, domain.A1Range{}, badRange(rng)
}

// anchor opens a single-cell range so writes may extend from it.
func anchor(r domain.A1Range) domain.A1Range {
	if r.StartCol != 0 && r.StartCol == r.EndCol && r.StartRow != 0 && r.StartRow == r.EndRow {
		r.EndCol, r.EndRow = 0, 0
	}
	return r
}

func checkFits(r domain.A1Range, col, row int, values domain.ValueMatrix) error {
	if r.EndRow != 0 && row+values.Rows()-1 > r.EndRow {
		return badRequest(fmt.Sprintf(
			"Requested writing within range [%s], but tried writing to row [%d]", r, row+values.Rows()-1))
	}
	if r.EndCol != 0 && col+values.Cols()-1 > r.EndCol {
		return badRequest(fmt.Sprintf(
			"Requested writing within range [%s], but tried writing to column [%s]", r,
			domain.ColumnName(col+values.Cols()-1)))
	}
	return nil
}

// bounded closes open bounds of r at the grid size.
func (g *grid) bounded(r domain.A1Range) domain.A1Range {
	r.Sheet = g.title
	r.StartCol, r.StartRow = r.Origin()
	if r.EndCol == 0 {
		r.EndCol = g.cols
	}
	if r.EndRow == 0 {
		r.EndRow = g.rows
	}
	return r
}

func (g *grid) read(r domain.A1Range) domain.ValueMatrix {
	col, row := r.Origin()
	var out domain.ValueMatrix
	for y := row - 1; y < len(g.cells) && (r.EndRow == 0 || y < r.EndRow); y++ {
		var line []any
		for x := col - 1; x < len(g.cells[y]) && (r.EndCol == 0 || x < r.EndCol); x++ {
			line = append(line, g.cells[y][x])
		}
		out = append(out, trimRow(line))
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out
}

func (g *grid) write(col, row int, values domain.ValueMatrix) *domain.UpdateResult {
	res := &domain.UpdateResult{}
	for i, line := range values {
		y := row - 1 + i
		for len(g.cells) <= y {
			g.cells = append(g.cells, nil)
		}
		for j, v := range line {
			x := col - 1 + j
			for len(g.cells[y]) <= x {
				g.cells[y] = append(g.cells[y], nil)
			}
			g.cells[y][x] = v
			res.UpdatedCells++
		}
	}
	g.rows = max(g.rows, row-1+values.Rows())
	g.cols = max(g.cols, col-1+values.Cols())

	if res.UpdatedCells > 0 {
		res.UpdatedRows = int64(values.Rows())
		res.UpdatedColumns = int64(values.Cols())
		res.UpdatedRange = domain.A1Range{
			Sheet:    g.title,
			StartCol: col,
			StartRow: row,
			EndCol:   col + values.Cols() - 1,
			EndRow:   row + values.Rows() - 1,
		}.String()
	}
	return res
}

// lastRow returns the last 1-based row holding a value inside r, or 0.
func (g *grid) lastRow(r domain.A1Range) int {
	last := 0
	for y := range g.cells {
		for x, v := range g.cells[y] {
			if !isEmpty(v) && r.Contains(x+1, y+1) {
				last = y + 1
				break
			}
		}
	}
	return last
}

// lastCol returns the last 1-based column holding a value inside r, or 0.
func (g *grid) lastCol(r domain.A1Range) int {
	last := 0
	for y := range g.cells {
		for x, v := range g.cells[y] {
			if !isEmpty(v) && r.Contains(x+1, y+1) && x+1 > last {
				last = x + 1
			}
		}
	}
	return last
}

func trimRow(line []any) []any {
	if line == nil {
		return []any{}
	}
	for len(line) > 0 && isEmpty(line[len(line)-1]) {
		line = line[:len(line)-1]
	}
	for i, v := range line {
		if v == nil {
			line[i] = ""
		}
	}
	return line
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func notFound() error {
	return &domain.Error{
		Kind:    domain.KindUpstream,
		Status:  http.StatusNotFound,
		Message: "Requested entity was not found.",
		Err:     domain.ErrNotFound,
	}
}

func badRange(rng string) error {
	return badRequest("Unable to parse range: " + rng)
}

func badRequest(msg string) error {
	return &domain.Error{Kind: domain.KindUpstream, Status: http.StatusBadRequest, Message: msg}
}
