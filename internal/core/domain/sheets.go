package domain

// Dimension values for ValueRange.MajorDimension.
const (
	DimensionRows    = "ROWS"
	DimensionColumns = "COLUMNS"
)

// ValueInputRaw stores values exactly as supplied, without formula parsing.
const ValueInputRaw = "RAW"

// ValueMatrix is a 2-D array of JSON scalars (string, number, bool or nil).
type ValueMatrix [][]any

// Rows returns the number of rows.
func (m ValueMatrix) Rows() int {
	return len(m)
}

// Cols returns the width of the widest row.
func (m ValueMatrix) Cols() int {
	n := 0
	for _, row := range m {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// ValueRange is a block of cell values read from or written to a sheet.
type ValueRange struct {
	Range          string      `json:"range"`
	MajorDimension string      `json:"majorDimension,omitempty"`
	Values         ValueMatrix `json:"values,omitempty"`
}

// UpdateResult reports the cells touched by a write.
type UpdateResult struct {
	SpreadsheetID  string `json:"spreadsheetId"`
	UpdatedRange   string `json:"updatedRange"`
	UpdatedRows    int64  `json:"updatedRows"`
	UpdatedColumns int64  `json:"updatedColumns"`
	UpdatedCells   int64  `json:"updatedCells"`
}

// AppendResult reports where appended rows landed.
type AppendResult struct {
	SpreadsheetID string       `json:"spreadsheetId"`
	TableRange    string       `json:"tableRange,omitempty"`
	Updates       UpdateResult `json:"updates"`
}

// ClearResult reports the range that was cleared.
type ClearResult struct {
	SpreadsheetID string `json:"spreadsheetId"`
	ClearedRange  string `json:"clearedRange"`
}

// BatchValueRanges is the result of reading several ranges at once.
type BatchValueRanges struct {
	SpreadsheetID string       `json:"spreadsheetId"`
	ValueRanges   []ValueRange `json:"valueRanges"`
}

// GridProperties describes the size of a grid sheet.
type GridProperties struct {
	RowCount    int64 `json:"rowCount"`
	ColumnCount int64 `json:"columnCount"`
}

// SheetProperties describes one tab of a spreadsheet.
type SheetProperties struct {
	SheetID        int64          `json:"sheetId"`
	Title          string         `json:"title"`
	Index          int64          `json:"index"`
	SheetType      string         `json:"sheetType,omitempty"`
	GridProperties GridProperties `json:"gridProperties"`
}

// Sheet wraps SheetProperties the way the Sheets API nests them.
type Sheet struct {
	Properties SheetProperties `json:"properties"`
}

// SpreadsheetProperties carries spreadsheet-wide settings.
type SpreadsheetProperties struct {
	Title    string `json:"title"`
	Locale   string `json:"locale,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// SpreadsheetMetadata is the spreadsheet description returned by GetMetadata.
type SpreadsheetMetadata struct {
	SpreadsheetID  string                `json:"spreadsheetId"`
	Properties     SpreadsheetProperties `json:"properties"`
	Sheets         []Sheet               `json:"sheets"`
	SpreadsheetURL string                `json:"spreadsheetUrl,omitempty"`
}

// SheetTitles returns the tab titles in order.
func (m *SpreadsheetMetadata) SheetTitles() []string {
	titles := make([]string, len(m.Sheets))
	for i, s := range m.Sheets {
		titles[i] = s.Properties.Title
	}
	return titles
}
