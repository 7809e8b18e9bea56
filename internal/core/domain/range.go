package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// A1Range is a parsed A1-notation range such as Sheet1!A1:C10.
// Columns and rows are 1-based; zero means the bound is open.
type A1Range struct {
	Sheet    string
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

var cellRef = regexp.MustCompile(`^([A-Za-z]{0,3})([0-9]*)$`)

// ParseA1 parses an A1 range.
// A string without "!" that is not a cell reference names a whole sheet.
func ParseA1(s string) (A1Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return A1Range{}, fmt.Errorf("%w: empty", ErrInvalidRange)
	}

	var r A1Range
	cells := s
	if i := strings.LastIndex(s, "!"); i >= 0 {
		sheet, err := unquoteSheet(s[:i])
		if err != nil {
			return A1Range{}, err
		}
		r.Sheet = sheet
		cells = s[i+1:]
		if cells == "" {
			return A1Range{}, fmt.Errorf("%w: %q has no cells after '!'", ErrInvalidRange, s)
		}
	} else if !looksLikeCells(s) {
		sheet, err := unquoteSheet(s)
		if err != nil {
			return A1Range{}, err
		}
		r.Sheet = sheet
		return r, nil
	}

	start, end, found := strings.Cut(cells, ":")
	sc, sr, err := parseCell(start)
	if err != nil {
		return A1Range{}, err
	}
	r.StartCol, r.StartRow = sc, sr
	if !found {
		if sc == 0 || sr == 0 {
			return A1Range{}, fmt.Errorf("%w: %q is not a cell", ErrInvalidRange, start)
		}
		r.EndCol, r.EndRow = sc, sr
		return r, nil
	}

	ec, er, err := parseCell(end)
	if err != nil {
		return A1Range{}, err
	}
	r.EndCol, r.EndRow = ec, er
	if (r.EndCol != 0 && r.StartCol > r.EndCol) || (r.EndRow != 0 && r.StartRow > r.EndRow) {
		return A1Range{}, fmt.Errorf("%w: %q ends before it starts", ErrInvalidRange, s)
	}
	return r, nil
}

func looksLikeCells(s string) bool {
	start, end, found := strings.Cut(s, ":")
	col, row, err := parseCell(start)
	if err != nil {
		return false
	}
	if !found {
		return col != 0 && row != 0
	}
	_, _, err = parseCell(end)
	return err == nil
}

func parseCell(s string) (col, row int, err error) {
	m := cellRef.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "") {
		return 0, 0, fmt.Errorf("%w: bad cell %q", ErrInvalidRange, s)
	}
	if m[1] != "" {
		col = ColumnIndex(m[1])
	}
	if m[2] != "" {
		row, err = strconv.Atoi(m[2])
		if err != nil || row == 0 {
			return 0, 0, fmt.Errorf("%w: bad row in %q", ErrInvalidRange, s)
		}
	}
	return col, row, nil
}

func unquoteSheet(s string) (string, error) {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'"), nil
	}
	if s == "" || strings.ContainsAny(s, "'") {
		return "", fmt.Errorf("%w: bad sheet name %q", ErrInvalidRange, s)
	}
	return s, nil
}

// ColumnIndex converts column letters to a 1-based index (A=1, AA=27).
func ColumnIndex(letters string) int {
	n := 0
	for _, c := range strings.ToUpper(letters) {
		n = n*26 + int(c-'A'+1)
	}
	return n
}

// ColumnName converts a 1-based index to column letters.
func ColumnName(index int) string {
	var b []byte
	for index > 0 {
		index--
		b = append([]byte{byte('A' + index%26)}, b...)
		index /= 26
	}
	return string(b)
}

// IsWholeSheet reports whether the range has no cell bounds.
func (r A1Range) IsWholeSheet() bool {
	return r.StartCol == 0 && r.StartRow == 0 && r.EndCol == 0 && r.EndRow == 0
}

// Origin returns the top-left cell, treating open bounds as 1.
func (r A1Range) Origin() (col, row int) {
	col, row = r.StartCol, r.StartRow
	if col == 0 {
		col = 1
	}
	if row == 0 {
		row = 1
	}
	return col, row
}

// Contains reports whether the cell lies inside the range.
func (r A1Range) Contains(col, row int) bool {
	c0, r0 := r.Origin()
	if col < c0 || row < r0 {
		return false
	}
	if r.EndCol != 0 && col > r.EndCol {
		return false
	}
	if r.EndRow != 0 && row > r.EndRow {
		return false
	}
	return true
}

// WithSheet returns r with the given sheet when r names none.
func (r A1Range) WithSheet(sheet string) A1Range {
	if r.Sheet == "" {
		r.Sheet = sheet
	}
	return r
}

// String renders the range in A1 notation.
func (r A1Range) String() string {
	var b strings.Builder
	if r.Sheet != "" {
		b.WriteString(quoteSheet(r.Sheet))
		if r.IsWholeSheet() {
			return b.String()
		}
		b.WriteByte('!')
	}
	b.WriteString(cellName(r.StartCol, r.StartRow))
	if r.EndCol != r.StartCol || r.EndRow != r.StartRow || r.StartCol == 0 || r.StartRow == 0 {
		b.WriteByte(':')
		b.WriteString(cellName(r.EndCol, r.EndRow))
	}
	return b.String()
}

func cellName(col, row int) string {
	s := ColumnName(col)
	if row > 0 {
		s += strconv.Itoa(row)
	}
	return s
}

func quoteSheet(name string) string {
	for _, c := range name {
		if !(c == '_' || c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') {
			return "'" + strings.ReplaceAll(name, "'", "''") + "'"
		}
	}
	return name
}
