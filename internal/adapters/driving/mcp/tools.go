package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/gproxy/internal/core/domain"
)

// RangeInput addresses one A1 range.
type RangeInput struct {
	SpreadsheetID string `json:"spreadsheetId" jsonschema:"the spreadsheet ID from its URL"`
	Range         string `json:"range" jsonschema:"an A1 range such as Sheet1!A1:C10"`
}

// ValuesInput addresses one A1 range with values to store.
type ValuesInput struct {
	SpreadsheetID string  `json:"spreadsheetId" jsonschema:"the spreadsheet ID from its URL"`
	Range         string  `json:"range" jsonschema:"an A1 range such as Sheet1!A1:C10"`
	Values        [][]any `json:"values" jsonschema:"rows of cell values, stored as entered"`
}

// SpreadsheetInput names one spreadsheet.
type SpreadsheetInput struct {
	SpreadsheetID string `json:"spreadsheetId" jsonschema:"the spreadsheet ID from its URL"`
}

// BatchGetInput addresses several A1 ranges.
type BatchGetInput struct {
	SpreadsheetID string   `json:"spreadsheetId" jsonschema:"the spreadsheet ID from its URL"`
	Ranges        []string `json:"ranges" jsonschema:"A1 ranges to read"`
}

// ListInput selects an optional folder.
type ListInput struct {
	FolderID string `json:"folderId,omitempty" jsonschema:"list only files inside this folder"`
}

// FileInput names one Drive file.
type FileInput struct {
	FileID string `json:"fileId" jsonschema:"the Drive file ID"`
}

// RenameInput renames one Drive file.
type RenameInput struct {
	FileID  string `json:"fileId" jsonschema:"the Drive file ID"`
	NewName string `json:"newName" jsonschema:"the new file name"`
}

// CreateFolderInput creates one Drive folder.
type CreateFolderInput struct {
	FolderName     string `json:"folderName" jsonschema:"name of the new folder"`
	ParentFolderID string `json:"parentFolderId,omitempty" jsonschema:"create the folder inside this folder"`
}

// ValuesOutput is the result of a range read.
type ValuesOutput struct {
	Range  string  `json:"range"`
	Values [][]any `json:"values"`
}

// UpdateOutput is the result of a write or append.
type UpdateOutput struct {
	UpdatedRange string `json:"updatedRange"`
	UpdatedRows  int64  `json:"updatedRows"`
	UpdatedCells int64  `json:"updatedCells"`
	TableRange   string `json:"tableRange,omitempty"`
}

// ClearOutput is the result of a clear.
type ClearOutput struct {
	ClearedRange string `json:"clearedRange"`
}

// SheetOutput summarises one tab.
type SheetOutput struct {
	SheetID     int64  `json:"sheetId"`
	Title       string `json:"title"`
	RowCount    int64  `json:"rowCount"`
	ColumnCount int64  `json:"columnCount"`
}

// MetadataOutput summarises a spreadsheet.
type MetadataOutput struct {
	SpreadsheetID string        `json:"spreadsheetId"`
	Title         string        `json:"title"`
	Locale        string        `json:"locale,omitempty"`
	TimeZone      string        `json:"timeZone,omitempty"`
	Sheets        []SheetOutput `json:"sheets"`
}

// BatchOutput is the result of a batch read.
type BatchOutput struct {
	ValueRanges []ValuesOutput `json:"valueRanges"`
}

// FileOutput describes one Drive file.
type FileOutput struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MimeType     string   `json:"mimeType"`
	Size         int64    `json:"size,omitempty"`
	ModifiedTime string   `json:"modifiedTime,omitempty"`
	WebViewLink  string   `json:"webViewLink,omitempty"`
	Parents      []string `json:"parents,omitempty"`
}

// ListOutput is a Drive listing.
type ListOutput struct {
	Files []FileOutput `json:"files"`
	Count int          `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sheets_read",
		Description: "Read cell values from a Google Sheets range",
	}, s.handleSheetsRead)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sheets_write",
		Description: "Overwrite cell values in a Google Sheets range",
	}, s.handleSheetsWrite)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sheets_append",
		Description: "Append rows after the table found in a Google Sheets range",
	}, s.handleSheetsAppend)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sheets_clear",
		Description: "Clear cell values in a Google Sheets range",
	}, s.handleSheetsClear)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sheets_metadata",
		Description: "Get a spreadsheet's title and tabs",
	}, s.handleSheetsMetadata)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sheets_batch_get",
		Description: "Read several Google Sheets ranges in one call",
	}, s.handleSheetsBatchGet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "drive_list",
		Description: "List non-trashed Google Drive files, optionally inside a folder",
	}, s.handleDriveList)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "drive_metadata",
		Description: "Get metadata for one Google Drive file",
	}, s.handleDriveMetadata)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "drive_rename",
		Description: "Rename a Google Drive file",
	}, s.handleDriveRename)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "drive_create_folder",
		Description: "Create a Google Drive folder",
	}, s.handleDriveCreateFolder)
}

func (s *Server) handleSheetsRead(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RangeInput,
) (*mcp.CallToolResult, ValuesOutput, error) {
	vr, err := s.ports.Sheets.ReadRange(ctx, input.SpreadsheetID, input.Range)
	if err != nil {
		return nil, ValuesOutput{}, err
	}
	return nil, toValues(*vr), nil
}

func (s *Server) handleSheetsWrite(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValuesInput,
) (*mcp.CallToolResult, UpdateOutput, error) {
	res, err := s.ports.Sheets.WriteRange(ctx, input.SpreadsheetID, input.Range, input.Values)
	if err != nil {
		return nil, UpdateOutput{}, err
	}
	return nil, toUpdate(*res), nil
}

func (s *Server) handleSheetsAppend(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValuesInput,
) (*mcp.CallToolResult, UpdateOutput, error) {
	res, err := s.ports.Sheets.AppendRange(ctx, input.SpreadsheetID, input.Range, input.Values)
	if err != nil {
		return nil, UpdateOutput{}, err
	}
	out := toUpdate(res.Updates)
	out.TableRange = res.TableRange
	return nil, out, nil
}

func (s *Server) handleSheetsClear(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RangeInput,
) (*mcp.CallToolResult, ClearOutput, error) {
	res, err := s.ports.Sheets.ClearRange(ctx, input.SpreadsheetID, input.Range)
	if err != nil {
		return nil, ClearOutput{}, err
	}
	return nil, ClearOutput{ClearedRange: res.ClearedRange}, nil
}

func (s *Server) handleSheetsMetadata(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SpreadsheetInput,
) (*mcp.CallToolResult, MetadataOutput, error) {
	md, err := s.ports.Sheets.GetMetadata(ctx, input.SpreadsheetID)
	if err != nil {
		return nil, MetadataOutput{}, err
	}
	return nil, toMetadata(md), nil
}

func (s *Server) handleSheetsBatchGet(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BatchGetInput,
) (*mcp.CallToolResult, BatchOutput, error) {
	res, err := s.ports.Sheets.BatchGetRanges(ctx, input.SpreadsheetID, input.Ranges)
	if err != nil {
		return nil, BatchOutput{}, err
	}
	out := BatchOutput{ValueRanges: make([]ValuesOutput, len(res.ValueRanges))}
	for i := range res.ValueRanges {
		out.ValueRanges[i] = toValues(res.ValueRanges[i])
	}
	return nil, out, nil
}

func (s *Server) handleDriveList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	files, err := s.ports.Drive.ListFiles(ctx, input.FolderID)
	if err != nil {
		return nil, ListOutput{}, err
	}
	out := ListOutput{Files: make([]FileOutput, len(files)), Count: len(files)}
	for i := range files {
		out.Files[i] = toFile(&files[i])
	}
	return nil, out, nil
}

func (s *Server) handleDriveMetadata(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FileInput,
) (*mcp.CallToolResult, FileOutput, error) {
	f, err := s.ports.Drive.GetMetadata(ctx, input.FileID)
	if err != nil {
		return nil, FileOutput{}, err
	}
	return nil, toFile(f), nil
}

func (s *Server) handleDriveRename(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RenameInput,
) (*mcp.CallToolResult, FileOutput, error) {
	f, err := s.ports.Drive.RenameFile(ctx, input.FileID, input.NewName)
	if err != nil {
		return nil, FileOutput{}, err
	}
	return nil, toFile(f), nil
}

func (s *Server) handleDriveCreateFolder(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateFolderInput,
) (*mcp.CallToolResult, FileOutput, error) {
	f, err := s.ports.Drive.CreateFolder(ctx, input.FolderName, input.ParentFolderID)
	if err != nil {
		return nil, FileOutput{}, err
	}
	return nil, toFile(f), nil
}

func toValues(vr domain.ValueRange) ValuesOutput {
	values := [][]any(vr.Values)
	if values == nil {
		values = [][]any{}
	}
	return ValuesOutput{Range: vr.Range, Values: values}
}

func toUpdate(u domain.UpdateResult) UpdateOutput {
	return UpdateOutput{UpdatedRange: u.UpdatedRange, UpdatedRows: u.UpdatedRows, UpdatedCells: u.UpdatedCells}
}

func toMetadata(md *domain.SpreadsheetMetadata) MetadataOutput {
	out := MetadataOutput{
		SpreadsheetID: md.SpreadsheetID,
		Title:         md.Properties.Title,
		Locale:        md.Properties.Locale,
		TimeZone:      md.Properties.TimeZone,
		Sheets:        make([]SheetOutput, len(md.Sheets)),
	}
	for i, sh := range md.Sheets {
		out.Sheets[i] = SheetOutput{
			SheetID:     sh.Properties.SheetID,
			Title:       sh.Properties.Title,
			RowCount:    sh.Properties.GridProperties.RowCount,
			ColumnCount: sh.Properties.GridProperties.ColumnCount,
		}
	}
	return out
}

func toFile(f *domain.File) FileOutput {
	return FileOutput{
		ID:           f.ID,
		Name:         f.Name,
		MimeType:     f.MimeType,
		Size:         f.Size,
		ModifiedTime: f.ModifiedTime,
		WebViewLink:  f.WebViewLink,
		Parents:      f.Parents,
	}
}
