package client

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"

	"github.com/custodia-labs/gproxy/internal/core/domain"
)

// envelope is the {success, data, error} shape of most routes.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}

// readData returns the envelope's data, or fallback unless success is true.
func readData[T any](ctx context.Context, c *Client, path string, opts RequestOptions, fallback T) T {
	env := RequestJSON(ctx, c, path, opts, envelope[T]{})
	if !env.Success {
		return fallback
	}
	return env.Data
}

// writeData posts body and returns the envelope's data or the server's error.
func writeData[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	var env envelope[T]
	if err := c.do(ctx, path, RequestOptions{Method: http.MethodPost, Body: body}, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{Status: http.StatusOK, Message: env.Error}
	}
	return &env.Data, nil
}

type sheetsBody struct {
	SpreadsheetID string             `json:"spreadsheetId"`
	Range         string             `json:"range,omitempty"`
	Ranges        []string           `json:"ranges,omitempty"`
	Values        domain.ValueMatrix `json:"values,omitempty"`
}

// ReadRange reads one A1 range.
func (c *Client) ReadRange(ctx context.Context, spreadsheetID, rng string, fallback domain.ValueRange) domain.ValueRange {
	return readData(ctx, c, "/api/google/sheets/read", RequestOptions{
		Method: http.MethodPost,
		Body:   sheetsBody{SpreadsheetID: spreadsheetID, Range: rng},
	}, fallback)
}

// WriteRange overwrites one A1 range.
func (c *Client) WriteRange(
	ctx context.Context, spreadsheetID, rng string, values domain.ValueMatrix,
) (*domain.UpdateResult, error) {
	return writeData[domain.UpdateResult](ctx, c, "/api/google/sheets/write",
		sheetsBody{SpreadsheetID: spreadsheetID, Range: rng, Values: values})
}

// AppendRange appends rows to the table at the A1 range.
func (c *Client) AppendRange(
	ctx context.Context, spreadsheetID, rng string, values domain.ValueMatrix,
) (*domain.AppendResult, error) {
	return writeData[domain.AppendResult](ctx, c, "/api/google/sheets/append",
		sheetsBody{SpreadsheetID: spreadsheetID, Range: rng, Values: values})
}

// ClearRange clears one A1 range.
func (c *Client) ClearRange(ctx context.Context, spreadsheetID, rng string) (*domain.ClearResult, error) {
	return writeData[domain.ClearResult](ctx, c, "/api/google/sheets/clear",
		sheetsBody{SpreadsheetID: spreadsheetID, Range: rng})
}

// SpreadsheetMetadata returns spreadsheet properties and sheets.
func (c *Client) SpreadsheetMetadata(
	ctx context.Context, spreadsheetID string, fallback domain.SpreadsheetMetadata,
) domain.SpreadsheetMetadata {
	return readData(ctx, c, "/api/google/sheets/metadata/"+url.PathEscape(spreadsheetID), RequestOptions{}, fallback)
}

// BatchGetRanges reads several A1 ranges.
func (c *Client) BatchGetRanges(
	ctx context.Context, spreadsheetID string, ranges []string, fallback domain.BatchValueRanges,
) domain.BatchValueRanges {
	return readData(ctx, c, "/api/google/sheets/batch-get", RequestOptions{
		Method: http.MethodPost,
		Body:   sheetsBody{SpreadsheetID: spreadsheetID, Ranges: ranges},
	}, fallback)
}

// ListFiles lists non-trashed files, within folderID when it is not empty.
func (c *Client) ListFiles(ctx context.Context, folderID string, fallback []domain.File) []domain.File {
	var body struct {
		FolderID string `json:"folderId,omitempty"`
	}
	body.FolderID = folderID

	res := RequestJSON(ctx, c, "/api/google/drive/list", RequestOptions{Method: http.MethodPost, Body: body},
		struct {
			Success bool          `json:"success"`
			Files   []domain.File `json:"files"`
		}{})
	if !res.Success {
		return fallback
	}
	return res.Files
}

// FileMetadata returns one file's metadata.
func (c *Client) FileMetadata(ctx context.Context, fileID string, fallback domain.File) domain.File {
	return readData(ctx, c, "/api/google/drive/metadata/"+url.PathEscape(fileID), RequestOptions{}, fallback)
}

// DeleteFile deletes a file.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	var res envelope[struct{}]
	err := c.do(ctx, "/api/google/drive/delete/"+url.PathEscape(fileID), RequestOptions{Method: http.MethodPost}, &res)
	if err != nil {
		return err
	}
	if !res.Success {
		return &APIError{Status: http.StatusOK, Message: res.Error}
	}
	return nil
}

type driveBody struct {
	FileID         string `json:"fileId,omitempty"`
	Email          string `json:"email,omitempty"`
	Role           string `json:"role,omitempty"`
	NewName        string `json:"newName,omitempty"`
	FolderName     string `json:"folderName,omitempty"`
	ParentFolderID string `json:"parentFolderId,omitempty"`
	Name           string `json:"name,omitempty"`
	MimeType       string `json:"mimeType,omitempty"`
	Content        string `json:"content,omitempty"`
}

// ShareFile grants email a role on a file. An empty role means reader.
func (c *Client) ShareFile(
	ctx context.Context, fileID, email string, role domain.PermissionRole,
) (*domain.Permission, error) {
	return writeData[domain.Permission](ctx, c, "/api/google/drive/share",
		driveBody{FileID: fileID, Email: email, Role: string(role)})
}

// RenameFile renames a file.
func (c *Client) RenameFile(ctx context.Context, fileID, newName string) (*domain.File, error) {
	return writeData[domain.File](ctx, c, "/api/google/drive/rename",
		driveBody{FileID: fileID, NewName: newName})
}

// CreateFolder creates a folder, inside parentID when it is not empty.
func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (*domain.File, error) {
	return writeData[domain.File](ctx, c, "/api/google/drive/create-folder",
		driveBody{FolderName: name, ParentFolderID: parentID})
}

// UploadFile uploads content as a new file.
func (c *Client) UploadFile(ctx context.Context, upload domain.Upload) (*domain.File, error) {
	return writeData[domain.File](ctx, c, "/api/google/drive/upload", driveBody{
		Name:           upload.Name,
		MimeType:       upload.MimeType,
		ParentFolderID: upload.ParentID,
		Content:        base64.StdEncoding.EncodeToString(upload.Content),
	})
}

// GoogleHealth is the /api/google/health response.
type GoogleHealth struct {
	Status                string `json:"status"`
	Message               string `json:"message"`
	CredentialsConfigured bool   `json:"credentialsConfigured"`
}

// GoogleHealth reports whether the proxy has a credential.
func (c *Client) GoogleHealth(ctx context.Context, fallback GoogleHealth) GoogleHealth {
	return RequestJSON(ctx, c, "/api/google/health", RequestOptions{}, fallback)
}
