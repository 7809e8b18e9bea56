package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for gproxy resources.
	uriScheme = "gproxy://"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "credentials",
		Name:        "credentials",
		Description: "Where the Google service-account key was found",
		MIMEType:    mimeJSON,
	}, s.handleCredentialsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "spreadsheets/{spreadsheetId}",
		Name:        "spreadsheet-metadata",
		Description: "Title and tabs of a spreadsheet",
		MIMEType:    mimeJSON,
	}, s.handleSpreadsheetResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "files/{fileId}",
		Name:        "drive-file",
		Description: "Metadata of a Google Drive file",
		MIMEType:    mimeJSON,
	}, s.handleFileResource)
}

type credentialCandidate struct {
	Origin string `json:"origin"`
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

type credentialInfo struct {
	Configured bool                  `json:"configured"`
	Source     string                `json:"source,omitempty"`
	Location   string                `json:"location,omitempty"`
	Candidates []credentialCandidate `json:"candidates"`
}

// handleCredentialsResource reports the resolved credential without secrets.
func (s *Server) handleCredentialsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	info := credentialInfo{
		Configured: s.ports.Sheets.Configured() && s.ports.Drive.Configured(),
		Candidates: []credentialCandidate{},
	}
	if s.ports.Credentials != nil {
		if cred, ok := s.ports.Credentials.Resolve(); ok {
			info.Source = string(cred.Source)
			info.Location = cred.Describe()
		}
		for _, c := range s.ports.Credentials.Candidates() {
			info.Candidates = append(info.Candidates, credentialCandidate{
				Origin: c.Origin,
				Path:   c.Path,
				Exists: c.Exists,
			})
		}
	}
	return jsonResult(req.Params.URI, info)
}

// handleSpreadsheetResource returns metadata for one spreadsheet.
func (s *Server) handleSpreadsheetResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// gproxy://spreadsheets/{spreadsheetId}
	id := extractID(req.Params.URI, "spreadsheets/")
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	md, err := s.ports.Sheets.GetMetadata(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting spreadsheet metadata: %w", err)
	}
	return jsonResult(req.Params.URI, toMetadata(md))
}

// handleFileResource returns metadata for one Drive file.
func (s *Server) handleFileResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// gproxy://files/{fileId}
	id := extractID(req.Params.URI, "files/")
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	f, err := s.ports.Drive.GetMetadata(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting file metadata: %w", err)
	}
	return jsonResult(req.Params.URI, toFile(f))
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractID returns the single path segment after uriScheme+kind.
func extractID(uri, kind string) string {
	prefix := uriScheme + kind
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
