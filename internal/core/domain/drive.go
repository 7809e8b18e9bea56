package domain

import "strings"

// Drive MIME types used by the proxy.
const (
	MimeTypeFolder      = "application/vnd.google-apps.folder"
	MimeTypeSpreadsheet = "application/vnd.google-apps.spreadsheet"
	MimeTypeOctetStream = "application/octet-stream"
)

// ListPageSize is the fixed page size used when listing files.
const ListPageSize = 100

// Owner identifies a Drive file owner.
type Owner struct {
	DisplayName  string `json:"displayName,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty"`
}

// File is Drive file metadata with the Drive v3 field names.
type File struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MimeType     string   `json:"mimeType"`
	Size         int64    `json:"size,omitempty,string"`
	CreatedTime  string   `json:"createdTime,omitempty"`
	ModifiedTime string   `json:"modifiedTime,omitempty"`
	WebViewLink  string   `json:"webViewLink,omitempty"`
	Parents      []string `json:"parents,omitempty"`
	Owners       []Owner  `json:"owners,omitempty"`
}

// IsFolder reports whether the file is a Drive folder.
func (f *File) IsFolder() bool {
	return f.MimeType == MimeTypeFolder
}

// PermissionRole is a Drive sharing role.
type PermissionRole string

// Drive permission roles.
const (
	RoleReader        PermissionRole = "reader"
	RoleCommenter     PermissionRole = "commenter"
	RoleWriter        PermissionRole = "writer"
	RoleFileOrganizer PermissionRole = "fileOrganizer"
	RoleOrganizer     PermissionRole = "organizer"
	RoleOwner         PermissionRole = "owner"
)

// DefaultRole is used when a share request names no role.
const DefaultRole = RoleReader

var validRoles = map[PermissionRole]bool{
	RoleReader:        true,
	RoleCommenter:     true,
	RoleWriter:        true,
	RoleFileOrganizer: true,
	RoleOrganizer:     true,
	RoleOwner:         true,
}

// ParseRole returns the role named by s, DefaultRole for an empty string,
// or ErrInvalidRole.
func ParseRole(s string) (PermissionRole, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultRole, nil
	}
	r := PermissionRole(s)
	if !validRoles[r] {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r PermissionRole) String() string {
	return string(r)
}

// PermissionTypeUser grants access to a single email address.
const PermissionTypeUser = "user"

// Permission is a Drive access grant.
type Permission struct {
	ID           string         `json:"id"`
	Type         string         `json:"type"`
	Role         PermissionRole `json:"role"`
	EmailAddress string         `json:"emailAddress,omitempty"`
}

// Upload describes a file to create in Drive.
type Upload struct {
	Name     string
	MimeType string
	ParentID string
	Content  []byte
}

// ListQuery builds the Drive search query for ListFiles.
func ListQuery(folderID string) string {
	q := "trashed=false"
	if folderID != "" {
		q += " and '" + strings.ReplaceAll(folderID, "'", `\'`) + "' in parents"
	}
	return q
}
