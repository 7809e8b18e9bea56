package drive

import (
	"google.golang.org/api/drive/v3"

	"github.com/custodia-labs/gproxy/internal/core/domain"
)

// Google Workspace MIME types.
const (
	MimeTypeGoogleDoc    = "application/vnd.google-apps.document"
	MimeTypeGoogleSheet  = domain.MimeTypeSpreadsheet
	MimeTypeGoogleSlides = "application/vnd.google-apps.presentation"
	MimeTypeFolder       = domain.MimeTypeFolder
)

// Field masks requested from the Drive API.
const (
	// ListFields is the partial response for Files.List.
	ListFields = "files(id, name, mimeType, size, createdTime, modifiedTime, webViewLink)"
	// FileFields is the partial response for single-file calls.
	FileFields = "id, name, mimeType, size, createdTime, modifiedTime, webViewLink, parents, owners"
	// PermissionFields is the partial response for Permissions.Create.
	PermissionFields = "id, type, role, emailAddress"
)

// ToFile converts a Drive API file to domain.File.
func ToFile(f *drive.File) domain.File {
	if f == nil {
		return domain.File{}
	}
	out := domain.File{
		ID:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		Size:         f.Size,
		CreatedTime:  f.CreatedTime,
		ModifiedTime: f.ModifiedTime,
		WebViewLink:  f.WebViewLink,
		Parents:      f.Parents,
	}
	for _, o := range f.Owners {
		if o == nil {
			continue
		}
		out.Owners = append(out.Owners, domain.Owner{DisplayName: o.DisplayName, EmailAddress: o.EmailAddress})
	}
	return out
}

// ToFiles converts a page of Drive API files, skipping nil entries.
func ToFiles(files []*drive.File) []domain.File {
	out := make([]domain.File, 0, len(files))
	for _, f := range files {
		if f == nil {
			continue
		}
		out = append(out, ToFile(f))
	}
	return out
}

// ToPermission converts a Drive API permission to domain.Permission.
func ToPermission(p *drive.Permission) domain.Permission {
	if p == nil {
		return domain.Permission{}
	}
	return domain.Permission{
		ID:           p.Id,
		Type:         p.Type,
		Role:         domain.PermissionRole(p.Role),
		EmailAddress: p.EmailAddress,
	}
}

// NewFolder builds the request body for creating a folder.
func NewFolder(name, parentID string) *drive.File {
	f := &drive.File{Name: name, MimeType: MimeTypeFolder}
	if parentID != "" {
		f.Parents = []string{parentID}
	}
	return f
}

// NewUploadFile builds the request body for an upload. The MIME type
// defaults to application/octet-stream.
func NewUploadFile(u domain.Upload) *drive.File {
	mime := u.MimeType
	if mime == "" {
		mime = domain.MimeTypeOctetStream
	}
	f := &drive.File{Name: u.Name, MimeType: mime}
	if u.ParentID != "" {
		f.Parents = []string{u.ParentID}
	}
	return f
}
