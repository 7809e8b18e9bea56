package memory

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	gdrive "github.com/custodia-labs/gproxy/internal/connectors/google/drive"
	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
)

// Ensure Drive implements the interface.
var _ driven.DriveClient = (*Drive)(nil)

// Drive is an in-memory implementation of driven.DriveClient.
type Drive struct {
	mu          sync.RWMutex
	files       map[string]domain.File
	content     map[string][]byte
	permissions map[string][]domain.Permission
	now         func() time.Time
}

// NewDrive creates an empty in-memory Drive backend.
func NewDrive() *Drive {
	return &Drive{
		files:       make(map[string]domain.File),
		content:     make(map[string][]byte),
		permissions: make(map[string][]domain.Permission),
		now:         time.Now,
	}
}

// AddFile stores file metadata as-is, assigning an ID when empty.
func (d *Drive) AddFile(f domain.File) domain.File {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.add(f)
}

func (d *Drive) add(f domain.File) domain.File {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	stamp := d.now().UTC().Format(time.RFC3339)
	if f.CreatedTime == "" {
		f.CreatedTime = stamp
	}
	if f.ModifiedTime == "" {
		f.ModifiedTime = stamp
	}
	if f.WebViewLink == "" {
		f.WebViewLink = gdrive.ResolveWebURL(f)
	}
	d.files[f.ID] = f
	return f
}

// ListFiles returns up to domain.ListPageSize files ordered by name,
// optionally restricted to one parent folder.
func (d *Drive) ListFiles(_ context.Context, folderID string) ([]domain.File, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.File, 0, len(d.files))
	for _, f := range d.files {
		if folderID != "" && !hasParent(f, folderID) {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > domain.ListPageSize {
		out = out[:domain.ListPageSize]
	}
	return out, nil
}

// GetFile returns file metadata.
func (d *Drive) GetFile(_ context.Context, fileID string) (*domain.File, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	f, ok := d.files[fileID]
	if !ok {
		return nil, fileNotFound(fileID)
	}
	return &f, nil
}

// DeleteFile removes a file. Children of a deleted folder keep their parent ID.
func (d *Drive) DeleteFile(_ context.Context, fileID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.files[fileID]; !ok {
		return fileNotFound(fileID)
	}
	delete(d.files, fileID)
	delete(d.content, fileID)
	delete(d.permissions, fileID)
	return nil
}

// CreatePermission grants a user access to a file.
func (d *Drive) CreatePermission(
	_ context.Context, fileID, email string, role domain.PermissionRole,
) (*domain.Permission, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.files[fileID]; !ok {
		return nil, fileNotFound(fileID)
	}
	p := domain.Permission{ID: uuid.NewString(), Type: domain.PermissionTypeUser, Role: role, EmailAddress: email}
	d.permissions[fileID] = append(d.permissions[fileID], p)
	return &p, nil
}

// Permissions returns the grants recorded for a file.
func (d *Drive) Permissions(fileID string) []domain.Permission {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]domain.Permission(nil), d.permissions[fileID]...)
}

// RenameFile changes a file's name.
func (d *Drive) RenameFile(_ context.Context, fileID, name string) (*domain.File, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	f, ok := d.files[fileID]
	if !ok {
		return nil, fileNotFound(fileID)
	}
	f.Name = name
	f.ModifiedTime = d.now().UTC().Format(time.RFC3339)
	d.files[fileID] = f
	return &f, nil
}

// CreateFolder creates a folder, optionally inside a parent.
func (d *Drive) CreateFolder(_ context.Context, name, parentID string) (*domain.File, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	f := domain.File{Name: name, MimeType: domain.MimeTypeFolder}
	if parentID != "" {
		f.Parents = []string{parentID}
	}
	f = d.add(f)
	return &f, nil
}

// UploadFile creates a file with content.
func (d *Drive) UploadFile(_ context.Context, upload domain.Upload) (*domain.File, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	mime := upload.MimeType
	if mime == "" {
		mime = domain.MimeTypeOctetStream
	}
	f := domain.File{Name: upload.Name, MimeType: mime, Size: int64(len(upload.Content))}
	if upload.ParentID != "" {
		f.Parents = []string{upload.ParentID}
	}
	f = d.add(f)
	d.content[f.ID] = append([]byte(nil), upload.Content...)
	return &f, nil
}

// Content returns the bytes uploaded for a file.
func (d *Drive) Content(fileID string) ([]byte, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	b, ok := d.content[fileID]
	return b, ok
}

func hasParent(f domain.File, parent string) bool {
	for _, p := range f.Parents {
		if p == parent {
			return true
		}
	}
	return false
}

func fileNotFound(id string) error {
	return &domain.Error{
		Kind:    domain.KindUpstream,
		Status:  http.StatusNotFound,
		Message: "File not found: " + id + ".",
		Err:     domain.ErrNotFound,
	}
}
