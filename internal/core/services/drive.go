package services

import (
	"context"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
	"github.com/custodia-labs/gproxy/internal/core/ports/driving"
)

// Ensure DriveProxy implements the interface.
var _ driving.DriveService = (*DriveProxy)(nil)

// DriveProxy forwards Drive operations to the cached client.
type DriveProxy struct {
	cache    *ClientCache
	observer driven.ProxyObserver
}

// NewDriveProxy creates a Drive proxy over the cache. observer may be nil.
func NewDriveProxy(cache *ClientCache, observer driven.ProxyObserver) *DriveProxy {
	return &DriveProxy{cache: cache, observer: observer}
}

// Configured reports whether a credential was resolved.
func (d *DriveProxy) Configured() bool {
	return d.cache.Configured()
}

// ListFiles lists the first page of non-trashed files.
func (d *DriveProxy) ListFiles(ctx context.Context, folderID string) ([]domain.File, error) {
	return forward(ctx, d.call("list_files", "list files"), d.observer, d.cache.Drive,
		func(c driven.DriveClient) ([]domain.File, error) {
			return c.ListFiles(ctx, folderID)
		})
}

// GetMetadata returns one file's metadata.
func (d *DriveProxy) GetMetadata(ctx context.Context, fileID string) (*domain.File, error) {
	if fileID == "" {
		return nil, domain.Validation(domain.MsgMissingFileID)
	}
	return forward(ctx, d.call("get_metadata", "get metadata"), d.observer, d.cache.Drive,
		func(c driven.DriveClient) (*domain.File, error) {
			return c.GetFile(ctx, fileID)
		})
}

// DeleteFile deletes a file.
func (d *DriveProxy) DeleteFile(ctx context.Context, fileID string) error {
	if fileID == "" {
		return domain.Validation(domain.MsgMissingFileID)
	}
	_, err := forward(ctx, d.call("delete_file", "delete file"), d.observer, d.cache.Drive,
		func(c driven.DriveClient) (none, error) {
			return none{}, c.DeleteFile(ctx, fileID)
		})
	return err
}

// ShareFile grants a user a role on a file. An empty role means reader.
func (d *DriveProxy) ShareFile(
	ctx context.Context,
	fileID, email string,
	role domain.PermissionRole,
) (*domain.Permission, error) {
	if fileID == "" || email == "" {
		return nil, domain.Validation(domain.MsgMissingFileEmail)
	}
	role, err := domain.ParseRole(string(role))
	if err != nil {
		return nil, domain.Validation(err.Error())
	}
	return forward(ctx, d.call("share_file", "share file"), d.observer, d.cache.Drive,
		func(c driven.DriveClient) (*domain.Permission, error) {
			return c.CreatePermission(ctx, fileID, email, role)
		})
}

// RenameFile renames a file.
func (d *DriveProxy) RenameFile(ctx context.Context, fileID, newName string) (*domain.File, error) {
	if fileID == "" || newName == "" {
		return nil, domain.Validation(domain.MsgMissingFileName)
	}
	return forward(ctx, d.call("rename_file", "rename file"), d.observer, d.cache.Drive,
		func(c driven.DriveClient) (*domain.File, error) {
			return c.RenameFile(ctx, fileID, newName)
		})
}

// CreateFolder creates a folder, inside parentID when it is set.
func (d *DriveProxy) CreateFolder(ctx context.Context, name, parentID string) (*domain.File, error) {
	if name == "" {
		return nil, domain.Validation(domain.MsgMissingFolderName)
	}
	return forward(ctx, d.call("create_folder", "create folder"), d.observer, d.cache.Drive,
		func(c driven.DriveClient) (*domain.File, error) {
			return c.CreateFolder(ctx, name, parentID)
		})
}

// UploadFile creates a file with content.
// An empty MIME type is sent as application/octet-stream.
func (d *DriveProxy) UploadFile(ctx context.Context, upload domain.Upload) (*domain.File, error) {
	if upload.Name == "" || len(upload.Content) == 0 {
		return nil, domain.Validation(domain.MsgMissingUpload)
	}
	if upload.MimeType == "" {
		upload.MimeType = domain.MimeTypeOctetStream
	}
	return forward(ctx, d.call("upload_file", "upload file"), d.observer, d.cache.Drive,
		func(c driven.DriveClient) (*domain.File, error) {
			return c.UploadFile(ctx, upload)
		})
}

func (d *DriveProxy) call(op, verb string) proxyCall {
	return proxyCall{surface: domain.SurfaceDrive, op: op, verb: verb}
}
