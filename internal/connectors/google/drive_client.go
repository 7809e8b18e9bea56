package google

import (
	"bytes"
	"context"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	gdrive "github.com/custodia-labs/gproxy/internal/connectors/google/drive"
	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.DriveClient = (*DriveClient)(nil)

// DriveClient implements driven.DriveClient over the Drive v3 API.
type DriveClient struct {
	svc     *drive.Service
	limiter *RateLimiter
}

// NewDriveClient wraps an API service. A nil limiter uses the Drive defaults.
func NewDriveClient(svc *drive.Service, limiter *RateLimiter) *DriveClient {
	if limiter == nil {
		limiter = NewRateLimiter(domain.SurfaceDrive)
	}
	return &DriveClient{svc: svc, limiter: limiter}
}

// ListFiles returns the first page of non-trashed files, optionally within a folder.
func (c *DriveClient) ListFiles(ctx context.Context, folderID string) ([]domain.File, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Files.List().
		Q(domain.ListQuery(folderID)).
		PageSize(domain.ListPageSize).
		Fields(gdrive.ListFields).
		Context(ctx).
		Do()
	if err = c.done(err); err != nil {
		return nil, err
	}
	return gdrive.ToFiles(resp.Files), nil
}

// GetFile returns file metadata.
func (c *DriveClient) GetFile(ctx context.Context, fileID string) (*domain.File, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Files.Get(fileID).Fields(gdrive.FileFields).Context(ctx).Do()
	if err = c.done(err); err != nil {
		return nil, err
	}
	f := gdrive.ToFile(resp)
	return &f, nil
}

// DeleteFile permanently deletes a file.
func (c *DriveClient) DeleteFile(ctx context.Context, fileID string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	return c.done(c.svc.Files.Delete(fileID).Context(ctx).Do())
}

// CreatePermission grants a user access to a file.
func (c *DriveClient) CreatePermission(
	ctx context.Context, fileID, email string, role domain.PermissionRole,
) (*domain.Permission, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	perm := &drive.Permission{
		Type:         domain.PermissionTypeUser,
		Role:         role.String(),
		EmailAddress: email,
	}
	resp, err := c.svc.Permissions.Create(fileID, perm).Fields(gdrive.PermissionFields).Context(ctx).Do()
	if err = c.done(err); err != nil {
		return nil, err
	}
	p := gdrive.ToPermission(resp)
	return &p, nil
}

// RenameFile changes a file's name.
func (c *DriveClient) RenameFile(ctx context.Context, fileID, name string) (*domain.File, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Files.Update(fileID, &drive.File{Name: name}).Fields(gdrive.FileFields).Context(ctx).Do()
	if err = c.done(err); err != nil {
		return nil, err
	}
	f := gdrive.ToFile(resp)
	return &f, nil
}

// CreateFolder creates a folder, optionally inside a parent.
func (c *DriveClient) CreateFolder(ctx context.Context, name, parentID string) (*domain.File, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Files.Create(gdrive.NewFolder(name, parentID)).Fields(gdrive.FileFields).Context(ctx).Do()
	if err = c.done(err); err != nil {
		return nil, err
	}
	f := gdrive.ToFile(resp)
	return &f, nil
}

// UploadFile creates a file with content.
func (c *DriveClient) UploadFile(ctx context.Context, upload domain.Upload) (*domain.File, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	meta := gdrive.NewUploadFile(upload)
	resp, err := c.svc.Files.Create(meta).
		Media(bytes.NewReader(upload.Content), googleapi.ContentType(meta.MimeType)).
		Fields(gdrive.FileFields).
		Context(ctx).
		Do()
	if err = c.done(err); err != nil {
		return nil, err
	}
	f := gdrive.ToFile(resp)
	return &f, nil
}

func (c *DriveClient) done(err error) error {
	c.limiter.Observe(err)
	return WrapError(err)
}
