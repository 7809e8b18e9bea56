package driving

import (
	"context"

	"github.com/custodia-labs/gproxy/internal/core/domain"
)

// DriveService proxies Google Drive operations.
// Failures are *domain.Error values with caller-facing messages.
type DriveService interface {
	// Configured reports whether calls can reach Google.
	Configured() bool

	// ListFiles lists non-trashed files, within folderID when it is not empty.
	ListFiles(ctx context.Context, folderID string) ([]domain.File, error)

	// GetMetadata returns one file's metadata.
	GetMetadata(ctx context.Context, fileID string) (*domain.File, error)

	// DeleteFile deletes a file.
	DeleteFile(ctx context.Context, fileID string) error

	// ShareFile grants email the given role on a file.
	ShareFile(ctx context.Context, fileID, email string, role domain.PermissionRole) (*domain.Permission, error)

	// RenameFile renames a file.
	RenameFile(ctx context.Context, fileID, newName string) (*domain.File, error)

	// CreateFolder creates a folder, inside parentID when it is not empty.
	CreateFolder(ctx context.Context, name, parentID string) (*domain.File, error)

	// UploadFile creates a file with content.
	UploadFile(ctx context.Context, upload domain.Upload) (*domain.File, error)
}
