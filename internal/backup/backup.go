// Package backup moves the whole project document to and from a cloud
// drive. The service orchestrates snapshots and restores; the Adapter
// hides the transport.
package backup

import (
	"context"
	"errors"
)

// BackupFilename is the fixed name every backup is written under. Uploads
// replace the previous file rather than accumulating copies.
const BackupFilename = "planfairy_backup_all.json"

var (
	// ErrNoBackup indicates no backup file exists to restore from.
	ErrNoBackup = errors.New("no backup found")

	// ErrInFlight rejects a backup or restore started while another is
	// still running.
	ErrInFlight = errors.New("backup already in progress")

	// ErrNotAuthenticated indicates the adapter has no usable credential.
	ErrNotAuthenticated = errors.New("drive not authenticated")
)

// RemoteFile describes a file found on the drive.
type RemoteFile struct {
	ID         string
	Name       string
	ModifiedAt int64
}

// Adapter is the narrow transport surface the service depends on. The
// service never sees tokens, URLs or wire encodings.
type Adapter interface {
	// Authenticate obtains or refreshes the adapter's credential.
	Authenticate(ctx context.Context) error

	// EnsureFolder returns the ID of the named folder, creating it when
	// absent. An empty name means the drive root and yields an empty ID.
	EnsureFolder(ctx context.Context, name string) (string, error)

	// Upload writes data under name inside folderID (drive root when
	// empty), replacing any existing file of that name.
	Upload(ctx context.Context, name, folderID string, data []byte) (string, error)

	// FindLatest returns the most recently modified file with the given
	// name, scoped to folderID when non-empty, or ErrNoBackup.
	FindLatest(ctx context.Context, name, folderID string) (*RemoteFile, error)

	// Download fetches the file content by ID.
	Download(ctx context.Context, fileID string) ([]byte, error)
}
