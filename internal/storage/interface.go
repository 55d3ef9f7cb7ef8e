package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a file does not exist in storage
	ErrNotFound = errors.New("file not found")
	// ErrInvalidName is returned for names that are not a single flat file name
	ErrInvalidName = errors.New("invalid file name")
)

// FileInfo describes a stored file
type FileInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// StorageClient defines the flat artifact namespace the service writes into.
// Names are plain file names without directories.
type StorageClient interface {
	// Close closes the storage client
	Close() error

	// StoreFile stores a file under name, replacing any existing file
	StoreFile(ctx context.Context, name string, fileData []byte) error

	// GetFile retrieves a file, returning ErrNotFound if it is missing
	GetFile(ctx context.Context, name string) ([]byte, error)

	// FileExists checks if a file exists
	FileExists(ctx context.Context, name string) (bool, error)

	// ListFiles lists all files in the namespace
	ListFiles(ctx context.Context) ([]FileInfo, error)

	// DeleteFile removes a file, returning ErrNotFound if it is missing
	DeleteFile(ctx context.Context, name string) error

	// Location describes where files are kept, for logs
	Location() string
}
