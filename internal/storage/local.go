package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// LocalStorageClient keeps files in a single local directory
type LocalStorageClient struct {
	baseDir string
}

// NewLocalStorageClient creates a new local storage client. The base
// directory is created if it does not exist yet.
func NewLocalStorageClient(baseDir string) (*LocalStorageClient, error) {
	if baseDir == "" {
		return nil, errors.New("base directory must not be empty")
	}
	if err := EnsureDir(baseDir); err != nil {
		return nil, err
	}

	return &LocalStorageClient{
		baseDir: baseDir,
	}, nil
}

// EnsureDir creates dir and any missing parents; it is a no-op when dir exists
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// Close is a no-op for local storage
func (l *LocalStorageClient) Close() error {
	return nil
}

// BaseDir returns the directory files are stored in
func (l *LocalStorageClient) BaseDir() string {
	return l.baseDir
}

// Location describes the storage directory
func (l *LocalStorageClient) Location() string {
	return "file://" + l.baseDir
}

func (l *LocalStorageClient) path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(l.baseDir, name), nil
}

// StoreFile writes the file through a temporary file and renames it into
// place, so readers never see a partially written file
func (l *LocalStorageClient) StoreFile(ctx context.Context, name string, fileData []byte) error {
	filePath, err := l.path(name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(l.baseDir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", l.baseDir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(fileData); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write file %s: %w", filePath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close file %s: %w", filePath, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", filePath, err)
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move file into place %s: %w", filePath, err)
	}

	return nil
}

// GetFile retrieves a file from local storage
func (l *LocalStorageClient) GetFile(ctx context.Context, name string) ([]byte, error) {
	filePath, err := l.path(name)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to stat file %s: %w", filePath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return data, nil
}

// FileExists checks if a regular file exists
func (l *LocalStorageClient) FileExists(ctx context.Context, name string) (bool, error) {
	filePath, err := l.path(name)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file %s: %w", filePath, err)
	}
	return !info.IsDir(), nil
}

// ListFiles lists regular files in the base directory sorted by name.
// Temporary files of in-flight writes are skipped.
func (l *LocalStorageClient) ListFiles(ctx context.Context) ([]FileInfo, error) {
	entries, err := os.ReadDir(l.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", l.baseDir, err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || ValidateName(entry.Name()) != nil || isTempName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		files = append(files, FileInfo{
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// DeleteFile removes a file from local storage
func (l *LocalStorageClient) DeleteFile(ctx context.Context, name string) error {
	filePath, err := l.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return fmt.Errorf("failed to delete file %s: %w", filePath, err)
	}
	return nil
}
