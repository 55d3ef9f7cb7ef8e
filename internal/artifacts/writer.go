package artifacts

import (
	"context"
	"fmt"

	"visrender/internal/storage"
)

// Writer persists rendered artifacts under freshly generated names
type Writer struct {
	store   storage.StorageClient
	newName func(ext string) string
}

// NewWriter creates a writer on top of store
func NewWriter(store storage.StorageClient) *Writer {
	return &Writer{
		store:   store,
		newName: NewName,
	}
}

// Save stores data under a new unique name with extension ext and returns the name
func (w *Writer) Save(ctx context.Context, ext string, data []byte) (string, error) {
	name := w.newName(ext)
	if err := w.store.StoreFile(ctx, name, data); err != nil {
		return "", fmt.Errorf("failed to store %s: %w", name, err)
	}
	return name, nil
}
