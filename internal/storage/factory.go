package storage

import (
	"context"
	"errors"
	"fmt"

	"visrender/internal/config"
)

// NewStorageClient creates a storage client for the configured backend
func NewStorageClient(ctx context.Context, cfg *config.Config) (StorageClient, error) {
	if cfg == nil {
		return nil, errors.New("config must not be nil")
	}

	switch cfg.StorageBackend {
	case config.BackendLocal, "":
		localClient, err := NewLocalStorageClient(cfg.ImagesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
		}
		return localClient, nil

	case config.BackendGCS:
		gcsClient, err := NewGCSClient(ctx, cfg.GCSBucket, cfg.GCSPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return gcsClient, nil

	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
}
