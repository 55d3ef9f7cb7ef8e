package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"visrender/internal/logger"
)

// GCSClient keeps files as objects under a prefix of a Google Cloud Storage bucket
type GCSClient struct {
	client *storage.Client
	bucket string
	prefix string
	log    *logger.Logger
}

// NewGCSClient creates a new GCS client
func NewGCSClient(ctx context.Context, bucketName, prefix string) (*GCSClient, error) {
	if bucketName == "" {
		return nil, errors.New("bucket name must not be empty")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClient{
		client: client,
		bucket: bucketName,
		prefix: strings.Trim(prefix, "/"),
		log:    logger.Component("storage"),
	}, nil
}

// Close closes the GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// Location describes the bucket and prefix
func (g *GCSClient) Location() string {
	if g.prefix == "" {
		return fmt.Sprintf("gs://%s", g.bucket)
	}
	return fmt.Sprintf("gs://%s/%s", g.bucket, g.prefix)
}

func (g *GCSClient) objectName(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if g.prefix == "" {
		return name, nil
	}
	return g.prefix + "/" + name, nil
}

func (g *GCSClient) object(name string) (*storage.ObjectHandle, error) {
	objectName, err := g.objectName(name)
	if err != nil {
		return nil, err
	}
	return g.client.Bucket(g.bucket).Object(objectName), nil
}

// StoreFile uploads a file; the object only becomes visible once the writer is closed
func (g *GCSClient) StoreFile(ctx context.Context, name string, fileData []byte) error {
	obj, err := g.object(name)
	if err != nil {
		return err
	}

	g.log.Debug("Storing file to GCS", logger.Fields{"object": obj.ObjectName(), "bytes": len(fileData)})

	writer := obj.NewWriter(ctx)
	writer.ContentType = GetContentType(name)
	writer.CacheControl = "public, max-age=3600"
	writer.Metadata = map[string]string{
		"generated-at": time.Now().UTC().Format(time.RFC3339),
		"filename":     name,
	}

	if _, err := writer.Write(fileData); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write file to GCS: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize GCS file upload: %w", err)
	}

	return nil
}

// GetFile retrieves a file from GCS
func (g *GCSClient) GetFile(ctx context.Context, name string) ([]byte, error) {
	obj, err := g.object(name)
	if err != nil {
		return nil, err
	}

	reader, err := obj.NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to create reader for file %s: %w", name, err)
	}
	defer reader.Close()

	fileData, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}

	return fileData, nil
}

// FileExists checks if an object exists
func (g *GCSClient) FileExists(ctx context.Context, name string) (bool, error) {
	obj, err := g.object(name)
	if err != nil {
		return false, err
	}

	if _, err := obj.Attrs(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get attributes of %s: %w", name, err)
	}
	return true, nil
}

// ListFiles lists the objects directly under the prefix
func (g *GCSClient) ListFiles(ctx context.Context) ([]FileInfo, error) {
	query := &storage.Query{}
	if g.prefix != "" {
		query.Prefix = g.prefix + "/"
	}

	it := g.client.Bucket(g.bucket).Objects(ctx, query)

	var files []FileInfo
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}

		name := strings.TrimPrefix(attrs.Name, query.Prefix)
		if ValidateName(name) != nil {
			continue
		}
		files = append(files, FileInfo{
			Name:    name,
			Size:    attrs.Size,
			ModTime: attrs.Updated,
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// DeleteFile removes an object
func (g *GCSClient) DeleteFile(ctx context.Context, name string) error {
	obj, err := g.object(name)
	if err != nil {
		return err
	}

	if err := obj.Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return fmt.Errorf("failed to delete object %s: %w", name, err)
	}
	return nil
}
