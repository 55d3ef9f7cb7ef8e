// Package assets installs static files the generated pages depend on.
package assets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"visrender/internal/logger"
	"visrender/internal/pages"
	"visrender/internal/storage"
)

// Fetcher downloads the gpt-vis browser runtime into artifact storage
type Fetcher struct {
	client *resty.Client
	store  storage.StorageClient
	log    *logger.Logger
}

// NewFetcher creates a fetcher with the usual timeout and retry policy
func NewFetcher(store storage.StorageClient) *Fetcher {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(2 * time.Second)

	return &Fetcher{
		client: client,
		store:  store,
		log:    logger.Component("assets"),
	}
}

// EnsureRuntime stores the runtime script under pages.RuntimeScript unless it
// is already present. It reports whether a download happened.
func (f *Fetcher) EnsureRuntime(ctx context.Context, url string) (bool, error) {
	if url == "" {
		return false, nil
	}

	exists, err := f.store.FileExists(ctx, pages.RuntimeScript)
	if err != nil {
		return false, fmt.Errorf("failed to check runtime script: %w", err)
	}
	if exists {
		f.log.Debug("Runtime script already present", logger.Fields{"file": pages.RuntimeScript})
		return false, nil
	}

	data, err := f.download(ctx, url)
	if err != nil {
		return false, err
	}

	if err := f.store.StoreFile(ctx, pages.RuntimeScript, data); err != nil {
		return false, fmt.Errorf("failed to store runtime script: %w", err)
	}

	f.log.Info("Runtime script installed", logger.Fields{
		"file":     pages.RuntimeScript,
		"bytes":    len(data),
		"location": f.store.Location(),
	})
	return true, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/javascript, */*").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download runtime script: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("runtime script download returned status %d", resp.StatusCode())
	}
	if len(resp.Body()) == 0 {
		return nil, errors.New("runtime script download returned an empty body")
	}
	return resp.Body(), nil
}
