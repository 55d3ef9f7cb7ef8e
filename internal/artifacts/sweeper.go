package artifacts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"visrender/internal/logger"
	"visrender/internal/storage"
)

// Sweeper deletes artifacts older than a retention period. Files that were
// not produced by NewName, such as the page runtime script, are never touched.
type Sweeper struct {
	store     storage.StorageClient
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
	log       *logger.Logger
}

// NewSweeper creates a sweeper; a zero retention disables deletion
func NewSweeper(store storage.StorageClient, retention, interval time.Duration) *Sweeper {
	return &Sweeper{
		store:     store,
		retention: retention,
		interval:  interval,
		now:       time.Now,
		log:       logger.Component("sweeper"),
	}
}

// SweepOnce deletes expired artifacts and returns how many were removed
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	if s.retention <= 0 {
		return 0, nil
	}

	files, err := s.store.ListFiles(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list artifacts: %w", err)
	}

	cutoff := s.now().Add(-s.retention)
	removed := 0
	var errs []error
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if !IsArtifactName(file.Name) || !file.ModTime.Before(cutoff) {
			continue
		}
		if err := s.store.DeleteFile(ctx, file.Name); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			errs = append(errs, err)
			continue
		}
		removed++
	}

	if len(errs) > 0 {
		return removed, fmt.Errorf("failed to delete %d artifacts: %w", len(errs), errors.Join(errs...))
	}
	return removed, nil
}

// Run sweeps immediately and then on every interval until ctx is done
func (s *Sweeper) Run(ctx context.Context) {
	if s.retention <= 0 || s.interval <= 0 {
		return
	}

	s.log.Info("Artifact retention enabled", logger.Fields{
		"retention": s.retention.String(),
		"interval":  s.interval.String(),
		"location":  s.store.Location(),
	})

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.sweep(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	removed, err := s.SweepOnce(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.log.Error("Artifact sweep failed", err, logger.Fields{"removed": removed})
		return
	}
	if removed > 0 {
		s.log.Info("Expired artifacts removed", logger.Fields{"removed": removed})
	}
}
