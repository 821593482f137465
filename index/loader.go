package index

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/poiesic/labmatch/core"
	"github.com/poiesic/labmatch/storage"
)

// CheckFresh reports whether a cached set describes a corpus of
// recordCount rows embedded with model. A mismatch wraps ErrCacheStale.
func CheckFresh(set *core.VectorSet, recordCount int, model string) error {
	if set.Meta.RecordCount != recordCount {
		return fmt.Errorf("%w: record count %d, corpus has %d", ErrCacheStale, set.Meta.RecordCount, recordCount)
	}
	if set.Meta.Model != model {
		return fmt.Errorf("%w: model %q, want %q", ErrCacheStale, set.Meta.Model, model)
	}
	if err := core.ValidateVectorSet(set); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheStale, err)
	}
	return nil
}

// LoadOrBuild returns the cached vector set for (sourcePath, model) when it
// is fresh, otherwise builds a new one and overwrites the cache entry.
// The boolean reports whether the cache was used. Cache read and write
// problems are logged and never fatal.
func (b *Builder) LoadOrBuild(ctx context.Context, cache storage.VectorCache, records []core.ReferenceRecord, sourcePath, model string) (*core.VectorSet, bool, error) {
	absPath, err := filepath.Abs(sourcePath)
	if err != nil {
		absPath = sourcePath
	}
	fp := core.FingerprintOf(absPath, model)
	logger := b.logger.With("fingerprint", fp.String())

	set, err := cache.Load(ctx, fp)
	switch {
	case err == nil:
		freshErr := CheckFresh(set, len(records), model)
		if freshErr == nil {
			logger.Info("vector cache hit", "records", set.Meta.RecordCount, "dimension", set.Meta.Dimension)
			return set, true, nil
		}
		logger.Warn("vector cache mismatch, recomputing", "err", freshErr)
	case errors.Is(err, storage.ErrNotFound):
		logger.Info("vector cache miss")
	case ctx.Err() != nil:
		return nil, false, ctx.Err()
	default:
		logger.Warn("vector cache unreadable, recomputing", "err", err)
	}

	set, err = b.Build(ctx, records, absPath, model)
	if err != nil {
		return nil, false, err
	}

	if err := cache.Save(ctx, set); err != nil {
		logger.Warn("failed to save vector cache", "err", err)
	}
	return set, false, nil
}
