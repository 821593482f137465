package storage

import (
	"context"

	"github.com/poiesic/labmatch/core"
)

// VectorCache persists embedding sets keyed by the fingerprint of the
// reference file path and embedding model.
// Implementations must be thread-safe and support concurrent access.
type VectorCache interface {
	// Load returns the full vector set stored under fp.
	// Returns ErrNotFound if nothing is stored under fp and
	// ErrTruncatedData if the metadata is present but rows are missing.
	Load(ctx context.Context, fp core.Fingerprint) (*core.VectorSet, error)

	// Save replaces whatever is stored under set.Meta.Fingerprint.
	Save(ctx context.Context, set *core.VectorSet) error

	// Delete removes the entry for fp. Deleting a missing entry is not an error.
	Delete(ctx context.Context, fp core.Fingerprint) error

	// List returns the metadata of every stored entry.
	List(ctx context.Context) ([]core.CacheMeta, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
