package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/labmatch/core"
	"github.com/poiesic/labmatch/storage"
)

// VectorCache implements storage.VectorCache for BadgerDB.
type VectorCache struct {
	backend *Backend
	owned   bool
}

var _ storage.VectorCache = (*VectorCache)(nil)

// NewVectorCache opens (or creates) a persistent vector cache in dir.
func NewVectorCache(dir string) (storage.VectorCache, error) {
	backend, err := OpenBackend(dir, false)
	if err != nil {
		return nil, err
	}
	return &VectorCache{backend: backend, owned: true}, nil
}

// NewVectorCacheWithBackend wraps an already open backend. Closing the
// cache leaves the backend open.
func NewVectorCacheWithBackend(backend *Backend) *VectorCache {
	return &VectorCache{backend: backend}
}

// Close closes the backend if the cache opened it.
func (c *VectorCache) Close() error {
	if c.owned && !c.backend.IsClosed() {
		return c.backend.Close()
	}
	return nil
}

// Load reads the metadata and every field embedding stored under fp.
func (c *VectorCache) Load(ctx context.Context, fp core.Fingerprint) (*core.VectorSet, error) {
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	set := &core.VectorSet{}
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		meta, err := readMeta(tx, fp)
		if err != nil {
			return err
		}
		set.Meta = *meta

		for _, field := range core.SemanticFields {
			if err := ctx.Err(); err != nil {
				return err
			}
			embeddings, err := readField(tx, fp, field, meta.RecordCount)
			if err != nil {
				return err
			}
			set.SetEmbeddings(field, embeddings)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Save replaces the entry for set.Meta.Fingerprint. Embeddings are written
// first and the metadata last, so an interrupted save leaves no metadata
// and reads back as a miss.
func (c *VectorCache) Save(ctx context.Context, set *core.VectorSet) error {
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	fp := set.Meta.Fingerprint

	if err := c.Delete(ctx, fp); err != nil {
		return err
	}

	wb := c.backend.NewWriteBatch()
	for _, field := range core.SemanticFields {
		embeddings := set.Embeddings(field)
		for i := range embeddings {
			if err := ctx.Err(); err != nil {
				wb.Cancel()
				return err
			}
			e := &embeddings[i]
			if err := wb.Set(makeFieldKey(fp, field, e.Row), storage.MarshalFieldEmbedding(e)); err != nil {
				wb.Cancel()
				return err
			}
		}
	}
	if err := wb.Flush(); err != nil {
		return err
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeMetaKey(fp), storage.MarshalCacheMeta(&set.Meta)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Delete removes the metadata and all embeddings stored under fp.
func (c *VectorCache) Delete(ctx context.Context, fp core.Fingerprint) error {
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeMetaKey(fp)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	var keys [][]byte
	err = c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = makePartialFieldKey(fp, 0)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		return nil
	}, false)
	if err != nil || len(keys) == 0 {
		return err
	}

	wb := c.backend.NewWriteBatch()
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			wb.Cancel()
			return err
		}
		if err := wb.Delete(key); err != nil {
			wb.Cancel()
			return err
		}
	}
	return wb.Flush()
}

// List returns the metadata of every stored entry in key order.
func (c *VectorCache) List(ctx context.Context) ([]core.CacheMeta, error) {
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var metas []core.CacheMeta
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeMetaScanPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var meta *core.CacheMeta
			err := iter.Item().Value(func(val []byte) error {
				var err error
				meta, err = storage.UnmarshalCacheMeta(val)
				return err
			})
			if err != nil {
				return err
			}
			metas = append(metas, *meta)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return metas, nil
}

func readMeta(tx *badger.Txn, fp core.Fingerprint) (*core.CacheMeta, error) {
	item, err := tx.Get(makeMetaKey(fp))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	var meta *core.CacheMeta
	err = item.Value(func(val []byte) error {
		var err error
		meta, err = storage.UnmarshalCacheMeta(val)
		return err
	})
	return meta, err
}

// readField scans one field's embeddings in row order and checks that
// exactly count contiguous rows are present.
func readField(tx *badger.Txn, fp core.Fingerprint, field core.Field, count int) ([]core.FieldEmbedding, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = makePartialFieldKey(fp, field)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	embeddings := make([]core.FieldEmbedding, 0, count)
	for iter.Rewind(); iter.Valid(); iter.Next() {
		var e *core.FieldEmbedding
		err := iter.Item().Value(func(val []byte) error {
			var err error
			e, err = storage.UnmarshalFieldEmbedding(val)
			return err
		})
		if err != nil {
			return nil, err
		}
		if e.Row != len(embeddings) {
			return nil, fmt.Errorf("%w: %s row %d missing", storage.ErrTruncatedData, field, len(embeddings))
		}
		embeddings = append(embeddings, *e)
	}

	if len(embeddings) != count {
		return nil, fmt.Errorf("%w: %s has %d of %d rows", storage.ErrTruncatedData, field, len(embeddings), count)
	}
	return embeddings, nil
}
