package badger

import (
	"context"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/labmatch/core"
	"github.com/poiesic/labmatch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVectorSet(fp core.Fingerprint, rows int) *core.VectorSet {
	set := &core.VectorSet{
		Meta: core.CacheMeta{
			Fingerprint: fp,
			SourcePath:  "/data/ref.xlsx",
			Model:       "mini",
			RecordCount: rows,
			Dimension:   2,
			BuiltAt:     time.Now().UTC().Truncate(time.Microsecond),
		},
	}
	for _, field := range core.SemanticFields {
		embeddings := make([]core.FieldEmbedding, rows)
		for i := range embeddings {
			embeddings[i] = core.FieldEmbedding{
				Row:   i,
				Field: field,
				Whole: []float32{float32(i), float32(field)},
			}
		}
		set.SetEmbeddings(field, embeddings)
	}
	set.Synonym[0].Atoms = []core.AtomEmbedding{
		{Text: "HGB", Vector: []float32{1, 0}},
		{Text: "Hemoglobin", Vector: []float32{0, 1}},
	}
	return set
}

func TestVectorCache_LoadMissing(t *testing.T) {
	cache, err := NewMemoryVectorCache()
	require.NoError(t, err)
	defer cache.Close()

	_, err = cache.Load(context.Background(), core.Fingerprint(1))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestVectorCache_SaveLoad(t *testing.T) {
	cache, err := NewMemoryVectorCache()
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	set := testVectorSet(core.Fingerprint(42), 300)
	require.NoError(t, cache.Save(ctx, set))

	loaded, err := cache.Load(ctx, set.Meta.Fingerprint)
	require.NoError(t, err)

	assert.Equal(t, set.Meta.RecordCount, loaded.Meta.RecordCount)
	assert.Equal(t, set.Meta.Model, loaded.Meta.Model)
	assert.True(t, set.Meta.BuiltAt.Equal(loaded.Meta.BuiltAt))
	for _, field := range core.SemanticFields {
		got := loaded.Embeddings(field)
		require.Len(t, got, 300, field.String())
		for i, e := range got {
			assert.Equal(t, i, e.Row)
			assert.Equal(t, field, e.Field)
			assert.Equal(t, set.Embeddings(field)[i].Whole, e.Whole)
		}
	}
	require.Len(t, loaded.Synonym[0].Atoms, 2)
	assert.Equal(t, "Hemoglobin", loaded.Synonym[0].Atoms[1].Text)
	assert.NoError(t, core.ValidateVectorSet(loaded))
}

func TestVectorCache_SaveReplaces(t *testing.T) {
	cache, err := NewMemoryVectorCache()
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	fp := core.Fingerprint(5)
	require.NoError(t, cache.Save(ctx, testVectorSet(fp, 10)))
	require.NoError(t, cache.Save(ctx, testVectorSet(fp, 4)))

	loaded, err := cache.Load(ctx, fp)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.Meta.RecordCount)
	assert.Len(t, loaded.Code, 4)
}

func TestVectorCache_DeleteAndList(t *testing.T) {
	cache, err := NewMemoryVectorCache()
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	require.NoError(t, cache.Save(ctx, testVectorSet(core.Fingerprint(1), 3)))
	require.NoError(t, cache.Save(ctx, testVectorSet(core.Fingerprint(2), 3)))

	metas, err := cache.List(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, core.Fingerprint(1), metas[0].Fingerprint)
	assert.Equal(t, core.Fingerprint(2), metas[1].Fingerprint)

	require.NoError(t, cache.Delete(ctx, core.Fingerprint(1)))
	_, err = cache.Load(ctx, core.Fingerprint(1))
	assert.ErrorIs(t, err, storage.ErrNotFound)

	metas, err = cache.List(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 1)

	t.Run("deleting missing entry is not an error", func(t *testing.T) {
		assert.NoError(t, cache.Delete(ctx, core.Fingerprint(77)))
	})
}

func TestVectorCache_TruncatedEntry(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()
	cache := NewVectorCacheWithBackend(backend)

	ctx := context.Background()
	fp := core.Fingerprint(9)
	require.NoError(t, cache.Save(ctx, testVectorSet(fp, 5)))

	err = backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeFieldKey(fp, core.FieldPreferredTerm, 2)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	require.NoError(t, err)

	_, err = cache.Load(ctx, fp)
	assert.ErrorIs(t, err, storage.ErrTruncatedData)
}

func TestVectorCache_Persistent(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	fp := core.Fingerprint(11)

	cache, err := NewVectorCache(dir)
	require.NoError(t, err)
	require.NoError(t, cache.Save(ctx, testVectorSet(fp, 6)))
	require.NoError(t, cache.Close())

	reopened, err := NewVectorCache(dir)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(ctx, fp)
	require.NoError(t, err)
	assert.Equal(t, 6, loaded.Meta.RecordCount)
}

func TestVectorCache_Closed(t *testing.T) {
	cache, err := NewMemoryVectorCache()
	require.NoError(t, err)
	require.NoError(t, cache.Close())

	_, err = cache.Load(context.Background(), core.Fingerprint(1))
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
