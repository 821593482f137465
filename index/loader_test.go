package index

import (
	"context"
	"testing"

	"github.com/poiesic/labmatch/ai/mock"
	"github.com/poiesic/labmatch/core"
	"github.com/poiesic/labmatch/storage"
	"github.com/poiesic/labmatch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) storage.VectorCache {
	t.Helper()
	cache, err := badger.NewMemoryVectorCache()
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestLoadOrBuild_MissThenHit(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)
	embedder := mock.NewMockEmbedder()
	embedder.Dimension = 4
	b := newTestBuilder(t, embedder)

	set, cached, err := b.LoadOrBuild(ctx, cache, testRecords(), "/data/ref.xlsx", "mini")
	require.NoError(t, err)
	assert.False(t, cached)
	calls := embedder.CallCount()
	assert.Greater(t, calls, 0)

	again, cached, err := b.LoadOrBuild(ctx, cache, testRecords(), "/data/ref.xlsx", "mini")
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, calls, embedder.CallCount(), "cache hit must not embed")
	assert.Equal(t, set.Synonym[1].Whole, again.Synonym[1].Whole)
	assert.Len(t, again.Synonym[1].Atoms, 2)
}

func TestLoadOrBuild_ModelChangeRecomputes(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)
	embedder := mock.NewMockEmbedder()
	embedder.Dimension = 4
	b := newTestBuilder(t, embedder)

	_, _, err := b.LoadOrBuild(ctx, cache, testRecords(), "/data/ref.xlsx", "model-a")
	require.NoError(t, err)
	first := embedder.TextCount()

	set, cached, err := b.LoadOrBuild(ctx, cache, testRecords(), "/data/ref.xlsx", "model-b")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "model-b", set.Meta.Model)
	assert.Equal(t, 2*first, embedder.TextCount(), "every text should be embedded again")
}

func TestLoadOrBuild_RecordCountMismatch(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)
	embedder := mock.NewMockEmbedder()
	embedder.Dimension = 4
	b := newTestBuilder(t, embedder)

	// A stale entry saved under the right fingerprint but for fewer rows.
	stale, err := b.Build(ctx, testRecords()[:2], "/data/ref.xlsx", "mini")
	require.NoError(t, err)
	require.NoError(t, cache.Save(ctx, stale))

	set, cached, err := b.LoadOrBuild(ctx, cache, testRecords(), "/data/ref.xlsx", "mini")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 3, set.Meta.RecordCount)

	stored, err := cache.Load(ctx, set.Meta.Fingerprint)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Meta.RecordCount, "entry should be overwritten")
}

func TestCheckFresh(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.Dimension = 4
	b := newTestBuilder(t, embedder)
	set, err := b.Build(context.Background(), testRecords(), "/data/ref.xlsx", "mini")
	require.NoError(t, err)

	tests := []struct {
		name    string
		count   int
		model   string
		mutate  func(*core.VectorSet)
		wantErr bool
	}{
		{name: "fresh", count: 3, model: "mini"},
		{name: "count differs", count: 4, model: "mini", wantErr: true},
		{name: "model differs", count: 3, model: "other", wantErr: true},
		{
			name:  "dimension differs",
			count: 3,
			model: "mini",
			mutate: func(s *core.VectorSet) {
				s.Code[0].Whole = []float32{1}
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			copySet := *set
			copySet.Code = append([]core.FieldEmbedding(nil), set.Code...)
			if tt.mutate != nil {
				tt.mutate(&copySet)
			}
			err := CheckFresh(&copySet, tt.count, tt.model)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCacheStale)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
