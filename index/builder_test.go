package index

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/poiesic/labmatch/ai/mock"
	"github.com/poiesic/labmatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() []core.ReferenceRecord {
	return []core.ReferenceRecord{
		{Row: 0, Code: "HGB", Synonyms: "Hemoglobin", PreferredTerm: "Hemoglobin Measurement"},
		{Row: 1, Code: "ALBGLOB", Synonyms: "Albumin/Globulin Ratio;A/G Ratio", PreferredTerm: "Albumin to Globulin Ratio Measurement"},
		{Row: 2, Code: "WBC", Synonyms: "", PreferredTerm: "Leukocyte Count;White Blood Cell Count"},
	}
}

func newTestBuilder(t *testing.T, embedder *mock.MockEmbedder, opts ...Option) *Builder {
	t.Helper()
	config := DefaultConfig()
	config.BatchSize = 2
	config.Workers = 2
	config.RetryDelay = 0
	b, err := NewBuilder(embedder, config, opts...)
	require.NoError(t, err)
	t.Cleanup(b.Release)
	return b
}

func TestNewBuilder_RequiresEmbedder(t *testing.T) {
	_, err := NewBuilder(nil, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestConfig_WithDefaults(t *testing.T) {
	config := (&Config{BatchSize: 8}).withDefaults()
	assert.Equal(t, 8, config.BatchSize)
	assert.Equal(t, DefaultConfig().MaxRetries, config.MaxRetries)
	assert.GreaterOrEqual(t, config.Workers, 1)

	assert.Equal(t, 32, (*Config)(nil).withDefaults().BatchSize)
}

func TestBuilder_Build(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.Dimension = 8
	var progress bytes.Buffer
	b := newTestBuilder(t, embedder, WithProgress(&progress))

	set, err := b.Build(context.Background(), testRecords(), "/data/ref.xlsx", "mini")
	require.NoError(t, err)
	require.NoError(t, core.ValidateVectorSet(set))

	assert.Equal(t, 3, set.Meta.RecordCount)
	assert.Equal(t, 8, set.Meta.Dimension)
	assert.Equal(t, "mini", set.Meta.Model)
	assert.Equal(t, core.FingerprintOf("/data/ref.xlsx", "mini"), set.Meta.Fingerprint)
	assert.False(t, set.Meta.BuiltAt.IsZero())

	t.Run("atoms only for multi-valued synonym and preferred fields", func(t *testing.T) {
		assert.Empty(t, set.Code[1].Atoms)
		assert.Empty(t, set.Synonym[0].Atoms)
		require.Len(t, set.Synonym[1].Atoms, 2)
		assert.Equal(t, "Albumin/Globulin Ratio", set.Synonym[1].Atoms[0].Text)
		assert.Equal(t, "A/G Ratio", set.Synonym[1].Atoms[1].Text)
		require.Len(t, set.PreferredTerm[2].Atoms, 2)
		assert.Equal(t, "White Blood Cell Count", set.PreferredTerm[2].Atoms[1].Text)
	})

	t.Run("vectors match the embedder", func(t *testing.T) {
		want := NormalizeVector(mock.GenerateDeterministicVector("Hemoglobin", 8))
		assert.InDeltaSlice(t, want, set.Synonym[0].Whole, 1e-6)
	})

	t.Run("empty field gets a zero vector", func(t *testing.T) {
		assert.Equal(t, make([]float32, 8), set.Synonym[2].Whole)
	})

	assert.Contains(t, progress.String(), "Embedding")
}

func TestBuilder_BuildDeduplicatesTexts(t *testing.T) {
	var mu sync.Mutex
	counts := make(map[string]int)
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		mu.Lock()
		defer mu.Unlock()
		out := make([][]float32, len(texts))
		for i, text := range texts {
			counts[text]++
			out[i] = []float32{1, 0}
		}
		return out, nil
	}
	b := newTestBuilder(t, embedder)

	records := []core.ReferenceRecord{
		{Row: 0, Code: "HGB", Synonyms: "Hemoglobin", PreferredTerm: "Hemoglobin"},
		{Row: 1, Code: "HGB2", Synonyms: "Hemoglobin;HGB", PreferredTerm: "Hemoglobin"},
	}
	_, err := b.Build(context.Background(), records, "/data/ref.xlsx", "mini")
	require.NoError(t, err)

	for text, n := range counts {
		assert.Equal(t, 1, n, "text %q embedded more than once", text)
	}
	assert.Equal(t, 1, counts["HGB"])
}

func TestBuilder_BuildFailure(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("provider down")
	}
	b := newTestBuilder(t, embedder)

	_, err := b.Build(context.Background(), testRecords(), "/data/ref.xlsx", "mini")
	assert.ErrorIs(t, err, ErrEmbeddingFailed)
}

func TestBuilder_InconsistentDimension(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, text := range texts {
			if text == "HGB" {
				out[i] = []float32{1, 0, 0}
			} else {
				out[i] = []float32{1, 0}
			}
		}
		return out, nil
	}
	b := newTestBuilder(t, embedder)

	_, err := b.Build(context.Background(), testRecords(), "/data/ref.xlsx", "mini")
	assert.ErrorIs(t, err, core.ErrInconsistentDimension)
}

func TestBuilder_AllBlank(t *testing.T) {
	b := newTestBuilder(t, mock.NewMockEmbedder())

	_, err := b.Build(context.Background(), []core.ReferenceRecord{{Row: 0}}, "/data/ref.xlsx", "mini")
	assert.ErrorIs(t, err, ErrNoVectors)
}
