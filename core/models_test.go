package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"same content produces same ID", "test content"},
		{"empty string", ""},
		{"long content", "This is a much longer piece of content that should still hash consistently"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, IDFromContent(tt.content), IDFromContent(tt.content))
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	assert.NotEqual(t, IDFromContent("content1"), IDFromContent("content2"))
}

func TestFingerprintOf(t *testing.T) {
	t.Run("stable for same path and model", func(t *testing.T) {
		assert.Equal(t,
			FingerprintOf("/data/terms.xlsx", "model-a"),
			FingerprintOf("/data/terms.xlsx", "model-a"))
	})

	t.Run("differs by model", func(t *testing.T) {
		assert.NotEqual(t,
			FingerprintOf("/data/terms.xlsx", "model-a"),
			FingerprintOf("/data/terms.xlsx", "model-b"))
	})

	t.Run("differs by path", func(t *testing.T) {
		assert.NotEqual(t,
			FingerprintOf("/data/terms.xlsx", "model-a"),
			FingerprintOf("/data/other.xlsx", "model-a"))
	})

	t.Run("relative path resolves to absolute", func(t *testing.T) {
		dir := t.TempDir()
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { _ = os.Chdir(wd) })

		abs, err := filepath.Abs("terms.xlsx")
		require.NoError(t, err)
		assert.Equal(t, FingerprintOf(abs, "m"), FingerprintOf("terms.xlsx", "m"))
	})

	t.Run("string is fixed width hex", func(t *testing.T) {
		assert.Len(t, Fingerprint(1).String(), 16)
		assert.Equal(t, "00000000000000ff", Fingerprint(255).String())
	})
}

func TestField_String(t *testing.T) {
	assert.Equal(t, "code", FieldCode.String())
	assert.Equal(t, "synonym", FieldSynonym.String())
	assert.Equal(t, "preferred_term", FieldPreferredTerm.String())
	assert.Equal(t, "field(9)", Field(9).String())
}

func TestReferenceRecord_Text(t *testing.T) {
	r := &ReferenceRecord{Code: "HGB", Synonyms: "Hemoglobin;HGB", PreferredTerm: "Hemoglobin Measurement"}
	assert.Equal(t, "HGB", r.Text(FieldCode))
	assert.Equal(t, "Hemoglobin;HGB", r.Text(FieldSynonym))
	assert.Equal(t, "Hemoglobin Measurement", r.Text(FieldPreferredTerm))
	assert.Empty(t, r.Text(Field(0)))
}

func TestProvenance(t *testing.T) {
	assert.Equal(t, "exact", ProvenanceExact.String())
	assert.Equal(t, "semantic", ProvenanceSemantic.String())

	exact := MatchResult{Provenance: ProvenanceExact}
	assert.True(t, exact.IsExact())
	semantic := MatchResult{}
	assert.False(t, semantic.IsExact())
}

func TestVectorSet_Embeddings(t *testing.T) {
	var set VectorSet
	for i, f := range SemanticFields {
		set.SetEmbeddings(f, []FieldEmbedding{{Row: i, Field: f}})
	}
	for i, f := range SemanticFields {
		got := set.Embeddings(f)
		require.Len(t, got, 1)
		assert.Equal(t, i, got[0].Row)
		assert.Equal(t, f, got[0].Field)
	}
	assert.Nil(t, set.Embeddings(Field(0)))
}
