package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateReferenceRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *ReferenceRecord
		wantErr error
	}{
		{"valid record", &ReferenceRecord{Row: 0, Code: "HGB"}, nil},
		{"some empty fields allowed", &ReferenceRecord{Row: 3, PreferredTerm: "Hemoglobin Measurement"}, nil},
		{"no semantic field", &ReferenceRecord{Row: 3, Codelist: "Laboratory Test Code"}, ErrEmptyFields},
		{"nil record", nil, ErrInvalidRecord},
		{"negative row", &ReferenceRecord{Row: -1}, ErrNegativeRow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReferenceRecord(tt.record)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateMappingRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *MappingRecord
		wantErr error
	}{
		{"test only", &MappingRecord{Test: "HGB"}, nil},
		{"chinese only", &MappingRecord{Chinese: "血红蛋白"}, nil},
		{"description only", &MappingRecord{Description: "Hemoglobin"}, ErrEmptyFields},
		{"nil record", nil, ErrInvalidMapping},
		{"negative row", &MappingRecord{Row: -2, Test: "HGB"}, ErrNegativeRow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMappingRecord(tt.record)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidMapping)
		})
	}
}

func validSet(rows, dim int) *VectorSet {
	set := &VectorSet{Meta: CacheMeta{RecordCount: rows, Dimension: dim}}
	for _, f := range SemanticFields {
		embeddings := make([]FieldEmbedding, rows)
		for i := range embeddings {
			embeddings[i] = FieldEmbedding{Row: i, Field: f, Whole: make([]float32, dim)}
		}
		set.SetEmbeddings(f, embeddings)
	}
	return set
}

func TestValidateVectorSet(t *testing.T) {
	t.Run("valid set", func(t *testing.T) {
		set := validSet(3, 4)
		set.Synonym[1].Atoms = []AtomEmbedding{{Text: "a", Vector: make([]float32, 4)}}
		assert.NoError(t, ValidateVectorSet(set))
	})

	t.Run("empty corpus is consistent", func(t *testing.T) {
		assert.NoError(t, ValidateVectorSet(validSet(0, 4)))
	})

	t.Run("nil set", func(t *testing.T) {
		assert.ErrorIs(t, ValidateVectorSet(nil), ErrInvalidVectorSet)
	})

	t.Run("missing rows", func(t *testing.T) {
		set := validSet(3, 4)
		set.PreferredTerm = set.PreferredTerm[:2]
		err := ValidateVectorSet(set)
		assert.ErrorIs(t, err, ErrInvalidVectorSet)
		assert.ErrorIs(t, err, ErrRecordCountMismatch)
	})

	t.Run("row out of order", func(t *testing.T) {
		set := validSet(3, 4)
		set.Code[0], set.Code[1] = set.Code[1], set.Code[0]
		assert.ErrorIs(t, ValidateVectorSet(set), ErrRowOutOfOrder)
	})

	t.Run("wrong whole dimension", func(t *testing.T) {
		set := validSet(2, 4)
		set.Code[1].Whole = make([]float32, 3)
		assert.ErrorIs(t, ValidateVectorSet(set), ErrInconsistentDimension)
	})

	t.Run("wrong atom dimension", func(t *testing.T) {
		set := validSet(2, 4)
		set.Synonym[0].Atoms = []AtomEmbedding{{Text: "a", Vector: make([]float32, 5)}}
		assert.ErrorIs(t, ValidateVectorSet(set), ErrInconsistentDimension)
	})
}
