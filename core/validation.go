package core

import "fmt"

// ValidateReferenceRecord validates a ReferenceRecord.
//
// Validation rules:
//   - Row must not be negative
//   - At least one of Code, Synonyms, PreferredTerm must be set
//
// Individual empty fields are allowed; they embed as zero vectors.
func ValidateReferenceRecord(record *ReferenceRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}
	if record.Row < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrNegativeRow)
	}
	if record.Code == "" && record.Synonyms == "" && record.PreferredTerm == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyFields)
	}
	return nil
}

// ValidateMappingRecord validates a MappingRecord.
//
// Validation rules:
//   - Row must not be negative
//   - At least one of Test, Chinese, English must be set
func ValidateMappingRecord(record *MappingRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidMapping)
	}
	if record.Row < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidMapping, ErrNegativeRow)
	}
	if record.Test == "" && record.Chinese == "" && record.English == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMapping, ErrEmptyFields)
	}
	return nil
}

// ValidateVectorSet checks that a VectorSet is internally consistent:
// every field has one embedding per record, in row order, and every vector
// (whole field and atoms) has the dimension recorded in Meta.
func ValidateVectorSet(set *VectorSet) error {
	if set == nil {
		return fmt.Errorf("%w: vector set is nil", ErrInvalidVectorSet)
	}

	count := set.Meta.RecordCount
	dim := set.Meta.Dimension
	for _, field := range SemanticFields {
		embeddings := set.Embeddings(field)
		if len(embeddings) != count {
			return fmt.Errorf("%w: %w: %s has %d entries, want %d",
				ErrInvalidVectorSet, ErrRecordCountMismatch, field, len(embeddings), count)
		}
		for i, fe := range embeddings {
			if fe.Row != i || fe.Field != field {
				return fmt.Errorf("%w: %w: %s entry %d holds row %d of %s",
					ErrInvalidVectorSet, ErrRowOutOfOrder, field, i, fe.Row, fe.Field)
			}
			if len(fe.Whole) != dim {
				return fmt.Errorf("%w: %w: %s row %d has %d, want %d",
					ErrInvalidVectorSet, ErrInconsistentDimension, field, i, len(fe.Whole), dim)
			}
			for _, atom := range fe.Atoms {
				if len(atom.Vector) != dim {
					return fmt.Errorf("%w: %w: %s row %d atom %q has %d, want %d",
						ErrInvalidVectorSet, ErrInconsistentDimension, field, i, atom.Text, len(atom.Vector), dim)
				}
			}
		}
	}
	return nil
}
