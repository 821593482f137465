// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a 64-bit content-derived identifier.
type ID uint64

// IDFromContent hashes text into an ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Fingerprint identifies a (source table, embedding model) pairing.
// Cached vectors are only reused under an identical fingerprint.
type Fingerprint ID

// FingerprintOf derives the fingerprint for a source path and model.
// Relative paths are made absolute first so the same file always maps to
// the same fingerprint regardless of the working directory.
func FingerprintOf(sourcePath, model string) Fingerprint {
	if abs, err := filepath.Abs(sourcePath); err == nil {
		sourcePath = abs
	}
	return Fingerprint(IDFromContent(sourcePath + "_" + model))
}

// String renders the fingerprint as fixed-width hex.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x", uint64(f))
}

// Field names one of the semantic columns of a reference record.
type Field int

const (
	// FieldCode is the submission value column (lowest fusion priority).
	FieldCode Field = iota + 1
	// FieldSynonym is the semicolon-delimited synonym column.
	FieldSynonym
	// FieldPreferredTerm is the semicolon-delimited preferred term column.
	FieldPreferredTerm
)

// SemanticFields lists the scored fields in storage order.
var SemanticFields = []Field{FieldCode, FieldSynonym, FieldPreferredTerm}

func (f Field) String() string {
	switch f {
	case FieldCode:
		return "code"
	case FieldSynonym:
		return "synonym"
	case FieldPreferredTerm:
		return "preferred_term"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// ReferenceRecord is one row of the controlled terminology table.
// Row is the stable zero-based position in the loaded table.
type ReferenceRecord struct {
	Row           int
	Codelist      string
	Code          string // CDISC Submission Value
	Synonyms      string // CDISC Synonym(s), semicolon-delimited
	PreferredTerm string // NCI Preferred Term, semicolon-delimited
}

// Text returns the raw text of a semantic field.
func (r *ReferenceRecord) Text(f Field) string {
	switch f {
	case FieldCode:
		return r.Code
	case FieldSynonym:
		return r.Synonyms
	case FieldPreferredTerm:
		return r.PreferredTerm
	default:
		return ""
	}
}

// MappingRecord is one row of the curated exact-match table.
type MappingRecord struct {
	Row         int
	Test        string // TEST
	Chinese     string // TESTS_CN
	English     string // TESTS_EN
	Description string // TESTDS, display only
}

// Provenance tells how a match was found.
type Provenance int

const (
	// ProvenanceSemantic marks a result ranked by embedding similarity.
	ProvenanceSemantic Provenance = iota
	// ProvenanceExact marks a mapping table hit.
	ProvenanceExact
)

func (p Provenance) String() string {
	if p == ProvenanceExact {
		return "exact"
	}
	return "semantic"
}

// NoRow is the row index reported for mapping table hits.
const NoRow = -1

// MatchResult is a single ranked answer to a query.
// Exact results fill the mapping fields, semantic results the reference fields.
type MatchResult struct {
	Similarity float64
	Provenance Provenance
	RowIndex   int // reference row, or NoRow for exact hits
	MappingRow int // mapping row for exact hits, NoRow otherwise

	Description string
	Chinese     string
	English     string

	Code          string
	Synonyms      string
	PreferredTerm string
}

// IsExact reports whether the result came from the mapping table.
func (m *MatchResult) IsExact() bool {
	return m.Provenance == ProvenanceExact
}

// AtomEmbedding is the vector of one synonym atom.
type AtomEmbedding struct {
	Text   string
	Vector []float32
}

// FieldEmbedding holds the vectors of one field of one reference record.
// Atoms is only populated for fields that expand to more than one atom.
type FieldEmbedding struct {
	Row   int
	Field Field
	Whole []float32
	Atoms []AtomEmbedding
}

// CacheMeta describes a persisted vector set.
type CacheMeta struct {
	Fingerprint Fingerprint
	SourcePath  string
	Model       string
	RecordCount int
	Dimension   int
	BuiltAt     time.Time
}

// VectorSet is every field vector of a loaded corpus.
// Each slice is indexed by reference row.
type VectorSet struct {
	Meta          CacheMeta
	Code          []FieldEmbedding
	Synonym       []FieldEmbedding
	PreferredTerm []FieldEmbedding
}

// Embeddings returns the per-row embeddings of a field.
func (v *VectorSet) Embeddings(f Field) []FieldEmbedding {
	switch f {
	case FieldCode:
		return v.Code
	case FieldSynonym:
		return v.Synonym
	case FieldPreferredTerm:
		return v.PreferredTerm
	default:
		return nil
	}
}

// SetEmbeddings replaces the per-row embeddings of a field.
func (v *VectorSet) SetEmbeddings(f Field, embeddings []FieldEmbedding) {
	switch f {
	case FieldCode:
		v.Code = embeddings
	case FieldSynonym:
		v.Synonym = embeddings
	case FieldPreferredTerm:
		v.PreferredTerm = embeddings
	}
}
