package report

import (
	"encoding/json"
	"io"

	"github.com/poiesic/labmatch/core"
)

// Document is the structured form of a result list.
type Document struct {
	TotalMatches int      `json:"total_matches"`
	Results      []Result `json:"results"`
}

// Result is one entry of a Document. Its JSON field set depends on
// provenance.
type Result struct {
	core.MatchResult
}

type exactView struct {
	Similarity   float64 `json:"similarity"`
	Provenance   string  `json:"provenance"`
	IsExactMatch bool    `json:"is_exact_match"`
	MappingRow   int     `json:"mapping_row"`
	Test         string  `json:"test"`
	Description  string  `json:"description"`
	Chinese      string  `json:"chinese"`
	English      string  `json:"english"`
}

type semanticView struct {
	Similarity    float64 `json:"similarity"`
	Provenance    string  `json:"provenance"`
	IsExactMatch  bool    `json:"is_exact_match"`
	RowIndex      int     `json:"row_index"`
	Code          string  `json:"code"`
	Synonyms      string  `json:"synonyms"`
	PreferredTerm string  `json:"preferred_term"`
}

// MarshalJSON encodes exact hits with the mapping fields and semantic hits
// with the reference fields.
func (r Result) MarshalJSON() ([]byte, error) {
	m := r.MatchResult
	if m.IsExact() {
		return json.Marshal(exactView{
			Similarity:   m.Similarity,
			Provenance:   m.Provenance.String(),
			IsExactMatch: true,
			MappingRow:   m.MappingRow,
			Test:         m.Code,
			Description:  m.Description,
			Chinese:      m.Chinese,
			English:      m.English,
		})
	}
	return json.Marshal(semanticView{
		Similarity:    m.Similarity,
		Provenance:    m.Provenance.String(),
		RowIndex:      m.RowIndex,
		Code:          m.Code,
		Synonyms:      m.Synonyms,
		PreferredTerm: m.PreferredTerm,
	})
}

// Structured wraps results into a Document. A nil slice yields an empty,
// non-nil result list.
func Structured(results []core.MatchResult) Document {
	doc := Document{
		TotalMatches: len(results),
		Results:      make([]Result, len(results)),
	}
	for i, r := range results {
		doc.Results[i] = Result{r}
	}
	return doc
}

// WriteJSON writes the structured form of results to w as indented JSON.
func WriteJSON(w io.Writer, results []core.MatchResult) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(Structured(results))
}
