package match

import (
	"github.com/poiesic/labmatch/core"
	"github.com/poiesic/labmatch/textnorm"
)

// exactEntry holds the normalized candidates of one mapping row, per match
// field in priority order TEST, TESTS_CN, TESTS_EN.
type exactEntry struct {
	record     core.MappingRecord
	candidates [3][]string
}

// ExactResolver looks a query up in the mapping table.
// A nil *ExactResolver is a disabled resolver that never matches.
type ExactResolver struct {
	entries []exactEntry
}

// NewExactResolver prepares the mapping records for lookup. Each match
// field contributes its normalized value and its normalized atoms.
func NewExactResolver(records []core.MappingRecord) *ExactResolver {
	r := &ExactResolver{entries: make([]exactEntry, 0, len(records))}
	for _, record := range records {
		entry := exactEntry{record: record}
		for i, field := range []string{record.Test, record.Chinese, record.English} {
			entry.candidates[i] = exactCandidates(field)
		}
		r.entries = append(r.entries, entry)
	}
	return r
}

func exactCandidates(field string) []string {
	if field == "" {
		return nil
	}
	candidates := []string{textnorm.Normalize(field)}
	atoms := textnorm.Expand(field)
	if len(atoms) > 1 {
		for _, atom := range atoms {
			candidates = append(candidates, textnorm.Normalize(atom))
		}
	}
	return candidates
}

// Enabled reports whether the resolver scans anything.
func (r *ExactResolver) Enabled() bool {
	return r != nil
}

// Len returns the number of mapping rows.
func (r *ExactResolver) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Resolve returns one exact result per mapping row whose first matching
// field equals the normalized query, in table order. The boolean is false
// when nothing matched, which tells the caller to fall through to
// semantic search.
func (r *ExactResolver) Resolve(query string) ([]core.MatchResult, bool) {
	if r == nil {
		return nil, false
	}
	normalized := textnorm.Normalize(query)

	var results []core.MatchResult
	for _, entry := range r.entries {
		if !entry.matches(normalized) {
			continue
		}
		results = append(results, core.MatchResult{
			Similarity:  1.0,
			Provenance:  core.ProvenanceExact,
			RowIndex:    core.NoRow,
			MappingRow:  entry.record.Row,
			Description: entry.record.Description,
			Chinese:     entry.record.Chinese,
			English:     entry.record.English,
			Code:        entry.record.Test,
		})
	}
	return results, len(results) > 0
}

// matches tests the fields in priority order and stops at the first hit.
func (e *exactEntry) matches(normalized string) bool {
	for _, candidates := range e.candidates {
		for _, c := range candidates {
			if c == normalized {
				return true
			}
		}
	}
	return false
}
