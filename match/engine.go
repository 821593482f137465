package match

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/labmatch/ai"
	"github.com/poiesic/labmatch/core"
	"github.com/poiesic/labmatch/textnorm"
)

// Engine answers queries over one loaded corpus. The corpus and its vectors
// are read-only after construction.
type Engine struct {
	records   []core.ReferenceRecord
	vectors   *core.VectorSet
	synTexts  []string
	prefTexts []string
	exact     *ExactResolver
	embedder  ai.Embedder
	fuser     *Fuser
	monitor   SearchMonitor
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithExactResolver enables exact lookup against a mapping table.
// A nil resolver leaves exact lookup disabled.
func WithExactResolver(r *ExactResolver) Option {
	return func(e *Engine) error {
		e.exact = r
		return nil
	}
}

// WithWeights overrides the fusion tunables.
func WithWeights(w Weights) Option {
	return func(e *Engine) error {
		e.fuser = NewFuser(w)
		return nil
	}
}

// WithMonitor installs a search monitor used for every query.
// Default is a no-op monitor.
func WithMonitor(m SearchMonitor) Option {
	return func(e *Engine) error {
		if m == nil {
			m = &noopMonitor{}
		}
		e.monitor = m
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger.With("component", "match")
		return nil
	}
}

// NewEngine creates an engine over records and their vectors.
func NewEngine(records []core.ReferenceRecord, vectors *core.VectorSet, embedder ai.Embedder, opts ...Option) (*Engine, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if vectors == nil {
		return nil, ErrVectorsRequired
	}
	if vectors.Meta.RecordCount != len(records) {
		return nil, fmt.Errorf("%w: %d vectors for %d records", core.ErrRecordCountMismatch, vectors.Meta.RecordCount, len(records))
	}
	if err := core.ValidateVectorSet(vectors); err != nil {
		return nil, err
	}

	e := &Engine{
		records:   records,
		vectors:   vectors,
		synTexts:  make([]string, len(records)),
		prefTexts: make([]string, len(records)),
		embedder:  embedder,
		fuser:     NewFuser(DefaultWeights()),
		monitor:   &noopMonitor{},
		logger:    slog.Default().With("component", "match"),
	}
	for i := range records {
		e.synTexts[i] = records[i].Synonyms
		e.prefTexts[i] = records[i].PreferredTerm
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Len returns the number of reference records.
func (e *Engine) Len() int {
	return len(e.records)
}

// ExactEnabled reports whether mapping-table lookup is active.
func (e *Engine) ExactEnabled() bool {
	return e.exact.Enabled()
}

// Meta returns the metadata of the loaded vectors.
func (e *Engine) Meta() core.CacheMeta {
	return e.vectors.Meta
}

// Search resolves query exactly if possible and otherwise returns the topK
// best semantic matches. Exact hits are returned in full regardless of topK.
// A failed query leaves the engine usable.
func (e *Engine) Search(ctx context.Context, query string, topK int) ([]core.MatchResult, error) {
	return e.SearchWithMonitor(ctx, query, topK, e.monitor)
}

// SearchWithMonitor is Search with a per-call monitor.
func (e *Engine) SearchWithMonitor(ctx context.Context, query string, topK int, monitor SearchMonitor) ([]core.MatchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if topK <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopK, topK)
	}
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)
	normalized := textnorm.Normalize(query)
	monitor.AfterNormalization(normalized)

	if results, ok := e.exact.Resolve(query); ok {
		e.logger.Debug("exact match in mapping table", "query", query, "hits", len(results))
		monitor.ExactHit(results)
		monitor.Finish(results)
		return results, nil
	}
	if e.exact.Enabled() {
		e.logger.Debug("no exact match, falling back to semantic search", "query", query)
	}

	qvec, err := e.embedder.EmbedText(ctx, normalized)
	if err != nil {
		e.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}
	if len(qvec) != e.vectors.Meta.Dimension {
		return nil, fmt.Errorf("%w: got %d, corpus has %d", ErrDimensionMismatch, len(qvec), e.vectors.Meta.Dimension)
	}
	monitor.AfterQueryEmbedding(qvec)

	code := ScoreWhole(qvec, e.vectors.Code)
	monitor.AfterFieldScoring(core.FieldCode, code)
	syn := ScoreField(normalized, qvec, e.synTexts, e.vectors.Synonym)
	monitor.AfterFieldScoring(core.FieldSynonym, syn)
	pref := ScoreField(normalized, qvec, e.prefTexts, e.vectors.PreferredTerm)
	monitor.AfterFieldScoring(core.FieldPreferredTerm, pref)

	final := e.fuser.Fuse(code, syn, pref, e.synTexts, e.prefTexts, normalized)
	monitor.AfterFusion(final)

	order := Rank(final, topK)
	results := make([]core.MatchResult, len(order))
	for i, idx := range order {
		record := &e.records[idx]
		results[i] = core.MatchResult{
			Similarity:    final[idx],
			Provenance:    core.ProvenanceSemantic,
			RowIndex:      record.Row,
			MappingRow:    core.NoRow,
			Code:          record.Code,
			Synonyms:      record.Synonyms,
			PreferredTerm: record.PreferredTerm,
		}
	}

	monitor.Finish(results)
	return results, nil
}
