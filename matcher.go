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


package labmatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/poiesic/labmatch/ai"
	"github.com/poiesic/labmatch/ai/openai"
	"github.com/poiesic/labmatch/config"
	"github.com/poiesic/labmatch/core"
	"github.com/poiesic/labmatch/index"
	"github.com/poiesic/labmatch/match"
	"github.com/poiesic/labmatch/report"
	"github.com/poiesic/labmatch/source"
	"github.com/poiesic/labmatch/storage"
	"github.com/poiesic/labmatch/storage/badger"
)

// Matcher resolves lab test names against one loaded corpus.
type Matcher struct {
	config     *config.Config
	provider   ai.AIProvider
	cache      storage.VectorCache
	engine     *match.Engine
	translator *report.Translator
	cacheHit   bool
	owned      ownership
	logger     *slog.Logger
}

type ownership struct {
	provider bool
	cache    bool
}

// MatcherOption configures a Matcher.
type MatcherOption func(*matcherOptions)

type matcherOptions struct {
	provider ai.AIProvider
	cache    storage.VectorCache
	progress io.Writer
	monitor  match.SearchMonitor
	rebuild  bool
	logger   *slog.Logger
}

// WithProvider uses provider instead of connecting to the configured
// OpenAI-compatible services. The caller keeps ownership.
func WithProvider(provider ai.AIProvider) MatcherOption {
	return func(o *matcherOptions) {
		o.provider = provider
	}
}

// WithCache uses cache instead of opening one under the configured cache
// directory. The caller keeps ownership.
func WithCache(cache storage.VectorCache) MatcherOption {
	return func(o *matcherOptions) {
		o.cache = cache
	}
}

// WithProgress writes the embedding progress line to w while vectors are built.
func WithProgress(w io.Writer) MatcherOption {
	return func(o *matcherOptions) {
		o.progress = w
	}
}

// WithMonitor observes every search.
func WithMonitor(m match.SearchMonitor) MatcherOption {
	return func(o *matcherOptions) {
		o.monitor = m
	}
}

// WithRebuild discards any cached vectors and recomputes them.
func WithRebuild() MatcherOption {
	return func(o *matcherOptions) {
		o.rebuild = true
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) MatcherOption {
	return func(o *matcherOptions) {
		o.logger = logger
	}
}

// NewMatcher loads the reference and mapping tables named by cfg, loads or
// computes the field vectors and returns a matcher ready for queries.
// An unusable mapping table only disables exact matching.
func NewMatcher(ctx context.Context, cfg *config.Config, opts ...MatcherOption) (*Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &matcherOptions{}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}

	m := &Matcher{config: cfg, logger: logger.With("component", "matcher")}
	ready := false
	defer func() {
		if !ready {
			m.Close()
		}
	}()

	records, err := source.LoadReferenceTable(cfg.ExcelPath,
		source.WithCodelist(cfg.Codelist),
		source.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	var exact *match.ExactResolver
	table, mapErr := source.LoadMappingTable(cfg.MappingFile, source.WithLogger(logger))
	if mapErr != nil {
		m.logger.Warn("mapping table unavailable, exact matching disabled", "path", cfg.MappingFile, "err", mapErr)
	} else {
		exact = match.NewExactResolver(table.Records)
	}

	m.cache = options.cache
	if m.cache == nil {
		if m.cache, err = badger.NewVectorCache(cfg.CacheDir); err != nil {
			return nil, err
		}
		m.owned.cache = true
	}

	aiCfg := cfg.AIConfig()
	m.provider = options.provider
	if m.provider == nil {
		if m.provider, err = openai.NewProvider(aiCfg); err != nil {
			return nil, err
		}
		m.owned.provider = true
	}

	builder, err := index.NewBuilder(m.provider.Embedder(), cfg.IndexConfig(),
		index.WithProgress(options.progress),
		index.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	defer builder.Release()

	if options.rebuild {
		fp := core.FingerprintOf(absPath(cfg.ExcelPath), aiCfg.EmbeddingModel)
		if delErr := m.cache.Delete(ctx, fp); delErr != nil {
			m.logger.Warn("failed to discard cached vectors", "err", delErr)
		}
	}

	vectors, hit, err := builder.LoadOrBuild(ctx, m.cache, records, cfg.ExcelPath, aiCfg.EmbeddingModel)
	if err != nil {
		return nil, err
	}
	m.cacheHit = hit

	m.engine, err = match.NewEngine(records, vectors, m.provider.Embedder(),
		match.WithExactResolver(exact),
		match.WithWeights(cfg.Weights()),
		match.WithMonitor(options.monitor),
		match.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	m.translator = report.NewTranslator(m.provider.Translator(), cfg.AI.TranslationCacheSize,
		report.WithTranslatorLogger(logger),
	)

	m.logger.Info("matcher ready",
		"records", len(records),
		"exactMatching", exact.Enabled(),
		"cacheHit", hit,
	)
	ready = true
	return m, nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// Search resolves query, returning every mapping table hit or the topK best
// semantic matches.
func (m *Matcher) Search(ctx context.Context, query string, topK int) ([]core.MatchResult, error) {
	return m.engine.Search(ctx, query, topK)
}

// SearchWithMonitor is Search with a per-call monitor.
func (m *Matcher) SearchWithMonitor(ctx context.Context, query string, topK int, monitor match.SearchMonitor) ([]core.MatchResult, error) {
	return m.engine.SearchWithMonitor(ctx, query, topK, monitor)
}

// Translate decorates the English display fields of results.
func (m *Matcher) Translate(ctx context.Context, results []core.MatchResult) []core.MatchResult {
	return m.translator.Apply(ctx, results)
}

// DefaultTopK returns the configured result count.
func (m *Matcher) DefaultTopK() int {
	return m.config.TopK
}

// Meta describes the loaded vector set.
func (m *Matcher) Meta() core.CacheMeta {
	return m.engine.Meta()
}

// ExactEnabled reports whether a mapping table is in use.
func (m *Matcher) ExactEnabled() bool {
	return m.engine.ExactEnabled()
}

// Len returns the number of reference records.
func (m *Matcher) Len() int {
	return m.engine.Len()
}

// CacheHit reports whether the vectors came from the cache.
func (m *Matcher) CacheHit() bool {
	return m.cacheHit
}

// Close releases the provider and the cache when the matcher opened them.
func (m *Matcher) Close() error {
	var errs []error
	if m.owned.provider && m.provider != nil {
		if err := m.provider.Close(); err != nil {
			m.logger.Error("error closing AI provider", "err", err)
			errs = append(errs, err)
		}
		m.provider = nil
	}
	if m.owned.cache && m.cache != nil {
		if err := m.cache.Close(); err != nil {
			m.logger.Error("error closing vector cache", "err", err)
			errs = append(errs, err)
		}
		m.cache = nil
	}
	return errors.Join(errs...)
}
