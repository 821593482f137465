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


package index

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/labmatch/ai"
	"github.com/poiesic/labmatch/core"
	"github.com/poiesic/labmatch/textnorm"
)

// Builder embeds a reference corpus into a core.VectorSet.
type Builder struct {
	embedder  ai.Embedder
	config    *Config
	processor *BatchProcessor
	pool      *ants.Pool
	progress  io.Writer
	logger    *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithProgress sets where the progress line is written.
// Default is io.Discard.
func WithProgress(w io.Writer) Option {
	return func(b *Builder) error {
		if w == nil {
			w = io.Discard
		}
		b.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger.With("component", "index")
		return nil
	}
}

// NewBuilder creates a builder. A nil config uses DefaultConfig.
// Call Release when done to stop the worker pool.
func NewBuilder(embedder ai.Embedder, config *Config, opts ...Option) (*Builder, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	config = config.withDefaults()

	pool, err := ants.NewPool(config.Workers)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		embedder:  embedder,
		config:    config,
		processor: NewBatchProcessor(embedder, config.MaxRetries, config.RetryDelay),
		pool:      pool,
		progress:  io.Discard,
		logger:    slog.Default().With("component", "index"),
	}

	for _, opt := range opts {
		if optErr := opt(b); optErr != nil {
			b.Release()
			return nil, optErr
		}
	}
	return b, nil
}

// Release stops the worker pool. The builder should not be used afterwards.
func (b *Builder) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}

// hasAtoms reports whether a field's semicolon atoms are embedded separately.
func hasAtoms(f core.Field) bool {
	return f == core.FieldSynonym || f == core.FieldPreferredTerm
}

// Build embeds every semantic field of records and returns the vector set
// for (sourcePath, model). Identical texts are embedded once.
func (b *Builder) Build(ctx context.Context, records []core.ReferenceRecord, sourcePath, model string) (*core.VectorSet, error) {
	absPath, err := filepath.Abs(sourcePath)
	if err != nil {
		absPath = sourcePath
	}

	// Collect unique texts, counting what each field contributes
	var texts []string
	seen := make(map[string]int)
	perField := make(map[core.Field]int, len(core.SemanticFields))
	fieldSeen := make(map[core.Field]map[string]struct{}, len(core.SemanticFields))
	add := func(field core.Field, text string) {
		if _, ok := seen[text]; !ok {
			seen[text] = len(texts)
			texts = append(texts, text)
		}
		if strings.TrimSpace(text) == "" {
			return
		}
		if fieldSeen[field] == nil {
			fieldSeen[field] = make(map[string]struct{})
		}
		if _, ok := fieldSeen[field][text]; !ok {
			fieldSeen[field][text] = struct{}{}
			perField[field]++
		}
	}
	for i := range records {
		for _, field := range core.SemanticFields {
			text := records[i].Text(field)
			add(field, text)
			if hasAtoms(field) && textnorm.IsMultiValued(text) {
				for _, atom := range textnorm.Expand(text) {
					add(field, atom)
				}
			}
		}
	}

	b.logger.Info("embedding corpus", "records", len(records), "texts", len(texts), "batchSize", b.config.BatchSize, "workers", b.config.Workers)
	progress := NewProgress(b.progress, len(texts), b.config.BatchSize, b.config.ReportInterval)
	progress.Start(len(records), perField)

	vectors, err := b.embedAll(ctx, texts, progress)
	if err != nil {
		return nil, err
	}

	dim := 0
	for _, v := range vectors {
		if v == nil {
			continue
		}
		if dim == 0 {
			dim = len(v)
		} else if len(v) != dim {
			return nil, fmt.Errorf("%w: got %d and %d", core.ErrInconsistentDimension, dim, len(v))
		}
	}
	if dim == 0 {
		return nil, ErrNoVectors
	}
	vectorOf := func(text string) []float32 {
		if v := vectors[seen[text]]; v != nil {
			return v
		}
		return zeroVector(dim)
	}

	set := &core.VectorSet{
		Meta: core.CacheMeta{
			Fingerprint: core.FingerprintOf(absPath, model),
			SourcePath:  absPath,
			Model:       model,
			RecordCount: len(records),
			Dimension:   dim,
			BuiltAt:     time.Now().UTC(),
		},
	}
	for _, field := range core.SemanticFields {
		embeddings := make([]core.FieldEmbedding, len(records))
		for i := range records {
			text := records[i].Text(field)
			e := core.FieldEmbedding{Row: i, Field: field, Whole: vectorOf(text)}
			if hasAtoms(field) && textnorm.IsMultiValued(text) {
				for _, atom := range textnorm.Expand(text) {
					e.Atoms = append(e.Atoms, core.AtomEmbedding{Text: atom, Vector: vectorOf(atom)})
				}
			}
			embeddings[i] = e
		}
		set.SetEmbeddings(field, embeddings)
	}

	if err := core.ValidateVectorSet(set); err != nil {
		return nil, err
	}
	return set, nil
}

// embedAll splits texts into batches and embeds them on the pool.
// The first failing batch cancels the rest.
func (b *Builder) embedAll(ctx context.Context, texts []string, progress *Progress) ([][]float32, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	vectors := make([][]float32, len(texts))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	for start := 0; start < len(texts); start += b.config.BatchSize {
		if ctx.Err() != nil {
			break
		}
		end := min(start+b.config.BatchSize, len(texts))
		batch := texts[start:end]
		offset := start

		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()
			out, err := b.processor.Process(ctx, batch)
			if err != nil {
				b.logger.Error("error embedding batch", "offset", offset, "size", len(batch), "err", err)
				fail(err)
				return
			}
			copy(vectors[offset:], out)
			progress.BatchDone(len(batch))
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	elapsed := progress.Finish()
	b.logger.Debug("corpus embedded", "texts", len(texts), "elapsed", elapsed)
	return vectors, nil
}
