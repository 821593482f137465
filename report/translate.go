package report

import (
	"context"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/poiesic/labmatch/ai"
	"github.com/poiesic/labmatch/core"
	"github.com/poiesic/labmatch/textnorm"
)

// DefaultTranslationCacheSize is the default number of memoized translations.
const DefaultTranslationCacheSize = 1024

// Translator decorates English display text with its translation,
// rendering "text (translation)". Successful results are memoized in a
// bounded LRU. Failures fall back to the original text and are not cached.
type Translator struct {
	inner  ai.Translator
	cache  *lru.Cache[string, string]
	logger *slog.Logger
}

// TranslatorOption configures a Translator.
type TranslatorOption func(*Translator)

// WithTranslatorLogger sets the logger. nil restores slog.Default().
func WithTranslatorLogger(logger *slog.Logger) TranslatorOption {
	return func(t *Translator) {
		if logger == nil {
			logger = slog.Default()
		}
		t.logger = logger.With("component", "translator")
	}
}

// NewTranslator wraps inner with a memo of cacheSize entries.
// A non-positive size uses DefaultTranslationCacheSize.
func NewTranslator(inner ai.Translator, cacheSize int, opts ...TranslatorOption) *Translator {
	if cacheSize <= 0 {
		cacheSize = DefaultTranslationCacheSize
	}
	cache, _ := lru.New[string, string](cacheSize)
	t := &Translator{
		inner:  inner,
		cache:  cache,
		logger: slog.Default().With("component", "translator"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Len returns the number of memoized entries.
func (t *Translator) Len() int {
	return t.cache.Len()
}

// Decorate returns text followed by its translation in parentheses.
// Blank text and text that already contains Han characters are returned
// unchanged. Semicolon lists are translated atom by atom and re-joined
// with "; ".
func (t *Translator) Decorate(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" || textnorm.ContainsHan(text) {
		return text
	}
	if cached, ok := t.cache.Get(text); ok {
		return cached
	}

	var (
		result string
		ok     bool
	)
	if strings.Contains(text, textnorm.Separator) {
		atoms := textnorm.Expand(text)
		parts := make([]string, len(atoms))
		ok = true
		for i, atom := range atoms {
			decorated, translated := t.decorateOne(ctx, atom)
			parts[i] = decorated
			ok = ok && translated
		}
		result = strings.Join(parts, "; ")
	} else {
		result, ok = t.decorateOne(ctx, text)
	}

	if ok {
		t.cache.Add(text, result)
	}
	return result
}

func (t *Translator) decorateOne(ctx context.Context, text string) (string, bool) {
	if textnorm.ContainsHan(text) {
		return text, true
	}
	translated, err := t.inner.Translate(ctx, text)
	if err != nil {
		t.logger.Warn("translation failed, keeping original text", "text", text, "err", err)
		return text, false
	}
	translated = strings.TrimSpace(translated)
	if translated == "" {
		return text, false
	}
	return text + " (" + translated + ")", true
}

// Apply returns a copy of results with English display fields decorated.
// Semantic results decorate synonyms and preferred term, exact results
// the English name.
func (t *Translator) Apply(ctx context.Context, results []core.MatchResult) []core.MatchResult {
	out := make([]core.MatchResult, len(results))
	copy(out, results)
	for i := range out {
		if out[i].IsExact() {
			out[i].English = t.Decorate(ctx, out[i].English)
			continue
		}
		out[i].Synonyms = t.Decorate(ctx, out[i].Synonyms)
		out[i].PreferredTerm = t.Decorate(ctx, out[i].PreferredTerm)
	}
	return out
}
