package index

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/labmatch/ai"
)

// BatchProcessor embeds one batch of texts with retry.
type BatchProcessor struct {
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of attempts for each embedding call
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process returns one unit vector per text, in input order.
// Blank texts are not sent to the provider; their slot is left nil.
func (bp *BatchProcessor) Process(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	var pending []string
	var slots []int
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		pending = append(pending, text)
		slots = append(slots, i)
	}
	if len(pending) == 0 {
		return vectors, nil
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, pending)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)
	if err != nil {
		return nil, fmt.Errorf("%w: after %d attempts: %w", ErrEmbeddingFailed, bp.maxRetries, err)
	}

	if len(embeddings) != len(pending) {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingCountMismatch, len(pending), len(embeddings))
	}

	for i, slot := range slots {
		vectors[slot] = NormalizeVector(embeddings[i])
	}
	return vectors, nil
}
