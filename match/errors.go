package match

import "errors"

var (
	// ErrEmptyQuery is returned for a blank query.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrInvalidTopK is returned when topK is not positive.
	ErrInvalidTopK = errors.New("top_k must be a positive integer")

	// ErrEmbeddingFailed wraps a provider failure while embedding a query.
	ErrEmbeddingFailed = errors.New("query embedding failed")

	// ErrDimensionMismatch indicates the query vector does not have the
	// corpus dimension.
	ErrDimensionMismatch = errors.New("query vector dimension mismatch")

	// ErrEmbedderRequired is returned when an engine is created without an embedder.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrVectorsRequired is returned when an engine is created without vectors.
	ErrVectorsRequired = errors.New("vector set required")
)
