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

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrEmbeddingFailed indicates the provider could not embed a batch.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrEmbeddingCountMismatch indicates the provider returned a different
	// number of vectors than texts sent.
	ErrEmbeddingCountMismatch = errors.New("embedding count mismatch")

	// ErrNoVectors indicates every text in the corpus was empty.
	ErrNoVectors = errors.New("corpus produced no vectors")

	// ErrCacheStale indicates a cache entry that does not describe the
	// current corpus and model.
	ErrCacheStale = errors.New("cache entry is stale")

	// ErrEmbedderRequired is returned when a builder is created without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")
)
