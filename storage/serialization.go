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


package storage

import (
	"fmt"

	"github.com/poiesic/labmatch/core"
)

// MarshalCacheMeta serializes cache metadata to bytes.
func MarshalCacheMeta(meta *core.CacheMeta) []byte {
	buf := make([]byte, core.CacheMetaMUS.Size(*meta))
	core.CacheMetaMUS.Marshal(*meta, buf)
	return buf
}

// UnmarshalCacheMeta deserializes cache metadata from bytes.
func UnmarshalCacheMeta(data []byte) (*core.CacheMeta, error) {
	meta, _, err := core.CacheMetaMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &meta, nil
}

// MarshalFieldEmbedding serializes a FieldEmbedding to bytes.
func MarshalFieldEmbedding(e *core.FieldEmbedding) []byte {
	buf := make([]byte, core.FieldEmbeddingMUS.Size(*e))
	core.FieldEmbeddingMUS.Marshal(*e, buf)
	return buf
}

// UnmarshalFieldEmbedding deserializes a FieldEmbedding from bytes.
func UnmarshalFieldEmbedding(data []byte) (*core.FieldEmbedding, error) {
	e, _, err := core.FieldEmbeddingMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &e, nil
}
