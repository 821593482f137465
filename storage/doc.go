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


// Package storage provides the persistence abstraction for the vector cache.
//
// The cache holds one embedding per reference row for each semantic field,
// plus a metadata record that identifies the reference file and model the
// vectors were computed from. Implementations live in subpackages:
//
//	cache, err := badger.NewVectorCache("/path/to/cache")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cache.Close()
//
// Use in tests with in-memory storage:
//
//	cache, err := badger.NewMemoryVectorCache()
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage.VectorCache interface so callers
// do not couple to a specific backend. Internal constructors may return
// concrete types.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use. All methods accept a
// context.Context for cancellation.
package storage
