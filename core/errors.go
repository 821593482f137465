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


package core

import "errors"

var (
	// ErrInvalidRecord indicates a ReferenceRecord failed validation.
	ErrInvalidRecord = errors.New("invalid reference record")

	// ErrInvalidMapping indicates a MappingRecord failed validation.
	ErrInvalidMapping = errors.New("invalid mapping record")

	// ErrEmptyFields indicates a record has no text in any semantic field.
	ErrEmptyFields = errors.New("all semantic fields are empty")

	// ErrNegativeRow indicates a row index below zero.
	ErrNegativeRow = errors.New("row index cannot be negative")

	// ErrInvalidVectorSet indicates a VectorSet failed validation.
	ErrInvalidVectorSet = errors.New("invalid vector set")

	// ErrRecordCountMismatch indicates a field does not hold one entry per record.
	ErrRecordCountMismatch = errors.New("record count mismatch")

	// ErrInconsistentDimension indicates vectors of differing length in one corpus.
	ErrInconsistentDimension = errors.New("inconsistent vector dimension")

	// ErrRowOutOfOrder indicates an embedding stored at the wrong row position.
	ErrRowOutOfOrder = errors.New("embedding row out of order")
)
