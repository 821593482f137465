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


package source

import "errors"

var (
	// ErrSourceNotFound indicates the table file does not exist.
	ErrSourceNotFound = errors.New("source file not found")

	// ErrUnsupportedFormat indicates a file extension no reader handles.
	ErrUnsupportedFormat = errors.New("unsupported source format")

	// ErrTooFewSheets indicates the workbook lacks the expected worksheet.
	ErrTooFewSheets = errors.New("workbook has too few sheets")

	// ErrMissingColumn indicates a required header is absent.
	ErrMissingColumn = errors.New("required column missing")

	// ErrNoRows indicates the table holds no usable rows.
	ErrNoRows = errors.New("table has no rows")

	// ErrColumnsNotFound indicates none of the mapping match columns could
	// be identified. The mapping table is unusable.
	ErrColumnsNotFound = errors.New("mapping columns not found")
)
