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


// Package report renders ranked match results.
//
// Structured output is the JSON document consumed by scripts and the MCP
// tool. Markdown and Terminal render the same rows as a table whose columns
// depend on the provenance of the top result: mapping table hits show the
// test code, description and both display names, semantic hits show the
// code, synonyms and preferred term of the reference row.
//
// Translator decorates English display text with a translation before
// rendering. It is optional and never changes scores or order.
package report
