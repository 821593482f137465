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


// Package match resolves a lab test name to ranked reference records.
//
// A query is first normalized and looked up in the mapping table. Any exact
// hit is returned as is, one result per matching mapping row in table order.
// Otherwise the query is embedded and scored against the code, synonym and
// preferred-term vectors of every reference record. The three field scores
// are fused into one score per record and the records ranked with a stable
// sort.
//
// Fusion works in three steps. Synonym and preferred-term scores are
// down-weighted for texts containing "/" unless the query asks for a ratio.
// The better of the two is the priority score. The priority score wins when
// it is exact or close to the code score, otherwise the larger of a boosted
// priority score and the code score is used.
//
//	engine, err := match.NewEngine(records, vectors, embedder,
//	    match.WithExactResolver(match.NewExactResolver(mappings)))
//	results, err := engine.Search(ctx, "血红蛋白", 10)
package match
