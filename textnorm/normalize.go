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


package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// noiseWords are removed from queries and match fields before comparison.
// Variants without the internal space are listed explicitly.
var noiseWords = []string{
	"absolute value",
	"absolutevalue",
	"绝对值",
	"count",
	"计数",
}

// ratioKeywords mark a query that is asking for a ratio.
var ratioKeywords = []string{"ratio", "比值"}

func folder() transform.Transformer {
	return transform.Chain(norm.NFKC, runes.Map(unicode.ToLower))
}

// Fold returns the case-folded, NFKC-normalized form of s with surrounding
// whitespace trimmed and internal whitespace runs collapsed to one space.
func Fold(s string) string {
	folded, _, err := transform.String(folder(), s)
	if err != nil {
		folded = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(folded), " ")
}

// Normalize folds text and strips the noise words in both languages.
// Removal repeats until the text is stable, so Normalize is idempotent.
// If nothing is left, the folded input is returned, or s itself when s is
// only whitespace.
func Normalize(s string) string {
	current := Fold(s)
	for {
		next := current
		for _, w := range noiseWords {
			next = strings.ReplaceAll(next, w, "")
		}
		next = Fold(next)
		if next == current {
			break
		}
		current = next
	}
	if current == "" {
		if folded := Fold(s); folded != "" {
			return folded
		}
		return s
	}
	return current
}

// HasRatioKeyword reports whether the (normalized) query asks for a ratio.
func HasRatioKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, k := range ratioKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// ContainsHan reports whether s contains any Han character.
func ContainsHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
