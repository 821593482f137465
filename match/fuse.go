package match

import (
	"sort"
	"strings"

	"github.com/poiesic/labmatch/textnorm"
)

// Weights are the fusion tunables.
type Weights struct {
	// RatioPenalty multiplies priority scores of texts containing "/" when
	// the query does not mention a ratio.
	RatioPenalty float64

	// ClosenessMargin is how far the priority score may trail the code
	// score and still be used unchanged.
	ClosenessMargin float64

	// PriorityBoost multiplies a trailing priority score before it is
	// compared with the code score.
	PriorityBoost float64
}

// DefaultWeights returns the standard fusion constants.
func DefaultWeights() Weights {
	return Weights{
		RatioPenalty:    0.8,
		ClosenessMargin: -0.1,
		PriorityBoost:   1.05,
	}
}

// Fuser combines per-field scores into one score per record.
type Fuser struct {
	weights Weights
}

// NewFuser creates a fuser with the given weights.
func NewFuser(w Weights) *Fuser {
	return &Fuser{weights: w}
}

// Weights returns the fuser's tunables.
func (f *Fuser) Weights() Weights {
	return f.weights
}

// Fuse returns the final score of each record. code, syn and pref hold the
// per-field similarities, synTexts and prefTexts the raw texts used for the
// ratio check, and query the normalized query. Inputs are not modified.
func (f *Fuser) Fuse(code, syn, pref []float64, synTexts, prefTexts []string, query string) []float64 {
	penalize := !textnorm.HasRatioKeyword(query)

	final := make([]float64, len(code))
	for i := range code {
		s := syn[i]
		p := pref[i]
		if penalize {
			s = f.downWeight(s, synTexts, i)
			p = f.downWeight(p, prefTexts, i)
		}

		priority := max(s, p)
		switch {
		case priority >= 1.0:
			final[i] = priority
		case priority-code[i] >= f.weights.ClosenessMargin:
			final[i] = priority
		default:
			final[i] = max(priority*f.weights.PriorityBoost, code[i])
		}
	}
	return final
}

// downWeight applies the ratio penalty to a score below 1.0 whose text
// contains "/".
func (f *Fuser) downWeight(score float64, texts []string, i int) float64 {
	if score >= 1.0 || i >= len(texts) || !strings.Contains(texts[i], "/") {
		return score
	}
	return score * f.weights.RatioPenalty
}

// Rank returns the indices of the k highest scores, highest first. Equal
// scores keep their original order.
func Rank(scores []float64, k int) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	if k < len(order) {
		order = order[:k]
	}
	return order
}
