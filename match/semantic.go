package match

import (
	"math"

	"github.com/poiesic/labmatch/core"
	"github.com/poiesic/labmatch/textnorm"
)

// cosineEpsilon guards the norm division against zero vectors.
const cosineEpsilon = 1e-8

// Cosine returns the cosine similarity of a and b. A zero vector scores
// about 0 against anything. Vectors of different length are compared over
// their common prefix.
func Cosine(a, b []float32) float64 {
	n := min(len(a), len(b))
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	return dot / ((math.Sqrt(na) + cosineEpsilon) * (math.Sqrt(nb) + cosineEpsilon))
}

// ScoreWhole scores the query vector against each row's whole-field vector.
func ScoreWhole(qvec []float32, embeddings []core.FieldEmbedding) []float64 {
	scores := make([]float64, len(embeddings))
	for i := range embeddings {
		scores[i] = Cosine(qvec, embeddings[i].Whole)
	}
	return scores
}

// ScoreField scores a semicolon-expandable field. normalized is the
// normalized query and texts[i] the raw field text of row i.
//
// A row whose first atom, or any atom, equals the query ignoring case
// scores exactly 1.0. Other rows score the best cosine over the whole-field
// vector and every atom vector.
func ScoreField(normalized string, qvec []float32, texts []string, embeddings []core.FieldEmbedding) []float64 {
	scores := make([]float64, len(embeddings))
	for i := range embeddings {
		text := ""
		if i < len(texts) {
			text = texts[i]
		}
		if atomEquals(text, normalized) {
			scores[i] = 1.0
			continue
		}

		best := Cosine(qvec, embeddings[i].Whole)
		for _, atom := range embeddings[i].Atoms {
			if sim := Cosine(qvec, atom.Vector); sim > best {
				best = sim
			}
		}
		scores[i] = best
	}
	return scores
}

// atomEquals reports whether the first atom of text, or any later atom,
// equals the normalized query after case folding.
func atomEquals(text, normalized string) bool {
	atoms := textnorm.Expand(text)
	if len(atoms) == 0 {
		return false
	}
	// first atom fast path
	if textnorm.Fold(atoms[0]) == normalized {
		return true
	}
	for _, atom := range atoms[1:] {
		if textnorm.Fold(atom) == normalized {
			return true
		}
	}
	return false
}
