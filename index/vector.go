package index

import "math"

// NormalizeVector scales a vector to unit length.
// Returns a new vector. A zero vector stays a zero vector, which later
// scores about 0 against every query.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}

	result := make([]float32, len(v))
	if sumSquares == 0 {
		return result
	}

	magnitude := math.Sqrt(sumSquares)
	for i, val := range v {
		result[i] = float32(float64(val) / magnitude)
	}
	return result
}

// zeroVector returns a vector of dim zeros.
func zeroVector(dim int) []float32 {
	return make([]float32, dim)
}
