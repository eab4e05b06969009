package vector

import "fmt"

// Normalize returns a copy of v rescaled to unit L2 norm.
// Returns ErrZeroVector when ||v|| == 0.
func Normalize(v []float32) ([]float32, error) {
	norm := L2Norm(v)
	if norm == 0 {
		return nil, ErrZeroVector
	}
	inv := float32(1.0 / norm)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = x * inv
	}
	return out, nil
}

// NormalizeAll returns a new slice with every vector normalized to unit L2
// norm. The input is not modified. The error identifies the offending row
// when a zero-norm vector is encountered.
func NormalizeAll(vectors [][]float32) ([][]float32, error) {
	out := make([][]float32, len(vectors))
	for i, v := range vectors {
		n, err := Normalize(v)
		if err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}
