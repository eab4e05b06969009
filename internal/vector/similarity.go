// Package vector provides L2 normalization, similarity helpers, and an exact
// inner-product index over float32 embedding vectors.
package vector

import (
	"errors"
	"fmt"
	"math"
)

// ErrZeroVector is returned when a zero-norm vector is normalized or compared.
// An all-zero vector has no defined direction, so the error is surfaced
// instead of letting the division produce NaN scores.
var ErrZeroVector = errors.New("zero-norm vector")

// ErrDimensionMismatch is returned when two vectors (or a query and an index)
// have different dimensions.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// InnerProduct returns the inner product of two equal-length vectors.
// For unit-normalized vectors this equals cosine similarity.
func InnerProduct(a, b []float32) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

// L2Norm returns the Euclidean norm of v.
func L2Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of a and b: dot(a,b) / (||a||*||b||).
// Returns ErrDimensionMismatch for unequal lengths and ErrZeroVector when
// either vector has zero norm.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	na, nb := L2Norm(a), L2Norm(b)
	if na == 0 || nb == 0 {
		return 0, ErrZeroVector
	}
	return InnerProduct(a, b) / (na * nb), nil
}
