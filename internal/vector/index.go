package vector

import (
	"fmt"
	"sort"
)

// Hit is a single index search result: the stored vector's position and its
// inner-product score against the query.
type Hit struct {
	Index int
	Score float64
}

// FlatIndex is an exact brute-force inner-product index. With unit-normalized
// vectors the scores are cosine similarities. Every query scans all stored
// vectors (O(N*D)); the index deliberately trades asymptotic scalability for
// exactness and simplicity, which is fine for the hundreds-to-low-thousands
// item collections it serves.
type FlatIndex struct {
	dimensions int
	vectors    [][]float32
}

// NewFlatIndex builds an index over the given vectors. All vectors must share
// the same non-zero dimension. The slice is referenced, not copied; callers
// must not mutate it while the index is in use.
func NewFlatIndex(vectors [][]float32) (*FlatIndex, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no vectors to index")
	}
	dims := len(vectors[0])
	if dims == 0 {
		return nil, fmt.Errorf("vectors must have non-zero dimension")
	}
	for i, v := range vectors {
		if len(v) != dims {
			return nil, fmt.Errorf("vector %d: %w: got %d, expected %d", i, ErrDimensionMismatch, len(v), dims)
		}
	}
	return &FlatIndex{dimensions: dims, vectors: vectors}, nil
}

// Search returns the min(k, N) stored vectors with the largest inner product
// against query, descending by score. Ties keep original insertion order.
func (ix *FlatIndex) Search(query []float32, k int) ([]Hit, error) {
	if len(query) != ix.dimensions {
		return nil, fmt.Errorf("query: %w: got %d, expected %d", ErrDimensionMismatch, len(query), ix.dimensions)
	}
	if k <= 0 {
		return nil, nil
	}
	hits := make([]Hit, len(ix.vectors))
	for i, v := range ix.vectors {
		hits[i] = Hit{Index: i, Score: InnerProduct(query, v)}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Size returns the number of indexed vectors.
func (ix *FlatIndex) Size() int {
	return len(ix.vectors)
}

// Dimensions returns the vector dimension of the index.
func (ix *FlatIndex) Dimensions() int {
	return ix.dimensions
}
