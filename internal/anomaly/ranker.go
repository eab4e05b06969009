// Package anomaly ranks collection items by how much they stand apart from
// the rest of the collection.
package anomaly

import (
	"fmt"
	"sort"
	"time"

	"github.com/hyperjump/ruiji/internal/models"
	"github.com/hyperjump/ruiji/internal/vector"
)

// DefaultCount is the number of anomalies returned when none is configured.
const DefaultCount = 3

// Ranker scores every item by its mean cosine similarity to all other items
// (self-pair excluded) and returns the items with the lowest means: the ones
// least similar to the group.
//
// The all-pairs comparison is O(N^2 * D), which is the scaling limit of this
// mode; it is intended for small collections (tens to hundreds of items).
type Ranker struct {
	count int
}

// NewRanker creates a ranker returning count anomalies per call.
// count <= 0 uses DefaultCount.
func NewRanker(count int) *Ranker {
	if count <= 0 {
		count = DefaultCount
	}
	return &Ranker{count: count}
}

// Count returns the configured number of anomalies per call.
func (r *Ranker) Count() int {
	return r.count
}

// Rank computes mean pairwise similarity for every item and returns the
// min(count, N) lowest-scoring items ascending, most anomalous first.
// count <= 0 uses the ranker's configured count. A collection needs at least
// two items for the mean over the other items to exist.
func (r *Ranker) Rank(col *models.Collection, count int) (*models.AnomalyResponse, error) {
	startTime := time.Now()
	if count <= 0 {
		count = r.count
	}
	if col.Count < 2 {
		return nil, fmt.Errorf("anomaly ranking needs at least 2 items, collection has %d", col.Count)
	}

	// Unit-normalize once so each pair costs a single inner product.
	normalized, err := vector.NormalizeAll(col.Vectors)
	if err != nil {
		return nil, fmt.Errorf("normalize collection: %w", err)
	}

	n := len(normalized)
	means := make([]*models.AnomalyResult, n)
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			sum += vector.InnerProduct(normalized[i], normalized[j])
		}
		means[i] = &models.AnomalyResult{
			Index:          i,
			MeanSimilarity: sum / float64(n-1),
		}
	}

	sort.SliceStable(means, func(a, b int) bool {
		return means[a].MeanSimilarity < means[b].MeanSimilarity
	})
	if count > n {
		count = n
	}

	response := &models.AnomalyResponse{
		Collection: col.Name,
		Total:      count,
		Results:    means[:count],
		QueryTime:  time.Since(startTime).Milliseconds(),
	}
	for rank, result := range response.Results {
		result.Rank = rank + 1
		result.Fields = col.FieldsAt(result.Index)
	}
	return response, nil
}
