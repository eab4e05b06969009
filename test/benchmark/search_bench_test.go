package benchmark

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/hyperjump/ruiji/internal/anomaly"
	"github.com/hyperjump/ruiji/internal/models"
	"github.com/hyperjump/ruiji/internal/vector"
)

func randomVectors(n, dims int, seed int64) [][]float32 {
	rng := rand.New(rand.NewSource(seed))
	vectors := make([][]float32, n)
	for i := range vectors {
		v := make([]float32, dims)
		for j := range v {
			v[j] = rng.Float32()*2 - 1
		}
		vectors[i] = v
	}
	return vectors
}

func BenchmarkFlatIndexSearch(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("n=%d", size), func(b *testing.B) {
			vectors, err := vector.NormalizeAll(randomVectors(size, 384, 1))
			if err != nil {
				b.Fatal(err)
			}
			index, err := vector.NewFlatIndex(vectors)
			if err != nil {
				b.Fatal(err)
			}
			query, err := vector.Normalize(randomVectors(1, 384, 2)[0])
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := index.Search(query, 3); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkAnomalyRank(b *testing.B) {
	for _, size := range []int{100, 500} {
		b.Run(fmt.Sprintf("n=%d", size), func(b *testing.B) {
			col := &models.Collection{
				Name:       "bench",
				Count:      size,
				Dimensions: 384,
				Vectors:    randomVectors(size, 384, 3),
			}
			ranker := anomaly.NewRanker(anomaly.DefaultCount)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := ranker.Rank(col, 3); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
