// Package search runs the query modes against an embedding collection.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/hyperjump/ruiji/internal/embedding"
	"github.com/hyperjump/ruiji/internal/models"
	"github.com/hyperjump/ruiji/internal/vector"
)

// Engine answers top-k and full-ranking queries against a collection.
// It holds no per-collection state: every call normalizes the supplied
// collection and builds a fresh index, so collections can be swapped or
// reloaded between calls without coordination.
type Engine struct {
	embedder embedding.Embedder
}

// NewEngine creates an engine using the given embedder for query text.
// The embedder is injected so tests can run with a deterministic stub.
func NewEngine(embedder embedding.Embedder) *Engine {
	return &Engine{embedder: embedder}
}

// TopK returns the k collection items most similar to the query text,
// descending by cosine similarity. k <= 0 uses models.DefaultTopK.
// A blank query returns models.ErrEmptyQuery before any embedding call.
func (e *Engine) TopK(ctx context.Context, col *models.Collection, query string, k int) (*models.SearchResponse, error) {
	startTime := time.Now()

	q := &models.SearchQuery{Query: query, K: k}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	queryVec, err := e.embedQuery(ctx, col, q.Query)
	if err != nil {
		return nil, err
	}

	normalized, err := vector.NormalizeAll(col.Vectors)
	if err != nil {
		return nil, fmt.Errorf("normalize collection: %w", err)
	}
	index, err := vector.NewFlatIndex(normalized)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	hits, err := index.Search(queryVec, q.K)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	response := &models.SearchResponse{
		Collection: col.Name,
		Query:      q.Query,
		Results:    make([]*models.SearchResult, 0, len(hits)),
		Total:      len(hits),
		QueryTime:  time.Since(startTime).Milliseconds(),
	}
	for i, hit := range hits {
		response.Results = append(response.Results, &models.SearchResult{
			Rank:   i + 1,
			Index:  hit.Index,
			Score:  hit.Score,
			Fields: col.FieldsAt(hit.Index),
		})
	}
	return response, nil
}

// RankAll orders the entire collection by similarity to the query text.
// It is TopK with k = N: the result is a permutation of all item indices.
func (e *Engine) RankAll(ctx context.Context, col *models.Collection, query string) (*models.SearchResponse, error) {
	return e.TopK(ctx, col, query, col.Count)
}

// embedQuery embeds the query text, checks its dimension against the
// collection, and normalizes it to unit length.
func (e *Engine) embedQuery(ctx context.Context, col *models.Collection, query string) ([]float32, error) {
	raw, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(raw) != col.Dimensions {
		return nil, fmt.Errorf("query: %w: embedder produced %d dimensions, collection has %d",
			vector.ErrDimensionMismatch, len(raw), col.Dimensions)
	}
	normalized, err := vector.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize query: %w", err)
	}
	return normalized, nil
}
