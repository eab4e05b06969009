package search

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/hyperjump/ruiji/internal/embedding"
	"github.com/hyperjump/ruiji/internal/models"
	"github.com/hyperjump/ruiji/internal/vector"
)

// testCollection embeds texts with the mock embedder so queries for the same
// text land exactly on the matching item.
func testCollection(t *testing.T, emb embedding.Embedder, texts []string) *models.Collection {
	t.Helper()
	vectors, err := emb.EmbedBatch(context.Background(), texts)
	if err != nil {
		t.Fatal(err)
	}
	return &models.Collection{
		Name:       "faq",
		Type:       "faq",
		Count:      len(texts),
		Dimensions: emb.Dimensions(),
		Vectors:    vectors,
		FieldNames: []string{"respostas"},
		Fields:     map[string][]string{"respostas": texts},
	}
}

func TestEngine_TopK_OwnVectorIsTopHit(t *testing.T) {
	emb := embedding.NewMockEmbedder(8)
	engine := NewEngine(emb)
	texts := []string{"prazo de entrega", "formas de pagamento", "politica de troca"}
	col := testCollection(t, emb, texts)

	resp, err := engine.TopK(context.Background(), col, "formas de pagamento", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(resp.Results))
	}
	top := resp.Results[0]
	if top.Index != 1 {
		t.Errorf("top hit should be index 1, got %d", top.Index)
	}
	if math.Abs(top.Score-1.0) > 1e-5 {
		t.Errorf("querying with an item's own text should score ~1.0, got %f", top.Score)
	}
	if top.Rank != 1 || top.Fields["respostas"] != "formas de pagamento" {
		t.Errorf("unexpected top result: %+v", top)
	}
}

func TestEngine_TopK_DefaultK(t *testing.T) {
	emb := embedding.NewMockEmbedder(8)
	engine := NewEngine(emb)
	col := testCollection(t, emb, []string{"a", "b", "c", "d", "e"})

	resp, err := engine.TopK(context.Background(), col, "a", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != models.DefaultTopK {
		t.Errorf("expected default k=%d results, got %d", models.DefaultTopK, len(resp.Results))
	}
}

func TestEngine_TopK_EmptyQuery(t *testing.T) {
	emb := embedding.NewMockEmbedder(8)
	engine := NewEngine(emb)
	col := testCollection(t, emb, []string{"a", "b"})

	for _, query := range []string{"", "   ", "\t\n"} {
		if _, err := engine.TopK(context.Background(), col, query, 3); !errors.Is(err, models.ErrEmptyQuery) {
			t.Errorf("query %q: expected ErrEmptyQuery, got %v", query, err)
		}
	}
}

func TestEngine_TopK_DimensionMismatch(t *testing.T) {
	emb := embedding.NewMockEmbedder(8)
	engine := NewEngine(emb)
	col := testCollection(t, embedding.NewMockEmbedder(16), []string{"a", "b"})

	if _, err := engine.TopK(context.Background(), col, "a", 1); !errors.Is(err, vector.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestEngine_TopK_ZeroVectorInCollection(t *testing.T) {
	emb := embedding.NewMockEmbedder(2)
	engine := NewEngine(emb)
	col := &models.Collection{
		Name: "bad", Count: 2, Dimensions: 2,
		Vectors: [][]float32{{1, 0}, {0, 0}},
	}
	if _, err := engine.TopK(context.Background(), col, "query", 1); !errors.Is(err, vector.ErrZeroVector) {
		t.Errorf("expected ErrZeroVector, got %v", err)
	}
}

func TestEngine_RankAll_IsPermutation(t *testing.T) {
	emb := embedding.NewMockEmbedder(8)
	engine := NewEngine(emb)
	texts := []string{"um", "dois", "tres", "quatro", "cinco", "seis"}
	col := testCollection(t, emb, texts)

	resp, err := engine.RankAll(context.Background(), col, "tres")
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != len(texts) {
		t.Fatalf("expected %d results, got %d", len(texts), len(resp.Results))
	}
	seen := make(map[int]bool)
	for _, r := range resp.Results {
		if seen[r.Index] {
			t.Fatalf("index %d returned twice", r.Index)
		}
		seen[r.Index] = true
	}
	for i := range texts {
		if !seen[i] {
			t.Errorf("index %d missing from full ranking", i)
		}
	}
	for i := 1; i < len(resp.Results); i++ {
		if resp.Results[i].Score > resp.Results[i-1].Score {
			t.Errorf("full ranking not descending at %d", i)
		}
	}
}
