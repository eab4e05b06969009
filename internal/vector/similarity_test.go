package vector

import (
	"errors"
	"math"
	"testing"
)

func TestCosine_SelfIsOne(t *testing.T) {
	for _, v := range [][]float32{{1, 0}, {3, 4}, {-1, 2, -3}} {
		got, err := Cosine(v, v)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-1.0) > 1e-6 {
			t.Errorf("Cosine(%v, %v) = %f, want 1.0", v, v, got)
		}
	}
}

func TestCosine_SymmetricAndBounded(t *testing.T) {
	pairs := [][2][]float32{
		{{1, 0}, {0, 1}},
		{{1, 2}, {-3, 1}},
		{{0.9, 0.1}, {1, 0}},
		{{-1, -1}, {1, 1}},
	}
	for _, p := range pairs {
		ab, err := Cosine(p[0], p[1])
		if err != nil {
			t.Fatal(err)
		}
		ba, err := Cosine(p[1], p[0])
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("Cosine not symmetric for %v: %f vs %f", p, ab, ba)
		}
		if ab < -1-1e-9 || ab > 1+1e-9 {
			t.Errorf("Cosine(%v, %v) = %f out of [-1, 1]", p[0], p[1], ab)
		}
	}
}

func TestCosine_Errors(t *testing.T) {
	if _, err := Cosine([]float32{1, 0}, []float32{1, 0, 0}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := Cosine([]float32{0, 0}, []float32{1, 0}); !errors.Is(err, ErrZeroVector) {
		t.Errorf("expected ErrZeroVector, got %v", err)
	}
}

func TestInnerProduct_MatchesCosineForUnitVectors(t *testing.T) {
	a, _ := Normalize([]float32{2, 1, 0})
	b, _ := Normalize([]float32{1, 3, -1})
	cos, err := Cosine(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if dot := InnerProduct(a, b); math.Abs(dot-cos) > 1e-6 {
		t.Errorf("inner product %f != cosine %f for unit vectors", dot, cos)
	}
}
