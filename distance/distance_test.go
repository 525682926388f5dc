package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
		want float64
	}{
		{"identical", []float64{1, 0, 1}, []float64{1, 0, 1}, 0},
		{"disjoint", []float64{1, 0, 0}, []float64{0, 1, 0}, 1},
		{"half", []float64{1, 1, 0}, []float64{1, 0, 0}, 0.5},
		{"one third", []float64{1, 1, 0}, []float64{0, 1, 1}, 2.0 / 3.0},
		{"both empty", []float64{0, 0, 0}, []float64{0, 0, 0}, 0},
		{"non-zero is true", []float64{2, 0, -1}, []float64{1, 0, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Jaccard(tt.x, tt.y), 1e-12)
		})
	}
}

func TestJaccardCounts(t *testing.T) {
	assert.InDelta(t, 0.5, JaccardCounts(1, 2), 1e-12)
	assert.Equal(t, 0.0, JaccardCounts(0, 0))
	assert.Equal(t, 1.0, JaccardCounts(0, 3))
}

func TestJaccardMatchesSetFormula(t *testing.T) {
	x := []float64{1, 1, 0, 1, 0, 1}
	y := []float64{0, 1, 1, 1, 0, 0}

	c := Count(x, y)
	union := c.TT + c.TF + c.FT
	assert.InDelta(t, JaccardCounts(c.TT, union), Jaccard(x, y), 1e-12)
}

func TestHamming(t *testing.T) {
	a := []float64{1, 0, 1, 0}
	b := []float64{1, 1, 0, 0}

	assert.InDelta(t, 0.5, Hamming(a, b), 1e-12)
	assert.Equal(t, 0.0, Hamming(nil, nil))
}

func TestDice(t *testing.T) {
	a := []float64{1, 1, 0}
	b := []float64{1, 0, 1}

	// 2 disagreements, 1 agreement on true: 2 / (2 + 2)
	assert.InDelta(t, 0.5, Dice(a, b), 1e-12)
}

func TestCount(t *testing.T) {
	c := Count([]float64{1, 1, 0, 0}, []float64{1, 0, 1, 0})
	assert.Equal(t, Counts{TT: 1, TF: 1, FT: 1, FF: 1}, c)
	assert.Equal(t, 4, c.N())
}

func TestRegistry(t *testing.T) {
	a := []float64{1, 0, 1, 1, 0}
	b := []float64{0, 1, 1, 0, 0}

	for _, name := range Names() {
		fn, ok := Get(name)
		require.True(t, ok, "metric %s not found in registry", name)

		dist := fn(a, b)
		if math.IsNaN(dist) || math.IsInf(dist, 0) {
			t.Errorf("Metric %s returned non-finite value: %f", name, dist)
		}
		assert.InDelta(t, dist, fn(b, a), 1e-12, "metric %s is not symmetric", name)
	}

	_, ok := Get("euclidean")
	assert.False(t, ok)
}

func BenchmarkJaccard(b *testing.B) {
	x := make([]float64, 100)
	y := make([]float64, 100)
	for i := range x {
		x[i] = float64(i % 2)
		y[i] = float64(i % 3 % 2)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Jaccard(x, y)
	}
}
