package pairwise

import (
	"context"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/nozzle/jaccard/binarize"
	"github.com/nozzle/jaccard/distance"
	"github.com/nozzle/jaccard/internal/parallel"
	"gonum.org/v1/gonum/mat"
)

// GramJaccard computes Jaccard distances from the Gram matrix G = X*X^T:
// G[i][j] counts shared categories and G[i][i] is the size of set i, so
// union = G[i][i] + G[j][j] - G[i][j].
func GramJaccard(m *binarize.Matrix) *mat.Dense {
	n := m.NumEntities()
	dist := mat.NewDense(n, n, nil)
	if m.Values == nil {
		return dist
	}

	var gram mat.Dense
	gram.Mul(m.Values, m.Values.T())

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			inter := gram.At(i, j)
			union := gram.At(i, i) + gram.At(j, j) - inter
			d := 0.0
			if union > 0 {
				d = 1 - inter/union
			}
			dist.Set(i, j, d)
			dist.Set(j, i, d)
		}
	}

	return dist
}

// PairApply evaluates fn on every unordered entity pair, mirrors the
// result, and fills the diagonal with 0. Rows are split across workers.
func PairApply(ctx context.Context, m *binarize.Matrix, fn distance.Func, workers int) (*mat.Dense, error) {
	n := m.NumEntities()
	dist := mat.NewDense(n, n, nil)

	// Row i writes only cells (i, j>i) and (j>i, i), which no other row touches.
	err := parallel.For(ctx, 0, n, workers, func(_ context.Context, i int) error {
		x := m.Row(i)
		for j := i + 1; j < n; j++ {
			d := fn(x, m.Row(j))
			dist.Set(i, j, d)
			dist.Set(j, i, d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zeroDiagonal(dist)
	return dist, nil
}

// triple is one (e1, e2, value) record of the nested loop.
type triple struct {
	e1, e2 string
	val    float64
}

// NestedLoop evaluates fn on every ordered pair, including each entity with
// itself, and pivots the resulting (e1, e2, value) records into a matrix in
// entity order. The diagonal holds fn(x, x) as computed; Compute zeroes it.
func NestedLoop(m *binarize.Matrix, fn distance.Func) *mat.Dense {
	n := m.NumEntities()

	triples := make([]triple, 0, n*n)
	for i, e1 := range m.Entities {
		for j, e2 := range m.Entities {
			triples = append(triples, triple{e1, e2, fn(m.Row(i), m.Row(j))})
		}
	}

	pos := make(map[string]int, n)
	for i, e := range m.Entities {
		pos[e] = i
	}

	dist := mat.NewDense(n, n, nil)
	for _, t := range triples {
		dist.Set(pos[t.e1], pos[t.e2], t.val)
	}
	return dist
}

var bitmapPool = sync.Pool{
	New: func() any {
		return roaring.New()
	},
}

// BitmapJaccard stores each entity's categories as a roaring bitmap of
// category indices and takes distances from intersection and union
// cardinalities.
func BitmapJaccard(m *binarize.Matrix) *mat.Dense {
	n := m.NumEntities()

	sets := make([]*roaring.Bitmap, n)
	for i := range sets {
		rb := bitmapPool.Get().(*roaring.Bitmap)
		rb.Clear()
		for j, v := range m.Row(i) {
			if v != 0 {
				rb.Add(uint32(j))
			}
		}
		rb.RunOptimize()
		sets[i] = rb
	}
	defer func() {
		for _, rb := range sets {
			rb.Clear()
			bitmapPool.Put(rb)
		}
	}()

	dist := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			inter := sets[i].AndCardinality(sets[j])
			union := sets[i].OrCardinality(sets[j])
			d := distance.JaccardCounts(int(inter), int(union))
			dist.Set(i, j, d)
			dist.Set(j, i, d)
		}
	}
	return dist
}
