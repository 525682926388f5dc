// Package pairwise computes entity x entity distance matrices from an
// indicator matrix. Every strategy yields the same Jaccard values; they
// differ only in how the pairs are visited.
package pairwise

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nozzle/jaccard/binarize"
	"github.com/nozzle/jaccard/distance"
	"gonum.org/v1/gonum/mat"
)

// Approach names a distance computation strategy.
type Approach string

const (
	// Vectorized derives all intersections from one matrix product.
	Vectorized Approach = "vectorized"
	// Correlation applies a metric to every unordered pair, the way a
	// pairwise correlation routine does, mirroring the upper triangle.
	Correlation Approach = "correlation"
	// Loop visits every ordered pair in a plain double loop.
	Loop Approach = "loop"
	// Bitmap intersects compressed category bitmaps.
	Bitmap Approach = "bitmap"
)

// DefaultApproach is used when no or an unknown approach is given.
const DefaultApproach = Vectorized

var (
	// ErrMetricUnsupported is returned when an approach cannot compute the
	// requested metric.
	ErrMetricUnsupported = errors.New("pairwise: metric not supported by approach")
	// ErrUnknownMetric is returned for a metric missing from distance.Registry.
	ErrUnknownMetric = errors.New("pairwise: unknown metric")
)

// approaches maps accepted names, including legacy aliases, to approaches.
var approaches = map[string]Approach{
	"vectorized":  Vectorized,
	"scikit":      Vectorized,
	"correlation": Correlation,
	"pandas":      Correlation,
	"loop":        Loop,
	"bitmap":      Bitmap,
}

// Approaches lists the canonical approach names.
var Approaches = []Approach{Vectorized, Correlation, Loop, Bitmap}

// ParseApproach resolves an approach name. Unknown names resolve to
// DefaultApproach with ok set to false.
func ParseApproach(name string) (a Approach, ok bool) {
	a, ok = approaches[name]
	if !ok {
		return DefaultApproach, false
	}
	return a, true
}

// Options configures Compute.
type Options struct {
	// Metric is a distance.Registry name. Default: "jaccard".
	Metric string
	// NumWorkers bounds parallelism for the correlation approach.
	// 0 = auto-detect based on CPU cores.
	NumWorkers int
}

// Compute builds the distance matrix of m with the given approach.
// The diagonal is always 0, whatever fn(x, x) gives for the metric.
func Compute(ctx context.Context, m *binarize.Matrix, approach Approach, opts Options) (*mat.Dense, error) {
	if m == nil || m.NumEntities() == 0 {
		return nil, binarize.ErrNoEntities
	}

	metric := opts.Metric
	if metric == "" {
		metric = "jaccard"
	}
	fn, ok := distance.Get(metric)
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownMetric, metric, strings.Join(distance.Names(), ", "))
	}

	var (
		dist *mat.Dense
		err  error
	)
	switch approach {
	case Correlation:
		dist, err = PairApply(ctx, m, fn, opts.NumWorkers)
	case Loop:
		dist = NestedLoop(m, fn)
	case Bitmap:
		if metric != "jaccard" && metric != "tanimoto" {
			return nil, fmt.Errorf("%w: %s with %s", ErrMetricUnsupported, metric, approach)
		}
		dist = BitmapJaccard(m)
	default:
		if metric != "jaccard" && metric != "tanimoto" {
			return nil, fmt.Errorf("%w: %s with %s", ErrMetricUnsupported, metric, Vectorized)
		}
		dist = GramJaccard(m)
	}
	if err != nil {
		return nil, err
	}

	zeroDiagonal(dist)
	return dist, nil
}

func zeroDiagonal(dist *mat.Dense) {
	n, _ := dist.Dims()
	for i := 0; i < n; i++ {
		dist.Set(i, i, 0)
	}
}
