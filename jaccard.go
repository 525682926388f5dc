// Package jaccard computes pairwise Jaccard distance and similarity matrices
// between entities described by sets of categorical labels.
//
// The pipeline reads a table, binarizes it into an entities x categories
// indicator matrix, computes pairwise distances with one of several
// interchangeable strategies, and optionally converts them to similarities.
//
// Basic usage:
//
//	m, err := binarize.Read("labels.csv", binarize.PseudoTabular)
//	res, err := jaccard.Calculate(ctx, m, jaccard.DefaultConfig())
//	err = res.WriteCSV(os.Stdout, -1)
package jaccard

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/nozzle/jaccard/binarize"
	"github.com/nozzle/jaccard/pairwise"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrLabelCount is returned when labels do not match the matrix size.
	ErrLabelCount = errors.New("jaccard: number of labels does not match number of entities")
	// ErrNotSquare is returned for a non-square distance matrix.
	ErrNotSquare = errors.New("jaccard: distance matrix is not square")
)

// Config configures a calculation.
type Config struct {
	// Approach is the distance computation strategy.
	// Default: "vectorized"
	Approach pairwise.Approach

	// Metric is the binary distance metric.
	// Only the correlation and loop approaches accept metrics other than jaccard.
	// Default: "jaccard"
	Metric string

	// Similarity converts distances to similarities (1 - distance).
	// Default: true
	Similarity bool

	// NumWorkers for parallel processing.
	// 0 = auto-detect based on CPU cores.
	// Default: 0
	NumWorkers int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Approach:   pairwise.DefaultApproach,
		Metric:     "jaccard",
		Similarity: true,
		NumWorkers: 0,
	}
}

// Result is a labelled square matrix of distances or similarities.
type Result struct {
	Labels     []string
	Values     *mat.Dense
	Similarity bool
}

// Calculate computes the pairwise matrix of m.
func Calculate(ctx context.Context, m *binarize.Matrix, cfg Config) (*Result, error) {
	dist, err := pairwise.Compute(ctx, m, cfg.Approach, pairwise.Options{
		Metric:     cfg.Metric,
		NumWorkers: cfg.NumWorkers,
	})
	if err != nil {
		return nil, err
	}

	if cfg.Similarity {
		return DistToSim(dist, m.Entities)
	}

	return &Result{Labels: m.Entities, Values: dist}, nil
}

// DefaultLabels returns e_0 ... e_{n-1}.
func DefaultLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = "e_" + strconv.Itoa(i)
	}
	return labels
}

// DistToSim converts a distance matrix into a labelled similarity matrix.
// Nil labels default to e_0 ... e_{n-1}.
func DistToSim(dist *mat.Dense, labels []string) (*Result, error) {
	r, c := dist.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, r, c)
	}

	if labels == nil {
		labels = DefaultLabels(c)
	}
	if len(labels) != c {
		return nil, fmt.Errorf("%w: %d labels, %d entities", ErrLabelCount, len(labels), c)
	}

	var sim mat.Dense
	sim.Apply(func(i, j int, v float64) float64 {
		return 1 - v
	}, dist)

	return &Result{Labels: labels, Values: &sim, Similarity: true}, nil
}

// At returns the value for the entity pair (a, b).
func (r *Result) At(a, b string) (float64, bool) {
	i, j := -1, -1
	for k, l := range r.Labels {
		if l == a && i < 0 {
			i = k
		}
		if l == b && j < 0 {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return 0, false
	}
	return r.Values.At(i, j), true
}

// WriteCSV writes the matrix with an Entity header column. precision is
// the number of decimals; -1 selects the shortest exact representation.
func (r *Result) WriteCSV(w io.Writer, precision int) error {
	writer := csv.NewWriter(w)

	header := append([]string{binarize.EntityColumn}, r.Labels...)
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, label := range r.Labels {
		record := make([]string, 0, len(header))
		record = append(record, label)
		for j := range r.Labels {
			record = append(record, strconv.FormatFloat(r.Values.At(i, j), 'f', precision, 64))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// Process reads input in the given format and calculates its matrix.
func Process(ctx context.Context, path string, format binarize.Format, cfg Config) (*Result, error) {
	m, err := binarize.Read(path, format)
	if err != nil {
		return nil, err
	}
	return Calculate(ctx, m, cfg)
}
