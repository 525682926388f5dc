package jaccard

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nozzle/jaccard/binarize"
	"github.com/nozzle/jaccard/pairwise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDistToSim(t *testing.T) {
	dist := mat.NewDense(2, 2, []float64{0, 0.25, 0.25, 0})

	res, err := DistToSim(dist, []string{"x", "y"})
	require.NoError(t, err)

	assert.True(t, res.Similarity)
	assert.Equal(t, []string{"x", "y"}, res.Labels)
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{1, 0.75, 0.75, 1}), res.Values))

	// The input is left untouched.
	assert.Equal(t, 0.25, dist.At(0, 1))
}

func TestDistToSimDefaultLabels(t *testing.T) {
	res, err := DistToSim(mat.NewDense(3, 3, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"e_0", "e_1", "e_2"}, res.Labels)
}

func TestDistToSimErrors(t *testing.T) {
	_, err := DistToSim(mat.NewDense(2, 2, nil), []string{"only"})
	assert.ErrorIs(t, err, ErrLabelCount)

	_, err = DistToSim(mat.NewDense(2, 3, nil), nil)
	assert.ErrorIs(t, err, ErrNotSquare)
}

func TestCalculateSimilarityIsOneMinusDistance(t *testing.T) {
	m, err := binarize.New([]string{"a", "b", "c"}, map[string][]string{
		"a": {"X", "Y"},
		"b": {"Y"},
		"c": {"Z"},
	})
	require.NoError(t, err)

	for _, approach := range pairwise.Approaches {
		t.Run(string(approach), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Approach = approach

			cfg.Similarity = false
			dist, err := Calculate(context.Background(), m, cfg)
			require.NoError(t, err)
			assert.False(t, dist.Similarity)

			cfg.Similarity = true
			sim, err := Calculate(context.Background(), m, cfg)
			require.NoError(t, err)

			for i := range m.Entities {
				assert.Equal(t, 1.0, sim.Values.At(i, i))
				for j := range m.Entities {
					assert.InDelta(t, 1-dist.Values.At(i, j), sim.Values.At(i, j), 1e-12)
				}
			}

			v, ok := sim.At("a", "b")
			require.True(t, ok)
			assert.InDelta(t, 0.5, v, 1e-12)
		})
	}
}

func TestResultAtUnknown(t *testing.T) {
	res, err := DistToSim(mat.NewDense(1, 1, nil), []string{"a"})
	require.NoError(t, err)

	_, ok := res.At("a", "missing")
	assert.False(t, ok)
}

func TestWriteCSV(t *testing.T) {
	res, err := DistToSim(mat.NewDense(2, 2, []float64{0, 2.0 / 3.0, 2.0 / 3.0, 0}), []string{"s1", "s2"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, res.WriteCSV(&buf, 3))
	assert.Equal(t, "Entity,s1,s2\ns1,1.000,0.333\ns2,0.333,1.000\n", buf.String())

	buf.Reset()
	require.NoError(t, res.WriteCSV(&buf, -1))
	assert.Equal(t, "Entity,s1,s2\ns1,1,0.33333333333333337\ns2,0.33333333333333337,1\n", buf.String())
}

func TestProcessFormatsAgree(t *testing.T) {
	tabular := writeFile(t, "tab.csv", "s1,s2,s3\nA,B,A\nB,C,\n")
	long := writeFile(t, "long.csv", "entity,label\ns1,A\ns1,B\ns2,B\ns2,C\ns3,A\n")
	binary := writeFile(t, "bin.csv", "Entity,A,B,C\ns1,1,1,0\ns2,0,1,1\ns3,1,0,0\n")

	var results []*Result
	for _, in := range []struct {
		path   string
		format binarize.Format
	}{
		{tabular, binarize.PseudoTabular},
		{long, binarize.Long},
		{binary, binarize.Binary},
	} {
		res, err := Process(context.Background(), in.path, in.format, DefaultConfig())
		require.NoError(t, err, in.format)
		results = append(results, res)
	}

	for _, res := range results[1:] {
		assert.Equal(t, results[0].Labels, res.Labels)
		assert.True(t, mat.EqualApprox(results[0].Values, res.Values, 1e-12))
	}

	v, ok := results[0].At("s1", "s2")
	require.True(t, ok)
	assert.InDelta(t, 1.0/3.0, v, 1e-12)
}

func TestProcessUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "in.csv", "a\nb\n")

	res, err := Process(context.Background(), path, binarize.Format("yaml"), DefaultConfig())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, binarize.ErrUnsupportedFormat)
}
