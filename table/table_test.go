package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	in := "a,b,c\nx, y ,z\n1,2\n"

	tab, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, tab.Header)
	assert.Equal(t, 2, tab.NumRows())
	assert.Equal(t, 3, tab.NumCols())
	assert.Equal(t, []string{"x", "y", "z"}, tab.Rows[0])
	assert.Equal(t, []string{"1", "2", ""}, tab.Rows[1])
	assert.Equal(t, []string{"y", "2"}, tab.Column(1))
}

func TestReadCSVWideRow(t *testing.T) {
	tab, err := ReadCSV(strings.NewReader("a\n1,2\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "Unnamed: 1"}, tab.Header)
	assert.Equal(t, []string{"1", "2"}, tab.Rows[0])
}

func TestReadCSVSkipsBlankRows(t *testing.T) {
	tab, err := ReadCSV(strings.NewReader("a,b\n,\nx,y\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, tab.NumRows())
}

func TestReadCSVStripsByteOrderMark(t *testing.T) {
	tab, err := ReadCSV(strings.NewReader("\ufeffs1,s2\nA,B\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, tab.Header)

	tab, err = ReadCSV(strings.NewReader("\ufeff\"Entity\",A\nx,1\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Entity", "A"}, tab.Header)
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("e1,e2\nA,B\n"), 0o644))

	tab, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"e1", "e2"}, tab.Header)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestIsNA(t *testing.T) {
	for _, cell := range []string{"", " ", "NA", "NaN", "nan", "null", "None", "<NA>"} {
		assert.True(t, IsNA(cell), "%q should be NA", cell)
	}
	for _, cell := range []string{"0", "A", "HP:0001", "na"} {
		assert.False(t, IsNA(cell), "%q should not be NA", cell)
	}
}
