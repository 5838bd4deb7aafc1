package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeArray(t *testing.T, sample, order float64, vals []float32) *Array {
	t.Helper()
	inner, err := New(
		[]string{"time", "x"},
		map[string][]float64{"time": {0, 1}, "x": {0, 0.5}},
		vals,
	)
	require.NoError(t, err)
	tagged, err := inner.ExpandDims("accuracy_order", order)
	require.NoError(t, err)
	tagged, err = tagged.ExpandDims("sample", sample)
	require.NoError(t, err)
	return tagged
}

func TestNewValidates(t *testing.T) {
	_, err := New([]string{"x"}, map[string][]float64{"x": {0, 1}}, []float32{1})
	assert.Error(t, err)
	_, err = New([]string{"x"}, map[string][]float64{}, []float32{})
	assert.Error(t, err)
	a, err := New([]string{"x"}, map[string][]float64{"x": {0, 1, 2}}, []float32{5, 6, 7})
	require.NoError(t, err)
	assert.Equal(t, 3, a.Size("x"))
	assert.Equal(t, float32(6), a.At(1))
}

func TestExpandDims(t *testing.T) {
	a, err := New([]string{"x"}, map[string][]float64{"x": {0, 1}}, []float32{1, 2})
	require.NoError(t, err)
	b, err := a.ExpandDims("sample", 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"sample", "x"}, b.Dims)
	assert.Equal(t, []int{1, 2}, b.Shape)
	assert.Equal(t, []float64{4}, b.Coords["sample"])
	assert.Equal(t, float32(2), b.At(0, 1))
	_, err = b.ExpandDims("sample", 5)
	assert.Error(t, err)
}

// Out-of-order partial results for seeds {2,0,1} x accuracy orders {3,1}:
// after the per-sample combine and the global combine, each followed by a
// sort, the sample coordinate must be {0,1,2} and the accuracy_order
// coordinate {1,3} inside every sample block.
func TestDoubleCombineAndSortOrdering(t *testing.T) {
	var (
		bySample = map[float64][]*Array{}
		val      = func(sample, order float64) []float32 {
			base := float32(10*sample + order)
			return []float32{base, base + 0.1, base + 0.2, base + 0.3}
		}
	)
	for _, pair := range [][2]float64{{2, 3}, {0, 3}, {1, 1}, {2, 1}, {0, 1}, {1, 3}} {
		sample, order := pair[0], pair[1]
		bySample[sample] = append(bySample[sample], makeArray(t, sample, order, val(sample, order)))
	}

	var combined []*Array
	for _, sample := range []float64{2, 0, 1} { // arbitrary arrival order
		c, err := Concat("accuracy_order", bySample[sample]...)
		require.NoError(t, err)
		c, err = c.SortBy("accuracy_order")
		require.NoError(t, err)
		combined = append(combined, c)
	}
	ds, err := Concat("sample", combined...)
	require.NoError(t, err)
	ds, err = ds.SortBy("sample")
	require.NoError(t, err)

	assert.Equal(t, []string{"sample", "accuracy_order", "time", "x"}, ds.Dims)
	assert.Equal(t, []int{3, 2, 2, 2}, ds.Shape)
	assert.Equal(t, []float64{0, 1, 2}, ds.Coords["sample"])
	assert.Equal(t, []float64{1, 3}, ds.Coords["accuracy_order"])
	for si, sample := range []float64{0, 1, 2} {
		for oi, order := range []float64{1, 3} {
			assert.Equal(t, float32(10*sample+order), ds.At(si, oi, 0, 0))
			assert.Equal(t, float32(10*sample+order)+0.3, ds.At(si, oi, 1, 1))
		}
	}
}

func TestConcatRejectsMismatch(t *testing.T) {
	a, err := New([]string{"x"}, map[string][]float64{"x": {0, 1}}, []float32{1, 2})
	require.NoError(t, err)
	b, err := New([]string{"x"}, map[string][]float64{"x": {0, 2}}, []float32{1, 2})
	require.NoError(t, err)
	c, err := New([]string{"t"}, map[string][]float64{"t": {0, 1}}, []float32{1, 2})
	require.NoError(t, err)

	ea, _ := a.ExpandDims("sample", 0)
	eb, _ := b.ExpandDims("sample", 1)
	ec, _ := c.ExpandDims("sample", 1)
	_, err = Concat("sample", ea, eb)
	assert.Error(t, err) // x coordinates differ
	_, err = Concat("sample", ea, ec)
	assert.Error(t, err) // dimension names differ
}

func TestSortByIsStable(t *testing.T) {
	a := makeArray(t, 0, 1, []float32{1, 2, 3, 4})
	b := makeArray(t, 0, 1, []float32{5, 6, 7, 8})
	c, err := Concat("accuracy_order", a, b)
	require.NoError(t, err)
	s, err := c.SortBy("accuracy_order")
	require.NoError(t, err)
	// equal keys keep arrival order
	assert.Equal(t, float32(1), s.At(0, 0, 0, 0))
	assert.Equal(t, float32(5), s.At(0, 1, 0, 0))
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	a := makeArray(t, 1, 3, []float32{1, 2, 3, 4})
	for _, name := range []string{"out.json", "out.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, a.WriteFile(path))
		b, err := ReadFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, a.Dims, b.Dims, name)
		assert.Equal(t, a.Shape, b.Shape, name)
		assert.Equal(t, a.Coords, b.Coords, name)
		assert.Equal(t, a.Values, b.Values, name)
	}
}
