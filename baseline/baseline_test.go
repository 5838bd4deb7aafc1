package baseline

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiji203/data-driven-discretization-1d/dataset"
)

func testConfig() *Config {
	return &Config{
		Equation:        "burgers",
		EquationParams:  `{"num_points": 16}`,
		NumSamples:      2,
		TimeMax:         1,
		AccuracyOrders:  []int{1, 3},
		TimeDelta:       1,
		IntegrateMethod: "midpoint",
	}
}

func TestPlan(t *testing.T) {
	tasks := Plan(3, []int{1, 3})
	require.Len(t, tasks, 6)
	assert.Equal(t, Task{Seed: 0, AccuracyOrder: 1}, tasks[0])
	assert.Equal(t, Task{Seed: 2, AccuracyOrder: 3}, tasks[5])
}

func TestTimes(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, []float64{0, 1}, cfg.Times())
	cfg.TimeMax = 10
	cfg.TimeDelta = 2.5
	assert.Equal(t, []float64{0, 2.5, 5, 7.5, 10}, cfg.Times())
}

func TestValidate(t *testing.T) {
	bad := testConfig()
	bad.Equation = "advection"
	_, err := Generate(bad)
	assert.Error(t, err)

	bad = testConfig()
	bad.EquationParams = `{"num_points": 16, "bogus": true}`
	_, err = Generate(bad)
	assert.Error(t, err)

	bad = testConfig()
	bad.IntegrateMethod = "dopri"
	_, err = Generate(bad)
	assert.Error(t, err)

	bad = testConfig()
	bad.NumSamples = 0
	_, err = Generate(bad)
	assert.Error(t, err)
}

// Partial results handed to Combine out of order must come back doubly
// sorted: samples strictly increasing, accuracy orders strictly increasing
// within every sample block.
func TestCombineOutOfOrder(t *testing.T) {
	partial := func(sample, order int) *dataset.Array {
		a, err := dataset.New(
			[]string{"time", "x"},
			map[string][]float64{"time": {0}, "x": {0, 0.5}},
			[]float32{float32(10*sample + order), 0},
		)
		require.NoError(t, err)
		a, err = a.ExpandDims("accuracy_order", float64(order))
		require.NoError(t, err)
		a, err = a.ExpandDims("sample", float64(sample))
		require.NoError(t, err)
		return a
	}
	var partials []*dataset.Array
	for _, pair := range [][2]int{{2, 3}, {0, 1}, {1, 3}, {2, 1}, {1, 1}, {0, 3}} {
		partials = append(partials, partial(pair[0], pair[1]))
	}
	ds, err := Combine(partials)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, ds.Coords["sample"])
	assert.Equal(t, []float64{1, 3}, ds.Coords["accuracy_order"])
	for si := 0; si < 3; si++ {
		for oi, order := range []int{1, 3} {
			assert.Equal(t, float32(10*si+order), ds.At(si, oi, 0, 0))
		}
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	cfg := testConfig()
	ds, err := Generate(cfg)
	require.NoError(t, err)
	// 2 samples x 2 accuracy orders x 2 time points x 16 grid points
	assert.Equal(t, []string{"sample", "accuracy_order", "time", "x"}, ds.Dims)
	assert.Equal(t, []int{2, 2, 2, 16}, ds.Shape)
	assert.Equal(t, []float64{0, 1}, ds.Coords["sample"])
	assert.Equal(t, []float64{1, 3}, ds.Coords["accuracy_order"])
	assert.Equal(t, []float64{0, 1}, ds.Coords["time"])
}

func TestGenerateIdempotent(t *testing.T) {
	// parallel dispatch must not leak scheduling into the output
	cfg := testConfig()
	cfg.Parallelism = 4
	first, err := Generate(cfg)
	require.NoError(t, err)
	cfg.Parallelism = 1
	second, err := Generate(cfg)
	require.NoError(t, err)
	assert.Equal(t, first.Values, second.Values)
	assert.Equal(t, first.Coords, second.Coords)
}

func TestRunWritesDataset(t *testing.T) {
	cfg := testConfig()
	cfg.NumSamples = 1
	cfg.AccuracyOrders = []int{1}
	cfg.OutputPath = filepath.Join(t.TempDir(), "baseline.json")
	require.NoError(t, Run(cfg))
	ds, err := dataset.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 2, 16}, ds.Shape)

	cfg.OutputPath = ""
	assert.Error(t, Run(cfg))
}
