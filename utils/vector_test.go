package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector(t *testing.T) {
	N := 4
	v1 := NewVector(N).Set(1)
	require.Equal(t, 1., v1.V.RawVector().Data[N-1])
	v1.Set(2)
	require.Equal(t, 2., v1.V.RawVector().Data[N-1])

	v2 := NewVecRange(0, 3)
	require.Equal(t, []float64{0, 1, 2, 3}, v2.DataCopy())
	require.Equal(t, 0., v2.Min())
	require.Equal(t, 3., v2.Max())

	// chainable ops mutate in place
	v3 := v2.Copy().Scale(2).AddScalar(1)
	require.Equal(t, []float64{1, 3, 5, 7}, v3.DataCopy())
	require.Equal(t, []float64{0, 1, 2, 3}, v2.DataCopy())

	v4 := v2.Copy().ElMul(v2)
	require.Equal(t, []float64{0, 1, 4, 9}, v4.DataCopy())
	require.Equal(t, []float64{0, 1, 4, 9}, v2.Copy().POW(2).DataCopy())

	v5 := v2.Copy().Apply(func(x float64) float64 { return math.Abs(x - 2) })
	require.Equal(t, []float64{2, 1, 0, 1}, v5.DataCopy())
}

func TestVectorShift(t *testing.T) {
	v := NewVector(4, []float64{10, 20, 30, 40})
	assert.Equal(t, []float64{20, 30, 40, 10}, v.ShiftLeft().DataCopy())
	assert.Equal(t, []float64{40, 10, 20, 30}, v.ShiftRight().DataCopy())
	// shifts allocate, the input is untouched
	assert.Equal(t, []float64{10, 20, 30, 40}, v.DataCopy())
	// left then right is the identity
	assert.Equal(t, v.DataCopy(), v.ShiftLeft().ShiftRight().DataCopy())
}

func TestFactorial(t *testing.T) {
	assert.Equal(t, 1., Factorial(0))
	assert.Equal(t, 1., Factorial(1))
	assert.Equal(t, 24., Factorial(4))
}
