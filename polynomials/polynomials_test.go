package polynomials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStencilWidth(t *testing.T) {
	// centered stencils come out odd, staggered even
	assert.Equal(t, 3, StencilWidth(Centered, 1, 2))
	assert.Equal(t, 3, StencilWidth(Centered, 2, 1))
	assert.Equal(t, 5, StencilWidth(Centered, 1, 4))
	assert.Equal(t, 2, StencilWidth(Staggered, 1, 1))
	assert.Equal(t, 2, StencilWidth(Staggered, 0, 1))
	assert.Equal(t, 4, StencilWidth(Staggered, 1, 3))
}

func TestCenteredFirstDerivative(t *testing.T) {
	// classic second order centered first difference: (-1/2, 0, 1/2)
	fd := NewFiniteDifference(Centered, 1, 2)
	require.Equal(t, []int{-1, 0, 1}, fd.Columns)
	require.InDeltaSlice(t, []float64{-0.5, 0, 0.5}, fd.Coeffs, 1e-12)
}

func TestCenteredSecondDerivative(t *testing.T) {
	// (1, -2, 1)
	fd := NewFiniteDifference(Centered, 2, 1)
	require.Equal(t, []int{-1, 0, 1}, fd.Columns)
	require.InDeltaSlice(t, []float64{1, -2, 1}, fd.Coeffs, 1e-12)
}

func TestStaggeredFirstDerivative(t *testing.T) {
	// the fixed two point face difference: (y[i+1] - y[i]) / dx
	fd := NewFiniteDifference(Staggered, 1, 1)
	require.Equal(t, []int{0, 1}, fd.Columns)
	require.InDeltaSlice(t, []float64{-1, 1}, fd.Coeffs, 1e-12)
}

func TestStaggeredInterpolation(t *testing.T) {
	// order zero on a staggered grid averages the two neighboring centers
	fd := NewFiniteDifference(Staggered, 0, 1)
	require.Equal(t, []int{0, 1}, fd.Columns)
	require.InDeltaSlice(t, []float64{0.5, 0.5}, fd.Coeffs, 1e-12)
}

func TestCoefficientsReproducePolynomials(t *testing.T) {
	// weights must be exact on monomials up to the stencil width
	fd := NewFiniteDifference(Centered, 1, 4)
	require.Len(t, fd.Coeffs, 5)
	// derivative of x^3 at 0 is 0 for the symmetric stencil
	var acc float64
	for j, s := range fd.Stencil {
		acc += fd.Coeffs[j] * s * s * s
	}
	assert.InDelta(t, 0, acc, 1e-10)
	// derivative of x at 0 is 1
	acc = 0
	for j, s := range fd.Stencil {
		acc += fd.Coeffs[j] * s
	}
	assert.InDelta(t, 1, acc, 1e-10)
}

func TestInvalidStencilPanics(t *testing.T) {
	assert.Panics(t, func() { NewFiniteDifference(Centered, -1, 1) })
	assert.Panics(t, func() { NewFiniteDifference(Centered, 1, 0) })
	assert.Panics(t, func() { Coefficients([]float64{0}, 1) })
}
