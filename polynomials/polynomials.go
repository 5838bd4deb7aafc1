package polynomials

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/shiji203/data-driven-discretization-1d/utils"
)

// GridOffset states where an equation samples its solution relative to the
// reconstruction points: at cell centers or at staggered cell faces.
type GridOffset uint8

const (
	Centered GridOffset = iota
	Staggered
)

func (o GridOffset) String() string {
	switch o {
	case Centered:
		return "centered"
	case Staggered:
		return "staggered"
	}
	return fmt.Sprintf("GridOffset(%d)", o)
}

// FiniteDifference is one row of a periodic finite difference operator: the
// value at grid index i is Sum_j Coeffs[j] * y[(i+Columns[j]) mod n] / dx^m.
type FiniteDifference struct {
	DerivativeOrder int
	AccuracyOrder   int
	GridOffset      GridOffset
	Columns         []int     // integer column offsets relative to the row
	Stencil         []float64 // sample positions in units of dx
	Coeffs          []float64 // unscaled weights; apply with 1/dx^m
}

// StencilWidth is the number of sample points needed for a derivative of
// order m at accuracy order a. Centered stencils are odd (integer offsets
// symmetric about the point), staggered stencils even (half-integer offsets
// symmetric about the face).
func StencilWidth(offset GridOffset, derivativeOrder, accuracyOrder int) (w int) {
	w = derivativeOrder + accuracyOrder
	switch offset {
	case Centered:
		if w%2 == 0 {
			w++
		}
	case Staggered:
		if w%2 == 1 {
			w++
		}
	}
	return
}

// NewFiniteDifference builds the stencil and solves for its weights.
func NewFiniteDifference(offset GridOffset, derivativeOrder, accuracyOrder int) (fd FiniteDifference) {
	if derivativeOrder < 0 {
		panic("derivative order must be non-negative")
	}
	if accuracyOrder < 1 {
		panic("accuracy order must be positive")
	}
	var (
		w       = StencilWidth(offset, derivativeOrder, accuracyOrder)
		columns = make([]int, w)
		stencil = make([]float64, w)
	)
	switch offset {
	case Centered:
		for j := 0; j < w; j++ {
			columns[j] = j - (w-1)/2
			stencil[j] = float64(columns[j])
		}
	case Staggered:
		// Solution values live at centers, the derivative is evaluated at
		// the face one half spacing up from the row index.
		for j := 0; j < w; j++ {
			columns[j] = j - w/2 + 1
			stencil[j] = float64(columns[j]) - 0.5
		}
	default:
		panic(fmt.Sprintf("unknown grid offset %v", offset))
	}
	fd = FiniteDifference{
		DerivativeOrder: derivativeOrder,
		AccuracyOrder:   accuracyOrder,
		GridOffset:      offset,
		Columns:         columns,
		Stencil:         stencil,
		Coeffs:          Coefficients(stencil, derivativeOrder),
	}
	return
}

// Coefficients solves the moment system Sum_j c_j s_j^r = r! delta(r,m) for
// weights that reproduce the m-th derivative on the given stencil.
func Coefficients(stencil []float64, derivativeOrder int) (coeffs []float64) {
	var (
		w = len(stencil)
	)
	if derivativeOrder >= w {
		panic(fmt.Sprintf("stencil of width %d cannot resolve derivative order %d", w, derivativeOrder))
	}
	A := mat.NewDense(w, w, nil)
	for r := 0; r < w; r++ {
		for j := 0; j < w; j++ {
			A.Set(r, j, utils.POW(stencil[j], r))
		}
	}
	b := mat.NewVecDense(w, nil)
	b.SetVec(derivativeOrder, utils.Factorial(derivativeOrder))
	var c mat.VecDense
	if err := c.SolveVec(A, b); err != nil {
		panic("singular finite difference moment system")
	}
	coeffs = make([]float64, w)
	copy(coeffs, c.RawVector().Data)
	return
}
