package equations

import (
	"github.com/shiji203/data-driven-discretization-1d/polynomials"
	"github.com/shiji203/data-driven-discretization-1d/utils"
)

const (
	DefaultKdVPeriod = 50.0
	kdvForcingParams = 10
)

// KdV is the Korteweg-de Vries equation with random initial conditions:
// y_t = -6*y*y_x - y_xxx
type KdV struct {
	grid       Grid
	RandomSeed int
	Forcing    *RandomForcing
}

func NewKdV(p Params, seed int) (eq *KdV, err error) {
	if p.Period == 0 {
		p.Period = DefaultKdVPeriod
	}
	grid, err := NewGrid(p.NumPoints, p.Period)
	if err != nil {
		return
	}
	eq = &KdV{
		grid:       grid,
		RandomSeed: seed,
		Forcing:    NewRandomForcing(kdvForcingParams, p.Period, seed, forcingAmplitude, forcingKMax),
	}
	return
}

func (eq *KdV) Grid() Grid { return eq.grid }
func (eq *KdV) GridOffset() polynomials.GridOffset { return polynomials.Centered }
func (eq *KdV) DerivativeOrders() []int { return []int{1, 3} }
func (eq *KdV) Conservative() bool { return false }
func (eq *KdV) ExactMethod() ExactMethod { return ExactFiniteDifference }
func (eq *KdV) TimeStep() float64 { return 3e-4 }
func (eq *KdV) StandardDeviation() float64 { return 0.594 }

func (eq *KdV) InitialValue() utils.Vector {
	return eq.Forcing.Eval(0, eq.grid.X)
}

func (eq *KdV) EquationOfMotion(y utils.Vector, d map[int]utils.Vector) utils.Vector {
	var (
		yx   = d[1]
		yxxx = d[3]
	)
	return y.Copy().ElMul(yx).Scale(-6).Subtract(yxxx)
}

// FinalizeTimeDerivative smooths out high frequency noise with a 3 point
// periodic filter. Empirically this improves the stability of finite
// differences for KdV considerably.
func (eq *KdV) FinalizeTimeDerivative(_ float64, yt utils.Vector) utils.Vector {
	return smooth3(yt)
}

// smooth3 applies 0.25*shift(-1) + 0.5 + 0.25*shift(+1) with periodic
// wraparound. A spatially constant input comes back unchanged.
func smooth3(yt utils.Vector) utils.Vector {
	return yt.ShiftLeft().Scale(0.25).
		Add(yt.ShiftRight().Scale(0.25)).
		Add(yt.Copy().Scale(0.5))
}

// ConservativeKdV evolves the flux form of KdV on a staggered grid:
// flux = -3*y^2 - y_xx, y_t = d/dx(flux)
type ConservativeKdV struct {
	grid       Grid
	RandomSeed int
	Forcing    *RandomForcing
}

func NewConservativeKdV(p Params, seed int) (eq *ConservativeKdV, err error) {
	base, err := NewKdV(p, seed)
	if err != nil {
		return
	}
	eq = &ConservativeKdV{
		grid:       base.grid,
		RandomSeed: seed,
		Forcing:    base.Forcing,
	}
	return
}

func (eq *ConservativeKdV) Grid() Grid { return eq.grid }
func (eq *ConservativeKdV) GridOffset() polynomials.GridOffset { return polynomials.Staggered }
func (eq *ConservativeKdV) DerivativeOrders() []int { return []int{0, 2} }
func (eq *ConservativeKdV) Conservative() bool { return true }
func (eq *ConservativeKdV) ExactMethod() ExactMethod { return ExactFiniteDifference }
func (eq *ConservativeKdV) TimeStep() float64 { return 3e-4 }
func (eq *ConservativeKdV) StandardDeviation() float64 { return 0.594 }

func (eq *ConservativeKdV) InitialValue() utils.Vector {
	return eq.Forcing.Eval(0, eq.grid.X)
}

func (eq *ConservativeKdV) EquationOfMotion(_ utils.Vector, d map[int]utils.Vector) utils.Vector {
	var (
		y   = d[0]
		yxx = d[2]
	)
	flux := y.Copy().POW(2).Scale(-3).Subtract(yxx)
	return fixedFirstDerivative(flux, eq.grid.DX)
}

// The conservative form's own flux divergence keeps the scheme stable; the
// centered variant's smoothing filter does not apply here.
func (eq *ConservativeKdV) FinalizeTimeDerivative(_ float64, yt utils.Vector) utils.Vector {
	return yt
}
