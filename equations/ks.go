package equations

import (
	"github.com/shiji203/data-driven-discretization-1d/polynomials"
	"github.com/shiji203/data-driven-discretization-1d/utils"
)

const (
	DefaultKSPeriod = 100.0
	ksForcingParams = 10
)

// KS is the Kuramoto-Sivashinsky equation with random initial conditions:
// y_t = -y*y_x - y_xxxx - y_xx
type KS struct {
	grid       Grid
	RandomSeed int
	Forcing    *RandomForcing
}

func NewKS(p Params, seed int) (eq *KS, err error) {
	if p.Period == 0 {
		p.Period = DefaultKSPeriod
	}
	grid, err := NewGrid(p.NumPoints, p.Period)
	if err != nil {
		return
	}
	eq = &KS{
		grid:       grid,
		RandomSeed: seed,
		Forcing:    NewRandomForcing(ksForcingParams, p.Period, seed, forcingAmplitude, forcingKMax),
	}
	return
}

func (eq *KS) Grid() Grid { return eq.grid }
func (eq *KS) GridOffset() polynomials.GridOffset { return polynomials.Centered }
func (eq *KS) DerivativeOrders() []int { return []int{1, 2, 4} }
func (eq *KS) Conservative() bool { return false }
func (eq *KS) ExactMethod() ExactMethod { return ExactFiniteDifference }
func (eq *KS) TimeStep() float64 { return 3e-4 }
func (eq *KS) StandardDeviation() float64 { return 0.299 }

func (eq *KS) InitialValue() utils.Vector {
	return eq.Forcing.Eval(0, eq.grid.X)
}

func (eq *KS) EquationOfMotion(y utils.Vector, d map[int]utils.Vector) utils.Vector {
	var (
		yx    = d[1]
		yxx   = d[2]
		yxxxx = d[4]
	)
	return y.Copy().ElMul(yx).Scale(-1).Subtract(yxxxx).Subtract(yxx)
}

func (eq *KS) FinalizeTimeDerivative(_ float64, yt utils.Vector) utils.Vector {
	return yt
}

// ConservativeKS evolves the flux form of KS on a staggered grid:
// flux = -0.5*y^2 - y_xxx - y_x, y_t = d/dx(flux)
type ConservativeKS struct {
	grid       Grid
	RandomSeed int
	Forcing    *RandomForcing
}

func NewConservativeKS(p Params, seed int) (eq *ConservativeKS, err error) {
	base, err := NewKS(p, seed)
	if err != nil {
		return
	}
	eq = &ConservativeKS{
		grid:       base.grid,
		RandomSeed: seed,
		Forcing:    base.Forcing,
	}
	return
}

func (eq *ConservativeKS) Grid() Grid { return eq.grid }
func (eq *ConservativeKS) GridOffset() polynomials.GridOffset { return polynomials.Staggered }
func (eq *ConservativeKS) DerivativeOrders() []int { return []int{0, 1, 3} }
func (eq *ConservativeKS) Conservative() bool { return true }
func (eq *ConservativeKS) ExactMethod() ExactMethod { return ExactFiniteDifference }
func (eq *ConservativeKS) TimeStep() float64 { return 3e-4 }
func (eq *ConservativeKS) StandardDeviation() float64 { return 0.299 }

func (eq *ConservativeKS) InitialValue() utils.Vector {
	return eq.Forcing.Eval(0, eq.grid.X)
}

func (eq *ConservativeKS) EquationOfMotion(_ utils.Vector, d map[int]utils.Vector) utils.Vector {
	var (
		y    = d[0]
		yx   = d[1]
		yxxx = d[3]
	)
	flux := y.Copy().POW(2).Scale(-0.5).Subtract(yxxx).Subtract(yx)
	return fixedFirstDerivative(flux, eq.grid.DX)
}

func (eq *ConservativeKS) FinalizeTimeDerivative(_ float64, yt utils.Vector) utils.Vector {
	return yt
}
