package equations

import (
	"math"

	"github.com/shiji203/data-driven-discretization-1d/polynomials"
	"github.com/shiji203/data-driven-discretization-1d/utils"
)

const (
	DefaultBurgersPeriod = 2 * math.Pi
	DefaultBurgersEta    = 0.04
	burgersForcingParams = 20
	forcingAmplitude     = 1
	forcingKMax          = 3
)

// Burgers is Burgers' equation with random forcing:
// y_t = eta*y_xx - y*y_x + f(t, x)
type Burgers struct {
	grid       Grid
	RandomSeed int
	Eta        float64
	Forcing    *RandomForcing
}

func NewBurgers(p Params, seed int) (eq *Burgers, err error) {
	if p.Period == 0 {
		p.Period = DefaultBurgersPeriod
	}
	if p.Eta == 0 {
		p.Eta = DefaultBurgersEta
	}
	grid, err := NewGrid(p.NumPoints, p.Period)
	if err != nil {
		return
	}
	eq = &Burgers{
		grid:       grid,
		RandomSeed: seed,
		Eta:        p.Eta,
		Forcing:    NewRandomForcing(burgersForcingParams, p.Period, seed, forcingAmplitude, forcingKMax),
	}
	return
}

func (eq *Burgers) Grid() Grid { return eq.grid }
func (eq *Burgers) GridOffset() polynomials.GridOffset { return polynomials.Centered }
func (eq *Burgers) DerivativeOrders() []int { return []int{1, 2} }
func (eq *Burgers) Conservative() bool { return false }
func (eq *Burgers) ExactMethod() ExactMethod { return ExactFiniteDifference }
func (eq *Burgers) TimeStep() float64 { return 3e-3 }
func (eq *Burgers) StandardDeviation() float64 { return 1.300 }

func (eq *Burgers) InitialValue() utils.Vector {
	return utils.NewVector(eq.grid.NumPoints)
}

func (eq *Burgers) EquationOfMotion(y utils.Vector, d map[int]utils.Vector) utils.Vector {
	var (
		yx  = d[1]
		yxx = d[2]
	)
	return yxx.Copy().Scale(eq.Eta).Subtract(y.Copy().ElMul(yx))
}

func (eq *Burgers) FinalizeTimeDerivative(t float64, yt utils.Vector) utils.Vector {
	return yt.Add(eq.Forcing.Eval(t, eq.grid.X))
}

// ConservativeBurgers evolves the flux form of Burgers on a staggered grid:
// flux = eta*y_x - 0.5*y^2, y_t = d/dx(flux)
type ConservativeBurgers struct {
	grid       Grid
	RandomSeed int
	Eta        float64
	Forcing    *RandomForcing
}

func NewConservativeBurgers(p Params, seed int) (eq *ConservativeBurgers, err error) {
	base, err := NewBurgers(p, seed)
	if err != nil {
		return
	}
	eq = &ConservativeBurgers{
		grid:       base.grid,
		RandomSeed: seed,
		Eta:        base.Eta,
		Forcing:    base.Forcing,
	}
	return
}

func (eq *ConservativeBurgers) Grid() Grid { return eq.grid }
func (eq *ConservativeBurgers) GridOffset() polynomials.GridOffset { return polynomials.Staggered }
func (eq *ConservativeBurgers) DerivativeOrders() []int { return []int{0, 1} }
func (eq *ConservativeBurgers) Conservative() bool { return true }
func (eq *ConservativeBurgers) ExactMethod() ExactMethod { return ExactFiniteDifference }
func (eq *ConservativeBurgers) TimeStep() float64 { return 3e-3 }
func (eq *ConservativeBurgers) StandardDeviation() float64 { return 1.300 }

func (eq *ConservativeBurgers) InitialValue() utils.Vector {
	return utils.NewVector(eq.grid.NumPoints)
}

func (eq *ConservativeBurgers) EquationOfMotion(_ utils.Vector, d map[int]utils.Vector) utils.Vector {
	var (
		y  = d[0] // state interpolated onto faces
		yx = d[1]
	)
	flux := yx.Copy().Scale(eq.Eta).Subtract(y.Copy().POW(2).Scale(0.5))
	return fixedFirstDerivative(flux, eq.grid.DX)
}

func (eq *ConservativeBurgers) FinalizeTimeDerivative(t float64, yt utils.Vector) utils.Vector {
	return yt.Add(eq.Forcing.Eval(t, eq.grid.X))
}
