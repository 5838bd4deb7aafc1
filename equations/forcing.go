package equations

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/shiji203/data-driven-discretization-1d/utils"
)

// RandomForcing is a deterministic-given-seed sum of nparams sinusoids in
// space and time, used both as a source term and as an initial condition.
// All parameters are drawn once from a single seeded stream at construction
// and are immutable afterwards.
type RandomForcing struct {
	A      []float64 // amplitude scaled coefficients
	Omega  []float64 // angular frequencies
	K      []int     // integer wavenumbers, nonzero
	Phi    []float64 // phases
	Period float64
}

func NewRandomForcing(nparams int, period float64, seed int, amplitude float64, kMax int) (f *RandomForcing) {
	var (
		src     = rand.NewPCG(uint64(int64(seed)), 0)
		rng     = rand.New(src)
		symUnit = distuv.Uniform{Min: -1, Max: 1, Src: src}
		omega   = distuv.Uniform{Min: -0.4, Max: 0.4, Src: src}
		phase   = distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src}
	)
	f = &RandomForcing{
		A:      make([]float64, nparams),
		Omega:  make([]float64, nparams),
		K:      make([]int, nparams),
		Phi:    make([]float64, nparams),
		Period: period,
	}
	for i := 0; i < nparams; i++ {
		f.A[i] = 0.5 * amplitude * symUnit.Rand()
	}
	for i := 0; i < nparams; i++ {
		f.Omega[i] = omega.Rand()
	}
	for i := 0; i < nparams; i++ {
		// draw from {-kMax..-1, 1..kMax}
		k := rng.IntN(2*kMax) - kMax
		if k >= 0 {
			k++
		}
		f.K[i] = k
	}
	for i := 0; i < nparams; i++ {
		f.Phi[i] = phase.Rand()
	}
	return
}

// Eval returns the forcing at time t for every position in x. Valid for
// arbitrary t, including negative and fractional times.
func (f *RandomForcing) Eval(t float64, x utils.Vector) (out utils.Vector) {
	var (
		n    = x.Len()
		xd   = x.RawVector().Data
		data = make([]float64, n)
	)
	for k := range f.A {
		var (
			kx = 2 * math.Pi * float64(f.K[k]) / f.Period
			wt = f.Omega[k]*t + f.Phi[k]
		)
		for i, xi := range xd {
			data[i] += f.A[k] * math.Sin(wt+kx*xi)
		}
	}
	return utils.NewVector(n, data)
}
