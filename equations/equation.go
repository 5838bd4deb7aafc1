package equations

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/shiji203/data-driven-discretization-1d/polynomials"
	"github.com/shiji203/data-driven-discretization-1d/utils"
)

// Equation is the contract the time integrator consumes. A variant defines
// its spatial grid, which derivative orders it needs, an initial state, and
// the time derivative computed from a state and its precomputed spatial
// derivatives.
//
// EquationOfMotion is the training-visible physics. FinalizeTimeDerivative is
// applied once per completed step during integration only and is never shown
// to a learned model; callers wanting the full derivative must compose the
// two themselves.
type Equation interface {
	InitialValue() utils.Vector
	// TimeStep is the empirically tuned step size for explicit midpoint
	// integration. Treat as an authoritative constant.
	TimeStep() float64
	// StandardDeviation is the empirical amplitude of long-run solutions,
	// used downstream for normalization.
	StandardDeviation() float64
	EquationOfMotion(y utils.Vector, spatialDerivatives map[int]utils.Vector) utils.Vector
	FinalizeTimeDerivative(t float64, yt utils.Vector) utils.Vector

	GridOffset() polynomials.GridOffset
	// DerivativeOrders is exactly the set of keys EquationOfMotion reads
	// from its spatial derivative input.
	DerivativeOrders() []int
	Conservative() bool
	ExactMethod() ExactMethod
	Grid() Grid
}

// ExactMethod declares how reference solutions for a variant are produced.
type ExactMethod uint8

const (
	ExactFiniteDifference ExactMethod = iota
	// ExactSpectral is reserved for a future analytic/spectral reference
	// mode; it gates the pipeline's periodic exact-filter interval.
	ExactSpectral
)

// Grid is the uniform periodic spatial domain an equation is discretized on.
type Grid struct {
	NumPoints int
	Period    float64
	DX        float64
	X         utils.Vector
}

func NewGrid(numPoints int, period float64) (g Grid, err error) {
	if numPoints <= 0 {
		err = fmt.Errorf("num_points must be positive, got %d", numPoints)
		return
	}
	if period <= 0 {
		err = fmt.Errorf("period must be positive, got %g", period)
		return
	}
	dx := period / float64(numPoints)
	g = Grid{
		NumPoints: numPoints,
		Period:    period,
		DX:        dx,
		X:         utils.NewVecRange(0, numPoints-1).Scale(dx),
	}
	return
}

// Params is the structured constructor parameter record, decoded from a
// YAML or JSON map. Zero-valued fields take variant-specific defaults.
type Params struct {
	NumPoints int     `json:"num_points"`
	Period    float64 `json:"period,omitempty"`
	Eta       float64 `json:"eta,omitempty"`
}

// ParseParams decodes a YAML or JSON parameter map, rejecting unknown keys
// and wrong types before any equation state is built.
func ParseParams(data []byte) (p Params, err error) {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		err = fmt.Errorf("malformed equation params: %v", err)
		return
	}
	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.DisallowUnknownFields()
	if err = dec.Decode(&p); err != nil {
		err = fmt.Errorf("malformed equation params: %v", err)
	}
	return
}

// Constructor builds one equation variant from params and a random seed.
type Constructor func(p Params, seed int) (Equation, error)

// Registry is an immutable name to constructor table, built once at process
// start and passed explicitly to New.
type Registry map[string]Constructor

var Types = Registry{
	"burgers": func(p Params, seed int) (Equation, error) { return NewBurgers(p, seed) },
	"kdv":     func(p Params, seed int) (Equation, error) { return NewKdV(p, seed) },
	"ks":      func(p Params, seed int) (Equation, error) { return NewKS(p, seed) },
}

var ConservativeTypes = Registry{
	"burgers": func(p Params, seed int) (Equation, error) { return NewConservativeBurgers(p, seed) },
	"kdv":     func(p Params, seed int) (Equation, error) { return NewConservativeKdV(p, seed) },
	"ks":      func(p Params, seed int) (Equation, error) { return NewConservativeKS(p, seed) },
}

// New resolves a short equation name in the given registry and constructs it.
func New(reg Registry, name string, p Params, seed int) (eq Equation, err error) {
	ctor, ok := reg[name]
	if !ok {
		err = fmt.Errorf("unknown equation %q", name)
		return
	}
	return ctor(p, seed)
}

// FromConfig resolves (name, conservative flag) the way a hyperparameter
// record selects its equation type.
func FromConfig(name string, conservative bool, p Params, seed int) (Equation, error) {
	if conservative {
		return New(ConservativeTypes, name, p, seed)
	}
	return New(Types, name, p, seed)
}

// fixedFirstDerivative is the flux divergence operator shared by every
// conservative variant: (shiftLeft(flux) - flux) / dx with periodic
// wraparound, built by concatenation rather than a rotate primitive.
func fixedFirstDerivative(flux utils.Vector, dx float64) utils.Vector {
	return flux.ShiftLeft().Subtract(flux).Scale(1 / dx)
}
