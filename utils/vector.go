package utils

import (
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Vector wraps a gonum VecDense with chainable elementwise operations used by
// the equation right hand sides. Mutating methods change the receiver's
// backing data and return it for chaining; use Copy() first when the input
// must be preserved.
type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) (v Vector) {
	var (
		data []float64
	)
	if len(dataO) != 0 {
		data = dataO[0]
		if len(data) != n {
			panic("mismatch in length of data vector and dimension n")
		}
	} else {
		data = make([]float64, n)
	}
	v = Vector{mat.NewVecDense(n, data)}
	return
}

// NewVecConst returns an n-vector with every element set to val.
func NewVecConst(n int, val float64) (v Vector) {
	var (
		data = make([]float64, n)
	)
	for i := range data {
		data[i] = val
	}
	return NewVector(n, data)
}

// NewVecRange returns the vector [min, min+1, ..., max].
func NewVecRange(min, max int) (v Vector) {
	var (
		n    = max - min + 1
		data = make([]float64, n)
	)
	for i := 0; i < n; i++ {
		data[i] = float64(min + i)
	}
	return NewVector(n, data)
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (v Vector) Dims() (r, c int)         { return v.V.Dims() }
func (v Vector) At(i, j int) float64      { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix            { return v.V.T() }
func (v Vector) AtVec(i int) float64      { return v.V.AtVec(i) }
func (v Vector) RawVector() blas64.Vector { return v.V.RawVector() }
func (v Vector) Len() int                 { return v.V.Len() }

func (v Vector) Copy() Vector {
	return Vector{mat.VecDenseCopyOf(v.V)}
}

// Chainable (extended) methods
func (v Vector) Set(val float64) Vector {
	var (
		data = v.V.RawVector().Data
	)
	for i := range data {
		data[i] = val
	}
	return v
}

func (v Vector) Scale(a float64) Vector {
	v.V.ScaleVec(a, v.V)
	return v
}

func (v Vector) AddScalar(a float64) Vector {
	var (
		data = v.V.RawVector().Data
	)
	for i := range data {
		data[i] += a
	}
	return v
}

func (v Vector) Add(a Vector) Vector {
	v.V.AddVec(v.V, a.V)
	return v
}

func (v Vector) Subtract(a Vector) Vector {
	v.V.SubVec(v.V, a.V)
	return v
}

func (v Vector) ElMul(a Vector) Vector {
	v.V.MulElemVec(v.V, a.V)
	return v
}

func (v Vector) Apply(f func(float64) float64) Vector {
	var (
		data = v.V.RawVector().Data
	)
	for i, val := range data {
		data[i] = f(val)
	}
	return v
}

func (v Vector) POW(p int) Vector {
	var (
		data = v.V.RawVector().Data
	)
	for i, val := range data {
		data[i] = POW(val, p)
	}
	return v
}

func (v Vector) Min() (min float64) {
	var (
		data = v.V.RawVector().Data
	)
	min = data[0]
	for _, val := range data {
		if val < min {
			min = val
		}
	}
	return
}

func (v Vector) Max() (max float64) {
	var (
		data = v.V.RawVector().Data
	)
	max = data[0]
	for _, val := range data {
		if val > max {
			max = val
		}
	}
	return
}

// ShiftLeft returns a new vector rotated one position toward lower index with
// periodic wraparound: out[i] = v[i+1], out[n-1] = v[0]. Built by
// concatenation rather than a circular-rotate primitive so the same scheme
// ports to array backends without a rotate op.
func (v Vector) ShiftLeft() (vo Vector) {
	var (
		data = v.V.RawVector().Data
		n    = len(data)
		out  = make([]float64, n)
	)
	copy(out, data[1:])
	out[n-1] = data[0]
	return NewVector(n, out)
}

// ShiftRight is the inverse rotation: out[i] = v[i-1], out[0] = v[n-1].
func (v Vector) ShiftRight() (vo Vector) {
	var (
		data = v.V.RawVector().Data
		n    = len(data)
		out  = make([]float64, n)
	)
	copy(out[1:], data)
	out[0] = data[n-1]
	return NewVector(n, out)
}

// DataCopy returns a copy of the backing slice.
func (v Vector) DataCopy() (out []float64) {
	out = make([]float64, v.Len())
	copy(out, v.V.RawVector().Data)
	return
}

// Float32 casts the vector data to single precision.
func (v Vector) Float32() (out []float32) {
	var (
		data = v.V.RawVector().Data
	)
	out = make([]float32, len(data))
	for i, val := range data {
		out[i] = float32(val)
	}
	return
}
