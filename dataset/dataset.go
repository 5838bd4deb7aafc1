// Package dataset holds labeled multi-dimensional arrays: named dimensions,
// a coordinate vector per dimension, and row-major single precision values.
// It provides the concatenate-then-sort combination the baseline pipeline
// relies on, plus self-describing persistence.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ghodss/yaml"
)

type Array struct {
	Dims   []string             `json:"dims"`
	Shape  []int                `json:"shape"`
	Coords map[string][]float64 `json:"coords"`
	Values []float32            `json:"values"`
}

// New validates that every dimension has a coordinate vector of matching
// length and that the value count equals the shape product.
func New(dims []string, coords map[string][]float64, values []float32) (a *Array, err error) {
	var (
		shape = make([]int, len(dims))
		size  = 1
	)
	for i, d := range dims {
		c, ok := coords[d]
		if !ok {
			err = fmt.Errorf("dimension %q has no coordinate values", d)
			return
		}
		shape[i] = len(c)
		size *= len(c)
	}
	if size != len(values) {
		err = fmt.Errorf("shape %v requires %d values, got %d", shape, size, len(values))
		return
	}
	if len(coords) != len(dims) {
		err = fmt.Errorf("coords carry %d entries for %d dimensions", len(coords), len(dims))
		return
	}
	a = &Array{Dims: dims, Shape: shape, Coords: coords, Values: values}
	return
}

func (a *Array) axis(dim string) (d int, err error) {
	for i, name := range a.Dims {
		if name == dim {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no dimension %q in %v", dim, a.Dims)
}

// Size returns the length of the named dimension.
func (a *Array) Size(dim string) int {
	d, err := a.axis(dim)
	if err != nil {
		panic(err)
	}
	return a.Shape[d]
}

// At returns the value at the given index per dimension, row major.
func (a *Array) At(idx ...int) float32 {
	if len(idx) != len(a.Dims) {
		panic(fmt.Sprintf("need %d indices, got %d", len(a.Dims), len(idx)))
	}
	var off int
	for d, i := range idx {
		if i < 0 || i >= a.Shape[d] {
			panic(fmt.Sprintf("index %d out of range for dimension %q", i, a.Dims[d]))
		}
		off = off*a.Shape[d] + i
	}
	return a.Values[off]
}

// ExpandDims returns a copy with a new length-1 leading dimension carrying
// the given scalar coordinate. This is how a partial result is tagged with
// its sample and accuracy_order before combination.
func (a *Array) ExpandDims(dim string, coord float64) (out *Array, err error) {
	if _, ok := a.Coords[dim]; ok {
		err = fmt.Errorf("dimension %q already present", dim)
		return
	}
	var (
		dims   = append([]string{dim}, a.Dims...)
		coords = map[string][]float64{dim: {coord}}
		values = make([]float32, len(a.Values))
	)
	for name, c := range a.Coords {
		coords[name] = c
	}
	copy(values, a.Values)
	return New(dims, coords, values)
}

// Concat concatenates along the named dimension. Every input must share the
// same dimension order and identical coordinates on all other dimensions.
// The inputs may arrive in any order; callers wanting a deterministic layout
// sort afterwards.
func Concat(dim string, arrays ...*Array) (out *Array, err error) {
	if len(arrays) == 0 {
		err = fmt.Errorf("nothing to concatenate")
		return
	}
	first := arrays[0]
	d, err := first.axis(dim)
	if err != nil {
		return
	}
	var (
		outer = 1
		inner = 1 // values per unit of the concat dim within one outer block
	)
	for i := 0; i < d; i++ {
		outer *= first.Shape[i]
	}
	for i := d + 1; i < len(first.Shape); i++ {
		inner *= first.Shape[i]
	}
	var (
		total     int
		coordVals []float64
	)
	for _, a := range arrays {
		if err = compatible(first, a, dim); err != nil {
			return
		}
		total += a.Shape[d]
		coordVals = append(coordVals, a.Coords[dim]...)
	}
	values := make([]float32, outer*total*inner)
	var off int
	for o := 0; o < outer; o++ {
		for _, a := range arrays {
			blockLen := a.Shape[d] * inner
			copy(values[off:off+blockLen], a.Values[o*blockLen:(o+1)*blockLen])
			off += blockLen
		}
	}
	coords := map[string][]float64{dim: coordVals}
	for name, c := range first.Coords {
		if name != dim {
			coords[name] = c
		}
	}
	dims := append([]string(nil), first.Dims...)
	return New(dims, coords, values)
}

func compatible(ref, a *Array, dim string) (err error) {
	if len(ref.Dims) != len(a.Dims) {
		return fmt.Errorf("rank mismatch: %v vs %v", ref.Dims, a.Dims)
	}
	for i, name := range ref.Dims {
		if a.Dims[i] != name {
			return fmt.Errorf("dimension order mismatch: %v vs %v", ref.Dims, a.Dims)
		}
		if name == dim {
			continue
		}
		rc, ac := ref.Coords[name], a.Coords[name]
		if len(rc) != len(ac) {
			return fmt.Errorf("coordinate length mismatch on %q", name)
		}
		for j := range rc {
			if rc[j] != ac[j] {
				return fmt.Errorf("coordinate values differ on %q", name)
			}
		}
	}
	return
}

// SortBy returns a copy ordered by the named dimension's coordinate values.
// The sort is stable so equal coordinates keep their arrival order.
func (a *Array) SortBy(dim string) (out *Array, err error) {
	d, err := a.axis(dim)
	if err != nil {
		return
	}
	var (
		size  = a.Shape[d]
		perm  = make([]int, size)
		outer = 1
		inner = 1
	)
	for i := 0; i < d; i++ {
		outer *= a.Shape[i]
	}
	for i := d + 1; i < len(a.Shape); i++ {
		inner *= a.Shape[i]
	}
	for i := range perm {
		perm[i] = i
	}
	coord := a.Coords[dim]
	sort.SliceStable(perm, func(i, j int) bool { return coord[perm[i]] < coord[perm[j]] })

	var (
		values    = make([]float32, len(a.Values))
		coordVals = make([]float64, size)
		blockLen  = inner
	)
	for i, p := range perm {
		coordVals[i] = coord[p]
	}
	for o := 0; o < outer; o++ {
		base := o * size * blockLen
		for i, p := range perm {
			copy(values[base+i*blockLen:base+(i+1)*blockLen],
				a.Values[base+p*blockLen:base+(p+1)*blockLen])
		}
	}
	coords := map[string][]float64{dim: coordVals}
	for name, c := range a.Coords {
		if name != dim {
			coords[name] = c
		}
	}
	dims := append([]string(nil), a.Dims...)
	return New(dims, coords, values)
}

// WriteFile persists the array in a self-describing format chosen by the
// path extension: YAML for .yaml/.yml, JSON otherwise.
func (a *Array) WriteFile(path string) (err error) {
	var data []byte
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(a)
	default:
		data, err = json.Marshal(a)
	}
	if err != nil {
		return
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile restores an array written by WriteFile.
func ReadFile(path string) (a *Array, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var raw Array
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return
	}
	return New(raw.Dims, raw.Coords, raw.Values)
}
