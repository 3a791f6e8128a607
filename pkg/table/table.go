// Package table provides immutable N-dimensional performance tables indexed by
// ascending axis vectors, with multilinear interpolation and a lower-bracket
// lookup over them.
package table

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrAxis is returned when an axis is too short, non-finite or not
	// strictly monotonic.
	ErrAxis = errors.New("invalid axis")

	// ErrShape is returned when the number of values does not match the
	// Cartesian product of the axis lengths.
	ErrShape = errors.New("table shape does not match axes")

	// ErrDimension is returned when a condition point has the wrong number
	// of coordinates.
	ErrDimension = errors.New("wrong number of coordinates")

	// ErrOutOfRange is returned by Strict lookups outside an axis range.
	ErrOutOfRange = errors.New("condition outside table range")

	// ErrNotFinite is returned when a coordinate is NaN or infinite.
	ErrNotFinite = errors.New("coordinate is not finite")
)

// Bounds selects how a coordinate outside its axis range is handled.
type Bounds int

const (
	// Strict rejects coordinates outside the axis range with ErrOutOfRange.
	Strict Bounds = iota
	// Clamp pins coordinates to the nearest end of the axis.
	Clamp
)

func (b Bounds) String() string {
	switch b {
	case Strict:
		return "strict"
	case Clamp:
		return "clamp"
	default:
		return fmt.Sprintf("Bounds(%d)", int(b))
	}
}

// ParseBounds converts "strict" or "clamp" to a Bounds value.
func ParseBounds(s string) (Bounds, error) {
	switch s {
	case "", "strict":
		return Strict, nil
	case "clamp":
		return Clamp, nil
	}
	return Strict, fmt.Errorf("unknown bounds policy %q (want strict or clamp)", s)
}

// Axis is one dimension of a table: a name for error messages and the grid
// values along it.
type Axis struct {
	Name   string
	Values []float64
}

// NewAxis returns an axis holding a copy of values.
func NewAxis(name string, values ...float64) Axis {
	return Axis{Name: name, Values: append([]float64(nil), values...)}
}

// Span returns an axis from start to stop inclusive in equal steps.
func Span(name string, start, stop, step float64) Axis {
	n := int(math.Round((stop-start)/step)) + 1
	if n < 2 {
		return NewAxis(name, start)
	}
	return Axis{Name: name, Values: floats.Span(make([]float64, n), start, stop)}
}

// Len returns the number of grid values.
func (a Axis) Len() int { return len(a.Values) }

// Min returns the first (smallest) grid value.
func (a Axis) Min() float64 { return a.Values[0] }

// Max returns the last (largest) grid value.
func (a Axis) Max() float64 { return a.Values[len(a.Values)-1] }

func (a Axis) validate() error {
	if len(a.Values) < 2 {
		return fmt.Errorf("%w %q: need at least 2 values, have %d", ErrAxis, a.Name, len(a.Values))
	}
	if floats.HasNaN(a.Values) {
		return fmt.Errorf("%w %q: contains NaN", ErrAxis, a.Name)
	}
	for i := 1; i < len(a.Values); i++ {
		if math.IsInf(a.Values[i], 0) || a.Values[i] <= a.Values[i-1] {
			return fmt.Errorf("%w %q: values must be finite and strictly ascending", ErrAxis, a.Name)
		}
	}
	return nil
}

// locate resolves x against the axis, returning the coordinate actually used
// after applying the bounds policy.
func (a Axis) locate(x float64, b Bounds) (float64, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("%w: %s=%v", ErrNotFinite, a.Name, x)
	}
	if x >= a.Min() && x <= a.Max() {
		return x, nil
	}
	if b == Clamp {
		return math.Min(math.Max(x, a.Min()), a.Max()), nil
	}
	return 0, fmt.Errorf("%w: %s=%g not in [%g, %g]", ErrOutOfRange, a.Name, x, a.Min(), a.Max())
}

// bracket returns the lower grid index and the blend fraction toward the
// next grid value for an in-range x.
func (a Axis) bracket(x float64) (int, float64) {
	v := a.Values
	i := sort.SearchFloat64s(v, x)
	if i == 0 {
		return 0, 0
	}
	if i >= len(v) {
		return len(v) - 2, 1
	}
	lo := i - 1
	return lo, (x - v[lo]) / (v[i] - v[lo])
}

// floor returns the index of the largest grid value not above x, clamped to
// the axis.
func (a Axis) floor(x float64) int {
	i := sort.Search(len(a.Values), func(k int) bool { return a.Values[k] > x }) - 1
	if i < 0 {
		return 0
	}
	return i
}

// Table is an immutable N-dimensional grid of outcome values stored in
// row-major order, the last axis varying fastest.
type Table struct {
	axes    []Axis
	values  []float64
	strides []int
}

// New validates the axes and values and returns a table. Axes must already
// be strictly ascending; use NewNormalized for data published in another
// order.
func New(values []float64, axes ...Axis) (*Table, error) {
	if len(axes) == 0 {
		return nil, fmt.Errorf("%w: no axes", ErrShape)
	}

	t := &Table{
		axes:    make([]Axis, len(axes)),
		strides: make([]int, len(axes)),
	}

	size := 1
	for i := len(axes) - 1; i >= 0; i-- {
		if err := axes[i].validate(); err != nil {
			return nil, err
		}
		t.axes[i] = NewAxis(axes[i].Name, axes[i].Values...)
		t.strides[i] = size
		size *= axes[i].Len()
	}

	if len(values) != size {
		return nil, fmt.Errorf("%w: have %d values, axes need %d", ErrShape, len(values), size)
	}
	t.values = append([]float64(nil), values...)

	return t, nil
}

// NewNormalized sorts every axis ascending, reordering the matching slabs of
// values, then builds the table with New.
func NewNormalized(values []float64, axes ...Axis) (*Table, error) {
	size := 1
	for _, a := range axes {
		size *= a.Len()
	}
	if len(axes) == 0 || len(values) != size {
		return nil, fmt.Errorf("%w: have %d values, axes need %d", ErrShape, len(values), size)
	}

	sorted := make([]Axis, len(axes))
	perms := make([][]int, len(axes))
	for d, a := range axes {
		sorted[d], perms[d] = sortAxis(a)
	}

	strides := make([]int, len(axes))
	stride := 1
	for d := len(axes) - 1; d >= 0; d-- {
		strides[d] = stride
		stride *= axes[d].Len()
	}

	reordered := make([]float64, len(values))
	for flat := range reordered {
		src, rem := 0, flat
		for d := range axes {
			c := rem / strides[d]
			rem %= strides[d]
			src += perms[d][c] * strides[d]
		}
		reordered[flat] = values[src]
	}

	return New(reordered, sorted...)
}

// sortAxis returns the ascending copy of a and, for each new position, the
// position it came from.
func sortAxis(a Axis) (Axis, []int) {
	vals := append([]float64(nil), a.Values...)
	perm := make([]int, len(vals))
	for i := range perm {
		perm[i] = i
	}
	floats.Argsort(vals, perm)
	return Axis{Name: a.Name, Values: vals}, perm
}

// Dims returns the number of axes.
func (t *Table) Dims() int { return len(t.axes) }

// Axis returns a copy of axis d.
func (t *Table) Axis(d int) Axis {
	return NewAxis(t.axes[d].Name, t.axes[d].Values...)
}

// At returns the grid value at the given per-axis indices.
func (t *Table) At(idx ...int) float64 {
	off := 0
	for d, i := range idx {
		off += i * t.strides[d]
	}
	return t.values[off]
}

func (t *Table) checkDims(point []float64) error {
	if len(point) != len(t.axes) {
		return fmt.Errorf("%w: have %d, table has %d axes", ErrDimension, len(point), len(t.axes))
	}
	return nil
}

// Interpolate returns the multilinear blend of the 2^N grid values
// surrounding point. Exactly on a grid point it returns the stored value.
func (t *Table) Interpolate(b Bounds, point ...float64) (float64, error) {
	if err := t.checkDims(point); err != nil {
		return 0, err
	}

	n := len(t.axes)
	lo := make([]int, n)
	frac := make([]float64, n)
	for d, a := range t.axes {
		x, err := a.locate(point[d], b)
		if err != nil {
			return 0, err
		}
		lo[d], frac[d] = a.bracket(x)
	}

	var sum float64
	for corner := 0; corner < 1<<n; corner++ {
		w := 1.0
		off := 0
		for d := 0; d < n; d++ {
			i := lo[d]
			if corner&(1<<d) != 0 {
				w *= frac[d]
				i++
			} else {
				w *= 1 - frac[d]
			}
			off += i * t.strides[d]
		}
		if w == 0 {
			continue
		}
		sum += w * t.values[off]
	}
	return sum, nil
}

// LowerBracket returns the grid value at the largest grid point not above
// point on every axis, clamped to the table. It is a step function, not an
// interpolant.
func (t *Table) LowerBracket(point ...float64) (float64, error) {
	if err := t.checkDims(point); err != nil {
		return 0, err
	}

	off := 0
	for d, a := range t.axes {
		x := point[d]
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, fmt.Errorf("%w: %s=%v", ErrNotFinite, a.Name, x)
		}
		off += a.floor(x) * t.strides[d]
	}
	return t.values[off], nil
}
