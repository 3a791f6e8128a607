package table

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// Curve is a one-dimensional piecewise linear table. Inputs outside the
// axis range return the value at the nearest end.
type Curve struct {
	axis Axis
	ys   []float64
	pl   interp.PiecewiseLinear
}

// NewCurve builds a curve from (x, y) pairs given in any order. The pairs
// are sorted by x before fitting.
func NewCurve(name string, xs, ys []float64) (*Curve, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: curve %q has %d x values and %d y values", ErrShape, name, len(xs), len(ys))
	}

	axis, perm := sortAxis(NewAxis(name, xs...))
	if err := axis.validate(); err != nil {
		return nil, err
	}

	sortedYs := make([]float64, len(ys))
	for i, p := range perm {
		sortedYs[i] = ys[p]
	}

	c := &Curve{axis: axis, ys: sortedYs}
	if err := c.pl.Fit(c.axis.Values, c.ys); err != nil {
		return nil, fmt.Errorf("fitting curve %q: %w", name, err)
	}
	return c, nil
}

// Axis returns a copy of the sorted x axis.
func (c *Curve) Axis() Axis {
	return NewAxis(c.axis.Name, c.axis.Values...)
}

// At returns the interpolated value at x, holding the end values outside
// the axis range. NaN propagates.
func (c *Curve) At(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}
	x = math.Min(math.Max(x, c.axis.Min()), c.axis.Max())
	return c.pl.Predict(x)
}

// Interpolate is At with an explicit bounds policy.
func (c *Curve) Interpolate(b Bounds, x float64) (float64, error) {
	x, err := c.axis.locate(x, b)
	if err != nil {
		return 0, err
	}
	return c.pl.Predict(x), nil
}
