package table

import (
	"errors"
	"math"
	"testing"
)

func planeTable(t *testing.T) *Table {
	t.Helper()
	// f(x, y) = 2x + 3y
	tb, err := New([]float64{0, 3, 6, 20, 23, 26},
		NewAxis("x", 0, 10),
		NewAxis("y", 0, 1, 2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tb
}

func TestInterpolate(t *testing.T) {
	tb := planeTable(t)

	tests := []struct {
		name     string
		point    []float64
		expected float64
	}{
		{"origin grid point", []float64{0, 0}, 0},
		{"far corner", []float64{10, 2}, 26},
		{"interior grid point", []float64{10, 1}, 23},
		{"midpoint", []float64{5, 0.5}, 11.5},
		{"edge", []float64{2.5, 2}, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tb.Interpolate(Strict, tt.point...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Interpolate(%v) = %v, expected %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestInterpolateLinearIn3D(t *testing.T) {
	xs := []float64{0, 1, 4}
	ys := []float64{-5, 5}
	zs := []float64{100, 200, 300, 400}
	f := func(x, y, z float64) float64 { return x + 10*y + 0.5*z }

	var values []float64
	for _, x := range xs {
		for _, y := range ys {
			for _, z := range zs {
				values = append(values, f(x, y, z))
			}
		}
	}

	tb, err := New(values, NewAxis("x", xs...), NewAxis("y", ys...), NewAxis("z", zs...))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	points := [][3]float64{{0.5, 0, 150}, {3.9, -4.5, 399}, {1, 5, 250}, {2, 1.25, 333.3}}
	for _, p := range points {
		got, err := tb.Interpolate(Strict, p[0], p[1], p[2])
		if err != nil {
			t.Fatalf("Interpolate(%v): %v", p, err)
		}
		if expected := f(p[0], p[1], p[2]); math.Abs(got-expected) > 1e-9 {
			t.Errorf("Interpolate(%v) = %v, expected %v", p, got, expected)
		}
	}
}

func TestInterpolateBounds(t *testing.T) {
	tb := planeTable(t)

	_, err := tb.Interpolate(Strict, 11, 1)
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("strict lookup above range: expected ErrOutOfRange, got %v", err)
	}

	_, err = tb.Interpolate(Strict, 5, -0.1)
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("strict lookup below range: expected ErrOutOfRange, got %v", err)
	}

	got, err := tb.Interpolate(Clamp, 11, -3)
	if err != nil {
		t.Fatalf("clamped lookup: %v", err)
	}
	if got != 20 {
		t.Errorf("clamped lookup = %v, expected 20", got)
	}

	_, err = tb.Interpolate(Clamp, math.NaN(), 1)
	if !errors.Is(err, ErrNotFinite) {
		t.Errorf("NaN coordinate: expected ErrNotFinite, got %v", err)
	}

	_, err = tb.Interpolate(Clamp, 1)
	if !errors.Is(err, ErrDimension) {
		t.Errorf("short point: expected ErrDimension, got %v", err)
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		axes   []Axis
		want   error
	}{
		{"no axes", []float64{1}, nil, ErrShape},
		{"too few values", []float64{1, 2, 3}, []Axis{NewAxis("x", 0, 1), NewAxis("y", 0, 1)}, ErrShape},
		{"single point axis", []float64{1}, []Axis{NewAxis("x", 0)}, ErrAxis},
		{"descending axis", []float64{1, 2}, []Axis{NewAxis("x", 1, 0)}, ErrAxis},
		{"repeated value", []float64{1, 2, 3}, []Axis{NewAxis("x", 0, 1, 1)}, ErrAxis},
		{"NaN in axis", []float64{1, 2}, []Axis{NewAxis("x", 0, math.NaN())}, ErrAxis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.values, tt.axes...)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, expected %v", err, tt.want)
			}
		})
	}
}

func TestNewNormalized(t *testing.T) {
	// Same plane as planeTable with the x axis published descending and
	// the y axis shuffled.
	tb, err := NewNormalized([]float64{
		23, 20, 26,
		3, 0, 6,
	}, NewAxis("x", 10, 0), NewAxis("y", 1, 0, 2))
	if err != nil {
		t.Fatalf("NewNormalized: %v", err)
	}

	want := planeTable(t)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			if got, expected := tb.At(i, j), want.At(i, j); got != expected {
				t.Errorf("At(%d, %d) = %v, expected %v", i, j, got, expected)
			}
		}
	}

	x := tb.Axis(0)
	if x.Min() != 0 || x.Max() != 10 {
		t.Errorf("x axis = %v, expected ascending [0 10]", x.Values)
	}
}

func TestLowerBracket(t *testing.T) {
	tb := planeTable(t)

	tests := []struct {
		name     string
		point    []float64
		expected float64
	}{
		{"exact grid point", []float64{10, 1}, 23},
		{"between grid points", []float64{9.9, 1.9}, 3},
		{"below range", []float64{-4, -4}, 0},
		{"above range", []float64{40, 40}, 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tb.LowerBracket(tt.point...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("LowerBracket(%v) = %v, expected %v", tt.point, got, tt.expected)
			}
		})
	}

	if _, err := tb.LowerBracket(math.Inf(1), 0); !errors.Is(err, ErrNotFinite) {
		t.Errorf("infinite coordinate: expected ErrNotFinite, got %v", err)
	}
}

func TestSpan(t *testing.T) {
	a := Span("pa", 0, 8000, 1000)
	if a.Len() != 9 {
		t.Fatalf("Len = %d, expected 9", a.Len())
	}
	for i, v := range a.Values {
		if v != float64(i)*1000 {
			t.Errorf("Values[%d] = %v, expected %v", i, v, float64(i)*1000)
		}
	}
}

func TestParseBounds(t *testing.T) {
	for in, expected := range map[string]Bounds{"": Strict, "strict": Strict, "clamp": Clamp} {
		got, err := ParseBounds(in)
		if err != nil || got != expected {
			t.Errorf("ParseBounds(%q) = %v, %v; expected %v", in, got, err, expected)
		}
	}
	if _, err := ParseBounds("extrapolate"); err == nil {
		t.Error("ParseBounds(extrapolate) expected error")
	}
}
