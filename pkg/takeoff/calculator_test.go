package takeoff

import (
	"errors"
	"math"
	"testing"

	"github.com/pohcalc/pohcalc/pkg/c172s"
	"github.com/pohcalc/pohcalc/pkg/table"
)

const epsilon = 1e-9

func TestGroundRoll(t *testing.T) {
	calc := Default()

	tests := []struct {
		name     string
		cond     Conditions
		expected float64
	}{
		{
			name:     "grid point, paved, calm",
			cond:     Conditions{PressureAltitude: 0, Weight: 2550, Temperature: 0},
			expected: 860,
		},
		{
			name:     "grid point on grass",
			cond:     Conditions{PressureAltitude: 0, Weight: 2550, Temperature: 0, Grass: true},
			expected: 989,
		},
		{
			name:     "between altitudes",
			cond:     Conditions{PressureAltitude: 500, Weight: 2550, Temperature: 0},
			expected: 900,
		},
		{
			name:     "between weights",
			cond:     Conditions{PressureAltitude: 0, Weight: 2475, Temperature: 0},
			expected: 802.5,
		},
		{
			name:     "lightest, hottest, highest",
			cond:     Conditions{PressureAltitude: 8000, Weight: 2200, Temperature: 40},
			expected: 1695,
		},
		{
			name: "9 kt headwind",
			cond: Conditions{
				Weight: 2550,
				Wind:   &Wind{RunwayHeading: 360, Direction: 360, Speed: 9},
			},
			expected: 774,
		},
		{
			name: "2 kt tailwind",
			cond: Conditions{
				Weight: 2550,
				Wind:   &Wind{RunwayHeading: 360, Direction: 180, Speed: 2},
			},
			expected: 946,
		},
		{
			name: "headwind beyond the chart correction",
			cond: Conditions{
				Weight: 2550,
				Wind:   &Wind{RunwayHeading: 360, Direction: 360, Speed: 120},
			},
			expected: 0,
		},
		{
			name:     "safety margin and normal takeoff",
			cond:     Conditions{Weight: 2550, SafetyMarginPct: 50, NormalTakeoff: true},
			expected: 860 * 1.5 * 1.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.GroundRoll(tt.cond)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > epsilon {
				t.Errorf("GroundRoll = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestDistance50ft(t *testing.T) {
	calc := Default()

	got, err := calc.Distance50ft(Conditions{PressureAltitude: 8000, Weight: 2550, Temperature: 40})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-4615) > epsilon {
		t.Errorf("Distance50ft = %v, expected 4615", got)
	}

	got, err = calc.Distance50ft(Conditions{Weight: 2200, Grass: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-1055*GrassFactor) > epsilon {
		t.Errorf("Distance50ft on grass = %v, expected %v", got, 1055*GrassFactor)
	}
}

func TestOutOfRange(t *testing.T) {
	cond := Conditions{PressureAltitude: 0, Weight: 2600, Temperature: 0}

	_, err := Default().GroundRoll(cond)
	if !errors.Is(err, table.ErrOutOfRange) {
		t.Fatalf("strict lookup: expected ErrOutOfRange, got %v", err)
	}

	got, err := Default(WithBounds(table.Clamp)).GroundRoll(cond)
	if err != nil {
		t.Fatalf("clamped lookup: unexpected error: %v", err)
	}
	if math.Abs(got-860) > epsilon {
		t.Errorf("clamped GroundRoll = %v, expected 860", got)
	}

	_, err = Default().Distance50ft(Conditions{PressureAltitude: math.NaN(), Weight: 2400})
	if !errors.Is(err, table.ErrNotFinite) {
		t.Errorf("NaN altitude: expected ErrNotFinite, got %v", err)
	}
}

func TestSpeeds(t *testing.T) {
	calc := Default()

	tests := []struct {
		weight        float64
		liftoff, at50 float64
	}{
		{2550, 51, 56},
		{2400, 48, 54},
		{2200, 44, 50},
		{2300, 46, 52},
		{2000, 44, 50},
		{2700, 51, 56},
	}

	for _, tt := range tests {
		if got := calc.LiftoffSpeed(tt.weight); math.Abs(got-tt.liftoff) > epsilon {
			t.Errorf("LiftoffSpeed(%v) = %v, expected %v", tt.weight, got, tt.liftoff)
		}
		if got := calc.SpeedAt50ft(tt.weight); math.Abs(got-tt.at50) > epsilon {
			t.Errorf("SpeedAt50ft(%v) = %v, expected %v", tt.weight, got, tt.at50)
		}
	}
}

func TestCompute(t *testing.T) {
	res, err := Default().Compute(Conditions{PressureAltitude: 4000, Weight: 2400, Temperature: 20, Grass: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(res.GroundRoll-1240*GrassFactor) > epsilon {
		t.Errorf("GroundRoll = %v, expected %v", res.GroundRoll, 1240*GrassFactor)
	}
	if math.Abs(res.Distance50ft-2130*GrassFactor) > epsilon {
		t.Errorf("Distance50ft = %v, expected %v", res.Distance50ft, 2130*GrassFactor)
	}
	if res.LiftoffSpeed != 48 || res.SpeedAt50ft != 54 {
		t.Errorf("speeds = %v/%v, expected 48/54", res.LiftoffSpeed, res.SpeedAt50ft)
	}
	if res.Modifiers.Surface != GrassFactor || res.Modifiers.Wind != 1 || res.Modifiers.Slope != 1 {
		t.Errorf("unexpected modifiers %+v", res.Modifiers)
	}
}

func TestModifiersProductOrderIndependent(t *testing.T) {
	m := Modifiers{Wind: 0.9, Surface: 1.15, SafetyMargin: 1.2, NormalTakeoff: 1.1, Slope: 1}
	reversed := m.Slope * m.NormalTakeoff * m.SafetyMargin * m.Surface * m.Wind
	if math.Abs(m.Product()-reversed) > epsilon {
		t.Errorf("Product = %v, reversed product = %v", m.Product(), reversed)
	}

	if got := modifiersFor(Conditions{}).Product(); got != 1 {
		t.Errorf("default modifiers product = %v, expected 1", got)
	}
}

func TestNewCalculatorRejectsIncompleteTables(t *testing.T) {
	tables := c172s.TakeoffTables()
	tables.SpeedAt50ft = nil

	if _, err := NewCalculator(tables); !errors.Is(err, table.ErrShape) {
		t.Errorf("expected ErrShape, got %v", err)
	}
}
