// Package takeoff computes takeoff ground roll and distance over a 50 ft
// obstacle from the handbook charts, corrected for wind, surface and the
// pilot's chosen margins.
package takeoff

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pohcalc/pohcalc/pkg/c172s"
	"github.com/pohcalc/pohcalc/pkg/table"
)

// Conditions describes one takeoff.
type Conditions struct {
	PressureAltitude float64 // ft
	Weight           float64 // lbs
	Temperature      float64 // °C
	Wind             *Wind   // nil for calm

	Grass           bool
	SafetyMarginPct float64
	NormalTakeoff   bool
	SlopePct        float64
}

// Result bundles everything Compute works out for one takeoff.
type Result struct {
	GroundRoll   float64   `json:"ground_roll_ft"`
	Distance50ft float64   `json:"distance_50ft_ft"`
	LiftoffSpeed float64   `json:"liftoff_speed_kias"`
	SpeedAt50ft  float64   `json:"speed_at_50ft_kias"`
	Modifiers    Modifiers `json:"modifiers"`
}

func (r Result) String() string {
	return fmt.Sprintf("Ground roll:        %6.0f ft\n"+
		"Over 50 ft:         %6.0f ft\n"+
		"Liftoff speed:      %6.0f KIAS\n"+
		"Speed at 50 ft:     %6.0f KIAS\n"+
		"Combined modifier:  %6.3f\n",
		r.GroundRoll, r.Distance50ft, r.LiftoffSpeed, r.SpeedAt50ft, r.Modifiers.Product())
}

// Calculator interpolates the takeoff charts. It is safe for concurrent use.
type Calculator struct {
	tables c172s.Takeoff
	bounds table.Bounds
	logger *zap.SugaredLogger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithBounds sets the out-of-range policy for the distance tables. The
// default is table.Strict.
func WithBounds(b table.Bounds) Option {
	return func(c *Calculator) { c.bounds = b }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Calculator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCalculator returns a calculator over the given takeoff tables.
func NewCalculator(tables c172s.Takeoff, opts ...Option) (*Calculator, error) {
	if tables.GroundRoll == nil || tables.Distance50ft == nil || tables.LiftoffSpeed == nil || tables.SpeedAt50ft == nil {
		return nil, fmt.Errorf("%w: takeoff tables incomplete", table.ErrShape)
	}
	for name, t := range map[string]*table.Table{"ground roll": tables.GroundRoll, "50 ft distance": tables.Distance50ft} {
		if t.Dims() != 3 {
			return nil, fmt.Errorf("%w: %s table has %d axes, want 3", table.ErrDimension, name, t.Dims())
		}
	}

	c := &Calculator{
		tables: tables,
		bounds: table.Strict,
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Default returns a calculator over the built-in 172S charts.
func Default(opts ...Option) *Calculator {
	c, err := NewCalculator(c172s.TakeoffTables(), opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// GroundRoll returns the corrected ground roll in feet.
func (c *Calculator) GroundRoll(cond Conditions) (float64, error) {
	d, _, err := c.distance(c.tables.GroundRoll, "ground roll", cond)
	return d, err
}

// Distance50ft returns the corrected total distance to clear a 50 ft
// obstacle in feet.
func (c *Calculator) Distance50ft(cond Conditions) (float64, error) {
	d, _, err := c.distance(c.tables.Distance50ft, "50 ft distance", cond)
	return d, err
}

// LiftoffSpeed returns the liftoff speed (KIAS) for a weight. Weights
// outside the chart hold the nearest end value.
func (c *Calculator) LiftoffSpeed(weight float64) float64 {
	return c.tables.LiftoffSpeed.At(weight)
}

// SpeedAt50ft returns the speed (KIAS) at 50 ft for a weight. Weights
// outside the chart hold the nearest end value.
func (c *Calculator) SpeedAt50ft(weight float64) float64 {
	return c.tables.SpeedAt50ft.At(weight)
}

// Compute returns both distances, both speeds and the applied modifiers.
func (c *Calculator) Compute(cond Conditions) (Result, error) {
	roll, mods, err := c.distance(c.tables.GroundRoll, "ground roll", cond)
	if err != nil {
		return Result{}, err
	}
	dist, _, err := c.distance(c.tables.Distance50ft, "50 ft distance", cond)
	if err != nil {
		return Result{}, err
	}

	return Result{
		GroundRoll:   roll,
		Distance50ft: dist,
		LiftoffSpeed: c.LiftoffSpeed(cond.Weight),
		SpeedAt50ft:  c.SpeedAt50ft(cond.Weight),
		Modifiers:    mods,
	}, nil
}

func (c *Calculator) distance(t *table.Table, what string, cond Conditions) (float64, Modifiers, error) {
	base, err := t.Interpolate(c.bounds, cond.Weight, cond.Temperature, cond.PressureAltitude)
	if err != nil {
		return 0, Modifiers{}, fmt.Errorf("%s: %w", what, err)
	}

	mods := modifiersFor(cond)
	d := base * mods.Product()
	c.logger.Debugw("takeoff distance",
		"table", what,
		"weight", cond.Weight,
		"temperature", cond.Temperature,
		"pressure_altitude", cond.PressureAltitude,
		"chart", base,
		"modifier", mods.Product(),
		"result", d,
	)
	return d, mods, nil
}
