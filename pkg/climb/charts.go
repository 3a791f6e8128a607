package climb

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pohcalc/pohcalc/pkg/c172s"
	"github.com/pohcalc/pohcalc/pkg/table"
)

// TFD is the time, fuel and distance to climb between two pressure
// altitudes.
type TFD struct {
	Minutes       float64 `json:"minutes"`
	Gallons       float64 `json:"gallons"`
	NauticalMiles float64 `json:"nautical_miles"`
}

func (t TFD) String() string {
	return fmt.Sprintf("Time:      %5.1f min\nFuel:      %5.1f gal\nDistance:  %5.1f nm\n",
		t.Minutes, t.Gallons, t.NauticalMiles)
}

// Schedule is the standard temperature, climb speed and rate of climb the
// time, fuel and distance chart assumes at a pressure altitude.
type Schedule struct {
	StandardTemperature float64 `json:"standard_temperature_c"`
	ClimbSpeed          float64 `json:"climb_speed_kias"`
	RateOfClimb         float64 `json:"rate_of_climb_fpm"`
}

func (s Schedule) String() string {
	return fmt.Sprintf("Standard temp:  %5.0f °C\nClimb speed:    %5.0f KIAS\nRate of climb:  %5.0f ft/min\n",
		s.StandardTemperature, s.ClimbSpeed, s.RateOfClimb)
}

// Calculator reads the handbook climb charts. It is safe for concurrent
// use.
type Calculator struct {
	tables c172s.Climb
	bounds table.Bounds
	logger *zap.SugaredLogger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithBounds sets the out-of-range policy for chart lookups. The default is
// table.Strict.
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

// NewCalculator returns a calculator over the given climb charts.
func NewCalculator(tables c172s.Climb, opts ...Option) (*Calculator, error) {
	if tables.MaxRateOfClimb == nil || tables.ClimbSpeed == nil ||
		tables.TimeToClimb == nil || tables.FuelToClimb == nil || tables.DistanceToClimb == nil ||
		tables.ClimbStandardTemperature == nil || tables.ClimbSpeedToAltitude == nil || tables.RateOfClimbToAltitude == nil {
		return nil, fmt.Errorf("%w: climb tables incomplete", table.ErrShape)
	}
	if tables.MaxRateOfClimb.Dims() != 2 {
		return nil, fmt.Errorf("%w: rate of climb table has %d axes, want 2", table.ErrDimension, tables.MaxRateOfClimb.Dims())
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
	c, err := NewCalculator(c172s.ClimbTables(), opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// MaxRateOfClimb returns the chart rate of climb in ft/min at a pressure
// altitude (ft) and temperature (°C).
func (c *Calculator) MaxRateOfClimb(pressureAltitude, tempC float64) (float64, error) {
	roc, err := c.tables.MaxRateOfClimb.Interpolate(c.bounds, tempC, pressureAltitude)
	if err != nil {
		return 0, fmt.Errorf("max rate of climb: %w", err)
	}
	c.logger.Debugw("max rate of climb", "pressure_altitude", pressureAltitude, "temperature", tempC, "rate", roc)
	return roc, nil
}

// ClimbSpeed returns the chart climb speed (KIAS) at a pressure altitude,
// holding the end values outside the chart.
func (c *Calculator) ClimbSpeed(pressureAltitude float64) float64 {
	return c.tables.ClimbSpeed.At(pressureAltitude)
}

// Schedule returns the climb schedule behind the time, fuel and distance
// chart at a pressure altitude, holding the end values outside the chart.
func (c *Calculator) Schedule(pressureAltitude float64) Schedule {
	return Schedule{
		StandardTemperature: c.tables.ClimbStandardTemperature.At(pressureAltitude),
		ClimbSpeed:          c.tables.ClimbSpeedToAltitude.At(pressureAltitude),
		RateOfClimb:         c.tables.RateOfClimbToAltitude.At(pressureAltitude),
	}
}

// TimeFuelDistance returns the time, fuel and distance to climb from
// fromPA to toPA: the chart value at toPA less the value at fromPA. A
// climb that does not go up is the zero TFD.
func (c *Calculator) TimeFuelDistance(fromPA, toPA float64) (TFD, error) {
	if !(toPA > fromPA) {
		return TFD{}, nil
	}

	var tfd TFD
	curves := []struct {
		curve *table.Curve
		dst   *float64
		what  string
	}{
		{c.tables.TimeToClimb, &tfd.Minutes, "time to climb"},
		{c.tables.FuelToClimb, &tfd.Gallons, "fuel to climb"},
		{c.tables.DistanceToClimb, &tfd.NauticalMiles, "distance to climb"},
	}

	for _, cv := range curves {
		from, err := cv.curve.Interpolate(c.bounds, fromPA)
		if err != nil {
			return TFD{}, fmt.Errorf("%s: %w", cv.what, err)
		}
		to, err := cv.curve.Interpolate(c.bounds, toPA)
		if err != nil {
			return TFD{}, fmt.Errorf("%s: %w", cv.what, err)
		}
		*cv.dst = to - from
	}

	c.logger.Debugw("time, fuel and distance to climb", "from", fromPA, "to", toPA, "tfd", tfd)
	return tfd, nil
}
