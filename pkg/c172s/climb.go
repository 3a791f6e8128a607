package c172s

import (
	"fmt"

	"github.com/pohcalc/pohcalc/pkg/table"
)

// Climb holds the maximum rate of climb chart and the time, fuel and
// distance to climb chart, both at 2550 lbs, flaps up, full throttle.
type Climb struct {
	// MaxRateOfClimb is indexed (temperature °C, pressure altitude ft).
	MaxRateOfClimb *table.Table
	// ClimbSpeed is KIAS by pressure altitude for the rate of climb chart.
	ClimbSpeed *table.Curve

	// Cumulative values from sea level, by pressure altitude, standard
	// temperature.
	TimeToClimb     *table.Curve
	FuelToClimb     *table.Curve
	DistanceToClimb *table.Curve
	// Standard temperature, climb speed and rate of climb published
	// alongside the time, fuel and distance chart.
	ClimbStandardTemperature *table.Curve
	ClimbSpeedToAltitude     *table.Curve
	RateOfClimbToAltitude    *table.Curve
}

var (
	rocAltitudes    = table.Span(AxisPressureAltitude, 0, 12000, 2000)
	rocTemperatures = table.Span(AxisTemperature, -20, 40, 20)
	rocClimbSpeeds  = []float64{74, 73, 73, 73, 72, 72, 72}

	tfdAltitudes = table.Span(AxisPressureAltitude, 0, 12000, 1000)
)

// Rows are temperature (-20, 0, 20, 40 °C); columns are pressure altitude.
// The chart publishes no value for 12000 ft at 40 °C.
var maxRateOfClimb = [][]float64{
	{855, 760, 685, 575, 465, 360, 255},
	{785, 695, 620, 515, 405, 300, 195},
	{710, 625, 555, 450, 345, 240, 135},
	{645, 560, 495, 390, 285, 180, 0},
}

var (
	tfdStandardTemperature = []float64{15, 13, 11, 9, 7, 5, 3, 1, -1, -3, -5, -7, -9}
	tfdClimbSpeed          = []float64{74, 73, 73, 73, 73, 73, 73, 73, 72, 72, 72, 72, 72}
	tfdRateOfClimb         = []float64{730, 695, 655, 620, 600, 550, 505, 455, 410, 360, 315, 265, 220}
	tfdMinutes             = []float64{0, 1, 3, 4, 6, 8, 10, 12, 14, 17, 20, 24, 28}
	tfdGallons             = []float64{0.0, 0.4, 0.8, 1.2, 1.5, 1.9, 2.2, 2.6, 3.0, 3.4, 3.9, 4.4, 5.0}
	tfdNauticalMiles       = []float64{0, 2, 4, 6, 8, 10, 13, 16, 19, 22, 27, 32, 38}
)

// NewClimb builds the climb tables.
func NewClimb() (Climb, error) {
	var c Climb
	var err error

	if c.MaxRateOfClimb, err = table.New(flatten(maxRateOfClimb), rocTemperatures, rocAltitudes); err != nil {
		return Climb{}, fmt.Errorf("max rate of climb table: %w", err)
	}
	if c.ClimbSpeed, err = table.NewCurve(AxisPressureAltitude, rocAltitudes.Values, rocClimbSpeeds); err != nil {
		return Climb{}, fmt.Errorf("climb speed curve: %w", err)
	}

	curves := []struct {
		dst  **table.Curve
		ys   []float64
		what string
	}{
		{&c.TimeToClimb, tfdMinutes, "time to climb"},
		{&c.FuelToClimb, tfdGallons, "fuel to climb"},
		{&c.DistanceToClimb, tfdNauticalMiles, "distance to climb"},
		{&c.ClimbStandardTemperature, tfdStandardTemperature, "standard temperature"},
		{&c.ClimbSpeedToAltitude, tfdClimbSpeed, "climb speed to altitude"},
		{&c.RateOfClimbToAltitude, tfdRateOfClimb, "rate of climb to altitude"},
	}
	for _, cv := range curves {
		if *cv.dst, err = table.NewCurve(AxisPressureAltitude, tfdAltitudes.Values, cv.ys); err != nil {
			return Climb{}, fmt.Errorf("%s curve: %w", cv.what, err)
		}
	}

	return c, nil
}

var climbTables = mustBuild(NewClimb)

// ClimbTables returns the built-in climb tables. The tables are shared and
// must not be modified.
func ClimbTables() Climb { return climbTables }
