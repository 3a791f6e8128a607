// Package cruise computes cruise true airspeed and fuel flow from the
// handbook cruise tables or from a single pilot-supplied reference point,
// plus the endurance and range that follow from them.
package cruise

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/pohcalc/pohcalc/pkg/atmosphere"
	"github.com/pohcalc/pohcalc/pkg/c172s"
	"github.com/pohcalc/pohcalc/pkg/table"
)

const (
	// FallbackTrueAirspeed and FallbackFuelFlow are returned when the table
	// lookup cannot be evaluated.
	FallbackTrueAirspeed = 120.0
	FallbackFuelFlow     = 8.5
)

// The parametric model perturbs the pilot's reference figures around these
// conditions.
const (
	modelAltitude         = 2000.0
	modelTemperature      = 15.0
	modelManifoldPressure = 22.0
	modelRPM              = 2400.0

	altitudeCoefficient    = 0.0001
	temperatureCoefficient = 0.005
	manifoldCoefficient    = 0.02
	rpmCoefficient         = 0.0001
)

// Lookup selects how the built-in tables are read.
type Lookup int

const (
	// LookupInterpolate blends the surrounding grid values, clamping each
	// coordinate to the table.
	LookupInterpolate Lookup = iota
	// LookupLowerBracket returns the grid value at the largest grid point
	// not above the request on every axis.
	LookupLowerBracket
)

func (l Lookup) String() string {
	switch l {
	case LookupInterpolate:
		return "interpolate"
	case LookupLowerBracket:
		return "lower-bracket"
	default:
		return fmt.Sprintf("Lookup(%d)", int(l))
	}
}

// ParseLookup converts "interpolate" or "lower-bracket" to a Lookup.
func ParseLookup(s string) (Lookup, error) {
	switch s {
	case "", "interpolate":
		return LookupInterpolate, nil
	case "lower-bracket":
		return LookupLowerBracket, nil
	}
	return LookupInterpolate, fmt.Errorf("unknown cruise lookup %q (want interpolate or lower-bracket)", s)
}

// Source reports where a result came from.
type Source string

const (
	SourceTable     Source = "table"
	SourceTableNoMP Source = "table-no-mp"
	SourceReference Source = "reference"
	SourceFallback  Source = "fallback"
)

// ReferencePoint is a single cruise figure the pilot has measured or read
// from another handbook. Only TrueAirspeed and FuelFlow enter the parametric
// model, which scales them from fixed anchor conditions of 2000 ft, 15 °C,
// 22 inHg and 2400 RPM. Altitude, Temperature, ManifoldPressure and RPM
// record where the figure was taken and are not used to rescale it.
type ReferencePoint struct {
	Altitude         float64  `json:"altitude"`
	Temperature      float64  `json:"temperature"`
	ManifoldPressure *float64 `json:"manifold_pressure,omitempty"`
	RPM              float64  `json:"rpm"`
	TrueAirspeed     float64  `json:"true_airspeed"`
	FuelFlow         float64  `json:"fuel_flow"`
}

// Request describes the cruise condition. ManifoldPressure is nil for
// aircraft without a manifold pressure gauge. A non-nil Reference replaces
// the built-in tables.
type Request struct {
	Altitude         float64  // ft, true
	Temperature      float64  // °C
	RPM              float64  // rev/min
	Altimeter        float64  // inHg
	ManifoldPressure *float64 // inHg
	Reference        *ReferencePoint
}

// Result is a cruise performance figure.
type Result struct {
	TrueAirspeed     float64 `json:"true_airspeed_kt"`
	FuelFlow         float64 `json:"fuel_flow_gph"`
	PressureAltitude float64 `json:"pressure_altitude_ft"`
	Source           Source  `json:"source"`
	Fallback         bool    `json:"fallback"`
}

func (r Result) String() string {
	s := fmt.Sprintf("Pressure altitude:  %6.0f ft\n"+
		"True airspeed:      %6.1f kt\n"+
		"Fuel flow:          %6.1f GPH\n"+
		"Source:             %s\n",
		r.PressureAltitude, r.TrueAirspeed, r.FuelFlow, r.Source)
	if r.Fallback {
		s += "Warning: table lookup failed, showing default figures\n"
	}
	return s
}

// Calculator evaluates cruise requests. It is safe for concurrent use.
type Calculator struct {
	tables c172s.Cruise
	lookup Lookup
	logger *zap.SugaredLogger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLookup sets the table lookup mode.
func WithLookup(l Lookup) Option {
	return func(c *Calculator) { c.lookup = l }
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Calculator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCalculator returns a calculator over the given cruise tables.
func NewCalculator(tables c172s.Cruise, opts ...Option) (*Calculator, error) {
	if tables.TrueAirspeed == nil || tables.FuelFlow == nil || tables.TrueAirspeedNoMP == nil || tables.FuelFlowNoMP == nil {
		return nil, fmt.Errorf("%w: cruise tables incomplete", table.ErrShape)
	}
	if tables.TrueAirspeed.Dims() != 4 || tables.FuelFlow.Dims() != 4 {
		return nil, fmt.Errorf("%w: cruise tables need 4 axes", table.ErrDimension)
	}
	if tables.TrueAirspeedNoMP.Dims() != 3 || tables.FuelFlowNoMP.Dims() != 3 {
		return nil, fmt.Errorf("%w: cruise tables without manifold pressure need 3 axes", table.ErrDimension)
	}

	c := &Calculator{
		tables: tables,
		lookup: LookupInterpolate,
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Default returns a calculator over the built-in 172S tables.
func Default(opts ...Option) *Calculator {
	c, err := NewCalculator(c172s.CruiseTables(), opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Performance returns the cruise true airspeed and fuel flow for r. A table
// lookup that cannot be evaluated degrades to the fallback figures with
// Fallback set; only a reference point with non-finite inputs is an error.
func (c *Calculator) Performance(r Request) (Result, error) {
	pa := atmosphere.PressureAltitude(r.Altimeter, r.Altitude)

	if r.Reference != nil {
		return c.fromReference(r, pa)
	}

	res, err := c.fromTable(r, pa)
	if err != nil {
		c.logger.Warnw("cruise table lookup failed, using fallback figures",
			"error", err,
			"pressure_altitude", pa,
			"temperature", r.Temperature,
			"rpm", r.RPM,
			"lookup", c.lookup.String(),
		)
		return Result{
			TrueAirspeed:     FallbackTrueAirspeed,
			FuelFlow:         FallbackFuelFlow,
			PressureAltitude: pa,
			Source:           SourceFallback,
			Fallback:         true,
		}, nil
	}
	return res, nil
}

func (c *Calculator) fromTable(r Request, pa float64) (Result, error) {
	tasTable, ffTable := c.tables.TrueAirspeed, c.tables.FuelFlow
	point := []float64{pa, r.Temperature}
	source := SourceTable
	if r.ManifoldPressure != nil {
		point = append(point, *r.ManifoldPressure)
	} else {
		tasTable, ffTable = c.tables.TrueAirspeedNoMP, c.tables.FuelFlowNoMP
		source = SourceTableNoMP
	}
	point = append(point, r.RPM)

	tas, err := c.read(tasTable, point)
	if err != nil {
		return Result{}, fmt.Errorf("true airspeed: %w", err)
	}
	ff, err := c.read(ffTable, point)
	if err != nil {
		return Result{}, fmt.Errorf("fuel flow: %w", err)
	}

	return Result{
		TrueAirspeed:     tas,
		FuelFlow:         ff,
		PressureAltitude: pa,
		Source:           source,
	}, nil
}

func (c *Calculator) read(t *table.Table, point []float64) (float64, error) {
	if c.lookup == LookupLowerBracket {
		return t.LowerBracket(point...)
	}
	return t.Interpolate(table.Clamp, point...)
}

func (c *Calculator) fromReference(r Request, pa float64) (Result, error) {
	inputs := []float64{pa, r.Temperature, r.RPM, r.Reference.TrueAirspeed, r.Reference.FuelFlow}
	if r.ManifoldPressure != nil {
		inputs = append(inputs, *r.ManifoldPressure)
	}
	for _, v := range inputs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, fmt.Errorf("reference cruise model: %w", table.ErrNotFinite)
		}
	}

	altitudeFactor := 1 + (pa-modelAltitude)*altitudeCoefficient
	tempFactor := 1 + (r.Temperature-modelTemperature)*temperatureCoefficient
	powerFactor := 1 + (r.RPM-modelRPM)*rpmCoefficient
	if r.ManifoldPressure != nil {
		powerFactor += (*r.ManifoldPressure - modelManifoldPressure) * manifoldCoefficient
	}

	return Result{
		TrueAirspeed:     r.Reference.TrueAirspeed * altitudeFactor * tempFactor * powerFactor,
		FuelFlow:         r.Reference.FuelFlow * powerFactor,
		PressureAltitude: pa,
		Source:           SourceReference,
	}, nil
}
