package c172s

import (
	"fmt"

	"github.com/pohcalc/pohcalc/pkg/table"
)

// Cruise holds the cruise performance tables. The full tables are indexed
// (pressure altitude ft, temperature °C, manifold pressure inHg, RPM); the
// NoMP tables drop the manifold pressure axis.
type Cruise struct {
	TrueAirspeed     *table.Table
	FuelFlow         *table.Table
	TrueAirspeedNoMP *table.Table
	FuelFlowNoMP     *table.Table
}

var (
	cruiseAltitudes         = table.Span(AxisPressureAltitude, 2000, 12000, 2000)
	cruiseTemperatures      = table.NewAxis(AxisTemperature, 15, 5)
	cruiseManifoldPressures = table.Span(AxisManifoldPressure, 20, 24, 2)
	cruiseRPMs              = table.Span(AxisRPM, 2200, 2500, 100)
)

// True airspeed (KTAS). Rows are (pressure altitude, temperature, manifold
// pressure); columns are RPM.
var cruiseTrueAirspeed = [][]float64{
	// 2000 ft, 15 °C; 20, 22, 24 inHg
	{103, 108, 113, 118},
	{108, 113, 118, 123},
	{113, 118, 123, 128},
	// 2000 ft, 5 °C; 20, 22, 24 inHg
	{106, 111, 116, 121},
	{111, 116, 121, 126},
	{116, 121, 126, 131},
	// 4000 ft, 15 °C; 20, 22, 24 inHg
	{108, 113, 118, 123},
	{113, 118, 123, 128},
	{118, 123, 128, 133},
	// 4000 ft, 5 °C; 20, 22, 24 inHg
	{111, 116, 121, 126},
	{116, 121, 126, 131},
	{121, 126, 131, 136},
	// 6000 ft, 15 °C; 20, 22, 24 inHg
	{113, 118, 123, 128},
	{118, 123, 128, 133},
	{123, 128, 133, 138},
	// 6000 ft, 5 °C; 20, 22, 24 inHg
	{116, 121, 126, 131},
	{121, 126, 131, 136},
	{126, 131, 136, 141},
	// 8000 ft, 15 °C; 20, 22, 24 inHg
	{118, 123, 128, 133},
	{123, 128, 133, 138},
	{128, 133, 138, 143},
	// 8000 ft, 5 °C; 20, 22, 24 inHg
	{121, 126, 131, 136},
	{126, 131, 136, 141},
	{131, 136, 141, 146},
	// 10000 ft, 15 °C; 20, 22, 24 inHg
	{123, 128, 133, 138},
	{128, 133, 138, 143},
	{133, 138, 143, 148},
	// 10000 ft, 5 °C; 20, 22, 24 inHg
	{126, 131, 136, 141},
	{131, 136, 141, 146},
	{136, 141, 146, 151},
	// 12000 ft, 15 °C; 20, 22, 24 inHg
	{128, 133, 138, 143},
	{133, 138, 143, 148},
	{138, 143, 148, 153},
	// 12000 ft, 5 °C; 20, 22, 24 inHg
	{131, 136, 141, 146},
	{136, 141, 146, 151},
	{141, 146, 151, 156},
}

// Fuel flow (GPH), same layout as cruiseTrueAirspeed.
var cruiseFuelFlow = [][]float64{
	// 2000 ft, 15 °C; 20, 22, 24 inHg
	{7.5, 8.2, 8.9, 9.6},
	{8.2, 8.9, 9.6, 10.3},
	{8.9, 9.6, 10.3, 11.0},
	// 2000 ft, 5 °C; 20, 22, 24 inHg
	{7.3, 8.0, 8.7, 9.4},
	{8.0, 8.7, 9.4, 10.1},
	{8.7, 9.4, 10.1, 10.8},
	// 4000 ft, 15 °C; 20, 22, 24 inHg
	{7.3, 8.0, 8.7, 9.4},
	{8.0, 8.7, 9.4, 10.1},
	{8.7, 9.4, 10.1, 10.8},
	// 4000 ft, 5 °C; 20, 22, 24 inHg
	{7.1, 7.8, 8.5, 9.2},
	{7.8, 8.5, 9.2, 9.9},
	{8.5, 9.2, 9.9, 10.6},
	// 6000 ft, 15 °C; 20, 22, 24 inHg
	{7.1, 7.8, 8.5, 9.2},
	{7.8, 8.5, 9.2, 9.9},
	{8.5, 9.2, 9.9, 10.6},
	// 6000 ft, 5 °C; 20, 22, 24 inHg
	{6.9, 7.6, 8.3, 9.0},
	{7.6, 8.3, 9.0, 9.7},
	{8.3, 9.0, 9.7, 10.4},
	// 8000 ft, 15 °C; 20, 22, 24 inHg
	{6.9, 7.6, 8.3, 9.0},
	{7.6, 8.3, 9.0, 9.7},
	{8.3, 9.0, 9.7, 10.4},
	// 8000 ft, 5 °C; 20, 22, 24 inHg
	{6.7, 7.4, 8.1, 8.8},
	{7.4, 8.1, 8.8, 9.5},
	{8.1, 8.8, 9.5, 10.2},
	// 10000 ft, 15 °C; 20, 22, 24 inHg
	{6.7, 7.4, 8.1, 8.8},
	{7.4, 8.1, 8.8, 9.5},
	{8.1, 8.8, 9.5, 10.2},
	// 10000 ft, 5 °C; 20, 22, 24 inHg
	{6.5, 7.2, 7.9, 8.6},
	{7.2, 7.9, 8.6, 9.3},
	{7.9, 8.6, 9.3, 10.0},
	// 12000 ft, 15 °C; 20, 22, 24 inHg
	{6.5, 7.2, 7.9, 8.6},
	{7.2, 7.9, 8.6, 9.3},
	{7.9, 8.6, 9.3, 10.0},
	// 12000 ft, 5 °C; 20, 22, 24 inHg
	{6.3, 7.0, 7.7, 8.4},
	{7.0, 7.7, 8.4, 9.1},
	{7.7, 8.4, 9.1, 9.8},
}

// True airspeed (KTAS) for aircraft without a manifold pressure gauge, at
// typical 75% power settings. Rows are (pressure altitude, temperature);
// columns are RPM.
var cruiseTrueAirspeedNoMP = [][]float64{
	// 2000 ft; 15 °C, 5 °C
	{113, 118, 123, 128},
	{116, 121, 126, 131},
	// 4000 ft; 15 °C, 5 °C
	{118, 123, 128, 133},
	{121, 126, 131, 136},
	// 6000 ft; 15 °C, 5 °C
	{123, 128, 133, 138},
	{126, 131, 136, 141},
	// 8000 ft; 15 °C, 5 °C
	{128, 133, 138, 143},
	{131, 136, 141, 146},
	// 10000 ft; 15 °C, 5 °C
	{133, 138, 143, 148},
	{136, 141, 146, 151},
	// 12000 ft; 15 °C, 5 °C
	{138, 143, 148, 153},
	{141, 146, 151, 156},
}

// Fuel flow (GPH), same layout as cruiseTrueAirspeedNoMP.
var cruiseFuelFlowNoMP = [][]float64{
	// 2000 ft; 15 °C, 5 °C
	{8.9, 9.6, 10.3, 11.0},
	{8.7, 9.4, 10.1, 10.8},
	// 4000 ft; 15 °C, 5 °C
	{8.7, 9.4, 10.1, 10.8},
	{8.5, 9.2, 9.9, 10.6},
	// 6000 ft; 15 °C, 5 °C
	{8.5, 9.2, 9.9, 10.6},
	{8.3, 9.0, 9.7, 10.4},
	// 8000 ft; 15 °C, 5 °C
	{8.3, 9.0, 9.7, 10.4},
	{8.1, 8.8, 9.5, 10.2},
	// 10000 ft; 15 °C, 5 °C
	{8.1, 8.8, 9.5, 10.2},
	{7.9, 8.6, 9.3, 10.0},
	// 12000 ft; 15 °C, 5 °C
	{7.9, 8.6, 9.3, 10.0},
	{7.7, 8.4, 9.1, 9.8},
}

// NewCruise builds the cruise tables, normalising the temperature axis to
// ascending order.
func NewCruise() (Cruise, error) {
	var c Cruise
	var err error

	full := []table.Axis{cruiseAltitudes, cruiseTemperatures, cruiseManifoldPressures, cruiseRPMs}
	noMP := []table.Axis{cruiseAltitudes, cruiseTemperatures, cruiseRPMs}

	if c.TrueAirspeed, err = table.NewNormalized(flatten(cruiseTrueAirspeed), full...); err != nil {
		return Cruise{}, fmt.Errorf("cruise true airspeed table: %w", err)
	}
	if c.FuelFlow, err = table.NewNormalized(flatten(cruiseFuelFlow), full...); err != nil {
		return Cruise{}, fmt.Errorf("cruise fuel flow table: %w", err)
	}
	if c.TrueAirspeedNoMP, err = table.NewNormalized(flatten(cruiseTrueAirspeedNoMP), noMP...); err != nil {
		return Cruise{}, fmt.Errorf("cruise true airspeed (no MP) table: %w", err)
	}
	if c.FuelFlowNoMP, err = table.NewNormalized(flatten(cruiseFuelFlowNoMP), noMP...); err != nil {
		return Cruise{}, fmt.Errorf("cruise fuel flow (no MP) table: %w", err)
	}
	return c, nil
}

var cruiseTables = mustBuild(NewCruise)

// CruiseTables returns the built-in cruise tables. The tables are shared and
// must not be modified.
func CruiseTables() Cruise { return cruiseTables }
