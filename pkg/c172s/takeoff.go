// Package c172s holds the Cessna 172S Pilot's Operating Handbook performance
// charts as validated, ascending-axis tables.
package c172s

import (
	"fmt"

	"github.com/pohcalc/pohcalc/pkg/table"
)

// Axis names shared by the tables in this package.
const (
	AxisWeight           = "weight"
	AxisTemperature      = "temperature"
	AxisPressureAltitude = "pressure_altitude"
	AxisManifoldPressure = "manifold_pressure"
	AxisRPM              = "rpm"
)

// Takeoff holds the short field takeoff charts (flaps 10°, paved, level, dry
// runway, zero wind). The 3-D tables are indexed (weight lbs, temperature °C,
// pressure altitude ft).
type Takeoff struct {
	GroundRoll   *table.Table
	Distance50ft *table.Table
	LiftoffSpeed *table.Curve
	SpeedAt50ft  *table.Curve
}

// Handbook order: heaviest weight first.
var (
	sftoWeights      = []float64{2550, 2400, 2200}
	sftoLiftoffKIAS  = []float64{51, 48, 44}
	sftoAt50ftKIAS   = []float64{56, 54, 50}
	sftoTemperatures = table.Span(AxisTemperature, 0, 40, 10)
	sftoAltitudes    = table.Span(AxisPressureAltitude, 0, 8000, 1000)
)

// Rows are (weight, temperature); columns are pressure altitude.
var sftoGroundRoll = [][]float64{
	// 2550 lbs
	{860, 940, 1025, 1125, 1235, 1355, 1495, 1645, 1820},
	{925, 1010, 1110, 1215, 1335, 1465, 1615, 1785, 1970},
	{995, 1090, 1195, 1310, 1440, 1585, 1745, 1920, 2120},
	{1070, 1170, 1285, 1410, 1550, 1705, 1875, 2065, 2280},
	{1150, 1260, 1380, 1515, 1660, 1825, 2010, 2215, 2450},
	// 2400 lbs
	{745, 810, 885, 970, 1065, 1170, 1285, 1415, 1560},
	{800, 875, 955, 1050, 1150, 1265, 1390, 1530, 1690},
	{860, 940, 1030, 1130, 1240, 1360, 1500, 1650, 1815},
	{925, 1010, 1110, 1215, 1335, 1465, 1610, 1770, 1950},
	{995, 1085, 1190, 1305, 1430, 1570, 1725, 1900, 2095},
	// 2200 lbs
	{610, 665, 725, 795, 870, 955, 1050, 1150, 1270},
	{655, 720, 785, 860, 940, 1030, 1130, 1245, 1370},
	{705, 770, 845, 925, 1010, 1110, 1220, 1340, 1475},
	{760, 830, 905, 995, 1090, 1195, 1310, 1435, 1580},
	{815, 890, 975, 1065, 1165, 1275, 1400, 1540, 1695},
}

var sftoDistance50ft = [][]float64{
	// 2550 lbs
	{1465, 1600, 1755, 1925, 2120, 2345, 2605, 2910, 3265},
	{1575, 1720, 1890, 2080, 2295, 2545, 2830, 3170, 3575},
	{1690, 1850, 2035, 2240, 2480, 2755, 3075, 3440, 3880},
	{1810, 1990, 2190, 2420, 2685, 2975, 3320, 3730, 4225},
	{1945, 2135, 2355, 2605, 2880, 3205, 3585, 4045, 4615},
	// 2400 lbs
	{1275, 1390, 1520, 1665, 1830, 2015, 2230, 2470, 2755},
	{1370, 1495, 1635, 1795, 1975, 2180, 2410, 2685, 3000},
	{1470, 1605, 1760, 1930, 2130, 2355, 2610, 2900, 3240},
	{1570, 1720, 1890, 2080, 2295, 2530, 2805, 3125, 3500},
	{1685, 1845, 2030, 2230, 2455, 2715, 3015, 3370, 3790},
	// 2200 lbs
	{1055, 1145, 1250, 1365, 1490, 1635, 1800, 1985, 2195},
	{1130, 1230, 1340, 1465, 1605, 1765, 1940, 2145, 2375},
	{1205, 1315, 1435, 1570, 1725, 1900, 2090, 2305, 2555},
	{1290, 1410, 1540, 1685, 1855, 2035, 2240, 2475, 2745},
	{1380, 1505, 1650, 1805, 1975, 2175, 2395, 2650, 2950},
}

// NewTakeoff builds the takeoff tables, normalising the weight axis to
// ascending order.
func NewTakeoff() (Takeoff, error) {
	weights := table.NewAxis(AxisWeight, sftoWeights...)

	groundRoll, err := table.NewNormalized(flatten(sftoGroundRoll), weights, sftoTemperatures, sftoAltitudes)
	if err != nil {
		return Takeoff{}, fmt.Errorf("ground roll table: %w", err)
	}

	dist50, err := table.NewNormalized(flatten(sftoDistance50ft), weights, sftoTemperatures, sftoAltitudes)
	if err != nil {
		return Takeoff{}, fmt.Errorf("50 ft distance table: %w", err)
	}

	liftoff, err := table.NewCurve(AxisWeight, sftoWeights, sftoLiftoffKIAS)
	if err != nil {
		return Takeoff{}, fmt.Errorf("liftoff speed curve: %w", err)
	}

	at50, err := table.NewCurve(AxisWeight, sftoWeights, sftoAt50ftKIAS)
	if err != nil {
		return Takeoff{}, fmt.Errorf("50 ft speed curve: %w", err)
	}

	return Takeoff{
		GroundRoll:   groundRoll,
		Distance50ft: dist50,
		LiftoffSpeed: liftoff,
		SpeedAt50ft:  at50,
	}, nil
}

var takeoffTables = mustBuild(NewTakeoff)

// TakeoffTables returns the built-in takeoff tables. The tables are shared
// and must not be modified.
func TakeoffTables() Takeoff { return takeoffTables }
