package atmosphere

import (
	"math"

	"github.com/soniakeys/unit"
)

const (
	// Handbook wind corrections: decrease distances 10% for each 9 kt of
	// headwind, increase them 10% for each 2 kt of tailwind.
	headwindStepKt = 9
	tailwindStepKt = 2
	windStepFactor = 0.1
)

// NormalizeHeading reduces a heading in degrees to [0, 360).
func NormalizeHeading(deg float64) float64 {
	h := unit.PMod(deg, 360)
	if h >= 360 {
		return 0
	}
	return h
}

// HeadingDifference returns b-a wrapped to [-180, 180), the signed turn
// from a to b along the shorter arc.
func HeadingDifference(a, b float64) float64 {
	return NormalizeHeading(b-a+180) - 180
}

// LerpHeading blends from h0 to h1 by fraction f along the shorter arc and
// returns a heading in [0, 360).
func LerpHeading(f, h0, h1 float64) float64 {
	return NormalizeHeading(h0 + f*HeadingDifference(h0, h1))
}

// windAngle returns the angle between a reference direction and the wind
// direction as a unit.Angle in [0, 2π).
func windAngle(reference, windDir float64) unit.Angle {
	return unit.AngleFromDeg(NormalizeHeading(reference - windDir))
}

// WindComponents splits a wind into the headwind component along heading
// (negative for a tailwind) and the crosswind component (positive when the
// wind comes from the right).
func WindComponents(heading, windDir, windSpeed float64) (headwind, crosswind float64) {
	sin, cos := unit.AngleFromDeg(NormalizeHeading(windDir - heading)).Sincos()
	return windSpeed * cos, windSpeed * sin
}

// GroundSpeed returns the ground speed (kt) for a true airspeed (kt), a
// heading and a wind (direction the wind blows from, speed kt). The result is
// never negative.
func GroundSpeed(tas, heading, windDir, windSpeed float64) float64 {
	headwind := windSpeed * unit.AngleFromDeg(NormalizeHeading(windDir-heading)).Cos()
	return math.Max(0, tas-headwind)
}

// WindRunwayModifier returns the multiplier applied to takeoff distances for
// a wind relative to the runway heading. A calm wind yields exactly 1 and a
// headwind never takes the factor below 0.
func WindRunwayModifier(runwayHeading, windSpeed, windDir float64) float64 {
	component := windSpeed * windAngle(runwayHeading, windDir).Cos()

	switch {
	case component > 0:
		return math.Max(0, 1-component*windStepFactor/headwindStepKt)
	case component < 0:
		return 1 - component*windStepFactor/tailwindStepKt
	default:
		return 1
	}
}
