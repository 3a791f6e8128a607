package takeoff

import "github.com/pohcalc/pohcalc/pkg/atmosphere"

const (
	// GrassFactor is the handbook increase for a dry grass runway: 15% of
	// the ground roll.
	GrassFactor = 1.15

	// NormalTakeoffFactor is applied when taking off with flaps 0° instead
	// of the short field configuration the charts assume.
	NormalTakeoffFactor = 1.1
)

// Wind is the surface wind relative to the departure runway.
type Wind struct {
	RunwayHeading float64 // degrees
	Direction     float64 // degrees, direction the wind blows from
	Speed         float64 // kt
}

// Modifiers records each correction factor applied to a chart distance.
type Modifiers struct {
	Wind          float64 `json:"wind"`
	Surface       float64 `json:"surface"`
	SafetyMargin  float64 `json:"safety_margin"`
	NormalTakeoff float64 `json:"normal_takeoff"`
	Slope         float64 `json:"slope"`
}

// Product returns the combined multiplier.
func (m Modifiers) Product() float64 {
	return m.Wind * m.Surface * m.SafetyMargin * m.NormalTakeoff * m.Slope
}

// WindModifier returns 1 for a nil wind.
func WindModifier(w *Wind) float64 {
	if w == nil {
		return 1
	}
	return atmosphere.WindRunwayModifier(w.RunwayHeading, w.Speed, w.Direction)
}

// GrassModifier returns GrassFactor for a grass runway and 1 otherwise.
func GrassModifier(grass bool) float64 {
	if grass {
		return GrassFactor
	}
	return 1
}

// SafetyMarginModifier converts a percentage margin into a multiplier.
func SafetyMarginModifier(pct float64) float64 {
	return 1 + pct/100
}

// NormalTakeoffModifier returns NormalTakeoffFactor when normal is set.
func NormalTakeoffModifier(normal bool) float64 {
	if normal {
		return NormalTakeoffFactor
	}
	return 1
}

// RunwaySlopeModifier returns the correction for runway slope in percent.
// The handbook publishes no slope data for the 172S, so it is always 1.
func RunwaySlopeModifier(slopePct float64) float64 {
	return 1
}

func modifiersFor(c Conditions) Modifiers {
	return Modifiers{
		Wind:          WindModifier(c.Wind),
		Surface:       GrassModifier(c.Grass),
		SafetyMargin:  SafetyMarginModifier(c.SafetyMarginPct),
		NormalTakeoff: NormalTakeoffModifier(c.NormalTakeoff),
		Slope:         RunwaySlopeModifier(c.SlopePct),
	}
}
