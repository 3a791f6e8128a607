package cruise

import "math"

// Reserve is the fuel held back from endurance, given either in gallons or
// in hours at the cruise fuel flow. Both may be set; they add.
type Reserve struct {
	Gallons float64 `json:"gallons"`
	Hours   float64 `json:"hours"`
}

// total returns the reserve in gallons at fuelFlowGPH.
func (r Reserve) total(fuelFlowGPH float64) float64 {
	return r.Gallons + r.Hours*fuelFlowGPH
}

// Endurance returns the hours of flight available from fuelGal at
// fuelFlowGPH after the reserve. It is 0 for a non-positive fuel flow and
// never negative.
func Endurance(fuelGal, fuelFlowGPH float64, reserve Reserve) float64 {
	if !(fuelFlowGPH > 0) {
		return 0
	}
	usable := fuelGal - reserve.total(fuelFlowGPH)
	return math.Max(0, usable/fuelFlowGPH)
}

// Range returns the still-air or wind-corrected distance in nautical miles
// covered in enduranceHr at groundSpeedKt. It is never negative.
func Range(enduranceHr, groundSpeedKt float64) float64 {
	return math.Max(0, enduranceHr*groundSpeedKt)
}
