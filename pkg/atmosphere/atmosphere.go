// Package atmosphere provides the standard-atmosphere and wind calculations
// used to correct handbook performance: pressure altitude, true airspeed,
// ground speed and wind components.
package atmosphere

import (
	"errors"
	"math"
)

const (
	// StandardAltimeter is the standard sea level pressure in inHg.
	StandardAltimeter = 29.92

	// StandardTemperatureK is the standard sea level temperature in Kelvin.
	StandardTemperatureK = 288.15

	celsiusToKelvin = 273.15

	// Barometric approximation constants for the pressure ratio
	// (1 - PA*pressureLapse)^pressureExponent.
	pressureLapse    = 6.5e-6
	pressureExponent = 5.2561

	// ISA lapse rate, °C per 1000 ft.
	lapseRatePer1000ft = 1.98

	// Density altitude rule of thumb, ft per °C above standard.
	densityAltitudePerDegree = 118.8
)

// ErrNonPositiveDensity is returned when the density ratio for the given
// pressure altitude and temperature is zero, negative or undefined.
var ErrNonPositiveDensity = errors.New("density ratio is not positive")

// PressureAltitude returns the pressure altitude in feet for an altimeter
// setting (inHg) and a true altitude (ft). Negative results are valid.
func PressureAltitude(altimeter, trueAltitude float64) float64 {
	return (StandardAltimeter-altimeter)*1000 + trueAltitude
}

// DensityRatio returns the air density at the given pressure altitude (ft)
// and temperature (°C) relative to standard sea level density. The result may
// be NaN or non-positive outside the model's domain.
func DensityRatio(pressureAltitude, tempC float64) float64 {
	tempRatio := (tempC + celsiusToKelvin) / StandardTemperatureK
	pressureRatio := math.Pow(1-pressureAltitude*pressureLapse, pressureExponent)
	return pressureRatio / tempRatio
}

// TrueAirspeed converts indicated airspeed (kt) to true airspeed (kt) at the
// given pressure altitude (ft) and outside air temperature (°C).
func TrueAirspeed(ias, pressureAltitude, tempC float64) (float64, error) {
	sigma := DensityRatio(pressureAltitude, tempC)
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return 0, ErrNonPositiveDensity
	}
	return ias / math.Sqrt(sigma), nil
}

// StandardTemperature returns the ISA temperature (°C) at a pressure
// altitude (ft).
func StandardTemperature(pressureAltitude float64) float64 {
	return 15 - lapseRatePer1000ft*pressureAltitude/1000
}

// DensityAltitude estimates density altitude (ft) from pressure altitude
// (ft) and outside air temperature (°C).
func DensityAltitude(pressureAltitude, tempC float64) float64 {
	return pressureAltitude + densityAltitudePerDegree*(tempC-StandardTemperature(pressureAltitude))
}
