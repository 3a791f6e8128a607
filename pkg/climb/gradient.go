// Package climb integrates a climb in fixed altitude slices to find the
// minimum climb gradient, and reads the handbook climb charts.
package climb

import (
	"fmt"
	"math"

	"github.com/pohcalc/pohcalc/pkg/atmosphere"
)

// SegmentHeight is the altitude slice, in feet, the integrator steps by.
const SegmentHeight = 500.0

// Params describes a climb. Start and end values are blended linearly by
// altitude across the climb; headings follow the shorter arc.
type Params struct {
	StartAltitude     float64 // ft
	EndAltitude       float64 // ft
	StartClimbRate    float64 // ft/min
	EndClimbRate      float64 // ft/min
	IndicatedAirspeed float64 // kt
	StartTemp         float64 // °C
	EndTemp           float64 // °C
	StartWindDir      float64 // degrees
	StartWindSpeed    float64 // kt
	EndWindDir        float64 // degrees
	EndWindSpeed      float64 // kt
	StartHeading      float64 // degrees
	EndHeading        float64 // degrees
	Altimeter         float64 // inHg

	// Trace keeps every segment in Result.Segments.
	Trace bool
}

// Segment is one altitude slice of the climb.
type Segment struct {
	StartAltitude float64 `json:"start_altitude_ft"`
	EndAltitude   float64 `json:"end_altitude_ft"`
	ClimbRate     float64 `json:"climb_rate_fpm"`
	Temperature   float64 `json:"temperature_c"`
	WindDirection float64 `json:"wind_direction"`
	WindSpeed     float64 `json:"wind_speed_kt"`
	Heading       float64 `json:"heading"`
	TrueAirspeed  float64 `json:"true_airspeed_kt"`
	GroundSpeed   float64 `json:"ground_speed_kt"`
	Time          float64 `json:"time_min"`
	Distance      float64 `json:"distance_nm"`
}

// Result summarises a climb. MinGradient is the total altitude change over
// the total ground distance in ft/nm, 0 when no distance is covered.
type Result struct {
	MaxTrueAirspeed float64   `json:"max_true_airspeed_kt"`
	MaxGroundSpeed  float64   `json:"max_ground_speed_kt"`
	MinGradient     float64   `json:"min_gradient_ft_per_nm"`
	TotalTime       float64   `json:"total_time_min"`
	TotalDistance   float64   `json:"total_distance_nm"`
	Segments        []Segment `json:"segments,omitempty"`
}

func (r Result) String() string {
	return fmt.Sprintf("Max true airspeed:  %6.1f kt\n"+
		"Max ground speed:   %6.1f kt\n"+
		"Min gradient:       %6.0f ft/nm\n"+
		"Time:               %6.1f min\n"+
		"Distance:           %6.1f nm\n",
		r.MaxTrueAirspeed, r.MaxGroundSpeed, r.MinGradient, r.TotalTime, r.TotalDistance)
}

func lerp(f, a, b float64) float64 {
	return a + f*(b-a)
}

// maxSegments bounds the slices integrated for one climb.
const maxSegments = 100000

// segmentCount returns the number of slices between start and end, or 0
// when the climb would need more than maxSegments.
func segmentCount(span float64) int {
	n := math.Ceil(span/SegmentHeight - 1e-9)
	if n > maxSegments {
		return 0
	}
	return max(1, int(n))
}

// Gradient integrates the climb described by p. An end altitude at or below
// the start altitude, a non-finite altitude, or a climb longer than
// maxSegments slices yields the zero Result.
func Gradient(p Params) Result {
	var res Result
	if !(p.EndAltitude > p.StartAltitude) || math.IsInf(p.StartAltitude, 0) || math.IsInf(p.EndAltitude, 0) {
		return res
	}

	span := p.EndAltitude - p.StartAltitude
	n := segmentCount(span)

	for i := 0; i < n; i++ {
		lo := p.StartAltitude + float64(i)*SegmentHeight
		hi := p.EndAltitude
		if i < n-1 {
			hi = p.StartAltitude + float64(i+1)*SegmentHeight
		}
		f := (lo - p.StartAltitude) / span

		seg := Segment{
			StartAltitude: lo,
			EndAltitude:   hi,
			ClimbRate:     lerp(f, p.StartClimbRate, p.EndClimbRate),
			Temperature:   lerp(f, p.StartTemp, p.EndTemp),
			WindDirection: lerp(f, p.StartWindDir, p.EndWindDir),
			WindSpeed:     lerp(f, p.StartWindSpeed, p.EndWindSpeed),
			Heading:       atmosphere.LerpHeading(f, p.StartHeading, p.EndHeading),
		}

		pa := atmosphere.PressureAltitude(p.Altimeter, (lo+hi)/2)
		tas, err := atmosphere.TrueAirspeed(p.IndicatedAirspeed, pa, seg.Temperature)
		if err == nil {
			seg.TrueAirspeed = tas
			seg.GroundSpeed = atmosphere.GroundSpeed(tas, seg.Heading, seg.WindDirection, seg.WindSpeed)
			if seg.TrueAirspeed > res.MaxTrueAirspeed {
				res.MaxTrueAirspeed = seg.TrueAirspeed
			}
			if seg.GroundSpeed > res.MaxGroundSpeed {
				res.MaxGroundSpeed = seg.GroundSpeed
			}
		}

		if seg.ClimbRate > 0 {
			seg.Time = (hi - lo) / seg.ClimbRate
			seg.Distance = seg.GroundSpeed / 60 * seg.Time
			res.TotalTime += seg.Time
			res.TotalDistance += seg.Distance
		}

		if p.Trace {
			res.Segments = append(res.Segments, seg)
		}
	}

	if res.TotalDistance > 0 {
		res.MinGradient = span / res.TotalDistance
	}
	return res
}
