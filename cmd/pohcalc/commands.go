package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/pohcalc/pohcalc/internal/log"
	"github.com/pohcalc/pohcalc/pkg/atmosphere"
	"github.com/pohcalc/pohcalc/pkg/climb"
	"github.com/pohcalc/pohcalc/pkg/config"
	"github.com/pohcalc/pohcalc/pkg/cruise"
	"github.com/pohcalc/pohcalc/pkg/responseformat"
	"github.com/pohcalc/pohcalc/pkg/takeoff"
)

type env struct {
	cfg       *config.ConfigData
	formatter *responseformat.Formatter
	stdout    io.Writer
	stderr    io.Writer
	runID     string
}

func (e *env) logger(name string) *zap.SugaredLogger {
	return log.Named(name).With("run_id", e.runID)
}

func (e *env) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

type command struct {
	summary string
	run     func(e *env, args []string) error
}

var commands = map[string]command{
	"takeoff":     {"takeoff ground roll and distance over a 50 ft obstacle", runTakeoff},
	"climb":       {"integrate a climb for the minimum climb gradient", runClimb},
	"climb-table": {"handbook rate of climb and time, fuel and distance to climb", runClimbTable},
	"cruise":      {"cruise true airspeed and fuel flow", runCruise},
	"endurance":   {"endurance and range for a fuel load", runEndurance},
}

// optionalFloat is a float flag that records whether it was set.
type optionalFloat struct {
	v *float64
}

func (o *optionalFloat) String() string {
	if o == nil || o.v == nil {
		return ""
	}
	return strconv.FormatFloat(*o.v, 'g', -1, 64)
}

func (o *optionalFloat) Set(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	o.v = &f
	return nil
}

func runTakeoff(e *env, args []string) error {
	fs := e.flagSet("takeoff")
	weight := fs.Float64("weight", 2550, "Takeoff weight (lbs)")
	temp := fs.Float64("temp", 15, "Outside air temperature (°C)")
	altitude := fs.Float64("altitude", 0, "Field elevation (ft)")
	altimeter := fs.Float64("altimeter", e.cfg.Altimeter, "Altimeter setting (inHg)")
	runway := fs.Float64("runway", 360, "Runway heading (degrees)")
	windDir := fs.Float64("wind-dir", 360, "Wind direction (degrees)")
	windSpeed := fs.Float64("wind-speed", 0, "Wind speed (kt)")
	grass := fs.Bool("grass", false, "Dry grass runway")
	margin := fs.Float64("margin", e.cfg.Takeoff.SafetyMarginPct, "Safety margin (percent)")
	normal := fs.Bool("normal", e.cfg.Takeoff.NormalTakeoff, "Normal takeoff, flaps 0°")
	slope := fs.Float64("slope", 0, "Runway slope (percent, uphill positive)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bounds, err := e.cfg.TakeoffBounds()
	if err != nil {
		return err
	}
	calc := takeoff.Default(takeoff.WithBounds(bounds), takeoff.WithLogger(e.logger("takeoff")))

	cond := takeoff.Conditions{
		PressureAltitude: atmosphere.PressureAltitude(*altimeter, *altitude),
		Weight:           *weight,
		Temperature:      *temp,
		Grass:            *grass,
		SafetyMarginPct:  *margin,
		NormalTakeoff:    *normal,
		SlopePct:         *slope,
	}
	if *windSpeed != 0 {
		cond.Wind = &takeoff.Wind{RunwayHeading: *runway, Direction: *windDir, Speed: *windSpeed}
	}

	res, err := calc.Compute(cond)
	if err != nil {
		return err
	}
	return e.formatter.WriteResponse(e.stdout, res)
}

func runClimb(e *env, args []string) error {
	fs := e.flagSet("climb")
	p := climb.Params{Altimeter: e.cfg.Altimeter}
	fs.Float64Var(&p.StartAltitude, "from", 0, "Start altitude (ft)")
	fs.Float64Var(&p.EndAltitude, "to", 0, "End altitude (ft)")
	fs.Float64Var(&p.StartClimbRate, "rate-start", 700, "Climb rate at the start (ft/min)")
	fs.Float64Var(&p.EndClimbRate, "rate-end", 500, "Climb rate at the end (ft/min)")
	fs.Float64Var(&p.IndicatedAirspeed, "ias", 79, "Indicated airspeed (kt)")
	fs.Float64Var(&p.StartTemp, "temp-start", 15, "Temperature at the start (°C)")
	fs.Float64Var(&p.EndTemp, "temp-end", 15, "Temperature at the end (°C)")
	fs.Float64Var(&p.StartWindDir, "wind-dir-start", 360, "Wind direction at the start (degrees)")
	fs.Float64Var(&p.StartWindSpeed, "wind-speed-start", 0, "Wind speed at the start (kt)")
	fs.Float64Var(&p.EndWindDir, "wind-dir-end", 360, "Wind direction at the end (degrees)")
	fs.Float64Var(&p.EndWindSpeed, "wind-speed-end", 0, "Wind speed at the end (kt)")
	fs.Float64Var(&p.StartHeading, "heading-start", 360, "Heading at the start (degrees)")
	fs.Float64Var(&p.EndHeading, "heading-end", 360, "Heading at the end (degrees)")
	fs.Float64Var(&p.Altimeter, "altimeter", e.cfg.Altimeter, "Altimeter setting (inHg)")
	fs.BoolVar(&p.Trace, "trace", false, "Include every 500 ft segment in the output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res := climb.Gradient(p)
	e.logger("climb").Debugw("climb gradient",
		"from", p.StartAltitude,
		"to", p.EndAltitude,
		"gradient", res.MinGradient,
		"distance", res.TotalDistance,
	)
	return e.formatter.WriteResponse(e.stdout, res)
}

type climbTableReport struct {
	PressureAltitude float64        `json:"pressure_altitude_ft"`
	MaxRateOfClimb   float64        `json:"max_rate_of_climb_fpm"`
	ClimbSpeed       float64        `json:"climb_speed_kias"`
	ToClimb          climb.TFD      `json:"to_climb"`
	TopSchedule      climb.Schedule `json:"top_schedule"`
}

func (r climbTableReport) String() string {
	return fmt.Sprintf("Pressure altitude:  %6.0f ft\n"+
		"Max rate of climb:  %6.0f ft/min\n"+
		"Climb speed:        %6.0f KIAS\n",
		r.PressureAltitude, r.MaxRateOfClimb, r.ClimbSpeed) + r.ToClimb.String() +
		"At the top of climb:\n" + r.TopSchedule.String()
}

func runClimbTable(e *env, args []string) error {
	fs := e.flagSet("climb-table")
	from := fs.Float64("from", 0, "Start pressure altitude (ft)")
	to := fs.Float64("to", 0, "End pressure altitude (ft)")
	temp := fs.Float64("temp", 15, "Temperature at the start (°C)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bounds, err := e.cfg.ClimbBounds()
	if err != nil {
		return err
	}
	calc := climb.Default(climb.WithBounds(bounds), climb.WithLogger(e.logger("climb")))

	roc, err := calc.MaxRateOfClimb(*from, *temp)
	if err != nil {
		return err
	}
	tfd, err := calc.TimeFuelDistance(*from, *to)
	if err != nil {
		return err
	}

	return e.formatter.WriteResponse(e.stdout, climbTableReport{
		PressureAltitude: *from,
		MaxRateOfClimb:   roc,
		ClimbSpeed:       calc.ClimbSpeed(*from),
		ToClimb:          tfd,
		TopSchedule:      calc.Schedule(*to),
	})
}

// cruiseRequest registers the cruise condition flags on fs and returns a
// function building the request once fs has been parsed.
func (e *env) cruiseRequest(fs *flag.FlagSet) func() cruise.Request {
	altitude := fs.Float64("altitude", 6000, "Cruise altitude (ft)")
	temp := fs.Float64("temp", 5, "Outside air temperature (°C)")
	rpm := fs.Float64("rpm", 2400, "Engine RPM")
	altimeter := fs.Float64("altimeter", e.cfg.Altimeter, "Altimeter setting (inHg)")
	mp := &optionalFloat{}
	fs.Var(mp, "mp", "Manifold pressure (inHg); omit for aircraft without the gauge")
	useTable := fs.Bool("table", false, "Use the built-in tables even when the profile has a reference point")

	return func() cruise.Request {
		req := cruise.Request{
			Altitude:         *altitude,
			Temperature:      *temp,
			RPM:              *rpm,
			Altimeter:        *altimeter,
			ManifoldPressure: mp.v,
		}
		if !*useTable {
			req.Reference = e.cfg.CruiseReference()
		}
		return req
	}
}

func (e *env) cruiseCalculator() (*cruise.Calculator, error) {
	lookup, err := e.cfg.CruiseLookup()
	if err != nil {
		return nil, err
	}
	return cruise.Default(cruise.WithLookup(lookup), cruise.WithLogger(e.logger("cruise"))), nil
}

func runCruise(e *env, args []string) error {
	fs := e.flagSet("cruise")
	request := e.cruiseRequest(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	calc, err := e.cruiseCalculator()
	if err != nil {
		return err
	}
	res, err := calc.Performance(request())
	if err != nil {
		return err
	}
	return e.formatter.WriteResponse(e.stdout, res)
}

type enduranceReport struct {
	FuelFlow    float64        `json:"fuel_flow_gph"`
	Reserve     cruise.Reserve `json:"reserve"`
	Endurance   float64        `json:"endurance_hr"`
	GroundSpeed float64        `json:"ground_speed_kt"`
	Range       float64        `json:"range_nm"`
	Fallback    bool           `json:"fallback,omitempty"`
}

func (r enduranceReport) String() string {
	s := fmt.Sprintf("Fuel flow:          %6.1f GPH\n"+
		"Endurance:          %6.2f hr\n"+
		"Ground speed:       %6.1f kt\n"+
		"Range:              %6.0f nm\n",
		r.FuelFlow, r.Endurance, r.GroundSpeed, r.Range)
	if r.Fallback {
		s += "Warning: cruise table lookup failed, using default figures\n"
	}
	return s
}

func runEndurance(e *env, args []string) error {
	fs := e.flagSet("endurance")
	fuel := fs.Float64("fuel", 53, "Usable fuel on board (gal)")
	reserve := e.cfg.CruiseReserve()
	fs.Float64Var(&reserve.Gallons, "reserve-gal", reserve.Gallons, "Reserve (gal)")
	fs.Float64Var(&reserve.Hours, "reserve-hr", reserve.Hours, "Reserve (hours at cruise fuel flow)")
	flow := &optionalFloat{}
	fs.Var(flow, "flow", "Fuel flow (GPH); computed from the cruise condition when omitted")
	heading := fs.Float64("heading", 360, "Heading (degrees)")
	windDir := fs.Float64("wind-dir", 360, "Wind direction (degrees)")
	windSpeed := fs.Float64("wind-speed", 0, "Wind speed (kt)")
	request := e.cruiseRequest(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	calc, err := e.cruiseCalculator()
	if err != nil {
		return err
	}
	perf, err := calc.Performance(request())
	if err != nil {
		return err
	}

	report := enduranceReport{
		FuelFlow: perf.FuelFlow,
		Reserve:  reserve,
		Fallback: perf.Fallback,
	}
	if flow.v != nil {
		report.FuelFlow = *flow.v
	}
	report.Endurance = cruise.Endurance(*fuel, report.FuelFlow, reserve)
	report.GroundSpeed = atmosphere.GroundSpeed(perf.TrueAirspeed, *heading, *windDir, *windSpeed)
	report.Range = cruise.Range(report.Endurance, report.GroundSpeed)

	return e.formatter.WriteResponse(e.stdout, report)
}
