// Package config loads the aircraft profile and calculator settings.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/pohcalc/pohcalc/pkg/cruise"
	"github.com/pohcalc/pohcalc/pkg/table"
)

// SupportedAircraft is the only aircraft with built-in charts.
const SupportedAircraft = "C172S"

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetLogging() (*LoggingData, error)
	GetTakeoff() (*TakeoffData, error)
	GetClimb() (*ClimbData, error)
	GetCruise() (*CruiseData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Aircraft  string      `json:"aircraft"`
	Altimeter float64     `json:"altimeter"`
	Logging   LoggingData `json:"logging"`
	Takeoff   TakeoffData `json:"takeoff"`
	Climb     ClimbData   `json:"climb"`
	Cruise    CruiseData  `json:"cruise"`
}

// LoggingData configures the process logger. An empty File logs to stderr.
type LoggingData struct {
	Debug      bool   `json:"debug,omitempty"`
	File       string `json:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty"`
}

type TakeoffData struct {
	Bounds          string  `json:"bounds"`
	SafetyMarginPct float64 `json:"safety_margin_pct,omitempty"`
	NormalTakeoff   bool    `json:"normal_takeoff,omitempty"`
}

type ClimbData struct {
	Bounds string `json:"bounds"`
}

type CruiseData struct {
	Lookup    string         `json:"lookup"`
	Reference *ReferenceData `json:"reference,omitempty"`
	Reserve   ReserveData    `json:"reserve"`
}

// ReferenceData is a pilot-supplied cruise figure used instead of the
// built-in cruise tables.
type ReferenceData struct {
	Altitude         float64  `json:"altitude"`
	Temperature      float64  `json:"temperature"`
	ManifoldPressure *float64 `json:"manifold_pressure,omitempty"`
	RPM              float64  `json:"rpm"`
	TrueAirspeed     float64  `json:"true_airspeed"`
	FuelFlow         float64  `json:"fuel_flow"`
}

type ReserveData struct {
	Gallons float64 `json:"gallons,omitempty"`
	Hours   float64 `json:"hours,omitempty"`
}

// Defaults returns the configuration used when no profile is given.
func Defaults() *ConfigData {
	return &ConfigData{
		Aircraft:  SupportedAircraft,
		Altimeter: 29.92,
		Logging: LoggingData{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Takeoff: TakeoffData{Bounds: table.Strict.String()},
		Climb:   ClimbData{Bounds: table.Strict.String()},
		Cruise:  CruiseData{Lookup: cruise.LookupInterpolate.String()},
	}
}

// applyDefaults fills every unset field from Defaults.
func (c *ConfigData) applyDefaults() {
	d := Defaults()
	if c.Aircraft == "" {
		c.Aircraft = d.Aircraft
	}
	if c.Altimeter == 0 {
		c.Altimeter = d.Altimeter
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = d.Logging.MaxSizeMB
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = d.Logging.MaxBackups
	}
	if c.Logging.MaxAgeDays == 0 {
		c.Logging.MaxAgeDays = d.Logging.MaxAgeDays
	}
	if c.Takeoff.Bounds == "" {
		c.Takeoff.Bounds = d.Takeoff.Bounds
	}
	if c.Climb.Bounds == "" {
		c.Climb.Bounds = d.Climb.Bounds
	}
	if c.Cruise.Lookup == "" {
		c.Cruise.Lookup = d.Cruise.Lookup
	}
}

// Validate checks the configuration for values the calculators cannot use.
func (c *ConfigData) Validate() error {
	if !strings.EqualFold(c.Aircraft, SupportedAircraft) {
		return fmt.Errorf("unsupported aircraft %q (only %s is available)", c.Aircraft, SupportedAircraft)
	}
	if !finitePositive(c.Altimeter) {
		return fmt.Errorf("altimeter setting %v must be a positive number", c.Altimeter)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		return fmt.Errorf("log rotation limits must not be negative")
	}
	if _, err := c.TakeoffBounds(); err != nil {
		return fmt.Errorf("takeoff: %w", err)
	}
	if c.Takeoff.SafetyMarginPct < 0 {
		return fmt.Errorf("takeoff: safety margin %v%% must not be negative", c.Takeoff.SafetyMarginPct)
	}
	if _, err := c.ClimbBounds(); err != nil {
		return fmt.Errorf("climb: %w", err)
	}
	if _, err := c.CruiseLookup(); err != nil {
		return fmt.Errorf("cruise: %w", err)
	}
	if ref := c.Cruise.Reference; ref != nil {
		if !finitePositive(ref.TrueAirspeed) || !finitePositive(ref.FuelFlow) || !finitePositive(ref.RPM) {
			return fmt.Errorf("cruise: reference true airspeed, fuel flow and RPM must be positive")
		}
	}
	if c.Cruise.Reserve.Gallons < 0 || c.Cruise.Reserve.Hours < 0 {
		return fmt.Errorf("cruise: reserve must not be negative")
	}
	return nil
}

// TakeoffBounds parses the takeoff out-of-range policy.
func (c *ConfigData) TakeoffBounds() (table.Bounds, error) {
	return table.ParseBounds(c.Takeoff.Bounds)
}

// ClimbBounds parses the climb chart out-of-range policy.
func (c *ConfigData) ClimbBounds() (table.Bounds, error) {
	return table.ParseBounds(c.Climb.Bounds)
}

// CruiseLookup parses the cruise table lookup mode.
func (c *ConfigData) CruiseLookup() (cruise.Lookup, error) {
	return cruise.ParseLookup(c.Cruise.Lookup)
}

// CruiseReference returns the configured reference point, or nil.
func (c *ConfigData) CruiseReference() *cruise.ReferencePoint {
	ref := c.Cruise.Reference
	if ref == nil {
		return nil
	}
	return &cruise.ReferencePoint{
		Altitude:         ref.Altitude,
		Temperature:      ref.Temperature,
		ManifoldPressure: ref.ManifoldPressure,
		RPM:              ref.RPM,
		TrueAirspeed:     ref.TrueAirspeed,
		FuelFlow:         ref.FuelFlow,
	}
}

// CruiseReserve returns the configured endurance reserve.
func (c *ConfigData) CruiseReserve() cruise.Reserve {
	return cruise.Reserve{Gallons: c.Cruise.Reserve.Gallons, Hours: c.Cruise.Reserve.Hours}
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// DefaultProvider serves Defaults without reading any file.
type DefaultProvider struct{}

// NewDefaultProvider creates a provider for the built-in defaults
func NewDefaultProvider() *DefaultProvider {
	return &DefaultProvider{}
}

// LoadConfig returns a fresh copy of the defaults
func (DefaultProvider) LoadConfig() (*ConfigData, error) {
	return Defaults(), nil
}

func (DefaultProvider) GetLogging() (*LoggingData, error) {
	return &Defaults().Logging, nil
}

func (DefaultProvider) GetTakeoff() (*TakeoffData, error) {
	return &Defaults().Takeoff, nil
}

func (DefaultProvider) GetClimb() (*ClimbData, error) {
	return &Defaults().Climb, nil
}

func (DefaultProvider) GetCruise() (*CruiseData, error) {
	return &Defaults().Cruise, nil
}

func (DefaultProvider) IsReadOnly() bool {
	return true
}

func (DefaultProvider) Close() error {
	return nil
}
