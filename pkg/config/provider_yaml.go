package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	// Load into temporary struct with YAML tags
	var yamlConfig ProfileYAML
	err = yaml.UnmarshalStrict(cfgFile, &yamlConfig)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", y.filename, err)
	}

	// Convert to our internal format
	config := &ConfigData{
		Aircraft:  yamlConfig.Aircraft,
		Altimeter: yamlConfig.Altimeter,
		Logging: LoggingData{
			Debug:      yamlConfig.Logging.Debug,
			File:       yamlConfig.Logging.File,
			MaxSizeMB:  yamlConfig.Logging.MaxSizeMB,
			MaxBackups: yamlConfig.Logging.MaxBackups,
			MaxAgeDays: yamlConfig.Logging.MaxAgeDays,
		},
		Takeoff: TakeoffData{
			Bounds:          yamlConfig.Takeoff.Bounds,
			SafetyMarginPct: yamlConfig.Takeoff.SafetyMarginPct,
			NormalTakeoff:   yamlConfig.Takeoff.NormalTakeoff,
		},
		Climb: ClimbData{
			Bounds: yamlConfig.Climb.Bounds,
		},
		Cruise: CruiseData{
			Lookup: yamlConfig.Cruise.Lookup,
			Reserve: ReserveData{
				Gallons: yamlConfig.Cruise.Reserve.Gallons,
				Hours:   yamlConfig.Cruise.Reserve.Hours,
			},
		},
	}

	if ref := yamlConfig.Cruise.Reference; ref != nil {
		config.Cruise.Reference = &ReferenceData{
			Altitude:         ref.Altitude,
			Temperature:      ref.Temperature,
			ManifoldPressure: ref.ManifoldPressure,
			RPM:              ref.RPM,
			TrueAirspeed:     ref.TrueAirspeed,
			FuelFlow:         ref.FuelFlow,
		}
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", y.filename, err)
	}

	y.config = config
	return config, nil
}

func (y *YAMLProvider) loaded() (*ConfigData, error) {
	if y.config == nil {
		return y.LoadConfig()
	}
	return y.config, nil
}

// GetLogging returns logging configuration
func (y *YAMLProvider) GetLogging() (*LoggingData, error) {
	c, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return &c.Logging, nil
}

// GetTakeoff returns takeoff configuration
func (y *YAMLProvider) GetTakeoff() (*TakeoffData, error) {
	c, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return &c.Takeoff, nil
}

// GetClimb returns climb chart configuration
func (y *YAMLProvider) GetClimb() (*ClimbData, error) {
	c, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return &c.Climb, nil
}

// GetCruise returns cruise configuration
func (y *YAMLProvider) GetCruise() (*CruiseData, error) {
	c, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return &c.Cruise, nil
}

// IsReadOnly returns true since YAML files are read-only through this interface
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// YAML-specific structs with the tags used in profile files
type ProfileYAML struct {
	Aircraft  string      `yaml:"aircraft"`
	Altimeter float64     `yaml:"altimeter,omitempty"`
	Logging   LoggingYAML `yaml:"logging,omitempty"`
	Takeoff   TakeoffYAML `yaml:"takeoff,omitempty"`
	Climb     ClimbYAML   `yaml:"climb,omitempty"`
	Cruise    CruiseYAML  `yaml:"cruise,omitempty"`
}

type LoggingYAML struct {
	Debug      bool   `yaml:"debug,omitempty"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
}

type TakeoffYAML struct {
	Bounds          string  `yaml:"bounds,omitempty"`
	SafetyMarginPct float64 `yaml:"safety_margin_pct,omitempty"`
	NormalTakeoff   bool    `yaml:"normal_takeoff,omitempty"`
}

type ClimbYAML struct {
	Bounds string `yaml:"bounds,omitempty"`
}

type CruiseYAML struct {
	Lookup    string         `yaml:"lookup,omitempty"`
	Reference *ReferenceYAML `yaml:"reference,omitempty"`
	Reserve   ReserveYAML    `yaml:"reserve,omitempty"`
}

type ReferenceYAML struct {
	Altitude         float64  `yaml:"altitude"`
	Temperature      float64  `yaml:"temperature"`
	ManifoldPressure *float64 `yaml:"manifold_pressure,omitempty"`
	RPM              float64  `yaml:"rpm"`
	TrueAirspeed     float64  `yaml:"true_airspeed"`
	FuelFlow         float64  `yaml:"fuel_flow"`
}

type ReserveYAML struct {
	Gallons float64 `yaml:"gallons,omitempty"`
	Hours   float64 `yaml:"hours,omitempty"`
}
