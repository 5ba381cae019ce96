// Package config loads windcalc settings from ~/.windcalc/config.yaml, an
// optional overlay file, and WINDCALC_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/mycarta/wind-calculator-v3/internal/windcalc"
)

// Schema versioning for config.yaml.
const (
	// CurrentSchemaVersion is written by `windcalc config init`.
	CurrentSchemaVersion = "1.0.0"

	// supportedSchemaConstraint accepts any 1.x config file.
	supportedSchemaConstraint = "^1.0.0"
)

// Output format names.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// configFileName is the file name inside the config directory.
const configFileName = "config.yaml"

// Config is the full windcalc configuration.
type Config struct {
	Version    string           `yaml:"version"`
	Calculator CalculatorConfig `yaml:"calculator"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`

	// configPath is the global file this Config was loaded from.
	configPath string
}

// CalculatorConfig holds the default form inputs.
type CalculatorConfig struct {
	RotorDiameter       int     `yaml:"rotor_diameter"`
	AvailableAreaKm2    float64 `yaml:"available_area_km2"`
	SpacingFactor       float64 `yaml:"spacing_factor"`
	EfficiencyPct       int     `yaml:"efficiency_pct"`
	EnergyPatternFactor float64 `yaml:"energy_pattern_factor,omitempty"`
}

// OutputConfig holds display settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	PowerUnit     string `yaml:"power_unit"`
	EnergyUnit    string `yaml:"energy_unit"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
	Caller bool   `yaml:"caller,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	in := windcalc.DefaultInputs()
	return &Config{
		Version: CurrentSchemaVersion,
		Calculator: CalculatorConfig{
			RotorDiameter:    int(in.RotorDiameter),
			AvailableAreaKm2: in.AvailableAreaKm2,
			SpacingFactor:    in.SpacingFactor,
			EfficiencyPct:    windcalc.DefaultEfficiencyPct,
		},
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			PowerUnit:     string(windcalc.PowerKilowatt),
			EnergyUnit:    string(windcalc.EnergyMWhPerYear),
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// New returns the defaults overlaid with the global config file (when it
// exists and parses) and environment overrides. A broken config file is
// logged and ignored so the calculator still runs; `windcalc config validate`
// reports the problem.
func New() *Config {
	cfg := Default()

	path, err := GlobalConfigPath()
	if err == nil {
		cfg.configPath = path
		if loadErr := cfg.loadFile(path); loadErr != nil && !errors.Is(loadErr, os.ErrNotExist) {
			Logger().Warn().
				Err(loadErr).
				Str("path", path).
				Msg("ignoring unreadable config file")
		}
	}

	cfg.applyEnv()
	return cfg
}

// Load reads path strictly on top of the defaults and applies environment
// overrides. Unlike New, any read or parse error is returned.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadFile is Load without environment overrides: the file's own content on
// top of the defaults. Use it when the result is saved back to path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	cfg.configPath = path
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides fields from WINDCALC_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("WINDCALC_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("WINDCALC_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("WINDCALC_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("WINDCALC_OUTPUT_FORMAT"); v != "" {
		c.Output.DefaultFormat = v
	}
	if v := os.Getenv("WINDCALC_POWER_UNIT"); v != "" {
		c.Output.PowerUnit = v
	}
	if v := os.Getenv("WINDCALC_ENERGY_UNIT"); v != "" {
		c.Output.EnergyUnit = v
	}
}

// Path returns the file this Config was loaded from, or "".
func (c *Config) Path() string {
	return c.configPath
}

// Save writes the configuration as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// Validate checks every section and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error

	if err := validateSchemaVersion(c.Version); err != nil {
		errs = append(errs, err)
	}

	if _, err := windcalc.ParseRotorDiameter(c.Calculator.RotorDiameter); err != nil {
		errs = append(errs, fmt.Errorf("calculator.rotor_diameter: %w", err))
	}
	if c.Calculator.AvailableAreaKm2 <= 0 {
		errs = append(errs, fmt.Errorf("calculator.available_area_km2 must be > 0, got %g",
			c.Calculator.AvailableAreaKm2))
	}
	if c.Calculator.SpacingFactor <= 0 {
		errs = append(errs, fmt.Errorf("calculator.spacing_factor must be > 0, got %g",
			c.Calculator.SpacingFactor))
	}
	if c.Calculator.EfficiencyPct <= 0 || c.Calculator.EfficiencyPct > 100 {
		errs = append(errs, fmt.Errorf("calculator.efficiency_pct must be in (0, 100], got %d",
			c.Calculator.EfficiencyPct))
	}
	if c.Calculator.EnergyPatternFactor < 0 {
		errs = append(errs, fmt.Errorf("calculator.energy_pattern_factor must be >= 0, got %g",
			c.Calculator.EnergyPatternFactor))
	}

	if !IsValidFormat(c.Output.DefaultFormat) {
		errs = append(errs, fmt.Errorf("output.default_format %q must be one of table, json, ndjson",
			c.Output.DefaultFormat))
	}
	if _, err := windcalc.ParsePowerUnit(c.Output.PowerUnit); err != nil {
		errs = append(errs, fmt.Errorf("output.power_unit %q: %w", c.Output.PowerUnit, err))
	}
	if _, err := windcalc.ParseEnergyUnit(c.Output.EnergyUnit); err != nil {
		errs = append(errs, fmt.Errorf("output.energy_unit %q: %w", c.Output.EnergyUnit, err))
	}

	if c.Logging.Level != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
			errs = append(errs, fmt.Errorf("logging.level: %w", err))
		}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be console or json", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// validateSchemaVersion accepts an empty version as current.
func validateSchemaVersion(version string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("version %q is not a valid semantic version: %w", version, err)
	}
	constraint, err := semver.NewConstraint(supportedSchemaConstraint)
	if err != nil {
		return fmt.Errorf("invalid schema constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("config version %s is not supported (want %s)", v, supportedSchemaConstraint)
	}
	return nil
}

// IsValidFormat reports whether format is a supported output format.
func IsValidFormat(format string) bool {
	switch format {
	case FormatTable, FormatJSON, FormatNDJSON:
		return true
	default:
		return false
	}
}

// Inputs converts the calculator defaults to pipeline inputs.
func (cc CalculatorConfig) Inputs() (windcalc.Inputs, error) {
	d, err := windcalc.ParseRotorDiameter(cc.RotorDiameter)
	if err != nil {
		return windcalc.Inputs{}, err
	}
	return windcalc.Inputs{
		RotorDiameter:       d,
		AvailableAreaKm2:    cc.AvailableAreaKm2,
		SpacingFactor:       cc.SpacingFactor,
		Efficiency:          float64(cc.EfficiencyPct) / 100,
		EnergyPatternFactor: cc.EnergyPatternFactor,
	}, nil
}

// Units parses the configured display units.
func (oc OutputConfig) Units() (windcalc.PowerUnit, windcalc.EnergyUnit, error) {
	p, err := windcalc.ParsePowerUnit(oc.PowerUnit)
	if err != nil {
		return "", "", fmt.Errorf("power unit %q: %w", oc.PowerUnit, err)
	}
	e, err := windcalc.ParseEnergyUnit(oc.EnergyUnit)
	if err != nil {
		return "", "", fmt.Errorf("energy unit %q: %w", oc.EnergyUnit, err)
	}
	return p, e, nil
}
