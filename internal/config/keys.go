package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownKey is returned by Get and Set for keys outside KnownKeys.
var ErrUnknownKey = errors.New("unknown configuration key")

// field binds a dotted key to a Config field.
type field struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

//nolint:gochecknoglobals // Compile-time constant lookup table.
var fields = map[string]field{
	"version": {
		get: func(c *Config) string { return c.Version },
		set: func(c *Config, v string) error { c.Version = v; return nil },
	},
	"calculator.rotor_diameter": {
		get: func(c *Config) string { return strconv.Itoa(c.Calculator.RotorDiameter) },
		set: func(c *Config, v string) error { return setInt(&c.Calculator.RotorDiameter, v) },
	},
	"calculator.available_area_km2": {
		get: func(c *Config) string { return formatFloat(c.Calculator.AvailableAreaKm2) },
		set: func(c *Config, v string) error { return setFloat(&c.Calculator.AvailableAreaKm2, v) },
	},
	"calculator.spacing_factor": {
		get: func(c *Config) string { return formatFloat(c.Calculator.SpacingFactor) },
		set: func(c *Config, v string) error { return setFloat(&c.Calculator.SpacingFactor, v) },
	},
	"calculator.efficiency_pct": {
		get: func(c *Config) string { return strconv.Itoa(c.Calculator.EfficiencyPct) },
		set: func(c *Config, v string) error { return setInt(&c.Calculator.EfficiencyPct, v) },
	},
	"calculator.energy_pattern_factor": {
		get: func(c *Config) string { return formatFloat(c.Calculator.EnergyPatternFactor) },
		set: func(c *Config, v string) error { return setFloat(&c.Calculator.EnergyPatternFactor, v) },
	},
	"output.default_format": {
		get: func(c *Config) string { return c.Output.DefaultFormat },
		set: func(c *Config, v string) error { c.Output.DefaultFormat = v; return nil },
	},
	"output.power_unit": {
		get: func(c *Config) string { return c.Output.PowerUnit },
		set: func(c *Config, v string) error { c.Output.PowerUnit = v; return nil },
	},
	"output.energy_unit": {
		get: func(c *Config) string { return c.Output.EnergyUnit },
		set: func(c *Config, v string) error { c.Output.EnergyUnit = v; return nil },
	},
	"logging.level": {
		get: func(c *Config) string { return c.Logging.Level },
		set: func(c *Config, v string) error { c.Logging.Level = v; return nil },
	},
	"logging.format": {
		get: func(c *Config) string { return c.Logging.Format },
		set: func(c *Config, v string) error { c.Logging.Format = v; return nil },
	},
	"logging.file": {
		get: func(c *Config) string { return c.Logging.File },
		set: func(c *Config, v string) error { c.Logging.File = v; return nil },
	},
	"logging.caller": {
		get: func(c *Config) string { return strconv.FormatBool(c.Logging.Caller) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("expected a boolean, got %q", v)
			}
			c.Logging.Caller = b
			return nil
		},
	},
}

// KnownKeys returns every dotted key accepted by Get and Set, sorted.
func KnownKeys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the string form of the value at key.
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[strings.ToLower(key)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.get(c), nil
}

// Set parses value into the field at key. It does not validate the result;
// call Validate before saving.
func (c *Config) Set(key, value string) error {
	f, ok := fields[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err := f.set(c, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("expected an integer, got %q", v)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, v string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fmt.Errorf("expected a number, got %q", v)
	}
	*dst = f
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
