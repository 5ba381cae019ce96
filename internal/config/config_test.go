package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mycarta/wind-calculator-v3/internal/config"
	"github.com/mycarta/wind-calculator-v3/internal/windcalc"
)

// isolateHome points WINDCALC_HOME at a fresh temp dir and clears env overrides.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("WINDCALC_HOME", home)
	for _, k := range []string{
		"WINDCALC_LOG_LEVEL", "WINDCALC_LOG_FORMAT", "WINDCALC_LOG_FILE",
		"WINDCALC_OUTPUT_FORMAT", "WINDCALC_POWER_UNIT", "WINDCALC_ENERGY_UNIT",
	} {
		t.Setenv(k, "")
	}
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, config.CurrentSchemaVersion, cfg.Version)

	in, err := cfg.Calculator.Inputs()
	require.NoError(t, err)
	assert.Equal(t, windcalc.DefaultInputs(), in)

	p, e, err := cfg.Output.Units()
	require.NoError(t, err)
	assert.Equal(t, windcalc.PowerKilowatt, p)
	assert.Equal(t, windcalc.EnergyMWhPerYear, e)
}

func TestNew_NoFileUsesDefaults(t *testing.T) {
	home := isolateHome(t)

	cfg := config.New()

	assert.Equal(t, config.Default().Calculator, cfg.Calculator)
	assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.Path())
}

func TestNew_ReadsGlobalFile(t *testing.T) {
	home := isolateHome(t)
	writeFile(t, filepath.Join(home, "config.yaml"), `
version: "1.2.0"
calculator:
  rotor_diameter: 250
  available_area_km2: 500
  spacing_factor: 7.5
  efficiency_pct: 25
output:
  power_unit: MW
  energy_unit: GWh/year
`)

	cfg := config.New()

	assert.Equal(t, 250, cfg.Calculator.RotorDiameter)
	assert.Equal(t, 500.0, cfg.Calculator.AvailableAreaKm2)
	assert.Equal(t, 7.5, cfg.Calculator.SpacingFactor)
	assert.Equal(t, 25, cfg.Calculator.EfficiencyPct)
	assert.Equal(t, "MW", cfg.Output.PowerUnit)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
	require.NoError(t, cfg.Validate())
}

func TestNew_BrokenFileFallsBackToDefaults(t *testing.T) {
	home := isolateHome(t)
	writeFile(t, filepath.Join(home, "config.yaml"), "calculator: [not, a, map")

	cfg := config.New()

	assert.Equal(t, config.Default().Calculator, cfg.Calculator)
}

func TestLoad_ReturnsParseErrors(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "output: [unterminated")

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile_SkipsEnvOverrides(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "output:\n  default_format: table\n  power_unit: MW\n  energy_unit: GWh/year\n")
	t.Setenv("WINDCALC_POWER_UNIT", "GW")

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "MW", cfg.Output.PowerUnit)
	assert.Equal(t, path, cfg.Path())

	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "GW", cfg.Output.PowerUnit)

	_, err = config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvOverrides(t *testing.T) {
	isolateHome(t)
	t.Setenv("WINDCALC_POWER_UNIT", "GW")
	t.Setenv("WINDCALC_ENERGY_UNIT", "TWh/year")
	t.Setenv("WINDCALC_OUTPUT_FORMAT", "json")
	t.Setenv("WINDCALC_LOG_LEVEL", "debug")

	cfg := config.New()

	assert.Equal(t, "GW", cfg.Output.PowerUnit)
	assert.Equal(t, "TWh/year", cfg.Output.EnergyUnit)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.Default()
	cfg.Calculator.RotorDiameter = 150
	cfg.Output.EnergyUnit = "GWh/year"
	require.NoError(t, cfg.Save(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 150, loaded.Calculator.RotorDiameter)
	assert.Equal(t, "GWh/year", loaded.Output.EnergyUnit)
	assert.Equal(t, path, loaded.Path())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*config.Config) {}},
		{name: "empty version accepted", mutate: func(c *config.Config) { c.Version = "" }},
		{name: "future major version", mutate: func(c *config.Config) { c.Version = "2.0.0" }, wantErr: "not supported"},
		{name: "garbage version", mutate: func(c *config.Config) { c.Version = "one" }, wantErr: "semantic version"},
		{name: "unknown diameter", mutate: func(c *config.Config) { c.Calculator.RotorDiameter = 120 }, wantErr: "rotor_diameter"},
		{name: "zero area", mutate: func(c *config.Config) { c.Calculator.AvailableAreaKm2 = 0 }, wantErr: "available_area_km2"},
		{name: "negative spacing", mutate: func(c *config.Config) { c.Calculator.SpacingFactor = -1 }, wantErr: "spacing_factor"},
		{name: "efficiency above 100", mutate: func(c *config.Config) { c.Calculator.EfficiencyPct = 101 }, wantErr: "efficiency_pct"},
		{name: "negative EPF", mutate: func(c *config.Config) { c.Calculator.EnergyPatternFactor = -1 }, wantErr: "energy_pattern_factor"},
		{name: "bad format", mutate: func(c *config.Config) { c.Output.DefaultFormat = "xml" }, wantErr: "default_format"},
		{name: "bad power unit", mutate: func(c *config.Config) { c.Output.PowerUnit = "hp" }, wantErr: "power_unit"},
		{name: "bad energy unit", mutate: func(c *config.Config) { c.Output.EnergyUnit = "J" }, wantErr: "energy_unit"},
		{name: "bad log level", mutate: func(c *config.Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "bad log format", mutate: func(c *config.Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetSet(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, cfg.Set("calculator.rotor_diameter", "200"))
	require.NoError(t, cfg.Set("calculator.spacing_factor", "7.25"))
	require.NoError(t, cfg.Set("Output.Power_Unit", "MW"))
	require.NoError(t, cfg.Set("logging.caller", "true"))

	got, err := cfg.Get("calculator.rotor_diameter")
	require.NoError(t, err)
	assert.Equal(t, "200", got)

	got, err = cfg.Get("calculator.spacing_factor")
	require.NoError(t, err)
	assert.Equal(t, "7.25", got)

	assert.Equal(t, "MW", cfg.Output.PowerUnit)
	assert.True(t, cfg.Logging.Caller)

	assert.ErrorIs(t, cfg.Set("plugins.aws", "x"), config.ErrUnknownKey)
	_, err = cfg.Get("nope")
	assert.ErrorIs(t, err, config.ErrUnknownKey)

	err = cfg.Set("calculator.efficiency_pct", "twenty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected an integer")
}

func TestKnownKeysSorted(t *testing.T) {
	keys := config.KnownKeys()
	require.NotEmpty(t, keys)
	assert.IsNonDecreasing(t, keys)
	assert.Contains(t, keys, "output.energy_unit")
}

func TestGlobalConfig(t *testing.T) {
	isolateHome(t)

	first := config.GetGlobalConfig()
	require.NotNil(t, first)
	assert.Same(t, first, config.GetGlobalConfig())

	replacement := config.Default()
	replacement.Output.DefaultFormat = config.FormatNDJSON
	config.SetGlobalConfig(replacement)

	assert.Equal(t, config.FormatNDJSON, config.GetOutputFormat(""))
	assert.Equal(t, config.FormatJSON, config.GetOutputFormat(config.FormatJSON))
}

func TestToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "json"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, "stderr", got.Output)
	assert.Empty(t, got.File)

	lc.File = "/var/log/windcalc.log"
	got = lc.ToLoggingConfig()
	assert.Equal(t, "file", got.Output)
	assert.Equal(t, lc.File, got.File)
}
