package cli_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mycarta/wind-calculator-v3/internal/cli"
	"github.com/mycarta/wind-calculator-v3/internal/config"
	"github.com/mycarta/wind-calculator-v3/internal/report"
	"github.com/mycarta/wind-calculator-v3/internal/windcalc"
)

// setupCLITest isolates the config directory, forces plain output, and
// restores global state afterwards. It returns the config directory.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("WINDCALC_HOME", home)
	t.Setenv("WINDCALC_LOG_LEVEL", "error")
	t.Setenv("WINDCALC_LOG_FILE", "")
	t.Setenv("WINDCALC_OUTPUT_FORMAT", "")
	t.Setenv("WINDCALC_POWER_UNIT", "")
	t.Setenv("WINDCALC_ENERGY_UNIT", "")
	t.Setenv("NO_COLOR", "1")
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestCalc_Defaults(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "calc")
	require.NoError(t, err)

	assert.Contains(t, out, report.Title)
	assert.Contains(t, out, report.Citation)
	assert.Contains(t, out, report.SectionSingleTurbine)
	assert.Contains(t, out, report.SectionSite)
	assert.Contains(t, out, "6,511 kW")
	assert.Contains(t, out, "555")
	assert.Contains(t, out, "3,613,605 kW")
	assert.Contains(t, out, "6,330,885 MWh/year")
	assert.NotContains(t, out, report.AlertTitle)
}

func TestCalc_JSON(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "calc", "--diameter", "200", "--spacing", "8", "--output", "json")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, windcalc.RotorDiameter(200), rep.Result.RotorDiameter)
	assert.InDelta(t, 8.0, rep.Result.SpacingFactor, 1e-9)
	assert.Equal(t, 200_000_000/(1600*1600), rep.Result.TurbineCount)
	assert.Len(t, rep.Sections, 2)
	assert.Nil(t, rep.Alert)
}

func TestCalc_NDJSONWithAlert(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "calc", "--efficiency", "28", "--output", "ndjson")
	require.NoError(t, err)

	var last map[string]any
	var records int
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &last))
		records++
	}
	require.NoError(t, scanner.Err())
	assert.Greater(t, records, 1)
	assert.Equal(t, "alert", last["section"])
	assert.Equal(t, report.AlertTitle, last["title"])
}

func TestCalc_UnitsFromFlags(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "calc", "--power-unit", "GW", "--energy-unit", "TWh/year")
	require.NoError(t, err)
	assert.Contains(t, out, "3.614 GW")
	assert.Contains(t, out, "TWh/year")
}

func TestCalc_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "area below range", args: []string{"calc", "--area", "50"}, wantErr: cli.ErrOutOfRange},
		{name: "spacing above range", args: []string{"calc", "--spacing", "9.5"}, wantErr: cli.ErrOutOfRange},
		{name: "efficiency above range", args: []string{"calc", "--efficiency", "31"}, wantErr: cli.ErrOutOfRange},
		{name: "unknown diameter", args: []string{"calc", "--diameter", "120"}, wantErr: windcalc.ErrUnknownDiameter},
		{name: "unknown power unit", args: []string{"calc", "--power-unit", "TW"}, wantErr: windcalc.ErrUnknownUnit},
		{name: "unknown format", args: []string{"calc", "--output", "xml"}, wantErr: report.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCalc_UnknownDiameterIsEnumerationError(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "calc", "--diameter", "175")
	var enumErr *windcalc.EnumerationError
	require.ErrorAs(t, err, &enumErr)
	assert.Equal(t, windcalc.RotorDiameter(175), enumErr.Diameter)
}

func TestCalc_AllowOutOfRange(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "calc", "--area", "5000", "--allow-out-of-range", "--output", "json")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 5_000_000_000/(600*600), rep.Result.TurbineCount)
}

func TestCalc_EfficiencyUpperBoundAccepted(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "calc", "--efficiency", "30", "--output", "json")
	require.NoError(t, err)
}

func TestCalc_ConfigOverlay(t *testing.T) {
	setupCLITest(t)

	overlay := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(overlay, []byte(
		"calculator:\n  rotor_diameter: 250\n  available_area_km2: 200\n  spacing_factor: 6\n  efficiency_pct: 20\n",
	), 0o600))

	out, err := execute(t, "--config", overlay, "calc", "--output", "json")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, windcalc.RotorDiameter(250), rep.Result.RotorDiameter)
	assert.Equal(t, 88, rep.Result.TurbineCount)
}

func TestCalc_InteractiveNeedsTerminal(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "calc", "-i")
	assert.ErrorIs(t, err, cli.ErrNotInteractive)
}

func TestTUI_NeedsTerminal(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "tui")
	assert.ErrorIs(t, err, cli.ErrNotInteractive)
}

func TestCompare_JSON(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "compare", "--output", "json")
	require.NoError(t, err)

	var rows []report.ComparisonRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 4)

	wantTurbines := map[windcalc.RotorDiameter]int{100: 555, 150: 246, 200: 138, 250: 88}
	for i, row := range rows {
		assert.Equal(t, windcalc.Diameters()[i], row.RotorDiameter, "rows are in ascending diameter order")
		assert.Equal(t, wantTurbines[row.RotorDiameter], row.Turbines)
	}
}

func TestCompare_TableWithAlert(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "compare", "--spacing", "5", "--efficiency", "26")
	require.NoError(t, err)
	assert.Contains(t, out, report.Title)
	assert.Contains(t, out, report.AlertTitle)
}

func TestCompare_OutOfRange(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "compare", "--area", "2000")
	assert.ErrorIs(t, err, cli.ErrOutOfRange)
}

func TestTables(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "tables")
	require.NoError(t, err)
	assert.Contains(t, out, "von Krauland")
	assert.Contains(t, out, "0.986")
	assert.Contains(t, out, "10.25")

	out, err = execute(t, "tables", "--output", "json")
	require.NoError(t, err)
	var rows []report.LookupRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 4)
	assert.InDelta(t, 1.000, rows[0].AirDensity, 1e-9)
	assert.InDelta(t, 9.54, rows[0].WindSpeed, 1e-9)
}

func TestConfigInit(t *testing.T) {
	home := setupCLITest(t)

	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.FileExists(t, filepath.Join(home, "config.yaml"))

	_, err = execute(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigSetGetList(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "config", "set", "calculator.rotor_diameter", "200")
	require.NoError(t, err)
	assert.Contains(t, out, "Set calculator.rotor_diameter = 200")

	out, err = execute(t, "config", "get", "calculator.rotor_diameter")
	require.NoError(t, err)
	assert.Equal(t, "200", strings.TrimSpace(out))

	out, err = execute(t, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "calculator.rotor_diameter = 200")
	assert.Contains(t, out, "output.power_unit = kW")

	out, err = execute(t, "calc", "--output", "json")
	require.NoError(t, err)
	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, windcalc.RotorDiameter(200), rep.Result.RotorDiameter)
}

func TestConfigSet_Rejected(t *testing.T) {
	home := setupCLITest(t)

	_, err := execute(t, "config", "set", "calculator.rotor_diameter", "123")
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(home, "config.yaml"))

	_, err = execute(t, "config", "set", "no.such.key", "1")
	assert.ErrorIs(t, err, config.ErrUnknownKey)

	_, err = execute(t, "config", "get", "no.such.key")
	assert.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestConfigValidate(t *testing.T) {
	home := setupCLITest(t)

	out, err := execute(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	out, err = execute(t, "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Rotor diameter: 100 m")

	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("output: [unterminated\n"), 0o600))
	_, err = execute(t, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(content), 0o600))
}

func TestCalc_DiameterFlagWinsOverConfig(t *testing.T) {
	home := setupCLITest(t)
	writeConfig(t, home, "calculator:\n  rotor_diameter: 123\n  available_area_km2: 200\n  spacing_factor: 6\n  efficiency_pct: 20\n")

	out, err := execute(t, "calc", "--diameter", "200", "--output", "json")
	require.NoError(t, err)
	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, windcalc.RotorDiameter(200), rep.Result.RotorDiameter)

	_, err = execute(t, "compare", "--output", "json")
	require.NoError(t, err, "compare sets every diameter itself")

	_, err = execute(t, "calc", "--output", "json")
	var cfgErr *cli.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, windcalc.ErrUnknownDiameter)
}

func TestCalc_NonFiniteInputsRejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "NaN area", args: []string{"calc", "--area", "NaN", "--output", "json"}},
		{name: "NaN area out of range allowed", args: []string{"calc", "--area", "NaN", "--allow-out-of-range"}},
		{name: "infinite spacing", args: []string{"calc", "--spacing", "Inf", "--allow-out-of-range"}},
		{name: "NaN efficiency", args: []string{"calc", "--efficiency", "NaN"}},
		{name: "NaN epf", args: []string{"calc", "--epf", "NaN"}},
		{name: "NaN area in compare", args: []string{"compare", "--area", "NaN", "--allow-out-of-range"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, cli.ErrOutOfRange)
			assert.Contains(t, err.Error(), "finite")
		})
	}
}

func TestCalc_DiameterHelpHasNoHardDefault(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "calc", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--diameter")
	assert.NotContains(t, out, "(default 100)")
}

func TestConfigSet_DoesNotPersistEnvOverrides(t *testing.T) {
	home := setupCLITest(t)
	t.Setenv("WINDCALC_POWER_UNIT", "GW")

	_, err := execute(t, "config", "set", "calculator.rotor_diameter", "150")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "rotor_diameter: 150")
	assert.Contains(t, string(data), "power_unit: kW")
	assert.NotContains(t, string(data), "GW")
}

func TestConfigInit_CreatesMissingDirectory(t *testing.T) {
	setupCLITest(t)
	home := filepath.Join(t.TempDir(), "nested", "windcalc")
	t.Setenv("WINDCALC_HOME", home)

	_, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.DirExists(t, home)
	assert.FileExists(t, filepath.Join(home, "config.yaml"))
}
