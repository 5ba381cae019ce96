package cli

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/mycarta/wind-calculator-v3/internal/config"
	"github.com/mycarta/wind-calculator-v3/internal/logging"
	"github.com/mycarta/wind-calculator-v3/internal/report"
	"github.com/mycarta/wind-calculator-v3/internal/tui"
	"github.com/mycarta/wind-calculator-v3/internal/windcalc"
)

// ErrOutOfRange is returned when a site input lies outside the calculator
// form's range and --allow-out-of-range was not given.
var ErrOutOfRange = errors.New("input outside the calculator's range")

// siteFlags are the inputs shared by calc and compare.
type siteFlags struct {
	area            float64
	spacing         float64
	efficiencyPct   float64
	epf             float64
	powerUnit       string
	energyUnit      string
	output          string
	allowOutOfRange bool

	// diameter is only registered by calc. compare sets everyDiameter
	// instead, since it evaluates each diameter in turn.
	diameter      int
	everyDiameter bool
}

// ConfigError reports an unusable value in the configuration file, as
// opposed to a bad command-line argument.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return "configured calculator defaults: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (f *siteFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.area, "area", 0, "available area in km² (default from config, 200)")
	cmd.Flags().Float64Var(&f.spacing, "spacing", 0, "turbine spacing factor F, in rotor diameters (default from config, 6)")
	cmd.Flags().Float64Var(&f.efficiencyPct, "efficiency", 0, "overall conversion efficiency in percent (default from config, 20)")
	cmd.Flags().Float64Var(&f.epf, "epf", 0, "energy pattern factor override (default 1.91, Rayleigh)")
	cmd.Flags().StringVar(&f.powerUnit, "power-unit", "", "power display unit: kW, MW, GW")
	cmd.Flags().StringVar(&f.energyUnit, "energy-unit", "", "energy display unit: MWh/year, GWh/year, TWh/year")
	cmd.Flags().StringVar(&f.output, "output", "", "output format: table, json, ndjson")
	cmd.Flags().BoolVar(&f.allowOutOfRange, "allow-out-of-range", false,
		"accept area, spacing and efficiency outside the interactive form's ranges")
}

// inputs overlays explicitly set flags on the configured calculator defaults.
func (f *siteFlags) inputs(cmd *cobra.Command, cfg *config.Config) (windcalc.Inputs, error) {
	calc := cfg.Calculator
	switch {
	case f.everyDiameter:
		calc.RotorDiameter = int(windcalc.DefaultDiameter)
	case cmd.Flags().Changed("diameter"):
		d, err := windcalc.ParseRotorDiameter(f.diameter)
		if err != nil {
			return windcalc.Inputs{}, err
		}
		calc.RotorDiameter = int(d)
	}

	in, err := calc.Inputs()
	if err != nil {
		return windcalc.Inputs{}, &ConfigError{Err: err}
	}
	if cmd.Flags().Changed("area") {
		in.AvailableAreaKm2 = f.area
	}
	if cmd.Flags().Changed("spacing") {
		in.SpacingFactor = f.spacing
	}
	if cmd.Flags().Changed("efficiency") {
		in.Efficiency = f.efficiencyPct / 100
	}
	if cmd.Flags().Changed("epf") {
		in.EnergyPatternFactor = f.epf
	}
	if err = checkFinite(in); err != nil {
		return windcalc.Inputs{}, err
	}
	if !f.allowOutOfRange {
		if err = checkFormRange(in); err != nil {
			return windcalc.Inputs{}, err
		}
	}
	return in, nil
}

// units resolves the display units from flags, falling back to config.
func (f *siteFlags) units(cfg *config.Config) (windcalc.PowerUnit, windcalc.EnergyUnit, error) {
	out := cfg.Output
	if f.powerUnit != "" {
		out.PowerUnit = f.powerUnit
	}
	if f.energyUnit != "" {
		out.EnergyUnit = f.energyUnit
	}
	return out.Units()
}

// format resolves and validates the output format.
func (f *siteFlags) format() (string, error) {
	format := config.GetOutputFormat(f.output)
	if !config.IsValidFormat(format) {
		return "", fmt.Errorf("%w: %q (use table, json or ndjson)", report.ErrUnsupportedFormat, format)
	}
	return format, nil
}

// checkFinite rejects NaN and infinite inputs, with or without
// --allow-out-of-range.
func checkFinite(in windcalc.Inputs) error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"area", in.AvailableAreaKm2},
		{"spacing factor", in.SpacingFactor},
		{"efficiency", in.Efficiency},
		{"energy pattern factor", in.EnergyPatternFactor},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number, got %g", ErrOutOfRange, v.name, v.value)
		}
	}
	return nil
}

// checkFormRange rejects inputs the interactive form could not produce.
func checkFormRange(in windcalc.Inputs) error {
	// Back to percent without float noise: 0.28*100 is 28.000000000000004.
	pct := math.Round(in.Efficiency*100*1e9) / 1e9
	switch {
	case in.AvailableAreaKm2 < windcalc.MinAreaKm2 || in.AvailableAreaKm2 > windcalc.MaxAreaKm2:
		return fmt.Errorf("%w: area %g km² not in [%g, %g]; use --allow-out-of-range",
			ErrOutOfRange, in.AvailableAreaKm2, windcalc.MinAreaKm2, windcalc.MaxAreaKm2)
	case in.SpacingFactor < windcalc.MinSpacingFactor || in.SpacingFactor > windcalc.MaxSpacingFactor:
		return fmt.Errorf("%w: spacing factor %g not in [%g, %g]; use --allow-out-of-range",
			ErrOutOfRange, in.SpacingFactor, windcalc.MinSpacingFactor, windcalc.MaxSpacingFactor)
	case pct < windcalc.MinEfficiencyPct || pct > windcalc.MaxEfficiencyPct:
		return fmt.Errorf("%w: efficiency %g%% not in [%d, %d]; use --allow-out-of-range",
			ErrOutOfRange, pct, windcalc.MinEfficiencyPct, windcalc.MaxEfficiencyPct)
	}
	return nil
}

// NewCalcCmd creates the calc command: one calculation for one rotor diameter.
func NewCalcCmd() *cobra.Command {
	var (
		flags       siteFlags
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate power and energy for one turbine and the whole site",
		Long: `Calculates mean power density, mean power, and annual energy (non-derated and
derated) for a single turbine, then scales them by the number of turbines that
fit the available area on a square grid of side F × D.

Inputs not given as flags come from the calculator section of the config file.`,
		Example: `  # Defaults
  windcalc calc

  # 200 m rotors at 8D spacing, JSON output
  windcalc calc --diameter 200 --spacing 8 --output json

  # Explore outside the form's ranges
  windcalc calc --area 5000 --spacing 2.5 --allow-out-of-range`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()

			in, err := flags.inputs(cmd, cfg)
			if err != nil {
				return err
			}

			powerUnit, energyUnit, err := flags.units(cfg)
			if err != nil {
				return err
			}

			if interactive {
				return runCalculatorTUI(cmd, formValues(in, powerUnit, energyUnit))
			}

			format, err := flags.format()
			if err != nil {
				return err
			}

			rep, err := calculate(cmd, in, powerUnit, energyUnit)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), format, rep)
		},
	}

	cmd.Flags().IntVar(&flags.diameter, "diameter", 0,
		"rotor diameter in metres: 100, 150, 200, 250 (default from config, 100)")
	flags.register(cmd)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "open the interactive form seeded with these inputs")

	return cmd
}

// calculate runs the pipeline and builds the display report.
func calculate(cmd *cobra.Command, in windcalc.Inputs, p windcalc.PowerUnit, e windcalc.EnergyUnit) (report.Report, error) {
	log := logging.FromContext(cmd.Context())

	result, err := windcalc.Compute(in)
	if err != nil {
		log.Debug().Err(err).Str("inputs", in.String()).Msg("calculation failed")
		return report.Report{}, err
	}
	log.Debug().
		Str(logging.FieldOperation, "compute").
		Str("inputs", in.String()).
		Int("turbines", result.TurbineCount).
		Float64("site_power_kw", result.SitePowerKW).
		Msg("calculation complete")

	return report.Build(result, p, e)
}

// writeReport renders rep; table output is styled when stdout is a terminal.
func writeReport(w io.Writer, format string, rep report.Report) error {
	if format != config.FormatTable {
		return report.Render(w, format, rep)
	}
	switch tui.DetectOutputMode(false, false, false) {
	case tui.OutputModeInteractive, tui.OutputModeStyled:
		_, err := io.WriteString(w, tui.RenderReport(rep))
		return err
	case tui.OutputModePlain:
		return report.RenderTable(w, rep)
	default:
		return report.RenderTable(w, rep)
	}
}

// formValues converts resolved inputs to the interactive form's seed.
func formValues(in windcalc.Inputs, p windcalc.PowerUnit, e windcalc.EnergyUnit) tui.FormValues {
	return tui.FormValues{
		Diameter:            in.RotorDiameter,
		AreaKm2:             in.AvailableAreaKm2,
		SpacingFactor:       in.SpacingFactor,
		EfficiencyPct:       int(math.Round(in.Efficiency * 100)),
		PowerUnit:           p,
		EnergyUnit:          e,
		EnergyPatternFactor: in.EnergyPatternFactor,
	}
}
