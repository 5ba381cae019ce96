package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mycarta/wind-calculator-v3/internal/config"
	"github.com/mycarta/wind-calculator-v3/internal/logging"
	"github.com/mycarta/wind-calculator-v3/internal/report"
	"github.com/mycarta/wind-calculator-v3/internal/windcalc"
)

// NewCompareCmd creates the compare command: the same site evaluated for
// every supported rotor diameter.
func NewCompareCmd() *cobra.Command {
	flags := siteFlags{everyDiameter: true}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare every rotor diameter on the same site",
		Long: `Runs the calculation once per supported rotor diameter (100, 150, 200 and
250 m) with the same area, spacing factor and efficiency, and prints one row
per diameter.`,
		Example: `  windcalc compare
  windcalc compare --area 500 --spacing 8 --power-unit GW --energy-unit TWh/year
  windcalc compare --output ndjson`,
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
			format, err := flags.format()
			if err != nil {
				return err
			}

			results, err := computeAllDiameters(cmd.Context(), in)
			if err != nil {
				return err
			}
			rows, err := report.BuildComparison(results, powerUnit, energyUnit)
			if err != nil {
				return err
			}
			if err = report.RenderComparison(cmd.OutOrStdout(), format, rows); err != nil {
				return err
			}
			if format == config.FormatTable {
				return writeComparisonAlert(cmd.OutOrStdout(), in)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// computeAllDiameters runs Compute for every diameter concurrently and
// returns the results in ascending diameter order.
func computeAllDiameters(ctx context.Context, base windcalc.Inputs) ([]windcalc.Result, error) {
	log := logging.FromContext(ctx)
	diameters := windcalc.Diameters()
	results := make([]windcalc.Result, len(diameters))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, d := range diameters {
		i, d := i, d
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			in := base
			in.RotorDiameter = d
			r, err := windcalc.Compute(in)
			if err != nil {
				return fmt.Errorf("rotor diameter %s: %w", d, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Debug().Err(err).Str(logging.FieldOperation, "compare").Msg("comparison failed")
		return nil, err
	}

	sort.Slice(results, func(a, b int) bool { return results[a].RotorDiameter < results[b].RotorDiameter })
	log.Debug().
		Str(logging.FieldOperation, "compare").
		Int("diameters", len(results)).
		Msg("comparison complete")
	return results, nil
}

// writeComparisonAlert prints the spacing-efficiency alert below the table.
// The alert depends only on spacing and efficiency, so it applies to every row.
func writeComparisonAlert(w io.Writer, in windcalc.Inputs) error {
	if !report.SpacingAlert(in.SpacingFactor, in.Efficiency*100) {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n⚠ %s: %s\n", report.AlertTitle, report.AlertMessage); err != nil {
		return fmt.Errorf("writing alert: %w", err)
	}
	return nil
}
