package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mycarta/wind-calculator-v3/internal/config"
	"github.com/mycarta/wind-calculator-v3/internal/report"
)

// NewTablesCmd creates the tables command, which prints the hub-height air
// density and wind speed used for each rotor diameter.
func NewTablesCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Show the hub-height lookup tables",
		Example: `  windcalc tables
  windcalc tables --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := config.GetOutputFormat(output)
			if !config.IsValidFormat(format) {
				return fmt.Errorf("%w: %q (use table, json or ndjson)", report.ErrUnsupportedFormat, format)
			}
			rows, err := report.LookupRows()
			if err != nil {
				return err
			}
			return report.RenderLookupTables(cmd.OutOrStdout(), format, rows)
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "output format: table, json, ndjson")
	return cmd
}
