package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mycarta/wind-calculator-v3/internal/config"
	"github.com/mycarta/wind-calculator-v3/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the windcalc CLI.
// It loads configuration (plus an optional --config overlay), wires up
// logging and tracing, and registers the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:   "windcalc",
		Short: "Offshore wind power and energy calculator",
		Long: `windcalc estimates the mean power and annual energy of an offshore wind farm
with the Swept Area Method (Ginsberg 2019), using hub-height air density and
wind speed from von Krauland et al. (2023).`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "YAML file merged over ~/.windcalc/config.yaml")

	cmd.AddCommand(
		NewCalcCmd(), NewTUICmd(), NewCompareCmd(), NewTablesCmd(),
		newConfigCmd(),
	)

	return cmd
}

// loadConfig resets the global configuration from disk and applies the
// --config overlay when given.
func loadConfig(cmd *cobra.Command) error {
	overlay, _ := cmd.Flags().GetString("config")
	cfg, err := config.NewWithOverlay(overlay)
	if err != nil {
		return fmt.Errorf("loading config overlay: %w", err)
	}
	config.SetGlobalConfig(cfg)
	return nil
}

const rootCmdExample = `  # Default site: 100 m rotors on 200 km² at 6D spacing
  windcalc calc

  # 250 m rotors, 500 km², 7.5D spacing, 25 % efficiency, in GW and TWh/year
  windcalc calc --diameter 250 --area 500 --spacing 7.5 --efficiency 25 \
    --power-unit GW --energy-unit TWh/year

  # Same site for every rotor size, as JSON
  windcalc compare --area 500 --output json

  # Interactive form
  windcalc tui

  # Show the hub-height lookup tables
  windcalc tables

  # Initialize configuration
  windcalc config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
