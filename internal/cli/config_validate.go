package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mycarta/wind-calculator-v3/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file at ~/.windcalc/config.yaml for syntax and semantic correctness.

This includes:
- YAML syntax
- Schema version
- Calculator defaults (rotor diameter, area, spacing factor, efficiency)
- Output format and display units
- Logging level and format`,
		Example: `  # Validate current configuration
  windcalc config validate

  # Validate and show detailed information
  windcalc config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate loads the config file strictly, so parse errors surface
// here rather than being skipped as they are for normal commands.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg, err := loadConfigFile()
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// loadConfigFile strictly loads the global config file, or returns the
// defaults with environment overrides when the file does not exist.
func loadConfigFile() (*config.Config, error) {
	path, err := config.GlobalConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return config.New(), nil
	}
	return cfg, err
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	if cfg.Path() != "" {
		cmd.Printf("  Config file: %s\n", cfg.Path())
	}
	cmd.Printf("  Schema version: %s\n", cfg.Version)
	cmd.Printf("  Rotor diameter: %d m\n", cfg.Calculator.RotorDiameter)
	cmd.Printf("  Available area: %g km²\n", cfg.Calculator.AvailableAreaKm2)
	cmd.Printf("  Spacing factor: %gD\n", cfg.Calculator.SpacingFactor)
	cmd.Printf("  Efficiency: %d%%\n", cfg.Calculator.EfficiencyPct)
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Units: %s, %s\n", cfg.Output.PowerUnit, cfg.Output.EnergyUnit)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
}
