package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mycarta/wind-calculator-v3/internal/config"
)

func keysHint() string {
	return "known keys:\n  " + strings.Join(config.KnownKeys(), "\n  ")
}

// NewConfigGetCmd creates the config get command, which prints one value of
// the effective configuration.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a configuration value",
		Long:  "Prints the effective value of a dotted configuration key.\n\n" + keysHint(),
		Example: `  windcalc config get calculator.rotor_diameter
  windcalc config get output.power_unit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			cmd.Println(v)
			return nil
		},
	}
}

// NewConfigSetCmd creates the config set command. The updated file is
// validated before it is written.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  "Sets a dotted configuration key in the config file, creating the file if needed.\n\n" + keysHint(),
		Example: `  windcalc config set calculator.rotor_diameter 200
  windcalc config set output.energy_unit TWh/year`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			path, err := config.GlobalConfigPath()
			if err != nil {
				return err
			}

			// WINDCALC_* overrides are per run and must not end up in the file.
			cfg, err := config.LoadFile(path)
			if errors.Is(err, os.ErrNotExist) {
				cfg, err = config.Default(), nil
			}
			if err != nil {
				return err
			}
			if err = cfg.Set(key, value); err != nil {
				return err
			}
			if err = cfg.Validate(); err != nil {
				return fmt.Errorf("refusing to save invalid configuration: %w", err)
			}

			if err = cfg.Save(path); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			logger.Debug().Str("key", key).Str("value", value).Str("path", path).Msg("config value set")
			cmd.Printf("Set %s = %s\n", key, value)
			return nil
		},
	}
}

// NewConfigListCmd creates the config list command.
func NewConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			for _, key := range config.KnownKeys() {
				v, err := cfg.Get(key)
				if err != nil {
					return err
				}
				cmd.Printf("%s = %s\n", key, v)
			}
			return nil
		},
	}
}
