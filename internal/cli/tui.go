package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mycarta/wind-calculator-v3/internal/config"
	"github.com/mycarta/wind-calculator-v3/internal/logging"
	"github.com/mycarta/wind-calculator-v3/internal/tui"
)

// ErrNotInteractive is returned when the interactive form is requested but
// stdout is not a terminal.
var ErrNotInteractive = errors.New("interactive form needs a terminal; use `windcalc calc` instead")

// NewTUICmd creates the tui command: the interactive calculator form.
func NewTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive calculator form",
		Long: `Opens a terminal form with the rotor diameter, available area, spacing factor,
efficiency and display units. Results recalculate on every change.

The form starts from the calculator section of the config file.`,
		Example: `  windcalc tui

  # Same form, seeded from flags
  windcalc calc --diameter 200 --area 400 -i`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()

			in, err := cfg.Calculator.Inputs()
			if err != nil {
				return &ConfigError{Err: err}
			}
			powerUnit, energyUnit, err := cfg.Output.Units()
			if err != nil {
				return err
			}
			return runCalculatorTUI(cmd, formValues(in, powerUnit, energyUnit))
		},
	}
}

// runCalculatorTUI runs the form on the alternate screen until the user quits.
func runCalculatorTUI(cmd *cobra.Command, seed tui.FormValues) error {
	if tui.DetectOutputMode(false, false, false) != tui.OutputModeInteractive {
		return ErrNotInteractive
	}

	ctx := cmd.Context()
	logging.FromContext(ctx).Debug().
		Str(logging.FieldOperation, "tui").
		Int("diameter", int(seed.Diameter)).
		Msg("starting interactive form")

	p := tea.NewProgram(tui.NewCalculatorModel(ctx, seed), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
