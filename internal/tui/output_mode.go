package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results reach the terminal.
type OutputMode int

const (
	// OutputModePlain writes unstyled tables (pipes, dumb terminals, NO_COLOR).
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes lipgloss-styled output without taking over the terminal.
	OutputModeStyled
	// OutputModeInteractive runs the Bubble Tea form.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModePlain:
		return "plain"
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// DetectOutputMode picks an OutputMode for stdout. plain and noColor force
// OutputModePlain; forceColor upgrades a non-TTY to OutputModeStyled.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	return detectOutputMode(forceColor, noColor, plain,
		term.IsTerminal(int(os.Stdout.Fd())), os.Getenv)
}

func detectOutputMode(forceColor, noColor, plain, isTTY bool, getenv func(string) string) OutputMode {
	if plain || noColor {
		return OutputModePlain
	}
	if getenv("NO_COLOR") != "" || getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if !isTTY {
		if forceColor {
			return OutputModeStyled
		}
		return OutputModePlain
	}
	if getenv("CI") != "" {
		return OutputModeStyled
	}
	return OutputModeInteractive
}
