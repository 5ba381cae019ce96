// Command windcalc is the offshore wind Swept Area Method calculator.
package main

import (
	"errors"
	"os"

	"github.com/mycarta/wind-calculator-v3/internal/cli"
	"github.com/mycarta/wind-calculator-v3/internal/windcalc"
	"github.com/mycarta/wind-calculator-v3/pkg/version"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	// exitUsage is returned for a --diameter outside the lookup tables.
	exitUsage = 2
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps its error to an exit code.
// Cobra has already printed the error.
func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	return exitCode(root.Execute())
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	// A bad diameter in the config file is a configuration error, not a bad argument.
	var cfgErr *cli.ConfigError
	if errors.As(err, &cfgErr) {
		return exitError
	}
	var enumErr *windcalc.EnumerationError
	if errors.As(err, &enumErr) {
		return exitUsage
	}
	return exitError
}
