package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mycarta/wind-calculator-v3/internal/cli"
	"github.com/mycarta/wind-calculator-v3/internal/windcalc"
	"github.com/mycarta/wind-calculator-v3/pkg/version"
)

func TestRun(t *testing.T) {
	// run() parses os.Args, so only its presence is checked here; the
	// commands themselves are covered in internal/cli.
	t.Run("run function exists", func(_ *testing.T) {
		_ = run
	})
}

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		if assert.NotNil(t, root) {
			assert.Equal(t, "windcalc", root.Use)
			assert.Equal(t, version.GetVersion(), root.Version)
		}
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error returns 0", err: nil, want: exitOK},
		{name: "generic error", err: errors.New("boom"), want: exitError},
		{name: "out of range input", err: fmt.Errorf("%w: area", cli.ErrOutOfRange), want: exitError},
		{name: "unknown diameter", err: &windcalc.EnumerationError{Diameter: 120}, want: exitUsage},
		{
			name: "wrapped unknown diameter",
			err:  fmt.Errorf("calc: %w", &windcalc.EnumerationError{Diameter: 175}),
			want: exitUsage,
		},
		{
			name: "unknown diameter from config file",
			err:  &cli.ConfigError{Err: &windcalc.EnumerationError{Diameter: 123}},
			want: exitError,
		},
		{
			name: "joined unknown diameter",
			err:  errors.Join(errors.New("outer"), &windcalc.EnumerationError{Diameter: 300}),
			want: exitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
