package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func envOf(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestDetectOutputMode(t *testing.T) {
	tests := []struct {
		name       string
		forceColor bool
		noColor    bool
		plain      bool
		isTTY      bool
		env        map[string]string
		want       OutputMode
	}{
		{name: "tty", isTTY: true, want: OutputModeInteractive},
		{name: "pipe", isTTY: false, want: OutputModePlain},
		{name: "pipe with force color", forceColor: true, want: OutputModeStyled},
		{name: "plain flag on tty", plain: true, isTTY: true, want: OutputModePlain},
		{name: "no-color flag on tty", noColor: true, isTTY: true, want: OutputModePlain},
		{name: "NO_COLOR env", isTTY: true, env: map[string]string{"NO_COLOR": "1"}, want: OutputModePlain},
		{name: "dumb terminal", isTTY: true, env: map[string]string{"TERM": "dumb"}, want: OutputModePlain},
		{name: "CI on tty", isTTY: true, env: map[string]string{"CI": "true"}, want: OutputModeStyled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectOutputMode(tt.forceColor, tt.noColor, tt.plain, tt.isTTY, envOf(tt.env))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputMode_String(t *testing.T) {
	assert.Equal(t, "plain", OutputModePlain.String())
	assert.Equal(t, "styled", OutputModeStyled.String())
	assert.Equal(t, "interactive", OutputModeInteractive.String())
	assert.Equal(t, "unknown", OutputMode(42).String())
}
