// Package tui provides the interactive calculator form and the lipgloss
// styling shared with the styled (non-interactive) CLI output.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette (ANSI 256).
const (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("250")
	ColorValue     = lipgloss.Color("255")
	ColorWarning   = lipgloss.Color("208")
	ColorMuted     = lipgloss.Color("243")
	ColorBorder    = lipgloss.Color("238")
	ColorHighlight = lipgloss.Color("33")
	ColorError     = lipgloss.Color("196")
)

// Glyphs.
const (
	IconWarning    = "⚠"
	IconCursor     = "›"
	IconArrowLeft  = "◀"
	IconArrowRight = "▶"
)

// Layout.
const (
	labelWidth    = 44
	borderPadding = 4
	defaultWidth  = 80
	defaultHeight = 24
)

//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeader).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorBorder)

	LabelStyle = lipgloss.NewStyle().Foreground(ColorLabel)

	ValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorValue)

	SubtleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	FocusedStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHighlight)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorWarning).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
)
