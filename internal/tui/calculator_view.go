package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mycarta/wind-calculator-v3/internal/report"
)

// View renders the current view.
func (m *CalculatorModel) View() string {
	switch m.state {
	case CalculatorStateQuitting:
		return ""

	case CalculatorStateError:
		return ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n" +
			SubtleStyle.Render("Press r to reset or q to quit.")

	case CalculatorStateEditing:
	}

	width := max(m.width-borderPadding, 0)
	parts := []string{
		RenderBanner(width),
		m.renderForm(),
		renderSection(m.report.Sections[0], nil),
		renderSection(m.report.Sections[1], m.report.Alert),
		m.help.View(m.keys),
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderForm renders one line per input, highlighting the focused field.
func (m *CalculatorModel) renderForm() string {
	var sb strings.Builder
	for f := Field(0); f < fieldCount; f++ {
		cursor := "  "
		label := LabelStyle.Render(fmt.Sprintf("%-*s", labelWidth, f.String()))
		value := fmt.Sprintf("%s %s %s", IconArrowLeft, m.fieldValue(f), IconArrowRight)
		if f == m.focused {
			cursor = FocusedStyle.Render(IconCursor) + " "
			value = FocusedStyle.Render(value)
		} else {
			value = ValueStyle.Render(value)
		}
		sb.WriteString(cursor + label + value + "\n")
	}
	return sb.String()
}

// fieldValue formats the value of f for the form.
func (m *CalculatorModel) fieldValue(f Field) string {
	v := m.values
	switch f {
	case FieldDiameter:
		return strconv.Itoa(int(v.Diameter))
	case FieldArea:
		return strconv.FormatFloat(v.AreaKm2, 'f', -1, 64)
	case FieldSpacing:
		return strconv.FormatFloat(v.SpacingFactor, 'f', 2, 64)
	case FieldEfficiency:
		return strconv.Itoa(v.EfficiencyPct)
	case FieldPowerUnit:
		return string(v.PowerUnit)
	case FieldEnergyUnit:
		return string(v.EnergyUnit)
	default:
		return ""
	}
}

// RenderBanner renders the title and the methodology/data citation.
func RenderBanner(width int) string {
	banner := InfoStyle
	if width > 0 {
		banner = banner.Width(width)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render(report.Title),
		banner.Render(report.Citation),
	)
}

// RenderReport renders a report with styling but without the form, for
// styled non-interactive output.
func RenderReport(rep report.Report) string {
	parts := []string{RenderBanner(0)}
	for _, s := range rep.Sections {
		var alert *report.Alert
		if s.Title == report.SectionSite {
			alert = rep.Alert
		}
		parts = append(parts, renderSection(s, alert))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}

// renderSection renders a section title, an optional alert, and its lines.
func renderSection(s report.Section, alert *report.Alert) string {
	var sb strings.Builder
	sb.WriteString(SectionStyle.Render(s.Title))
	sb.WriteString("\n")
	if alert != nil {
		sb.WriteString(RenderAlert(*alert))
		sb.WriteString("\n")
	}
	for _, l := range s.Lines {
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", labelWidth, l.Label+":")))
		sb.WriteString(ValueStyle.Render(l.Display))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderAlert renders the spacing-efficiency advisory.
func RenderAlert(a report.Alert) string {
	return WarningStyle.Render(fmt.Sprintf("%s %s: %s", IconWarning, a.Title, a.Message))
}
