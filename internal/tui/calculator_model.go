package tui

import (
	"context"
	"math"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mycarta/wind-calculator-v3/internal/logging"
	"github.com/mycarta/wind-calculator-v3/internal/report"
	"github.com/mycarta/wind-calculator-v3/internal/windcalc"
)

// CalculatorState represents the current state of the calculator form.
type CalculatorState int

const (
	// CalculatorStateEditing is the normal state: the form and results are shown.
	CalculatorStateEditing CalculatorState = iota
	// CalculatorStateQuitting indicates the application is exiting.
	CalculatorStateQuitting
	// CalculatorStateError indicates the last recomputation failed.
	CalculatorStateError
)

// Field identifies one input of the form.
type Field int

// Form fields in display order.
const (
	FieldDiameter Field = iota
	FieldArea
	FieldSpacing
	FieldEfficiency
	FieldPowerUnit
	FieldEnergyUnit

	fieldCount
)

// String returns the field caption.
func (f Field) String() string {
	switch f {
	case FieldDiameter:
		return "Turbine Rotor Diameter (m)"
	case FieldArea:
		return "Available Area (km²)"
	case FieldSpacing:
		return "Turbine Density Factor (Spacing Factor)"
	case FieldEfficiency:
		return "Overall Conversion Efficiency (%)"
	case FieldPowerUnit:
		return "Power unit"
	case FieldEnergyUnit:
		return "Energy unit"
	default:
		return "unknown"
	}
}

// spacingDecimals is the slider resolution for the spacing factor.
const spacingDecimals = 1

// FormValues is the state of every form input.
type FormValues struct {
	Diameter      windcalc.RotorDiameter
	AreaKm2       float64
	SpacingFactor float64
	EfficiencyPct int
	PowerUnit     windcalc.PowerUnit
	EnergyUnit    windcalc.EnergyUnit

	// EnergyPatternFactor is not editable in the form; zero means Rayleigh.
	EnergyPatternFactor float64
}

// DefaultFormValues returns the form's preselected values.
func DefaultFormValues() FormValues {
	in := windcalc.DefaultInputs()
	return FormValues{
		Diameter:      in.RotorDiameter,
		AreaKm2:       in.AvailableAreaKm2,
		SpacingFactor: in.SpacingFactor,
		EfficiencyPct: windcalc.DefaultEfficiencyPct,
		PowerUnit:     windcalc.PowerKilowatt,
		EnergyUnit:    windcalc.EnergyMWhPerYear,
	}
}

// Inputs converts the form values to pipeline inputs.
func (v FormValues) Inputs() windcalc.Inputs {
	return windcalc.Inputs{
		RotorDiameter:       v.Diameter,
		AvailableAreaKm2:    v.AreaKm2,
		SpacingFactor:       v.SpacingFactor,
		Efficiency:          float64(v.EfficiencyPct) / 100,
		EnergyPatternFactor: v.EnergyPatternFactor,
	}
}

// clamped returns v with every field inside the widget bounds. Unknown
// diameters and units fall back to the defaults.
func (v FormValues) clamped() FormValues {
	def := DefaultFormValues()
	if !v.Diameter.Valid() {
		v.Diameter = def.Diameter
	}
	if !v.PowerUnit.Valid() {
		v.PowerUnit = def.PowerUnit
	}
	if !v.EnergyUnit.Valid() {
		v.EnergyUnit = def.EnergyUnit
	}
	v.AreaKm2 = clampFloat(v.AreaKm2, windcalc.MinAreaKm2, windcalc.MaxAreaKm2)
	v.SpacingFactor = clampFloat(v.SpacingFactor, windcalc.MinSpacingFactor, windcalc.MaxSpacingFactor)
	v.EfficiencyPct = max(windcalc.MinEfficiencyPct, min(v.EfficiencyPct, windcalc.MaxEfficiencyPct))
	return v
}

// ComputeFunc evaluates the pipeline. windcalc.Compute is the default.
type ComputeFunc func(windcalc.Inputs) (windcalc.Result, error)

// CalculatorModel is the Bubble Tea model for the interactive calculator.
// Every input change recomputes the result synchronously.
type CalculatorModel struct {
	ctx context.Context

	defaults FormValues
	values   FormValues
	focused  Field

	result windcalc.Result
	report report.Report

	state CalculatorState
	err   error

	keys keyMap
	help help.Model

	width  int
	height int

	compute ComputeFunc
}

// NewCalculatorModel creates a form seeded with initial, clamped to the widget
// bounds, and computes the first result.
func NewCalculatorModel(ctx context.Context, initial FormValues) *CalculatorModel {
	return NewCalculatorModelWithCompute(ctx, initial, windcalc.Compute)
}

// NewCalculatorModelWithCompute is NewCalculatorModel with a custom compute function.
func NewCalculatorModelWithCompute(ctx context.Context, initial FormValues, compute ComputeFunc) *CalculatorModel {
	if ctx == nil {
		ctx = context.Background()
	}
	values := initial.clamped()
	m := &CalculatorModel{
		ctx:      ctx,
		defaults: values,
		values:   values,
		state:    CalculatorStateEditing,
		keys:     newKeyMap(),
		help:     help.New(),
		width:    defaultWidth,
		height:   defaultHeight,
		compute:  compute,
	}
	m.recompute()
	return m
}

// Init initializes the model.
func (m *CalculatorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *CalculatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m *CalculatorModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state = CalculatorStateQuitting
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Reset):
		m.values = m.defaults
		m.recompute()

	case m.state == CalculatorStateError:
		// Only quit and reset leave the error screen.

	case key.Matches(msg, m.keys.Up):
		m.focused = (m.focused + fieldCount - 1) % fieldCount

	case key.Matches(msg, m.keys.Down):
		m.focused = (m.focused + 1) % fieldCount

	case key.Matches(msg, m.keys.Left):
		m.adjust(-1)

	case key.Matches(msg, m.keys.Right):
		m.adjust(1)
	}

	return m, nil
}

// adjust moves the focused field one step in dir and recomputes when the
// value changed.
func (m *CalculatorModel) adjust(dir int) {
	before := m.values
	v := &m.values

	switch m.focused {
	case FieldDiameter:
		v.Diameter = stepChoice(windcalc.Diameters(), v.Diameter, dir)
	case FieldArea:
		v.AreaKm2 = clampFloat(v.AreaKm2+float64(dir)*windcalc.AreaStepKm2,
			windcalc.MinAreaKm2, windcalc.MaxAreaKm2)
	case FieldSpacing:
		next := roundTo(v.SpacingFactor+float64(dir)*windcalc.SpacingFactorStep, spacingDecimals)
		v.SpacingFactor = clampFloat(next, windcalc.MinSpacingFactor, windcalc.MaxSpacingFactor)
	case FieldEfficiency:
		v.EfficiencyPct = max(windcalc.MinEfficiencyPct,
			min(v.EfficiencyPct+dir*windcalc.EfficiencyStepPct, windcalc.MaxEfficiencyPct))
	case FieldPowerUnit:
		v.PowerUnit = stepChoice(windcalc.PowerUnits(), v.PowerUnit, dir)
	case FieldEnergyUnit:
		v.EnergyUnit = stepChoice(windcalc.EnergyUnits(), v.EnergyUnit, dir)
	case fieldCount:
	}

	if m.values != before {
		m.recompute()
	}
}

// recompute evaluates the pipeline for the current values and rebuilds the report.
func (m *CalculatorModel) recompute() {
	in := m.values.Inputs()
	log := logging.FromContext(m.ctx)

	var rep report.Report
	result, err := m.compute(in)
	if err == nil {
		rep, err = report.Build(result, m.values.PowerUnit, m.values.EnergyUnit)
	}
	if err != nil {
		log.Debug().Err(err).Str("inputs", in.String()).Msg("recompute failed")
		m.err = err
		m.state = CalculatorStateError
		return
	}

	log.Debug().
		Str("inputs", in.String()).
		Int("turbines", result.TurbineCount).
		Msg("recomputed")
	m.result = result
	m.report = rep
	m.err = nil
	m.state = CalculatorStateEditing
}

// Values returns the current form values.
func (m *CalculatorModel) Values() FormValues { return m.values }

// Focused returns the field that arrow keys adjust.
func (m *CalculatorModel) Focused() Field { return m.focused }

// State returns the current state.
func (m *CalculatorModel) State() CalculatorState { return m.state }

// Err returns the last recomputation error.
func (m *CalculatorModel) Err() error { return m.err }

// Result returns the last successful result.
func (m *CalculatorModel) Result() windcalc.Result { return m.result }

// Report returns the display form of the last successful result.
func (m *CalculatorModel) Report() report.Report { return m.report }

// stepChoice moves dir positions through choices, stopping at either end.
func stepChoice[T comparable](choices []T, cur T, dir int) T {
	i := slices.Index(choices, cur)
	if i < 0 {
		return choices[0]
	}
	return choices[max(0, min(i+dir, len(choices)-1))]
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// keyMap holds the form's key bindings.
type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Reset key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "shift+tab"),
			key.WithHelp("↑/k", "previous field"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "tab"),
			key.WithHelp("↓/j/tab", "next field"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "-"),
			key.WithHelp("←/h", "decrease"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "+"),
			key.WithHelp("→/l", "increase"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Left, k.Right, k.Reset, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Left, k.Right},
		{k.Reset, k.Help, k.Quit},
	}
}
