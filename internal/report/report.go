// Package report turns a windcalc.Result into the labelled, unit-scaled
// display lines shown by the CLI and the interactive form, and renders them
// as a table, JSON, or NDJSON.
package report

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/mycarta/wind-calculator-v3/internal/windcalc"
)

// Title is the application heading.
const Title = "Offshore Wind Calculator"

// Citation credits the methodology and the lookup-table data.
const Citation = "Methodology: Ginsberg (2019) Swept Area Method | " +
	"Data: von Krauland et al. (2023) Northeast Atlantic US"

// Section titles.
const (
	SectionSingleTurbine = "Single Turbine Output"
	SectionSite          = "Site Output"
)

// Spacing-efficiency alert thresholds.
const (
	alertSpacingBelow      = 6.5
	alertEfficiencyPctOver = 25.0
)

// AlertTitle and AlertMessage are shown when SpacingAlert is true.
const (
	AlertTitle   = "Spacing-Efficiency Alert"
	AlertMessage = "Tight spacing (F < 6.5D) increases wake losses. " +
		"Consider reducing efficiency to ≤ 25% for more realistic estimates."
)

// ErrUnsupportedFormat is returned by the renderers for an unknown format.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Line is one labelled quantity.
type Line struct {
	// Key is a stable machine name, e.g. "site_power".
	Key string `json:"key"`
	// Label is the human-readable caption.
	Label string `json:"label"`
	// Value is the quantity in Unit (already scaled for power and energy).
	Value float64 `json:"value"`
	// Unit is empty for dimensionless quantities.
	Unit string `json:"unit,omitempty"`
	// Display is Value formatted with separators and Unit.
	Display string `json:"display"`
	// Hint explains where the value comes from.
	Hint string `json:"hint,omitempty"`
}

// Section groups related lines under a heading.
type Section struct {
	Title string `json:"title"`
	Lines []Line `json:"lines"`
}

// Alert is an advisory message that never changes computed values.
type Alert struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Report is the display form of one calculation.
type Report struct {
	PowerUnit  windcalc.PowerUnit  `json:"power_unit"`
	EnergyUnit windcalc.EnergyUnit `json:"energy_unit"`
	Result     windcalc.Result     `json:"result"`
	Sections   []Section           `json:"sections"`
	Alert      *Alert              `json:"alert,omitempty"`
}

// SpacingAlert reports whether tight spacing is paired with an optimistic
// efficiency: F < 6.5 and efficiency above 25 %.
func SpacingAlert(spacingFactor, efficiencyPct float64) bool {
	return spacingFactor < alertSpacingBelow && efficiencyPct > alertEfficiencyPctOver
}

// Build formats r for display in the given units.
func Build(r windcalc.Result, powerUnit windcalc.PowerUnit, energyUnit windcalc.EnergyUnit) (Report, error) {
	if !powerUnit.Valid() {
		return Report{}, fmt.Errorf("power unit %q: %w", powerUnit, windcalc.ErrUnknownUnit)
	}
	if !energyUnit.Valid() {
		return Report{}, fmt.Errorf("energy unit %q: %w", energyUnit, windcalc.ErrUnknownUnit)
	}

	b := &builder{p: powerUnit, e: energyUnit}
	effLabel := efficiencyLabel(r.Efficiency)

	single := Section{Title: SectionSingleTurbine}
	single.Lines = []Line{
		b.plain("hub_height", "Hub Height", r.HubHeightM, "m", 0,
			"Hub height assumed equal to rotor diameter for lookup tables"),
		b.fixed("air_density", "Air Density", r.AirDensity, "kg/m³", 3,
			"Density of air at hub height. Source: von Krauland et al. (2023)"),
		b.fixed("wind_speed", "Average Wind Speed", r.WindSpeed, "m/s", 2,
			"Average wind speed at hub height. Source: von Krauland et al. (2023), "+
				"Northeast Atlantic US offshore data (proxy for Scotian Shelf)"),
		b.fixed("energy_pattern_factor", "Energy Pattern Factor (EPF)", r.EnergyPatternFactor, "", 2,
			"Rayleigh distribution correction: ⟨v³⟩/⟨v⟩³ ≈ 1.91 for Weibull k=2."),
		b.plain("swept_area", "Swept Area", r.SweptArea, "m²", 2,
			"Area swept by the turbine blades: A = πD²/4"),
		b.plain("power_density", "Mean Power Density (EPF-adjusted)", r.PowerDensity, "W/m²", 0,
			"Mean power per unit rotor area: P̄ₐ = ½ρ × EPF × v̄³"),
		b.power("power", "Mean Power (EPF-adjusted)", r.PowerKW,
			"Mean power based on average wind speed and EPF"),
		b.energy("energy_non_derated", "Annual Energy Output (non-derated)", r.EnergyNonDerated,
			"Total annual energy output without losses"),
		b.energy("energy_derated", "Derated Annual Energy Output ("+effLabel+")", r.EnergyDerated,
			"Annual energy output accounting for all conversion losses"),
	}

	site := Section{Title: SectionSite}
	site.Lines = []Line{
		b.plain("available_area", "Available Area", r.AvailableAreaKm2, "km²", areaDecimals(r.AvailableAreaKm2),
			"Site area available for turbines"),
		b.fixed("spacing_factor", "Turbine Density Factor (F)", r.SpacingFactor, "", 2,
			"User-selected turbine density/spacing factor"),
		b.plain("turbine_spacing", "Turbine Spacing", r.TurbineSpacingM, "m", 0,
			"Center-to-center spacing = rotor diameter × F"),
		b.plain("turbines", "Installed Turbines", float64(r.TurbineCount), "", 0,
			"Number of turbines that fit: N = Area / (F × D)²"),
		b.power("site_power", "Total Mean Power (EPF-adjusted)", r.SitePowerKW,
			"Total mean power for all turbines on site"),
		b.energy("site_energy_non_derated", "Total Annual Energy Output (non-derated)", r.SiteEnergyNonDerated,
			"Total annual energy output for the site without losses"),
		b.energy("site_energy_derated", "Total Derated Annual Energy Output ("+effLabel+")", r.SiteEnergyDerated,
			"Total annual energy output for the site accounting for typical losses"),
	}

	if b.err != nil {
		return Report{}, b.err
	}

	rep := Report{
		PowerUnit:  powerUnit,
		EnergyUnit: energyUnit,
		Result:     r,
		Sections:   []Section{single, site},
	}
	if SpacingAlert(r.SpacingFactor, r.Efficiency*100) {
		rep.Alert = &Alert{Title: AlertTitle, Message: AlertMessage}
	}
	return rep, nil
}

// Line returns the line with the given key, if present.
func (r Report) Line(key string) (Line, bool) {
	for _, s := range r.Sections {
		for _, l := range s.Lines {
			if l.Key == key {
				return l, true
			}
		}
	}
	return Line{}, false
}

// builder accumulates lines and keeps the first scaling error.
type builder struct {
	p   windcalc.PowerUnit
	e   windcalc.EnergyUnit
	err error
}

// plain formats with thousand separators.
func (b *builder) plain(key, label string, v float64, unit string, decimals int, hint string) Line {
	return Line{Key: key, Label: label, Value: v, Unit: unit, Display: withUnit(windcalc.FormatFloat(v, decimals), unit), Hint: hint}
}

// fixed formats without separators.
func (b *builder) fixed(key, label string, v float64, unit string, decimals int, hint string) Line {
	return Line{Key: key, Label: label, Value: v, Unit: unit, Display: withUnit(strconv.FormatFloat(v, 'f', decimals, 64), unit), Hint: hint}
}

func (b *builder) power(key, label string, kw float64, hint string) Line {
	v, err := windcalc.ScalePower(kw, b.p)
	if err != nil && b.err == nil {
		b.err = err
	}
	return Line{Key: key, Label: label, Value: v, Unit: string(b.p), Display: withUnit(windcalc.FormatFloat(v, b.p.Decimals()), string(b.p)), Hint: hint}
}

func (b *builder) energy(key, label string, mwh float64, hint string) Line {
	v, err := windcalc.ScaleEnergy(mwh, b.e)
	if err != nil && b.err == nil {
		b.err = err
	}
	return Line{Key: key, Label: label, Value: v, Unit: string(b.e), Display: withUnit(windcalc.FormatFloat(v, b.e.Decimals()), string(b.e)), Hint: hint}
}

func withUnit(s, unit string) string {
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// efficiencyLabel renders a fraction as a whole percentage, e.g. "20% efficiency".
func efficiencyLabel(eff float64) string {
	return strconv.FormatFloat(eff*100, 'f', 0, 64) + "% efficiency"
}

// areaDecimals shows whole km² without decimals and anything else to 2 dp.
func areaDecimals(area float64) int {
	if area == float64(int64(area)) {
		return 0
	}
	return 2
}
