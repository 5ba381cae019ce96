// Package windcalc implements the Swept Area Method for offshore wind power
// and energy estimates.
//
// A rotor diameter selects air density and mean wind speed from fixed lookup
// tables (von Krauland et al. 2023, Northeast Atlantic US offshore data). The
// pipeline then derives power density, swept area, mean power, annual energy
// (raw and derated) for one turbine, and scales them by the number of turbines
// that fit the available area on a square grid.
//
// Everything in this package is a pure function of its arguments and the
// read-only lookup tables, so it is safe for concurrent use.
package windcalc

import (
	"fmt"
	"strconv"
)

// RotorDiameter is a turbine rotor diameter in metres. Only the values
// returned by Diameters are valid lookup keys.
type RotorDiameter int

// Enumerated rotor diameters.
const (
	Diameter100 RotorDiameter = 100
	Diameter150 RotorDiameter = 150
	Diameter200 RotorDiameter = 200
	Diameter250 RotorDiameter = 250
)

// DefaultDiameter is the rotor diameter preselected by the calculator form.
const DefaultDiameter = Diameter100

// Diameters returns the enumerated rotor diameters in ascending order.
func Diameters() []RotorDiameter {
	return []RotorDiameter{Diameter100, Diameter150, Diameter200, Diameter250}
}

// ParseRotorDiameter converts metres to a RotorDiameter, returning an
// *EnumerationError if the value is not enumerated.
func ParseRotorDiameter(m int) (RotorDiameter, error) {
	d := RotorDiameter(m)
	if !d.Valid() {
		return 0, &EnumerationError{Diameter: d}
	}
	return d, nil
}

// Valid reports whether d is one of the enumerated diameters.
func (d RotorDiameter) Valid() bool {
	_, ok := airDensityByDiameter[d]
	return ok
}

// Meters returns the diameter as a float64 for arithmetic.
func (d RotorDiameter) Meters() float64 {
	return float64(d)
}

// HubHeight returns the hub height in metres. Hub height is assumed equal to
// the rotor diameter for the lookup tables.
func (d RotorDiameter) HubHeight() float64 {
	return float64(d)
}

// String returns a human-readable representation of the diameter.
func (d RotorDiameter) String() string {
	return strconv.Itoa(int(d)) + " m"
}

// Atmosphere holds the looked-up conditions at hub height.
type Atmosphere struct {
	AirDensity float64 `json:"air_density"` // kg/m³
	WindSpeed  float64 `json:"wind_speed"`  // m/s
}

// Inputs is the set of user inputs for one calculation.
type Inputs struct {
	// RotorDiameter selects the lookup table row.
	RotorDiameter RotorDiameter `json:"rotor_diameter"`

	// AvailableAreaKm2 is the site area in km².
	AvailableAreaKm2 float64 `json:"available_area_km2"`

	// SpacingFactor is the centre-to-centre spacing as a multiple of rotor diameter.
	SpacingFactor float64 `json:"spacing_factor"`

	// Efficiency is the overall conversion efficiency as a fraction. It is not
	// clamped; values above BetzLimit are accepted.
	Efficiency float64 `json:"efficiency"`

	// EnergyPatternFactor overrides EPFRayleigh when non-zero.
	EnergyPatternFactor float64 `json:"energy_pattern_factor,omitempty"`
}

// DefaultInputs returns the inputs preselected by the calculator form.
func DefaultInputs() Inputs {
	return Inputs{
		RotorDiameter:    DefaultDiameter,
		AvailableAreaKm2: DefaultAreaKm2,
		SpacingFactor:    DefaultSpacingFactor,
		Efficiency:       float64(DefaultEfficiencyPct) / 100,
	}
}

// epf returns the Energy Pattern Factor in effect for these inputs.
func (in Inputs) epf() float64 {
	if in.EnergyPatternFactor == 0 {
		return EPFRayleigh
	}
	return in.EnergyPatternFactor
}

// String returns a compact description of the inputs for logging.
func (in Inputs) String() string {
	return fmt.Sprintf("D=%d m, area=%g km², F=%g, η=%g",
		int(in.RotorDiameter), in.AvailableAreaKm2, in.SpacingFactor, in.Efficiency)
}

// Result holds every quantity derived by Compute. Site quantities are exactly
// TurbineCount times the matching single-turbine quantity.
type Result struct {
	// Echoed inputs.
	RotorDiameter       RotorDiameter `json:"rotor_diameter"`
	HubHeightM          float64       `json:"hub_height_m"`
	AvailableAreaKm2    float64       `json:"available_area_km2"`
	SpacingFactor       float64       `json:"spacing_factor"`
	Efficiency          float64       `json:"efficiency"`
	EnergyPatternFactor float64       `json:"energy_pattern_factor"`

	// Looked up.
	AirDensity float64 `json:"air_density"`
	WindSpeed  float64 `json:"wind_speed"`

	// Single turbine.
	PowerDensity     float64 `json:"power_density"`      // W/m²
	SweptArea        float64 `json:"swept_area"`         // m²
	PowerKW          float64 `json:"power_kw"`           // kW
	EnergyNonDerated float64 `json:"energy_non_derated"` // MWh/yr
	EnergyDerated    float64 `json:"energy_derated"`     // MWh/yr

	// Site.
	TurbineCount         int     `json:"turbines"`
	TurbineSpacingM      float64 `json:"turbine_spacing_m"`
	SitePowerKW          float64 `json:"site_power"`              // kW
	SiteEnergyNonDerated float64 `json:"site_energy_non_derated"` // MWh/yr
	SiteEnergyDerated    float64 `json:"site_energy_derated"`     // MWh/yr
}
