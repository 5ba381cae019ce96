package windcalc

import "strings"

// PowerUnit is a display unit for power values computed in kW.
type PowerUnit string

// Supported power units.
const (
	PowerKilowatt PowerUnit = "kW"
	PowerMegawatt PowerUnit = "MW"
	PowerGigawatt PowerUnit = "GW"
)

// EnergyUnit is a display unit for energy values computed in MWh/year.
type EnergyUnit string

// Supported energy units.
const (
	EnergyMWhPerYear EnergyUnit = "MWh/year"
	EnergyGWhPerYear EnergyUnit = "GWh/year"
	EnergyTWhPerYear EnergyUnit = "TWh/year"
)

// Display precision for scaled values.
const (
	baseUnitDecimals   = 0
	scaledUnitDecimals = 3
)

// PowerUnits returns the supported power units in ascending magnitude.
func PowerUnits() []PowerUnit {
	return []PowerUnit{PowerKilowatt, PowerMegawatt, PowerGigawatt}
}

// EnergyUnits returns the supported energy units in ascending magnitude.
func EnergyUnits() []EnergyUnit {
	return []EnergyUnit{EnergyMWhPerYear, EnergyGWhPerYear, EnergyTWhPerYear}
}

// factor returns the multiplier from kW and whether u is recognized.
func (u PowerUnit) factor() (float64, bool) {
	switch u {
	case PowerKilowatt:
		return 1, true
	case PowerMegawatt:
		return 1e-3, true
	case PowerGigawatt:
		return 1e-6, true
	default:
		return 0, false
	}
}

// Valid reports whether u is a supported power unit.
func (u PowerUnit) Valid() bool {
	_, ok := u.factor()
	return ok
}

// Decimals returns the display precision: 0 for kW, 3 otherwise.
func (u PowerUnit) Decimals() int {
	if u == PowerKilowatt {
		return baseUnitDecimals
	}
	return scaledUnitDecimals
}

func (u EnergyUnit) factor() (float64, bool) {
	switch u {
	case EnergyMWhPerYear:
		return 1, true
	case EnergyGWhPerYear:
		return 1e-3, true
	case EnergyTWhPerYear:
		return 1e-6, true
	default:
		return 0, false
	}
}

// Valid reports whether u is a supported energy unit.
func (u EnergyUnit) Valid() bool {
	_, ok := u.factor()
	return ok
}

// Decimals returns the display precision: 0 for MWh/year, 3 otherwise.
func (u EnergyUnit) Decimals() int {
	if strings.HasPrefix(string(u), "MWh") {
		return baseUnitDecimals
	}
	return scaledUnitDecimals
}

// ScalePower converts a value in kW to unit.
func ScalePower(valueKW float64, unit PowerUnit) (float64, error) {
	f, ok := unit.factor()
	if !ok {
		return 0, ErrUnknownUnit
	}
	return valueKW * f, nil
}

// ScaleEnergy converts a value in MWh/year to unit.
func ScaleEnergy(valueMWh float64, unit EnergyUnit) (float64, error) {
	f, ok := unit.factor()
	if !ok {
		return 0, ErrUnknownUnit
	}
	return valueMWh * f, nil
}

// ParsePowerUnit parses a power unit name, case-insensitively.
func ParsePowerUnit(s string) (PowerUnit, error) {
	for _, u := range PowerUnits() {
		if strings.EqualFold(s, string(u)) {
			return u, nil
		}
	}
	return "", ErrUnknownUnit
}

// ParseEnergyUnit parses an energy unit name, case-insensitively. The short
// forms "MWh", "GWh" and "TWh" are accepted.
func ParseEnergyUnit(s string) (EnergyUnit, error) {
	s = strings.TrimSpace(s)
	for _, u := range EnergyUnits() {
		if strings.EqualFold(s, string(u)) || strings.EqualFold(s+"/year", string(u)) {
			return u, nil
		}
	}
	return "", ErrUnknownUnit
}
