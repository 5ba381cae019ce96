package windcalc

import "math"

// AnnualPowerDensity returns the EPF-adjusted mean power density in W/m²:
//
//	P̄ₐ = ½ · ρ · EPF · v̄³
//
// windSpeed is rounded to two decimals before cubing and the result is
// rounded to the nearest integer, ties to even.
//
// Example: AnnualPowerDensity(4.47, 1.225, 1.91) returns 104.
func AnnualPowerDensity(windSpeed, airDensity, epf float64) float64 {
	v := roundDecimals(windSpeed, windSpeedDecimals)
	return math.RoundToEven(0.5 * airDensity * epf * v * v * v)
}

// SweptArea returns the rotor disk area in m², A = π(D/2)². No rounding.
func SweptArea(diameter float64) float64 {
	r := diameter / 2
	return math.Pi * r * r
}

// PowerKW returns the mean power of one turbine in kW, rounded to the
// nearest integer: P̄ = P̄ₐ · A / 1000.
func PowerKW(powerDensity, diameter float64) float64 {
	return math.RoundToEven(powerDensity * SweptArea(diameter) / WattsPerKilowatt)
}

// AnnualEnergyOutput returns the non-derated annual energy of one turbine in
// MWh/year, rounded to the nearest integer.
func AnnualEnergyOutput(powerKW float64) float64 {
	return math.RoundToEven(powerKW * HoursPerYear / KWhPerMWh)
}

// DeratedAnnualEnergyOutput returns the annual energy of one turbine after
// applying the overall conversion efficiency, in MWh/year rounded to the
// nearest integer. efficiency is used as given.
func DeratedAnnualEnergyOutput(powerKW, efficiency float64) float64 {
	return math.RoundToEven(powerKW * HoursPerYear * efficiency / KWhPerMWh)
}

// PossibleTurbineInstallations returns how many turbines fit in areaKm2 on a
// square grid with pitch spacingFactor × diameter:
//
//	N = ⌊area / (F · D)²⌋
//
// Boundary effects, irregular shapes and exclusion zones are ignored. The
// count is never negative; a degenerate grid cell yields zero.
func PossibleTurbineInstallations(areaKm2, diameter, spacingFactor float64) int {
	areaM2 := areaKm2 * SquareMetersPerKm2
	pitch := spacingFactor * diameter
	cell := pitch * pitch
	if cell <= 0 || areaM2 <= 0 {
		return 0
	}

	n := floorDiv(areaM2, cell)
	switch {
	case math.IsNaN(n):
		return 0
	case n >= math.MaxInt:
		return math.MaxInt
	}
	return int(n)
}

// Compute runs the full pipeline for in. The only failure is an
// *EnumerationError when in.RotorDiameter is not a table key; every other
// input, including physically meaningless ones, produces a well-defined result.
func Compute(in Inputs) (Result, error) {
	atm, err := Lookup(in.RotorDiameter)
	if err != nil {
		return Result{}, err
	}

	d := in.RotorDiameter.Meters()
	epf := in.epf()

	pd := AnnualPowerDensity(atm.WindSpeed, atm.AirDensity, epf)
	pk := PowerKW(pd, d)
	energy := AnnualEnergyOutput(pk)
	derated := DeratedAnnualEnergyOutput(pk, in.Efficiency)

	turbines := PossibleTurbineInstallations(in.AvailableAreaKm2, d, in.SpacingFactor)
	n := float64(turbines)

	return Result{
		RotorDiameter:       in.RotorDiameter,
		HubHeightM:          in.RotorDiameter.HubHeight(),
		AvailableAreaKm2:    in.AvailableAreaKm2,
		SpacingFactor:       in.SpacingFactor,
		Efficiency:          in.Efficiency,
		EnergyPatternFactor: epf,

		AirDensity: atm.AirDensity,
		WindSpeed:  atm.WindSpeed,

		PowerDensity:     pd,
		SweptArea:        SweptArea(d),
		PowerKW:          pk,
		EnergyNonDerated: energy,
		EnergyDerated:    derated,

		TurbineCount:         turbines,
		TurbineSpacingM:      d * in.SpacingFactor,
		SitePowerKW:          pk * n,
		SiteEnergyNonDerated: energy * n,
		SiteEnergyDerated:    derated * n,
	}, nil
}

// roundDecimals rounds x to the given number of decimals, ties to even.
func roundDecimals(x float64, decimals int) float64 {
	const base = 10
	scale := math.Pow(base, float64(decimals))
	return math.RoundToEven(x*scale) / scale
}

// floorDiv returns ⌊a/b⌋ computed from the remainder, so that a quotient
// which rounds up to an integer in floating point is not overcounted.
func floorDiv(a, b float64) float64 {
	mod := math.Mod(a, b)
	div := (a - mod) / b
	if mod != 0 && (b < 0) != (mod < 0) {
		div--
	}
	q := math.Floor(div)
	if div-q > 0.5 {
		q++
	}
	return q
}
