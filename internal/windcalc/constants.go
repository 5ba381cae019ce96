package windcalc

// Swept Area Method constants.
// Source: Ginsberg, M. (2019). Harness It, pp. 56-62.
const (
	// HoursPerYear is the number of hours in a non-leap year.
	HoursPerYear = 8760

	// EPFRayleigh is the Energy Pattern Factor for a Rayleigh wind speed
	// distribution (Weibull k=2). It corrects for <v³> != <v>³.
	EPFRayleigh = 1.91

	// BetzLimit is the theoretical maximum fraction of kinetic wind energy any
	// turbine can extract. It is informational only: efficiency is never clamped to it.
	BetzLimit = 0.593

	// DefaultEfficiency is the conservative overall conversion efficiency
	// recommended for planning.
	DefaultEfficiency = 0.20

	// ReferenceSpacingFactor is the turbine spacing used by von Krauland et al. (2023).
	ReferenceSpacingFactor = 5.98
)

// Unit conversion constants.
const (
	// SquareMetersPerKm2 converts km² to m².
	SquareMetersPerKm2 = 1_000_000

	// WattsPerKilowatt converts W to kW.
	WattsPerKilowatt = 1000.0

	// KWhPerMWh converts kWh to MWh.
	KWhPerMWh = 1000.0
)

// Rounding precision applied to mean wind speed before cubing.
const windSpeedDecimals = 2

// Input widget bounds for the calculator form. The pipeline itself never
// enforces them.
const (
	MinAreaKm2  = 100.0
	MaxAreaKm2  = 1000.0
	AreaStepKm2 = 50.0

	MinSpacingFactor  = 3.0
	MaxSpacingFactor  = 9.0
	SpacingFactorStep = 0.1

	MinEfficiencyPct  = 20
	MaxEfficiencyPct  = 30
	EfficiencyStepPct = 1
)

// Default form inputs.
const (
	DefaultAreaKm2       = 200.0
	DefaultSpacingFactor = 6.0
	DefaultEfficiencyPct = 20
)
