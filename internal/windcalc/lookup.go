package windcalc

// Lookup tables keyed by rotor diameter (hub height assumed equal).
// Source: von Krauland et al. (2023), Northeast Atlantic US offshore data,
// used as a proxy for Scotian Shelf conditions.
//
//nolint:gochecknoglobals // Read-only lookup tables.
var (
	airDensityByDiameter = map[RotorDiameter]float64{
		Diameter100: 1.000,
		Diameter150: 0.995,
		Diameter200: 0.990,
		Diameter250: 0.986,
	}

	windSpeedByDiameter = map[RotorDiameter]float64{
		Diameter100: 9.54,
		Diameter150: 9.92,
		Diameter200: 10.10,
		Diameter250: 10.25,
	}
)

// LookupAirDensity returns the air density in kg/m³ at hub height for d.
func LookupAirDensity(d RotorDiameter) (float64, error) {
	v, ok := airDensityByDiameter[d]
	if !ok {
		return 0, &EnumerationError{Diameter: d}
	}
	return v, nil
}

// LookupWindSpeed returns the mean wind speed in m/s at hub height for d.
func LookupWindSpeed(d RotorDiameter) (float64, error) {
	v, ok := windSpeedByDiameter[d]
	if !ok {
		return 0, &EnumerationError{Diameter: d}
	}
	return v, nil
}

// Lookup returns both table values for d.
func Lookup(d RotorDiameter) (Atmosphere, error) {
	rho, err := LookupAirDensity(d)
	if err != nil {
		return Atmosphere{}, err
	}
	v, err := LookupWindSpeed(d)
	if err != nil {
		return Atmosphere{}, err
	}
	return Atmosphere{AirDensity: rho, WindSpeed: v}, nil
}
