package windcalc

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, comparable with errors.Is.
var (
	// ErrUnknownDiameter indicates a rotor diameter outside the lookup tables.
	ErrUnknownDiameter = constError("unknown rotor diameter")

	// ErrUnknownUnit indicates an unrecognized power or energy display unit.
	ErrUnknownUnit = constError("unknown display unit")
)

// EnumerationError reports a lookup with a rotor diameter that is not one of
// the enumerated table keys. It matches ErrUnknownDiameter via errors.Is.
type EnumerationError struct {
	Diameter RotorDiameter
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("%s: %d m (valid: %v)", ErrUnknownDiameter, int(e.Diameter), Diameters())
}

// Is reports whether target is ErrUnknownDiameter.
func (e *EnumerationError) Is(target error) bool {
	return target == ErrUnknownDiameter
}
