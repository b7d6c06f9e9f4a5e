// Package units provides shared constants and validation for length units
package units

import "fmt"

// Length unit constants
const (
	NM       = "nm"
	ANGSTROM = "angstrom"
	UM       = "um"
)

// ValidUnits contains all valid length unit values
var ValidUnits = []string{NM, ANGSTROM, UM}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "nm, angstrom, um"
}

// ToNM converts a length in the given units to nanometres, the unit
// reconstructed positions are stored in.
func ToNM(length float64, fromUnits string) (float64, error) {
	switch fromUnits {
	case ANGSTROM:
		return length / 10, nil
	case UM:
		return length * 1000, nil
	case NM:
		return length, nil
	default:
		return 0, fmt.Errorf("invalid units %q (valid: %s)", fromUnits, GetValidUnitsString())
	}
}

// ConvertLength converts a length from nanometres to the target units.
// Reconstructed positions are stored in nanometres throughout.
func ConvertLength(lengthNM float64, targetUnits string) float64 {
	switch targetUnits {
	case ANGSTROM:
		return lengthNM * 10
	case UM:
		return lengthNM / 1000
	case NM:
		return lengthNM // no conversion needed
	default:
		return lengthNM // default to nm if unknown unit
	}
}
