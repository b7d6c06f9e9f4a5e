package units

// Mass-to-charge unit constants. Spectra are stored in daltons per
// elementary charge; amu is accepted as a synonym.
const (
	DA  = "da"
	AMU = "amu"
)

// ValidMassUnits contains all valid mass unit values
var ValidMassUnits = []string{DA, AMU}

// IsValidMassUnit checks if the given unit is a valid mass unit
func IsValidMassUnit(unit string) bool {
	for _, validUnit := range ValidMassUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// ConvertMass converts a mass-to-charge value from daltons to the target units
func ConvertMass(massDA float64, targetUnits string) float64 {
	switch targetUnits {
	case DA, AMU:
		return massDA // dalton and amu are the same scale
	default:
		return massDA
	}
}
