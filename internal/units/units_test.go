package units

import (
	"math"
	"testing"
)

func TestConvertLength(t *testing.T) {
	tests := []struct {
		name     string
		lengthNM float64
		units    string
		expected float64
	}{
		{"10 nm to angstrom", 10.0, ANGSTROM, 100.0},
		{"10 nm to um", 10.0, UM, 0.01},
		{"10 nm to nm", 10.0, NM, 10.0},
		{"unknown units default to nm", 10.0, "unknown", 10.0},
		{"0 nm to angstrom", 0.0, ANGSTROM, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertLength(tt.lengthNM, tt.units)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("ConvertLength(%f, %s) = %f, want %f", tt.lengthNM, tt.units, result, tt.expected)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	for _, u := range ValidUnits {
		if !IsValid(u) {
			t.Errorf("IsValid(%q) = false, want true", u)
		}
	}
	if IsValid("furlong") {
		t.Error("IsValid(furlong) = true, want false")
	}
}

func TestMassUnits(t *testing.T) {
	if !IsValidMassUnit(DA) || !IsValidMassUnit(AMU) {
		t.Error("da and amu must be valid mass units")
	}
	if IsValidMassUnit("kg") {
		t.Error("IsValidMassUnit(kg) = true, want false")
	}
	if got := ConvertMass(26.98, AMU); got != 26.98 {
		t.Errorf("ConvertMass(26.98, amu) = %f, want 26.98", got)
	}
}

func TestToNM(t *testing.T) {
	tests := []struct {
		length   float64
		units    string
		expected float64
	}{
		{10, ANGSTROM, 1},
		{1, UM, 1000},
		{2.5, NM, 2.5},
	}
	for _, tt := range tests {
		got, err := ToNM(tt.length, tt.units)
		if err != nil {
			t.Fatalf("ToNM(%f, %s) error: %v", tt.length, tt.units, err)
		}
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("ToNM(%f, %s) = %f, want %f", tt.length, tt.units, got, tt.expected)
		}
	}

	if _, err := ToNM(1, "furlong"); err == nil {
		t.Error("ToNM(furlong) should fail")
	}
}
