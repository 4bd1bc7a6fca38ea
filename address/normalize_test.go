// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package address

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Osmena Boulevard", "Osmena Boulevard"},
		{"street abbrev", "AH Mendoza St.", "AH Mendoza Street"},
		{"road abbrev", "Gov. Cuenco Ave", "Gov. Cuenco Avenue"},
		{"boulevard", "Osmena Blvd.", "Osmena Boulevard"},
		{"drive needs period", "Magsaysay Dr", "Magsaysay Dr"},
		{"drive with period", "Magsaysay Dr.", "Magsaysay Drive"},
		{"extension", "Junquera Ext.", "Junquera Extension"},
		{"barangay abbrev", "Brgy. Sambag II", "Barangay Sambag II"},
		{"poblacion", "POB Ward 3", "Poblacion Ward 3"},
		{"santo", "STO Nino Village", "Santo Nino Village"},
		{"santa", "Sta. Cruz", "Santa Cruz"},
		{"enye", "Peñafrancia", "Penafrancia"},
		{"parenthetical", "Mango Ave (near capitol)", "Mango Avenue"},
		{"whitespace", "  N   Bacalso   Ave  ", "N Bacalso Avenue"},
		{"trailing comma kept", "Colon St., Cebu City", "Colon Street, Cebu City"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"AH Mendoza St.",
		"Brgy. Sambag II, Cebu City",
		"POB (old site) Sta. Catalina",
		"V. Rama Ave Ext.",
		"Peñafrancia St., Naga",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestCanonicalLoose(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AH Mendoza St.", "ah mendoza street"},
		{"Peñafrancia", "penafrancia"},
		{"V. Rama Ave.", "v rama avenue"},
		{"  OSMENA BLVD ", "osmena boulevard"},
	}

	for _, tt := range tests {
		if got := CanonicalLoose(tt.in); got != tt.want {
			t.Errorf("CanonicalLoose(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsLowQualityLabel(t *testing.T) {
	low := []string{
		"ALL OTHER STREETS",
		"All other areas",
		"OTHERS",
		"others",
		"BLDG",
		"Commercial Building",
		"N/A",
		"",
		"   ",
	}

	for _, s := range low {
		if !IsLowQualityLabel(s) {
			t.Errorf("IsLowQualityLabel(%q) should be true", s)
		}
	}

	good := []string{
		"AH Mendoza St.",
		"Sambag II",
		"Colon Street",
	}

	for _, s := range good {
		if IsLowQualityLabel(s) {
			t.Errorf("IsLowQualityLabel(%q) should be false", s)
		}
	}
}
