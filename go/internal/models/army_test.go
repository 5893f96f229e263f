package models

import "testing"

func TestAllegianceValid(t *testing.T) {
	tests := []struct {
		name       string
		allegiance Allegiance
		want       bool
	}{
		{"known code", AllegianceORK, true},
		{"another known code", AllegianceSTD, true},
		{"unknown code", Allegiance("XYZ"), false},
		{"empty", Allegiance(""), false},
		{"lowercase variant", Allegiance("ork"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.allegiance.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllegianceLabel(t *testing.T) {
	if got := AllegianceSTD.Label(); got != "Slaves to Darkness" {
		t.Errorf("Label() = %q, want %q", got, "Slaves to Darkness")
	}
	if got := AllegianceORK.Label(); got != "Orruk Warclans" {
		t.Errorf("Label() = %q, want %q", got, "Orruk Warclans")
	}
	// Unknown codes fall back to the raw value rather than panicking.
	if got := Allegiance("XYZ").Label(); got != "XYZ" {
		t.Errorf("Label() = %q, want %q", got, "XYZ")
	}
}

func TestAllegiancesAllValid(t *testing.T) {
	all := Allegiances()
	if len(all) != 23 {
		t.Fatalf("Allegiances() returned %d codes, want 23", len(all))
	}
	seen := make(map[Allegiance]bool, len(all))
	for _, a := range all {
		if !a.Valid() {
			t.Errorf("Allegiances() contains invalid code %q", a)
		}
		if seen[a] {
			t.Errorf("Allegiances() contains duplicate code %q", a)
		}
		seen[a] = true
	}
}
