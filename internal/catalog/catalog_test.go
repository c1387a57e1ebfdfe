package catalog

import (
	"testing"

	"kerbside/internal/domain"
)

func TestLookup(t *testing.T) {
	cases := []struct {
		id      domain.DeclarationID
		wantGap int
	}{
		{domain.DeclarationRental, 500},
		{domain.DeclarationMixed, 1200},
		{domain.DeclarationPersonal, 2500},
	}
	for _, tc := range cases {
		c, ok := Lookup(tc.id)
		if !ok {
			t.Fatalf("Lookup(%s) not found", tc.id)
		}
		if c.MaxGapMiles != tc.wantGap {
			t.Errorf("%s MaxGapMiles = %d, want %d", tc.id, c.MaxGapMiles, tc.wantGap)
		}
		if c.Label == "" || c.ClaimImpact == "" {
			t.Errorf("%s missing display text", tc.id)
		}
	}
}

func TestValidRejectsUnknown(t *testing.T) {
	if Valid("COMMERCIAL_FLEET") {
		t.Error("Valid accepted unknown declaration")
	}
	if !Valid(domain.DeclarationRental) {
		t.Error("Valid rejected RENTAL")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	if len(all) != 3 {
		t.Fatalf("len(All()) = %d, want 3", len(all))
	}
	all[0].MaxGapMiles = 1
	if c, _ := Lookup(all[0].ID); c.MaxGapMiles == 1 {
		t.Error("mutating All() result changed the catalog")
	}
}
