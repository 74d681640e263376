package traits

import "testing"

func TestParseRoundTrip(t *testing.T) {
	for _, tr := range All() {
		got, ok := Parse(tr.String())
		if !ok {
			t.Fatalf("Parse(%q) not found", tr.String())
		}
		if got != tr {
			t.Errorf("Parse(%q) = %v, want %v", tr.String(), got, tr)
		}
	}

	if _, ok := Parse("wingspan"); ok {
		t.Error("unknown trait name should not parse")
	}
}

func TestKindSets(t *testing.T) {
	tests := []struct {
		name    string
		set     Set
		has     []Trait
		missing []Trait
	}{
		{"animal", AnimalTraits, []Trait{AttackPower, Defense, MutationChance, ColorRed}, []Trait{MoisturePreference, HeightPreference}},
		{"plant", PlantTraits, []Trait{MoisturePreference, HeightPreference, Defense, EnergyToOffspringRatio}, []Trait{AttackPower}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, tr := range tt.has {
				if !tt.set.Has(tr) {
					t.Errorf("%s set should contain %s", tt.name, tr)
				}
			}
			for _, tr := range tt.missing {
				if tt.set.Has(tr) {
					t.Errorf("%s set should not contain %s", tt.name, tr)
				}
			}
		})
	}
}

func TestSetTraitsOrdered(t *testing.T) {
	s := NewSet(ReproductionChance, ColorRed, AttackPower)
	got := s.Traits()
	want := []Trait{ColorRed, AttackPower, ReproductionChance}
	if len(got) != len(want) {
		t.Fatalf("Traits() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Traits()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if s.Remove(ColorRed).Has(ColorRed) {
		t.Error("Remove should drop the trait")
	}
}

func TestColorClamps(t *testing.T) {
	r, g, b := Color(-4, 128.7, 300)
	if r != 0 || g != 128 || b != 255 {
		t.Errorf("Color = (%d,%d,%d), want (0,128,255)", r, g, b)
	}
}
