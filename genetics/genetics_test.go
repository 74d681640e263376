package genetics

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/pthm-cable/tilelife/simerr"
	"github.com/pthm-cable/tilelife/traits"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 7))
}

func TestNewGeneRejectsInvalid(t *testing.T) {
	tests := []struct {
		name          string
		min, max      float64
		mutationRange float64
	}{
		{"inverted bounds", 1, 0, 0.1},
		{"negative range", 0, 1, -0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGene(tt.min, tt.max, 0.5, tt.mutationRange)
			if !errors.Is(err, simerr.ErrConfiguration) {
				t.Errorf("NewGene error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestNewGeneClampsValue(t *testing.T) {
	g := MustGene(0, 10, 12, 1)
	if g.Value() != 10 {
		t.Errorf("Value() = %v, want 10", g.Value())
	}
	g.Set(-3)
	if g.Value() != 0 {
		t.Errorf("Set(-3) -> %v, want 0", g.Value())
	}
}

func TestMutateStaysInBounds(t *testing.T) {
	for _, policy := range []Policy{PolicyUniform, PolicyGaussian} {
		t.Run(policy.String(), func(t *testing.T) {
			m := NewMutator(policy, testRand())
			g := MustGene(0, 1, 0.99, 0.5)
			for i := 0; i < 2000; i++ {
				g.Mutate(m)
				if g.Value() < 0 || g.Value() > 1 {
					t.Fatalf("iteration %d: value %v outside [0, 1]", i, g.Value())
				}
			}
		})
	}
}

func TestMutateZeroRangeIsNoop(t *testing.T) {
	m := NewMutator(PolicyUniform, testRand())
	g := MustGene(0, 1, 0.3, 0)
	for i := 0; i < 100; i++ {
		g.Mutate(m)
	}
	if g.Value() != 0.3 {
		t.Errorf("Value() = %v, want 0.3", g.Value())
	}
}

func TestUniformOffsetWithinRange(t *testing.T) {
	m := NewMutator(PolicyUniform, testRand())
	for i := 0; i < 1000; i++ {
		off := m.Offset(2)
		if off < -2 || off > 2 {
			t.Fatalf("Offset(2) = %v", off)
		}
	}
	if m.Offset(0) != 0 {
		t.Error("Offset(0) should be 0")
	}
}

func newTestGenome(t *testing.T, mutationChance float64) Genome {
	t.Helper()
	g := NewGenome(4)
	add := func(tr traits.Trait, gene Gene) {
		if err := g.Add(tr, gene); err != nil {
			t.Fatalf("Add(%s): %v", tr, err)
		}
	}
	add(traits.ColorRed, MustGene(0, 255, 100, 10))
	add(traits.MutationChance, MustGene(0, 1, mutationChance, 0))
	add(traits.AttackPower, MustGene(1, 30, 10, 2))
	add(traits.Defense, MustGene(0, 10, 1, 1))
	return g
}

func TestGenomeMutateComparesDrawAtMostChance(t *testing.T) {
	// Draws are in [0, 1), so chance 1 must mutate every gene and
	// chance 0 must mutate none (barring an exact zero draw).
	m := NewMutator(PolicyUniform, testRand())

	all := newTestGenome(t, 1)
	mutated := all.Mutate(m)
	if len(mutated) != all.Len()-1 {
		t.Errorf("chance 1 mutated %v, want every gene except mutation_chance", mutated)
	}
	for _, tr := range mutated {
		if tr == traits.MutationChance {
			t.Error("mutation_chance must not mutate itself")
		}
	}

	none := newTestGenome(t, 0)
	for i := 0; i < 100; i++ {
		if got := none.Mutate(m); len(got) != 0 {
			t.Fatalf("chance 0 mutated %v", got)
		}
	}
}

func TestGenomeMutateOnlyTouchesReportedTraits(t *testing.T) {
	m := NewMutator(PolicyUniform, testRand())
	for i := 0; i < 50; i++ {
		g := newTestGenome(t, 0.5)
		before := g.Copy()
		mutated := traits.NewSet(g.Mutate(m)...)
		for _, tr := range g.Traits() {
			if !mutated.Has(tr) && g.Value(tr) != before.Value(tr) {
				t.Fatalf("%s changed without being reported", tr)
			}
		}
	}
}

func TestGenomeCopyIsIndependent(t *testing.T) {
	g := newTestGenome(t, 0.1)
	c := g.Copy()
	c.Set(traits.AttackPower, 25)

	if g.Value(traits.AttackPower) != 10 {
		t.Errorf("original changed to %v", g.Value(traits.AttackPower))
	}
	if c.Len() != g.Len() {
		t.Fatalf("copy Len = %d, want %d", c.Len(), g.Len())
	}
	for i, tr := range g.Traits() {
		if c.Traits()[i] != tr {
			t.Errorf("copy order[%d] = %s, want %s", i, c.Traits()[i], tr)
		}
	}
}

func TestGenomeRejectsDuplicate(t *testing.T) {
	g := newTestGenome(t, 0.1)
	err := g.Add(traits.ColorRed, MustGene(0, 1, 0, 0))
	if !errors.Is(err, simerr.ErrConfiguration) {
		t.Errorf("duplicate Add error = %v, want ErrConfiguration", err)
	}
}

func TestGenomeMissingTrait(t *testing.T) {
	g := newTestGenome(t, 0.1)
	if g.Has(traits.HeightPreference) {
		t.Error("Has(height_preference) = true")
	}
	if g.Value(traits.HeightPreference) != 0 {
		t.Error("missing trait value should be 0")
	}
	if g.Set(traits.HeightPreference, 1) {
		t.Error("Set on missing trait should report false")
	}
}

func TestFounder(t *testing.T) {
	specs := Specs{}
	for _, tr := range traits.AnimalTraits.Traits() {
		specs[tr] = GeneSpec{Min: 0, Max: 10, StartMin: 2, StartMax: 4, MutationRange: 1}
	}

	g, err := Founder(traits.AnimalTraits, specs, testRand())
	if err != nil {
		t.Fatalf("Founder: %v", err)
	}
	if g.Len() != len(traits.AnimalTraits.Traits()) {
		t.Errorf("Len = %d", g.Len())
	}
	for _, tr := range g.Traits() {
		if v := g.Value(tr); v < 2 || v > 4 {
			t.Errorf("%s = %v outside start range", tr, v)
		}
	}

	delete(specs, traits.Defense)
	if _, err := Founder(traits.AnimalTraits, specs, testRand()); !errors.Is(err, simerr.ErrConfiguration) {
		t.Errorf("missing spec error = %v, want ErrConfiguration", err)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"uniform", PolicyUniform, false},
		{"", PolicyUniform, false},
		{"gaussian", PolicyGaussian, false},
		{"normal", 0, true},
		{"cauchy", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePolicy(%q) err = %v", tt.in, err)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParsePolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
