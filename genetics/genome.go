package genetics

import (
	"fmt"

	"github.com/pthm-cable/tilelife/simerr"
	"github.com/pthm-cable/tilelife/traits"
)

// Genome is an ordered collection of genes keyed by trait.
// Insertion order is preserved by Traits, Copy and Mutate.
type Genome struct {
	genes []Gene
	order []traits.Trait
	index [traits.Count]int8 // position+1 in genes, 0 = absent
}

// NewGenome returns an empty genome with room for n genes.
func NewGenome(n int) Genome {
	return Genome{
		genes: make([]Gene, 0, n),
		order: make([]traits.Trait, 0, n),
	}
}

// Add appends a gene for trait t. Adding a trait twice or an unknown trait
// is a configuration error.
func (g *Genome) Add(t traits.Trait, gene Gene) error {
	if !t.Valid() {
		return fmt.Errorf("trait %d: %w", t, simerr.ErrConfiguration)
	}
	if g.index[t] != 0 {
		return fmt.Errorf("duplicate trait %s: %w", t, simerr.ErrConfiguration)
	}
	g.genes = append(g.genes, gene)
	g.order = append(g.order, t)
	g.index[t] = int8(len(g.genes))
	return nil
}

// Has reports whether the genome carries trait t.
func (g *Genome) Has(t traits.Trait) bool {
	return t.Valid() && g.index[t] != 0
}

// Gene returns the gene for t and whether it exists.
func (g *Genome) Gene(t traits.Trait) (Gene, bool) {
	if !g.Has(t) {
		return Gene{}, false
	}
	return g.genes[g.index[t]-1], true
}

// Value returns the value of trait t, or 0 if the genome lacks it.
func (g *Genome) Value(t traits.Trait) float64 {
	if !g.Has(t) {
		return 0
	}
	return g.genes[g.index[t]-1].value
}

// Set assigns the value of trait t (clamped). It reports false if the
// genome lacks the trait.
func (g *Genome) Set(t traits.Trait, v float64) bool {
	if !g.Has(t) {
		return false
	}
	g.genes[g.index[t]-1].Set(v)
	return true
}

// Traits returns the traits in insertion order. The slice must not be modified.
func (g *Genome) Traits() []traits.Trait {
	return g.order
}

// Len returns the number of genes.
func (g *Genome) Len() int {
	return len(g.genes)
}

// Mutate reads mutation_chance once and mutates every other gene whose roll
// is at most that chance. It returns the traits that were mutated.
// A genome without mutation_chance never mutates.
func (g *Genome) Mutate(m *Mutator) []traits.Trait {
	if !g.Has(traits.MutationChance) {
		return nil
	}
	p := g.Value(traits.MutationChance)

	var mutated []traits.Trait
	for i, t := range g.order {
		if t == traits.MutationChance {
			continue
		}
		if m.Roll() <= p {
			g.genes[i].Mutate(m)
			mutated = append(mutated, t)
		}
	}
	return mutated
}

// Copy returns a deep copy preserving order.
func (g *Genome) Copy() Genome {
	c := Genome{
		genes: make([]Gene, len(g.genes)),
		order: make([]traits.Trait, len(g.order)),
		index: g.index,
	}
	copy(c.genes, g.genes)
	copy(c.order, g.order)
	return c
}
