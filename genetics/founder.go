package genetics

import (
	"fmt"
	"math/rand/v2"

	"github.com/pthm-cable/tilelife/simerr"
	"github.com/pthm-cable/tilelife/traits"
)

// GeneSpec describes how a founder gene is built.
type GeneSpec struct {
	Min           float64
	Max           float64
	StartMin      float64
	StartMax      float64
	MutationRange float64
}

// Validate checks the bounds of the spec.
func (s GeneSpec) Validate() error {
	if s.Min > s.Max {
		return fmt.Errorf("bounds [%v, %v] inverted: %w", s.Min, s.Max, simerr.ErrConfiguration)
	}
	if s.StartMin > s.StartMax {
		return fmt.Errorf("start range [%v, %v] inverted: %w", s.StartMin, s.StartMax, simerr.ErrConfiguration)
	}
	if s.StartMin < s.Min || s.StartMax > s.Max {
		return fmt.Errorf("start range [%v, %v] outside [%v, %v]: %w",
			s.StartMin, s.StartMax, s.Min, s.Max, simerr.ErrConfiguration)
	}
	if s.MutationRange < 0 {
		return fmt.Errorf("mutation range %v negative: %w", s.MutationRange, simerr.ErrConfiguration)
	}
	return nil
}

// Fixed returns a spec whose founders always start at v.
func Fixed(min, max, v, mutationRange float64) GeneSpec {
	return GeneSpec{Min: min, Max: max, StartMin: v, StartMax: v, MutationRange: mutationRange}
}

// Specs maps traits to their founder specs.
type Specs map[traits.Trait]GeneSpec

// Founder builds a genome for the given trait set, drawing each start value
// uniformly from its spec's start range. Every trait in set needs a spec.
func Founder(set traits.Set, specs Specs, rng *rand.Rand) (Genome, error) {
	ts := set.Traits()
	g := NewGenome(len(ts))
	for _, t := range ts {
		spec, ok := specs[t]
		if !ok {
			return Genome{}, fmt.Errorf("no gene spec for %s: %w", t, simerr.ErrConfiguration)
		}
		if err := spec.Validate(); err != nil {
			return Genome{}, fmt.Errorf("gene %s: %w", t, err)
		}
		v := spec.StartMin
		if spec.StartMax > spec.StartMin {
			v += rng.Float64() * (spec.StartMax - spec.StartMin)
		}
		gene, err := NewGene(spec.Min, spec.Max, v, spec.MutationRange)
		if err != nil {
			return Genome{}, fmt.Errorf("gene %s: %w", t, err)
		}
		if err := g.Add(t, gene); err != nil {
			return Genome{}, err
		}
	}
	return g, nil
}
