// Package genetics implements bounded mutating genes and the genomes built from them.
package genetics

import (
	"fmt"

	"github.com/pthm-cable/tilelife/simerr"
)

// Gene is a single bounded scalar trait.
// The value always lies in [min, max]; out-of-range assignments clamp.
type Gene struct {
	value         float64
	min           float64
	max           float64
	mutationRange float64
}

// NewGene creates a gene with the given bounds and starting value.
// The value is clamped into range. Inverted bounds or a negative mutation
// range are configuration errors.
func NewGene(min, max, value, mutationRange float64) (Gene, error) {
	if min > max {
		return Gene{}, fmt.Errorf("gene bounds [%v, %v] inverted: %w", min, max, simerr.ErrConfiguration)
	}
	if mutationRange < 0 {
		return Gene{}, fmt.Errorf("gene mutation range %v negative: %w", mutationRange, simerr.ErrConfiguration)
	}
	g := Gene{min: min, max: max, mutationRange: mutationRange}
	g.Set(value)
	return g, nil
}

// MustGene is like NewGene but panics on error.
func MustGene(min, max, value, mutationRange float64) Gene {
	g, err := NewGene(min, max, value, mutationRange)
	if err != nil {
		panic(err)
	}
	return g
}

// Value returns the current value.
func (g Gene) Value() float64 { return g.value }

// Min returns the inclusive lower bound.
func (g Gene) Min() float64 { return g.min }

// Max returns the inclusive upper bound.
func (g Gene) Max() float64 { return g.max }

// MutationRange returns the mutation offset scale.
func (g Gene) MutationRange() float64 { return g.mutationRange }

// Set assigns v, clamped into [min, max].
func (g *Gene) Set(v float64) {
	g.value = clamp(v, g.min, g.max)
}

// Mutate adds a random offset drawn from m and re-clamps.
func (g *Gene) Mutate(m *Mutator) {
	if g.mutationRange == 0 {
		return
	}
	g.Set(g.value + m.Offset(g.mutationRange))
}

// Copy returns an independent gene with identical bounds, range and value.
func (g Gene) Copy() Gene {
	return g
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
