package genetics

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/tilelife/simerr"
)

// Policy selects the distribution of mutation offsets.
type Policy uint8

const (
	// PolicyUniform draws offsets uniformly from [-range, range].
	PolicyUniform Policy = iota
	// PolicyGaussian draws offsets from N(0, range/3).
	PolicyGaussian
)

// String returns the config name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyUniform:
		return "uniform"
	case PolicyGaussian:
		return "gaussian"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a config name into a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "uniform":
		return PolicyUniform, nil
	case "gaussian":
		return PolicyGaussian, nil
	default:
		return 0, fmt.Errorf("mutation policy %q: %w", name, simerr.ErrConfiguration)
	}
}

// Mutator draws mutation offsets and per-gene mutation rolls.
// It is owned by the simulation context; nothing here is process-wide.
type Mutator struct {
	policy Policy
	rng    *rand.Rand
}

// NewMutator creates a mutator drawing from rng.
func NewMutator(policy Policy, rng *rand.Rand) *Mutator {
	return &Mutator{policy: policy, rng: rng}
}

// Policy returns the active offset policy.
func (m *Mutator) Policy() Policy { return m.policy }

// Offset draws a mutation offset for the given range.
func (m *Mutator) Offset(r float64) float64 {
	if r <= 0 {
		return 0
	}
	switch m.policy {
	case PolicyGaussian:
		return distuv.Normal{Mu: 0, Sigma: r / 3, Src: m.rng}.Rand()
	default:
		return distuv.Uniform{Min: -r, Max: r, Src: m.rng}.Rand()
	}
}

// Roll returns a uniform draw in [0, 1).
func (m *Mutator) Roll() float64 {
	return m.rng.Float64()
}
