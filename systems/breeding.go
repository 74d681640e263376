package systems

import (
	"github.com/pthm-cable/tilelife/components"
	"github.com/pthm-cable/tilelife/genetics"
	"github.com/pthm-cable/tilelife/traits"
)

// ReadyToReproduce checks the reproduction gates: both ratios at or above
// their genome thresholds and roll at most the reproduction_chance gene.
func ReadyToReproduce(v components.Vitals, k components.KindConstants, g *genetics.Genome, roll float64) (bool, error) {
	hr, err := HealthRatio(v, k)
	if err != nil {
		return false, err
	}
	er, err := EnergyRatio(v, k)
	if err != nil {
		return false, err
	}
	if hr < g.Value(traits.MinReproductionHealth) || er < g.Value(traits.MinReproductionEnergy) {
		return false, nil
	}
	return roll <= g.Value(traits.ReproductionChance), nil
}

// OffspringVitals moves energy_to_offspring_ratio of the parent's energy
// into a newborn. share of the transfer becomes the child's energy and the
// remainder its health; energy beyond the cap heals as usual.
// It reports false, leaving the parent untouched, when the child would be
// born without health.
func OffspringVitals(parent *components.Vitals, k components.KindConstants, g *genetics.Genome, share float64) (components.Vitals, bool) {
	transfer := parent.Energy * g.Value(traits.EnergyToOffspringRatio)
	health := transfer * (1 - share)
	if health <= 0 {
		return components.Vitals{}, false
	}
	parent.Energy -= transfer

	child := components.Vitals{Health: min(health, k.MaxHealth)}
	GainEnergy(&child, k, transfer*share)
	return child, true
}
