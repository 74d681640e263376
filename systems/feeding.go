package systems

import (
	"github.com/pthm-cable/tilelife/components"
	"github.com/pthm-cable/tilelife/genetics"
	"github.com/pthm-cable/tilelife/traits"
)

// BiteDamage is the attacker's attack power less the target's defense, never negative.
func BiteDamage(attacker, target *genetics.Genome) float64 {
	d := attacker.Value(traits.AttackPower) - target.Value(traits.Defense)
	if d < 0 {
		return 0
	}
	return d
}

// Bite applies damage to the target and returns the energy the attacker
// extracts: the health actually removed times the target kind's nutrition factor.
func Bite(target *components.Vitals, targetKind components.KindConstants, damage float64) float64 {
	if damage <= 0 {
		return 0
	}
	taken := damage
	if target.Health < taken {
		taken = max(target.Health, 0)
	}
	target.Health -= damage
	return taken * targetKind.NutritionFactor
}
