package systems

import (
	"fmt"

	"github.com/pthm-cable/tilelife/components"
	"github.com/pthm-cable/tilelife/simerr"
	"github.com/pthm-cable/tilelife/terrain"
)

// SpendEnergy removes amount from energy. Any shortfall is taken from
// health and energy is floored at zero.
func SpendEnergy(v *components.Vitals, amount float64) {
	if amount <= 0 {
		return
	}
	v.Energy -= amount
	if v.Energy < 0 {
		v.Health += v.Energy
		v.Energy = 0
	}
}

// GainEnergy adds amount to energy. Energy beyond MaxEnergy heals instead,
// up to MaxHealth; the rest is lost.
func GainEnergy(v *components.Vitals, k components.KindConstants, amount float64) {
	if amount <= 0 {
		return
	}
	v.Energy += amount
	if v.Energy > k.MaxEnergy {
		v.Health += v.Energy - k.MaxEnergy
		v.Energy = k.MaxEnergy
		if v.Health > k.MaxHealth {
			v.Health = k.MaxHealth
		}
	}
}

// HealthRatio returns health / MaxHealth. A ratio above one means an
// update step skipped its cap and is reported as an invariant violation.
func HealthRatio(v components.Vitals, k components.KindConstants) (float64, error) {
	return ratio("health", v.Health, k.MaxHealth)
}

// EnergyRatio returns energy / MaxEnergy, failing like HealthRatio.
func EnergyRatio(v components.Vitals, k components.KindConstants) (float64, error) {
	return ratio("energy", v.Energy, k.MaxEnergy)
}

func ratio(name string, value, max float64) (float64, error) {
	if max <= 0 {
		return 0, fmt.Errorf("%s max %v: %w", name, max, simerr.ErrInvariant)
	}
	r := value / max
	if r > 1 {
		return r, fmt.Errorf("%s ratio %v above 1: %w", name, r, simerr.ErrInvariant)
	}
	return r, nil
}

// Maintain charges the per-tick maintenance cost and ages the organism.
func Maintain(v *components.Vitals, k components.KindConstants) {
	SpendEnergy(v, k.MaintenanceCost)
	v.Age++
}

// Drown applies water damage when tile holds water and reports whether it did.
func Drown(v *components.Vitals, k components.KindConstants, tile *terrain.Tile) bool {
	if tile == nil || !tile.HasWater() || k.WaterDamage <= 0 {
		return false
	}
	v.Health -= k.WaterDamage
	return true
}

// WantsToEat reports whether either ratio is below one.
func WantsToEat(v components.Vitals, k components.KindConstants) (bool, error) {
	hr, err := HealthRatio(v, k)
	if err != nil {
		return false, err
	}
	er, err := EnergyRatio(v, k)
	if err != nil {
		return false, err
	}
	return hr < 1 || er < 1, nil
}
