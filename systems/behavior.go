package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tilelife/components"
	"github.com/pthm-cable/tilelife/genetics"
	"github.com/pthm-cable/tilelife/terrain"
	"github.com/pthm-cable/tilelife/traits"
)

// Behavior is the per-kind dispatch table used by the lifecycle.
type Behavior struct {
	Kind   components.Kind
	Traits traits.Set

	// Drowns applies water damage on water tiles.
	Drowns bool
	// Forages runs the sensing, attack and movement steps.
	Forages bool
	// Income returns passive energy for the tick; nil for none.
	Income func(roll float64, tile *terrain.Tile, g *genetics.Genome, k components.KindConstants) float64

	// Birthplace selects the neighbor a newborn is placed on.
	Birthplace terrain.NeighborFilter

	Occupied func(t *terrain.Tile) bool
	Attach   func(t *terrain.Tile, e ecs.Entity, home *terrain.Tile) error
	Detach   func(t *terrain.Tile, e ecs.Entity) error
}

var behaviors = [components.KindCount]Behavior{
	components.KindAnimal: {
		Kind:       components.KindAnimal,
		Traits:     traits.AnimalTraits,
		Drowns:     true,
		Forages:    true,
		Birthplace: terrain.NeighborFilter{ExcludesWater: true, ExcludesAnimal: true},
		Occupied:   (*terrain.Tile).HasAnimal,
		Attach:     (*terrain.Tile).AddAnimal,
		Detach:     (*terrain.Tile).RemoveAnimal,
	},
	components.KindPlant: {
		Kind:       components.KindPlant,
		Traits:     traits.PlantTraits,
		Income:     Photosynthesis,
		Birthplace: terrain.NeighborFilter{ExcludesWater: true, ExcludesPlant: true},
		Occupied:   (*terrain.Tile).HasPlant,
		Attach:     (*terrain.Tile).AddPlant,
		Detach:     (*terrain.Tile).RemovePlant,
	},
}

// BehaviorOf returns the dispatch table for kind k.
func BehaviorOf(k components.Kind) *Behavior {
	return &behaviors[k]
}

// CanSettle reports whether a new organism of this kind may be placed on t.
func (b *Behavior) CanSettle(t *terrain.Tile) bool {
	return t != nil && !t.HasWater() && !b.Occupied(t)
}
