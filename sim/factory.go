package sim

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tilelife/components"
	"github.com/pthm-cable/tilelife/genetics"
	"github.com/pthm-cable/tilelife/systems"
	"github.com/pthm-cable/tilelife/terrain"
)

// SpawnAnimal places a founder animal on tile. It reports false when the
// tile holds water or already has an animal.
func (w *World) SpawnAnimal(tile *terrain.Tile) (ecs.Entity, bool, error) {
	return w.spawn(components.KindAnimal, tile)
}

// SpawnPlant places a founder plant on tile, like SpawnAnimal.
func (w *World) SpawnPlant(tile *terrain.Tile) (ecs.Entity, bool, error) {
	return w.spawn(components.KindPlant, tile)
}

// SpawnAnimals tries every eligible tile in row-major order and spawns
// an animal with probability p. It returns the number spawned.
func (w *World) SpawnAnimals(p float64) (int, error) {
	return w.spawnAll(components.KindAnimal, p)
}

// SpawnPlants is SpawnAnimals for plants.
func (w *World) SpawnPlants(p float64) (int, error) {
	return w.spawnAll(components.KindPlant, p)
}

func (w *World) spawn(kind components.Kind, tile *terrain.Tile) (ecs.Entity, bool, error) {
	if !systems.BehaviorOf(kind).CanSettle(tile) {
		return ecs.Entity{}, false, nil
	}
	k := w.opts.Kinds[kind]
	genome, err := genetics.Founder(systems.BehaviorOf(kind).Traits, w.opts.Genes[kind], w.ctx.Rand)
	if err != nil {
		return ecs.Entity{}, false, err
	}
	vitals := components.Vitals{
		Health: k.MaxHealth * w.opts.InitialHealthRatio,
		Energy: k.MaxEnergy * w.opts.InitialEnergyRatio,
	}
	e, err := w.create(kind, tile, vitals, genome, 0)
	if err != nil {
		return ecs.Entity{}, false, err
	}
	return e, true, nil
}

func (w *World) spawnAll(kind components.Kind, p float64) (int, error) {
	if p <= 0 {
		return 0, nil
	}
	b := systems.BehaviorOf(kind)
	n := 0
	for _, t := range w.grid.Tiles() {
		if !b.CanSettle(t) || w.ctx.Rand.Float64() >= p {
			continue
		}
		if _, ok, err := w.spawn(kind, t); err != nil {
			return n, err
		} else if ok {
			n++
		}
	}
	return n, nil
}

// KillAt removes every organism on tile and returns how many died.
func (w *World) KillAt(tile *terrain.Tile) (int, error) {
	if tile == nil {
		return 0, nil
	}
	n := 0
	for _, e := range []ecs.Entity{tile.Animal(), tile.Plant()} {
		if !w.Alive(e) {
			continue
		}
		if err := w.kill(e); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
