package systems

import (
	"math"
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tilelife/terrain"
)

// ChooseForageTile is the animal's single-step greedy decision.
//
// With a plant on the current tile its health is the baseline and staying
// put is the default. Otherwise a random free neighbor is the fallback.
// Any neighbor holding a plant but no animal whose plant is healthier than
// the best seen so far becomes the destination. Neighbors are visited in a
// shuffled order so ties between equally healthy plants are broken at
// random. A nil result means stay.
func ChooseForageTile(here *terrain.Tile, rng *rand.Rand, plantHealth func(ecs.Entity) float64) (*terrain.Tile, error) {
	best := math.Inf(-1)
	var dest *terrain.Tile

	if here.HasPlant() {
		best = plantHealth(here.Plant())
	} else {
		fallback, err := here.RandomNeighbor(rng, terrain.NeighborFilter{ExcludesPlant: true, ExcludesAnimal: true})
		if err != nil {
			return nil, err
		}
		dest = fallback
	}

	for _, n := range here.Neighbors(rng) {
		if !n.HasPlant() || n.HasAnimal() {
			continue
		}
		if h := plantHealth(n.Plant()); h > best {
			best = h
			dest = n
		}
	}
	return dest, nil
}
