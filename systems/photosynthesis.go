package systems

import (
	"math"

	"github.com/pthm-cable/tilelife/components"
	"github.com/pthm-cable/tilelife/genetics"
	"github.com/pthm-cable/tilelife/terrain"
	"github.com/pthm-cable/tilelife/traits"
)

// HabitatMatch scores how well the tile suits a plant's preferences, in [0, 1].
// It averages 1 - |preference - actual| over elevation and moisture.
func HabitatMatch(g *genetics.Genome, tile *terrain.Tile) float64 {
	e := 1 - math.Abs(g.Value(traits.HeightPreference)-tile.Elevation())
	m := 1 - math.Abs(g.Value(traits.MoisturePreference)-tile.Moisture())
	return (e + m) / 2
}

// Photosynthesis returns the energy a plant draws from its tile this tick.
// roll is a uniform draw in [0, 1).
func Photosynthesis(roll float64, tile *terrain.Tile, g *genetics.Genome, k components.KindConstants) float64 {
	if k.Photosynthesis <= 0 {
		return 0
	}
	return roll * tile.GrowthPotential() * k.Photosynthesis * HabitatMatch(g, tile)
}
