package terrain

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tilelife/simerr"
)

// Direction is a cardinal neighbor direction.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists the cardinal directions in clockwise order.
var Directions = [4]Direction{North, East, South, West}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Rect is an axis-aligned rectangle in world units.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersects reports whether r and o overlap with positive area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Tile is one cell of the grid. It holds terrain values derived from noise
// and at most one animal and one plant.
type Tile struct {
	row, col int
	rect     Rect

	elevation float64
	moisture  float64
	biome     Biome
	hasWater  bool
	isBorder  bool
	isCoast   bool

	neighbors [4]*Tile

	animal ecs.Entity
	plant  ecs.Entity
	visits int
}

func (t *Tile) Row() int     { return t.row }
func (t *Tile) Col() int     { return t.col }
func (t *Tile) Rect() Rect   { return t.rect }
func (t *Tile) Biome() Biome { return t.biome }

// Elevation returns the tile elevation in [0, 1].
func (t *Tile) Elevation() float64 { return t.elevation }

// Moisture returns the tile moisture in [0, 1].
func (t *Tile) Moisture() float64 { return t.moisture }

// HasWater reports whether the tile lies at or below the water level.
func (t *Tile) HasWater() bool { return t.hasWater }

// IsBorder reports whether the tile lies on the grid edge.
func (t *Tile) IsBorder() bool { return t.isBorder }

// IsCoast reports whether the tile is land with at least one water neighbor.
func (t *Tile) IsCoast() bool { return t.isCoast }

// GrowthPotential returns the biome growth potential.
func (t *Tile) GrowthPotential() float64 { return t.biome.GrowthPotential() }

// Color returns the biome color.
func (t *Tile) Color() color.RGBA { return t.biome.Color() }

// VisitCount returns how many times an animal entered the tile.
func (t *Tile) VisitCount() int { return t.visits }

// SetElevation sets the elevation and re-derives biome, water and coast flags.
func (t *Tile) SetElevation(e float64) error {
	if err := checkUnit("elevation", e); err != nil {
		return err
	}
	t.elevation = e
	t.derive()
	t.refreshCoast()
	return nil
}

// SetMoisture sets the moisture and re-derives the biome.
func (t *Tile) SetMoisture(m float64) error {
	if err := checkUnit("moisture", m); err != nil {
		return err
	}
	t.moisture = m
	t.derive()
	return nil
}

func checkUnit(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("%s %v outside [0, 1]: %w", name, v, simerr.ErrRange)
	}
	return nil
}

func (t *Tile) derive() {
	t.biome = Classify(t.elevation, t.moisture)
	t.hasWater = t.elevation <= WaterLevel
}

// refreshCoast recomputes the coast flag of t and its neighbors.
func (t *Tile) refreshCoast() {
	t.updateCoast()
	for _, n := range t.neighbors {
		if n != nil {
			n.updateCoast()
		}
	}
}

func (t *Tile) updateCoast() {
	t.isCoast = false
	if t.hasWater {
		return
	}
	for _, n := range t.neighbors {
		if n != nil && n.hasWater {
			t.isCoast = true
			return
		}
	}
}

// Animal returns the animal slot; the zero entity means empty.
func (t *Tile) Animal() ecs.Entity { return t.animal }

// Plant returns the plant slot; the zero entity means empty.
func (t *Tile) Plant() ecs.Entity { return t.plant }

func (t *Tile) HasAnimal() bool { return !t.animal.IsZero() }
func (t *Tile) HasPlant() bool  { return !t.plant.IsZero() }

// AddAnimal places e in the animal slot. home is the tile the organism
// believes it is on and must be t. Entering counts as a visit.
func (t *Tile) AddAnimal(e ecs.Entity, home *Tile) error {
	if err := t.checkOccupant("animal", t.animal, e, home); err != nil {
		return err
	}
	t.animal = e
	t.visits++
	return nil
}

// AddPlant places e in the plant slot. home must be t.
func (t *Tile) AddPlant(e ecs.Entity, home *Tile) error {
	if err := t.checkOccupant("plant", t.plant, e, home); err != nil {
		return err
	}
	t.plant = e
	return nil
}

func (t *Tile) checkOccupant(kind string, slot, e ecs.Entity, home *Tile) error {
	if e.IsZero() {
		return fmt.Errorf("add zero %s to tile (%d,%d): %w", kind, t.row, t.col, simerr.ErrInvariant)
	}
	if !slot.IsZero() {
		return fmt.Errorf("tile (%d,%d) already holds a %s: %w", t.row, t.col, kind, simerr.ErrOccupancy)
	}
	if home != t {
		return fmt.Errorf("%s placed on tile (%d,%d) does not reference it: %w", kind, t.row, t.col, simerr.ErrInvariant)
	}
	return nil
}

// RemoveAnimal clears the animal slot. e must be the current occupant.
func (t *Tile) RemoveAnimal(e ecs.Entity) error {
	if t.animal != e || e.IsZero() {
		return fmt.Errorf("animal not on tile (%d,%d): %w", t.row, t.col, simerr.ErrInvariant)
	}
	t.animal = ecs.Entity{}
	return nil
}

// RemovePlant clears the plant slot. e must be the current occupant.
func (t *Tile) RemovePlant(e ecs.Entity) error {
	if t.plant != e || e.IsZero() {
		return fmt.Errorf("plant not on tile (%d,%d): %w", t.row, t.col, simerr.ErrInvariant)
	}
	t.plant = ecs.Entity{}
	return nil
}

// Neighbor returns the neighbor in direction d, or nil at the border.
func (t *Tile) Neighbor(d Direction) *Tile {
	return t.neighbors[d%4]
}

// IsAdjacent reports whether o is a cardinal neighbor of t.
func (t *Tile) IsAdjacent(o *Tile) bool {
	for _, n := range t.neighbors {
		if n != nil && n == o {
			return true
		}
	}
	return false
}

// Neighbors returns the existing neighbors, shuffled when rng is not nil.
func (t *Tile) Neighbors(rng *rand.Rand) []*Tile {
	out := make([]*Tile, 0, 4)
	for _, n := range t.neighbors {
		if n != nil {
			out = append(out, n)
		}
	}
	if rng != nil {
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}

// NeighborFilter selects neighbors by occupancy and water.
type NeighborFilter struct {
	NeedsPlant     bool
	ExcludesPlant  bool
	NeedsAnimal    bool
	ExcludesAnimal bool
	NeedsWater     bool
	ExcludesWater  bool
}

// Validate rejects filters that need and exclude the same property.
func (f NeighborFilter) Validate() error {
	switch {
	case f.NeedsPlant && f.ExcludesPlant:
		return fmt.Errorf("filter needs and excludes plant: %w", simerr.ErrConfiguration)
	case f.NeedsAnimal && f.ExcludesAnimal:
		return fmt.Errorf("filter needs and excludes animal: %w", simerr.ErrConfiguration)
	case f.NeedsWater && f.ExcludesWater:
		return fmt.Errorf("filter needs and excludes water: %w", simerr.ErrConfiguration)
	}
	return nil
}

// Accepts reports whether t passes the filter.
func (f NeighborFilter) Accepts(t *Tile) bool {
	return want(f.NeedsPlant, f.ExcludesPlant, t.HasPlant()) &&
		want(f.NeedsAnimal, f.ExcludesAnimal, t.HasAnimal()) &&
		want(f.NeedsWater, f.ExcludesWater, t.hasWater)
}

func want(needs, excludes, has bool) bool {
	if needs && !has {
		return false
	}
	if excludes && has {
		return false
	}
	return true
}

// RandomNeighbor returns a uniformly chosen neighbor passing f, or nil if none does.
func (t *Tile) RandomNeighbor(rng *rand.Rand, f NeighborFilter) (*Tile, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	var candidates [4]*Tile
	n := 0
	for _, nb := range t.neighbors {
		if nb != nil && f.Accepts(nb) {
			candidates[n] = nb
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	return candidates[rng.IntN(n)], nil
}
