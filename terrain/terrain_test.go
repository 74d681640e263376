package terrain

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tilelife/simerr"
)

type marker struct{}

func newEntities(t *testing.T, n int) []ecs.Entity {
	t.Helper()
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[marker](world)
	out := make([]ecs.Entity, n)
	for i := range out {
		out[i] = mapper.NewEntity(&marker{})
	}
	return out
}

func mustGrid(t *testing.T, rows, cols int) *Grid {
	t.Helper()
	g, err := NewGrid(rows, cols, 10)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

func TestNewGridRejectsInvalid(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		size       float64
	}{
		{"zero rows", 0, 3, 10},
		{"negative cols", 3, -1, 10},
		{"zero tile size", 3, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGrid(tt.rows, tt.cols, tt.size); !errors.Is(err, simerr.ErrConfiguration) {
				t.Errorf("err = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestAdjacencySymmetric(t *testing.T) {
	g := mustGrid(t, 4, 5)
	for _, tile := range g.Tiles() {
		count := 0
		for _, d := range Directions {
			n := tile.Neighbor(d)
			if n == nil {
				continue
			}
			count++
			if n.Neighbor(d.Opposite()) != tile {
				t.Errorf("tile (%d,%d) %s neighbor does not point back", tile.Row(), tile.Col(), d)
			}
		}
		interior := !tile.IsBorder()
		if interior && count != 4 {
			t.Errorf("interior tile (%d,%d) has %d neighbors", tile.Row(), tile.Col(), count)
		}
		if !interior && count >= 4 {
			t.Errorf("border tile (%d,%d) has %d neighbors", tile.Row(), tile.Col(), count)
		}
	}

	corner := g.At(0, 0)
	if corner.Neighbor(North) != nil || corner.Neighbor(West) != nil {
		t.Error("corner should have no north or west neighbor")
	}
}

func TestSetterRangeAndWater(t *testing.T) {
	g := mustGrid(t, 1, 1)
	tile := g.At(0, 0)

	for _, v := range []float64{-0.01, 1.01} {
		if err := tile.SetElevation(v); !errors.Is(err, simerr.ErrRange) {
			t.Errorf("SetElevation(%v) err = %v, want ErrRange", v, err)
		}
		if err := tile.SetMoisture(v); !errors.Is(err, simerr.ErrRange) {
			t.Errorf("SetMoisture(%v) err = %v, want ErrRange", v, err)
		}
	}

	tests := []struct {
		elevation float64
		water     bool
	}{
		{0, true},
		{0.30, true},
		{0.3001, false},
		{1, false},
	}
	for _, tt := range tests {
		if err := tile.SetElevation(tt.elevation); err != nil {
			t.Fatalf("SetElevation(%v): %v", tt.elevation, err)
		}
		if tile.HasWater() != tt.water {
			t.Errorf("elevation %v: HasWater = %v, want %v", tt.elevation, tile.HasWater(), tt.water)
		}
	}
}

func TestCoastRefresh(t *testing.T) {
	g := mustGrid(t, 1, 3)
	for _, tile := range g.Tiles() {
		if err := tile.SetElevation(0.5); err != nil {
			t.Fatal(err)
		}
	}
	if g.At(0, 1).IsCoast() {
		t.Fatal("all-land middle tile should not be coast")
	}

	if err := g.At(0, 0).SetElevation(0.1); err != nil {
		t.Fatal(err)
	}
	if !g.At(0, 1).IsCoast() {
		t.Error("land next to water should be coast")
	}
	if g.At(0, 0).IsCoast() {
		t.Error("water tile should never be coast")
	}
	if g.At(0, 2).IsCoast() {
		t.Error("tile two steps from water should not be coast")
	}
}

func TestOccupancy(t *testing.T) {
	g := mustGrid(t, 1, 2)
	a, b := g.At(0, 0), g.At(0, 1)
	es := newEntities(t, 3)

	if err := a.AddAnimal(es[0], a); err != nil {
		t.Fatalf("AddAnimal: %v", err)
	}
	if a.VisitCount() != 1 {
		t.Errorf("VisitCount = %d, want 1", a.VisitCount())
	}
	if err := a.AddAnimal(es[1], a); !errors.Is(err, simerr.ErrOccupancy) {
		t.Errorf("second animal err = %v, want ErrOccupancy", err)
	}
	if err := a.AddPlant(es[1], a); err != nil {
		t.Errorf("plant alongside animal: %v", err)
	}
	if err := b.AddPlant(es[2], a); !errors.Is(err, simerr.ErrInvariant) {
		t.Errorf("mismatched home err = %v, want ErrInvariant", err)
	}
	if err := a.RemoveAnimal(es[2]); !errors.Is(err, simerr.ErrInvariant) {
		t.Errorf("removing stranger err = %v, want ErrInvariant", err)
	}
	if err := a.RemoveAnimal(es[0]); err != nil {
		t.Errorf("RemoveAnimal: %v", err)
	}
	if a.HasAnimal() {
		t.Error("slot should be empty after removal")
	}
}

func TestRandomNeighborFilter(t *testing.T) {
	g := mustGrid(t, 3, 3)
	for _, tile := range g.Tiles() {
		if err := tile.SetElevation(0.5); err != nil {
			t.Fatal(err)
		}
	}
	center := g.At(1, 1)
	rng := rand.New(rand.NewPCG(1, 2))

	if _, err := center.RandomNeighbor(rng, NeighborFilter{NeedsWater: true, ExcludesWater: true}); !errors.Is(err, simerr.ErrConfiguration) {
		t.Errorf("conflicting filter err = %v, want ErrConfiguration", err)
	}

	got, err := center.RandomNeighbor(rng, NeighborFilter{NeedsWater: true})
	if err != nil || got != nil {
		t.Errorf("no water neighbor: got %v, err %v", got, err)
	}

	if err := g.At(2, 1).SetElevation(0.1); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		got, err := center.RandomNeighbor(rng, NeighborFilter{NeedsWater: true})
		if err != nil {
			t.Fatal(err)
		}
		if got != g.At(2, 1) {
			t.Fatalf("RandomNeighbor = %v, want the only water tile", got)
		}
		got, _ = center.RandomNeighbor(rng, NeighborFilter{ExcludesWater: true})
		if got == nil || got.HasWater() || !center.IsAdjacent(got) {
			t.Fatalf("ExcludesWater returned %v", got)
		}
	}
}

func TestNeighborsShuffled(t *testing.T) {
	g := mustGrid(t, 3, 3)
	center := g.At(1, 1)

	ordered := center.Neighbors(nil)
	if len(ordered) != 4 || ordered[0] != center.Neighbor(North) || ordered[3] != center.Neighbor(West) {
		t.Fatalf("Neighbors(nil) not in N/E/S/W order: %v", ordered)
	}

	shuffled := center.Neighbors(rand.New(rand.NewPCG(3, 4)))
	if len(shuffled) != 4 {
		t.Fatalf("shuffled len = %d", len(shuffled))
	}
	seen := map[*Tile]bool{}
	for _, n := range shuffled {
		seen[n] = true
	}
	for _, n := range ordered {
		if !seen[n] {
			t.Errorf("shuffled neighbors missing %v", n)
		}
	}
}

func TestTileLookup(t *testing.T) {
	g := mustGrid(t, 4, 6)

	if tile := g.TileAt(25, 31); tile == nil || tile.Row() != 3 || tile.Col() != 2 {
		t.Errorf("TileAt(25, 31) = %v, want (3,2)", tile)
	}
	if g.TileAt(-1, 5) != nil || g.TileAt(60, 5) != nil || g.TileAt(5, 40) != nil {
		t.Error("points outside the grid should return nil")
	}

	got := g.TilesIn(Rect{X: 5, Y: 5, W: 10, H: 10})
	if len(got) != 4 {
		t.Fatalf("TilesIn returned %d tiles, want 4", len(got))
	}
	if got[0] != g.At(0, 0) || got[3] != g.At(1, 1) {
		t.Errorf("TilesIn order wrong: %v", got)
	}
	if len(g.TilesIn(Rect{X: 0, Y: 0, W: 10, H: 10})) != 1 {
		t.Error("a rect matching one tile should return exactly that tile")
	}
}

func testParams(source string) NoiseParams {
	return NoiseParams{
		Source: source,
		Elevation: []Octave{
			{Frequency: 2, Offset: 0, Scale: 1},
			{Frequency: 4, Offset: 17.3, Scale: 0.5},
		},
		MoistureFrequency: 3,
		Fudge:             1.15,
		Power:             1.6,
	}
}

func TestGenerateDeterministic(t *testing.T) {
	for _, source := range []string{SourceOpenSimplex, SourcePerlin} {
		t.Run(source, func(t *testing.T) {
			a := mustGrid(t, 16, 24)
			b := mustGrid(t, 16, 24)
			if err := a.Generate(testParams(source), 99); err != nil {
				t.Fatal(err)
			}
			if err := b.Generate(testParams(source), 99); err != nil {
				t.Fatal(err)
			}
			for i := 0; i < a.Len(); i++ {
				ta, tb := a.Index(i), b.Index(i)
				if ta.Elevation() != tb.Elevation() || ta.Moisture() != tb.Moisture() {
					t.Fatalf("tile %d differs between identical seeds", i)
				}
				if ta.Elevation() < 0 || ta.Elevation() > 1 || ta.Moisture() < 0 || ta.Moisture() > 1 {
					t.Fatalf("tile %d out of range: e=%v m=%v", i, ta.Elevation(), ta.Moisture())
				}
				if ta.Biome() != Classify(ta.Elevation(), ta.Moisture()) {
					t.Fatalf("tile %d biome not derived", i)
				}
			}
		})
	}
}

func TestGenerateKeepsAdjacencyAndOccupants(t *testing.T) {
	g := mustGrid(t, 3, 3)
	center := g.At(1, 1)
	north := center.Neighbor(North)
	e := newEntities(t, 1)[0]
	if err := center.AddPlant(e, center); err != nil {
		t.Fatal(err)
	}

	if err := g.Generate(testParams(SourcePerlin), 5); err != nil {
		t.Fatal(err)
	}
	if center.Neighbor(North) != north {
		t.Error("regeneration rebuilt adjacency")
	}
	if center.Plant() != e {
		t.Error("regeneration dropped the occupant")
	}
}

func TestGenerateRejectsBadParams(t *testing.T) {
	g := mustGrid(t, 2, 2)
	bad := []NoiseParams{
		{Source: "value", Elevation: testParams("").Elevation, MoistureFrequency: 1, Fudge: 1, Power: 1},
		{MoistureFrequency: 1, Fudge: 1, Power: 1},
		{Elevation: []Octave{{Frequency: 1, Scale: 0}}, MoistureFrequency: 1, Fudge: 1, Power: 1},
		{Elevation: testParams("").Elevation, MoistureFrequency: 1, Fudge: 1, Power: 0},
	}
	for i, p := range bad {
		if err := g.Generate(p, 1); !errors.Is(err, simerr.ErrConfiguration) {
			t.Errorf("params %d: err = %v, want ErrConfiguration", i, err)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		e, m   float64
		want   Biome
		growth float64
	}{
		{0.30, 0.9, Ocean, 0},
		{0.33, 0.2, Beach, 0.25},
		{0.33, 0.5, Marsh, 0.55},
		{0.45, 0.1, SubtropicalDesert, 0.10},
		{0.45, 0.2, Grassland, 0.60},
		{0.45, 0.5, TropicalSeasonalForest, 0.90},
		{0.45, 0.9, TropicalRainForest, 1.00},
		{0.60, 0.1, TemperateDesert, 0.15},
		{0.60, 0.4, Grassland, 0.60},
		{0.60, 0.7, TemperateDeciduousForest, 0.85},
		{0.60, 0.9, TemperateRainForest, 0.95},
		{0.80, 0.2, TemperateDesert, 0.15},
		{0.80, 0.5, Shrubland, 0.40},
		{0.80, 0.8, Taiga, 0.50},
		{0.90, 0.05, Scorched, 0},
		{0.90, 0.15, Bare, 0.05},
		{0.90, 0.3, Tundra, 0.20},
		{0.90, 0.7, Snow, 0},
	}
	for _, tt := range tests {
		got := Classify(tt.e, tt.m)
		if got != tt.want {
			t.Errorf("Classify(%v, %v) = %s, want %s", tt.e, tt.m, got, tt.want)
		}
		if got.GrowthPotential() != tt.growth {
			t.Errorf("%s growth = %v, want %v", got, got.GrowthPotential(), tt.growth)
		}
	}
}
