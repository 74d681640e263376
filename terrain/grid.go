// Package terrain provides the tile grid, its adjacency and noise-driven biome generation.
package terrain

import (
	"fmt"
	"math"

	"github.com/pthm-cable/tilelife/simerr"
)

// Grid is a fixed rows x cols arrangement of tiles in row-major order.
type Grid struct {
	rows, cols int
	tileSize   float64
	tiles      []Tile
	ptrs       []*Tile
}

// NewGrid allocates the tiles and wires cardinal adjacency. Terrain values
// start at zero (water) until Generate or the setters assign them.
func NewGrid(rows, cols int, tileSize float64) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("grid %dx%d: %w", rows, cols, simerr.ErrConfiguration)
	}
	if !(tileSize > 0) {
		return nil, fmt.Errorf("tile size %v: %w", tileSize, simerr.ErrConfiguration)
	}

	g := &Grid{
		rows:     rows,
		cols:     cols,
		tileSize: tileSize,
		tiles:    make([]Tile, rows*cols),
		ptrs:     make([]*Tile, rows*cols),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			t := &g.tiles[r*cols+c]
			t.row, t.col = r, c
			t.rect = Rect{X: float64(c) * tileSize, Y: float64(r) * tileSize, W: tileSize, H: tileSize}
			t.isBorder = r == 0 || c == 0 || r == rows-1 || c == cols-1
			t.derive()
			g.ptrs[r*cols+c] = t
		}
	}
	for i := range g.tiles {
		t := &g.tiles[i]
		t.neighbors[North] = g.At(t.row-1, t.col)
		t.neighbors[East] = g.At(t.row, t.col+1)
		t.neighbors[South] = g.At(t.row+1, t.col)
		t.neighbors[West] = g.At(t.row, t.col-1)
	}
	return g, nil
}

func (g *Grid) Rows() int         { return g.rows }
func (g *Grid) Cols() int         { return g.cols }
func (g *Grid) TileSize() float64 { return g.tileSize }
func (g *Grid) Width() float64    { return float64(g.cols) * g.tileSize }
func (g *Grid) Height() float64   { return float64(g.rows) * g.tileSize }
func (g *Grid) Len() int          { return len(g.tiles) }
func (g *Grid) Index(i int) *Tile { return g.ptrs[i] }

// Tiles returns every tile in row-major order. The slice must not be modified.
func (g *Grid) Tiles() []*Tile {
	return g.ptrs
}

// At returns the tile at (row, col), or nil when out of range.
func (g *Grid) At(row, col int) *Tile {
	if row < 0 || col < 0 || row >= g.rows || col >= g.cols {
		return nil
	}
	return &g.tiles[row*g.cols+col]
}

// TileAt returns the tile containing world point (x, y), or nil outside the grid.
func (g *Grid) TileAt(x, y float64) *Tile {
	if x < 0 || y < 0 || math.IsNaN(x) || math.IsNaN(y) {
		return nil
	}
	return g.At(int(y/g.tileSize), int(x/g.tileSize))
}

// TilesIn returns the tiles whose rectangles overlap r, in row-major order.
func (g *Grid) TilesIn(r Rect) []*Tile {
	if r.W <= 0 || r.H <= 0 {
		return nil
	}
	c0 := max(0, int(math.Floor(r.X/g.tileSize)))
	r0 := max(0, int(math.Floor(r.Y/g.tileSize)))
	c1 := min(g.cols-1, int(math.Ceil((r.X+r.W)/g.tileSize))-1)
	r1 := min(g.rows-1, int(math.Ceil((r.Y+r.H)/g.tileSize))-1)

	var out []*Tile
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			t := &g.tiles[row*g.cols+col]
			if t.rect.Intersects(r) {
				out = append(out, t)
			}
		}
	}
	return out
}

// BiomeHistogram counts tiles per biome.
func (g *Grid) BiomeHistogram() [BiomeCount]int {
	var h [BiomeCount]int
	for i := range g.tiles {
		h[g.tiles[i].biome]++
	}
	return h
}
