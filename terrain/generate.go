package terrain

import (
	"fmt"
	"math"

	"github.com/pthm-cable/tilelife/simerr"
)

// Octave is one layer of elevation noise.
type Octave struct {
	Frequency float64
	Offset    float64
	Scale     float64
}

// NoiseParams controls terrain generation.
type NoiseParams struct {
	Source            string
	Elevation         []Octave
	MoistureFrequency float64
	Fudge             float64
	Power             float64
}

// Validate checks that the parameters can produce a terrain.
func (p NoiseParams) Validate() error {
	if p.Source != "" && p.Source != SourceOpenSimplex && p.Source != SourcePerlin {
		return fmt.Errorf("noise source %q: %w", p.Source, simerr.ErrConfiguration)
	}
	if len(p.Elevation) == 0 {
		return fmt.Errorf("no elevation octaves: %w", simerr.ErrConfiguration)
	}
	var total float64
	for i, o := range p.Elevation {
		if !(o.Frequency > 0) {
			return fmt.Errorf("octave %d frequency %v: %w", i, o.Frequency, simerr.ErrConfiguration)
		}
		if o.Scale < 0 {
			return fmt.Errorf("octave %d scale %v: %w", i, o.Scale, simerr.ErrConfiguration)
		}
		total += o.Scale
	}
	if !(total > 0) {
		return fmt.Errorf("octave scales sum to %v: %w", total, simerr.ErrConfiguration)
	}
	if !(p.MoistureFrequency > 0) {
		return fmt.Errorf("moisture frequency %v: %w", p.MoistureFrequency, simerr.ErrConfiguration)
	}
	if !(p.Fudge > 0) || !(p.Power > 0) {
		return fmt.Errorf("fudge %v / power %v must be positive: %w", p.Fudge, p.Power, simerr.ErrConfiguration)
	}
	return nil
}

// Generate recomputes elevation, moisture, biome and coast flags of every
// tile. Adjacency and occupants are left untouched.
func (g *Grid) Generate(p NoiseParams, seed int64) error {
	if err := p.Validate(); err != nil {
		return err
	}
	elevation, err := NewNoise(p.Source, seed)
	if err != nil {
		return err
	}
	moisture, err := NewNoise(p.Source, seed+1)
	if err != nil {
		return err
	}

	var total float64
	for _, o := range p.Elevation {
		total += o.Scale
	}

	for i := range g.tiles {
		t := &g.tiles[i]
		nx := float64(t.col)/float64(g.cols) - 0.5
		ny := float64(t.row)/float64(g.rows) - 0.5

		var h float64
		for _, o := range p.Elevation {
			h += o.Scale * elevation.Eval2(o.Frequency*nx+o.Offset, o.Frequency*ny+o.Offset)
		}
		h = clamp01((h/total + 1) / 2)
		t.elevation = clamp01(math.Pow(h*p.Fudge, p.Power))

		m := moisture.Eval2(p.MoistureFrequency*nx, p.MoistureFrequency*ny)
		t.moisture = clamp01((m + 1) / 2)

		t.derive()
	}
	for i := range g.tiles {
		g.tiles[i].updateCoast()
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
