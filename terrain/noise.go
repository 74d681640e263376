package terrain

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/tilelife/simerr"
)

// Noise is a coherent 2D noise field returning values in roughly [-1, 1].
type Noise interface {
	Eval2(x, y float64) float64
}

// Noise source names accepted by NoiseParams.Source.
const (
	SourceOpenSimplex = "opensimplex"
	SourcePerlin      = "perlin"
)

// NewNoise builds the named noise source for seed.
func NewNoise(source string, seed int64) (Noise, error) {
	switch source {
	case "", SourceOpenSimplex:
		return opensimplex.New(seed), nil
	case SourcePerlin:
		return NewPerlinNoise(seed), nil
	default:
		return nil, fmt.Errorf("noise source %q: %w", source, simerr.ErrConfiguration)
	}
}

// PerlinNoise generates coherent noise values from a permutation table.
type PerlinNoise struct {
	perm [512]int
}

// NewPerlinNoise creates a new Perlin noise generator.
func NewPerlinNoise(seed int64) *PerlinNoise {
	p := &PerlinNoise{}
	rng := rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))

	var perm [256]int
	for i := range perm {
		perm[i] = i
	}
	rng.Shuffle(len(perm), func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})

	for i := 0; i < 256; i++ {
		p.perm[i] = perm[i]
		p.perm[i+256] = perm[i]
	}
	return p
}

// Eval2 returns the noise value at (x, y).
func (p *PerlinNoise) Eval2(x, y float64) float64 {
	X := int(math.Floor(x)) & 255
	Y := int(math.Floor(y)) & 255

	x -= math.Floor(x)
	y -= math.Floor(y)

	u := fade(x)
	v := fade(y)

	A := p.perm[X] + Y
	B := p.perm[X+1] + Y

	return lerp(v,
		lerp(u, grad2D(p.perm[A], x, y), grad2D(p.perm[B], x-1, y)),
		lerp(u, grad2D(p.perm[A+1], x, y-1), grad2D(p.perm[B+1], x-1, y-1)))
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad2D picks one of eight gradient directions.
func grad2D(hash int, x, y float64) float64 {
	switch hash & 7 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	case 3:
		return -x - y
	case 4:
		return x
	case 5:
		return -x
	case 6:
		return y
	default:
		return -y
	}
}
