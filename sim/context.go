package sim

import (
	"math/rand/v2"

	"github.com/pthm-cable/tilelife/components"
	"github.com/pthm-cable/tilelife/genetics"
)

// Counters is the organism registry: id allocation and birth/death tallies.
// Founders count as births.
type Counters struct {
	NextID uint64 // last id handed out; ids start at 1

	OrganismsBorn int
	OrganismsDied int
	Born          [components.KindCount]int
	Died          [components.KindCount]int
}

func (c Counters) AnimalsBorn() int { return c.Born[components.KindAnimal] }
func (c Counters) PlantsBorn() int  { return c.Born[components.KindPlant] }
func (c Counters) AnimalsDied() int { return c.Died[components.KindAnimal] }
func (c Counters) PlantsDied() int  { return c.Died[components.KindPlant] }

// Alive returns born minus died for kind k.
func (c Counters) Alive(k components.Kind) int {
	return c.Born[k] - c.Died[k]
}

// Context owns the mutable state shared by every organism of one run:
// the random source, the mutator and the registry counters.
// A fresh Context is a full reset.
type Context struct {
	Rand     *rand.Rand
	Mutator  *genetics.Mutator
	Counters Counters
}

// NewContext seeds a context for a run.
func NewContext(seed int64, policy genetics.Policy) *Context {
	rng := rand.New(rand.NewPCG(uint64(seed), 0xda3e39cb94b95bdb))
	return &Context{
		Rand:    rng,
		Mutator: genetics.NewMutator(policy, rng),
	}
}

func (c *Context) nextID() uint64 {
	c.Counters.NextID++
	return c.Counters.NextID
}

func (c *Context) born(k components.Kind) {
	c.Counters.OrganismsBorn++
	c.Counters.Born[k]++
}

func (c *Context) died(k components.Kind) {
	c.Counters.OrganismsDied++
	c.Counters.Died[k]++
}
