package telemetry

import "github.com/pthm-cable/tilelife/components"

// Collector accumulates events within tick windows and produces WindowStats.
// It implements Recorder.
type Collector struct {
	windowTicks     int
	windowStartTick int
	keepDeathRows   bool

	// Event counters for current window
	births    [components.KindCount]int
	deaths    [components.KindCount]int
	attacks   int
	kills     [components.KindCount]int
	drownings int
	moves     int
	damage    float64
	deathRows []OrganismRow
}

// NewCollector creates a stats collector flushing every windowTicks ticks.
// When keepDeathRows is set the finalized rows of dead organisms are
// buffered until DrainDeathRows.
func NewCollector(windowTicks int, keepDeathRows bool) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks:   windowTicks,
		keepDeathRows: keepDeathRows,
	}
}

// Record implements Recorder.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventBirth:
		c.births[ev.Kind]++
	case EventDeath:
		c.deaths[ev.Kind]++
		if c.keepDeathRows && ev.Row != nil {
			c.deathRows = append(c.deathRows, *ev.Row)
		}
	case EventAttack:
		c.attacks++
		c.damage += ev.Amount
	case EventKill:
		c.kills[ev.Kind]++
	case EventDrown:
		c.drownings++
	case EventMove:
		c.moves++
	}
}

// DrainDeathRows returns and clears the buffered death rows.
func (c *Collector) DrainDeathRows() []OrganismRow {
	rows := c.deathRows
	c.deathRows = nil
	return rows
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Population is a snapshot of the living organisms taken at window end.
type Population struct {
	Animals         int
	Plants          int
	AnimalEnergies  []float64
	PlantEnergies   []float64
	AttackPowers    []float64
	MutationChances []float64

	// Cumulative registry counters
	TotalBorn int
	TotalDied int
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int, pop Population) WindowStats {
	animalMean, animalP10, animalP50, animalP90 := ComputeEnergyStats(pop.AnimalEnergies)
	plantMean, plantP10, plantP50, plantP90 := ComputeEnergyStats(pop.PlantEnergies)
	attackMean, attackStd := ComputeSpread(pop.AttackPowers)
	mutationMean, _ := ComputeSpread(pop.MutationChances)

	var killRate float64
	if c.attacks > 0 {
		killRate = float64(c.kills[components.KindPlant]) / float64(c.attacks)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Animals: pop.Animals,
		Plants:  pop.Plants,

		AnimalBirths: c.births[components.KindAnimal],
		PlantBirths:  c.births[components.KindPlant],
		AnimalDeaths: c.deaths[components.KindAnimal],
		PlantDeaths:  c.deaths[components.KindPlant],

		Attacks:     c.attacks,
		PlantKills:  c.kills[components.KindPlant],
		AnimalKills: c.kills[components.KindAnimal],
		KillRate:    killRate,
		DamageDealt: c.damage,
		Drownings:   c.drownings,
		Moves:       c.moves,

		AnimalEnergyMean: animalMean,
		AnimalEnergyP10:  animalP10,
		AnimalEnergyP50:  animalP50,
		AnimalEnergyP90:  animalP90,

		PlantEnergyMean: plantMean,
		PlantEnergyP10:  plantP10,
		PlantEnergyP50:  plantP50,
		PlantEnergyP90:  plantP90,

		AttackPowerMean:    attackMean,
		AttackPowerStd:     attackStd,
		MutationChanceMean: mutationMean,

		TotalBorn: pop.TotalBorn,
		TotalDied: pop.TotalDied,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = [components.KindCount]int{}
	c.deaths = [components.KindCount]int{}
	c.kills = [components.KindCount]int{}
	c.attacks = 0
	c.drownings = 0
	c.moves = 0
	c.damage = 0

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int {
	return c.windowTicks
}
