package components

// Vitals tracks an organism's metabolic state.
// Health may drop below zero within a tick; Energy stays in [0, MaxEnergy].
type Vitals struct {
	Health float64
	Energy float64
	Age    int // ticks lived
}

// Lifetime accumulates per-organism counters reported on death.
type Lifetime struct {
	TilesVisited      int
	OrganismsAttacked int
	AnimalsKilled     int
	PlantsKilled      int
	Offspring         int
	EnergyGained      float64
}

// KindConstants are shared by every organism of one kind.
type KindConstants struct {
	MaxHealth          float64
	MaxEnergy          float64
	NutritionFactor    float64 // energy gained per point of damage taken by this kind
	ReproductionChance float64 // founder value of the reproduction_chance gene
	MaintenanceCost    float64 // energy spent per tick
	WaterDamage        float64 // health lost per tick on a water tile
	Photosynthesis     float64 // income multiplier; zero for kinds without income
}
