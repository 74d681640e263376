// Package traits defines the heritable trait catalogue shared by all organisms.
package traits

// Trait identifies one gene of a genome.
type Trait uint8

const (
	// Appearance
	ColorRed Trait = iota
	ColorGreen
	ColorBlue

	// Combat
	AttackPower
	Defense

	// Habitat preferences (plants)
	MoisturePreference
	HeightPreference

	// Reproduction
	MutationChance
	MinReproductionHealth
	MinReproductionEnergy
	ReproductionChance
	EnergyToOffspringRatio

	// Count is the number of traits in the catalogue.
	Count
)

var names = [Count]string{
	ColorRed:               "color_red",
	ColorGreen:             "color_green",
	ColorBlue:              "color_blue",
	AttackPower:            "attack_power",
	Defense:                "defense",
	MoisturePreference:     "moisture_preference",
	HeightPreference:       "height_preference",
	MutationChance:         "mutation_chance",
	MinReproductionHealth:  "min_reproduction_health",
	MinReproductionEnergy:  "min_reproduction_energy",
	ReproductionChance:     "reproduction_chance",
	EnergyToOffspringRatio: "energy_to_offspring_ratio",
}

// String returns the snake_case name used in config files and CSV headers.
func (t Trait) String() string {
	if t >= Count {
		return "unknown"
	}
	return names[t]
}

// Valid reports whether t is part of the catalogue.
func (t Trait) Valid() bool {
	return t < Count
}

// Parse looks up a trait by its snake_case name.
func Parse(name string) (Trait, bool) {
	for i, n := range names {
		if n == name {
			return Trait(i), true
		}
	}
	return 0, false
}

// All returns every trait in catalogue order.
func All() []Trait {
	all := make([]Trait, Count)
	for i := range all {
		all[i] = Trait(i)
	}
	return all
}

// Set is a bitset of traits.
type Set uint16

// Has checks if the set contains a trait.
func (s Set) Has(t Trait) bool {
	return s&(1<<t) != 0
}

// Add adds a trait to the set.
func (s Set) Add(t Trait) Set {
	return s | 1<<t
}

// Remove removes a trait from the set.
func (s Set) Remove(t Trait) Set {
	return s &^ (1 << t)
}

// Traits returns the members of the set in catalogue order.
func (s Set) Traits() []Trait {
	var out []Trait
	for t := Trait(0); t < Count; t++ {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// NewSet builds a set from the given traits.
func NewSet(ts ...Trait) Set {
	var s Set
	for _, t := range ts {
		s = s.Add(t)
	}
	return s
}

// Common are carried by every organism kind.
var Common = NewSet(
	ColorRed, ColorGreen, ColorBlue,
	MutationChance,
	MinReproductionHealth, MinReproductionEnergy,
	ReproductionChance, EnergyToOffspringRatio,
)

// AnimalTraits is the fixed trait set of animals.
var AnimalTraits = Common.Add(AttackPower).Add(Defense)

// PlantTraits is the fixed trait set of plants.
var PlantTraits = Common.Add(Defense).Add(MoisturePreference).Add(HeightPreference)

// Color packs the three color genes into 8-bit channels.
func Color(red, green, blue float64) (r, g, b uint8) {
	return channel(red), channel(green), channel(blue)
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
