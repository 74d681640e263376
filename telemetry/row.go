package telemetry

import (
	"strconv"

	"github.com/pthm-cable/tilelife/traits"
)

// OptionalInt is an integer cell that exports empty when unset.
type OptionalInt struct {
	Value int
	Valid bool
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (o OptionalInt) MarshalCSV() (string, error) {
	if !o.Valid {
		return "", nil
	}
	return strconv.Itoa(o.Value), nil
}

// OptionalFloat is a float cell that exports empty when unset.
type OptionalFloat struct {
	Value float64
	Valid bool
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (o OptionalFloat) MarshalCSV() (string, error) {
	if !o.Valid {
		return "", nil
	}
	return strconv.FormatFloat(o.Value, 'g', -1, 64), nil
}

// OrganismRow is the per-organism stats record. Column order is stable:
// the lifecycle columns first, then one gene column per trait in
// catalogue order. Genes the organism's kind lacks stay empty.
type OrganismRow struct {
	Kind              string        `csv:"kind"`
	ID                uint64        `csv:"id"`
	BirthTick         int           `csv:"birth_tick"`
	DeathTick         OptionalInt   `csv:"death_tick"`
	LifetimeTicks     int           `csv:"lifetime_ticks"`
	Health            float64       `csv:"health"`
	MaxHealth         float64       `csv:"max_health"`
	HealthRatio       float64       `csv:"health_ratio"`
	Energy            float64       `csv:"energy"`
	MaxEnergy         float64       `csv:"max_energy"`
	EnergyRatio       float64       `csv:"energy_ratio"`
	TotalEnergyGained float64       `csv:"total_energy_gained"`
	TilesVisited      int           `csv:"tiles_visited"`
	AttackPower       OptionalFloat `csv:"attack_power"`
	OrganismsAttacked int           `csv:"organisms_attacked"`
	AnimalsKilled     int           `csv:"animals_killed"`
	PlantsKilled      int           `csv:"plants_killed"`
	ParentID          uint64        `csv:"parent_id"`
	OffspringCount    int           `csv:"offspring_count"`

	ColorRed               OptionalFloat `csv:"gene_color_red"`
	ColorGreen             OptionalFloat `csv:"gene_color_green"`
	ColorBlue              OptionalFloat `csv:"gene_color_blue"`
	GeneAttackPower        OptionalFloat `csv:"gene_attack_power"`
	Defense                OptionalFloat `csv:"gene_defense"`
	MoisturePreference     OptionalFloat `csv:"gene_moisture_preference"`
	HeightPreference       OptionalFloat `csv:"gene_height_preference"`
	MutationChance         OptionalFloat `csv:"gene_mutation_chance"`
	MinReproductionHealth  OptionalFloat `csv:"gene_min_reproduction_health"`
	MinReproductionEnergy  OptionalFloat `csv:"gene_min_reproduction_energy"`
	ReproductionChance     OptionalFloat `csv:"gene_reproduction_chance"`
	EnergyToOffspringRatio OptionalFloat `csv:"gene_energy_to_offspring_ratio"`
}

// SetGene fills the column of trait t.
func (r *OrganismRow) SetGene(t traits.Trait, v float64) {
	if c := r.gene(t); c != nil {
		*c = OptionalFloat{Value: v, Valid: true}
	}
}

// Gene returns the column of trait t.
func (r *OrganismRow) Gene(t traits.Trait) OptionalFloat {
	if c := r.gene(t); c != nil {
		return *c
	}
	return OptionalFloat{}
}

func (r *OrganismRow) gene(t traits.Trait) *OptionalFloat {
	switch t {
	case traits.ColorRed:
		return &r.ColorRed
	case traits.ColorGreen:
		return &r.ColorGreen
	case traits.ColorBlue:
		return &r.ColorBlue
	case traits.AttackPower:
		return &r.GeneAttackPower
	case traits.Defense:
		return &r.Defense
	case traits.MoisturePreference:
		return &r.MoisturePreference
	case traits.HeightPreference:
		return &r.HeightPreference
	case traits.MutationChance:
		return &r.MutationChance
	case traits.MinReproductionHealth:
		return &r.MinReproductionHealth
	case traits.MinReproductionEnergy:
		return &r.MinReproductionEnergy
	case traits.ReproductionChance:
		return &r.ReproductionChance
	case traits.EnergyToOffspringRatio:
		return &r.EnergyToOffspringRatio
	default:
		return nil
	}
}
