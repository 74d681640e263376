package sim

import (
	"cmp"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tilelife/components"
	"github.com/pthm-cable/tilelife/telemetry"
	"github.com/pthm-cable/tilelife/traits"
)

// Row returns the stats row of a living organism.
func (w *World) Row(e ecs.Entity) (telemetry.OrganismRow, bool) {
	if !w.Alive(e) {
		return telemetry.OrganismRow{}, false
	}
	return w.row(e), true
}

// Rows returns the rows of every living organism ordered by id.
func (w *World) Rows() []telemetry.OrganismRow {
	var rows []telemetry.OrganismRow
	query := w.filter.Query()
	for query.Next() {
		id, v, _, g, life := query.Get()
		rows = append(rows, w.buildRow(id, v, g.Value, g.Traits(), life))
	}
	slices.SortFunc(rows, func(a, b telemetry.OrganismRow) int { return cmp.Compare(a.ID, b.ID) })
	return rows
}

// Population summarizes the living organisms for a stats window.
func (w *World) Population() telemetry.Population {
	pop := telemetry.Population{
		TotalBorn: w.ctx.Counters.OrganismsBorn,
		TotalDied: w.ctx.Counters.OrganismsDied,
	}
	query := w.filter.Query()
	for query.Next() {
		id, v, _, g, _ := query.Get()
		switch id.Kind {
		case components.KindAnimal:
			pop.Animals++
			pop.AnimalEnergies = append(pop.AnimalEnergies, v.Energy)
			pop.AttackPowers = append(pop.AttackPowers, g.Value(traits.AttackPower))
		case components.KindPlant:
			pop.Plants++
			pop.PlantEnergies = append(pop.PlantEnergies, v.Energy)
		}
		pop.MutationChances = append(pop.MutationChances, g.Value(traits.MutationChance))
	}
	return pop
}

func (w *World) row(e ecs.Entity) telemetry.OrganismRow {
	g := w.genomeMap.Get(e)
	return w.buildRow(w.identityMap.Get(e), w.vitalsMap.Get(e), g.Value, g.Traits(), w.lifetimeMap.Get(e))
}

func (w *World) buildRow(id *components.Identity, v *components.Vitals, gene func(traits.Trait) float64, ts []traits.Trait, life *components.Lifetime) telemetry.OrganismRow {
	k := w.opts.Kinds[id.Kind]
	row := telemetry.OrganismRow{
		Kind:              id.Kind.String(),
		ID:                id.ID,
		BirthTick:         id.BirthTick,
		DeathTick:         telemetry.OptionalInt{Value: id.DeathTick, Valid: id.Dead},
		LifetimeTicks:     v.Age,
		Health:            v.Health,
		MaxHealth:         k.MaxHealth,
		HealthRatio:       v.Health / k.MaxHealth,
		Energy:            v.Energy,
		MaxEnergy:         k.MaxEnergy,
		EnergyRatio:       v.Energy / k.MaxEnergy,
		TotalEnergyGained: life.EnergyGained,
		TilesVisited:      life.TilesVisited,
		OrganismsAttacked: life.OrganismsAttacked,
		AnimalsKilled:     life.AnimalsKilled,
		PlantsKilled:      life.PlantsKilled,
		ParentID:          id.ParentID,
		OffspringCount:    life.Offspring,
	}
	for _, t := range ts {
		row.SetGene(t, gene(t))
		if t == traits.AttackPower {
			row.AttackPower = telemetry.OptionalFloat{Value: gene(t), Valid: true}
		}
	}
	return row
}
