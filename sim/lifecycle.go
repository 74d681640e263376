package sim

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tilelife/components"
	"github.com/pthm-cable/tilelife/genetics"
	"github.com/pthm-cable/tilelife/simerr"
	"github.com/pthm-cable/tilelife/systems"
	"github.com/pthm-cable/tilelife/telemetry"
	"github.com/pthm-cable/tilelife/terrain"
)

// update runs one organism's turn. Creating or removing entities may move
// component storage, so pointers are fetched again after each such step.
func (w *World) update(e ecs.Entity) error {
	id := w.identityMap.Get(e)
	kind, orgID := id.Kind, id.ID
	b := systems.BehaviorOf(kind)
	k := w.opts.Kinds[kind]

	tile := w.placementMap.Get(e).Tile
	if tile == nil {
		return fmt.Errorf("live organism without a tile: %w", simerr.ErrInvariant)
	}

	v := w.vitalsMap.Get(e)
	systems.Maintain(v, k)

	ready, err := systems.ReadyToReproduce(*v, k, w.genomeMap.Get(e), w.ctx.Rand.Float64())
	if err != nil {
		return err
	}
	if ready {
		if err := w.reproduce(e); err != nil {
			return err
		}
		v = w.vitalsMap.Get(e)
	}

	if b.Drowns && systems.Drown(v, k, tile) {
		w.record(telemetry.NewDrownEvent(w.tick, orgID, k.WaterDamage))
	}

	var dest *terrain.Tile
	if b.Forages {
		dest, err = systems.ChooseForageTile(tile, w.ctx.Rand, w.plantHealth)
		if err != nil {
			return err
		}
	}

	if b.Income != nil {
		gain := b.Income(w.ctx.Rand.Float64(), tile, w.genomeMap.Get(e), k)
		systems.GainEnergy(v, k, gain)
		w.lifetimeMap.Get(e).EnergyGained += gain
	}

	if b.Forages && tile.HasPlant() {
		hungry, err := systems.WantsToEat(*v, k)
		if err != nil {
			return err
		}
		if hungry {
			if err := w.attack(e, tile.Plant()); err != nil {
				return err
			}
			v = w.vitalsMap.Get(e)
		}
	}

	if dest != nil && !b.Occupied(dest) {
		if err := w.move(e, b, dest); err != nil {
			return err
		}
		w.record(telemetry.NewMoveEvent(w.tick, orgID))
	}

	if v.Health <= 0 {
		return w.kill(e)
	}
	return nil
}

func (w *World) plantHealth(e ecs.Entity) float64 {
	return w.vitalsMap.Get(e).Health
}

// move transfers e from its tile to dest.
func (w *World) move(e ecs.Entity, b *systems.Behavior, dest *terrain.Tile) error {
	p := w.placementMap.Get(e)
	if err := b.Detach(p.Tile, e); err != nil {
		return err
	}
	p.Tile = dest
	if err := b.Attach(dest, e, p.Tile); err != nil {
		return err
	}
	w.lifetimeMap.Get(e).TilesVisited++
	return nil
}

// attack bites target once. A target brought to zero health dies at once.
func (w *World) attack(attacker, target ecs.Entity) error {
	from := w.placementMap.Get(attacker).Tile
	to := w.placementMap.Get(target).Tile
	if from == nil || to == nil || (from != to && !from.IsAdjacent(to)) {
		return fmt.Errorf("attack target out of reach: %w", simerr.ErrInvariant)
	}

	attackerID := w.identityMap.Get(attacker)
	victim := w.identityMap.Get(target)
	victimKind, victimID := victim.Kind, victim.ID

	damage := systems.BiteDamage(w.genomeMap.Get(attacker), w.genomeMap.Get(target))
	tv := w.vitalsMap.Get(target)
	gain := systems.Bite(tv, w.opts.Kinds[victimKind], damage)
	systems.GainEnergy(w.vitalsMap.Get(attacker), w.opts.Kinds[attackerID.Kind], gain)

	life := w.lifetimeMap.Get(attacker)
	life.OrganismsAttacked++
	life.EnergyGained += gain
	w.record(telemetry.NewAttackEvent(w.tick, attackerID.ID, victimID, damage))

	if tv.Health > 0 {
		return nil
	}
	switch victimKind {
	case components.KindPlant:
		life.PlantsKilled++
	case components.KindAnimal:
		life.AnimalsKilled++
	}
	w.record(telemetry.NewKillEvent(w.tick, attackerID.ID, victimID, victimKind))
	return w.kill(target)
}

// reproduce places one offspring on a free neighbor. No free neighbor or
// a child that would be born without health means no birth.
func (w *World) reproduce(parent ecs.Entity) error {
	id := w.identityMap.Get(parent)
	kind, parentID := id.Kind, id.ID
	b := systems.BehaviorOf(kind)

	site, err := w.placementMap.Get(parent).Tile.RandomNeighbor(w.ctx.Rand, b.Birthplace)
	if err != nil || site == nil {
		return err
	}

	g := w.genomeMap.Get(parent)
	child, ok := systems.OffspringVitals(w.vitalsMap.Get(parent), w.opts.Kinds[kind], g, w.opts.OffspringEnergyShare)
	if !ok {
		return nil
	}
	genome := g.Copy()
	genome.Mutate(w.ctx.Mutator)
	w.lifetimeMap.Get(parent).Offspring++

	_, err = w.create(kind, site, child, genome, parentID)
	return err
}

// create adds an organism to the world and attaches it to tile.
func (w *World) create(kind components.Kind, tile *terrain.Tile, vitals components.Vitals, genome genetics.Genome, parentID uint64) (ecs.Entity, error) {
	id := components.Identity{
		ID:        w.ctx.nextID(),
		Kind:      kind,
		ParentID:  parentID,
		BirthTick: w.tick,
	}
	placement := components.Placement{Tile: tile}
	var life components.Lifetime

	e := w.mapper.NewEntity(&id, &vitals, &placement, &genome, &life)
	if err := systems.BehaviorOf(kind).Attach(tile, e, tile); err != nil {
		w.ecs.RemoveEntity(e)
		return ecs.Entity{}, err
	}

	w.ctx.born(kind)
	w.record(telemetry.NewBirthEvent(w.tick, id.ID, parentID, kind))
	return e, nil
}

// kill detaches e from its tile, settles the death tallies and removes it.
func (w *World) kill(e ecs.Entity) error {
	id := w.identityMap.Get(e)
	p := w.placementMap.Get(e)
	if id.Dead || p.Tile == nil {
		return fmt.Errorf("organism %d killed twice: %w", id.ID, simerr.ErrInvariant)
	}
	if err := systems.BehaviorOf(id.Kind).Detach(p.Tile, e); err != nil {
		return err
	}
	p.Tile = nil
	id.Dead = true
	id.DeathTick = w.tick
	w.ctx.died(id.Kind)

	var row *telemetry.OrganismRow
	if w.opts.EmitDeathRows {
		r := w.row(e)
		row = &r
	}
	w.record(telemetry.NewDeathEvent(w.tick, id.ID, id.Kind, row))

	w.ecs.RemoveEntity(e)
	return nil
}
