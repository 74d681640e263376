// Package sim owns the organism population and advances it one tick at a time.
package sim

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tilelife/components"
	"github.com/pthm-cable/tilelife/genetics"
	"github.com/pthm-cable/tilelife/simerr"
	"github.com/pthm-cable/tilelife/telemetry"
	"github.com/pthm-cable/tilelife/terrain"
)

// World is the grid plus every organism living on it.
type World struct {
	opts Options
	grid *terrain.Grid
	ctx  *Context

	ecs *ecs.World

	// Entity creation
	mapper *ecs.Map5[
		components.Identity,
		components.Vitals,
		components.Placement,
		genetics.Genome,
		components.Lifetime,
	]
	filter *ecs.Filter5[
		components.Identity,
		components.Vitals,
		components.Placement,
		genetics.Genome,
		components.Lifetime,
	]

	// Component lookups
	identityMap  *ecs.Map1[components.Identity]
	vitalsMap    *ecs.Map1[components.Vitals]
	placementMap *ecs.Map1[components.Placement]
	genomeMap    *ecs.Map1[genetics.Genome]
	lifetimeMap  *ecs.Map1[components.Lifetime]

	recorder telemetry.Recorder
	timer    PhaseTimer

	tick  int
	order []turn // reused per tick
}

type turn struct {
	entity ecs.Entity
	id     uint64
}

// New builds the grid, generates terrain and prepares an empty population.
func New(opts Options) (*World, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	grid, err := terrain.NewGrid(opts.Rows, opts.Cols, opts.TileSize)
	if err != nil {
		return nil, err
	}
	if err := grid.Generate(opts.Noise, opts.Seed); err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	w := &World{
		opts: opts,
		grid: grid,
		ctx:  NewContext(opts.Seed, opts.Policy),
		ecs:  world,
		mapper: ecs.NewMap5[
			components.Identity,
			components.Vitals,
			components.Placement,
			genetics.Genome,
			components.Lifetime,
		](world),
		filter: ecs.NewFilter5[
			components.Identity,
			components.Vitals,
			components.Placement,
			genetics.Genome,
			components.Lifetime,
		](world),
		identityMap:  ecs.NewMap1[components.Identity](world),
		vitalsMap:    ecs.NewMap1[components.Vitals](world),
		placementMap: ecs.NewMap1[components.Placement](world),
		genomeMap:    ecs.NewMap1[genetics.Genome](world),
		lifetimeMap:  ecs.NewMap1[components.Lifetime](world),
		recorder:     opts.Recorder,
		timer:        opts.Timer,
	}
	if w.recorder == nil {
		w.recorder = telemetry.Discard
	}
	return w, nil
}

// Age is the number of completed ticks.
func (w *World) Age() int { return w.tick }

// Grid exposes the tile grid.
func (w *World) Grid() *terrain.Grid { return w.grid }

// TileAt returns the tile containing world point (x, y), or nil.
func (w *World) TileAt(x, y float64) *terrain.Tile { return w.grid.TileAt(x, y) }

// TilesIn returns the tiles intersecting r in row-major order.
func (w *World) TilesIn(r terrain.Rect) []*terrain.Tile { return w.grid.TilesIn(r) }

// Context returns the run context.
func (w *World) Context() *Context { return w.ctx }

// Counters returns a copy of the registry counters.
func (w *World) Counters() Counters { return w.ctx.Counters }

// Kind returns the constants of kind k.
func (w *World) Kind(k components.Kind) components.KindConstants { return w.opts.Kinds[k] }

// Regenerate replaces terrain with a new noise pass. Adjacency and
// occupants stay as they are; organisms left on water drown over time.
func (w *World) Regenerate(p terrain.NoiseParams, seed int64) error {
	if err := w.grid.Generate(p, seed); err != nil {
		return err
	}
	w.opts.Noise, w.opts.Seed = p, seed
	return nil
}

// Alive reports whether e is a living organism.
func (w *World) Alive(e ecs.Entity) bool {
	return !e.IsZero() && w.ecs.Alive(e)
}

// Tick advances the simulation by one step. Every organism alive at the
// start of the tick acts once, in a shuffled order. Newborns act from the
// next tick on. An invariant violation aborts the run with a panic.
func (w *World) Tick() {
	w.startPhase(telemetry.PhaseCollect)
	w.order = w.order[:0]
	query := w.filter.Query()
	for query.Next() {
		id, _, _, _, _ := query.Get()
		w.order = append(w.order, turn{entity: query.Entity(), id: id.ID})
	}
	// Archetype order depends on history; sort so the shuffle sees a stable input.
	slices.SortFunc(w.order, func(a, b turn) int { return cmp.Compare(a.id, b.id) })

	w.startPhase(telemetry.PhaseShuffle)
	w.ctx.Rand.Shuffle(len(w.order), func(i, j int) {
		w.order[i], w.order[j] = w.order[j], w.order[i]
	})

	w.startPhase(telemetry.PhaseOrganisms)
	for _, t := range w.order {
		if !w.ecs.Alive(t.entity) {
			continue
		}
		if err := w.update(t.entity); err != nil {
			panic(fmt.Errorf("tick %d organism %d: %w", w.tick, t.id, asDefect(err)))
		}
	}

	w.tick++
}

// asDefect classifies an error escaping an organism update. Anything that is
// not already an occupancy or invariant error is reported as an invariant
// violation, keeping its original cause.
func asDefect(err error) error {
	if simerr.IsDefect(err) {
		return err
	}
	return fmt.Errorf("%w: %w", simerr.ErrInvariant, err)
}

func (w *World) startPhase(phase string) {
	if w.timer != nil {
		w.timer.StartPhase(phase)
	}
}

func (w *World) record(ev telemetry.Event) {
	w.recorder.Record(ev)
}
