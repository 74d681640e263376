// Package game drives a headless simulation run: it owns the world, the
// telemetry collectors and the CSV output for one seed.
package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/tilelife/components"
	"github.com/pthm-cable/tilelife/config"
	"github.com/pthm-cable/tilelife/sim"
	"github.com/pthm-cable/tilelife/telemetry"
)

// Options configures a run beyond what the config file holds.
type Options struct {
	Seed        int64  // overrides world.seed when non-zero
	LogStats    bool   // log window and perf stats via slog
	StatsWindow int    // ticks per stats window; 0 keeps the config value
	OutputDir   string // empty disables CSV output

	// StatsCallback receives every flushed window; nil to skip.
	StatsCallback func(telemetry.WindowStats)
}

// Game is one simulation run.
type Game struct {
	cfg   *config.Config
	world *sim.World

	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager

	statsCallback func(telemetry.WindowStats)
	logStats      bool
	seed          int64
}

// NewGameWithOptions builds the world, spawns the founders and opens the
// output files.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	if opts.Seed != 0 {
		cfg.World.Seed = opts.Seed
	}
	if opts.StatsWindow > 0 {
		cfg.Telemetry.StatsWindow = opts.StatsWindow
	}

	simOpts, err := sim.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:           cfg,
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Telemetry.EmitDeathRows),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
		seed:          cfg.World.Seed,
	}
	if cfg.Bookmarks.Enabled {
		g.bookmarkDetector = telemetry.NewBookmarkDetector(cfg.Bookmarks.HistorySize)
	}

	simOpts.Recorder = g.collector
	simOpts.Timer = g.perfCollector
	g.world, err = sim.New(simOpts)
	if err != nil {
		return nil, err
	}

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		g.outputManager.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	if err := g.spawnInitialPopulation(); err != nil {
		g.outputManager.Close()
		return nil, err
	}
	return g, nil
}

// spawnInitialPopulation seeds plants first so animals start with food nearby.
func (g *Game) spawnInitialPopulation() error {
	plants, err := g.world.SpawnPlants(g.cfg.Population.PlantSpawnChance)
	if err != nil {
		return fmt.Errorf("spawning plants: %w", err)
	}
	animals, err := g.world.SpawnAnimals(g.cfg.Population.AnimalSpawnChance)
	if err != nil {
		return fmt.Errorf("spawning animals: %w", err)
	}
	slog.Info("initial population",
		"run_id", g.outputManager.RunID(),
		"seed", g.seed,
		"mutation_policy", g.world.Context().Mutator.Policy().String(),
		"plants", plants,
		"animals", animals,
	)
	return nil
}

// UpdateHeadless advances one tick and flushes telemetry when a window closes.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartTick()
	g.world.Tick()
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.perfCollector.EndTick()
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int {
	return g.world.Age()
}

// World exposes the simulation.
func (g *Game) World() *sim.World {
	return g.world
}

// AnimalCount returns the number of living animals.
func (g *Game) AnimalCount() int {
	return g.world.Counters().Alive(components.KindAnimal)
}

// PlantCount returns the number of living plants.
func (g *Game) PlantCount() int {
	return g.world.Counters().Alive(components.KindPlant)
}

// Extinct reports whether no organism is left.
func (g *Game) Extinct() bool {
	c := g.world.Counters()
	return c.OrganismsBorn == c.OrganismsDied
}

// Unload writes the rows of the survivors and closes the output files.
func (g *Game) Unload() {
	if err := g.outputManager.WriteOrganisms(g.collector.DrainDeathRows()); err != nil {
		slog.Error("failed to write organisms", "error", err)
	}
	if err := g.outputManager.WriteOrganisms(g.world.Rows()); err != nil {
		slog.Error("failed to write organisms", "error", err)
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
