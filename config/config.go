// Package config provides configuration loading for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/tilelife/genetics"
	"github.com/pthm-cable/tilelife/simerr"
	"github.com/pthm-cable/tilelife/traits"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World        WorldConfig        `yaml:"world"`
	Terrain      TerrainConfig      `yaml:"terrain"`
	Population   PopulationConfig   `yaml:"population"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Mutation     MutationConfig     `yaml:"mutation"`
	Organisms    OrganismsConfig    `yaml:"organisms"`
	Genes        GenesConfig        `yaml:"genes"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
	Bookmarks    BookmarksConfig    `yaml:"bookmarks"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds grid dimensions and the run seed.
type WorldConfig struct {
	Rows     int     `yaml:"rows"`
	Cols     int     `yaml:"cols"`
	TileSize float64 `yaml:"tile_size"` // world units per tile edge
	Seed     int64   `yaml:"seed"`
}

// OctaveConfig is one layer of elevation noise.
type OctaveConfig struct {
	Frequency float64 `yaml:"frequency"`
	Offset    float64 `yaml:"offset"`
	Scale     float64 `yaml:"scale"`
}

// TerrainConfig holds terrain generation parameters.
type TerrainConfig struct {
	Noise             string         `yaml:"noise"` // opensimplex or perlin
	ElevationOctaves  []OctaveConfig `yaml:"elevation_octaves"`
	MoistureFrequency float64        `yaml:"moisture_frequency"`
	Fudge             float64        `yaml:"fudge"`
	Power             float64        `yaml:"power"`
}

// PopulationConfig holds initial spawning parameters.
type PopulationConfig struct {
	AnimalSpawnChance  float64 `yaml:"animal_spawn_chance"` // per eligible tile
	PlantSpawnChance   float64 `yaml:"plant_spawn_chance"`
	InitialHealthRatio float64 `yaml:"initial_health_ratio"` // founder health / max health
	InitialEnergyRatio float64 `yaml:"initial_energy_ratio"`
}

// ReproductionConfig holds offspring parameters.
type ReproductionConfig struct {
	OffspringEnergyShare float64 `yaml:"offspring_energy_share"` // share of the transfer kept as energy; rest becomes health
}

// MutationConfig selects the mutation offset distribution.
type MutationConfig struct {
	Policy string `yaml:"policy"` // see genetics.ParsePolicy
}

// KindConfig holds the constants shared by all organisms of a kind.
type KindConfig struct {
	MaxHealth          float64 `yaml:"max_health"`
	MaxEnergy          float64 `yaml:"max_energy"`
	NutritionFactor    float64 `yaml:"nutrition_factor"`
	ReproductionChance float64 `yaml:"reproduction_chance"`
	MaintenanceCost    float64 `yaml:"maintenance_cost"`
	WaterDamage        float64 `yaml:"water_damage"`
	Photosynthesis     float64 `yaml:"photosynthesis"`
}

// OrganismsConfig holds per-kind constants.
type OrganismsConfig struct {
	Animal KindConfig `yaml:"animal"`
	Plant  KindConfig `yaml:"plant"`
}

// GeneConfig bounds one trait and the range founders start in.
type GeneConfig struct {
	Min           float64 `yaml:"min"`
	Max           float64 `yaml:"max"`
	StartMin      float64 `yaml:"start_min"`
	StartMax      float64 `yaml:"start_max"`
	MutationRange float64 `yaml:"mutation_range"`
}

// GenesConfig maps trait names to gene settings per kind.
type GenesConfig struct {
	Animal map[string]GeneConfig `yaml:"animal"`
	Plant  map[string]GeneConfig `yaml:"plant"`
}

// TelemetryConfig holds stats collection parameters.
type TelemetryConfig struct {
	StatsWindow         int  `yaml:"stats_window"`          // ticks per stats window
	PerfCollectorWindow int  `yaml:"perf_collector_window"` // ticks in the perf rolling window
	EmitDeathRows       bool `yaml:"emit_death_rows"`       // attach finalized rows to death events
}

// BookmarksConfig holds automatic bookmark detection parameters.
type BookmarksConfig struct {
	Enabled     bool `yaml:"enabled"`
	HistorySize int  `yaml:"history_size"` // windows of history kept for comparisons
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldWidth  float64                     // Cols * TileSize
	WorldHeight float64                     // Rows * TileSize
	AnimalGenes map[traits.Trait]GeneConfig // Genes.Animal keyed by trait
	PlantGenes  map[traits.Trait]GeneConfig // Genes.Plant keyed by trait
	UnknownGene []string                    // trait names that did not parse
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load: %v", err))
	}
	return cfg
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.WorldWidth = float64(c.World.Cols) * c.World.TileSize
	c.Derived.WorldHeight = float64(c.World.Rows) * c.World.TileSize

	c.Derived.UnknownGene = nil
	c.Derived.AnimalGenes = c.keyGenes("animal", c.Genes.Animal)
	c.Derived.PlantGenes = c.keyGenes("plant", c.Genes.Plant)
}

func (c *Config) keyGenes(kind string, genes map[string]GeneConfig) map[traits.Trait]GeneConfig {
	out := make(map[traits.Trait]GeneConfig, len(genes))
	for name, g := range genes {
		t, ok := traits.Parse(name)
		if !ok {
			c.Derived.UnknownGene = append(c.Derived.UnknownGene, kind+"."+name)
			continue
		}
		out[t] = g
	}
	return out
}

// Validate reports the first setting that cannot produce a simulation.
func (c *Config) Validate() error {
	if c.World.Rows < 1 || c.World.Cols < 1 {
		return invalid("world size %dx%d", c.World.Rows, c.World.Cols)
	}
	if c.World.TileSize <= 0 {
		return invalid("world.tile_size %v", c.World.TileSize)
	}
	if len(c.Terrain.ElevationOctaves) == 0 {
		return invalid("terrain.elevation_octaves is empty")
	}

	p := c.Population
	if !unit(p.AnimalSpawnChance) || !unit(p.PlantSpawnChance) {
		return invalid("spawn chances %v/%v outside [0, 1]", p.AnimalSpawnChance, p.PlantSpawnChance)
	}
	if p.InitialHealthRatio <= 0 || p.InitialHealthRatio > 1 || !unit(p.InitialEnergyRatio) {
		return invalid("initial ratios %v/%v", p.InitialHealthRatio, p.InitialEnergyRatio)
	}

	if s := c.Reproduction.OffspringEnergyShare; s < 0 || s >= 1 {
		return invalid("reproduction.offspring_energy_share %v outside [0, 1)", s)
	}

	if _, err := genetics.ParsePolicy(c.Mutation.Policy); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	for name, k := range map[string]KindConfig{"animal": c.Organisms.Animal, "plant": c.Organisms.Plant} {
		if k.MaxHealth <= 0 || k.MaxEnergy <= 0 {
			return invalid("organisms.%s max health/energy must be positive", name)
		}
		if k.NutritionFactor < 0 || k.MaintenanceCost < 0 || k.WaterDamage < 0 || k.Photosynthesis < 0 {
			return invalid("organisms.%s constants must not be negative", name)
		}
		if !unit(k.ReproductionChance) {
			return invalid("organisms.%s.reproduction_chance %v outside [0, 1]", name, k.ReproductionChance)
		}
	}

	if len(c.Derived.UnknownGene) > 0 {
		return invalid("unknown genes %v", c.Derived.UnknownGene)
	}

	if c.Telemetry.StatsWindow < 1 {
		return invalid("telemetry.stats_window %d", c.Telemetry.StatsWindow)
	}
	return nil
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: "+format+": %w", append(args, simerr.ErrConfiguration)...)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
