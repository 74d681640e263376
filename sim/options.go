package sim

import (
	"fmt"

	"github.com/pthm-cable/tilelife/components"
	"github.com/pthm-cable/tilelife/config"
	"github.com/pthm-cable/tilelife/genetics"
	"github.com/pthm-cable/tilelife/simerr"
	"github.com/pthm-cable/tilelife/systems"
	"github.com/pthm-cable/tilelife/telemetry"
	"github.com/pthm-cable/tilelife/terrain"
	"github.com/pthm-cable/tilelife/traits"
)

// PhaseTimer receives phase boundaries during Tick. telemetry.PerfCollector satisfies it.
type PhaseTimer interface {
	StartPhase(phase string)
}

// Options configures a World.
type Options struct {
	Rows     int
	Cols     int
	TileSize float64
	Noise    terrain.NoiseParams
	Seed     int64

	Policy genetics.Policy
	Kinds  [components.KindCount]components.KindConstants
	Genes  [components.KindCount]genetics.Specs

	InitialHealthRatio   float64
	InitialEnergyRatio   float64
	OffspringEnergyShare float64

	// EmitDeathRows attaches a finalized OrganismRow to death events.
	EmitDeathRows bool

	Recorder telemetry.Recorder // nil drops events
	Timer    PhaseTimer         // nil disables phase timing
}

// OptionsFromConfig converts a loaded config into World options.
// Founders start their reproduction_chance gene at the kind constant.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	policy, err := genetics.ParsePolicy(cfg.Mutation.Policy)
	if err != nil {
		return Options{}, err
	}

	octaves := make([]terrain.Octave, len(cfg.Terrain.ElevationOctaves))
	for i, o := range cfg.Terrain.ElevationOctaves {
		octaves[i] = terrain.Octave{Frequency: o.Frequency, Offset: o.Offset, Scale: o.Scale}
	}

	opts := Options{
		Rows:     cfg.World.Rows,
		Cols:     cfg.World.Cols,
		TileSize: cfg.World.TileSize,
		Seed:     cfg.World.Seed,
		Noise: terrain.NoiseParams{
			Source:            cfg.Terrain.Noise,
			Elevation:         octaves,
			MoistureFrequency: cfg.Terrain.MoistureFrequency,
			Fudge:             cfg.Terrain.Fudge,
			Power:             cfg.Terrain.Power,
		},
		Policy:               policy,
		InitialHealthRatio:   cfg.Population.InitialHealthRatio,
		InitialEnergyRatio:   cfg.Population.InitialEnergyRatio,
		OffspringEnergyShare: cfg.Reproduction.OffspringEnergyShare,
		EmitDeathRows:        cfg.Telemetry.EmitDeathRows,
	}

	opts.Kinds[components.KindAnimal] = kindConstants(cfg.Organisms.Animal)
	opts.Kinds[components.KindPlant] = kindConstants(cfg.Organisms.Plant)
	opts.Genes[components.KindAnimal] = geneSpecs(cfg.Derived.AnimalGenes, cfg.Organisms.Animal.ReproductionChance)
	opts.Genes[components.KindPlant] = geneSpecs(cfg.Derived.PlantGenes, cfg.Organisms.Plant.ReproductionChance)

	return opts, nil
}

func kindConstants(k config.KindConfig) components.KindConstants {
	return components.KindConstants{
		MaxHealth:          k.MaxHealth,
		MaxEnergy:          k.MaxEnergy,
		NutritionFactor:    k.NutritionFactor,
		ReproductionChance: k.ReproductionChance,
		MaintenanceCost:    k.MaintenanceCost,
		WaterDamage:        k.WaterDamage,
		Photosynthesis:     k.Photosynthesis,
	}
}

func geneSpecs(genes map[traits.Trait]config.GeneConfig, reproductionChance float64) genetics.Specs {
	specs := make(genetics.Specs, len(genes))
	for t, g := range genes {
		spec := genetics.GeneSpec{
			Min:           g.Min,
			Max:           g.Max,
			StartMin:      g.StartMin,
			StartMax:      g.StartMax,
			MutationRange: g.MutationRange,
		}
		if t == traits.ReproductionChance {
			v := min(max(reproductionChance, g.Min), g.Max)
			spec.StartMin, spec.StartMax = v, v
		}
		specs[t] = spec
	}
	return specs
}

// validate checks everything the lifecycle relies on.
func (o Options) validate() error {
	if o.InitialHealthRatio <= 0 || o.InitialHealthRatio > 1 {
		return fmt.Errorf("initial health ratio %v: %w", o.InitialHealthRatio, simerr.ErrConfiguration)
	}
	if o.InitialEnergyRatio < 0 || o.InitialEnergyRatio > 1 {
		return fmt.Errorf("initial energy ratio %v: %w", o.InitialEnergyRatio, simerr.ErrConfiguration)
	}
	if o.OffspringEnergyShare < 0 || o.OffspringEnergyShare >= 1 {
		return fmt.Errorf("offspring energy share %v: %w", o.OffspringEnergyShare, simerr.ErrConfiguration)
	}
	for k := components.Kind(0); k < components.KindCount; k++ {
		c := o.Kinds[k]
		if c.MaxHealth <= 0 || c.MaxEnergy <= 0 {
			return fmt.Errorf("%s max health/energy must be positive: %w", k, simerr.ErrConfiguration)
		}
		for _, t := range systems.BehaviorOf(k).Traits.Traits() {
			spec, ok := o.Genes[k][t]
			if !ok {
				return fmt.Errorf("%s has no gene spec for %s: %w", k, t, simerr.ErrConfiguration)
			}
			if err := spec.Validate(); err != nil {
				return fmt.Errorf("%s gene %s: %w", k, t, err)
			}
		}
	}
	return nil
}
