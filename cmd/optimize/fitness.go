package main

import (
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/tilelife/config"
	"github.com/pthm-cable/tilelife/game"
	"github.com/pthm-cable/tilelife/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int
	seeds       []int64
	baseConfig  *config.Config
	statsWindow int

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 100,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Minimum viable population: if either kind stays below this for
// extinctionGraceTicks consecutive ticks, it counts as functionally extinct.
const (
	minViablePop         = 3
	extinctionGraceTicks = 300
	warmupTicks          = 50
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int                     // ticks both kinds coexisted
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
}

type seedResult struct {
	fitness float64
	quality float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Seeds run in parallel; every run owns its world, so nothing is shared.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			results[idx] = seedResult{
				fitness: fe.computeFitness(result),
				quality: fe.computeQuality(result.windowStats),
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes a single headless simulation run.
// Runs until functional extinction or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}
	g, err := game.NewGameWithOptions(cfg, game.Options{
		Seed:        seed,
		StatsWindow: fe.statsWindow,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		slog.Warn("rejected parameters", "error", err)
		return result
	}
	defer g.Unload()

	var animalsBelow, plantsBelow int
	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()

		tick := g.Tick()
		if tick < warmupTicks {
			continue
		}

		animals, plants := g.AnimalCount(), g.PlantCount()
		if animals == 0 || plants == 0 {
			result.survivalTicks = tick
			return result
		}

		animalsBelow = belowCount(animals, animalsBelow)
		plantsBelow = belowCount(plants, plantsBelow)
		if animalsBelow >= extinctionGraceTicks || plantsBelow >= extinctionGraceTicks {
			result.survivalTicks = tick
			return result
		}
	}

	result.survivalTicks = fe.maxTicks
	return result
}

func belowCount(pop, ticks int) int {
	if pop < minViablePop {
		return ticks + 1
	}
	return 0
}

// copyConfig returns a copy of the base config. Only scalar fields are
// tuned, so the gene maps can be shared between runs.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks × (1.0 + 0.2 × quality))
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	survival := float64(r.survivalTicks)
	quality := fe.computeQuality(r.windowStats)
	return -(survival * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.30
	qualityWeightStability = 0.25
	qualityWeightEnergy    = 0.25
	qualityWeightGrazing   = 0.20

	qualityWarmupWindows = 3 // skip first N windows (warmup)
	qualityMinPop        = 3 // exclude windows where either kind < this
	targetPlantRatio     = 5 // plants per animal
)

// computeQuality computes ecosystem quality ∈ [0, 1] from window stats.
func (fe *FitnessEvaluator) computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	maxAnimal := fe.baseConfig.Organisms.Animal.MaxEnergy
	maxPlant := fe.baseConfig.Organisms.Plant.MaxEnergy

	var ratioSum, energySum, grazeSum float64
	var count, grazeCount int
	var animals, plants []float64

	for _, w := range windows[qualityWarmupWindows:] {
		if w.Animals < qualityMinPop || w.Plants < qualityMinPop {
			continue
		}
		animals = append(animals, float64(w.Animals))
		plants = append(plants, float64(w.Plants))
		count++

		logErr := math.Log(float64(w.Plants) / float64(w.Animals) / targetPlantRatio)
		ratioSum += math.Exp(-logErr * logErr)

		animalH := math.Exp(-math.Pow((w.AnimalEnergyP50/maxAnimal-0.5)/0.25, 2))
		plantH := math.Exp(-math.Pow((w.PlantEnergyP50/maxPlant-0.5)/0.25, 2))
		energySum += (animalH + plantH) / 2

		if w.Attacks > 0 {
			grazeSum += math.Exp(-math.Pow((w.KillRate-0.1)/0.1, 2))
			grazeCount++
		}
	}
	if count == 0 {
		return 0
	}

	stabilityScore := 0.0
	if count >= 2 {
		ca, cp := cv(animals), cv(plants)
		stabilityScore = math.Exp(-(ca*ca + cp*cp))
	}
	grazeScore := 0.0
	if grazeCount > 0 {
		grazeScore = grazeSum / float64(grazeCount)
	}

	quality := qualityWeightRatio*ratioSum/float64(count) +
		qualityWeightStability*stabilityScore +
		qualityWeightEnergy*energySum/float64(count) +
		qualityWeightGrazing*grazeScore

	return min(max(quality, 0), 1)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}
