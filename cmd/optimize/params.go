package main

import (
	"github.com/pthm-cable/tilelife/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Animals
			{Name: "animal_maintenance", Path: "organisms.animal.maintenance_cost", Min: 0.2, Max: 3.0, Default: 1.0},
			{Name: "animal_repro_chance", Path: "organisms.animal.reproduction_chance", Min: 0.01, Max: 0.3, Default: 0.05},
			// Plants
			{Name: "plant_nutrition", Path: "organisms.plant.nutrition_factor", Min: 0.5, Max: 3.0, Default: 1.5},
			{Name: "plant_maintenance", Path: "organisms.plant.maintenance_cost", Min: 0.05, Max: 1.0, Default: 0.25},
			{Name: "plant_photosynthesis", Path: "organisms.plant.photosynthesis", Min: 1.0, Max: 8.0, Default: 3.0},
			{Name: "plant_repro_chance", Path: "organisms.plant.reproduction_chance", Min: 0.005, Max: 0.2, Default: 0.02},
			// Reproduction
			{Name: "offspring_energy_share", Path: "reproduction.offspring_energy_share", Min: 0.2, Max: 0.8, Default: 0.5},
			// Population
			{Name: "animal_spawn_chance", Path: "population.animal_spawn_chance", Min: 0.005, Max: 0.1, Default: 0.02},
			{Name: "plant_spawn_chance", Path: "population.plant_spawn_chance", Min: 0.05, Max: 0.5, Default: 0.15},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	cfg.Organisms.Animal.MaintenanceCost = c[0]
	cfg.Organisms.Animal.ReproductionChance = c[1]
	cfg.Organisms.Plant.NutritionFactor = c[2]
	cfg.Organisms.Plant.MaintenanceCost = c[3]
	cfg.Organisms.Plant.Photosynthesis = c[4]
	cfg.Organisms.Plant.ReproductionChance = c[5]
	cfg.Reproduction.OffspringEnergyShare = c[6]
	cfg.Population.AnimalSpawnChance = c[7]
	cfg.Population.PlantSpawnChance = c[8]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Organisms.Animal.MaintenanceCost,
		cfg.Organisms.Animal.ReproductionChance,
		cfg.Organisms.Plant.NutritionFactor,
		cfg.Organisms.Plant.MaintenanceCost,
		cfg.Organisms.Plant.Photosynthesis,
		cfg.Organisms.Plant.ReproductionChance,
		cfg.Reproduction.OffspringEnergyShare,
		cfg.Population.AnimalSpawnChance,
		cfg.Population.PlantSpawnChance,
	}
}
