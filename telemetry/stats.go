package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	RunID           string `csv:"run_id"`
	WindowStartTick int    `csv:"-"`
	WindowEndTick   int    `csv:"window_end"`

	// Population counts at window end
	Animals int `csv:"animals"`
	Plants  int `csv:"plants"`

	// Events during window
	AnimalBirths int `csv:"animal_births"`
	PlantBirths  int `csv:"plant_births"`
	AnimalDeaths int `csv:"animal_deaths"`
	PlantDeaths  int `csv:"plant_deaths"`

	// Grazing
	Attacks     int     `csv:"attacks"`
	PlantKills  int     `csv:"plant_kills"`
	AnimalKills int     `csv:"animal_kills"`
	KillRate    float64 `csv:"kill_rate"`
	DamageDealt float64 `csv:"damage_dealt"`
	Drownings   int     `csv:"drownings"`
	Moves       int     `csv:"moves"`

	// Energy distribution (sampled at window end)
	AnimalEnergyMean float64 `csv:"animal_energy_mean"`
	AnimalEnergyP10  float64 `csv:"animal_energy_p10"`
	AnimalEnergyP50  float64 `csv:"animal_energy_p50"`
	AnimalEnergyP90  float64 `csv:"animal_energy_p90"`

	PlantEnergyMean float64 `csv:"plant_energy_mean"`
	PlantEnergyP10  float64 `csv:"plant_energy_p10"`
	PlantEnergyP50  float64 `csv:"plant_energy_p50"`
	PlantEnergyP90  float64 `csv:"plant_energy_p90"`

	// Gene drift
	AttackPowerMean    float64 `csv:"attack_power_mean"`
	AttackPowerStd     float64 `csv:"attack_power_std"`
	MutationChanceMean float64 `csv:"mutation_chance_mean"`

	// Registry totals
	TotalBorn int `csv:"total_born"`
	TotalDied int `csv:"total_died"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeEnergyStats calculates mean and percentiles from energy values.
func ComputeEnergyStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	mean = stat.Mean(values, nil)

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// ComputeSpread returns the mean and sample standard deviation of values.
// The deviation is 0 for fewer than two values.
func ComputeSpread(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Int("animals", s.Animals),
		slog.Int("plants", s.Plants),
		slog.Int("animal_births", s.AnimalBirths),
		slog.Int("plant_births", s.PlantBirths),
		slog.Int("animal_deaths", s.AnimalDeaths),
		slog.Int("plant_deaths", s.PlantDeaths),
		slog.Int("attacks", s.Attacks),
		slog.Int("plant_kills", s.PlantKills),
		slog.Float64("kill_rate", s.KillRate),
		slog.Float64("damage_dealt", s.DamageDealt),
		slog.Int("drownings", s.Drownings),
		slog.Int("moves", s.Moves),
		slog.Float64("animal_energy_mean", s.AnimalEnergyMean),
		slog.Float64("plant_energy_mean", s.PlantEnergyMean),
		slog.Float64("attack_power_mean", s.AttackPowerMean),
		slog.Float64("attack_power_std", s.AttackPowerStd),
		slog.Float64("mutation_chance_mean", s.MutationChanceMean),
		slog.Int("total_born", s.TotalBorn),
		slog.Int("total_died", s.TotalDied),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"animals", s.Animals,
		"plants", s.Plants,
		"animal_births", s.AnimalBirths,
		"plant_births", s.PlantBirths,
		"animal_deaths", s.AnimalDeaths,
		"plant_deaths", s.PlantDeaths,
		"attacks", s.Attacks,
		"plant_kills", s.PlantKills,
		"kill_rate", s.KillRate,
		"drownings", s.Drownings,
		"moves", s.Moves,
		"animal_energy_p50", s.AnimalEnergyP50,
		"plant_energy_p50", s.PlantEnergyP50,
		"attack_power_mean", s.AttackPowerMean,
		"mutation_chance_mean", s.MutationChanceMean,
		"total_born", s.TotalBorn,
		"total_died", s.TotalDied,
	)
}
