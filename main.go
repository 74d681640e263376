package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/tilelife/config"
	"github.com/pthm-cable/tilelife/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config seed, -1 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = until extinction)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == -1 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.NewGameWithOptions(cfg, game.Options{
		Seed:        rngSeed,
		LogStats:    *logStats,
		StatsWindow: *statsWindow,
		OutputDir:   *outputDir,
	})
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", cfg.World.Seed,
		"rows", cfg.World.Rows,
		"cols", cfg.World.Cols,
		"stats_window", cfg.Telemetry.StatsWindow,
		"max_ticks", *maxTicks,
	)

	for {
		g.UpdateHeadless()

		if *maxTicks > 0 && g.Tick() >= *maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return
		}
		if g.Extinct() {
			slog.Info("all organisms died", "tick", g.Tick())
			return
		}
	}
}
