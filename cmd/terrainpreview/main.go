// Terrain preview tool - biome map of a config/seed with live sliders.
//
// Usage: go run ./cmd/terrainpreview [-config path] [-seed n] [-png out.png]
//
// With -png the map is written to a file and the biome histogram printed;
// no window is opened.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tilelife/camera"
	"github.com/pthm-cable/tilelife/config"
	"github.com/pthm-cable/tilelife/sim"
	"github.com/pthm-cable/tilelife/terrain"
)

const (
	windowWidth   = 1000
	windowHeight  = 720
	previewSize   = 640
	previewMargin = 10
	panelWidth    = windowWidth - previewSize - 30
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "Terrain seed (0 = config seed)")
	pngPath := flag.String("png", "", "Write the biome map to this PNG and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}
	opts, err := sim.OptionsFromConfig(cfg)
	if err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	grid, err := terrain.NewGrid(opts.Rows, opts.Cols, opts.TileSize)
	if err != nil {
		slog.Error("invalid grid", "error", err)
		os.Exit(1)
	}
	params, terrainSeed := opts.Noise, opts.Seed
	if err := grid.Generate(params, terrainSeed); err != nil {
		slog.Error("terrain generation failed", "error", err)
		os.Exit(1)
	}

	if *pngPath != "" {
		if err := writePNG(*pngPath, grid); err != nil {
			slog.Error("failed to write png", "error", err)
			os.Exit(1)
		}
		printHistogram(grid)
		return
	}

	rl.InitWindow(windowWidth, windowHeight, "Terrain Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	cam := camera.New(previewSize, previewSize, grid.Width(), grid.Height())
	needsRegen := false

	for !rl.WindowShouldClose() {
		if needsRegen {
			if err := grid.Generate(params, terrainSeed); err != nil {
				slog.Warn("terrain generation failed", "error", err)
			}
			needsRegen = false
		}

		// Camera: wheel zooms, right drag pans, R resets
		mouse := rl.GetMousePosition()
		inPreview := mouse.X >= previewMargin && mouse.X < previewMargin+previewSize &&
			mouse.Y >= previewMargin && mouse.Y < previewMargin+previewSize
		if inPreview {
			if wheel := rl.GetMouseWheelMove(); wheel != 0 {
				cam.ZoomBy(math.Pow(1.1, float64(wheel)))
			}
			if rl.IsMouseButtonDown(rl.MouseButtonRight) {
				d := rl.GetMouseDelta()
				cam.Pan(-float64(d.X), -float64(d.Y))
			}
		}
		if rl.IsKeyPressed(rl.KeyR) {
			cam.Reset()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.BeginScissorMode(previewMargin, previewMargin, previewSize, previewSize)
		for _, t := range grid.TilesIn(cam.VisibleRect()) {
			r := t.Rect()
			sx, sy := cam.WorldToScreen(r.X, r.Y)
			size := r.W*cam.Zoom + 1
			rl.DrawRectangle(
				int32(previewMargin+sx), int32(previewMargin+sy),
				int32(size), int32(size),
				t.Color(),
			)
		}
		rl.EndScissorMode()
		rl.DrawRectangleLines(previewMargin, previewMargin, previewSize, previewSize, rl.DarkGray)

		// Hovered tile
		if inPreview {
			wx, wy := cam.ScreenToWorld(float64(mouse.X-previewMargin), float64(mouse.Y-previewMargin))
			if t := grid.TileAt(wx, wy); t != nil {
				rl.DrawText(fmt.Sprintf("(%d,%d) %s  e=%.2f m=%.2f", t.Row(), t.Col(), t.Biome(), t.Elevation(), t.Moisture()),
					15, windowHeight-30, 16, rl.DarkGray)
			}
		}

		panelX := float32(previewSize + 20)
		panelY := float32(10)
		rl.DrawText("Terrain Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		for _, s := range []struct {
			label    string
			value    *float64
			min, max float32
		}{
			{"Fudge (elevation gain)", &params.Fudge, 0.5, 2},
			{"Power (valley flattening)", &params.Power, 0.5, 4},
			{"Moisture frequency", &params.MoistureFrequency, 0.5, 12},
		} {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				float32(*s.value), s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf("%.2f", *s.value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if v != float32(*s.value) {
				*s.value = float64(v)
				needsRegen = true
			}
			panelY += 35
		}

		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"", "",
			float32(terrainSeed), 0, 99999,
		)
		rl.DrawText(fmt.Sprintf("%d", terrainSeed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int64(newSeed) != terrainSeed {
			terrainSeed = int64(newSeed)
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			terrainSeed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		source := terrain.SourcePerlin
		if params.Source == terrain.SourcePerlin {
			source = terrain.SourceOpenSimplex
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Use "+source) {
			params.Source = source
			needsRegen = true
		}
		panelY += 50

		rl.DrawText("Biomes:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 22
		hist := grid.BiomeHistogram()
		for b := terrain.Biome(0); b < terrain.BiomeCount; b++ {
			if hist[b] == 0 {
				continue
			}
			rl.DrawRectangle(int32(panelX), int32(panelY), 12, 12, b.Color())
			rl.DrawText(fmt.Sprintf("%-26s %5.1f%%", b, 100*float64(hist[b])/float64(grid.Len())),
				int32(panelX)+18, int32(panelY), 12, rl.Gray)
			panelY += 15
		}

		rl.DrawText("Wheel zoom, right drag pan, R reset, C copy YAML", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(fmt.Sprintf(`world:
  seed: %d
terrain:
  noise: %s
  moisture_frequency: %.2f
  fudge: %.2f
  power: %.2f`, terrainSeed, params.Source, params.MoistureFrequency, params.Fudge, params.Power))
		}

		rl.EndDrawing()
	}
}

func printHistogram(grid *terrain.Grid) {
	hist := grid.BiomeHistogram()
	for b := terrain.Biome(0); b < terrain.BiomeCount; b++ {
		fmt.Printf("%-26s %6d %5.1f%%\n", b, hist[b], 100*float64(hist[b])/float64(grid.Len()))
	}
}
