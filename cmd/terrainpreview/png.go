package main

import (
	"image"
	"image/png"
	"os"

	"github.com/pthm-cable/tilelife/terrain"
)

// writePNG renders one pixel per tile.
func writePNG(path string, grid *terrain.Grid) error {
	img := image.NewRGBA(image.Rect(0, 0, grid.Cols(), grid.Rows()))
	for _, t := range grid.Tiles() {
		img.SetRGBA(t.Col(), t.Row(), t.Color())
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
