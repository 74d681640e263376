package camera

import (
	"math"
	"testing"
)

func TestNewFitsWorld(t *testing.T) {
	cam := New(800, 600, 1600, 600)

	if cam.X != 800 || cam.Y != 300 {
		t.Errorf("expected camera at (800, 300), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 0.5 {
		t.Errorf("expected zoom 0.5 to fit the wider axis, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	sx, sy := cam.WorldToScreen(1280, 720)
	if math.Abs(sx-640) > 0.01 || math.Abs(sy-360) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(2)
	cam.Pan(300, -200)

	testCases := []struct{ sx, sy float64 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(sx-tc.sx) > 0.01 || math.Abs(sy-tc.sy) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanStaysInsideWorld(t *testing.T) {
	cam := New(100, 100, 1000, 1000)
	cam.SetZoom(1)

	cam.Pan(-1e6, 1e6)
	r := cam.VisibleRect()
	if r.X < 0 || r.Y+r.H > 1000+1e-9 {
		t.Errorf("visible rect %+v leaves the world", r)
	}
	if r.X != 0 || r.Y != 900 {
		t.Errorf("expected view pinned to the bottom-left corner, got %+v", r)
	}
}

func TestZoomClamps(t *testing.T) {
	cam := New(100, 100, 1000, 1000)

	cam.ZoomBy(1e6)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom = %f, want max %f", cam.Zoom, cam.MaxZoom)
	}
	cam.ZoomBy(1e-6)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("zoom = %f, want min %f", cam.Zoom, cam.MinZoom)
	}
	if cam.X != 500 || cam.Y != 500 {
		t.Errorf("fully zoomed out camera should be centered, got (%f, %f)", cam.X, cam.Y)
	}
}

func TestResizeKeepsZoomInRange(t *testing.T) {
	cam := New(100, 100, 1000, 1000)
	cam.Resize(400, 400)
	if cam.MinZoom != 0.4 || cam.Zoom < cam.MinZoom {
		t.Errorf("after resize zoom=%f min=%f", cam.Zoom, cam.MinZoom)
	}
}
