package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1280, 720, 320, 180, 4)

	if cam.X != 160 || cam.Y != 90 {
		t.Errorf("expected camera at (160, 90), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 4 {
		t.Errorf("expected zoom 4, got %f", cam.Zoom)
	}
	if cam.FitZoom() != 4 {
		t.Errorf("expected fit zoom 4, got %f", cam.FitZoom())
	}
	if cam.MinZoom != 2 {
		t.Errorf("expected min zoom 2, got %f", cam.MinZoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, 320, 180, 4)

	sx, sy := cam.WorldToScreen(160, 90)
	if !near(sx, 640) || !near(sy, 360) {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}

	// One cell right and down is one zoom step away.
	sx, sy = cam.WorldToScreen(161, 91)
	if !near(sx, 644) || !near(sy, 364) {
		t.Errorf("expected (644, 364), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 320, 180, 4)
	cam.Pan(37, -250)

	for _, tc := range []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	} {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)", tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestScreenToCell(t *testing.T) {
	cam := New(1280, 720, 320, 180, 4)

	row, col := cam.ScreenToCell(640, 360)
	if row != 90 || col != 160 {
		t.Errorf("center cell = (%d, %d), want (90, 160)", row, col)
	}

	// Left of the field's left edge wraps to the last column.
	cam.X = 0
	row, col = cam.ScreenToCell(638, 360)
	if col != 319 || row != 90 {
		t.Errorf("wrapped cell = (%d, %d), want (90, 319)", row, col)
	}
}

func TestToroidalWrap(t *testing.T) {
	cam := New(1280, 720, 320, 180, 4)
	cam.X = 10

	// A point at the far right of the field is closer going left.
	sx, _ := cam.WorldToScreen(315, 90)
	if sx >= 640 {
		t.Errorf("expected point left of center, got x=%f", sx)
	}
}

func TestPanWraps(t *testing.T) {
	cam := New(1280, 720, 320, 180, 4)
	cam.X = 10

	cam.Pan(-80, 0) // 20 cells left
	if !near(cam.X, 310) {
		t.Errorf("expected X to wrap to 310, got %f", cam.X)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 320, 180, 4)

	cam.SetZoom(0.1)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}
	cam.SetZoom(1000)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
}

func TestZoomAtKeepsCursorFixed(t *testing.T) {
	cam := New(1280, 720, 320, 180, 4)
	wx, wy := cam.ScreenToWorld(1000, 200)

	cam.ZoomAt(2, 1000, 200)
	if cam.Zoom != 8 {
		t.Fatalf("expected zoom 8, got %f", cam.Zoom)
	}
	sx, sy := cam.WorldToScreen(wx, wy)
	if !near(sx, 1000) || !near(sy, 200) {
		t.Errorf("cursor point moved to (%f, %f)", sx, sy)
	}
}

func TestSourceRect(t *testing.T) {
	cam := New(1280, 720, 320, 180, 4)
	x, y, w, h := cam.SourceRect()
	if x != 0 || y != 0 || w != 320 || h != 180 {
		t.Errorf("SourceRect = (%f, %f, %f, %f), want the whole field", x, y, w, h)
	}

	cam.SetZoom(8)
	cam.X = 5
	x, _, w, _ = cam.SourceRect()
	if x != -75 || w != 160 {
		t.Errorf("SourceRect x=%f w=%f, want -75 and 160", x, w)
	}
}

func TestAppendImages(t *testing.T) {
	cam := New(1280, 720, 320, 180, 4)

	// At fit zoom every point has exactly one image.
	if got := cam.AppendImages(nil, 100, 50, 0); len(got) != 1 {
		t.Errorf("expected 1 image at fit zoom, got %d", len(got))
	}

	// A point on the left edge also shows on the right edge with a margin.
	if got := cam.AppendImages(nil, 0, 90, 5); len(got) != 2 {
		t.Errorf("expected 2 images at the seam, got %d: %v", len(got), got)
	}

	// Zoomed out to half the fit zoom the field tiles twice along each axis.
	cam.SetZoom(2)
	if got := cam.AppendImages(nil, 100, 50, 0); len(got) < 4 {
		t.Errorf("expected at least 4 images when tiled, got %d", len(got))
	}

	// Zoomed in on the far side, the point is off screen.
	cam.SetZoom(16)
	cam.X, cam.Y = 260, 150
	if got := cam.AppendImages(nil, 100, 50, 0); len(got) != 0 {
		t.Errorf("expected no images, got %v", got)
	}
}

func TestResizeClampsZoom(t *testing.T) {
	cam := New(1280, 720, 320, 180, 4)
	cam.SetZoom(cam.MinZoom)

	cam.Resize(2560, 1440)
	if cam.MinZoom != 4 {
		t.Errorf("expected min zoom 4 after resize, got %f", cam.MinZoom)
	}
	if cam.Zoom != 4 {
		t.Errorf("expected zoom raised to 4, got %f", cam.Zoom)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 320, 180, 4)
	cam.X, cam.Y = 5, 5
	cam.Zoom = 12

	cam.Reset()
	if cam.X != 160 || cam.Y != 90 || cam.Zoom != 4 {
		t.Errorf("expected (160, 90) zoom 4, got (%f, %f) zoom %f", cam.X, cam.Y, cam.Zoom)
	}
}
