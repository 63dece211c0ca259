// Package camera maps the toroidal trail field onto the screen.
package camera

import "math"

// Point is a screen position in pixels.
type Point struct {
	X, Y float32
}

// Camera is a pan/zoom viewport over a toroidal field measured in cells.
// Zooming out past the field size shows the torus tiled.
type Camera struct {
	// Center of the view in cell coordinates
	X, Y float32

	// Screen pixels per cell
	Zoom float32

	// Viewport dimensions in pixels
	ViewportW, ViewportH float32

	// Field dimensions in cells
	WorldW, WorldH float32

	// Zoom constraints
	MinZoom, MaxZoom float32

	// Zoom restored by Reset
	DefaultZoom float32
}

// New creates a camera centered on the field drawing cellSize pixels per cell.
func New(viewportW, viewportH float32, fieldW, fieldH int, cellSize float32) *Camera {
	c := &Camera{
		ViewportW:   viewportW,
		ViewportH:   viewportH,
		WorldW:      float32(fieldW),
		WorldH:      float32(fieldH),
		MaxZoom:     64,
		DefaultZoom: cellSize,
	}
	c.MinZoom = c.FitZoom() / 2
	c.Reset()
	return c
}

// FitZoom returns the zoom at which the whole field just fits the viewport.
func (c *Camera) FitZoom() float32 {
	return min(c.ViewportW/c.WorldW, c.ViewportH/c.WorldH)
}

// WorldToScreen converts cell coordinates to the nearest on-screen image of that point.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	dx := toroidalDelta(wx, c.X, c.WorldW)
	dy := toroidalDelta(wy, c.Y, c.WorldH)
	return c.ViewportW/2 + dx*c.Zoom, c.ViewportH/2 + dy*c.Zoom
}

// ScreenToWorld converts screen coordinates to cell coordinates wrapped onto the field.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	dx := (sx - c.ViewportW/2) / c.Zoom
	dy := (sy - c.ViewportH/2) / c.Zoom
	return mod(c.X+dx, c.WorldW), mod(c.Y+dy, c.WorldH)
}

// ScreenToCell returns the field cell under a screen position.
func (c *Camera) ScreenToCell(sx, sy float32) (row, col int) {
	wx, wy := c.ScreenToWorld(sx, sy)
	col = int(math.Floor(float64(wx)))
	row = int(math.Floor(float64(wy)))
	// Rounding at the far edge can land exactly on the size.
	if col >= int(c.WorldW) {
		col = 0
	}
	if row >= int(c.WorldH) {
		row = 0
	}
	return row, col
}

// SourceRect returns the visible region in cell coordinates as x, y, w, h.
// The region may extend past the field; the caller samples it with wrapping.
func (c *Camera) SourceRect() (x, y, w, h float32) {
	w = c.ViewportW / c.Zoom
	h = c.ViewportH / c.Zoom
	return c.X - w/2, c.Y - h/2, w, h
}

// AppendImages appends every screen position at which the point (wx, wy)
// appears, counting its periodic images, within margin pixels of the viewport.
func (c *Camera) AppendImages(dst []Point, wx, wy, margin float32) []Point {
	halfW := c.ViewportW/2 + margin
	halfH := c.ViewportH/2 + margin
	dx := toroidalDelta(wx, c.X, c.WorldW) * c.Zoom
	dy := toroidalDelta(wy, c.Y, c.WorldH) * c.Zoom
	tileW := c.WorldW * c.Zoom
	tileH := c.WorldH * c.Zoom

	nx := int(halfW/tileW) + 1
	ny := int(halfH/tileH) + 1
	for ky := -ny; ky <= ny; ky++ {
		py := dy + float32(ky)*tileH
		if absf(py) > halfH {
			continue
		}
		for kx := -nx; kx <= nx; kx++ {
			px := dx + float32(kx)*tileW
			if absf(px) > halfW {
				continue
			}
			dst = append(dst, Point{X: c.ViewportW/2 + px, Y: c.ViewportH/2 + py})
		}
	}
	return dst
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = c.FitZoom() / 2
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by the given delta in screen pixels, wrapping on the torus.
func (c *Camera) Pan(dx, dy float32) {
	c.X = mod(c.X+dx/c.Zoom, c.WorldW)
	c.Y = mod(c.Y+dy/c.Zoom, c.WorldH)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor while keeping the point under (sx, sy) fixed on screen.
func (c *Camera) ZoomAt(factor, sx, sy float32) {
	before := c.Zoom
	c.ZoomBy(factor)
	if c.Zoom == before {
		return
	}
	ox := sx - c.ViewportW/2
	oy := sy - c.ViewportH/2
	c.X = mod(c.X+ox/before-ox/c.Zoom, c.WorldW)
	c.Y = mod(c.Y+oy/before-oy/c.Zoom, c.WorldH)
}

// Reset centers the camera on the field at the default zoom.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.SetZoom(c.DefaultZoom)
}

// toroidalDelta computes the shortest signed distance from 'from' to 'to'
// in a toroidal space of the given size.
func toroidalDelta(to, from, size float32) float32 {
	d := to - from
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m float32) float32 {
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	if r >= m {
		r = 0
	}
	return r
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
