package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slime/camera"
	"github.com/pthm-cable/slime/systems"
)

// paletteStops maps trail intensity to color; entries are interpolated.
var paletteStops = []struct {
	at  uint8
	rgb [3]uint8
}{
	{0, [3]uint8{4, 6, 12}},
	{40, [3]uint8{10, 60, 70}},
	{120, [3]uint8{40, 170, 140}},
	{200, [3]uint8{230, 220, 90}},
	{255, [3]uint8{255, 255, 235}},
}

// Palette maps each 8-bit trail value to a display color.
type Palette [256]color.RGBA

// NewPalette builds the default dark-to-bright trail palette.
func NewPalette() *Palette {
	var p Palette
	for i := 1; i < len(paletteStops); i++ {
		lo, hi := paletteStops[i-1], paletteStops[i]
		span := float32(hi.at - lo.at)
		for v := int(lo.at); v <= int(hi.at); v++ {
			t := float32(v-int(lo.at)) / span
			p[v] = color.RGBA{
				R: lerp8(lo.rgb[0], hi.rgb[0], t),
				G: lerp8(lo.rgb[1], hi.rgb[1], t),
				B: lerp8(lo.rgb[2], hi.rgb[2], t),
				A: 255,
			}
		}
	}
	return &p
}

func lerp8(a, b uint8, t float32) uint8 {
	return uint8(float32(a) + (float32(b)-float32(a))*t + 0.5)
}

// TrailRenderer draws the trail field as a texture, one texel per cell.
// The texture repeats so the camera can show the torus seamlessly.
type TrailRenderer struct {
	tex     rl.Texture2D
	texW    int
	texH    int
	values  []uint8
	pixels  []color.RGBA
	palette *Palette

	initialized bool
}

// NewTrailRenderer creates a renderer for a fieldW x fieldH field.
func NewTrailRenderer(fieldW, fieldH int) *TrailRenderer {
	return &TrailRenderer{
		texW:    fieldW,
		texH:    fieldH,
		values:  make([]uint8, fieldW*fieldH),
		pixels:  make([]color.RGBA, fieldW*fieldH),
		palette: NewPalette(),
	}
}

// Init creates the GPU texture (must be called after the raylib window is created).
func (r *TrailRenderer) Init() {
	if r.initialized {
		return
	}
	img := rl.GenImageColor(r.texW, r.texH, rl.Black)
	r.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(r.tex, rl.FilterPoint)
	rl.SetTextureWrap(r.tex, rl.WrapRepeat)
	r.initialized = true
}

// Update uploads the current field to the texture.
func (r *TrailRenderer) Update(field *systems.TrailField) {
	if !r.initialized {
		r.Init()
	}
	if field.CopyTo(r.values) != len(r.values) {
		return
	}
	for i, v := range r.values {
		r.pixels[i] = r.palette[v]
	}
	rl.UpdateTexture(r.tex, r.pixels)
}

// Draw fills the viewport with the part of the field the camera sees.
func (r *TrailRenderer) Draw(cam *camera.Camera) {
	if !r.initialized {
		return
	}
	x, y, w, h := cam.SourceRect()
	src := rl.Rectangle{X: x, Y: y, Width: w, Height: h}
	dst := rl.Rectangle{X: 0, Y: 0, Width: cam.ViewportW, Height: cam.ViewportH}
	rl.DrawTexturePro(r.tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees GPU resources.
func (r *TrailRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.tex)
	r.initialized = false
}
