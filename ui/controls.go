package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxStepsPerUpdate bounds the speed slider.
const MaxStepsPerUpdate = 32

// ControlsState is what the controls panel edits.
type ControlsState struct {
	Paused         bool
	StepsPerUpdate int
	StepOnce       bool // set for one frame when the step button is pressed
	ResetCamera    bool // set for one frame when the reset view button is pressed
}

// ControlsPanel renders the right-side controls panel with overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32 // as of the last Draw
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point lies over the panel, so the caller
// can keep clicks on widgets from panning the camera.
func (c *ControlsPanel) Contains(px, py int32) bool {
	return c.visible && px >= c.x && px < c.x+c.width && py >= c.y && py < c.y+c.height
}

func (c *ControlsPanel) measure(overlays *OverlayRegistry) int32 {
	rows := int32(6)
	for _, cat := range overlays.Categories() {
		rows += int32(len(overlays.ByCategory(cat))) + 1
	}
	return rows*(c.renderer.Theme.LineHeight+4) + c.renderer.Theme.Padding*2
}

// Draw renders the panel and applies widget edits to state and overlays.
// Returns the Y below the panel.
func (c *ControlsPanel) Draw(state *ControlsState, overlays *OverlayRegistry) int32 {
	state.StepOnce = false
	state.ResetCamera = false
	if !c.visible {
		return c.y
	}

	r := c.renderer
	pad := r.Theme.Padding
	lh := r.Theme.LineHeight
	inner := float32(c.width - pad*2)

	c.height = c.measure(overlays)
	r.DrawPanel(c.x, c.y, c.width, c.height)
	x := c.x + pad
	y := r.DrawSectionHeader(x, c.y+pad, "Controls")

	half := (inner - 6) / 2
	pauseLabel := "Pause"
	if state.Paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: half, Height: 22}, pauseLabel) {
		state.Paused = !state.Paused
	}
	if gui.Button(rl.Rectangle{X: float32(x) + half + 6, Y: float32(y), Width: half, Height: 22}, "Step") {
		state.StepOnce = true
	}
	y += 28

	rl.DrawText(fmt.Sprintf("Steps per frame: %d", state.StepsPerUpdate), x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += lh
	steps := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: inner - 40, Height: 16},
		"", fmt.Sprint(MaxStepsPerUpdate),
		float32(state.StepsPerUpdate), 1, MaxStepsPerUpdate,
	)
	state.StepsPerUpdate = max(1, min(int(steps+0.5), MaxStepsPerUpdate))
	y += 24

	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: inner, Height: 22}, "Reset view") {
		state.ResetCamera = true
	}
	y += 30

	for _, cat := range overlays.Categories() {
		y = r.DrawSectionHeader(x, y, categoryLabel(cat))
		for _, desc := range overlays.ByCategory(cat) {
			label := fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
			enabled := overlays.IsEnabled(desc.ID)
			if gui.CheckBox(rl.Rectangle{X: float32(x), Y: float32(y), Width: 12, Height: 12}, label, enabled) != enabled {
				overlays.Toggle(desc.ID)
			}
			y += lh + 2
		}
	}

	return y + pad
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "world":
		return "World"
	case "panels":
		return "Panels"
	default:
		return cat
	}
}
