package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slime/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	Tick        int32
	Agents      int
	ActiveCells int
	CellCount   int
	Speed       int
	FPS         int32
	Paused      bool
	Zoom        float32
	LastTurns   [3]int // left, none, right
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	active := float64(0)
	if data.CellCount > 0 {
		active = float64(data.ActiveCells) / float64(data.CellCount) * 100
	}
	rl.DrawText(
		fmt.Sprintf("Agents: %d | Active cells: %d (%.1f%%)", data.Agents, data.ActiveCells, active),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d | Zoom: %.1f", data.Tick, data.Speed, data.FPS, data.Zoom),
		10, 55, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Turns L/-/R: %d / %d / %d", data.LastTurns[0], data.LastTurns[1], data.LastTurns[2]),
		10, 75, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 95, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase tick timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	pad := r.Theme.Padding
	phases := telemetry.Phases()
	height := int32(len(phases)+3)*(r.Theme.LineHeight+2) + pad*2

	r.DrawPanel(p.x, p.y, p.width, height)
	x := p.x + pad
	y := r.DrawSectionHeader(x, p.y+pad, "Tick Performance")

	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%s (%.0f/s)",
		stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond))
	y = r.DrawLabelValue(x, y, "Range", fmt.Sprintf("%s - %s",
		stats.MinTickDuration.Round(time.Microsecond), stats.MaxTickDuration.Round(time.Microsecond)))

	for _, ph := range phases {
		y = r.DrawBar(x, y, ph.String(), float32(stats.PhasePct[ph]/100), p.width-pad*2)
	}
}

// StatsPanel renders the latest telemetry window.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a new trail statistics panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Draw renders the stats panel. ok is false until the first window has been flushed.
func (s *StatsPanel) Draw(stats telemetry.WindowStats, ok bool) {
	r := s.renderer
	pad := r.Theme.Padding
	height := 8*(r.Theme.LineHeight) + r.Theme.LineHeight + 4 + pad*2

	r.DrawPanel(s.x, s.y, s.width, height)
	x := s.x + pad
	y := r.DrawSectionHeader(x, s.y+pad, "Trail Stats")
	if !ok {
		r.DrawLabelValue(x, y, "Window", "pending")
		return
	}

	y = r.DrawLabelValue(x, y, "Window", fmt.Sprintf("%d - %d", stats.WindowStartTick, stats.WindowEndTick))
	y = r.DrawBar(x, y, "Coverage", float32(stats.Coverage), s.width-pad*2)
	y = r.DrawLabelValue(x, y, "Intensity", fmt.Sprintf("%.1f +/- %.1f", stats.IntensityMean, stats.IntensityStd))
	y = r.DrawLabelValue(x, y, "P50 / P90", fmt.Sprintf("%.0f / %.0f", stats.IntensityP50, stats.IntensityP90))
	y = r.DrawLabelValue(x, y, "Total", fmt.Sprintf("%.0f", stats.TotalIntensity))
	y = r.DrawLabelValue(x, y, "Turn rate", fmt.Sprintf("%.2f", stats.TurnRate))
	r.DrawLabelValue(x, y, "Sensors", fmt.Sprintf("c %.0f / s %.0f", stats.SensorCenterMean, stats.SensorSideMean))
}
