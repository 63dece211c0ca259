// Package game hosts a simulation: the frame loop, input, drawing and
// telemetry plumbing around sim.Simulation.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slime/camera"
	"github.com/pthm-cable/slime/config"
	"github.com/pthm-cable/slime/renderer"
	"github.com/pthm-cable/slime/sim"
	"github.com/pthm-cable/slime/telemetry"
	"github.com/pthm-cable/slime/ui"
)

// Options configures a Game.
type Options struct {
	Seed           int64
	Config         *config.Config // nil = config.Cfg()
	LogStats       bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
	StatsCallback  func(telemetry.WindowStats)
}

// Game holds the complete game state.
type Game struct {
	cfg     *config.Config
	sim     *sim.Simulation
	rng     *rand.Rand
	rngSeed int64

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool
	lastStats     telemetry.WindowStats
	haveStats     bool

	// Reused sampling buffers
	fieldBuf     []uint8
	intensities  []float64
	sensorCenter []float64
	sensorSides  []float64
	agentViews   []sim.AgentView

	// State
	headless bool
	controls ui.ControlsState

	// Rendering (nil when headless)
	camera        *camera.Camera
	trailRenderer *renderer.TrailRenderer
	agentRenderer *renderer.AgentRenderer
	overlays      *ui.OverlayRegistry
	hud           *ui.HUD
	perfPanel     *ui.PerfPanel
	statsPanel    *ui.StatsPanel
	controlsPanel *ui.ControlsPanel

	screenWidth, screenHeight float32
	dragging                  bool
}

// NewGameWithOptions creates a game. In graphical mode the raylib window must
// already be open.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	s, err := sim.New(cfg, rng)
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	out, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		s.Close()
		return nil, err
	}
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:           cfg,
		sim:           s,
		rng:           rng,
		rngSeed:       opts.Seed,
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		outputManager: out,
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
		fieldBuf:      make([]uint8, cfg.Derived.CellCount),
		headless:      opts.Headless,
		controls:      ui.ControlsState{StepsPerUpdate: steps},
	}
	s.SetPerfCollector(g.perfCollector)

	if !g.headless {
		g.initRendering()
	}

	slog.Info("simulation created",
		"seed", opts.Seed,
		"field_w", cfg.Field.Width,
		"field_h", cfg.Field.Height,
		"agents", s.AgentCount(),
		"spawn", cfg.Agents.Spawn,
		"trail_mode", cfg.Trail.Mode,
	)
	return g, nil
}

// initRendering sets up the camera, renderers and UI panels.
func (g *Game) initRendering() {
	g.screenWidth = float32(rl.GetScreenWidth())
	g.screenHeight = float32(rl.GetScreenHeight())

	g.camera = camera.New(g.screenWidth, g.screenHeight,
		g.cfg.Field.Width, g.cfg.Field.Height, float32(g.cfg.Render.CellSize))

	g.trailRenderer = renderer.NewTrailRenderer(g.cfg.Field.Width, g.cfg.Field.Height)
	g.trailRenderer.Init()
	g.agentRenderer = renderer.NewAgentRenderer()

	g.overlays = ui.NewOverlayRegistry()
	g.overlays.SetEnabled(ui.OverlaySensors, g.cfg.Render.SensorOverlay)
	g.overlays.SetEnabled(ui.OverlayAgents, true)
	g.overlays.SetEnabled(ui.OverlayStats, true)

	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(10, 125, 260)
	g.statsPanel = ui.NewStatsPanel(10, 0, 260)
	g.controlsPanel = ui.NewControlsPanel(int32(g.screenWidth)-230, 10, 220)
}

// Update handles input and advances the simulation by the configured number
// of ticks, unless paused.
func (g *Game) Update() {
	g.handleInput()
	g.perfCollector.RecordFrame()

	switch {
	case g.controls.StepOnce:
		g.step()
	case !g.controls.Paused:
		for i := 0; i < g.controls.StepsPerUpdate; i++ {
			g.step()
		}
	}
}

// UpdateHeadless advances the simulation without input or drawing.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.controls.StepsPerUpdate; i++ {
		g.step()
	}
}

// step runs one tick and the telemetry that follows it.
func (g *Game) step() {
	g.sim.Step()
	turns := g.sim.LastTurns()
	g.collector.RecordTurns(turns.Left, turns.None, turns.Right)
	g.flushTelemetry()
}

// Unload writes final output and frees resources.
func (g *Game) Unload() {
	if err := g.outputManager.WriteAgents(g.agentRecords()); err != nil {
		slog.Error("failed to write agents", "error", err)
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.sim.Close()

	if g.trailRenderer != nil {
		g.trailRenderer.Unload()
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.sim.Tick()
}

// Sim returns the hosted simulation.
func (g *Game) Sim() *sim.Simulation {
	return g.sim
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.controls.Paused
}

// LastStats returns the most recent flushed telemetry window.
func (g *Game) LastStats() (telemetry.WindowStats, bool) {
	return g.lastStats, g.haveStats
}
