package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slime/ui"
)

const maxStepsPerUpdate = ui.MaxStepsPerUpdate

const controlsLegend = "SPACE pause | N step | , . speed | drag/arrows pan | wheel zoom | HOME reset | A agents | O sensors | T stats | P perf | TAB panel"

// Draw renders the game state.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.trailRenderer.Update(g.sim.TrailField())
	g.trailRenderer.Draw(g.camera)

	showAgents := g.overlays.IsEnabled(ui.OverlayAgents)
	showSensors := g.overlays.IsEnabled(ui.OverlaySensors)
	if showAgents || showSensors {
		g.agentViews = g.sim.AppendAgents(g.agentViews[:0])
		if showSensors {
			g.agentRenderer.DrawSensors(g.camera, g.agentViews, g.sim.Params())
		}
		if showAgents {
			g.agentRenderer.Draw(g.camera, g.agentViews)
		}
	}

	g.drawUI()

	rl.EndDrawing()
}

// drawUI renders the HUD and panels.
func (g *Game) drawUI() {
	turns := g.sim.LastTurns()
	g.hud.Draw(ui.HUDData{
		Title:       "Slime",
		Tick:        g.sim.Tick(),
		Agents:      g.sim.AgentCount(),
		ActiveCells: g.sim.ActiveCount(),
		CellCount:   g.cfg.Derived.CellCount,
		Speed:       g.controls.StepsPerUpdate,
		FPS:         rl.GetFPS(),
		Paused:      g.controls.Paused,
		Zoom:        g.camera.Zoom,
		LastTurns:   [3]int{turns.Left, turns.None, turns.Right},
	})

	y := int32(125)
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.SetPosition(10, y)
		g.perfPanel.Draw(g.perfCollector.Stats())
		y += 170
	}
	if g.overlays.IsEnabled(ui.OverlayStats) {
		g.statsPanel.SetPosition(10, y)
		g.statsPanel.Draw(g.lastStats, g.haveStats)
	}

	g.controlsPanel.Draw(&g.controls, g.overlays)
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)
}
