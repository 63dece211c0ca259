package renderer

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slime/camera"
	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/sim"
	"github.com/pthm-cable/slime/systems"
)

// Sensor overlay colors by last turn.
var (
	colorTurnLeft  = rl.Color{R: 90, G: 160, B: 255, A: 200}
	colorTurnRight = rl.Color{R: 255, G: 120, B: 90, A: 200}
	colorTurnNone  = rl.Color{R: 200, G: 200, B: 200, A: 120}
	colorAgent     = rl.Color{R: 255, G: 80, B: 200, A: 230}
)

// readingsMinZoom is the zoom at which sensor readings are labeled.
const readingsMinZoom = 12

// AgentRenderer draws agents and, optionally, their sensors.
type AgentRenderer struct {
	images []camera.Point
}

// NewAgentRenderer creates a new agent renderer.
func NewAgentRenderer() *AgentRenderer {
	return &AgentRenderer{images: make([]camera.Point, 0, 4)}
}

// Draw renders every agent as a heading tick at each of its on-screen images.
func (r *AgentRenderer) Draw(cam *camera.Camera, agents []sim.AgentView) {
	size := max(cam.Zoom*0.6, 1.5)
	for i := range agents {
		a := &agents[i]
		r.images = cam.AppendImages(r.images[:0], float32(a.Position.X), float32(a.Position.Y), size*2)
		cos := float32(math.Cos(a.Motion.Heading))
		sin := float32(math.Sin(a.Motion.Heading))
		for _, p := range r.images {
			tip := rl.Vector2{X: p.X + cos*size*2, Y: p.Y + sin*size*2}
			rl.DrawLineV(rl.Vector2{X: p.X, Y: p.Y}, tip, colorAgent)
			rl.DrawCircleV(rl.Vector2{X: p.X, Y: p.Y}, size/2, colorAgent)
		}
	}
}

// DrawSensors renders the three sensor boxes of every agent, colored by its
// last turn, with readings once the camera is close enough.
func (r *AgentRenderer) DrawSensors(cam *camera.Camera, agents []sim.AgentView, p systems.SteeringParams) {
	boxPx := float32(2*p.SensorRadius+1) * cam.Zoom
	margin := float32(p.SensorDistance)*cam.Zoom + boxPx
	offsets := [3]float64{-p.SensorAngle, 0, p.SensorAngle}

	for i := range agents {
		a := &agents[i]
		readings := [3]int32{a.Sensors.Left, a.Sensors.Center, a.Sensors.Right}
		r.images = cam.AppendImages(r.images[:0], float32(a.Position.X), float32(a.Position.Y), margin)

		for _, img := range r.images {
			for s, off := range offsets {
				sx, sy := systems.SensorPoint(a.Position, a.Motion.Heading, off, p.SensorDistance)
				// Boxes are centered on the cell the sensor reads.
				cx := float32(math.Round(sx)-a.Position.X)*cam.Zoom + img.X
				cy := float32(math.Round(sy)-a.Position.Y)*cam.Zoom + img.Y
				col := sensorColor(s, a.Sensors.Turn)

				rl.DrawLineV(rl.Vector2{X: img.X, Y: img.Y},
					rl.Vector2{X: img.X + float32(sx-a.Position.X)*cam.Zoom, Y: img.Y + float32(sy-a.Position.Y)*cam.Zoom}, col)
				rl.DrawRectangleLinesEx(rl.Rectangle{
					X: cx - boxPx/2, Y: cy - boxPx/2, Width: boxPx, Height: boxPx,
				}, 1, col)

				if cam.Zoom >= readingsMinZoom {
					rl.DrawText(fmt.Sprintf("%d", readings[s]), int32(cx-boxPx/2)+2, int32(cy-boxPx/2)+2, 10, col)
				}
			}
		}
	}
}

// sensorColor highlights the side the agent turned toward.
func sensorColor(sensor int, turn int8) rl.Color {
	switch {
	case sensor == 0 && turn == components.TurnLeft:
		return colorTurnLeft
	case sensor == 2 && turn == components.TurnRight:
		return colorTurnRight
	case sensor == 1 && turn == components.TurnNone:
		return rl.Color{R: 120, G: 255, B: 140, A: 200}
	default:
		return colorTurnNone
	}
}
