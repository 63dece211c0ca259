// Package components defines ECS components for the simulation.
package components

// Turn signs recorded by the steering decision.
// TurnLeft means heading increased by the turn angle.
const (
	TurnLeft  int8 = -1
	TurnNone  int8 = 0
	TurnRight int8 = 1
)

// Sensors holds the readings from an agent's last sense step and the turn it chose.
// Diagnostic only: nothing in the simulation reads these back.
type Sensors struct {
	Left, Center, Right int32
	Turn                int8
}

// TurnName returns a display label for a turn sign.
func TurnName(sign int8) string {
	switch {
	case sign < 0:
		return "left"
	case sign > 0:
		return "right"
	default:
		return "none"
	}
}
