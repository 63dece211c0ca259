package systems

import (
	"math"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/config"
)

// SteeringParams holds the sensor geometry and turn step shared by all agents.
type SteeringParams struct {
	SensorRadius   int     // half-width of each sampled box in cells
	SensorAngle    float64 // radians between the center and side sensors
	SensorDistance float64 // distance from the agent to each sample point
	TurnAngle      float64 // radians turned per decision
}

// SteeringParamsFromConfig extracts the steering parameters from cfg.
func SteeringParamsFromConfig(cfg *config.Config) SteeringParams {
	return SteeringParams{
		SensorRadius:   cfg.Sensors.Radius,
		SensorAngle:    cfg.Derived.SensorAngle,
		SensorDistance: cfg.Sensors.Distance,
		TurnAngle:      cfg.Derived.TurnAngle,
	}
}

// SensorPoint returns the sample point at offset radians from heading.
func SensorPoint(pos components.Position, heading, offset, distance float64) (x, y float64) {
	a := heading + offset
	return pos.X + distance*math.Cos(a), pos.Y + distance*math.Sin(a)
}

// Sense samples the field through the three sensors.
// Left looks at heading-angle, center at heading, right at heading+angle.
// Each reading is the wrapped box sum around the rounded sample point.
func Sense(field FieldReader, pos components.Position, heading float64, p SteeringParams) (left, center, right int32) {
	left = sensorSum(field, pos, heading, -p.SensorAngle, p)
	center = sensorSum(field, pos, heading, 0, p)
	right = sensorSum(field, pos, heading, p.SensorAngle, p)
	return left, center, right
}

func sensorSum(field FieldReader, pos components.Position, heading, offset float64, p SteeringParams) int32 {
	sx, sy := SensorPoint(pos, heading, offset, p.SensorDistance)
	cx := int(math.Round(sx))
	cy := int(math.Round(sy))
	r := p.SensorRadius

	if tf, ok := field.(*TrailField); ok {
		return int32(tf.BoxSum(cy, cx, r))
	}

	var sum int32
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			sum += int32(field.Get(y, x))
		}
	}
	return sum
}
