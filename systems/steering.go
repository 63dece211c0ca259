package systems

import (
	"fmt"
	"math"

	"github.com/pthm-cable/slime/components"
)

// DepositAmount is what a single agent lays down per tick by default.
const DepositAmount = 255

// Decide picks a heading change from the three sensor readings.
// rand must be a uniform draw in [0,1); anything else panics.
//
// Positive delta is a left turn (sign -1), negative a right turn (sign +1).
// When both sides beat the center the side is chosen at random, weighted by
// its reading. Ties that favor no side leave the heading alone.
func Decide(left, center, right int32, rand, turnAngle float64) (delta float64, sign int8) {
	if !(rand >= 0 && rand < 1) {
		panic(fmt.Sprintf("systems: random draw %v outside [0,1)", rand))
	}

	switch {
	case center > left && center > right:
		return 0, components.TurnNone
	case center < left && center < right:
		total := left + right
		if total <= 0 {
			// Unreachable with non-negative readings; kept so a zero sum never divides.
			return 0, components.TurnNone
		}
		if rand < float64(left)/float64(total) {
			return turnAngle, components.TurnLeft
		}
		return -turnAngle, components.TurnRight
	case left > right:
		return turnAngle, components.TurnLeft
	case right > left:
		return -turnAngle, components.TurnRight
	default:
		return 0, components.TurnNone
	}
}

// Move advances pos by velocity along heading and wraps onto the w x h torus.
func Move(pos components.Position, mot components.Motion, w, h int) components.Position {
	return components.Position{
		X: wrapFloat(pos.X+mot.Velocity*math.Cos(mot.Heading), float64(w)),
		Y: wrapFloat(pos.Y+mot.Velocity*math.Sin(mot.Heading), float64(h)),
	}
}

// UpdateAgent runs sense, decide and move for one agent against a read-only field.
// It is a pure function of its inputs, so agents can be updated in any order
// or in parallel as long as the field is not written meanwhile.
func UpdateAgent(field FieldReader, pos components.Position, mot components.Motion, p SteeringParams, rand float64) (components.Position, components.Motion, components.Sensors) {
	if !finite(pos.X) || !finite(pos.Y) || !finite(mot.Heading) || !finite(mot.Velocity) {
		panic(fmt.Sprintf("systems: non-finite agent state pos=%+v motion=%+v", pos, mot))
	}

	left, center, right := Sense(field, pos, mot.Heading, p)
	delta, sign := Decide(left, center, right, rand, p.TurnAngle)
	mot.Heading += delta

	newPos := Move(pos, mot, field.Width(), field.Height())
	return newPos, mot, components.Sensors{Left: left, Center: center, Right: right, Turn: sign}
}

// DepositCell returns the grid cell an agent at pos deposits into.
// The cell may sit one past the edge; the field wraps it.
func DepositCell(pos components.Position) Cell {
	return Cell{Y: int(math.Round(pos.Y)), X: int(math.Round(pos.X))}
}
