package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/slime/components"
)

// mapField is a FieldReader backed by a sparse map, used to exercise the
// generic sensing path.
type mapField struct {
	w, h  int
	cells map[Cell]uint8
}

func (m *mapField) Width() int  { return m.w }
func (m *mapField) Height() int { return m.h }
func (m *mapField) Get(y, x int) uint8 {
	return m.cells[Cell{Y: modInt(y, m.h), X: modInt(x, m.w)}]
}

func testParams() SteeringParams {
	return SteeringParams{
		SensorRadius:   2,
		SensorAngle:    math.Pi / 4,
		SensorDistance: 8,
		TurnAngle:      math.Pi / 12,
	}
}

func TestSenseFlatField(t *testing.T) {
	f := NewTrailField(64, 64)
	l, c, r := Sense(f, components.Position{X: 10, Y: 10}, 0, testParams())
	if l != 0 || c != 0 || r != 0 {
		t.Errorf("expected zero readings, got %d %d %d", l, c, r)
	}
}

func TestSenseSides(t *testing.T) {
	// Agent at (20,20) facing +x. With distance 8 and a 45 degree offset the
	// left sample rounds to (y=14, x=26), the center to (20, 28) and the
	// right to (26, 26).
	f := NewTrailField(64, 64)
	f.Set(14, 26, 10)
	f.Set(20, 28, 20)
	f.Set(28, 27, 30) // inside the right box (rows 24..28, cols 24..28)

	pos := components.Position{X: 20, Y: 20}
	l, c, r := Sense(f, pos, 0, testParams())
	if l != 10 || c != 20 || r != 30 {
		t.Errorf("Sense = (%d, %d, %d), want (10, 20, 30)", l, c, r)
	}

	// The generic reader path must agree with the fast path.
	m := &mapField{w: 64, h: 64, cells: map[Cell]uint8{
		{14, 26}: 10,
		{20, 28}: 20,
		{28, 27}: 30,
	}}
	ml, mc, mr := Sense(m, pos, 0, testParams())
	if ml != l || mc != c || mr != r {
		t.Errorf("generic Sense = (%d, %d, %d), fast path = (%d, %d, %d)", ml, mc, mr, l, c, r)
	}
}

func TestSenseBoxIsInclusive(t *testing.T) {
	f := NewTrailField(64, 64)
	// Corners of the 5x5 box around the center sample (20, 28).
	f.Set(18, 26, 1)
	f.Set(18, 30, 1)
	f.Set(22, 26, 1)
	f.Set(22, 30, 1)
	// Just outside it.
	f.Set(17, 28, 50)
	f.Set(20, 31, 50)

	_, c, _ := Sense(f, components.Position{X: 20, Y: 20}, 0, testParams())
	if c != 4 {
		t.Errorf("center reading = %d, want 4", c)
	}
}

func TestSenseWrapsAcrossEdge(t *testing.T) {
	// Center sample of an agent at x=60 facing +x lands at x=68, wrapped to 4.
	f := NewTrailField(64, 64)
	f.Set(32, 4, 77)

	_, c, _ := Sense(f, components.Position{X: 60, Y: 32}, 0, testParams())
	if c != 77 {
		t.Errorf("center reading = %d, want 77", c)
	}
}
