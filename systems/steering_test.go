package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/slime/components"
)

const turn = math.Pi / 12

func TestDecide(t *testing.T) {
	tests := []struct {
		name                string
		left, center, right int32
		rand                float64
		wantSign            int8
	}{
		{"center strongest", 5, 10, 3, 0, components.TurnNone},
		{"center strongest high draw", 5, 10, 3, 0.999, components.TurnNone},
		{"right beats left over center", 2, 3, 6, 0, components.TurnRight},
		{"right beats left over center high draw", 2, 3, 6, 0.99, components.TurnRight},
		{"left beats right over center", 9, 3, 6, 0.5, components.TurnLeft},
		{"both sides beat center, weighted right", 2, 1, 6, 0.25, components.TurnRight},
		{"both sides beat center, weighted right high draw", 2, 1, 6, 0.9, components.TurnRight},
		{"both sides beat center, weighted left", 2, 1, 6, 0.1, components.TurnLeft},
		{"even split low draw", 4, 1, 4, 0, components.TurnLeft},
		{"even split high draw", 4, 1, 4, 0.9, components.TurnRight},
		{"all equal", 7, 7, 7, 0.3, components.TurnNone},
		{"flat zero", 0, 0, 0, 0.3, components.TurnNone},
		{"sides tie above center", 4, 4, 4, 0.0, components.TurnNone},
		{"left ties center", 5, 5, 1, 0.5, components.TurnLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta, sign := Decide(tt.left, tt.center, tt.right, tt.rand, turn)
			if sign != tt.wantSign {
				t.Errorf("sign = %d (%s), want %d (%s)", sign, components.TurnName(sign), tt.wantSign, components.TurnName(tt.wantSign))
			}
			wantDelta := -float64(tt.wantSign) * turn
			if delta != wantDelta {
				t.Errorf("delta = %v, want %v", delta, wantDelta)
			}
		})
	}
}

func TestDecideRejectsBadDraw(t *testing.T) {
	for _, r := range []float64{-0.1, 1, 1.5, math.NaN()} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for rand=%v", r)
				}
			}()
			Decide(1, 0, 1, r, turn)
		}()
	}
}

func TestMoveWraps(t *testing.T) {
	tests := []struct {
		name    string
		pos     components.Position
		heading float64
		want    components.Position
	}{
		{"plain step", components.Position{X: 3, Y: 4}, 0, components.Position{X: 4, Y: 4}},
		{"wrap right edge", components.Position{X: 9.6, Y: 5}, 0, components.Position{X: 0.6, Y: 5}},
		{"wrap left edge", components.Position{X: 0.2, Y: 5}, math.Pi, components.Position{X: 9.2, Y: 5}},
		{"wrap top edge", components.Position{X: 5, Y: 0.5}, -math.Pi / 2, components.Position{X: 5, Y: 9.5}},
		{"wrap bottom edge", components.Position{X: 5, Y: 9.5}, math.Pi / 2, components.Position{X: 5, Y: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Move(tt.pos, components.Motion{Velocity: 1, Heading: tt.heading}, 10, 10)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Move = %+v, want %+v", got, tt.want)
			}
			if got.X < 0 || got.X >= 10 || got.Y < 0 || got.Y >= 10 {
				t.Errorf("Move left the torus: %+v", got)
			}
		})
	}
}

func TestWrapFloatNeverReturnsModulus(t *testing.T) {
	if got := wrapFloat(-1e-18, 10); got < 0 || got >= 10 {
		t.Errorf("wrapFloat(-1e-18, 10) = %v, want value in [0,10)", got)
	}
	if got := wrapFloat(-25, 10); got != 5 {
		t.Errorf("wrapFloat(-25, 10) = %v, want 5", got)
	}
}

func TestUpdateAgentFlatFieldScenario(t *testing.T) {
	f := NewTrailField(10, 10)
	pos := components.Position{X: 9.6, Y: 3}
	mot := components.Motion{Velocity: 1, Heading: 0}

	newPos, newMot, s := UpdateAgent(f, pos, mot, testParams(), 0.42)

	if s.Left != 0 || s.Center != 0 || s.Right != 0 {
		t.Errorf("expected zero readings on flat field, got %+v", s)
	}
	if s.Turn != components.TurnNone {
		t.Errorf("expected no turn, got %s", components.TurnName(s.Turn))
	}
	if newMot.Heading != 0 {
		t.Errorf("heading changed to %v", newMot.Heading)
	}
	if math.Abs(newPos.X-0.6) > 1e-9 || newPos.Y != 3 {
		t.Errorf("position = %+v, want {0.6 3}", newPos)
	}
}

func TestUpdateAgentTurnsTowardTrail(t *testing.T) {
	f := NewTrailField(64, 64)
	// Trail under the right sensor only.
	f.Set(26, 26, 200)

	_, mot, s := UpdateAgent(f, components.Position{X: 20, Y: 20}, components.Motion{Velocity: 1}, testParams(), 0.5)
	if s.Turn != components.TurnRight {
		t.Fatalf("expected right turn, got %s (%+v)", components.TurnName(s.Turn), s)
	}
	if math.Abs(mot.Heading-(-turn)) > 1e-12 {
		t.Errorf("heading = %v, want %v", mot.Heading, -turn)
	}
}

func TestUpdateAgentRejectsNonFinite(t *testing.T) {
	f := NewTrailField(8, 8)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for NaN position")
		}
	}()
	UpdateAgent(f, components.Position{X: math.NaN()}, components.Motion{Velocity: 1}, testParams(), 0.1)
}

func TestDepositCellRounds(t *testing.T) {
	if c := DepositCell(components.Position{X: 3.4, Y: 7.5}); c != (Cell{Y: 8, X: 3}) {
		t.Errorf("DepositCell = %+v, want {8 3}", c)
	}
	// Positions just below the width round onto the wrapped column.
	f := NewTrailField(10, 10)
	c := DepositCell(components.Position{X: 9.7, Y: 0})
	if w := f.Wrap(c.Y, c.X); w != (Cell{Y: 0, X: 0}) {
		t.Errorf("wrapped deposit cell = %+v, want {0 0}", w)
	}
}
