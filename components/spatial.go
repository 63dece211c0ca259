package components

// Position is an agent's location in field coordinates (cells).
// Always within [0,width) x [0,height) after a move.
type Position struct {
	X, Y float64
}

// Motion holds an agent's speed and direction.
// Heading is unbounded; it is only ever used through sin/cos.
type Motion struct {
	Velocity float64 // cells per tick, constant for a run
	Heading  float64 // radians
}
