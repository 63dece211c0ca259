package systems

import "math"

// TrailDiffuser runs the per-tick diffusion and decay of a TrailField.
// Register must be called for every cell a deposit makes nonzero.
type TrailDiffuser interface {
	Register(c Cell)
	Diffuse()
	Decay()
	ActiveCount() int
}

// DecayTable maps every 8-bit value to floor(value * factor).
type DecayTable [256]uint8

// NewDecayTable precomputes the decay for factor in [0, 1].
func NewDecayTable(factor float64) DecayTable {
	var t DecayTable
	for v := range t {
		t[v] = uint8(math.Floor(float64(v) * factor))
	}
	return t
}

// Apply returns the decayed value.
func (t *DecayTable) Apply(v uint8) uint8 {
	return t[v]
}

// SparseDiffuser diffuses and decays only the cells that can hold trail.
//
// It keeps every nonzero cell in an active set. A pass pops cells breadth-first,
// writes the box-blurred value to the back buffer, and queues the neighbors of
// every nonzero source so that any cell able to receive flux is visited. The
// result is byte-identical to DenseDiffuser while the work scales with the
// trail, not the grid.
type SparseDiffuser struct {
	field  *TrailField
	radius int
	area   int
	decay  DecayTable

	// active is this tick's work queue; its marks are the visited set of a pass.
	active *ActiveSet
	// next collects the cells whose diffused value is nonzero.
	next *ActiveSet
}

// NewSparseDiffuser creates a diffuser for field with a (2r+1)^2 box kernel.
func NewSparseDiffuser(field *TrailField, radius int, decayFactor float64) *SparseDiffuser {
	k := 2*radius + 1
	return &SparseDiffuser{
		field:  field,
		radius: radius,
		area:   k * k,
		decay:  NewDecayTable(decayFactor),
		active: NewActiveSet(field.w, field.h),
		next:   NewActiveSet(field.w, field.h),
	}
}

// Register marks c as active. Coordinates are wrapped.
func (d *SparseDiffuser) Register(c Cell) {
	d.active.Add(d.field.Wrap(c.Y, c.X))
}

// ActiveCount returns the number of cells queued for the next pass.
func (d *SparseDiffuser) ActiveCount() int {
	return d.active.Len()
}

// Active returns the cells queued for the next pass.
func (d *SparseDiffuser) Active() []Cell {
	return d.active.Cells()
}

// Diffuse runs one pass. Box sums always read the front buffer as it was
// before the pass, so the result does not depend on visit order.
func (d *SparseDiffuser) Diffuse() {
	f := d.field
	r := d.radius
	w, h := f.w, f.h

	for {
		c, ok := d.active.Pop()
		if !ok {
			break
		}
		i := c.Y*w + c.X
		hot := f.front[i] > 0

		sum := 0
		for dy := -r; dy <= r; dy++ {
			y := modInt(c.Y+dy, h)
			row := y * w
			for dx := -r; dx <= r; dx++ {
				x := modInt(c.X+dx, w)
				sum += int(f.front[row+x])
				if hot {
					d.active.Add(Cell{Y: y, X: x})
				}
			}
		}

		v := sum / d.area
		if v > 255 {
			v = 255
		}
		f.back[i] = uint8(v)
		if v > 0 {
			d.next.Add(c)
		}
	}

	// Every nonzero front cell was visited, so zeroing the visited cells leaves
	// the buffer blank for its turn as the back buffer.
	for _, c := range d.active.Cells() {
		f.front[c.Y*w+c.X] = 0
	}
	d.active.Reset()

	f.SwapBuffers()
	d.active, d.next = d.next, d.active
}

// Decay applies the decay factor to the active cells. Cells outside the set are zero.
func (d *SparseDiffuser) Decay() {
	f := d.field
	for _, c := range d.active.Cells() {
		i := c.Y*f.w + c.X
		f.front[i] = d.decay.Apply(f.front[i])
	}
}

// DenseDiffuser is the brute-force full-grid diffusion and decay.
// It is the reference the sparse path must match and a runtime mode of its own.
type DenseDiffuser struct {
	field  *TrailField
	radius int
	area   int
	decay  DecayTable
}

// NewDenseDiffuser creates a full-grid diffuser with a (2r+1)^2 box kernel.
func NewDenseDiffuser(field *TrailField, radius int, decayFactor float64) *DenseDiffuser {
	k := 2*radius + 1
	return &DenseDiffuser{
		field:  field,
		radius: radius,
		area:   k * k,
		decay:  NewDecayTable(decayFactor),
	}
}

// Register is a no-op; every cell is processed each tick.
func (d *DenseDiffuser) Register(Cell) {}

// ActiveCount returns the number of nonzero cells.
func (d *DenseDiffuser) ActiveCount() int {
	return d.field.NonZero()
}

// Diffuse box-blurs every cell into the back buffer and swaps.
func (d *DenseDiffuser) Diffuse() {
	f := d.field
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			v := f.BoxSum(y, x, d.radius) / d.area
			if v > 255 {
				v = 255
			}
			f.back[y*f.w+x] = uint8(v)
		}
	}
	f.SwapBuffers()
}

// Decay applies the decay factor to every cell.
func (d *DenseDiffuser) Decay() {
	f := d.field
	for i, v := range f.front {
		f.front[i] = d.decay.Apply(v)
	}
}
