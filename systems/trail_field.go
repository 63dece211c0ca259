package systems

import "bytes"

// Cell addresses one field cell by row and column.
type Cell struct {
	Y, X int
}

// FieldReader is the read-only view of the trail field handed to sensing and rendering.
type FieldReader interface {
	Width() int
	Height() int
	Get(y, x int) uint8
}

// TrailField is a toroidal, double-buffered grid of saturating 8-bit trail values.
// Every coordinate is wrapped on both axes, so no access is ever out of range.
// Readers see the front buffer; diffusion writes the back buffer and swaps.
type TrailField struct {
	w, h  int
	front []uint8
	back  []uint8
}

// NewTrailField allocates a zeroed field. Dimensions are fixed for its lifetime.
func NewTrailField(w, h int) *TrailField {
	if w <= 0 || h <= 0 {
		panic("systems: trail field dimensions must be positive")
	}
	return &TrailField{
		w:     w,
		h:     h,
		front: make([]uint8, w*h),
		back:  make([]uint8, w*h),
	}
}

// Width returns the number of columns.
func (f *TrailField) Width() int { return f.w }

// Height returns the number of rows.
func (f *TrailField) Height() int { return f.h }

// Wrap resolves any coordinate pair to the cell it addresses on the torus.
func (f *TrailField) Wrap(y, x int) Cell {
	return Cell{Y: modInt(y, f.h), X: modInt(x, f.w)}
}

func (f *TrailField) index(y, x int) int {
	return modInt(y, f.h)*f.w + modInt(x, f.w)
}

// Get returns the value at (y, x) after wrapping.
func (f *TrailField) Get(y, x int) uint8 {
	return f.front[f.index(y, x)]
}

// Set stores v at (y, x) after wrapping.
// A cell made nonzero this way must also be registered with the diffuser.
func (f *TrailField) Set(y, x int, v uint8) {
	f.front[f.index(y, x)] = v
}

// DepositSaturating adds amount to (y, x), saturating at 255, and returns the
// wrapped cell that became hot so the caller can register it.
func (f *TrailField) DepositSaturating(y, x int, amount uint8) Cell {
	c := f.Wrap(y, x)
	i := c.Y*f.w + c.X
	v := int(f.front[i]) + int(amount)
	if v > 255 {
		v = 255
	}
	f.front[i] = uint8(v)
	return c
}

// SwapBuffers exchanges the front and back buffers without copying.
func (f *TrailField) SwapBuffers() {
	f.front, f.back = f.back, f.front
}

// BoxSum returns the total of the (2r+1)x(2r+1) box centered on (cy, cx), wrapped.
func (f *TrailField) BoxSum(cy, cx, r int) int {
	sum := 0
	for dy := -r; dy <= r; dy++ {
		row := modInt(cy+dy, f.h) * f.w
		for dx := -r; dx <= r; dx++ {
			sum += int(f.front[row+modInt(cx+dx, f.w)])
		}
	}
	return sum
}

// CopyTo copies the front buffer, row-major, into dst and returns the count copied.
func (f *TrailField) CopyTo(dst []uint8) int {
	return copy(dst, f.front)
}

// Snapshot returns a copy of the front buffer.
func (f *TrailField) Snapshot() []uint8 {
	out := make([]uint8, len(f.front))
	copy(out, f.front)
	return out
}

// Equal reports whether two fields hold identical front buffers.
func (f *TrailField) Equal(o *TrailField) bool {
	return f.w == o.w && f.h == o.h && bytes.Equal(f.front, o.front)
}

// Sum returns the total trail intensity.
func (f *TrailField) Sum() int {
	total := 0
	for _, v := range f.front {
		total += int(v)
	}
	return total
}

// NonZero returns the number of cells holding any trail.
func (f *TrailField) NonZero() int {
	n := 0
	for _, v := range f.front {
		if v != 0 {
			n++
		}
	}
	return n
}
