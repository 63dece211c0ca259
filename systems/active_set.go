package systems

// ActiveSet is a FIFO of field cells paired with a same-shape membership grid.
// A cell is queued at most once between resets. Popped cells stay marked, so the
// marks double as the visited set of a diffusion pass.
type ActiveSet struct {
	w, h   int
	queue  []Cell
	head   int
	member []bool
}

// NewActiveSet creates an empty set for a w x h field.
func NewActiveSet(w, h int) *ActiveSet {
	return &ActiveSet{
		w:      w,
		h:      h,
		queue:  make([]Cell, 0, 256),
		member: make([]bool, w*h),
	}
}

// Add queues c unless it is already a member. c must be a wrapped cell.
// Returns true if the cell was newly added.
func (s *ActiveSet) Add(c Cell) bool {
	i := c.Y*s.w + c.X
	if s.member[i] {
		return false
	}
	s.member[i] = true
	s.queue = append(s.queue, c)
	return true
}

// Contains reports whether c has been added since the last reset.
func (s *ActiveSet) Contains(c Cell) bool {
	return s.member[c.Y*s.w+c.X]
}

// Len returns the number of cells added since the last reset, popped or not.
func (s *ActiveSet) Len() int {
	return len(s.queue)
}

// Pending returns the number of cells not yet popped.
func (s *ActiveSet) Pending() int {
	return len(s.queue) - s.head
}

// Pop removes the oldest pending cell.
func (s *ActiveSet) Pop() (Cell, bool) {
	if s.head >= len(s.queue) {
		return Cell{}, false
	}
	c := s.queue[s.head]
	s.head++
	return c, true
}

// Cells returns every cell added since the last reset in insertion order.
// The slice is reused; do not keep it across a Reset.
func (s *ActiveSet) Cells() []Cell {
	return s.queue
}

// Reset empties the set. Only the marks of queued cells are cleared, so the
// cost is proportional to the set size rather than the field size.
func (s *ActiveSet) Reset() {
	for _, c := range s.queue {
		s.member[c.Y*s.w+c.X] = false
	}
	s.queue = s.queue[:0]
	s.head = 0
}
