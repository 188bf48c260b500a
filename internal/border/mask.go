package border

// Pair holds the indices of the two seeds contending at a boundary cell.
type Pair struct {
	A, B int32
}

// NoPair marks a cell that is not on a boundary.
var NoPair = Pair{A: -1, B: -1}

// IsSet reports whether p is a real pair rather than NoPair.
func (p Pair) IsSet() bool { return p != NoPair }

// Same compares p and q as unordered pairs.
func (p Pair) Same(q Pair) bool {
	return p == q || (p.A == q.B && p.B == q.A)
}

// Mask records, per raster cell, the contending seed pair or NoPair.
// Cells are stored row by row so that each row is an independent slice.
type Mask struct {
	width  int
	height int
	cells  []Pair
}

// NewMask returns a width×height mask with every cell set to NoPair.
func NewMask(width, height int) *Mask {
	m := &Mask{
		width:  width,
		height: height,
		cells:  make([]Pair, width*height),
	}
	m.Clear()
	return m
}

// Width returns the number of columns.
func (m *Mask) Width() int { return m.width }

// Height returns the number of rows.
func (m *Mask) Height() int { return m.height }

// At returns the pair at (x, y). Coordinates outside the mask read as NoPair.
func (m *Mask) At(x, y int) Pair {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return NoPair
	}
	return m.cells[y*m.width+x]
}

// Set stores p at (x, y). Out of range writes are ignored.
func (m *Mask) Set(x, y int, p Pair) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.cells[y*m.width+x] = p
}

// Row returns the cells of row y. Writers that own distinct rows may use
// their slices concurrently.
func (m *Mask) Row(y int) []Pair {
	return m.cells[y*m.width : (y+1)*m.width]
}

// Clear resets every cell to NoPair.
func (m *Mask) Clear() {
	for i := range m.cells {
		m.cells[i] = NoPair
	}
}

// Count returns the number of boundary cells.
func (m *Mask) Count() int {
	n := 0
	for _, p := range m.cells {
		if p.IsSet() {
			n++
		}
	}
	return n
}

// Equal reports whether both masks have the same size and cells.
func (m *Mask) Equal(o *Mask) bool {
	if m.width != o.width || m.height != o.height {
		return false
	}
	for i, p := range m.cells {
		if o.cells[i] != p {
			return false
		}
	}
	return true
}
