package sim

// Grid is the uniform spatial bin index. It is rebuilt from the current
// position buffer at the start of every step and consumed by the force
// kernel (neighbor pruning) and the density view (per-bin counts). Bins are
// step-local: nothing in them survives a rebuild.
type Grid struct {
	cols   int
	rows   int
	binW   float32
	binH   float32
	width  float32
	height float32
	cells  [][]int32 // flat grid of particle index lists
}

// NewGrid creates a bin grid matching the parameter block's geometry.
func NewGrid(p *Params) *Grid {
	cols := int(p.NumBinsX)
	rows := int(p.NumBinsY)

	cells := make([][]int32, cols*rows)
	for i := range cells {
		cells[i] = make([]int32, 0, 8) // pre-allocate small capacity
	}

	return &Grid{
		cols:   cols,
		rows:   rows,
		binW:   p.BinSizeX,
		binH:   p.BinSizeY,
		width:  p.Width,
		height: p.Height,
		cells:  cells,
	}
}

// matches reports whether the grid geometry still agrees with p.
func (g *Grid) matches(p *Params) bool {
	return g.cols == int(p.NumBinsX) && g.rows == int(p.NumBinsY) &&
		g.binW == p.BinSizeX && g.binH == p.BinSizeY &&
		g.width == p.Width && g.height == p.Height
}

// Clear removes all particles from the grid.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Rebuild clears the grid and inserts every particle position.
func (g *Grid) Rebuild(positions []Vec2) {
	g.Clear()
	for i, pos := range positions {
		idx := g.CellIndex(pos)
		g.cells[idx] = append(g.cells[idx], int32(i))
	}
}

// cellCoords maps a field position to clamped cell coordinates. Positions
// that round outside the nominal grid (a missed wrap at the boundary) land
// in the nearest edge cell rather than out of bounds.
func (g *Grid) cellCoords(pos Vec2) (int, int) {
	// Normalize into [0,1) field-relative coordinates, then scale.
	col := int((pos.X + g.width/2) / g.width * float32(g.cols))
	row := int((pos.Y + g.height/2) / g.height * float32(g.rows))

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}

// CellIndex returns the flat bin index for a field position.
func (g *Grid) CellIndex(pos Vec2) int {
	col, row := g.cellCoords(pos)
	return row*g.cols + col
}

// Cols returns the number of grid columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return g.rows }

// NumBins returns the total bin count.
func (g *Grid) NumBins() int { return len(g.cells) }

// Counts fills dst with the per-bin particle counts (the density
// aggregate). dst is grown as needed and returned.
func (g *Grid) Counts(dst []float32) []float32 {
	if cap(dst) < len(g.cells) {
		dst = make([]float32, len(g.cells))
	}
	dst = dst[:len(g.cells)]
	for i, cell := range g.cells {
		dst[i] = float32(len(cell))
	}
	return dst
}
