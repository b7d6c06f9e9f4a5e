package voxel

// Voxel is one addressable cell of a Grid. PointIDs holds the ordinals
// of the member points in ascending input order; Positions is filled in
// by Materialize and mirrors PointIDs element for element.
type Voxel struct {
	PointIDs  []int
	Positions [][]float64
}

// Grid is a dense multi-dimensional array of Voxels.
//
// Along dimension d the addressable coordinates are 0..Extents[d],
// where 0 is the overflow coordinate and 1..Extents[d] are interior
// bins. Every addressable cell is present, empty or not.
type Grid struct {
	// Extents holds the effective extent per dimension: the larger of
	// the nominal bin count and the maximum index actually observed.
	Extents []int

	// Cells is the flat row-major cell array; len = product of
	// (Extents[d]+1) over all dimensions.
	Cells []Voxel

	// Overflow counts input points that received the overflow index in
	// at least one dimension. Below-range and above-range are not
	// distinguished; see OverflowIndex.
	Overflow int

	padded  bool
	strides []int
}

func newGrid(extents []int) *Grid {
	g := &Grid{
		Extents: extents,
		strides: make([]int, len(extents)),
	}
	size := 1
	for d := len(extents) - 1; d >= 0; d-- {
		g.strides[d] = size
		size *= extents[d] + 1
	}
	g.Cells = make([]Voxel, size)
	return g
}

// Dims returns the number of grid dimensions, including the synthetic
// trailing dimension added for 1-D input.
func (g *Grid) Dims() int { return len(g.Extents) }

// Size returns the number of addressable coordinates along dimension d.
func (g *Grid) Size(d int) int { return g.Extents[d] + 1 }

// Padded reports whether a trailing dimension of extent 1 was added to
// make a 1-D input uniformly multi-dimensional.
func (g *Grid) Padded() bool { return g.padded }

// Idx converts a coordinate tuple to the flat index into Cells.
func (g *Grid) Idx(coord []int) int {
	idx := 0
	for d, c := range coord {
		idx += c * g.strides[d]
	}
	return idx
}

// At returns the cell at the given coordinates.
func (g *Grid) At(coord ...int) *Voxel {
	return &g.Cells[g.Idx(coord)]
}

// CoordOf is the inverse of Idx: the coordinate tuple of flat index i.
func (g *Grid) CoordOf(i int) []int {
	coord := make([]int, len(g.Extents))
	for d, s := range g.strides {
		coord[d] = i / s
		i %= s
	}
	return coord
}

// NumCells returns the total number of addressable cells, the product
// of Size(d) over all dimensions.
func (g *Grid) NumCells() int { return len(g.Cells) }

// NumPoints returns the total membership count across all cells.
func (g *Grid) NumPoints() int {
	n := 0
	for i := range g.Cells {
		n += len(g.Cells[i].PointIDs)
	}
	return n
}

// Accumulate groups point ordinals 0..len(indices)-1 into a dense Grid
// by their per-dimension bin indices.
//
// The effective extent of dimension d is the larger of nominalBins[d]
// and the maximum index observed in that dimension, so out-of-range
// digitization results widen the grid instead of failing. A 1-D index
// set is padded with a trailing dimension of extent 1 (every point at
// coordinate 1 there) so downstream indexing never special-cases 1-D.
//
// Grouping is stable: within a cell, ordinals appear in ascending
// input order. All indices[i] must have length len(nominalBins); the
// caller (Voxelize) enforces that before digitization.
func Accumulate(indices [][]int, nominalBins []int) *Grid {
	dims := len(nominalBins)
	extents := make([]int, dims)
	copy(extents, nominalBins)
	for _, idx := range indices {
		for d, v := range idx {
			if v > extents[d] {
				extents[d] = v
			}
		}
	}

	padded := dims == 1
	if padded {
		extents = append(extents, 1)
	}

	g := newGrid(extents)
	g.padded = padded

	coord := make([]int, len(extents))
	for id, idx := range indices {
		overflowed := false
		for d, v := range idx {
			coord[d] = v
			if v == OverflowIndex {
				overflowed = true
			}
		}
		if padded {
			coord[dims] = 1
		}
		if overflowed {
			g.Overflow++
		}
		cell := &g.Cells[g.Idx(coord)]
		cell.PointIDs = append(cell.PointIDs, id)
	}
	return g
}

// Materialize fills each cell's Positions from the point ordinals,
// preserving per-cell order. positions is indexed by point ordinal.
func Materialize(g *Grid, positions [][]float64) {
	for i := range g.Cells {
		materializeCell(&g.Cells[i], positions)
	}
}

func materializeCell(cell *Voxel, positions [][]float64) {
	if len(cell.PointIDs) == 0 {
		return
	}
	cell.Positions = make([][]float64, len(cell.PointIDs))
	for j, id := range cell.PointIDs {
		cell.Positions[j] = positions[id]
	}
}
