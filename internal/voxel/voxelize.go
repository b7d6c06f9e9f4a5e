package voxel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Voxelize bins points into a dense grid.
//
// positions holds one position vector per point; features one feature
// vector per point, with one component per supplied edge set. The
// returned Grid has one dimension per edge set (plus the synthetic
// trailing dimension for 1-D input) and contains every input point
// exactly once.
//
// Contract violations (length mismatch, dimension mismatch, bad edge
// sets) are reported before any binning happens; there is no partial
// result. No other input is an error: out-of-range values land at the
// overflow coordinate and the grid widens as needed.
func Voxelize(positions, features [][]float64, edges [][]float64) (*Grid, error) {
	nominal, err := checkContract(positions, features, edges)
	if err != nil {
		return nil, err
	}

	indices := make([][]int, len(features))
	for i, fv := range features {
		row := make([]int, len(edges))
		for d := range edges {
			row[d] = Digitize(fv[d], edges[d])
		}
		indices[i] = row
	}

	g := Accumulate(indices, nominal)
	Materialize(g, positions)
	return g, nil
}

// VoxelizeParallel is Voxelize with digitization and materialization
// fanned out over worker goroutines. Output is identical to the serial
// path: per-point index slots are filled independently and grouping
// stays a single sequential pass, so cell membership order is
// unaffected. workers <= 0 means GOMAXPROCS.
func VoxelizeParallel(ctx context.Context, positions, features [][]float64, edges [][]float64, workers int) (*Grid, error) {
	nominal, err := checkContract(positions, features, edges)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	indices := make([][]int, len(features))
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, c := range chunks(len(features), workers) {
		lo, hi := c[0], c[1]
		eg.Go(func() error {
			for i := lo; i < hi; i++ {
				row := make([]int, len(edges))
				for d := range edges {
					row[d] = Digitize(features[i][d], edges[d])
				}
				indices[i] = row
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	g := Accumulate(indices, nominal)

	eg, _ = errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, c := range chunks(len(g.Cells), workers) {
		lo, hi := c[0], c[1]
		eg.Go(func() error {
			for i := lo; i < hi; i++ {
				materializeCell(&g.Cells[i], positions)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return g, nil
}

// checkContract validates the whole call contract up front and returns
// the nominal bin count per dimension.
func checkContract(positions, features [][]float64, edges [][]float64) ([]int, error) {
	if len(positions) != len(features) {
		return nil, &ErrLengthMismatch{Positions: len(positions), Features: len(features)}
	}
	nominal := make([]int, len(edges))
	for d, e := range edges {
		if err := ValidateEdges(d, e); err != nil {
			return nil, err
		}
		nominal[d] = len(e) - 1
	}
	for i, fv := range features {
		if len(fv) != len(edges) {
			return nil, &ErrDimensionMismatch{Expected: len(edges), Actual: len(fv), Point: i}
		}
	}
	return nominal, nil
}

// chunks splits n items into at most parts contiguous [lo,hi) ranges.
func chunks(n, parts int) [][2]int {
	var out [][2]int
	if n == 0 {
		return out
	}
	step := (n + parts - 1) / parts
	for lo := 0; lo < n; lo += step {
		hi := lo + step
		if hi > n {
			hi = n
		}
		out = append(out, [2]int{lo, hi})
	}
	return out
}
