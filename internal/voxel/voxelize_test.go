package voxel

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func singleColumn(values ...float64) [][]float64 {
	out := make([][]float64, len(values))
	for i, v := range values {
		out[i] = []float64{v}
	}
	return out
}

func TestVoxelize_OneDimensional(t *testing.T) {
	features := singleColumn(0.5, 1.5, 2.5)
	positions := [][]float64{{0.5, 0, 0}, {1.5, 0, 0}, {2.5, 0, 0}}
	edges := [][]float64{{0, 1, 2, 3}}

	g, err := Voxelize(positions, features, edges)
	if err != nil {
		t.Fatalf("Voxelize failed: %v", err)
	}
	if g.Extents[0] != 3 {
		t.Fatalf("extent = %d, want 3", g.Extents[0])
	}
	for i := 1; i <= 3; i++ {
		cell := g.At(i, 1)
		if len(cell.PointIDs) != 1 || cell.PointIDs[0] != i-1 {
			t.Fatalf("bin %d members = %v, want [%d]", i, cell.PointIDs, i-1)
		}
		if diff := cmp.Diff([][]float64{positions[i-1]}, cell.Positions); diff != "" {
			t.Fatalf("bin %d positions mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestVoxelize_BelowRangePointKept(t *testing.T) {
	features := singleColumn(-5.0)
	positions := [][]float64{{-5, 0, 0}}
	edges := [][]float64{{0, 1, 2, 3}}

	g, err := Voxelize(positions, features, edges)
	if err != nil {
		t.Fatalf("Voxelize failed: %v", err)
	}
	cell := g.At(OverflowIndex, 1)
	if len(cell.PointIDs) != 1 || cell.PointIDs[0] != 0 {
		t.Fatalf("overflow cell members = %v, want [0]", cell.PointIDs)
	}
	if g.Overflow != 1 {
		t.Fatalf("overflow count = %d, want 1", g.Overflow)
	}
	for i := 1; i <= 3; i++ {
		if n := len(g.At(i, 1).PointIDs); n != 0 {
			t.Errorf("nominal bin %d unexpectedly has %d members", i, n)
		}
	}
}

func TestVoxelize_TwoDimensional(t *testing.T) {
	features := [][]float64{{0.5, 0.5}, {2.5, 2.5}}
	positions := [][]float64{{1, 1, 1}, {2, 2, 2}}
	edges := [][]float64{{0, 1, 2, 3}, {0, 1, 2, 3}}

	g, err := Voxelize(positions, features, edges)
	if err != nil {
		t.Fatalf("Voxelize failed: %v", err)
	}
	if got := g.At(1, 1).PointIDs; len(got) != 1 || got[0] != 0 {
		t.Fatalf("cell (1,1) = %v, want [0]", got)
	}
	if got := g.At(3, 3).PointIDs; len(got) != 1 || got[0] != 1 {
		t.Fatalf("cell (3,3) = %v, want [1]", got)
	}
	if g.NumPoints() != 2 {
		t.Fatalf("total membership = %d, want 2", g.NumPoints())
	}
}

func TestVoxelize_DimensionMismatchRejected(t *testing.T) {
	features := [][]float64{{0.5, 0.5}}
	positions := [][]float64{{1, 1, 1}}
	edges := [][]float64{{0, 1, 2, 3}}

	g, err := Voxelize(positions, features, edges)
	var dim *ErrDimensionMismatch
	if !errors.As(err, &dim) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
	if g != nil {
		t.Fatal("contract violation must not produce a partial grid")
	}
	if dim.Expected != 1 || dim.Actual != 2 {
		t.Fatalf("unexpected error detail: %+v", dim)
	}
}

func TestVoxelize_LengthMismatchRejected(t *testing.T) {
	_, err := Voxelize([][]float64{{1, 2, 3}}, nil, [][]float64{{0, 1}})
	var lm *ErrLengthMismatch
	if !errors.As(err, &lm) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestVoxelize_BadEdgesRejected(t *testing.T) {
	_, err := Voxelize([][]float64{{1}}, [][]float64{{1}}, [][]float64{{3, 2, 1}})
	var bad *ErrBadEdges
	if !errors.As(err, &bad) {
		t.Fatalf("expected ErrBadEdges, got %v", err)
	}
}

// Every input point appears in exactly one cell, regardless of how far
// out of range its features are.
func TestVoxelize_Completeness(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const n = 5000
	positions := make([][]float64, n)
	features := make([][]float64, n)
	for i := range positions {
		p := []float64{rng.NormFloat64() * 50, rng.NormFloat64() * 50, rng.NormFloat64() * 50}
		positions[i] = p
		features[i] = p
	}
	edges := [][]float64{
		{-20, -10, 0, 10, 20},
		{-20, -10, 0, 10, 20},
		{-20, -10, 0, 10, 20},
	}

	g, err := Voxelize(positions, features, edges)
	if err != nil {
		t.Fatalf("Voxelize failed: %v", err)
	}
	seen := make([]bool, n)
	for i := range g.Cells {
		for _, id := range g.Cells[i].PointIDs {
			if seen[id] {
				t.Fatalf("point %d assigned to more than one cell", id)
			}
			seen[id] = true
		}
	}
	for id, ok := range seen {
		if !ok {
			t.Fatalf("point %d dropped", id)
		}
	}
}

func TestVoxelize_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const n = 1000
	positions := make([][]float64, n)
	features := make([][]float64, n)
	for i := range positions {
		p := []float64{rng.Float64() * 10, rng.Float64() * 10}
		positions[i] = p
		features[i] = p
	}
	edges := [][]float64{{0, 2, 4, 6, 8}, {0, 2, 4, 6, 8}}

	a, err := Voxelize(positions, features, edges)
	if err != nil {
		t.Fatalf("Voxelize failed: %v", err)
	}
	b, err := Voxelize(positions, features, edges)
	if err != nil {
		t.Fatalf("Voxelize failed: %v", err)
	}
	if diff := cmp.Diff(a, b, cmp.AllowUnexported(Grid{})); diff != "" {
		t.Fatalf("repeated call differs (-first +second):\n%s", diff)
	}
}

// The parallel path must be bit-identical to the serial one.
func TestVoxelizeParallel_MatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	const n = 4096
	positions := make([][]float64, n)
	features := make([][]float64, n)
	for i := range positions {
		p := []float64{rng.NormFloat64() * 30, rng.NormFloat64() * 30, rng.NormFloat64() * 30}
		positions[i] = p
		features[i] = p
	}
	edges := [][]float64{
		{-30, -15, 0, 15, 30},
		{-30, -15, 0, 15, 30},
		{-30, -15, 0, 15, 30},
	}

	serial, err := Voxelize(positions, features, edges)
	if err != nil {
		t.Fatalf("serial Voxelize failed: %v", err)
	}
	for _, workers := range []int{1, 2, 4, 7} {
		parallel, err := VoxelizeParallel(context.Background(), positions, features, edges, workers)
		if err != nil {
			t.Fatalf("parallel Voxelize (workers=%d) failed: %v", workers, err)
		}
		if diff := cmp.Diff(serial, parallel, cmp.AllowUnexported(Grid{})); diff != "" {
			t.Fatalf("parallel output differs (workers=%d) (-serial +parallel):\n%s", workers, diff)
		}
	}
}

func TestVoxelizeParallel_ContractCheckedBeforeWork(t *testing.T) {
	_, err := VoxelizeParallel(context.Background(),
		[][]float64{{1}}, [][]float64{{1, 2}}, [][]float64{{0, 1}}, 4)
	var dim *ErrDimensionMismatch
	if !errors.As(err, &dim) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}
