package voxel

import (
	"errors"
	"math"
	"testing"
)

func TestDigitize_InteriorBins(t *testing.T) {
	edges := []float64{0, 1, 2, 3}
	cases := []struct {
		v    float64
		want int
	}{
		{0.5, 1},
		{1.5, 2},
		{2.5, 3},
	}
	for _, c := range cases {
		if got := Digitize(c.v, edges); got != c.want {
			t.Errorf("Digitize(%v) = %d, want %d", c.v, got, c.want)
		}
	}
}

// A value sitting exactly on an interior edge opens the bin to its
// right, it does not close the bin to its left.
func TestDigitize_InteriorEdgeIsLeftInclusive(t *testing.T) {
	edges := []float64{0, 1, 2, 3}
	if got := Digitize(1.0, edges); got != 2 {
		t.Fatalf("Digitize(1.0) = %d, want 2", got)
	}
	if got := Digitize(0.0, edges); got != 1 {
		t.Fatalf("Digitize(0.0) = %d, want 1", got)
	}
}

// The final edge belongs to the last interior bin, not to overflow.
func TestDigitize_LastEdgeInclusive(t *testing.T) {
	edges := []float64{0, 1, 2, 3}
	if got := Digitize(3.0, edges); got != 3 {
		t.Fatalf("Digitize(3.0) = %d, want 3", got)
	}
}

func TestDigitize_OutOfRange(t *testing.T) {
	edges := []float64{0, 1, 2, 3}
	for _, v := range []float64{-5.0, -0.0001, 3.0001, 100, math.NaN()} {
		if got := Digitize(v, edges); got != OverflowIndex {
			t.Errorf("Digitize(%v) = %d, want overflow index %d", v, got, OverflowIndex)
		}
	}
}

// Minimal valid edge set: two thresholds, one bin.
func TestDigitize_SingleBin(t *testing.T) {
	edges := []float64{0, 1}
	if got := Digitize(0.0, edges); got != 1 {
		t.Fatalf("Digitize(0.0) = %d, want 1", got)
	}
	if got := Digitize(1.0, edges); got != 1 {
		t.Fatalf("Digitize(1.0) = %d, want 1", got)
	}
	if got := Digitize(0.5, edges); got != 1 {
		t.Fatalf("Digitize(0.5) = %d, want 1", got)
	}
}

func TestDigitize_NonUniformEdges(t *testing.T) {
	edges := []float64{0, 0.1, 10, 1000}
	cases := []struct {
		v    float64
		want int
	}{
		{0.05, 1},
		{0.1, 2},
		{9.999, 2},
		{10, 3},
		{1000, 3},
		{1000.5, OverflowIndex},
	}
	for _, c := range cases {
		if got := Digitize(c.v, edges); got != c.want {
			t.Errorf("Digitize(%v) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestDigitizeColumn(t *testing.T) {
	got := DigitizeColumn([]float64{0.5, 1.5, 2.5, -1}, []float64{0, 1, 2, 3})
	want := []int{1, 2, 3, 0}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestValidateEdges(t *testing.T) {
	if err := ValidateEdges(0, []float64{0, 1, 2}); err != nil {
		t.Fatalf("valid edges rejected: %v", err)
	}

	var bad *ErrBadEdges
	err := ValidateEdges(1, []float64{5})
	if !errors.As(err, &bad) {
		t.Fatalf("expected ErrBadEdges for short sequence, got %v", err)
	}
	if bad.Dim != 1 || bad.Index != -1 {
		t.Fatalf("unexpected error detail: %+v", bad)
	}

	err = ValidateEdges(0, []float64{0, 2, 2, 3})
	if !errors.As(err, &bad) {
		t.Fatalf("expected ErrBadEdges for non-increasing sequence, got %v", err)
	}
	if bad.Index != 2 {
		t.Fatalf("violation index = %d, want 2", bad.Index)
	}

	err = ValidateEdges(0, []float64{0, math.NaN(), 1})
	if !errors.As(err, &bad) {
		t.Fatalf("expected ErrBadEdges for NaN edge, got %v", err)
	}
}
