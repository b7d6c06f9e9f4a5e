package voxel

import (
	"math"
	"sort"
)

// OverflowIndex is the sentinel bin index assigned to any value outside
// all supplied edges for a dimension. It is a legitimate, addressable
// grid coordinate, distinct from the interior bins 1..len(edges)-1.
const OverflowIndex = 0

// Digitize maps a value onto the interior bins defined by edges.
//
// For edges e1 < e2 < ... < ek there are k-1 interior bins, 1-indexed.
// A value v lands in bin i when e_i <= v < e_i+1; the last bin is
// right-closed, so v == ek also lands in bin k-1. Anything below e1 or
// above ek returns OverflowIndex. NaN counts as out of range.
//
// Edges must already satisfy ValidateEdges; Digitize does not re-check.
func Digitize(v float64, edges []float64) int {
	k := len(edges)
	if math.IsNaN(v) || v < edges[0] || v > edges[k-1] {
		return OverflowIndex
	}
	if v == edges[k-1] {
		// last edge is inclusive
		return k - 1
	}
	j := sort.SearchFloat64s(edges, v)
	if edges[j] == v {
		// v sits exactly on edge j: it opens bin j+1, not closes bin j
		return j + 1
	}
	return j
}

// DigitizeColumn applies Digitize to every value against one edge set.
func DigitizeColumn(values []float64, edges []float64) []int {
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = Digitize(v, edges)
	}
	return out
}

// ValidateEdges checks that an edge set has at least two thresholds and
// is strictly increasing. dim is only used to label the error.
func ValidateEdges(dim int, edges []float64) error {
	if len(edges) < 2 {
		return &ErrBadEdges{Dim: dim, Len: len(edges), Index: -1}
	}
	for i := 1; i < len(edges); i++ {
		if !(edges[i] > edges[i-1]) {
			return &ErrBadEdges{Dim: dim, Len: len(edges), Index: i}
		}
	}
	return nil
}
