package voxel

import "fmt"

// ErrDimensionMismatch indicates that a point's feature vector does not
// have one component per supplied edge set.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	Point    int // ordinal of the offending point, -1 when not point-specific
}

func (e *ErrDimensionMismatch) Error() string {
	if e.Point >= 0 {
		return fmt.Sprintf("dimension mismatch at point %d: expected %d, got %d", e.Point, e.Expected, e.Actual)
	}
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrLengthMismatch indicates that the position and feature sequences
// differ in length; the contract is one feature vector per point.
type ErrLengthMismatch struct {
	Positions int
	Features  int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("length mismatch: %d positions, %d feature vectors", e.Positions, e.Features)
}

// ErrBadEdges indicates an edge sequence that is too short or not
// strictly increasing.
type ErrBadEdges struct {
	Dim   int // which edge set, 0-based
	Len   int
	Index int // position of the first non-increasing pair, -1 if the sequence is too short
}

func (e *ErrBadEdges) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("edge set %d: need at least 2 edges, got %d", e.Dim, e.Len)
	}
	return fmt.Sprintf("edge set %d: edges must be strictly increasing (violation at position %d)", e.Dim, e.Index)
}
