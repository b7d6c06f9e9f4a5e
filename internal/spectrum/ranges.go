package spectrum

import (
	"fmt"
	"sort"

	"github.com/banshee-data/apt.report/internal/voxel"
)

// Range is a labeled m/z interval [Lo, Hi) attributed to an ion
// species. Labels are opaque here; presentation belongs to the
// consuming layer.
type Range struct {
	Ion string  `json:"ion"`
	Lo  float64 `json:"lo"`
	Hi  float64 `json:"hi"`
}

// RangeSet is an ordered collection of non-overlapping ranges.
type RangeSet struct {
	Name   string  `json:"name"`
	Ranges []Range `json:"ranges"`
}

// Validate checks each range is well-formed and that no two ranges
// overlap.
func (rs *RangeSet) Validate() error {
	for i, r := range rs.Ranges {
		if !(r.Lo < r.Hi) {
			return fmt.Errorf("range %d (%s): lo %v must be below hi %v", i, r.Ion, r.Lo, r.Hi)
		}
	}
	sorted := make([]Range, len(rs.Ranges))
	copy(sorted, rs.Ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Lo < sorted[j].Lo })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Lo < sorted[i-1].Hi {
			return fmt.Errorf("ranges %s [%v,%v) and %s [%v,%v) overlap",
				sorted[i-1].Ion, sorted[i-1].Lo, sorted[i-1].Hi,
				sorted[i].Ion, sorted[i].Lo, sorted[i].Hi)
		}
	}
	return nil
}

// Assignment is the result of mapping masses onto a range set.
type Assignment struct {
	// RangeIndex holds, per point, the 0-based index into the sorted
	// range list, or -1 for unranged points.
	RangeIndex []int
	// Counts holds the per-range member totals; Unranged the rest.
	Counts   map[string]int
	Unranged int
}

// Assign maps each mass to its range using the core bucketing
// convention. Ranges are treated as bins of a synthetic edge set with
// gap bins between non-adjacent ranges, so a mass in a gap or outside
// all ranges is unranged, exactly as an out-of-range value overflows
// in the voxel grid.
func Assign(masses []float64, rs *RangeSet) (*Assignment, error) {
	if err := rs.Validate(); err != nil {
		return nil, err
	}

	if len(rs.Ranges) == 0 {
		return &Assignment{
			RangeIndex: fill(make([]int, len(masses)), -1),
			Counts:     map[string]int{},
			Unranged:   len(masses),
		}, nil
	}

	sorted := make([]Range, len(rs.Ranges))
	copy(sorted, rs.Ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Lo < sorted[j].Lo })

	// Build edges lo0, hi0, lo1, hi1, ... merging touching boundaries.
	// binRange[b] maps interior bin b (1-based) to a sorted-range
	// index, or -1 for gap bins.
	var edges []float64
	var binRange []int // indexed by interior bin - 1
	for si, r := range sorted {
		if n := len(edges); n > 0 && edges[n-1] != r.Lo {
			edges = append(edges, r.Lo)
			binRange = append(binRange, -1) // gap bin
		} else if n == 0 {
			edges = append(edges, r.Lo)
		}
		edges = append(edges, r.Hi)
		binRange = append(binRange, si)
	}

	out := &Assignment{
		RangeIndex: make([]int, len(masses)),
		Counts:     make(map[string]int, len(sorted)),
	}
	for i, m := range masses {
		bin := voxel.Digitize(m, edges)
		ri := -1
		if bin != voxel.OverflowIndex {
			ri = binRange[bin-1]
		}
		// the final edge is inclusive in the core convention, but a
		// range is half-open: a mass exactly at the top boundary of the
		// last range stays unranged
		if ri >= 0 && m >= sorted[ri].Hi {
			ri = -1
		}
		out.RangeIndex[i] = ri
		if ri < 0 {
			out.Unranged++
		} else {
			out.Counts[sorted[ri].Ion]++
		}
	}
	return out, nil
}

func fill(s []int, v int) []int {
	for i := range s {
		s[i] = v
	}
	return s
}
