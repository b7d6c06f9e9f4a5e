// Package spectrum builds 1-D mass spectra over the mass-to-charge
// column of an APT dataset and manages the labeled m/z ranges that
// drive ranged analysis. All binning goes through the voxel core so
// the bucketing convention (left-closed bins, inclusive final edge,
// overflow index 0) is identical everywhere.
package spectrum

import (
	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/apt.report/internal/voxel"
)

// Hist counts masses per bin for the given edge set. The returned
// slice has len(edges) entries: index 0 is the overflow bucket, indices
// 1..len(edges)-1 the interior bins.
func Hist(masses []float64, edges []float64) ([]int, error) {
	if err := voxel.ValidateEdges(0, edges); err != nil {
		return nil, err
	}
	counts := make([]int, len(edges))
	for _, m := range masses {
		counts[voxel.Digitize(m, edges)]++
	}
	return counts, nil
}

// UniformEdges returns n+1 evenly spaced edges spanning [min, max],
// defining n uniform bins.
func UniformEdges(min, max float64, n int) []float64 {
	return floats.Span(make([]float64, n+1), min, max)
}

// EdgesForWidth returns edges covering [min, max] in bins of the given
// width. The last bin is widened to absorb the remainder so max always
// falls inside the edge span.
func EdgesForWidth(min, max, width float64) []float64 {
	if width <= 0 || max <= min {
		return nil
	}
	n := int((max - min) / width)
	if n < 1 {
		n = 1
	}
	edges := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		edges = append(edges, min+float64(i)*width)
	}
	if edges[len(edges)-1] < max {
		edges[len(edges)-1] = max
	}
	return edges
}
