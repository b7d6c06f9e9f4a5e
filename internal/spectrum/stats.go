package spectrum

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/apt.report/internal/voxel"
)

// GridStats summarises the occupancy of a voxel grid.
type GridStats struct {
	Cells     int     `json:"cells"`
	Occupied  int     `json:"occupied"`
	Points    int     `json:"points"`
	Overflow  int     `json:"overflow"`
	MaxCount  int     `json:"max_count"`
	MeanCount float64 `json:"mean_count"` // over occupied cells
	StdCount  float64 `json:"std_count"`  // over occupied cells
	P50Count  float64 `json:"p50_count"`  // over occupied cells
	P95Count  float64 `json:"p95_count"`  // over occupied cells
}

// Summarise computes occupancy statistics over a grid's cells.
// Percentiles and moments are taken over occupied cells only: with
// dynamic extents the empty-cell population says more about the
// bounding box than about the data.
func Summarise(g *voxel.Grid) GridStats {
	s := GridStats{Cells: len(g.Cells), Overflow: g.Overflow}

	var counts []float64
	for i := range g.Cells {
		n := len(g.Cells[i].PointIDs)
		if n == 0 {
			continue
		}
		s.Occupied++
		s.Points += n
		if n > s.MaxCount {
			s.MaxCount = n
		}
		counts = append(counts, float64(n))
	}
	if len(counts) == 0 {
		return s
	}

	s.MeanCount, s.StdCount = stat.MeanStdDev(counts, nil)
	if len(counts) == 1 {
		s.StdCount = 0
	}

	sort.Float64s(counts)
	s.P50Count = stat.Quantile(0.50, stat.Empirical, counts, nil)
	s.P95Count = stat.Quantile(0.95, stat.Empirical, counts, nil)
	return s
}
