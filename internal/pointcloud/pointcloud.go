// Package pointcloud holds the APT point-data model and the readers
// and writers for the interchange formats produced by atom-probe
// reconstruction software.
package pointcloud

import "math"

// Point is a single reconstructed ion hit. Positions are in
// nanometres, MassToCharge in daltons. The point's identifier is its
// ordinal position in the cloud.
type Point struct {
	X, Y, Z      float64
	MassToCharge float64
}

// Cloud is column storage for a reconstructed dataset: one position
// vector and one mass-to-charge value per point, index-aligned.
type Cloud struct {
	Positions    [][]float64
	MassToCharge []float64
}

// Len returns the number of points.
func (c *Cloud) Len() int { return len(c.Positions) }

// Append adds a point to the cloud.
func (c *Cloud) Append(p Point) {
	c.Positions = append(c.Positions, []float64{p.X, p.Y, p.Z})
	c.MassToCharge = append(c.MassToCharge, p.MassToCharge)
}

// Point returns the i-th point.
func (c *Cloud) Point(i int) Point {
	pos := c.Positions[i]
	return Point{X: pos[0], Y: pos[1], Z: pos[2], MassToCharge: c.MassToCharge[i]}
}

// Bounds returns per-axis [min, max] over the positions, one pair per
// spatial axis. Empty clouds report ok=false.
func (c *Cloud) Bounds() (min, max []float64, ok bool) {
	if c.Len() == 0 {
		return nil, nil, false
	}
	dims := len(c.Positions[0])
	min = make([]float64, dims)
	max = make([]float64, dims)
	for d := 0; d < dims; d++ {
		min[d] = math.Inf(1)
		max[d] = math.Inf(-1)
	}
	for _, pos := range c.Positions {
		for d, v := range pos {
			if v < min[d] {
				min[d] = v
			}
			if v > max[d] {
				max[d] = v
			}
		}
	}
	return min, max, true
}

// MassRange returns the [min, max] of the mass-to-charge column.
func (c *Cloud) MassRange() (min, max float64, ok bool) {
	if len(c.MassToCharge) == 0 {
		return 0, 0, false
	}
	min, max = math.Inf(1), math.Inf(-1)
	for _, m := range c.MassToCharge {
		if m < min {
			min = m
		}
		if m > max {
			max = m
		}
	}
	return min, max, true
}
