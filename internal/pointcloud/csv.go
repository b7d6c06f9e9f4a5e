package pointcloud

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadCSVFile reads a CSV point cloud from disk.
func ReadCSVFile(path string) (*Cloud, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads points from a CSV stream with columns x,y,z,mz. A
// single header row is skipped when its first field is not numeric.
// Useful for hand-built fixtures and spreadsheet exports.
func ReadCSV(r io.Reader) (*Cloud, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true

	cloud := &Cloud{}
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return cloud, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV: %w", err)
		}
		line++
		vals := make([]float64, 4)
		bad := false
		for i, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				if line == 1 {
					// header row
					bad = true
					break
				}
				return nil, fmt.Errorf("CSV line %d: failed to parse %q: %w", line, field, err)
			}
			vals[i] = v
		}
		if bad {
			continue
		}
		cloud.Append(Point{X: vals[0], Y: vals[1], Z: vals[2], MassToCharge: vals[3]})
	}
}
