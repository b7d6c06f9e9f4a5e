// Command voxelize bins a POS or CSV point cloud into a voxel grid and
// prints occupancy statistics. With -db the run is recorded for later
// inspection through the API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/banshee-data/apt.report/internal/config"
	"github.com/banshee-data/apt.report/internal/db"
	"github.com/banshee-data/apt.report/internal/pointcloud"
	"github.com/banshee-data/apt.report/internal/spectrum"
	"github.com/banshee-data/apt.report/internal/units"
	"github.com/banshee-data/apt.report/internal/voxel"
)

func main() {
	var inPath string
	var dbPath string
	var configPath string
	var voxelSize float64
	var lengthUnits string
	var workers int

	flag.StringVar(&inPath, "in", "", "input point cloud (.pos or .csv)")
	flag.StringVar(&dbPath, "db", "", "record the run in this sqlite db (optional)")
	flag.StringVar(&configPath, "config", "", "tuning config JSON (optional)")
	flag.Float64Var(&voxelSize, "size", 0, "voxel edge length (overrides config)")
	flag.StringVar(&lengthUnits, "units", "", "units of -size: "+units.GetValidUnitsString())
	flag.IntVar(&workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")
	flag.Parse()

	if inPath == "" {
		log.Fatalf("input file must be provided with -in")
	}

	cfg := config.EmptyTuningConfig()
	if configPath != "" {
		loaded, err := config.LoadTuningConfig(configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if voxelSize == 0 {
		voxelSize = cfg.GetVoxelSizeNM()
	} else if lengthUnits != "" {
		converted, err := units.ToNM(voxelSize, lengthUnits)
		if err != nil {
			log.Fatalf("convert voxel size: %v", err)
		}
		voxelSize = converted
	}
	if workers == 0 {
		workers = cfg.GetWorkers()
	}

	cloud, err := readCloud(inPath)
	if err != nil {
		log.Fatalf("read %s: %v", inPath, err)
	}
	if cloud.Len() == 0 {
		log.Fatalf("%s contains no points", inPath)
	}
	if max := cfg.GetMaxPoints(); cloud.Len() > max {
		log.Fatalf("%s has %d points, max is %d", inPath, cloud.Len(), max)
	}
	log.Printf("read %d points from %s", cloud.Len(), inPath)

	lo, hi, ok := cloud.Bounds()
	if !ok {
		log.Fatalf("%s contains no points", inPath)
	}
	edges := make([][]float64, len(lo))
	for d := range lo {
		edges[d] = spectrum.EdgesForWidth(lo[d], hi[d], voxelSize)
		if edges[d] == nil {
			// flat dimension: one voxel covering the single value
			edges[d] = []float64{lo[d], lo[d] + voxelSize}
		}
	}

	start := time.Now()
	g, err := voxel.VoxelizeParallel(context.Background(), cloud.Positions, cloud.Positions, edges, workers)
	if err != nil {
		log.Fatalf("voxelize: %v", err)
	}
	elapsed := time.Since(start)

	stats := spectrum.Summarise(g)
	fmt.Printf("grid extents: %v (%.2f nm voxels)\n", g.Extents, voxelSize)
	fmt.Printf("points: %d  overflow: %d\n", stats.Points, g.Overflow)
	fmt.Printf("occupied cells: %d / %d (%.1f%%)\n",
		stats.Occupied, g.NumCells(), 100*float64(stats.Occupied)/float64(g.NumCells()))
	fmt.Printf("points per occupied cell: mean %.2f stddev %.2f p50 %.1f p95 %.1f max %d\n",
		stats.MeanCount, stats.StdCount, stats.P50Count, stats.P95Count, stats.MaxCount)
	fmt.Printf("elapsed: %v\n", elapsed)

	if dbPath != "" {
		dbConn, err := db.NewDB(dbPath)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer dbConn.Close()

		runID, err := dbConn.RecordRun(filepath.Base(inPath), g, elapsed)
		if err != nil {
			log.Fatalf("record run: %v", err)
		}
		fmt.Printf("recorded run %s\n", runID)
	}
}

func readCloud(path string) (*pointcloud.Cloud, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pos":
		return pointcloud.ReadPOSFile(path)
	case ".csv":
		return pointcloud.ReadCSVFile(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q (want .pos or .csv)", filepath.Ext(path))
	}
}
