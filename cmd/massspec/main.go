// Command massspec histograms the mass-to-charge column of a POS or
// CSV point cloud. With -ranges it instead assigns each ion to a
// stored mass range set and prints per-ion totals.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/banshee-data/apt.report/internal/config"
	"github.com/banshee-data/apt.report/internal/db"
	"github.com/banshee-data/apt.report/internal/fsutil"
	"github.com/banshee-data/apt.report/internal/pointcloud"
	"github.com/banshee-data/apt.report/internal/spectrum"
)

func main() {
	var inPath string
	var dbPath string
	var configPath string
	var binWidth float64
	var rangeSet string
	var extract string
	var topN int

	flag.StringVar(&inPath, "in", "", "input point cloud (.pos or .csv)")
	flag.StringVar(&dbPath, "db", "", "sqlite db holding range sets (required with -ranges)")
	flag.StringVar(&configPath, "config", "", "tuning config JSON (optional)")
	flag.Float64Var(&binWidth, "width", 0, "bin width in Da (overrides config)")
	flag.StringVar(&rangeSet, "ranges", "", "assign against this stored range set")
	flag.StringVar(&extract, "extract", "", "with -ranges: write ranged ions to this POS file in the export dir")
	flag.IntVar(&topN, "top", 20, "number of peak bins to print")
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
	if binWidth == 0 {
		binWidth = cfg.GetMassBinWidth()
	}

	cloud, err := readCloud(inPath)
	if err != nil {
		log.Fatalf("read %s: %v", inPath, err)
	}
	if cloud.Len() == 0 {
		log.Fatalf("%s contains no points", inPath)
	}
	log.Printf("read %d ions from %s", cloud.Len(), inPath)

	if rangeSet != "" {
		if dbPath == "" {
			log.Fatalf("-ranges requires -db")
		}
		assignRanges(cloud, dbPath, rangeSet, extract)
		return
	}
	if extract != "" {
		log.Fatalf("-extract requires -ranges")
	}

	lo, hi, _ := cloud.MassRange()
	edges := spectrum.EdgesForWidth(lo, hi, binWidth)
	if edges == nil {
		edges = []float64{lo, lo + binWidth}
	}
	counts, err := spectrum.Hist(cloud.MassToCharge, edges)
	if err != nil {
		log.Fatalf("histogram: %v", err)
	}

	fmt.Printf("mass range %.3f - %.3f Da, %d bins of %.3f Da, %d out of range\n",
		lo, hi, len(edges)-1, binWidth, counts[0])
	printPeaks(edges, counts, topN)
}

// printPeaks lists the topN most populated bins in descending count order.
func printPeaks(edges []float64, counts []int, topN int) {
	type peak struct {
		bin   int
		count int
	}
	var peaks []peak
	for bin := 1; bin < len(counts); bin++ {
		if counts[bin] > 0 {
			peaks = append(peaks, peak{bin, counts[bin]})
		}
	}
	sort.Slice(peaks, func(i, j int) bool {
		if peaks[i].count != peaks[j].count {
			return peaks[i].count > peaks[j].count
		}
		return peaks[i].bin < peaks[j].bin
	})
	if topN > len(peaks) {
		topN = len(peaks)
	}
	for _, p := range peaks[:topN] {
		fmt.Printf("  %8.3f - %8.3f Da  %d\n", edges[p.bin-1], edges[p.bin], p.count)
	}
}

func assignRanges(cloud *pointcloud.Cloud, dbPath, name, extract string) {
	dbConn, err := db.NewDB(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer dbConn.Close()

	rs, err := dbConn.LoadRangeSet(name)
	if err != nil {
		log.Fatalf("load range set %q: %v", name, err)
	}
	a, err := spectrum.Assign(cloud.MassToCharge, rs)
	if err != nil {
		log.Fatalf("assign: %v", err)
	}

	ions := make([]string, 0, len(a.Counts))
	for ion := range a.Counts {
		ions = append(ions, ion)
	}
	sort.Strings(ions)

	fmt.Printf("range set %q: %d ions, %d unranged\n", name, cloud.Len()-a.Unranged, a.Unranged)
	for _, ion := range ions {
		fmt.Printf("  %-10s %d\n", ion, a.Counts[ion])
	}

	if extract != "" {
		ranged := pointcloud.Filter(cloud, func(i int) bool { return a.RangeIndex[i] >= 0 })
		outPath, err := pointcloud.ExportPOS(fsutil.OSFileSystem{}, extract, ranged)
		if err != nil {
			log.Fatalf("export: %v", err)
		}
		fmt.Printf("wrote %d ranged ions to %s\n", ranged.Len(), outPath)
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
