// Package api exposes voxelization and mass-spectrum analysis over
// HTTP. The handlers are plain JSON over net/http; all computation is
// delegated to the voxel and spectrum packages.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/apt.report/internal/config"
	"github.com/banshee-data/apt.report/internal/db"
	"github.com/banshee-data/apt.report/internal/httputil"
	"github.com/banshee-data/apt.report/internal/timeutil"
	"github.com/banshee-data/apt.report/internal/units"
	"github.com/banshee-data/apt.report/internal/version"
)

// ANSI escape codes for request logging
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	db    *db.DB
	cfg   *config.TuningConfig
	units string
	clock timeutil.Clock
	http  httputil.HTTPClient
}

// NewServer builds a Server. database may be nil, in which case the
// persistence endpoints report 503 and persist=true requests fail.
func NewServer(database *db.DB, cfg *config.TuningConfig) *Server {
	if cfg == nil {
		cfg = config.EmptyTuningConfig()
	}
	return &Server{
		db:    database,
		cfg:   cfg,
		units: cfg.GetLengthUnits(),
		clock: timeutil.RealClock{},
		http:  httputil.NewStandardClient(nil),
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/voxelize", s.handleVoxelize)
	mux.HandleFunc("/api/spectrum", s.handleSpectrum)
	mux.HandleFunc("/api/runs", s.listRuns)
	mux.HandleFunc("/api/runs/", s.showRun)
	mux.HandleFunc("/api/ranges", s.handleRanges)
	mux.HandleFunc("/api/ranges/import", s.importRanges)
	mux.HandleFunc("/api/config", s.showConfig)
	mux.HandleFunc("/api/healthz", s.healthz)
	mux.HandleFunc("/api/version", s.showVersion)
	return mux
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) showVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"version":    version.Version,
		"git_sha":    version.GitSHA,
		"build_time": version.BuildTime,
	})
}

func (s *Server) showConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	cfg := map[string]interface{}{
		"voxel_size_nm":  s.cfg.GetVoxelSizeNM(),
		"mass_bin_width": s.cfg.GetMassBinWidth(),
		"workers":        s.cfg.GetWorkers(),
		"max_points":     s.cfg.GetMaxPoints(),
		"length_units":   s.units,
		"valid_units":    units.ValidUnits,
	}

	if err := json.NewEncoder(w).Encode(cfg); err != nil {
		httputil.WriteJSONError(w, http.StatusInternalServerError, "Failed to write config")
		return
	}
}
