package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/banshee-data/apt.report/internal/httputil"
	"github.com/banshee-data/apt.report/internal/spectrum"
)

// SpectrumRequest is the POST /api/spectrum body. Exactly one of
// Edges, BinWidth, Bins, or RangeSet selects the binning mode:
//   - Edges: explicit edge sequence;
//   - BinWidth: uniform bins of that width over the data range;
//   - Bins: that many uniform bins over the data range;
//   - RangeSet: assignment against a stored range set.
type SpectrumRequest struct {
	Masses   []float64 `json:"masses"`
	Edges    []float64 `json:"edges,omitempty"`
	BinWidth float64   `json:"bin_width,omitempty"`
	Bins     int       `json:"bins,omitempty"`
	RangeSet string    `json:"range_set,omitempty"`
}

// SpectrumResponse is the histogram answer; Counts[0] is the overflow
// bucket. For range-set requests Assignment is set instead.
type SpectrumResponse struct {
	Edges      []float64      `json:"edges,omitempty"`
	Counts     []int          `json:"counts,omitempty"`
	IonCounts  map[string]int `json:"ion_counts,omitempty"`
	Unranged   int            `json:"unranged,omitempty"`
	TotalCount int            `json:"total_count"`
}

func (s *Server) handleSpectrum(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	var req SpectrumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid JSON body: %v", err))
		return
	}
	if max := s.cfg.GetMaxPoints(); len(req.Masses) > max {
		httputil.WriteJSONError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Too many masses: %d (max %d)", len(req.Masses), max))
		return
	}

	resp := SpectrumResponse{TotalCount: len(req.Masses)}

	switch {
	case req.RangeSet != "":
		if s.db == nil {
			httputil.WriteJSONError(w, http.StatusServiceUnavailable, "Persistence not configured")
			return
		}
		rs, err := s.db.LoadRangeSet(req.RangeSet)
		if err != nil {
			httputil.WriteJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		a, err := spectrum.Assign(req.Masses, rs)
		if err != nil {
			httputil.WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		resp.IonCounts = a.Counts
		resp.Unranged = a.Unranged

	case len(req.Edges) > 0:
		counts, err := spectrum.Hist(req.Masses, req.Edges)
		if err != nil {
			httputil.WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		resp.Edges = req.Edges
		resp.Counts = counts

	case req.BinWidth > 0:
		lo, hi, ok := massBounds(req.Masses)
		if !ok {
			httputil.WriteJSONError(w, http.StatusBadRequest, "bin_width mode needs at least one mass")
			return
		}
		edges := spectrum.EdgesForWidth(lo, hi, req.BinWidth)
		if edges == nil {
			// all masses identical: one bin around the single value
			edges = []float64{lo, lo + req.BinWidth}
		}
		counts, err := spectrum.Hist(req.Masses, edges)
		if err != nil {
			httputil.WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		resp.Edges = edges
		resp.Counts = counts

	case req.Bins > 0:
		lo, hi, ok := massBounds(req.Masses)
		if !ok || hi <= lo {
			httputil.BadRequest(w, "bins mode needs masses spanning a positive range")
			return
		}
		edges := spectrum.UniformEdges(lo, hi, req.Bins)
		counts, err := spectrum.Hist(req.Masses, edges)
		if err != nil {
			httputil.BadRequest(w, err.Error())
			return
		}
		resp.Edges = edges
		resp.Counts = counts

	default:
		httputil.BadRequest(w, "One of edges, bin_width, bins, or range_set is required")
		return
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		httputil.WriteJSONError(w, http.StatusInternalServerError, "Failed to write response")
	}
}

func massBounds(masses []float64) (lo, hi float64, ok bool) {
	if len(masses) == 0 {
		return 0, 0, false
	}
	lo, hi = masses[0], masses[0]
	for _, m := range masses[1:] {
		if m < lo {
			lo = m
		}
		if m > hi {
			hi = m
		}
	}
	return lo, hi, true
}
