package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/banshee-data/apt.report/internal/httputil"
	"github.com/banshee-data/apt.report/internal/spectrum"
)

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	if s.db == nil {
		httputil.WriteJSONError(w, http.StatusServiceUnavailable, "Persistence not configured")
		return
	}

	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 {
			httputil.WriteJSONError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
			return
		}
		limit = parsed
	}

	runs, err := s.db.ListRuns(limit)
	if err != nil {
		httputil.WriteJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to retrieve runs: %v", err))
		return
	}
	if err := json.NewEncoder(w).Encode(runs); err != nil {
		httputil.WriteJSONError(w, http.StatusInternalServerError, "Failed to write runs")
	}
}

// showRun serves /api/runs/{id} and /api/runs/{id}/cells.
func (s *Server) showRun(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	if s.db == nil {
		httputil.WriteJSONError(w, http.StatusServiceUnavailable, "Persistence not configured")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/runs/")
	runID, sub, _ := strings.Cut(rest, "/")
	if runID == "" {
		httputil.WriteJSONError(w, http.StatusBadRequest, "Run ID required")
		return
	}

	switch sub {
	case "":
		run, err := s.db.GetRun(runID)
		if err != nil {
			httputil.WriteJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		json.NewEncoder(w).Encode(run)

	case "cells":
		if _, err := s.db.GetRun(runID); err != nil {
			httputil.WriteJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		cells, err := s.db.RunSummaries(runID)
		if err != nil {
			httputil.WriteJSONError(w, http.StatusInternalServerError,
				fmt.Sprintf("Failed to retrieve cells: %v", err))
			return
		}
		json.NewEncoder(w).Encode(cells)

	default:
		httputil.WriteJSONError(w, http.StatusNotFound, fmt.Sprintf("Unknown run resource %q", sub))
	}
}

// handleRanges serves GET (list names or fetch ?name=) and POST (save)
// for stored mass range sets.
func (s *Server) handleRanges(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if s.db == nil {
		httputil.WriteJSONError(w, http.StatusServiceUnavailable, "Persistence not configured")
		return
	}

	switch r.Method {
	case http.MethodGet:
		if name := r.URL.Query().Get("name"); name != "" {
			rs, err := s.db.LoadRangeSet(name)
			if err != nil {
				httputil.WriteJSONError(w, http.StatusNotFound, err.Error())
				return
			}
			json.NewEncoder(w).Encode(rs)
			return
		}
		names, err := s.db.ListRangeSets()
		if err != nil {
			httputil.WriteJSONError(w, http.StatusInternalServerError,
				fmt.Sprintf("Failed to list range sets: %v", err))
			return
		}
		json.NewEncoder(w).Encode(names)

	case http.MethodPost:
		var rs spectrum.RangeSet
		if err := json.NewDecoder(r.Body).Decode(&rs); err != nil {
			httputil.WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid JSON body: %v", err))
			return
		}
		if err := s.db.SaveRangeSet(&rs); err != nil {
			httputil.WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"saved": rs.Name})

	default:
		httputil.MethodNotAllowed(w)
	}
}
