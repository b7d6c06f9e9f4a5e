package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/banshee-data/apt.report/internal/httputil"
	"github.com/banshee-data/apt.report/internal/spectrum"
	"github.com/banshee-data/apt.report/internal/voxel"
)

// VoxelizeRequest is the POST /api/voxelize body. Features defaults to
// Positions when omitted (spatial voxelization of the positions
// themselves, the common case).
type VoxelizeRequest struct {
	Positions [][]float64 `json:"positions"`
	Features  [][]float64 `json:"features,omitempty"`
	Edges     [][]float64 `json:"edges"`
	Persist   bool        `json:"persist,omitempty"`
	Source    string      `json:"source,omitempty"`
}

// VoxelCell is one occupied cell in a VoxelizeResponse.
type VoxelCell struct {
	Coord     []int       `json:"coord"`
	PointIDs  []int       `json:"point_ids"`
	Positions [][]float64 `json:"positions"`
}

// VoxelizeResponse carries the grid in sparse form: extents describe
// the full dense bounding box, cells list only occupied coordinates.
type VoxelizeResponse struct {
	Extents  []int              `json:"extents"`
	Overflow int                `json:"overflow"`
	Cells    []VoxelCell        `json:"cells"`
	Stats    spectrum.GridStats `json:"stats"`
	RunID    string             `json:"run_id,omitempty"`
}

func (s *Server) handleVoxelize(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	var req VoxelizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid JSON body: %v", err))
		return
	}
	if max := s.cfg.GetMaxPoints(); len(req.Positions) > max {
		httputil.WriteJSONError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Too many points: %d (max %d)", len(req.Positions), max))
		return
	}

	features := req.Features
	if features == nil {
		features = req.Positions
	}

	start := s.clock.Now()
	g, err := voxel.VoxelizeParallel(r.Context(), req.Positions, features, req.Edges, s.cfg.GetWorkers())
	if err != nil {
		status := http.StatusBadRequest
		if !isContractError(err) {
			status = http.StatusInternalServerError
		}
		httputil.WriteJSONError(w, status, err.Error())
		return
	}
	elapsed := s.clock.Since(start)

	resp := VoxelizeResponse{
		Extents:  g.Extents,
		Overflow: g.Overflow,
		Cells:    occupiedCells(g),
		Stats:    spectrum.Summarise(g),
	}

	if req.Persist {
		if s.db == nil {
			httputil.WriteJSONError(w, http.StatusServiceUnavailable, "Persistence not configured")
			return
		}
		source := req.Source
		if source == "" {
			source = "api"
		}
		runID, err := s.db.RecordRun(source, g, elapsed)
		if err != nil {
			httputil.WriteJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to record run: %v", err))
			return
		}
		resp.RunID = runID
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		httputil.WriteJSONError(w, http.StatusInternalServerError, "Failed to write response")
	}
}

func occupiedCells(g *voxel.Grid) []VoxelCell {
	cells := []VoxelCell{}
	for i := range g.Cells {
		cell := &g.Cells[i]
		if len(cell.PointIDs) == 0 {
			continue
		}
		cells = append(cells, VoxelCell{
			Coord:     g.CoordOf(i),
			PointIDs:  cell.PointIDs,
			Positions: cell.Positions,
		})
	}
	return cells
}

func isContractError(err error) bool {
	var dim *voxel.ErrDimensionMismatch
	var length *voxel.ErrLengthMismatch
	var edges *voxel.ErrBadEdges
	return errors.As(err, &dim) || errors.As(err, &length) || errors.As(err, &edges)
}
