package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/apt.report/internal/voxel"
)

// AnalysisRun is one recorded voxelization pass over a dataset.
type AnalysisRun struct {
	RunID         string    `json:"run_id"`
	Source        string    `json:"source"`
	Dims          int       `json:"dims"`
	PointCount    int       `json:"point_count"`
	OverflowCount int       `json:"overflow_count"`
	OccupiedCells int       `json:"occupied_cells"`
	TotalCells    int       `json:"total_cells"`
	Extents       []int     `json:"extents"`
	DurationUs    int64     `json:"duration_us"`
	CreatedAt     time.Time `json:"created_at"`
}

// VoxelSummary is the per-cell record of a run: coordinate and count.
// Empty cells are not stored; they are reconstructible from Extents.
type VoxelSummary struct {
	Coord []int `json:"coord"`
	Count int   `json:"count"`
}

// RecordRun stores the run header and the occupied-cell summaries of a
// grid in one transaction and returns the new run ID.
func (db *DB) RecordRun(source string, g *voxel.Grid, duration time.Duration) (string, error) {
	runID := uuid.NewString()

	extentsJSON, err := json.Marshal(g.Extents)
	if err != nil {
		return "", fmt.Errorf("failed to encode extents: %w", err)
	}

	occupied := 0
	for i := range g.Cells {
		if len(g.Cells[i].PointIDs) > 0 {
			occupied++
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO analysis_runs
			(run_id, source, dims, point_count, overflow_count, occupied_cells, total_cells, extents_json, duration_us)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, source, g.Dims(), g.NumPoints(), g.Overflow, occupied, len(g.Cells),
		string(extentsJSON), duration.Microseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO voxel_summaries (run_id, coord_json, point_count) VALUES (?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare summary insert: %w", err)
	}
	defer stmt.Close()

	for i := range g.Cells {
		n := len(g.Cells[i].PointIDs)
		if n == 0 {
			continue
		}
		coordJSON, err := json.Marshal(g.CoordOf(i))
		if err != nil {
			return "", fmt.Errorf("failed to encode coord: %w", err)
		}
		if _, err := stmt.Exec(runID, string(coordJSON), n); err != nil {
			return "", fmt.Errorf("failed to insert summary: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]AnalysisRun, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(`
		SELECT run_id, source, dims, point_count, overflow_count, occupied_cells, total_cells, extents_json, duration_us, created_at
		FROM analysis_runs ORDER BY created_at DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []AnalysisRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns a single run header by ID.
func (db *DB) GetRun(runID string) (*AnalysisRun, error) {
	row := db.QueryRow(`
		SELECT run_id, source, dims, point_count, overflow_count, occupied_cells, total_cells, extents_json, duration_us, created_at
		FROM analysis_runs WHERE run_id = ?`, runID)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// RunSummaries returns the occupied-cell summaries of a run.
func (db *DB) RunSummaries(runID string) ([]VoxelSummary, error) {
	rows, err := db.Query(`
		SELECT coord_json, point_count FROM voxel_summaries
		WHERE run_id = ? ORDER BY coord_json`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []VoxelSummary
	for rows.Next() {
		var coordJSON string
		var s VoxelSummary
		if err := rows.Scan(&coordJSON, &s.Count); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(coordJSON), &s.Coord); err != nil {
			return nil, fmt.Errorf("failed to decode coord %q: %w", coordJSON, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (AnalysisRun, error) {
	var run AnalysisRun
	var extentsJSON string
	err := row.Scan(&run.RunID, &run.Source, &run.Dims, &run.PointCount,
		&run.OverflowCount, &run.OccupiedCells, &run.TotalCells,
		&extentsJSON, &run.DurationUs, &run.CreatedAt)
	if err != nil {
		return run, err
	}
	if err := json.Unmarshal([]byte(extentsJSON), &run.Extents); err != nil {
		return run, fmt.Errorf("failed to decode extents %q: %w", extentsJSON, err)
	}
	return run, nil
}
