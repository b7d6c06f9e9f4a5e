package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// TuningConfig represents the root configuration for analysis
// parameters. The schema matches the /api/config endpoint so the same
// JSON can be used for both startup configuration and runtime
// inspection. All fields are optional; the Get* methods supply
// defaults for anything omitted.
type TuningConfig struct {
	// Voxelization params
	VoxelSizeNM  *float64 `json:"voxel_size_nm,omitempty"`
	MassBinWidth *float64 `json:"mass_bin_width,omitempty"` // daltons
	Workers      *int     `json:"workers,omitempty"`        // 0 = GOMAXPROCS
	MaxPoints    *int     `json:"max_points,omitempty"`     // per API request

	// Presentation params
	LengthUnits *string `json:"length_units,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from a file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.VoxelSizeNM != nil && *c.VoxelSizeNM <= 0 {
		return fmt.Errorf("voxel_size_nm must be positive, got %f", *c.VoxelSizeNM)
	}
	if c.MassBinWidth != nil && *c.MassBinWidth <= 0 {
		return fmt.Errorf("mass_bin_width must be positive, got %f", *c.MassBinWidth)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	if c.MaxPoints != nil && *c.MaxPoints < 0 {
		return fmt.Errorf("max_points must be non-negative, got %d", *c.MaxPoints)
	}
	return nil
}

// GetVoxelSizeNM returns the voxel_size_nm value or the default.
func (c *TuningConfig) GetVoxelSizeNM() float64 {
	if c.VoxelSizeNM == nil {
		return 1.0 // default
	}
	return *c.VoxelSizeNM
}

// GetMassBinWidth returns the mass_bin_width value or the default.
func (c *TuningConfig) GetMassBinWidth() float64 {
	if c.MassBinWidth == nil {
		return 0.01 // default: 0.01 Da resolution
	}
	return *c.MassBinWidth
}

// GetWorkers returns the workers value or the default.
func (c *TuningConfig) GetWorkers() int {
	if c.Workers == nil {
		return 0 // default: GOMAXPROCS
	}
	return *c.Workers
}

// GetMaxPoints returns the max_points value or the default.
func (c *TuningConfig) GetMaxPoints() int {
	if c.MaxPoints == nil {
		return 5_000_000 // default
	}
	return *c.MaxPoints
}

// GetLengthUnits returns the length_units value or the default.
func (c *TuningConfig) GetLengthUnits() string {
	if c.LengthUnits == nil || *c.LengthUnits == "" {
		return "nm" // default
	}
	return *c.LengthUnits
}
