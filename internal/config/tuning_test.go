package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadTuningConfig(t *testing.T) {
	path := writeConfig(t, `{"voxel_size_nm": 2.5, "workers": 4}`)
	cfg, err := LoadTuningConfig(path)
	if err != nil {
		t.Fatalf("LoadTuningConfig failed: %v", err)
	}
	if got := cfg.GetVoxelSizeNM(); got != 2.5 {
		t.Errorf("voxel size = %v, want 2.5", got)
	}
	if got := cfg.GetWorkers(); got != 4 {
		t.Errorf("workers = %d, want 4", got)
	}
	// omitted fields fall back to defaults
	if got := cfg.GetMassBinWidth(); got != 0.01 {
		t.Errorf("mass bin width = %v, want default 0.01", got)
	}
	if got := cfg.GetLengthUnits(); got != "nm" {
		t.Errorf("length units = %q, want default nm", got)
	}
}

func TestLoadTuningConfig_RejectsNonJSON(t *testing.T) {
	if _, err := LoadTuningConfig("tuning.yaml"); err == nil {
		t.Fatal("expected error for non-JSON extension")
	}
}

func TestLoadTuningConfig_RejectsBadJSON(t *testing.T) {
	path := writeConfig(t, `{"voxel_size_nm": `)
	if _, err := LoadTuningConfig(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestValidate(t *testing.T) {
	bad := -1.0
	cfg := &TuningConfig{VoxelSizeNM: &bad}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative voxel size")
	}

	badWorkers := -2
	cfg = &TuningConfig{Workers: &badWorkers}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative workers")
	}

	if err := EmptyTuningConfig().Validate(); err != nil {
		t.Fatalf("empty config must validate: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := EmptyTuningConfig()
	if cfg.GetVoxelSizeNM() != 1.0 {
		t.Errorf("default voxel size = %v, want 1.0", cfg.GetVoxelSizeNM())
	}
	if cfg.GetWorkers() != 0 {
		t.Errorf("default workers = %d, want 0", cfg.GetWorkers())
	}
	if cfg.GetMaxPoints() != 5_000_000 {
		t.Errorf("default max points = %d, want 5000000", cfg.GetMaxPoints())
	}
}
