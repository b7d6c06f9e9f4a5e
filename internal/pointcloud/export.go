package pointcloud

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/banshee-data/apt.report/internal/fsutil"
	"github.com/banshee-data/apt.report/internal/monitoring"
	"github.com/banshee-data/apt.report/internal/security"
)

// defaultExportDir is the base directory for all point cloud exports.
// It is intentionally restricted to a single directory to avoid writing
// outside controlled locations, even if callers provide arbitrary paths.
var defaultExportDir = func() string {
	tmp := os.TempDir()
	abs, err := filepath.Abs(tmp)
	if err != nil {
		// Fall back to tmp as-is but log for visibility.
		monitoring.Logf("export: could not resolve absolute temp dir from %q: %v", tmp, err)
		return tmp
	}
	return filepath.Clean(abs)
}()

// SafeExportPath constructs a safe absolute path for an export file based
// on a user-supplied path string. Exports are restricted to
// defaultExportDir and the final path is validated with the shared
// security.ValidateExportPath helper.
func SafeExportPath(userPath string) (string, error) {
	if userPath == "" {
		return "", fmt.Errorf("empty export path")
	}
	// Use only the last path component to avoid any directory traversal
	// and to ensure we control the export root directory.
	base := filepath.Base(userPath)
	if base == "." || base == ".." || base == "" {
		return "", fmt.Errorf("invalid export filename")
	}

	joined := filepath.Join(defaultExportDir, security.SanitizeFilename(base))
	absPath, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("cannot resolve export path: %w", err)
	}
	cleanPath := filepath.Clean(absPath)

	// Ensure the cleaned absolute path is still within the export dir.
	baseDirAbs, err := filepath.Abs(defaultExportDir)
	if err != nil {
		return "", fmt.Errorf("cannot resolve export base directory: %w", err)
	}
	baseDirAbs = filepath.Clean(baseDirAbs)
	if !strings.HasPrefix(cleanPath, baseDirAbs+string(os.PathSeparator)) && cleanPath != baseDirAbs {
		return "", fmt.Errorf("export path escapes base directory")
	}

	if err := security.ValidateExportPath(cleanPath); err != nil {
		monitoring.Logf("Security: rejected export path %s (from %s, cleaned: %s): %v", joined, userPath, cleanPath, err)
		return "", fmt.Errorf("invalid export path: %w", err)
	}
	return cleanPath, nil
}

// ExportPOS writes the cloud to a POS file named by userPath, placed
// under the controlled export directory. Returns the path written.
func ExportPOS(filesys fsutil.FileSystem, userPath string, cloud *Cloud) (string, error) {
	outPath, err := SafeExportPath(userPath)
	if err != nil {
		return "", err
	}
	f, err := filesys.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", outPath, err)
	}
	if err := WritePOS(f, cloud); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", outPath, err)
	}
	monitoring.Logf("export: wrote %d points to %s", cloud.Len(), outPath)
	return outPath, nil
}

// Filter returns a new cloud containing only the points for which keep
// returns true. Point order is preserved.
func Filter(cloud *Cloud, keep func(i int) bool) *Cloud {
	out := &Cloud{}
	for i := range cloud.Positions {
		if keep(i) {
			out.Append(cloud.Point(i))
		}
	}
	return out
}
