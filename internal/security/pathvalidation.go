// Package security validates filesystem paths handed to export
// operations, so a user-supplied name cannot direct a write outside
// the allowed directories.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateExportPath checks that filePath resolves inside either the
// temp directory or the current working directory, the two locations
// exports are allowed to land in.
func ValidateExportPath(filePath string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	allowed := []string{os.TempDir(), cwd}

	resolved, err := resolvePath(filePath)
	if err != nil {
		return err
	}
	for _, dir := range allowed {
		dirResolved, err := resolvePath(dir)
		if err != nil {
			continue
		}
		if resolved == dirResolved ||
			strings.HasPrefix(resolved, dirResolved+string(os.PathSeparator)) {
			return nil
		}
	}
	return fmt.Errorf("path must be within one of the allowed directories: %v", allowed)
}

// resolvePath returns the canonical absolute form of path with
// symlinks evaluated. The path itself may not exist yet; its nearest
// existing ancestor is resolved instead, so a symlinked parent cannot
// smuggle a write elsewhere.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	// walk up to the nearest existing ancestor and resolve that
	var tail []string
	dir := abs
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		tail = append([]string{filepath.Base(dir)}, tail...)
		if resolved, err := filepath.EvalSymlinks(parent); err == nil {
			return filepath.Join(append([]string{resolved}, tail...)...), nil
		}
		dir = parent
	}
}

// SanitizeFilename makes a safe filename from an arbitrary string:
// anything outside ASCII letters, digits, dot, underscore or dash
// becomes a single underscore, and the result is length-capped.
func SanitizeFilename(s string) string {
	if s == "" {
		return "unknown"
	}
	const maxLen = 128
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if b.Len() >= maxLen {
			break
		}
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'),
			r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "unknown"
	}
	return out
}
