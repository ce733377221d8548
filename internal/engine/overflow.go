package engine

import (
	"os"
	"path/filepath"
	"strings"
)

// HasOverflowChecks reports whether the project's Cargo.toml enables
// overflow-checks. A plain substring scan, never validated; read failures
// degrade to false. The parent directory is also tried for workspace
// layouts where the flag lives one level up.
func HasOverflowChecks(projectPath string) bool {
	if manifestEnablesOverflowChecks(filepath.Join(projectPath, "Cargo.toml")) {
		return true
	}
	parent := filepath.Dir(projectPath)
	if parent == projectPath {
		return false
	}
	return manifestEnablesOverflowChecks(filepath.Join(parent, "Cargo.toml"))
}

func manifestEnablesOverflowChecks(path string) bool {
	b, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	content := string(b)
	return strings.Contains(content, "overflow-checks = true") ||
		strings.Contains(content, "overflow-checks=true")
}
