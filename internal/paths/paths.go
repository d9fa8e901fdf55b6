// Package paths normalizes file paths for use inside summaries.
// All paths stored in a RepoSummary are root-relative with forward slashes.
package paths

import (
	"path/filepath"
	"strings"
)

// Rel converts an absolute path to a root-relative canonical path with
// forward slashes. Returns an error if the path cannot be made relative.
func Rel(root, absolute string) (string, error) {
	rel, err := filepath.Rel(root, absolute)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// Normalize converts backslashes to forward slashes in an already-relative path.
func Normalize(path string) string {
	return filepath.ToSlash(path)
}

// Join joins a root with a canonical forward-slash path using the OS separator.
func Join(root, canonical string) string {
	parts := strings.Split(Normalize(canonical), "/")
	return filepath.Join(append([]string{root}, parts...)...)
}

// IsWithin reports whether a canonical relative path stays inside the root.
func IsWithin(canonical string) bool {
	return canonical != ".." && !strings.HasPrefix(canonical, "../")
}
