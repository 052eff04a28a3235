package util

import (
	"path/filepath"
	"strings"
)

// SafeFilePath cleans path and reports whether it is safe to open relative to
// a base directory: non-empty, relative, and free of upward traversal after
// cleaning. Returns the cleaned path.
func SafeFilePath(path string) (string, bool) {
	cleaned, ok := cleanNoTraversal(path)
	if !ok || filepath.IsAbs(cleaned) {
		return "", false
	}
	return cleaned, true
}

// SafeFilePathAllowAbsolute is SafeFilePath but permits absolute paths.
// Traversal that survives cleaning is still rejected.
func SafeFilePathAllowAbsolute(path string) (string, bool) {
	return cleanNoTraversal(path)
}

func cleanNoTraversal(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	cleaned := filepath.Clean(path)
	if strings.Contains(cleaned, "..") {
		return "", false
	}
	return cleaned, true
}
