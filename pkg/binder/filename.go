package binder

import (
	"path/filepath"
	"strings"
)

// sanitizeFilename removes any path components and dangerous characters from a filename
// to prevent path traversal attacks.
func sanitizeFilename(filename string) string {
	// Normalize Windows-style separators before taking the base name
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}
