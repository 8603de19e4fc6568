// Package imagepath decides which files are eligible for import as layers.
package imagepath

import (
	"path/filepath"
	"strings"
)

// supported lists the lowercase extensions the host can place.
var supported = []string{".jpg", ".jpeg", ".png", ".psd", ".tiff", ".tif"}

// Extensions returns the supported extensions, lowercase with leading dot.
func Extensions() []string {
	out := make([]string, len(supported))
	copy(out, supported)
	return out
}

// DialogPatterns returns glob patterns for a file selection dialog.
func DialogPatterns() []string {
	out := make([]string, 0, len(supported))
	for _, ext := range supported {
		out = append(out, "*"+ext)
	}
	return out
}

// Supported reports whether path has a supported extension, ignoring case.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, s := range supported {
		if ext == s {
			return true
		}
	}
	return false
}

// Filter returns the paths with a supported extension, in input order.
// Unsupported paths are dropped without being reported.
func Filter(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if Supported(p) {
			out = append(out, p)
		}
	}
	return out
}

// LayerName is the name given to the layer created for path: its base
// filename, extension included. Both separators are honoured so Windows
// paths resolve the same way on every platform.
func LayerName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
