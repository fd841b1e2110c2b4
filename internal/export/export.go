// Package export writes already-held payloads to local files. No network
// round-trip happens here; callers hand over fully decoded bytes.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SaveFile writes data under dir with the given name, creating dir as
// needed. On name collision a numeric suffix is appended so existing
// exports are never overwritten. Returns the path actually written.
func SaveFile(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, SanitizeFilename(name))
	path = uniquePath(path)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

// SanitizeFilename strips path separators so a service-echoed filename can
// never escape the export directory
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "" || name == "." || name == ".." {
		return "unnamed"
	}
	return name
}

// uniquePath appends -1, -2, ... before the extension until the path is free
func uniquePath(path string) string {
	if _, err := os.Stat(path); err != nil {
		return path
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, i, ext)
		if _, err := os.Stat(candidate); err != nil {
			return candidate
		}
	}
}
