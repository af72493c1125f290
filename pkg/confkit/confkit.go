// Package confkit holds small configuration helpers shared by the config
// loaders: dotenv loading, project-root discovery and path resolution.
package confkit

import (
	"os"
	"path/filepath"
)

// ResolvePath resolves a file path relative to a base directory.
// It expands environment variables and handles both absolute and relative paths.
// If the file path is absolute, it returns the expanded path directly.
// Otherwise, it joins the base directory with the file path.
func ResolvePath(base, file string) string {
	file = os.ExpandEnv(file)
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(base, file)
}
