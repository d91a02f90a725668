package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandTilde resolves a leading ~ against the current user's home
// directory. Used for --config values and the patchFile template. Paths
// without a leading ~, and paths when no home directory can be determined,
// come back unchanged.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/"))
}
