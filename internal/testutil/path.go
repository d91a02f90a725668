package testutil

import (
	"path/filepath"
	"runtime"
)

// Path builds a platform-independent absolute path by joining parts with the
// OS separator. Tests use it instead of hardcoding paths like "/repo/mod1"
// so they also pass on Windows.
//
// Pass "/" as the first part for an absolute path:
// on Unix, Path("/", "repo", "mod1") is "/repo/mod1";
// on Windows it is "C:\\repo\\mod1" (a bare drive letter would be relative).
func Path(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}
	if parts[0] == "/" {
		if runtime.GOOS == "windows" {
			return "C:\\" + filepath.Join(parts[1:]...)
		}
		return filepath.Join(parts...)
	}
	return filepath.Join(parts...)
}
