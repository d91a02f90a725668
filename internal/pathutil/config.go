package pathutil

import (
	"path/filepath"
)

// configName is the project-local configuration file probed for in the
// build root.
const configName = "refit.yml"

// ResolveConfig returns the config file to load: an explicit path wins,
// otherwise the project-local refit.yml next to the build root. The returned
// path may not exist; configuration is optional.
func ResolveConfig(explicit, buildRoot string) string {
	if explicit != "" {
		return ExpandTilde(explicit)
	}
	return filepath.Join(buildRoot, configName)
}
