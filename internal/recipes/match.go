package recipes

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// matchFile reports whether a root-relative slash path matches the
// filePattern option. An empty pattern matches every file.
func matchFile(pattern, path string) (bool, error) {
	if pattern == "" {
		return true, nil
	}
	matched, err := doublestar.Match(pattern, path)
	if err != nil {
		return false, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return matched, nil
}

// validateFilePattern rejects malformed filePattern globs up front.
func validateFilePattern(pattern string) error {
	if pattern == "" {
		return nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid glob pattern %q", pattern)
	}
	return nil
}
