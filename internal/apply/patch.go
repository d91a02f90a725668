package apply

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"refit/internal/results"
)

// WritePatch concatenates the unified diffs of every classified result into
// a single patch file at path, in category order. An empty container writes
// nothing and reports false.
func WritePatch(fs afero.Fs, c *results.Container, path string) (bool, error) {
	if !c.IsNotEmpty() {
		return false, nil
	}

	var b strings.Builder
	for _, category := range [][]*results.Result{c.Generated, c.Deleted, c.Moved, c.RefactoredInPlace} {
		for _, r := range category {
			b.WriteString(r.Diff())
		}
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("create patch directory: %w", err)
	}
	if err := afero.WriteFile(fs, path, []byte(b.String()), 0644); err != nil {
		return false, fmt.Errorf("write patch %s: %w", path, err)
	}
	return true, nil
}
