package project

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// gitDir is the version-control marker directory probed for when locating
// the repository root. It is a fixed convention, not configurable.
const gitDir = ".git"

// RepositoryRoot walks upward from buildRoot looking for the enclosing
// version-control working copy. Many builds co-locate the build root with
// the repository root, but that is not required. If no marker is found in
// any ancestor, buildRoot is returned unchanged; the repository root is
// best-effort metadata used only for root-relative diff paths.
func RepositoryRoot(fs afero.Fs, buildRoot string) string {
	dir := buildRoot
	for {
		if ok, _ := afero.Exists(fs, filepath.Join(dir, gitDir)); ok {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return buildRoot
		}
		dir = parent
	}
}
