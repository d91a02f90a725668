package project

import (
	"testing"

	"github.com/spf13/afero"

	"refit/internal/testutil"
)

func TestRepositoryRootFoundAtBuildRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	buildRoot := testutil.Path("/", "repo", "mod1")
	mustMkdir(t, fs, testutil.Path("/", "repo", "mod1", ".git"))

	if got := RepositoryRoot(fs, buildRoot); got != buildRoot {
		t.Errorf("RepositoryRoot() = %q, want %q", got, buildRoot)
	}
}

func TestRepositoryRootFoundInAncestor(t *testing.T) {
	fs := afero.NewMemMapFs()
	mustMkdir(t, fs, testutil.Path("/", "repo", ".git"))
	mustMkdir(t, fs, testutil.Path("/", "repo", "nested", "mod1"))

	got := RepositoryRoot(fs, testutil.Path("/", "repo", "nested", "mod1"))
	if want := testutil.Path("/", "repo"); got != want {
		t.Errorf("RepositoryRoot() = %q, want %q", got, want)
	}
}

func TestRepositoryRootNotFoundReturnsBuildRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	buildRoot := testutil.Path("/", "repo", "mod1")
	mustMkdir(t, fs, buildRoot)

	if got := RepositoryRoot(fs, buildRoot); got != buildRoot {
		t.Errorf("RepositoryRoot() = %q, want %q", got, buildRoot)
	}
}

func mustMkdir(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	if err := fs.MkdirAll(path, 0755); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
}
