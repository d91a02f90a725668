package apply

import (
	"strings"
	"testing"

	"github.com/spf13/afero"

	"refit/internal/marker"
	"refit/internal/results"
	"refit/internal/snapshot"
	"refit/internal/testutil"
)

func container(t *testing.T, rs ...*results.Result) *results.Container {
	t.Helper()
	return results.NewContainer(testutil.Path("/", "repo"), rs)
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestChangesWritesGenerated(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := container(t, &results.Result{After: snapshot.New("pkg/new.txt", "content\n")})

	if err := Changes(fs, c); err != nil {
		t.Fatalf("Changes() error = %v", err)
	}
	got := readFile(t, fs, testutil.Path("/", "repo", "pkg", "new.txt"))
	if got != "content\n" {
		t.Errorf("content = %q", got)
	}
}

func TestChangesRemovesDeleted(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := testutil.Path("/", "repo", "old.txt")
	if err := afero.WriteFile(fs, path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	c := container(t, &results.Result{Before: snapshot.New("old.txt", "x")})

	if err := Changes(fs, c); err != nil {
		t.Fatalf("Changes() error = %v", err)
	}
	if ok, _ := afero.Exists(fs, path); ok {
		t.Error("deleted file still exists")
	}
}

func TestChangesMoves(t *testing.T) {
	fs := afero.NewMemMapFs()
	oldPath := testutil.Path("/", "repo", "a", "f.txt")
	if err := afero.WriteFile(fs, oldPath, []byte("moved content\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c := container(t, &results.Result{
		Before: snapshot.New("a/f.txt", "moved content\n"),
		After:  snapshot.New("b/f.txt", "moved content\n"),
	})

	if err := Changes(fs, c); err != nil {
		t.Fatalf("Changes() error = %v", err)
	}
	if ok, _ := afero.Exists(fs, oldPath); ok {
		t.Error("moved file still at old path")
	}
	got := readFile(t, fs, testutil.Path("/", "repo", "b", "f.txt"))
	if got != "moved content\n" {
		t.Errorf("moved content = %q", got)
	}
}

func TestChangesStripsMarkersOnWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	after := snapshot.New("f.txt", "clean\n")
	after.Root.Markers = []marker.Marker{{ID: "X", Kind: marker.KindSearchResult}}
	c := container(t, &results.Result{Before: snapshot.New("f.txt", "dirty\n"), After: after})

	if err := Changes(fs, c); err != nil {
		t.Fatalf("Changes() error = %v", err)
	}
	got := readFile(t, fs, testutil.Path("/", "repo", "f.txt"))
	if got != "clean\n" {
		t.Errorf("written content = %q, markers must not leak to disk", got)
	}
}

func TestWritePatch(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := container(t,
		&results.Result{After: snapshot.New("new.txt", "added\n")},
		&results.Result{Before: snapshot.New("c.txt", "old\n"), After: snapshot.New("c.txt", "new\n")},
	)

	wrote, err := WritePatch(fs, c, testutil.Path("/", "out", "refit.patch"))
	if err != nil {
		t.Fatalf("WritePatch() error = %v", err)
	}
	if !wrote {
		t.Fatal("WritePatch() reported nothing written")
	}

	patch := readFile(t, fs, testutil.Path("/", "out", "refit.patch"))
	if !strings.Contains(patch, "+added\n") {
		t.Errorf("patch missing generated content:\n%s", patch)
	}
	if !strings.Contains(patch, "-old\n") || !strings.Contains(patch, "+new\n") {
		t.Errorf("patch missing in-place diff:\n%s", patch)
	}
}

func TestWritePatchIncludesPureRename(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := container(t,
		&results.Result{
			Before: snapshot.New("docs/a.txt", "same\n"),
			After:  snapshot.New("docs/b.txt", "same\n"),
		},
	)

	wrote, err := WritePatch(fs, c, testutil.Path("/", "out", "refit.patch"))
	if err != nil {
		t.Fatalf("WritePatch() error = %v", err)
	}
	if !wrote {
		t.Fatal("a move with unchanged content must appear in the patch")
	}

	patch := readFile(t, fs, testutil.Path("/", "out", "refit.patch"))
	if !strings.Contains(patch, "rename from docs/a.txt\n") || !strings.Contains(patch, "rename to docs/b.txt\n") {
		t.Errorf("patch missing rename stanza:\n%s", patch)
	}
}

func TestWritePatchEmptyContainer(t *testing.T) {
	fs := afero.NewMemMapFs()
	wrote, err := WritePatch(fs, container(t), testutil.Path("/", "out", "refit.patch"))
	if err != nil {
		t.Fatalf("WritePatch() error = %v", err)
	}
	if wrote {
		t.Error("WritePatch() wrote a patch for an empty container")
	}
	if ok, _ := afero.Exists(fs, testutil.Path("/", "out", "refit.patch")); ok {
		t.Error("patch file exists for empty container")
	}
}
