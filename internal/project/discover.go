package project

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Discover walks the tree under root collecting module directories, where a
// module is any directory containing one of the build-marker files (for
// example go.mod or pom.xml). Parent links are wired by directory nesting:
// the nearest enclosing module directory becomes the parent.
//
// This stands in for an external project model when refit is run directly
// against a checkout.
func Discover(fs afero.Fs, root string, markers []string, localCache string) (*Session, error) {
	if len(markers) == 0 {
		return nil, fmt.Errorf("discover %s: no module markers configured", root)
	}

	var moduleDirs []string
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			slog.Warn("skipping unreadable path during discovery", "path", path, "error", err)
			return nil
		}
		if info.IsDir() {
			if info.Name() == gitDir {
				return filepath.SkipDir
			}
			return nil
		}
		for _, m := range markers {
			if info.Name() == m {
				moduleDirs = append(moduleDirs, filepath.Dir(path))
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", root, err)
	}
	if len(moduleDirs) == 0 {
		return nil, fmt.Errorf("discover %s: no module marker (%s) found", root, strings.Join(markers, ", "))
	}

	// Shortest paths first so parents are created before their children.
	sort.Strings(moduleDirs)

	byDir := make(map[string]*Node, len(moduleDirs))
	session := &Session{ExecutionRoot: root, LocalCache: localCache}
	for _, dir := range moduleDirs {
		if byDir[dir] != nil {
			continue
		}
		node := &Node{ID: filepath.Base(dir), BaseDir: dir, Parent: nearestParent(byDir, dir)}
		byDir[dir] = node
		session.Nodes = append(session.Nodes, node)
	}
	return session, nil
}

// nearestParent finds the closest already-known module directory strictly
// above dir.
func nearestParent(byDir map[string]*Node, dir string) *Node {
	for d := filepath.Dir(dir); ; d = filepath.Dir(d) {
		if n, ok := byDir[d]; ok {
			return n
		}
		if filepath.Dir(d) == d {
			return nil
		}
	}
}
