// Package project models the multi-module build session and resolves the
// canonical directories used for path-relative reporting.
package project

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
)

// Node is one module in the build. Parent links form a tree; traversal in
// this package is parent-ward only.
type Node struct {
	ID      string
	BaseDir string // absolute path; empty when the module has no resolvable base dir
	Parent  *Node
}

// Session is the full set of modules in one invocation, plus the directory
// the tool was invoked from and the shared local artifact cache.
type Session struct {
	Nodes         []*Node
	ExecutionRoot string
	LocalCache    string
}

// ErrNoBuildRoot is returned when no module has a resolvable base directory
// and no execution root was recorded. Callers must treat it as fatal.
var ErrNoBuildRoot = errors.New("no build root could be resolved")

// BuildRoot computes the single canonical root directory for the session.
//
// Every module contributes its own base directory and each ancestor's,
// walking the parent chain until it hits a module with no base directory,
// a directory inside the local artifact cache, or one already collected.
// The smallest path in lexicographic string order wins, which makes the
// result independent of node order. Raw path strings are compared, not
// normalized forms; the ordering is a documented policy, not semantic.
func (s *Session) BuildRoot() (string, error) {
	seen := make(map[string]bool)
	var dirs []string

	for _, node := range s.Nodes {
		// Parent links form a tree by construction, but seen doubles as a
		// visited set should a cycle ever sneak in.
		for n := node; n != nil; n = n.Parent {
			dir := n.BaseDir
			if dir == "" || seen[dir] || underDir(dir, s.LocalCache) {
				break
			}
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	if len(dirs) > 0 {
		sort.Strings(dirs)
		return dirs[0], nil
	}
	if s.ExecutionRoot != "" {
		return s.ExecutionRoot, nil
	}
	return "", ErrNoBuildRoot
}

// underDir reports whether dir equals parent or is nested inside it.
func underDir(dir, parent string) bool {
	if parent == "" {
		return false
	}
	rel, err := filepath.Rel(parent, dir)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
