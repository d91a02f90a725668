// Package results classifies the before/after pairs produced by a recipe run
// into the categories reported to the user, and performs the follow-on
// cleanup of directories those changes left empty.
package results

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"refit/internal/marker"
	"refit/internal/snapshot"
)

// Result is one before/after snapshot pair produced by the transformation
// engine. Either side may be nil; a pair with both nil is degenerate and is
// dropped during classification.
type Result struct {
	Before *snapshot.Snapshot
	After  *snapshot.Snapshot

	// Recipes names the recipes that contributed to this result, outermost
	// first.
	Recipes []string
}

// Container is the classified outcome of one run. It is built once and not
// mutated afterwards; NewlyEmptyDirectories is the only operation with an
// externally observable side effect, and it is invoked explicitly.
type Container struct {
	ProjectRoot string

	Generated         []*Result
	Deleted           []*Result
	Moved             []*Result
	RefactoredInPlace []*Result
}

// NewContainer classifies results in a single pass. First matching branch
// wins:
//
//	before nil,  after nil  -> dropped with a diagnostic
//	before nil,  after set  -> Generated
//	before set,  after nil  -> Deleted
//	paths differ            -> Moved (content equality is irrelevant)
//	same path               -> RefactoredInPlace, only when the rendered
//	                           diff is non-empty
func NewContainer(projectRoot string, results []*Result) *Container {
	c := &Container{ProjectRoot: projectRoot}
	for _, r := range results {
		switch {
		case r.Before == nil && r.After == nil:
			slog.Warn("dropping degenerate result with neither before nor after snapshot")
		case r.Before == nil:
			c.Generated = append(c.Generated, r)
		case r.After == nil:
			c.Deleted = append(c.Deleted, r)
		case r.Before.Path != r.After.Path:
			c.Moved = append(c.Moved, r)
		default:
			if r.Diff() != "" {
				c.RefactoredInPlace = append(c.RefactoredInPlace, r)
			}
		}
	}
	return c
}

// IsNotEmpty reports whether any category holds at least one result, i.e.
// whether the run produced anything worth reporting or writing.
func (c *Container) IsNotEmpty() bool {
	return len(c.Generated) > 0 || len(c.Deleted) > 0 || len(c.Moved) > 0 || len(c.RefactoredInPlace) > 0
}

// Error is a transformation failure a recipe embedded in a result tree.
type Error struct {
	Path   string
	Detail string
}

func (e *Error) Error() string {
	return "error transforming " + e.Path + ": " + e.Detail
}

// FirstError returns the first embedded transformation failure, scanning
// generated, deleted, moved, then refactored-in-place results in collection
// order and each after-tree in pre-order, short-circuiting at the first hit.
// It only reports; whether the failure aborts the run is the caller's call.
func (c *Container) FirstError() error {
	for _, category := range [][]*Result{c.Generated, c.Deleted, c.Moved, c.RefactoredInPlace} {
		for _, r := range category {
			if r.After == nil {
				continue
			}
			if m, ok := marker.FirstError(r.After.Root); ok {
				return &Error{Path: r.After.Path, Detail: m.Detail}
			}
		}
	}
	return nil
}

// NewlyEmptyDirectories removes directories left empty by deleted and moved
// files and returns the directories actually removed. The candidate set is
// insertion-ordered and deduplicated: parents of the before-paths of moved
// results, then of deleted results. Each removal attempt is independent; a
// directory that cannot be listed or deleted is logged and skipped, and a
// directory that gained an entry between listing and deletion is simply
// left in place (cleanup is best-effort, not a correctness guarantee).
func (c *Container) NewlyEmptyDirectories(fs afero.Fs) []string {
	seen := make(map[string]bool)
	var candidates []string
	for _, r := range append(append([]*Result{}, c.Moved...), c.Deleted...) {
		dir := filepath.Dir(filepath.Join(c.ProjectRoot, filepath.FromSlash(r.Before.Path)))
		if !seen[dir] {
			seen[dir] = true
			candidates = append(candidates, dir)
		}
	}

	var removed []string
	for _, dir := range candidates {
		entries, err := afero.ReadDir(fs, dir)
		if err != nil {
			slog.Warn("could not list candidate empty directory", "dir", dir, "error", err)
			continue
		}
		if len(entries) > 0 {
			continue
		}
		if err := fs.Remove(dir); err != nil {
			slog.Warn("could not remove empty directory", "dir", dir, "error", err)
			continue
		}
		removed = append(removed, dir)
	}
	return removed
}
