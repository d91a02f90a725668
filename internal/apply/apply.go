// Package apply writes a classified recipe outcome back to a filesystem.
package apply

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/djherbis/times"
	"github.com/spf13/afero"

	"refit/internal/results"
	"refit/internal/snapshot"
)

// Changes writes every classified result to the filesystem: generated files
// are created, deleted files removed, moved files rewritten at their new
// path, and in-place refactorings overwritten. Content is printed with all
// markers suppressed.
func Changes(fs afero.Fs, c *results.Container) error {
	for _, r := range c.Generated {
		if err := write(fs, c.ProjectRoot, r.After); err != nil {
			return fmt.Errorf("write generated file: %w", err)
		}
	}
	for _, r := range c.Deleted {
		if err := fs.Remove(resolve(c.ProjectRoot, r.Before.Path)); err != nil {
			return fmt.Errorf("delete %s: %w", r.Before.Path, err)
		}
	}
	for _, r := range c.Moved {
		if err := move(fs, c.ProjectRoot, r); err != nil {
			return err
		}
	}
	for _, r := range c.RefactoredInPlace {
		if err := write(fs, c.ProjectRoot, r.After); err != nil {
			return fmt.Errorf("rewrite %s: %w", r.After.Path, err)
		}
	}
	return nil
}

func move(fs afero.Fs, root string, r *results.Result) error {
	oldPath := resolve(root, r.Before.Path)

	// Capture the old timestamps first so the moved file keeps them.
	// Sys() is nil on synthetic filesystems, where there is nothing to
	// preserve.
	var ts times.Timespec
	if info, err := fs.Stat(oldPath); err == nil && info.Sys() != nil {
		ts = times.Get(info)
	}

	if err := write(fs, root, r.After); err != nil {
		return fmt.Errorf("write moved file %s: %w", r.After.Path, err)
	}
	if err := fs.Remove(oldPath); err != nil {
		return fmt.Errorf("remove moved file %s: %w", r.Before.Path, err)
	}
	if ts != nil {
		newPath := resolve(root, r.After.Path)
		if err := fs.Chtimes(newPath, ts.AccessTime(), ts.ModTime()); err != nil {
			slog.Warn("could not preserve timestamps on moved file", "path", r.After.Path, "error", err)
		}
	}
	return nil
}

func write(fs afero.Fs, root string, s *snapshot.Snapshot) error {
	path := resolve(root, s.Path)
	if err := fs.MkdirAll(filepath.Dir(path), os.FileMode(0755)); err != nil {
		return err
	}
	content := s.Print(snapshot.PlainPrinter{})
	return afero.WriteFile(fs, path, []byte(content), 0644)
}

func resolve(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
