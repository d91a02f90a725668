// Package source loads the files of a build session into snapshots for the
// recipe run. Files are handed to recipes as single-node plain-text trees;
// parsing into richer trees is a recipe engine concern.
package source

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	"refit/internal/project"
	"refit/internal/snapshot"
)

// Options controls which files are loaded.
type Options struct {
	// Exclusions are doublestar patterns matched against root-relative
	// slash paths. Matching files are skipped.
	Exclusions []string

	// PlainTextMasks are doublestar patterns for files to load even when
	// their detected type is not text (for example lock files or
	// extensionless scripts).
	PlainTextMasks []string

	// SizeThresholdMB skips files larger than this many megabytes.
	// Zero means no limit.
	SizeThresholdMB int64
}

// Load reads every file under the session's module base directories into
// snapshots with paths relative to projectRoot. Binary files, excluded
// files, and oversized files are skipped with a debug log.
func Load(fs afero.Fs, session *project.Session, projectRoot string, opts Options) ([]*snapshot.Snapshot, error) {
	seen := make(map[string]bool)
	var out []*snapshot.Snapshot

	for _, node := range session.Nodes {
		if node.BaseDir == "" {
			continue
		}
		err := afero.Walk(fs, node.BaseDir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				slog.Warn("skipping unreadable path", "path", path, "error", err)
				return nil
			}
			if info.IsDir() {
				if info.Name() == ".git" {
					return filepath.SkipDir
				}
				return nil
			}

			rel, err := filepath.Rel(projectRoot, path)
			if err != nil {
				return fmt.Errorf("relativize %s against %s: %w", path, projectRoot, err)
			}
			rel = filepath.ToSlash(rel)
			if seen[rel] {
				// Nested module dirs are walked again from their own base.
				return nil
			}

			keep, reason := shouldLoad(fs, path, rel, info, opts)
			if !keep {
				slog.Debug("skipping source", "path", rel, "reason", reason)
				return nil
			}

			content, err := afero.ReadFile(fs, path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			seen[rel] = true
			out = append(out, snapshot.New(rel, string(content)))
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func shouldLoad(fs afero.Fs, path, rel string, info os.FileInfo, opts Options) (bool, string) {
	for _, pattern := range opts.Exclusions {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false, "excluded"
		}
	}
	if opts.SizeThresholdMB > 0 && info.Size() > opts.SizeThresholdMB*1024*1024 {
		return false, "over size threshold"
	}
	for _, pattern := range opts.PlainTextMasks {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true, ""
		}
	}
	if binary, err := isBinaryFile(fs, path); err != nil {
		return false, "unreadable"
	} else if binary {
		return false, "binary"
	}
	return true, ""
}

func isBinaryFile(fs afero.Fs, path string) (bool, error) {
	f, err := fs.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	detected, err := mimetype.DetectReader(f)
	if err != nil {
		return false, err
	}
	for m := detected; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return false, nil
		}
	}
	return true, nil
}
